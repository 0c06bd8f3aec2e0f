package hermod

import (
	"context"
	"time"

	"github.com/monzo/terrors"
)

// TimeoutFilter vends a transport filter that bounds the round trip of every request passing
// through it. Stack it onto a client with Service.Filter.
func TimeoutFilter(timeout time.Duration) Filter {
	return func(req Request, svc Service) Response {
		ctx, cancel := context.WithTimeout(req.Context, timeout)
		defer cancel()
		req.Context = ctx

		rspChan := make(chan Response, 1)
		go func() {
			rspChan <- svc(req)
		}()

		select {
		case rsp := <-rspChan:
			return rsp
		case <-ctx.Done():
			return Response{
				Request: &req,
				Error:   terrors.Timeout("", "Request timed out", nil)}
		}
	}
}

// ExpirationFilter provides admission control; it rejects requests whose context has already been
// cancelled rather than dispatching them.
func ExpirationFilter(req Request, svc Service) Response {
	select {
	case <-req.Context.Done():
		return Response{
			Request: &req,
			Error:   terrors.BadRequest("expired", "Request has expired", nil)}
	default:
		return svc(req)
	}
}
