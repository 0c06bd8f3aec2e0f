package hermod

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/monzo/terrors"
)

// codeInvalidArgument is the terrors sub-code carried by every builder validation failure.
const codeInvalidArgument = "invalid_argument"

var mapStatus2Terr = map[int]string{
	http.StatusBadRequest:          terrors.ErrBadRequest,         // 400
	http.StatusUnauthorized:        terrors.ErrUnauthorized,       // 401
	http.StatusForbidden:           terrors.ErrForbidden,          // 403
	http.StatusNotFound:            terrors.ErrNotFound,           // 404
	http.StatusNotAcceptable:       terrors.ErrBadResponse,        // 406
	http.StatusPreconditionFailed:  terrors.ErrPreconditionFailed, // 412
	http.StatusTooManyRequests:     terrors.ErrRateLimited,        // 429
	http.StatusInternalServerError: terrors.ErrInternalService,    // 500
	http.StatusGatewayTimeout:      terrors.ErrTimeout,            // 504
}

// errInvalidArgument constructs the error raised for every misuse of a builder: a required
// argument that is missing, malformed, or outside its closed set.
func errInvalidArgument(param, msg string) error {
	return terrors.BadRequest(codeInvalidArgument, msg, map[string]string{"param": param})
}

// IsInvalidArgument reports whether err is a builder validation failure.
func IsInvalidArgument(err error) bool {
	terr, ok := err.(*terrors.Error)
	return ok && strings.HasPrefix(terr.Code, terrors.ErrBadRequest+"."+codeInvalidArgument)
}

// status2TerrCode converts HTTP status codes to a roughly equivalent terrors code.
func status2TerrCode(code int) string {
	if c, ok := mapStatus2Terr[code]; ok {
		return c
	}
	return terrors.ErrInternalService
}

// ErrorFilter surfaces deferred request construction errors and turns HTTP error statuses into
// terrors on the response. It is part of the default Client chain, so callers can treat
// Response.Error as the single signal of failure.
func ErrorFilter(req Request, svc Service) Response {
	var rsp Response

	// If the request carries a construction error, short-circuit: there is no request to send.
	if req.err != nil {
		rsp = Response{Request: &req, Error: req.err}
	} else {
		rsp = svc(req)
	}

	if rsp.Request == nil {
		rsp.Request = &req
	}

	if rsp.Error == nil && rsp.Response != nil && rsp.StatusCode >= 400 && rsp.StatusCode <= 599 {
		b, _ := rsp.BodyBytes(false)
		msg := strings.TrimSpace(string(b))
		if msg == "" {
			msg = http.StatusText(rsp.StatusCode)
		}
		params := map[string]string{"status": strconv.Itoa(rsp.StatusCode)}
		if req.Endpoint != nil {
			params["endpoint"] = req.Endpoint.Name()
		}
		rsp.Error = terrors.New(status2TerrCode(rsp.StatusCode), msg, params)
	}

	return rsp
}
