package hermod

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/monzo/terrors"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
)

// A Response is the transport's wrapper around http.Response. Error carries any failure observed
// while producing the response, whether during request construction, the round trip, or from an
// HTTP error status (the latter mapped by ErrorFilter).
//
// As with Request, no guarantees are made about concurrent access to a single Response.
type Response struct {
	*http.Response
	Error   error
	Request *Request // The Request that this responds to
}

// Decode de-serialises the body into the passed object. The endpoint's response interceptor chain
// runs first, over the raw body bytes, so interceptors can unwrap envelopes or verify signatures
// before decoding happens. Proto messages are decoded from protobuf wire format when the
// Content-Type indicates it, and from protobuf JSON otherwise; everything else decodes as JSON.
func (r *Response) Decode(v interface{}) error {
	if r.Error != nil {
		return r.Error
	}
	if r.Response == nil {
		r.Error = terrors.InternalService("", "Response has no body", nil)
		return r.Error
	}

	b, err := r.BodyBytes(true)
	if err != nil {
		r.Error = terrors.WrapWithCode(err, nil, terrors.ErrBadResponse)
		return r.Error
	}

	if ep := r.endpoint(); ep != nil {
		if ic := ep.ResponseInterceptor(); ic != nil {
			out, err := ic.InterceptResponse(r.ctx(), b, ep)
			if err != nil {
				r.Error = terrors.Wrap(err, map[string]string{"endpoint": ep.Name()})
				return r.Error
			}
			body, ok := out.([]byte)
			if !ok {
				r.Error = terrors.BadResponse("interceptor", fmt.Sprintf(
					"response interceptor returned %T, not body bytes", out), map[string]string{
					"endpoint": ep.Name()})
				return r.Error
			}
			b = body
		}
	}

	switch m := v.(type) {
	case proto.Message:
		switch r.Header.Get("Content-Type") {
		case "application/octet-stream", "application/x-google-protobuf", "application/protobuf", "application/x-protobuf":
			err = proto.Unmarshal(b, m)
		default:
			err = protojson.Unmarshal(b, m)
		}
	default:
		err = json.Unmarshal(b, v)
	}

	if err != nil {
		r.Error = terrors.WrapWithCode(err, nil, terrors.ErrBadResponse)
		return r.Error
	}
	return nil
}

// BodyBytes fully reads the response body and returns the bytes read. If consume is false, the
// body is copied into a new buffer such that it may be read again.
func (r *Response) BodyBytes(consume bool) ([]byte, error) {
	if r.Response == nil || r.Body == nil {
		return nil, nil
	}
	if consume {
		defer r.Body.Close()
		return io.ReadAll(r.Body)
	}

	switch rc := r.Body.(type) {
	case *bufCloser:
		return rc.Bytes(), nil
	default:
		buf := &bufCloser{}
		r.Body = buf
		rdr := io.TeeReader(rc, buf)
		// rc will never again be accessible: once it's copied it must be closed
		defer rc.Close()
		return io.ReadAll(rdr)
	}
}

func (r *Response) endpoint() *Endpoint {
	if r.Request == nil {
		return nil
	}
	return r.Request.Endpoint
}

func (r *Response) ctx() context.Context {
	if r.Request != nil && r.Request.Context != nil {
		return r.Request.Context
	}
	return context.Background()
}

func (r Response) String() string {
	if r.Response == nil {
		return "Response(Unknown)"
	}
	return fmt.Sprintf("Response(%d)", r.StatusCode)
}
