package hermod

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/monzo/terrors"
	"google.golang.org/protobuf/proto"
)

// A Request is the wire form of one Endpoint invocation: a wrapper around http.Request carrying
// the endpoint it was built from and any error encountered during construction. Construction
// errors are deferred: carried on the Request and surfaced when it is sent, so callers can chain
// without checking errors at every step.
//
// No guarantees are made that a Request is safe to access or mutate concurrently; callers sharing
// one across goroutines must synchronise.
type Request struct {
	http.Request
	context.Context
	Endpoint *Endpoint
	err      error // read by ErrorFilter and HTTPService
}

// NewRequest builds the wire request for ep from payload. The endpoint's request interceptor chain
// runs first, over the payload; the (possibly transformed) payload then feeds every parameter
// set's transforms to produce the request path, query, headers and body.
func NewRequest(ctx context.Context, ep *Endpoint, payload interface{}) Request {
	if ctx == nil {
		ctx = context.Background()
	}
	req := Request{
		Context:  ctx,
		Endpoint: ep}
	if ep == nil {
		req.err = errInvalidArgument("endpoint", "endpoint must not be nil")
		return req
	}

	if ic := ep.RequestInterceptor(); ic != nil {
		out, err := ic.InterceptRequest(ctx, payload, ep)
		if err != nil {
			req.err = terrors.Wrap(err, map[string]string{"endpoint": ep.Name()})
			return req
		}
		payload = out
	}

	u, err := buildURL(ep, payload)
	if err != nil {
		req.err = err
		return req
	}

	httpReq, err := http.NewRequest(method(ep), u.String(), nil)
	if err != nil {
		req.err = terrors.Wrap(err, map[string]string{"endpoint": ep.Name()})
		return req
	}
	httpReq.ContentLength = 0
	httpReq.Body = &bufCloser{}
	req.Request = *httpReq

	// Attach any metadata in the context as headers; the endpoint's own header parameters take
	// precedence over metadata carrying the same key.
	for k, v := range MetadataFromContext(ctx) {
		req.Header[strings.ToLower(k)] = v
	}

	if hs := ep.Headers(); hs != nil {
		for _, p := range hs.All() {
			v, err := p.Transform(payload)
			if err != nil {
				req.err = wrapParamErr(ep, "headers", p.Name, err)
				return req
			}
			req.Header.Set(p.Name, fmt.Sprint(v))
		}
	}
	if req.Header.Get("Request-Id") == "" {
		req.Header.Set("Request-Id", uuid.NewString())
	}

	if bs := ep.Body(); bs.Len() > 0 {
		body, err := bodyValue(ep, bs, payload)
		if err != nil {
			req.err = err
			return req
		}
		req.Encode(body)
	}
	return req
}

// method returns the verb to put on the request line; endpoints that never set one get GET.
func method(ep *Endpoint) string {
	if v := ep.Verb(); v != "" {
		return string(v)
	}
	return string(VerbGet)
}

// buildURL assembles the request URL: scheme from the protocol (HTTP when unset), host and port
// from the endpoint, path segments from the positional path set, and query values from the query
// set.
func buildURL(ep *Endpoint, payload interface{}) (*url.URL, error) {
	if ep.Host() == "" {
		return nil, errInvalidArgument("host", fmt.Sprintf("endpoint %q has no host", ep.Name()))
	}
	host := ep.Host()
	if ep.Port() != 0 {
		host = net.JoinHostPort(host, strconv.Itoa(ep.Port()))
	}
	scheme := ProtocolHTTP.Scheme()
	if ep.Protocol() != "" {
		scheme = ep.Protocol().Scheme()
	}

	path := "/"
	if ps := ep.Path(); ps.Len() > 0 {
		segments := make([]string, 0, ps.Len())
		for _, p := range ps.All() {
			v, err := p.Transform(payload)
			if err != nil {
				return nil, wrapParamErr(ep, "path", p.Name, err)
			}
			segments = append(segments, url.PathEscape(fmt.Sprint(v)))
		}
		path = "/" + strings.Join(segments, "/")
	}

	query := url.Values{}
	if qs := ep.Query(); qs != nil {
		for _, p := range qs.All() {
			v, err := p.Transform(payload)
			if err != nil {
				return nil, wrapParamErr(ep, "query", p.Name, err)
			}
			query.Set(p.Name, fmt.Sprint(v))
		}
	}

	u := &url.URL{
		Scheme:   scheme,
		Host:     host,
		RawQuery: query.Encode()}
	// Keep the substituted segments opaque: set the escaped form directly so a value containing a
	// slash cannot introduce extra path levels.
	u.RawPath = path
	u.Path, _ = url.PathUnescape(path)
	return u, nil
}

// bodyValue assembles the body payload: a set with a single parameter sends that parameter's value
// directly (this covers the WithBody pass-through case), while larger sets send an object keyed by
// parameter name.
func bodyValue(ep *Endpoint, bs *Parameters, payload interface{}) (interface{}, error) {
	params := bs.All()
	if len(params) == 1 {
		v, err := params[0].Transform(payload)
		if err != nil {
			return nil, wrapParamErr(ep, "body", params[0].Name, err)
		}
		return v, nil
	}
	out := make(map[string]interface{}, len(params))
	for _, p := range params {
		v, err := p.Transform(payload)
		if err != nil {
			return nil, wrapParamErr(ep, "body", p.Name, err)
		}
		out[p.Name] = v
	}
	return out, nil
}

func wrapParamErr(ep *Endpoint, set, name string, err error) error {
	return terrors.Wrap(err, map[string]string{
		"endpoint":  ep.Name(),
		"set":       set,
		"parameter": name})
}

// Encode serialises the passed object into the body (and sets appropriate headers): protobuf wire
// format for proto messages, JSON otherwise. Readers are passed through as-is.
func (r *Request) Encode(v interface{}) {
	switch v := v.(type) {
	case proto.Message:
		r.EncodeAsProtobuf(v)
		return
	case json.Marshaler:
	case io.ReadCloser:
		r.Body = v
		r.ContentLength = -1
		return
	case io.Reader:
		r.Body = io.NopCloser(v)
		r.ContentLength = -1
		return
	}
	r.EncodeAsJSON(v)
}

// EncodeAsJSON serialises the passed object as JSON into the body (and sets appropriate headers).
func (r *Request) EncodeAsJSON(v interface{}) {
	if err := json.NewEncoder(r).Encode(v); err != nil {
		r.err = terrors.Wrap(err, nil)
		return
	}
	r.Header.Set("Content-Type", "application/json")
}

// EncodeAsProtobuf serialises the passed object as protobuf wire format into the body (and sets
// appropriate headers).
func (r *Request) EncodeAsProtobuf(m proto.Message) {
	b, err := proto.Marshal(m)
	if err != nil {
		r.err = terrors.Wrap(err, nil)
		return
	}
	n, err := r.Write(b)
	if err != nil {
		r.err = terrors.Wrap(err, nil)
		return
	}
	r.Header.Set("Content-Type", "application/protobuf")
	r.ContentLength = int64(n)
}

// Write writes the passed bytes to the request's body.
func (r *Request) Write(b []byte) (n int, err error) {
	switch rc := r.Body.(type) {
	// In the "normal" case, the body will be a buffer, to which we can write
	case io.Writer:
		n, err = rc.Write(b)
		if err != nil {
			return n, err
		}
	// If a caller manually sets Body, then we may not be able to write to it directly
	default:
		buf := &bufCloser{}
		if rc != nil {
			if _, err := io.Copy(buf, rc); err != nil {
				// This can be quite bad; we have consumed (and possibly lost) some of the original body
				return 0, err
			}
			// rc will never again be accessible: once it's copied it must be closed
			rc.Close()
		}
		r.Body = buf
		n, err = buf.Write(b)
		if err != nil {
			return n, err
		}
	}

	if r.ContentLength >= 0 {
		r.ContentLength += int64(n)
		// If this write pushed the content length above the chunking threshold, set to -1
		// (unknown) to trigger chunked encoding
		if r.ContentLength >= chunkThreshold {
			r.ContentLength = -1
		}
	}
	return n, nil
}

// BodyBytes fully reads the request body and returns the bytes read.
//
// If consume is true, this is equivalent to io.ReadAll; if false, the caller will observe the body
// to be in the same state that it was before (ie. any remaining unread body can be read again).
func (r *Request) BodyBytes(consume bool) ([]byte, error) {
	if r.Body == nil {
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

// Send round-trips the request via the default Client. It does not block, instead returning a
// ResponseFuture representing the asynchronous operation to produce the response.
func (r Request) Send() *ResponseFuture {
	return Send(r)
}

// SendVia round-trips the request via the passed Service. It does not block, instead returning a
// ResponseFuture representing the asynchronous operation to produce the response.
func (r Request) SendVia(svc Service) *ResponseFuture {
	return SendVia(r, svc)
}

func (r Request) String() string {
	if r.URL == nil {
		return "Request(Unknown)"
	}
	return fmt.Sprintf("Request(%s %s://%s%s)", r.Method, r.URL.Scheme, r.Host, r.URL.Path)
}
