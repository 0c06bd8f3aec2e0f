package hermod

import (
	"bytes"
	"context"
	"io"
	"net"
	"net/http"
	"time"

	log "github.com/monzo/slog"
	"github.com/monzo/terrors"
	"golang.org/x/net/http2"
)

var (
	// Client is used to send all requests by default. It can be overridden globally but MUST only
	// be done before use takes place; access is not synchronised.
	Client = Service(BareClient).Filter(ErrorFilter)

	httpClientTransport = &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 10 * time.Minute}).DialContext,
		MaxIdleConnsPerHost:   10,
		ResponseHeaderTimeout: time.Minute}
)

func init() {
	// Enable HTTP/2 on the default transport; endpoints with ProtocolHTTPS negotiate h2 via ALPN,
	// cleartext endpoints keep using HTTP/1.1.
	if err := http2.ConfigureTransport(httpClientTransport); err != nil {
		log.Error(context.Background(), "Error configuring HTTP/2 transport: %v", err)
	}
}

// A ResponseFuture is a handle to an in-flight request dispatch.
type ResponseFuture struct {
	cancel context.CancelFunc
	done   <-chan struct{} // guards access to r
	r      Response
}

// WaitC returns a channel that closes when the response is ready.
func (f *ResponseFuture) WaitC() <-chan struct{} {
	return f.done
}

// Response blocks until the response is ready and returns it.
func (f *ResponseFuture) Response() Response {
	<-f.WaitC()
	return f.r
}

// Cancel aborts the in-flight request.
func (f *ResponseFuture) Cancel() {
	f.cancel()
}

// HTTPService returns a Service which sends requests via the given net/http RoundTripper. Only use
// this if you need to do something custom at the transport level.
func HTTPService(rt http.RoundTripper) Service {
	return func(req Request) Response {
		// A request carrying a construction error never touches the network.
		if req.err != nil {
			return Response{Request: &req, Error: req.err}
		}

		httpRsp, err := rt.RoundTrip(req.Request.WithContext(req.Context))
		// Read the response in its entirety and close the body here; this protects us from callers
		// that forget to call Close() but does not allow streaming responses.
		if httpRsp != nil && httpRsp.Body != nil {
			var buf []byte
			buf, err = io.ReadAll(httpRsp.Body)
			httpRsp.Body.Close()
			if err != nil {
				log.Warn(req, "Error reading response body: %v", err)
			} else {
				httpRsp.Body = io.NopCloser(bytes.NewReader(buf))
			}
		}

		return Response{
			Response: httpRsp,
			Request:  &req,
			Error:    terrors.Wrap(err, nil)}
	}
}

// BareClient sends the request over the default transport, with no filters applied.
func BareClient(req Request) Response {
	return HTTPService(httpClientTransport)(req)
}

// SendVia dispatches the request via the passed Service without blocking, returning a
// ResponseFuture representing the asynchronous operation to produce the response.
func SendVia(req Request, svc Service) *ResponseFuture {
	ctx, cancel := context.WithCancel(req.Context)
	req.Context = ctx
	done := make(chan struct{})
	f := &ResponseFuture{
		done:   done,
		cancel: cancel}
	go func() {
		defer close(done)
		defer cancel() // if already cancelled on escape, this is a no-op
		f.r = svc(req)
	}()
	return f
}

// Send dispatches the request via the default Client.
func Send(req Request) *ResponseFuture {
	return SendVia(req, Client)
}

// Send builds the wire request for the endpoint from payload and dispatches it via the default
// Client. It is equivalent to:
//
//	NewRequest(ctx, e, payload).Send()
func (e *Endpoint) Send(ctx context.Context, payload interface{}) *ResponseFuture {
	return NewRequest(ctx, e, payload).Send()
}
