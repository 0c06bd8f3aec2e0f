package hermod

import "fmt"

// An Endpoint is the immutable description of one HTTP call shape: its verb, protocol, target host
// and port, the parameter sets that derive path segments, query values, headers and body from a
// request payload, and the interceptor chains the transport runs around dispatch.
//
// Endpoints are built exclusively through an EndpointBuilder and never change once built. They may
// therefore be shared freely between goroutines, including across many in-flight requests, without
// synchronisation.
type Endpoint struct {
	name                string
	description         string
	verb                Verb
	protocol            Protocol
	host                string
	port                int
	path                *Parameters
	query               *Parameters
	headers             *Parameters
	body                *Parameters
	requestInterceptor  RequestInterceptor
	responseInterceptor ResponseInterceptor
}

// Name returns the endpoint's name.
func (e *Endpoint) Name() string { return e.name }

// Description returns the endpoint's human-readable description, which may be empty.
func (e *Endpoint) Description() string { return e.description }

// Verb returns the HTTP method, or the zero Verb when unset.
func (e *Endpoint) Verb() Verb { return e.verb }

// Protocol returns the transport scheme, or the zero Protocol when unset.
func (e *Endpoint) Protocol() Protocol { return e.protocol }

// Host returns the target host, or "" when unset.
func (e *Endpoint) Host() string { return e.host }

// Port returns the target port, or 0 when unset.
func (e *Endpoint) Port() int { return e.port }

// Path returns the positional parameter set whose values form the request path, or nil when none
// is defined.
func (e *Endpoint) Path() *Parameters { return e.path }

// Query returns the query parameter set, or nil when none is defined.
func (e *Endpoint) Query() *Parameters { return e.query }

// Headers returns the header parameter set, or nil when none is defined.
func (e *Endpoint) Headers() *Parameters { return e.headers }

// Body returns the body parameter set, or nil when none is defined.
func (e *Endpoint) Body() *Parameters { return e.body }

// RequestInterceptor returns the endpoint's request interceptor chain: nil when none was added,
// the interceptor itself when one was, and a composite when several were.
func (e *Endpoint) RequestInterceptor() RequestInterceptor { return e.requestInterceptor }

// ResponseInterceptor returns the endpoint's response interceptor chain, with the same shape as
// RequestInterceptor.
func (e *Endpoint) ResponseInterceptor() ResponseInterceptor { return e.responseInterceptor }

func (e *Endpoint) String() string {
	if e.host == "" {
		return fmt.Sprintf("Endpoint(%s)", e.name)
	}
	return fmt.Sprintf("Endpoint(%s %s %s://%s)", e.name, e.verb, e.protocol.Scheme(), e.hostPort())
}

func (e *Endpoint) hostPort() string {
	if e.port == 0 {
		return e.host
	}
	return fmt.Sprintf("%s:%d", e.host, e.port)
}
