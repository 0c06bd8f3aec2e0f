package hermod

import "fmt"

// An EndpointBuilder incrementally constructs an Endpoint. Every mutator validates its argument,
// replaces the builder's current endpoint with a fresh copy carrying the new value, and returns
// the builder for chaining; endpoints handed out before the call are never touched.
//
// Builders defer validation failures rather than returning them from every call, in the same way a
// Request carries its construction error until it is sent: the first failure is recorded, the
// failing call leaves the current endpoint as the last successfully-built one, and Endpoint
// surfaces the recorded failure. Err allows mid-chain inspection.
//
// A builder is not safe for concurrent use, but two builders share no state, so distinct endpoints
// may be built concurrently without coordination.
type EndpointBuilder struct {
	ep  *Endpoint
	err error
}

// NewEndpointBuilder vends a builder for an endpoint with the given name.
func NewEndpointBuilder(name string) *EndpointBuilder {
	b := &EndpointBuilder{ep: &Endpoint{name: name}}
	if name == "" {
		b.recordErr(errInvalidArgument("name", "endpoint name must not be empty"))
	}
	return b
}

// WithDescription sets the endpoint's human-readable description.
func (b *EndpointBuilder) WithDescription(description string) *EndpointBuilder {
	return b.install(func(ep *Endpoint) { ep.description = description })
}

// WithVerb sets the HTTP method. Verbs outside the closed set are rejected.
func (b *EndpointBuilder) WithVerb(verb Verb) *EndpointBuilder {
	if !verb.valid() {
		return b.recordErr(errInvalidArgument("verb", fmt.Sprintf("unknown verb %q", string(verb))))
	}
	return b.install(func(ep *Endpoint) { ep.verb = verb })
}

// WithProtocol sets the transport scheme. Protocols outside the closed set are rejected.
func (b *EndpointBuilder) WithProtocol(protocol Protocol) *EndpointBuilder {
	if !protocol.valid() {
		return b.recordErr(errInvalidArgument("protocol", fmt.Sprintf("unknown protocol %q", string(protocol))))
	}
	return b.install(func(ep *Endpoint) { ep.protocol = protocol })
}

// WithHost sets the target host.
func (b *EndpointBuilder) WithHost(host string) *EndpointBuilder {
	if host == "" {
		return b.recordErr(errInvalidArgument("host", "host must not be empty"))
	}
	return b.install(func(ep *Endpoint) { ep.host = host })
}

// WithPort sets the target port.
func (b *EndpointBuilder) WithPort(port int) *EndpointBuilder {
	if port < 1 || port > 65535 {
		return b.recordErr(errInvalidArgument("port", fmt.Sprintf("port %d out of range", port)))
	}
	return b.install(func(ep *Endpoint) { ep.port = port })
}

// WithHeadersBuilder defines the endpoint's header parameters. fn is invoked synchronously,
// exactly once, with a fresh ParametersBuilder; the set it accumulates becomes the endpoint's
// headers.
func (b *EndpointBuilder) WithHeadersBuilder(fn func(*ParametersBuilder)) *EndpointBuilder {
	return b.withParameters("headers", NewParametersBuilder(), fn, func(ep *Endpoint, p *Parameters) { ep.headers = p })
}

// WithPathBuilder defines the endpoint's path parameters. The set carries path-segment semantics:
// its values are substituted into the request path in registration order.
func (b *EndpointBuilder) WithPathBuilder(fn func(*ParametersBuilder)) *EndpointBuilder {
	return b.withParameters("path", NewPathParametersBuilder(), fn, func(ep *Endpoint, p *Parameters) { ep.path = p })
}

// WithQueryBuilder defines the endpoint's query parameters.
func (b *EndpointBuilder) WithQueryBuilder(fn func(*ParametersBuilder)) *EndpointBuilder {
	return b.withParameters("query", NewParametersBuilder(), fn, func(ep *Endpoint, p *Parameters) { ep.query = p })
}

// WithBodyBuilder defines the endpoint's body parameters.
func (b *EndpointBuilder) WithBodyBuilder(fn func(*ParametersBuilder)) *EndpointBuilder {
	return b.withParameters("body", NewParametersBuilder(), fn, func(ep *Endpoint, p *Parameters) { ep.body = p })
}

// WithBody defines a single pass-through body parameter named "body": the whole request payload is
// sent as the body, untransformed. description defaults to "request payload".
func (b *EndpointBuilder) WithBody(description ...string) *EndpointBuilder {
	desc := "request payload"
	if len(description) > 0 {
		desc = description[0]
	}
	return b.WithBodyBuilder(func(pb *ParametersBuilder) {
		pb.WithDelegateParameter(desc, "body", func(payload interface{}) (interface{}, error) {
			return payload, nil
		})
	})
}

// WithRequestInterceptor appends interceptor to the endpoint's request chain. The first
// interceptor added is installed bare; later additions wrap the existing chain in a composite with
// the newcomer second, so interceptors always run in the order they were added.
func (b *EndpointBuilder) WithRequestInterceptor(interceptor RequestInterceptor) *EndpointBuilder {
	if interceptor == nil {
		return b.recordErr(errInvalidArgument("interceptor", "request interceptor must not be nil"))
	}
	return b.install(func(ep *Endpoint) {
		if ep.requestInterceptor != nil {
			ep.requestInterceptor = ComposeRequestInterceptors(ep.requestInterceptor, interceptor)
		} else {
			ep.requestInterceptor = interceptor
		}
	})
}

// WithResponseInterceptor appends interceptor to the endpoint's response chain, with the same
// composition rule as WithRequestInterceptor.
func (b *EndpointBuilder) WithResponseInterceptor(interceptor ResponseInterceptor) *EndpointBuilder {
	if interceptor == nil {
		return b.recordErr(errInvalidArgument("interceptor", "response interceptor must not be nil"))
	}
	return b.install(func(ep *Endpoint) {
		if ep.responseInterceptor != nil {
			ep.responseInterceptor = ComposeResponseInterceptors(ep.responseInterceptor, interceptor)
		} else {
			ep.responseInterceptor = interceptor
		}
	})
}

// Err returns the first validation failure recorded by the builder, if any.
func (b *EndpointBuilder) Err() error {
	return b.err
}

// Endpoint returns the current snapshot, or the first recorded validation failure. It is safe to
// call repeatedly mid-chain: the returned endpoint never changes under later builder calls.
func (b *EndpointBuilder) Endpoint() (*Endpoint, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.ep, nil
}

// install replaces the current endpoint with a copy carrying the caller's mutation. The whole
// value is copied on every rebuild, so no mutator can leave the endpoint partially updated.
func (b *EndpointBuilder) install(mutate func(*Endpoint)) *EndpointBuilder {
	next := *b.ep
	mutate(&next)
	b.ep = &next
	return b
}

func (b *EndpointBuilder) withParameters(field string, pb *ParametersBuilder, fn func(*ParametersBuilder), set func(*Endpoint, *Parameters)) *EndpointBuilder {
	if fn == nil {
		return b.recordErr(errInvalidArgument(field, "builder callback must not be nil"))
	}
	fn(pb)
	params, err := pb.Parameters()
	if err != nil {
		return b.recordErr(err)
	}
	return b.install(func(ep *Endpoint) { set(ep, params) })
}

func (b *EndpointBuilder) recordErr(err error) *EndpointBuilder {
	if b.err == nil {
		b.err = err
	}
	return b
}
