package hermod

import "context"

// A RequestInterceptor transforms an outgoing request payload before the transport derives
// parameters from it. Interceptors run at dispatch time and may be invoked concurrently by many
// in-flight requests, so implementations must be free of shared mutable state.
type RequestInterceptor interface {
	InterceptRequest(ctx context.Context, payload interface{}, ep *Endpoint) (interface{}, error)
}

// A ResponseInterceptor transforms a response payload after receipt, before it is decoded. The
// transport passes the raw response body bytes as the payload.
type ResponseInterceptor interface {
	InterceptResponse(ctx context.Context, payload interface{}, ep *Endpoint) (interface{}, error)
}

// RequestInterceptorFunc adapts a plain function to a RequestInterceptor.
type RequestInterceptorFunc func(ctx context.Context, payload interface{}, ep *Endpoint) (interface{}, error)

func (f RequestInterceptorFunc) InterceptRequest(ctx context.Context, payload interface{}, ep *Endpoint) (interface{}, error) {
	return f(ctx, payload, ep)
}

// ResponseInterceptorFunc adapts a plain function to a ResponseInterceptor.
type ResponseInterceptorFunc func(ctx context.Context, payload interface{}, ep *Endpoint) (interface{}, error)

func (f ResponseInterceptorFunc) InterceptResponse(ctx context.Context, payload interface{}, ep *Endpoint) (interface{}, error) {
	return f(ctx, payload, ep)
}

// A CompositeRequestInterceptor sequences exactly two request interceptors: the first child's
// output feeds the second. An error from either child propagates unchanged and stops the chain.
// Children may themselves be composites; chains built by EndpointBuilder lean right, so the
// effective order is always the order interceptors were added. Composition is associative, not
// commutative.
type CompositeRequestInterceptor struct {
	first, second RequestInterceptor
}

// ComposeRequestInterceptors sequences first before second.
func ComposeRequestInterceptors(first, second RequestInterceptor) *CompositeRequestInterceptor {
	return &CompositeRequestInterceptor{first: first, second: second}
}

// First returns the child applied first.
func (c *CompositeRequestInterceptor) First() RequestInterceptor {
	return c.first
}

// Second returns the child applied to the first child's output.
func (c *CompositeRequestInterceptor) Second() RequestInterceptor {
	return c.second
}

func (c *CompositeRequestInterceptor) InterceptRequest(ctx context.Context, payload interface{}, ep *Endpoint) (interface{}, error) {
	out, err := c.first.InterceptRequest(ctx, payload, ep)
	if err != nil {
		return nil, err
	}
	return c.second.InterceptRequest(ctx, out, ep)
}

// A CompositeResponseInterceptor sequences exactly two response interceptors, with the same
// ordering and failure semantics as CompositeRequestInterceptor.
type CompositeResponseInterceptor struct {
	first, second ResponseInterceptor
}

// ComposeResponseInterceptors sequences first before second.
func ComposeResponseInterceptors(first, second ResponseInterceptor) *CompositeResponseInterceptor {
	return &CompositeResponseInterceptor{first: first, second: second}
}

// First returns the child applied first.
func (c *CompositeResponseInterceptor) First() ResponseInterceptor {
	return c.first
}

// Second returns the child applied to the first child's output.
func (c *CompositeResponseInterceptor) Second() ResponseInterceptor {
	return c.second
}

func (c *CompositeResponseInterceptor) InterceptResponse(ctx context.Context, payload interface{}, ep *Endpoint) (interface{}, error) {
	out, err := c.first.InterceptResponse(ctx, payload, ep)
	if err != nil {
		return nil, err
	}
	return c.second.InterceptResponse(ctx, out, ep)
}
