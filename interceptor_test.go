package hermod

import (
	"context"
	"testing"

	"github.com/monzo/terrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tagRequestInterceptor appends its tag to a []string payload, so tests can observe exactly which
// interceptors ran and in what order.
type tagRequestInterceptor struct {
	tag string
	err error
}

func (i *tagRequestInterceptor) InterceptRequest(ctx context.Context, payload interface{}, ep *Endpoint) (interface{}, error) {
	if i.err != nil {
		return nil, i.err
	}
	return append(payload.([]string), i.tag), nil
}

type tagResponseInterceptor struct {
	tag string
	err error
}

func (i *tagResponseInterceptor) InterceptResponse(ctx context.Context, payload interface{}, ep *Endpoint) (interface{}, error) {
	if i.err != nil {
		return nil, i.err
	}
	return append(payload.([]string), i.tag), nil
}

func TestCompositeRequestOrder(t *testing.T) {
	t.Parallel()

	a := &tagRequestInterceptor{tag: "A"}
	b := &tagRequestInterceptor{tag: "B"}
	ep, err := NewEndpointBuilder("svc").
		WithRequestInterceptor(a).
		WithRequestInterceptor(b).
		Endpoint()
	require.NoError(t, err)

	out, err := ep.RequestInterceptor().InterceptRequest(context.Background(), []string{}, ep)
	require.NoError(t, err)
	// A ran first; its output fed B. Equivalent to B.process(A.process(p))
	assert.Equal(t, []string{"A", "B"}, out)
}

func TestCompositeAssociativity(t *testing.T) {
	t.Parallel()

	a := &tagRequestInterceptor{tag: "A"}
	b := &tagRequestInterceptor{tag: "B"}
	c := &tagRequestInterceptor{tag: "C"}

	left := ComposeRequestInterceptors(ComposeRequestInterceptors(a, b), c)
	right := ComposeRequestInterceptors(a, ComposeRequestInterceptors(b, c))

	outLeft, err := left.InterceptRequest(context.Background(), []string{}, nil)
	require.NoError(t, err)
	outRight, err := right.InterceptRequest(context.Background(), []string{}, nil)
	require.NoError(t, err)
	assert.Equal(t, outLeft, outRight)
	assert.Equal(t, []string{"A", "B", "C"}, outLeft)
}

func TestCompositeErrorPropagation(t *testing.T) {
	t.Parallel()

	boom := terrors.InternalService("boom", "first child failed", nil)
	a := &tagRequestInterceptor{tag: "A", err: boom}
	b := &tagRequestInterceptor{tag: "B"}

	composite := ComposeRequestInterceptors(a, b)
	out, err := composite.InterceptRequest(context.Background(), []string{}, nil)
	assert.Nil(t, out)
	// The child's error propagates unchanged: no wrapping, no swallowing
	assert.Same(t, boom, err)
}

func TestCompositeStopsAtFirstFailure(t *testing.T) {
	t.Parallel()

	boom := terrors.InternalService("boom", "first child failed", nil)
	ran := false
	first := RequestInterceptorFunc(func(ctx context.Context, payload interface{}, ep *Endpoint) (interface{}, error) {
		return nil, boom
	})
	second := RequestInterceptorFunc(func(ctx context.Context, payload interface{}, ep *Endpoint) (interface{}, error) {
		ran = true
		return payload, nil
	})

	_, err := ComposeRequestInterceptors(first, second).InterceptRequest(context.Background(), nil, nil)
	assert.Same(t, boom, err)
	assert.False(t, ran, "second child must not run after the first fails")
}

func TestCompositeResponseOrder(t *testing.T) {
	t.Parallel()

	a := &tagResponseInterceptor{tag: "A"}
	b := &tagResponseInterceptor{tag: "B"}
	ep, err := NewEndpointBuilder("svc").
		WithResponseInterceptor(a).
		WithResponseInterceptor(b).
		Endpoint()
	require.NoError(t, err)

	composite, ok := ep.ResponseInterceptor().(*CompositeResponseInterceptor)
	require.True(t, ok)
	assert.Same(t, a, composite.First())
	assert.Same(t, b, composite.Second())

	out, err := ep.ResponseInterceptor().InterceptResponse(context.Background(), []string{}, ep)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, out)
}

func TestResponseFirstAddBare(t *testing.T) {
	t.Parallel()

	a := &tagResponseInterceptor{tag: "A"}
	ep, err := NewEndpointBuilder("svc").WithResponseInterceptor(a).Endpoint()
	require.NoError(t, err)
	assert.Same(t, a, ep.ResponseInterceptor())
}

func TestInterceptorFuncAdapters(t *testing.T) {
	t.Parallel()

	reqFn := RequestInterceptorFunc(func(ctx context.Context, payload interface{}, ep *Endpoint) (interface{}, error) {
		return payload.(int) + 1, nil
	})
	out, err := reqFn.InterceptRequest(context.Background(), 1, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, out)

	rspFn := ResponseInterceptorFunc(func(ctx context.Context, payload interface{}, ep *Endpoint) (interface{}, error) {
		return payload.(int) * 2, nil
	})
	out, err = rspFn.InterceptResponse(context.Background(), 2, nil)
	require.NoError(t, err)
	assert.Equal(t, 4, out)
}
