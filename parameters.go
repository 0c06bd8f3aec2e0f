package hermod

import "fmt"

// A Transform computes one parameter's runtime value from a request payload. Transforms run when a
// request is built, never at registration time, and must be free of side effects: a single
// Parameters set may be shared by many concurrent requests.
type Transform func(payload interface{}) (interface{}, error)

// A Parameter names one value extracted from the request payload.
type Parameter struct {
	Name        string
	Description string
	Transform   Transform
}

// Parameters is an ordered, immutable collection of parameter definitions for one part of a
// request: headers, path, query or body. Sets are built exclusively through a ParametersBuilder.
//
// A positional set carries path-segment semantics: consumers substitute its values into the request
// path in registration order, rather than appending them as key/value pairs.
type Parameters struct {
	params     []Parameter
	positional bool
}

// Len returns the number of parameters defined.
func (p *Parameters) Len() int {
	if p == nil {
		return 0
	}
	return len(p.params)
}

// All returns the parameter definitions in registration order. The returned slice is a copy:
// mutating it does not affect the set.
func (p *Parameters) All() []Parameter {
	if p == nil {
		return nil
	}
	out := make([]Parameter, len(p.params))
	copy(out, p.params)
	return out
}

// Positional reports whether the set carries path-segment semantics.
func (p *Parameters) Positional() bool {
	return p != nil && p.positional
}

// A ParametersBuilder accumulates parameter definitions for one Parameters set. Like
// EndpointBuilder, a call with an invalid argument records the failure and leaves the accumulated
// set untouched; Parameters surfaces the first recorded failure.
type ParametersBuilder struct {
	params     []Parameter
	positional bool
	err        error
}

// NewParametersBuilder vends a builder for a key/value parameter set.
func NewParametersBuilder() *ParametersBuilder {
	return &ParametersBuilder{}
}

// NewPathParametersBuilder vends a builder for a parameter set with path-segment semantics.
func NewPathParametersBuilder() *ParametersBuilder {
	return &ParametersBuilder{positional: true}
}

// WithDelegateParameter appends a parameter whose value is computed by applying transform to the
// request payload.
func (b *ParametersBuilder) WithDelegateParameter(description, name string, transform Transform) *ParametersBuilder {
	if name == "" {
		return b.recordErr(errInvalidArgument("name", "parameter name must not be empty"))
	}
	if transform == nil {
		return b.recordErr(errInvalidArgument("transform", fmt.Sprintf("parameter %q has no transform", name)))
	}
	b.params = append(b.params, Parameter{Name: name, Description: description, Transform: transform})
	return b
}

// Err returns the first validation failure recorded by the builder, if any.
func (b *ParametersBuilder) Err() error {
	return b.err
}

// Parameters returns the accumulated set. Each call returns a snapshot detached from the builder,
// so it is safe to keep building afterwards.
func (b *ParametersBuilder) Parameters() (*Parameters, error) {
	if b.err != nil {
		return nil, b.err
	}
	params := make([]Parameter, len(b.params))
	copy(params, b.params)
	return &Parameters{params: params, positional: b.positional}, nil
}

func (b *ParametersBuilder) recordErr(err error) *ParametersBuilder {
	if b.err == nil {
		b.err = err
	}
	return b
}
