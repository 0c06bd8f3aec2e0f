// Package hermod provides declarative, immutable definitions of HTTP endpoints, together with a
// small client transport that dispatches them.
//
// An Endpoint describes the shape of one HTTP call: its verb, protocol, target host and port, and
// the parameter sets that derive path segments, query values, headers and body from a request
// payload. Endpoints are built fluently through an EndpointBuilder and never change once built, so
// a single definition can be shared by any number of in-flight requests. Interceptors attach
// payload transformations to an endpoint; adding several composes them in the order they were
// added.
package hermod
