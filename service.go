package hermod

// A Service is a function that executes a built request and produces a response. The transport
// that actually round-trips requests is a Service; so is anything stacked on top of it.
type Service func(req Request) Response

// Filter functions compose with Services to modify their behaviour at the transport level: they
// might change a request or response in wire form, or elect not to call the underlying service at
// all. Payload-level concerns belong to an Endpoint's interceptors instead, which run before the
// wire form exists.
type Filter func(Request, Service) Response

// Filter vends a new service wrapped in the passed filter.
func (svc Service) Filter(f Filter) Service {
	return func(req Request) Response {
		return f(req, svc)
	}
}
