package hermod

import (
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/monzo/terrors"
)

// A Definition is the YAML form of one endpoint. Parameter values are looked up in the request
// payload by key, so payloads for endpoints built from definitions are expected to be
// map[string]interface{} values.
type Definition struct {
	Name        string                `yaml:"name"`
	Description string                `yaml:"description"`
	Verb        string                `yaml:"verb"`
	Protocol    string                `yaml:"protocol"`
	Host        string                `yaml:"host"`
	Port        int                   `yaml:"port"`
	Path        []ParameterDefinition `yaml:"path"`
	Query       []ParameterDefinition `yaml:"query"`
	Headers     []ParameterDefinition `yaml:"headers"`
	Body        *BodyDefinition       `yaml:"body"`
}

// A ParameterDefinition maps one payload key to a named parameter. When From is empty the
// parameter's own name is used as the key.
type ParameterDefinition struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	From        string `yaml:"from"`
}

// A BodyDefinition either passes the whole payload through as the body or assembles the body from
// payload keys.
type BodyDefinition struct {
	Description string                `yaml:"description"`
	Passthrough bool                  `yaml:"passthrough"`
	Parameters  []ParameterDefinition `yaml:"parameters"`
}

// ParseDefinitions builds endpoints from a YAML document of the form:
//
//	endpoints:
//	  - name: getUser
//	    verb: GET
//	    protocol: https
//	    host: api.example.com
//	    path:
//	      - {name: id, description: user id}
//
// All validation flows through EndpointBuilder, so malformed definitions fail with the same
// invalid argument errors as misuse of the fluent surface.
func ParseDefinitions(b []byte) ([]*Endpoint, error) {
	var doc struct {
		Endpoints []Definition `yaml:"endpoints"`
	}
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, terrors.WrapWithCode(err, nil, terrors.ErrBadRequest)
	}
	eps := make([]*Endpoint, 0, len(doc.Endpoints))
	for _, def := range doc.Endpoints {
		ep, err := def.Build()
		if err != nil {
			return nil, terrors.Wrap(err, map[string]string{"endpoint": def.Name})
		}
		eps = append(eps, ep)
	}
	return eps, nil
}

// Build constructs the Endpoint the definition describes.
func (d Definition) Build() (*Endpoint, error) {
	b := NewEndpointBuilder(d.Name)
	if d.Description != "" {
		b.WithDescription(d.Description)
	}
	if d.Verb != "" {
		v, err := ParseVerb(d.Verb)
		if err != nil {
			return nil, err
		}
		b.WithVerb(v)
	}
	if d.Protocol != "" {
		p, err := ParseProtocol(d.Protocol)
		if err != nil {
			return nil, err
		}
		b.WithProtocol(p)
	}
	if d.Host != "" {
		b.WithHost(d.Host)
	}
	if d.Port != 0 {
		b.WithPort(d.Port)
	}
	if len(d.Path) > 0 {
		b.WithPathBuilder(delegates(d.Path))
	}
	if len(d.Query) > 0 {
		b.WithQueryBuilder(delegates(d.Query))
	}
	if len(d.Headers) > 0 {
		b.WithHeadersBuilder(delegates(d.Headers))
	}
	if d.Body != nil {
		switch {
		case d.Body.Passthrough && d.Body.Description != "":
			b.WithBody(d.Body.Description)
		case d.Body.Passthrough:
			b.WithBody()
		default:
			b.WithBodyBuilder(delegates(d.Body.Parameters))
		}
	}
	return b.Endpoint()
}

// delegates compiles parameter definitions into a builder callback registering one delegate
// parameter per definition.
func delegates(defs []ParameterDefinition) func(*ParametersBuilder) {
	return func(pb *ParametersBuilder) {
		for _, def := range defs {
			key := def.From
			if key == "" {
				key = def.Name
			}
			pb.WithDelegateParameter(def.Description, def.Name, lookup(key))
		}
	}
}

// lookup vends a Transform that indexes a map payload by key.
func lookup(key string) Transform {
	return func(payload interface{}) (interface{}, error) {
		m, ok := payload.(map[string]interface{})
		if !ok {
			return nil, terrors.BadRequest("payload", fmt.Sprintf("payload is %T, not a map", payload), nil)
		}
		v, ok := m[key]
		if !ok {
			return nil, terrors.BadRequest("missing_key", fmt.Sprintf("payload has no key %q", key),
				map[string]string{"key": key})
		}
		return v, nil
	}
}
