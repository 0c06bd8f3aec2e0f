package hermod

import (
	"fmt"
	"strings"

	mapset "github.com/deckarep/golang-set"
)

// A Verb identifies the HTTP method of an Endpoint. The set of verbs is closed: values outside the
// constants below are rejected by EndpointBuilder.WithVerb.
type Verb string

const (
	VerbGet     Verb = "GET"
	VerbConnect Verb = "CONNECT"
	VerbDelete  Verb = "DELETE"
	VerbHead    Verb = "HEAD"
	VerbOptions Verb = "OPTIONS"
	VerbPatch   Verb = "PATCH"
	VerbPost    Verb = "POST"
	VerbPut     Verb = "PUT"
	VerbTrace   Verb = "TRACE"
)

// A Protocol identifies the transport scheme of an Endpoint. Like Verb, the set is closed.
type Protocol string

const (
	ProtocolHTTP  Protocol = "HTTP"
	ProtocolHTTPS Protocol = "HTTPS"
)

var (
	verbs = mapset.NewSet(VerbGet, VerbConnect, VerbDelete, VerbHead, VerbOptions, VerbPatch,
		VerbPost, VerbPut, VerbTrace)
	protocols = mapset.NewSet(ProtocolHTTP, ProtocolHTTPS)
)

func (v Verb) valid() bool {
	return verbs.Contains(v)
}

func (v Verb) String() string {
	return string(v)
}

func (p Protocol) valid() bool {
	return protocols.Contains(p)
}

func (p Protocol) String() string {
	return string(p)
}

// Scheme returns the URL scheme for the protocol.
func (p Protocol) Scheme() string {
	return strings.ToLower(string(p))
}

// ParseVerb returns the member of the verb set named by s (case-insensitively). Strings naming no
// member fail with an invalid argument error.
func ParseVerb(s string) (Verb, error) {
	v := Verb(strings.ToUpper(s))
	if !v.valid() {
		return "", errInvalidArgument("verb", fmt.Sprintf("unknown verb %q", s))
	}
	return v, nil
}

// ParseProtocol returns the member of the protocol set named by s (case-insensitively).
func ParseProtocol(s string) (Protocol, error) {
	p := Protocol(strings.ToUpper(s))
	if !p.valid() {
		return "", errInvalidArgument("protocol", fmt.Sprintf("unknown protocol %q", s))
	}
	return p, nil
}
