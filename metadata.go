package hermod

import "context"

type metadataKey struct{}

// Metadata carries ambient key/value pairs on a context, to be attached as headers to every
// request built while the context is in scope. It aligns to the shape of Go's http.Header type for
// convenience. Unlike an endpoint's header parameters, metadata is per-call-site rather than
// per-definition: the same endpoint dispatched under two contexts can carry different metadata.
type Metadata map[string][]string

// NewMetadata creates a metadata struct from a map of strings.
func NewMetadata(data map[string]string) Metadata {
	meta := make(Metadata, len(data))
	for k, v := range data {
		meta[k] = []string{v}
	}
	return meta
}

// AppendMetadataToContext sets the metadata on the context.
func AppendMetadataToContext(ctx context.Context, md Metadata) context.Context {
	return context.WithValue(ctx, metadataKey{}, md)
}

// MetadataFromContext retrieves the metadata from the context.
func MetadataFromContext(ctx context.Context) Metadata {
	meta, ok := ctx.Value(metadataKey{}).(Metadata)
	if !ok {
		return Metadata{}
	}
	return meta
}
