package hermod

import "bytes"

// chunkThreshold is the body size beyond which the content length is marked unknown, triggering
// chunked transfer encoding.
const chunkThreshold = 5 * 1000000 // 5MB

type bufCloser struct {
	bytes.Buffer
}

func (b *bufCloser) Close() error {
	return nil // No-op
}
