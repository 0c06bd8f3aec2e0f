package hermod

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVerb(t *testing.T) {
	t.Parallel()

	v, err := ParseVerb("get")
	require.NoError(t, err)
	assert.Equal(t, VerbGet, v)

	v, err = ParseVerb("DELETE")
	require.NoError(t, err)
	assert.Equal(t, VerbDelete, v)

	_, err = ParseVerb("FETCH")
	require.Error(t, err)
	assert.True(t, IsInvalidArgument(err))
}

func TestParseProtocol(t *testing.T) {
	t.Parallel()

	p, err := ParseProtocol("https")
	require.NoError(t, err)
	assert.Equal(t, ProtocolHTTPS, p)

	_, err = ParseProtocol("ftp")
	require.Error(t, err)
	assert.True(t, IsInvalidArgument(err))
}

func TestProtocolScheme(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "http", ProtocolHTTP.Scheme())
	assert.Equal(t, "https", ProtocolHTTPS.Scheme())
}
