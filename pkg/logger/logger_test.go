package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBuildsLogger(t *testing.T) {
	log, err := New()
	require.NoError(t, err)
	require.NotNil(t, log)
}

func TestNamedFallsBackToNopOnNilBase(t *testing.T) {
	assert.NotNil(t, Named(nil, "svc.cart"))

	base := Must(New())
	named := Named(base, "svc.cart")
	require.NotNil(t, named)
	assert.NotSame(t, base, named)
}
