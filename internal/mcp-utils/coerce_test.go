package mcputils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockArgumentGetter implements ArgumentGetter for testing
type mockArgumentGetter struct {
	args map[string]interface{}
}

func (m *mockArgumentGetter) GetArguments() map[string]interface{} {
	return m.args
}

type testRequest struct {
	Fragment    string `json:"fragment"`
	Destination string `json:"destination,omitempty"`
	DryRun      bool   `json:"dry_run,omitempty"`
}

func TestBindArguments(t *testing.T) {
	t.Parallel()

	t.Run("native types", func(t *testing.T) {
		request := &mockArgumentGetter{args: map[string]interface{}{
			"fragment":    "<div/>",
			"destination": "card.jsx",
			"dry_run":     true,
		}}

		var got testRequest
		require.NoError(t, BindArguments(request, &got))
		assert.Equal(t, testRequest{Fragment: "<div/>", Destination: "card.jsx", DryRun: true}, got)
	})

	t.Run("string encoded booleans", func(t *testing.T) {
		for raw, want := range map[string]bool{"true": true, " false ": false, "": false} {
			request := &mockArgumentGetter{args: map[string]interface{}{
				"fragment": "<div/>",
				"dry_run":  raw,
			}}

			var got testRequest
			require.NoError(t, BindArguments(request, &got), raw)
			assert.Equal(t, want, got.DryRun, raw)
		}
	})

	t.Run("missing fields keep zero values", func(t *testing.T) {
		request := &mockArgumentGetter{args: map[string]interface{}{}}

		var got testRequest
		require.NoError(t, BindArguments(request, &got))
		assert.Equal(t, testRequest{}, got)
	})

	t.Run("unconvertible value", func(t *testing.T) {
		request := &mockArgumentGetter{args: map[string]interface{}{
			"dry_run": "yes",
		}}

		var got testRequest
		assert.Error(t, BindArguments(request, &got))
	})
}
