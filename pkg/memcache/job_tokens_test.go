package mem

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJobTokens(t *testing.T) {
	store := NewJobTokens()

	token := store.Issue("memorial-1")
	assert.True(t, store.Matches("memorial-1", token))
	assert.False(t, store.Matches("memorial-1", "stale"))
	assert.False(t, store.Matches("memorial-2", token))

	// A new issue invalidates the previous token.
	next := store.Issue("memorial-1")
	assert.False(t, store.Matches("memorial-1", token))
	assert.True(t, store.Matches("memorial-1", next))

	store.Revoke("memorial-1")
	assert.False(t, store.Matches("memorial-1", next))
}
