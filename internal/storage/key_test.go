package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	tests := []struct {
		name     string
		category Category
		identity string
		expected string
	}{
		{"activities for user", CategoryActivities, "amy@example.com", "userActivities_amy@example.com"},
		{"chat for user", CategoryChat, "amy@example.com", "chatHistory_amy@example.com"},
		{"theme for user", CategoryTheme, "amy@example.com", "userTheme_amy@example.com"},
		{"empty identity falls back to guest", CategoryActivities, "", "userActivities_guest"},
		{"explicit guest", CategoryChat, GuestIdentity, "chatHistory_guest"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Key(tc.category, tc.identity))
		})
	}
}

func TestMemoryStore_RoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, ok, err := store.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, "k", "v1"))
	val, ok, err := store.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "v1", val)

	require.NoError(t, store.Set(ctx, "k", "v2"))
	val, _, _ = store.Get(ctx, "k")
	assert.Equal(t, "v2", val)

	require.NoError(t, store.Delete(ctx, "k"))
	_, ok, err = store.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}
