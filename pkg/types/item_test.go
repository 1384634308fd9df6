package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestItemMergeProperties(t *testing.T) {
	tests := []struct {
		name    string
		initial map[string]any
		updates map[string]any
		want    map[string]any
	}{
		{
			name:    "overwrite existing and preserve untouched",
			initial: map[string]any{"p1": "v1", "p2": "v3"},
			updates: map[string]any{"p1": "v2"},
			want:    map[string]any{"p1": "v2", "p2": "v3"},
		},
		{
			name:    "add new key",
			initial: map[string]any{"p1": "v1"},
			updates: map[string]any{"p2": true},
			want:    map[string]any{"p1": "v1", "p2": true},
		},
		{
			name:    "nil receiver map is allocated",
			initial: nil,
			updates: map[string]any{"p1": "v1"},
			want:    map[string]any{"p1": "v1"},
		},
		{
			name:    "empty updates leave properties alone",
			initial: map[string]any{"p1": "v1"},
			updates: map[string]any{},
			want:    map[string]any{"p1": "v1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := &Item{Properties: tt.initial}
			item.MergeProperties(tt.updates)
			assert.Equal(t, tt.want, item.Properties)
		})
	}
}

func TestItemUpdateIsZero(t *testing.T) {
	assert.True(t, ItemUpdate{}.IsZero())

	title := "Renamed"
	assert.False(t, ItemUpdate{Title: &title}.IsZero())
	assert.False(t, ItemUpdate{Properties: map[string]any{}}.IsZero())
}
