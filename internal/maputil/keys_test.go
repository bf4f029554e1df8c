package maputil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortedKeys(t *testing.T) {
	tests := []struct {
		name     string
		input    map[string]any
		expected []string
	}{
		{
			name:     "property names",
			input:    map[string]any{"uid": nil, "title": "node0", "created": 1},
			expected: []string{"created", "title", "uid"},
		},
		{
			name:     "definition names sort bytewise",
			input:    map[string]any{"user": 1, "node:article": 2, "User": 3},
			expected: []string{"User", "node:article", "user"},
		},
		{
			name:     "numeric ids sort as strings",
			input:    map[string]any{"10": 1, "2": 2, "1": 3},
			expected: []string{"1", "10", "2"},
		},
		{
			name:     "empty map",
			input:    map[string]any{},
			expected: []string{},
		},
		{
			name:     "nil map",
			input:    nil,
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SortedKeys(tt.input), "SortedKeys(%v)", tt.input)
		})
	}
}

func TestSortedKeys_NestedMaps(t *testing.T) {
	entities := map[string]map[string]any{
		"user_role": {"editor": nil},
		"user":      {"2": nil, "1": nil},
	}
	assert.Equal(t, []string{"user", "user_role"}, SortedKeys(entities))
	assert.Equal(t, []string{"1", "2"}, SortedKeys(entities["user"]))
	assert.Equal(t, []string{}, SortedKeys(entities["node"]))
}
