package options

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/dataresolver/dataerrors"
)

func TestExactlyOne(t *testing.T) {
	tests := []struct {
		name    string
		sources []Source
		wantErr string
	}{
		{
			name:    "one of two",
			sources: []Source{{Name: "file"}, {Name: "content", Set: true}},
		},
		{
			name:    "one of three",
			sources: []Source{{Name: "WithFilePath", Set: true}, {Name: "WithReader"}, {Name: "WithBytes"}},
		},
		{
			name:    "none",
			sources: []Source{{Name: "file"}, {Name: "content"}},
			wantErr: "configuration error for schema: exactly one of file or content must be provided (got none)",
		},
		{
			name:    "two",
			sources: []Source{{Name: "file", Set: true}, {Name: "content", Set: true}},
			wantErr: "configuration error for schema: exactly one of file or content must be provided (got file and content)",
		},
		{
			name:    "three names",
			sources: []Source{{Name: "a", Set: true}, {Name: "b"}, {Name: "c", Set: true}},
			wantErr: "exactly one of a, b or c must be provided (got a and c)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ExactlyOne("schema", tt.sources...)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.ErrorIs(t, err, dataerrors.ErrConfig)
		})
	}
}
