package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestValidate(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "f.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	tests := []struct {
		name string
		req  Request
		want error
	}{
		{"ok", Request{Root: dir, Term: "x"}, nil},
		{"empty term", Request{Root: dir, Term: ""}, ErrEmptyTerm},
		{"blank term", Request{Root: dir, Term: "  \t"}, ErrEmptyTerm},
		{"empty root", Request{Root: "", Term: "x"}, ErrRootNotFound},
		{"missing root", Request{Root: filepath.Join(dir, "nope"), Term: "x"}, ErrRootNotFound},
		{"root is a file", Request{Root: file, Term: "x"}, ErrRootNotDir},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
