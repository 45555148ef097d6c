package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintResult(t *testing.T) {
	v := map[string]int{"synced": 3}

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, printResult(&buf, formatJSON, v))
		assert.JSONEq(t, `{"synced":3}`, buf.String())
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, printResult(&buf, formatYAML, v))
		assert.Equal(t, "synced: 3\n", buf.String())
	})
}

func TestReadDocuments(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "V123.xml")
	require.NoError(t, os.WriteFile(path, []byte("<xml/>"), 0o600))

	docs, err := readDocuments([]string{path})
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "V123.xml", docs[0].Name)
	assert.Equal(t, []byte("<xml/>"), docs[0].Data)

	_, err = readDocuments([]string{filepath.Join(dir, "missing.xml")})
	assert.Error(t, err)
}

func TestRootCommand_RejectsBadArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown entity", []string{"sync", "trucks"}, "invalid argument"},
		{"too many entities", []string{"sync", "drivers", "vehicles"}, "accepts at most 1 arg"},
		{"import without files", []string{"import-wincpl"}, "requires at least 1 arg"},
		{"unknown format", []string{"-o", "xml", "sync", "drivers"}, "unsupported format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := newRootCommand()
			root.SetArgs(tt.args)
			root.SetOut(&bytes.Buffer{})
			root.SetErr(&bytes.Buffer{})

			err := root.Execute()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
