package migration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreate(t *testing.T) {
	t.Run("writes a matching up and down pair", func(t *testing.T) {
		dir := t.TempDir()

		p, err := Create(dir, "add inbound tables", "Inbound receipt and line tables")
		require.NoError(t, err)

		assert.Len(t, p.Version, len(versionLayout))
		assert.Equal(t, filepath.Join(dir, p.Version+"_add_inbound_tables.up.sql"), p.UpPath)
		assert.Equal(t, filepath.Join(dir, p.Version+"_add_inbound_tables.down.sql"), p.DownPath)

		up, err := os.ReadFile(p.UpPath)
		require.NoError(t, err)
		assert.Contains(t, string(up), "-- Migration: add inbound tables")
		assert.Contains(t, string(up), "-- Description: Inbound receipt and line tables")

		down, err := os.ReadFile(p.DownPath)
		require.NoError(t, err)
		assert.Contains(t, string(down), "(Rollback)")
		assert.Contains(t, string(down), "Rollback for Inbound receipt and line tables")
	})

	t.Run("creates the directory when missing", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "migrations")

		p, err := Create(dir, "init", "")
		require.NoError(t, err)
		assert.FileExists(t, p.UpPath)
		assert.FileExists(t, p.DownPath)
	})
}

func TestList(t *testing.T) {
	t.Run("lists up files by base name", func(t *testing.T) {
		dir := t.TempDir()
		for _, name := range []string{
			"20260101000000_first.up.sql",
			"20260101000000_first.down.sql",
			"20260201000000_second.up.sql",
			"20260201000000_second.down.sql",
			"notes.txt",
		} {
			require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0644))
		}

		names, err := List(dir)
		require.NoError(t, err)
		assert.Equal(t, []string{"20260101000000_first", "20260201000000_second"}, names)
	})

	t.Run("missing directory lists as empty", func(t *testing.T) {
		names, err := List(filepath.Join(t.TempDir(), "nope"))
		require.NoError(t, err)
		assert.Empty(t, names)
	})
}

func TestSlug(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"add users table", "add_users_table"},
		{"Add-Users--Table", "add_users_table"},
		{"  spaced  out  ", "spaced_out"},
		{"v2 schema!", "v2_schema"},
		{"___", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, slug(tt.in))
		})
	}
}
