// SPDX-FileCopyrightText: 2026 glistix
// SPDX-License-Identifier: FSL-1.1-MIT

package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestScan_FindsMatchingDocuments(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "my/mod.gleam_ir.json", `{"name":"my/mod"}`)
	writeFile(t, dir, "other.gleam_ir.json", `{"name":"other"}`)
	writeFile(t, dir, "readme.md", "not a document")

	s := New(Config{BasePath: dir})
	documents, err := s.Scan()
	require.NoError(t, err)
	require.Len(t, documents, 2)

	relPaths := []string{documents[0].RelPath, documents[1].RelPath}
	assert.Contains(t, relPaths, filepath.FromSlash("my/mod.gleam_ir.json"))
	assert.Contains(t, relPaths, "other.gleam_ir.json")
}

func TestScan_ExcludePatterns(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "keep.gleam_ir.json", `{}`)
	writeFile(t, dir, "build/skip.gleam_ir.json", `{}`)

	s := New(Config{
		BasePath:        dir,
		ExcludePatterns: []string{"build/**"},
	})
	documents, err := s.Scan()
	require.NoError(t, err)
	require.Len(t, documents, 1)
	assert.Equal(t, "keep.gleam_ir.json", documents[0].RelPath)
}

func TestScan_SkipsHiddenDirectories(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".git/hidden.gleam_ir.json", `{}`)
	writeFile(t, dir, "visible.gleam_ir.json", `{}`)

	s := New(Config{BasePath: dir})
	documents, err := s.Scan()
	require.NoError(t, err)
	require.Len(t, documents, 1)
	assert.Equal(t, "visible.gleam_ir.json", documents[0].RelPath)
}

func TestScan_SingleFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "mod.gleam_ir.json", `{"name":"mod"}`)

	documents, err := New(Config{BasePath: path}).Scan()
	require.NoError(t, err)
	require.Len(t, documents, 1)
	assert.Equal(t, path, documents[0].Path)
	assert.Equal(t, `{"name":"mod"}`, string(documents[0].Content))
}

func TestScan_MissingPath(t *testing.T) {
	_, err := New(Config{BasePath: filepath.Join(t.TempDir(), "nope")}).Scan()
	assert.ErrorContains(t, err, "does not exist")
}

func TestMatches(t *testing.T) {
	s := New(Config{
		IncludePatterns: []string{"**/*.gleam_ir.json"},
		ExcludePatterns: []string{"vendor/**"},
	})

	assert.True(t, s.Matches("a/b.gleam_ir.json"))
	assert.True(t, s.Matches("top.gleam_ir.json"))
	assert.False(t, s.Matches("a/b.json"))
	assert.False(t, s.Matches("vendor/c.gleam_ir.json"))
}
