// SPDX-FileCopyrightText: 2026 glistix
// SPDX-License-Identifier: FSL-1.1-MIT

// Package scanner discovers typed-IR documents for code generation.
package scanner

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Config holds scanner configuration.
type Config struct {
	// BasePath is the base directory for scanning (defaults to the
	// current directory)
	BasePath string

	// IncludePatterns are glob patterns for files to include
	IncludePatterns []string

	// ExcludePatterns are glob patterns for files to exclude
	ExcludePatterns []string
}

// Document is one discovered typed-IR document.
type Document struct {
	// Path is the absolute file path
	Path string

	// RelPath is the path relative to the scan base
	RelPath string

	// Content is the raw document
	Content []byte
}

// Scanner discovers typed-IR documents under a base path.
type Scanner struct {
	config Config
}

// New creates a new Scanner with the given configuration.
func New(config Config) *Scanner {
	if config.BasePath == "" {
		config.BasePath = "."
	}
	if len(config.IncludePatterns) == 0 {
		config.IncludePatterns = []string{"**/*.gleam_ir.json"}
	}
	return &Scanner{config: config}
}

// Scan discovers all documents matching the configuration.
func (s *Scanner) Scan() ([]Document, error) {
	basePath, err := filepath.Abs(s.config.BasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve base path: %w", err)
	}

	info, err := os.Stat(basePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("path does not exist: %s", basePath)
		}
		return nil, fmt.Errorf("failed to stat path: %w", err)
	}

	if !info.IsDir() {
		content, err := os.ReadFile(basePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", basePath, err)
		}
		return []Document{{Path: basePath, RelPath: filepath.Base(basePath), Content: content}}, nil
	}

	var documents []Document
	err = filepath.WalkDir(basePath, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return nil // Skip inaccessible paths
		}
		if entry.IsDir() {
			base := filepath.Base(path)
			if path != basePath && strings.HasPrefix(base, ".") {
				return filepath.SkipDir
			}
			return nil
		}

		relPath, err := filepath.Rel(basePath, path)
		if err != nil {
			return nil
		}
		if !s.Matches(relPath) {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		documents = append(documents, Document{Path: path, RelPath: relPath, Content: content})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return documents, nil
}

// Matches reports whether a base-relative path passes the include and
// exclude patterns.
func (s *Scanner) Matches(relPath string) bool {
	relPath = filepath.ToSlash(relPath)

	included := false
	for _, pattern := range s.config.IncludePatterns {
		if matched, _ := doublestar.Match(pattern, relPath); matched {
			included = true
			break
		}
	}
	if !included {
		return false
	}

	for _, pattern := range s.config.ExcludePatterns {
		if matched, _ := doublestar.Match(pattern, relPath); matched {
			return false
		}
	}
	return true
}
