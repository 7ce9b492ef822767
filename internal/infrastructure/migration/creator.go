package migration

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// versionLayout orders migration files lexicographically by creation time.
const versionLayout = "20060102150405"

// Pair is one schema version: an up file and its rollback.
type Pair struct {
	Version  string
	UpPath   string
	DownPath string
}

// Create writes a skeleton up/down file pair into dir, named
// <version>_<slug>.up.sql and .down.sql. The header format matches
// the hand-written migrations already in the directory.
func Create(dir, name, description string) (*Pair, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create migrations dir: %w", err)
	}

	now := time.Now()
	version := now.Format(versionLayout)
	base := version + "_" + slug(name)

	p := &Pair{
		Version:  version,
		UpPath:   filepath.Join(dir, base+".up.sql"),
		DownPath: filepath.Join(dir, base+".down.sql"),
	}

	created := now.Format(time.RFC3339)
	up := fmt.Sprintf("-- Migration: %s\n-- Created: %s\n-- Description: %s\n\n-- Write your UP migration SQL here\n\n",
		name, created, description)
	down := fmt.Sprintf("-- Migration: %s (Rollback)\n-- Created: %s\n-- Description: Rollback for %s\n\n-- Write your DOWN migration SQL here\n\n",
		name, created, description)

	if err := os.WriteFile(p.UpPath, []byte(up), 0644); err != nil {
		return nil, fmt.Errorf("write up file: %w", err)
	}
	if err := os.WriteFile(p.DownPath, []byte(down), 0644); err != nil {
		_ = os.Remove(p.UpPath)
		return nil, fmt.Errorf("write down file: %w", err)
	}

	return p, nil
}

// List returns the base names of the migration pairs in dir, in
// version order. A missing directory lists as empty.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read migrations dir: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if base, ok := strings.CutSuffix(entry.Name(), ".up.sql"); ok {
			names = append(names, base)
		}
	}
	return names, nil
}

// slug lowercases the name and squashes anything that is not a
// letter or digit into single underscores.
func slug(name string) string {
	var b strings.Builder
	lastUnderscore := true
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastUnderscore = false
		case r == ' ' || r == '-' || r == '_':
			if !lastUnderscore {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}
