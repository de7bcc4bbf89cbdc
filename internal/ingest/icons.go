package ingest

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/chronoline/backend/internal/pkg/logger"
)

// IconSet maps category identifiers to locally-served placeholder images.
// Loaded once at startup from the category icon directory and read-only
// afterwards, so it is safe to share across runs.
type IconSet struct {
	icons map[string]string
}

// LoadIconSet scans dir for *.svg files; each file's stem is a category id
// and the stored value is the public URL path the frontend serves it under.
// A missing directory is not fatal: events then persist without fallback
// images.
func LoadIconSet(dir string, log *logger.Logger) (*IconSet, error) {
	set := &IconSet{icons: map[string]string{}}
	if dir == "" {
		return set, nil
	}
	matches, err := filepath.Glob(filepath.Join(dir, "*.svg"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan icon directory %s: %w", dir, err)
	}
	for _, m := range matches {
		name := filepath.Base(m)
		category := strings.TrimSuffix(name, filepath.Ext(name))
		set.icons[category] = "/images/categories/" + name
	}
	if log != nil {
		if len(set.icons) == 0 {
			log.Warn("No category icons found", "dir", dir)
		} else {
			log.Info("Loaded category icons", "dir", dir, "count", len(set.icons))
		}
	}
	return set, nil
}

// NewIconSet builds an IconSet from an explicit mapping. Used by tests and
// by deployments that bundle the mapping instead of shipping a directory.
func NewIconSet(icons map[string]string) *IconSet {
	cp := make(map[string]string, len(icons))
	for k, v := range icons {
		cp[k] = v
	}
	return &IconSet{icons: cp}
}

// Resolve returns the placeholder image for a category: exact match first,
// then one retry against the parent segment of a hierarchical id
// ("space_exploration.moon_landing" falls back to "space_exploration").
func (s *IconSet) Resolve(category string) (string, bool) {
	if s == nil || category == "" {
		return "", false
	}
	if url, ok := s.icons[category]; ok {
		return url, true
	}
	if parent, _, found := strings.Cut(category, "."); found {
		if url, ok := s.icons[parent]; ok {
			return url, true
		}
	}
	return "", false
}

// Len reports how many placeholder images are registered.
func (s *IconSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.icons)
}
