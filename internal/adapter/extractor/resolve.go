package extractor

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"gitamind/internal/domain"
)

// ResolveSource turns the configured source location into a single file path.
// Glob patterns (doublestar syntax) resolve to their lexically first match.
func ResolveSource(pattern string) (string, error) {
	if pattern == "" {
		return "", fmt.Errorf("%w: no source configured", domain.ErrDocumentUnavailable)
	}

	if !hasMeta(pattern) {
		info, err := os.Stat(pattern)
		if err != nil {
			return "", fmt.Errorf("%w: %v", domain.ErrDocumentUnavailable, err)
		}
		if info.IsDir() {
			return "", fmt.Errorf("%w: %s is a directory", domain.ErrDocumentUnavailable, pattern)
		}
		return pattern, nil
	}

	all, err := doublestar.FilepathGlob(filepath.Clean(pattern))
	if err != nil {
		return "", fmt.Errorf("%w: bad pattern %q: %v", domain.ErrDocumentUnavailable, pattern, err)
	}

	matches := all[:0]
	for _, m := range all {
		if info, err := os.Stat(m); err == nil && !info.IsDir() {
			matches = append(matches, m)
		}
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("%w: nothing matches %q", domain.ErrDocumentUnavailable, pattern)
	}

	sort.Strings(matches)
	return matches[0], nil
}

func hasMeta(pattern string) bool {
	for _, r := range pattern {
		switch r {
		case '*', '?', '[', '{':
			return true
		}
	}
	return false
}
