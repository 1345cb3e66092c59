package cssmix

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"
)

// DefaultIncludes matches every source file below the source directory.
var DefaultIncludes = []string{"**/*.mcss"}

// ScanStats tracks file discovery.
type ScanStats struct {
	FilesDiscovered int // Total files found by glob patterns
	FilesScanned    int // Files kept after filtering
	FilesSkipped    int // Files skipped by .gitignore
}

// loadGitIgnore compiles <dir>/.gitignore.
// A missing file is not an error; nil is returned.
func loadGitIgnore(dir string) *ignore.GitIgnore {
	gi, err := ignore.CompileIgnoreFile(filepath.Join(dir, ".gitignore"))
	if err != nil {
		return nil
	}
	return gi
}

// scanSources expands the include patterns below sourceDir and returns the
// matching regular files, sorted and de-duplicated.
func scanSources(sourceDir string, includes []string, useGitIgnore bool) ([]string, ScanStats, error) {
	var stats ScanStats

	if len(includes) == 0 {
		includes = DefaultIncludes
	}
	if sourceDir == "" {
		sourceDir = "."
	}

	var gi *ignore.GitIgnore
	if useGitIgnore {
		gi = loadGitIgnore(sourceDir)
	}

	seen := make(map[string]bool)
	var files []string
	for _, pattern := range includes {
		// Combine source dir with pattern; doublestar handles "**".
		matches, err := doublestar.FilepathGlob(filepath.Join(sourceDir, pattern))
		if err != nil {
			return nil, stats, fmt.Errorf("glob pattern %q: %w", pattern, err)
		}

		for _, m := range matches {
			if seen[m] {
				continue
			}
			seen[m] = true

			info, err := os.Stat(m)
			if err != nil || info.IsDir() {
				continue
			}
			stats.FilesDiscovered++

			if gi != nil {
				if rel, err := filepath.Rel(sourceDir, m); err == nil && gi.MatchesPath(rel) {
					stats.FilesSkipped++
					continue
				}
			}
			files = append(files, m)
		}
	}

	sort.Strings(files)
	stats.FilesScanned = len(files)
	return files, stats, nil
}
