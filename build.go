package cssmix

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// ErrOverwritesSource is recorded for a file whose output path is the
// source file itself, such as a .css source built without an OutputDir.
var ErrOverwritesSource = errors.New("output would overwrite the source file")

// Config describes a source tree to compile.
type Config struct {
	SourceDir    string   // "styles"
	OutputDir    string   // "public/css"; empty writes next to the sources
	Includes     []string // ["**/*.mcss"], relative to SourceDir
	UseGitIgnore bool     // skip files matched by SourceDir/.gitignore
	DryRun       bool     // compile without writing
	Options      Options
}

// FileWarning is a Warning found in a particular file.
type FileWarning struct {
	File    string // path relative to SourceDir
	Warning Warning
}

func (w FileWarning) String() string {
	return w.File + ":" + w.Warning.String()
}

// BuildResult contains build statistics.
type BuildResult struct {
	FilesScanned int
	FilesSkipped int
	FilesWritten int
	Outputs      []string // written paths, in source order
	Warnings     []FileWarning
	Errors       error // per-file failures combined with multierr
}

// Build compiles every source file matched by config and writes one .css
// file per source. A file that fails to compile is recorded in
// BuildResult.Errors and does not stop the others; the same combined error
// is returned.
func Build(config Config) (*BuildResult, error) {
	log := config.Options.logger().Named("build")
	result := &BuildResult{}

	files, stats, err := scanSources(config.SourceDir, config.Includes, config.UseGitIgnore)
	if err != nil {
		return nil, fmt.Errorf("scan failed: %w", err)
	}
	result.FilesScanned = stats.FilesScanned
	result.FilesSkipped = stats.FilesSkipped
	log.Debug("scanned sources",
		zap.Int("discovered", stats.FilesDiscovered),
		zap.Int("skipped", stats.FilesSkipped))

	catalog := config.Options.Catalog()
	for _, file := range files {
		rel := relativeTo(config.SourceDir, file)

		out := OutputPath(config.SourceDir, config.OutputDir, file)
		if samePath(out, file) {
			result.Errors = multierr.Append(result.Errors, fmt.Errorf("%s: %w", rel, ErrOverwritesSource))
			continue
		}

		src, err := os.ReadFile(file)
		if err != nil {
			result.Errors = multierr.Append(result.Errors, fmt.Errorf("%s: %w", rel, err))
			continue
		}

		compiled, err := compile(string(src), catalog, config.Options)
		if err != nil {
			log.Debug("compile failed", zap.String("file", rel), zap.Error(err))
			result.Errors = multierr.Append(result.Errors, fmt.Errorf("%s: %w", rel, err))
			continue
		}
		for _, w := range compiled.Warnings {
			result.Warnings = append(result.Warnings, FileWarning{File: rel, Warning: w})
		}

		if config.DryRun {
			log.Debug("dry run", zap.String("file", rel), zap.String("output", out))
			continue
		}
		if err := writeFile(out, compiled.CSS); err != nil {
			result.Errors = multierr.Append(result.Errors, fmt.Errorf("%s: %w", rel, err))
			continue
		}

		log.Debug("wrote output", zap.String("file", rel), zap.String("output", out))
		result.Outputs = append(result.Outputs, out)
		result.FilesWritten++
	}

	return result, result.Errors
}

// OutputPath maps a source file to its .css output. The path below
// sourceDir is mirrored under outputDir; an empty outputDir places the
// output next to the source.
func OutputPath(sourceDir, outputDir, file string) string {
	name := strings.TrimSuffix(file, filepath.Ext(file)) + ".css"
	if outputDir == "" {
		return name
	}
	return filepath.Join(outputDir, filepath.FromSlash(relativeTo(sourceDir, name)))
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}

func relativeTo(dir, file string) string {
	if dir == "" {
		dir = "."
	}
	rel, err := filepath.Rel(dir, file)
	if err != nil {
		return file
	}
	return filepath.ToSlash(rel)
}

func writeFile(path, css string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if css != "" {
		css += "\n"
	}
	if err := os.WriteFile(path, []byte(css), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
