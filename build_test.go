package cssmix

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

func TestBuild(t *testing.T) {
	src := writeTree(t, map[string]string{
		"base.mcss":            `.a { bold(); }`,
		"components/card.mcss": ".card {\n\tblock(10);\n\tnope();\n}",
		"notes.txt":            "ignored",
	})
	out := t.TempDir()

	result, err := Build(Config{SourceDir: src, OutputDir: out})
	require.NoError(t, err)

	assert.Equal(t, 2, result.FilesScanned)
	assert.Equal(t, 2, result.FilesWritten)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, "components/card.mcss", result.Warnings[0].File)
	assert.Equal(t, "components/card.mcss:3:2: unknown mixin: nope", result.Warnings[0].String())

	css, err := os.ReadFile(filepath.Join(out, "components", "card.css"))
	require.NoError(t, err)
	assert.Equal(t, ".card {\n\tdisplay: block;\n\twidth: 10rem;\n}\n", string(css))

	css, err = os.ReadFile(filepath.Join(out, "base.css"))
	require.NoError(t, err)
	assert.Equal(t, ".a {\n\tfont-weight: bold;\n}\n", string(css))
}

func TestBuildCollectsFileErrors(t *testing.T) {
	src := writeTree(t, map[string]string{
		"bad.mcss":    `.a { color: red;`,
		"broken.mcss": `.a { size(); }`,
		"good.mcss":   `.a { hide(); }`,
	})
	out := t.TempDir()

	result, err := Build(Config{SourceDir: src, OutputDir: out})
	require.Error(t, err)
	require.NotNil(t, result)

	errs := multierr.Errors(err)
	require.Len(t, errs, 2)
	assert.Contains(t, errs[0].Error(), "bad.mcss: parse:")
	assert.Contains(t, errs[1].Error(), "broken.mcss: resolve:")

	assert.Equal(t, 1, result.FilesWritten)
	assert.FileExists(t, filepath.Join(out, "good.css"))
	assert.NoFileExists(t, filepath.Join(out, "bad.css"))
}

func TestBuildDryRun(t *testing.T) {
	src := writeTree(t, map[string]string{"a.mcss": `.a { hide(); }`})
	out := filepath.Join(t.TempDir(), "css")

	result, err := Build(Config{SourceDir: src, OutputDir: out, DryRun: true})
	require.NoError(t, err)
	assert.Equal(t, 0, result.FilesWritten)
	assert.NoDirExists(t, out)
}

func TestBuildRefusesToOverwriteSources(t *testing.T) {
	const source = ".a { block(10); }"

	tests := []struct {
		name   string
		output func(src string) string
	}{
		{name: "no output directory", output: func(string) string { return "" }},
		{name: "output directory is the source directory", output: func(src string) string { return src }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := writeTree(t, map[string]string{
				"a.css":  source,
				"b.mcss": `.b { hide(); }`,
			})

			result, err := Build(Config{
				SourceDir: src,
				OutputDir: tt.output(src),
				Includes:  []string{"**/*.css", "**/*.mcss"},
			})
			require.ErrorIs(t, err, ErrOverwritesSource)
			require.NotNil(t, result)
			assert.Contains(t, err.Error(), "a.css: output would overwrite the source file")

			// The other file is still built
			assert.Equal(t, 1, result.FilesWritten)
			assert.FileExists(t, filepath.Join(src, "b.css"))

			data, err := os.ReadFile(filepath.Join(src, "a.css"))
			require.NoError(t, err)
			assert.Equal(t, source, string(data))
		})
	}
}

func TestBuildGitIgnore(t *testing.T) {
	src := writeTree(t, map[string]string{
		".gitignore":       "vendor/\n",
		"a.mcss":           `.a { hide(); }`,
		"vendor/lib.mcss":  `.b { show(); }`,
		"vendor/more.mcss": `.c { show(); }`,
	})

	result, err := Build(Config{SourceDir: src, UseGitIgnore: true, DryRun: true})
	require.NoError(t, err)
	assert.Equal(t, 1, result.FilesScanned)
	assert.Equal(t, 2, result.FilesSkipped)

	result, err = Build(Config{SourceDir: src, DryRun: true})
	require.NoError(t, err)
	assert.Equal(t, 3, result.FilesScanned)
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		name      string
		sourceDir string
		outputDir string
		file      string
		want      string
	}{
		{"next to source", "styles", "", "styles/a/b.mcss", "styles/a/b.css"},
		{"mirrored under output", "styles", "public", "styles/a/b.mcss", "public/a/b.css"},
		{"top level", "styles", "out", "styles/main.mcss", "out/main.css"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := OutputPath(tt.sourceDir, tt.outputDir, filepath.FromSlash(tt.file))
			assert.Equal(t, filepath.FromSlash(tt.want), got)
		})
	}
}
