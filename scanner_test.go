package cssmix

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanSources(t *testing.T) {
	dir := writeTree(t, map[string]string{
		".gitignore":        "dist/\n*.draft.mcss\n",
		"a.mcss":            "",
		"nested/b.mcss":     "",
		"nested/c.css":      "",
		"dist/out.mcss":     "",
		"wip.draft.mcss":    "",
		"themes/dark.mcss":  "",
		"themes/light.mcss": "",
	})

	tests := []struct {
		name      string
		includes  []string
		gitignore bool
		want      []string
		skipped   int
	}{
		{
			name: "default includes",
			want: []string{"a.mcss", "dist/out.mcss", "nested/b.mcss", "themes/dark.mcss", "themes/light.mcss", "wip.draft.mcss"},
		},
		{
			name:      "gitignore filtering",
			gitignore: true,
			want:      []string{"a.mcss", "nested/b.mcss", "themes/dark.mcss", "themes/light.mcss"},
			skipped:   2,
		},
		{
			name:     "overlapping patterns are de-duplicated",
			includes: []string{"themes/*.mcss", "**/dark.mcss"},
			want:     []string{"themes/dark.mcss", "themes/light.mcss"},
		},
		{
			name:     "other extensions",
			includes: []string{"**/*.css"},
			want:     []string{"nested/c.css"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files, stats, err := scanSources(dir, tt.includes, tt.gitignore)
			require.NoError(t, err)

			var rel []string
			for _, f := range files {
				r, err := filepath.Rel(dir, f)
				require.NoError(t, err)
				rel = append(rel, filepath.ToSlash(r))
			}
			assert.Equal(t, tt.want, rel)
			assert.Equal(t, len(tt.want), stats.FilesScanned)
			assert.Equal(t, tt.skipped, stats.FilesSkipped)
		})
	}
}

func TestScanSourcesBadPattern(t *testing.T) {
	_, _, err := scanSources(t.TempDir(), []string{"[unclosed"}, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `glob pattern "[unclosed"`)
}
