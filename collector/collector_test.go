package collector

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func paths(t *testing.T, root string, opts Options) []string {
	t.Helper()
	files, err := Collect(root, opts)
	require.NoError(t, err)
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.Path
	}
	return out
}

func TestCollectFiltersAndSorts(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"main.go":                 "package main",
		"b/util.go":               "package b",
		"a.txt":                   "hello",
		"README.md":               "# old",
		".env":                    "SECRET=1",
		".env.local":              "SECRET=2",
		"node_modules/x/index.js": "x",
		"dist/bundle.js":          "x",
		"coverage/lcov.info":      "x",
		"logo.png":                "png",
		"package-lock.lock":       "{}",
		"site/index.html":         "<html>",
		"tmp/scratch.tmp":         "x",
		".gitignore":              "site/\n# comment\n*.tmp\n",
		"docs/guide/README.md":    "# nested readme",
		"docs/guide/setup.md":     "setup",
	})

	assert.Equal(t, []string{".gitignore", "a.txt", "b/util.go", "docs/guide/setup.md", "main.go"}, paths(t, root, Options{}))
}

func TestCollectSizeCapAndBinary(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"big.txt":   strings.Repeat("x", 64),
		"small.txt": "ok",
		"blob.bin":  "\x00\x01\x02",
	})
	files, err := Collect(root, Options{MaxBytes: 32})
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "blob.bin", files[0].Path)
	assert.Equal(t, Unreadable, files[0].Content)
	assert.Equal(t, "small.txt", files[1].Path)
	assert.Equal(t, "ok", files[1].Content)
}

func TestCollectExtraIgnores(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"keep.go": "x", "vendor/dep.go": "x"})
	assert.Equal(t, []string{"keep.go"}, paths(t, root, Options{ExtraIgnores: []string{"vendor"}}))
}

func TestCollectNoFiles(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"README.md": "# only readme"})
	_, err := Collect(root, Options{})
	assert.ErrorIs(t, err, ErrNoFiles)
}

func TestReadMetadata(t *testing.T) {
	t.Run("package.json", func(t *testing.T) {
		root := t.TempDir()
		writeTree(t, root, map[string]string{
			"package.json": `{"name":"readme-genie","description":"Writes READMEs"}`,
			"go.mod":       "module example.com/ignored\n",
		})
		meta, err := ReadMetadata(root)
		require.NoError(t, err)
		assert.Equal(t, "readme-genie", meta.Name)
		assert.Equal(t, "Writes READMEs", meta.Description)
		assert.Equal(t, "npm", meta.Ecosystem)
	})
	t.Run("go.mod", func(t *testing.T) {
		root := t.TempDir()
		writeTree(t, root, map[string]string{"go.mod": "module example.com/widget\n\ngo 1.25\n"})
		meta, err := ReadMetadata(root)
		require.NoError(t, err)
		assert.Equal(t, "example.com/widget", meta.Name)
		assert.Equal(t, "go", meta.Ecosystem)
	})
	t.Run("directory name", func(t *testing.T) {
		root := filepath.Join(t.TempDir(), "my-tool")
		require.NoError(t, os.Mkdir(root, 0o755))
		meta, err := ReadMetadata(root)
		require.NoError(t, err)
		assert.Equal(t, "my-tool", meta.Name)
		assert.Empty(t, meta.Ecosystem)
	})
	t.Run("broken package.json", func(t *testing.T) {
		root := t.TempDir()
		writeTree(t, root, map[string]string{"package.json": "{"})
		_, err := ReadMetadata(root)
		assert.Error(t, err)
	})
}
