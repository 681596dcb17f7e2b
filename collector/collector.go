package collector

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/go-git/go-git/v5/plumbing/format/gitignore"

	"readme_genie/generator"
)

// MaxFileBytes is the largest file that is read into the prompt.
const MaxFileBytes = 5 * 1024 * 1024

// Unreadable replaces the content of files that cannot be read as text.
const Unreadable = "[Binary or unreadable file]"

// ErrNoFiles is returned when nothing survives filtering.
var ErrNoFiles = errors.New("no files found to analyze")

var defaultIgnores = []string{"node_modules", ".git", "dist", "coverage", "README.md", ".env*"}

var skipExtRe = regexp.MustCompile(`\.(png|jpe?g|zip|exe|dll|lock)$`)

// Options tunes a collection run. Zero values mean the defaults above.
type Options struct {
	MaxBytes     int64
	ExtraIgnores []string
	Logger       *slog.Logger
}

// Collect walks root and returns every relevant file sorted by slash-separated path.
func Collect(root string, opts Options) ([]generator.ProjectFile, error) {
	if opts.MaxBytes <= 0 {
		opts.MaxBytes = MaxFileBytes
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("collector: resolve root: %w", err)
	}

	patterns := parsePatterns(append(append([]string{}, defaultIgnores...), opts.ExtraIgnores...))
	gi, err := readGitignore(filepath.Join(abs, ".gitignore"))
	if err != nil {
		return nil, err
	}
	patterns = append(patterns, gi...)
	matcher := gitignore.NewMatcher(patterns)

	var files []generator.ProjectFile
	err = filepath.WalkDir(abs, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			logger.Debug("skipping unreadable path", "path", path, "error", walkErr)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if path == abs {
			return nil
		}
		rel, err := filepath.Rel(abs, path)
		if err != nil {
			return err
		}
		parts := strings.Split(filepath.ToSlash(rel), "/")
		if matcher.Match(parts, d.IsDir()) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}

		slashRel := filepath.ToSlash(rel)
		if skipExtRe.MatchString(slashRel) {
			return nil
		}
		info, err := d.Info()
		if err != nil || info.Size() > opts.MaxBytes {
			return nil
		}
		files = append(files, generator.ProjectFile{Path: slashRel, Content: readText(path)})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("collector: walk %s: %w", abs, err)
	}
	if len(files) == 0 {
		return nil, ErrNoFiles
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	logger.Debug("collected project files", "root", abs, "count", len(files))
	return files, nil
}

func readText(path string) string {
	data, err := os.ReadFile(path)
	if err != nil || !utf8.Valid(data) || bytes.IndexByte(data, 0) >= 0 {
		return Unreadable
	}
	return string(data)
}

func parsePatterns(lines []string) []gitignore.Pattern {
	var ps []gitignore.Pattern
	for _, line := range lines {
		line = strings.TrimRight(line, " \t\r")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		ps = append(ps, gitignore.ParsePattern(line, nil))
	}
	return ps
}

func readGitignore(path string) ([]gitignore.Pattern, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("collector: open .gitignore: %w", err)
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("collector: read .gitignore: %w", err)
	}
	return parsePatterns(lines), nil
}
