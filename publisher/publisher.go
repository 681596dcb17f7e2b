package publisher

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// PersistenceError reports a failed backup or write of the output file.
type PersistenceError struct {
	Op   string
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// Publisher writes the final README, keeping the previous file as a backup.
type Publisher struct {
	verbose bool
	logger  *slog.Logger
}

func New(verbose bool, logger *slog.Logger) *Publisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{verbose: verbose, logger: logger}
}

func (p *Publisher) infof(format string, args ...any) {
	if !p.verbose {
		return
	}
	p.logger.Info(fmt.Sprintf(format, args...))
}

// BackupPath: README.md -> README.bak.md.
func BackupPath(path string) string {
	if strings.HasSuffix(path, ".md") {
		return strings.TrimSuffix(path, ".md") + ".bak.md"
	}
	return path + ".bak.md"
}

// Write renames an existing file to BackupPath, then writes content. Returns the backup path.
func (p *Publisher) Write(path, content string) (string, error) {
	if path == "" {
		return "", &PersistenceError{Op: "write", Path: path, Err: errors.New("output path is empty")}
	}
	if strings.TrimSpace(content) == "" {
		return "", &PersistenceError{Op: "write", Path: path, Err: errors.New("refusing to write empty content")}
	}

	var backup string
	info, err := os.Stat(path)
	switch {
	case err == nil && info.IsDir():
		return "", &PersistenceError{Op: "write", Path: path, Err: errors.New("output path is a directory")}
	case err == nil:
		backup = BackupPath(path)
		if err := os.Rename(path, backup); err != nil {
			return "", &PersistenceError{Op: "backup", Path: path, Err: err}
		}
		p.infof("Backed up existing file to %s", backup)
	case !errors.Is(err, os.ErrNotExist):
		return "", &PersistenceError{Op: "stat", Path: path, Err: err}
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return backup, &PersistenceError{Op: "mkdir", Path: dir, Err: err}
		}
	}
	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return backup, &PersistenceError{Op: "write", Path: path, Err: err}
	}
	p.infof("Wrote %d bytes to %s", len(content), path)
	return backup, nil
}
