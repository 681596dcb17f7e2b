package collector

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/mod/modfile"

	"readme_genie/generator"
)

type packageJSON struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ReadMetadata identifies the project at root: package.json first, then go.mod, then the
// directory name.
func ReadMetadata(root string) (generator.ProjectMetadata, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return generator.ProjectMetadata{}, fmt.Errorf("metadata: resolve root: %w", err)
	}

	data, err := os.ReadFile(filepath.Join(abs, "package.json"))
	switch {
	case err == nil:
		var pkg packageJSON
		if err := json.Unmarshal(data, &pkg); err != nil {
			return generator.ProjectMetadata{}, fmt.Errorf("metadata: parse package.json: %w", err)
		}
		if pkg.Name != "" {
			return generator.ProjectMetadata{Name: pkg.Name, Description: pkg.Description, Ecosystem: "npm"}, nil
		}
	case !errors.Is(err, fs.ErrNotExist):
		return generator.ProjectMetadata{}, fmt.Errorf("metadata: read package.json: %w", err)
	}

	data, err = os.ReadFile(filepath.Join(abs, "go.mod"))
	switch {
	case err == nil:
		if path := modfile.ModulePath(data); path != "" {
			return generator.ProjectMetadata{Name: path, Ecosystem: "go"}, nil
		}
	case !errors.Is(err, fs.ErrNotExist):
		return generator.ProjectMetadata{}, fmt.Errorf("metadata: read go.mod: %w", err)
	}

	return generator.ProjectMetadata{Name: filepath.Base(abs)}, nil
}
