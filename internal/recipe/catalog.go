package recipe

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/hammamikhairi/kochbuch/internal/domain"
)

// catalogFile is the on-disk layout of a recipe catalog.
type catalogFile struct {
	Recipes []domain.Recipe `yaml:"recipes"`
}

// LoadCatalog reads recipes from a YAML catalog file. Recipe IDs and
// slugs must be unique and non-empty.
func LoadCatalog(path string) ([]*domain.Recipe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing catalog %s: %w", path, err)
	}

	ids := make(map[string]bool, len(file.Recipes))
	slugs := make(map[string]bool, len(file.Recipes))
	out := make([]*domain.Recipe, 0, len(file.Recipes))
	for i := range file.Recipes {
		r := file.Recipes[i]
		if r.ID == "" || r.Slug == "" {
			return nil, fmt.Errorf("catalog %s: recipe %d (%q) needs an id and a slug", path, i+1, r.Name)
		}
		if ids[r.ID] || slugs[r.Slug] {
			return nil, fmt.Errorf("catalog %s: recipe %q: %w", path, r.Slug, domain.ErrAlreadyExists)
		}
		ids[r.ID], slugs[r.Slug] = true, true
		out = append(out, &r)
	}
	return out, nil
}

// SaveCatalog writes recipes to path, replacing it atomically.
func SaveCatalog(path string, recipes []domain.Recipe) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(catalogFile{Recipes: recipes}); err != nil {
		return fmt.Errorf("encoding catalog: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encoding catalog: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".catalog-*.yaml")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
