package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/etecplus/datafeeds/internal/mapping"
	domain "github.com/etecplus/datafeeds/pkg/types"
)

const (
	suppliersFile = "suppliers.json"
	mappingsFile  = "supplier_mappings.json"
	templateFile  = "shopify_template.json"
)

// FileStore keeps each configuration document as a pretty-printed JSON
// file under a single directory so operators can inspect and edit the
// state by hand.
type FileStore struct {
	dir string
}

// NewFileStore returns a store rooted at dir. The directory is created
// on first write, not here.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (fsr *FileStore) LoadSuppliers() (map[string]Supplier, error) {
	suppliers := make(map[string]Supplier)
	if err := fsr.readJSON(suppliersFile, &suppliers); err != nil {
		return nil, err
	}
	return suppliers, nil
}

func (fsr *FileStore) SaveSuppliers(suppliers map[string]Supplier) error {
	return fsr.writeJSON(suppliersFile, suppliers)
}

func (fsr *FileStore) LoadMappings() (map[string]mapping.RuleSet, error) {
	mappings := make(map[string]mapping.RuleSet)
	if err := fsr.readJSON(mappingsFile, &mappings); err != nil {
		return nil, err
	}
	for key, rs := range mappings {
		if rs.Supplier == "" {
			rs.Supplier = key
			mappings[key] = rs
		}
	}
	return mappings, nil
}

func (fsr *FileStore) SaveMappings(mappings map[string]mapping.RuleSet) error {
	return fsr.writeJSON(mappingsFile, mappings)
}

// templateDoc is the on-disk shape of the Shopify template. Only the
// column list matters to the pipeline.
type templateDoc struct {
	Columns []string `json:"columns"`
}

func (fsr *FileStore) LoadTemplate() (domain.Schema, error) {
	var doc templateDoc
	if err := fsr.readJSON(templateFile, &doc); err != nil {
		return domain.Schema{}, err
	}
	return domain.NewSchema(doc.Columns), nil
}

func (fsr *FileStore) SaveTemplate(schema domain.Schema) error {
	return fsr.writeJSON(templateFile, templateDoc{Columns: schema.Fields})
}

func (fsr *FileStore) readJSON(name string, v any) error {
	data, err := os.ReadFile(filepath.Join(fsr.dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parsing %s: %w", name, err)
	}
	return nil
}

func (fsr *FileStore) writeJSON(name string, v any) error {
	if err := os.MkdirAll(fsr.dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", name, err)
	}
	path := filepath.Join(fsr.dir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replacing %s: %w", name, err)
	}
	return nil
}
