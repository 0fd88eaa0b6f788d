package store

import (
	"sync"

	"github.com/etecplus/datafeeds/internal/mapping"
	domain "github.com/etecplus/datafeeds/pkg/types"
)

// Memory is an in-memory Store used by tests and one-shot runs that
// assemble their configuration programmatically.
type Memory struct {
	mu        sync.Mutex
	suppliers map[string]Supplier
	mappings  map[string]mapping.RuleSet
	template  domain.Schema
}

func NewMemory() *Memory {
	return &Memory{
		suppliers: make(map[string]Supplier),
		mappings:  make(map[string]mapping.RuleSet),
	}
}

func (m *Memory) LoadSuppliers() (map[string]Supplier, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]Supplier, len(m.suppliers))
	for k, v := range m.suppliers {
		out[k] = v
	}
	return out, nil
}

func (m *Memory) SaveSuppliers(suppliers map[string]Supplier) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.suppliers = make(map[string]Supplier, len(suppliers))
	for k, v := range suppliers {
		m.suppliers[k] = v
	}
	return nil
}

func (m *Memory) LoadMappings() (map[string]mapping.RuleSet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]mapping.RuleSet, len(m.mappings))
	for k, v := range m.mappings {
		out[k] = v
	}
	return out, nil
}

func (m *Memory) SaveMappings(mappings map[string]mapping.RuleSet) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mappings = make(map[string]mapping.RuleSet, len(mappings))
	for k, v := range mappings {
		m.mappings[k] = v
	}
	return nil
}

func (m *Memory) LoadTemplate() (domain.Schema, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.template, nil
}

func (m *Memory) SaveTemplate(schema domain.Schema) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.template = schema
	return nil
}
