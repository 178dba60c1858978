package database

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// Catalog maps dataset names to tables. It is safe for concurrent use.
type Catalog struct {
	tables map[string]Table
	mu     sync.RWMutex
}

// NewCatalog creates a new empty catalog
func NewCatalog() *Catalog {
	return &Catalog{
		tables: make(map[string]Table),
	}
}

// RegisterTable adds a table to the catalog, replacing any table of the same name
func (c *Catalog) RegisterTable(name string, t Table) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tables[name] = t
}

// RegisterFile registers a JSON or JSONL file under name. The file must exist.
func (c *Catalog) RegisterFile(name, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("dataset '%s': %w", name, err)
	}
	if info.IsDir() {
		return fmt.Errorf("dataset '%s': %s is a directory", name, path)
	}
	c.RegisterTable(name, NewJSONTable(path))
	return nil
}

// LoadDir registers every *.json and *.jsonl file in dir under its base
// name without extension. It returns the number of datasets added.
func (c *Catalog) LoadDir(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("failed to read data directory: %w", err)
	}
	n := 0
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := filepath.Ext(e.Name())
		if ext != ".json" && ext != ".jsonl" {
			continue
		}
		c.RegisterTable(strings.TrimSuffix(e.Name(), ext), NewJSONTable(filepath.Join(dir, e.Name())))
		n++
	}
	return n, nil
}

// GetTable retrieves a table by name
func (c *Catalog) GetTable(name string) (Table, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	t, ok := c.tables[name]
	if !ok {
		return nil, fmt.Errorf("table '%s' not found", name)
	}
	return t, nil
}

// Names returns the registered dataset names in sorted order.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.tables))
	for name := range c.tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
