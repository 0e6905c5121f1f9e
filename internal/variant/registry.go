package variant

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/jonathan/cv-builder/internal/schemas"
	"github.com/jonathan/cv-builder/internal/types"
	embedded "github.com/jonathan/cv-builder/schemas"
	"gopkg.in/yaml.v3"
)

// Registry holds the variants known to a process, keyed by name.
type Registry struct {
	mu       sync.RWMutex
	variants map[string]*types.Variant
	order    []string
}

// NewRegistry returns a registry preloaded with the built-in variants.
func NewRegistry() *Registry {
	r := &Registry{variants: make(map[string]*types.Variant)}
	for _, v := range Builtins() {
		r.variants[v.Name] = v
		r.order = append(r.order, v.Name)
	}
	return r
}

// Get returns the named variant.
func (r *Registry) Get(name string) (*types.Variant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.variants[name]
	if !ok {
		return nil, &UnknownVariantError{Name: name}
	}
	return v, nil
}

// Names returns registered variant names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

// Register validates v and adds it under v.Name.
func (r *Registry) Register(v *types.Variant) error {
	if err := Validate(v); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.variants[v.Name]; exists {
		return &DuplicateVariantError{Name: v.Name}
	}
	r.variants[v.Name] = v
	r.order = append(r.order, v.Name)
	return nil
}

// LoadDir registers every *.json, *.yaml and *.yml variant definition in dir,
// in lexical file order. It returns the names that were registered.
func (r *Registry) LoadDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &LoadError{Path: dir, Message: "failed to read variants directory", Cause: err}
	}

	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !isDefinitionFile(e.Name()) {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)

	names := make([]string, 0, len(files))
	for _, path := range files {
		v, err := Load(path)
		if err != nil {
			return names, err
		}
		if err := r.Register(v); err != nil {
			return names, fmt.Errorf("failed to register variant from %s: %w", path, err)
		}
		names = append(names, v.Name)
	}
	return names, nil
}

func isDefinitionFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}

// Load reads a variant definition from a JSON or YAML file, checks it against
// the variant JSON Schema and validates it.
func Load(path string) (*types.Variant, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Message: "failed to read file", Cause: err}
	}
	return Parse(path, data)
}

// Parse decodes a variant definition. The format is chosen from the file
// extension of name; anything other than .json is read as YAML.
func Parse(name string, data []byte) (*types.Variant, error) {
	var raw map[string]any
	var v types.Variant

	if strings.EqualFold(filepath.Ext(name), ".json") {
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, &LoadError{Path: name, Message: "failed to parse JSON", Cause: err}
		}
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&v); err != nil {
			return nil, &LoadError{Path: name, Message: "failed to decode variant", Cause: err}
		}
	} else {
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, &LoadError{Path: name, Message: "failed to parse YAML", Cause: err}
		}
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&v); err != nil {
			return nil, &LoadError{Path: name, Message: "failed to decode variant", Cause: err}
		}
	}

	if err := schemas.ValidateValue(embedded.Variant, raw); err != nil {
		return nil, &LoadError{Path: name, Message: "variant does not match schema", Cause: err}
	}
	if err := Validate(&v); err != nil {
		return nil, err
	}
	return &v, nil
}
