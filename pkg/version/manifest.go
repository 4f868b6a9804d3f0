package version

import (
	"embed"
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed manifests/*.yaml
var manifestFS embed.FS

// Manifest lists the RPC methods a protocol version defines.
type Manifest struct {
	Version     string       `yaml:"version"`
	Description string       `yaml:"description"`
	Methods     []MethodSpec `yaml:"methods"`
}

// MethodSpec describes one RPC method.
type MethodSpec struct {
	Name        string      `yaml:"name" cbor:"name"`
	Facade      string      `yaml:"facade" cbor:"facade"`
	Description string      `yaml:"description" cbor:"description,omitempty"`
	Params      []ParamSpec `yaml:"params" cbor:"params,omitempty"`
	Result      string      `yaml:"result" cbor:"result,omitempty"`
}

// ParamSpec describes one method parameter.
type ParamSpec struct {
	Name     string `yaml:"name" cbor:"name"`
	Type     string `yaml:"type" cbor:"type"`
	Required bool   `yaml:"required" cbor:"required,omitempty"`
}

var (
	cacheMu sync.RWMutex
	cache   = make(map[string]*Manifest)
)

// LoadManifest loads the method manifest for a version string (e.g. "1.0").
func LoadManifest(ver string) (*Manifest, error) {
	cacheMu.RLock()
	if m, ok := cache[ver]; ok {
		cacheMu.RUnlock()
		return m, nil
	}
	cacheMu.RUnlock()

	data, err := manifestFS.ReadFile("manifests/" + ver + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("manifest version %q not found: %w", ver, err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest %q: %w", ver, err)
	}

	cacheMu.Lock()
	cache[ver] = &m
	cacheMu.Unlock()
	return &m, nil
}

// LoadCurrentManifest loads the manifest for Current.
func LoadCurrentManifest() (*Manifest, error) {
	return LoadManifest(Current)
}

// AvailableManifests returns the version strings of all embedded manifests.
func AvailableManifests() ([]string, error) {
	entries, err := manifestFS.ReadDir("manifests")
	if err != nil {
		return nil, fmt.Errorf("reading manifests directory: %w", err)
	}

	var versions []string
	for _, e := range entries {
		if name, ok := strings.CutSuffix(e.Name(), ".yaml"); ok {
			versions = append(versions, name)
		}
	}
	sort.Strings(versions)
	return versions, nil
}

// Method looks up a method by name.
func (m *Manifest) Method(name string) (MethodSpec, bool) {
	for _, ms := range m.Methods {
		if ms.Name == name {
			return ms, true
		}
	}
	return MethodSpec{}, false
}

// MethodNames returns all method names, sorted.
func (m *Manifest) MethodNames() []string {
	names := make([]string, 0, len(m.Methods))
	for _, ms := range m.Methods {
		names = append(names, ms.Name)
	}
	sort.Strings(names)
	return names
}

// ValidationResult holds the outcome of checking a method set against a
// manifest.
type ValidationResult struct {
	Valid bool

	// Missing lists manifest methods that are not registered.
	Missing []string

	// Extra lists registered methods the manifest does not describe.
	Extra []string
}

// Validate compares registered method names against the manifest.
func (m *Manifest) Validate(registered []string) ValidationResult {
	var result ValidationResult
	for _, name := range m.MethodNames() {
		if !slices.Contains(registered, name) {
			result.Missing = append(result.Missing, name)
		}
	}
	for _, name := range registered {
		if _, ok := m.Method(name); !ok {
			result.Extra = append(result.Extra, name)
		}
	}
	sort.Strings(result.Extra)
	result.Valid = len(result.Missing) == 0
	return result
}

// RequiredParams returns the names of required parameters.
func (ms MethodSpec) RequiredParams() []string {
	var out []string
	for _, p := range ms.Params {
		if p.Required {
			out = append(out, p.Name)
		}
	}
	return out
}
