package action

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

/* Catalog manages the set of actions receivers may bind
 * Loaded from actions.yaml so operators can narrow the vocabulary without
 * a rebuild; provides in-memory lookup for fast access
 */

// Config represents the structure of actions.yaml
type Config struct {
	Actions []ActionConfig `yaml:"actions"`
}

// ActionConfig represents a single action entry in the YAML file
type ActionConfig struct {
	Name    string `yaml:"name"`
	Enabled *bool  `yaml:"enabled"` // Optional: defaults to true
}

// Catalog holds the dispatchable actions
type Catalog struct {
	enabled map[string]bool
}

// NewCatalog creates a catalog allowing exactly the given actions.
// With no arguments the full vocabulary is allowed.
func NewCatalog(names ...string) *Catalog {
	if len(names) == 0 {
		names = All()
	}
	enabled := make(map[string]bool, len(names))
	for _, name := range names {
		enabled[name] = true
	}
	return &Catalog{enabled: enabled}
}

// Load reads and parses the actions.yaml file
func (c *Catalog) Load(filePath string) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("reading actions file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return fmt.Errorf("parsing actions YAML: %w", err)
	}

	known := make(map[string]bool, len(All()))
	for _, name := range All() {
		known[name] = true
	}

	enabled := make(map[string]bool, len(config.Actions))
	for _, ac := range config.Actions {
		if !known[ac.Name] {
			return fmt.Errorf("%w: %q in actions file", ErrUnknown, ac.Name)
		}
		if ac.Enabled != nil && !*ac.Enabled {
			continue
		}
		enabled[ac.Name] = true
	}

	if len(enabled) == 0 {
		return fmt.Errorf("actions file enables no actions")
	}

	c.enabled = enabled
	return nil
}

// Known reports whether receivers may bind the given action
func (c *Catalog) Known(name string) bool {
	return c.enabled[name]
}

// List returns the enabled action names
func (c *Catalog) List() []string {
	names := make([]string, 0, len(c.enabled))
	for name := range c.enabled {
		names = append(names, name)
	}
	return names
}
