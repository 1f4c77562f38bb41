package instructions

import (
	"encoding/json"
	"fmt"

	"github.com/gobwas/glob"
	"gopkg.in/yaml.v3"
)

// Configuration file names probed inside each top-level set directory,
// in order.
var setConfigNames = []string{"_config.json", "_config.yaml"}

// SetConfig binds an instruction set to the domains it serves.
type SetConfig struct {
	// Domains are hostname patterns, either exact ("app.acme.com") or
	// wildcard ("*.acme.com"). A wildcard also matches the bare parent
	// domain. The list must be non-empty for the set to be registered.
	Domains []string `json:"domains" yaml:"domains"`

	// Exclude holds optional path glob patterns; a URL whose path matches
	// one resolves to no context for this set.
	Exclude []string `json:"exclude,omitempty" yaml:"exclude,omitempty"`

	excludeGlobs []glob.Glob
}

// compile validates the parsed config and compiles its exclude patterns.
// Any failure invalidates the whole config so a partial pattern list is
// never used.
func (c *SetConfig) compile() error {
	if len(c.Domains) == 0 {
		return fmt.Errorf("config declares no domains")
	}
	for _, pattern := range c.Exclude {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}
		c.excludeGlobs = append(c.excludeGlobs, g)
	}
	return nil
}

// pathExcluded reports whether urlPath matches any exclude pattern.
func (c *SetConfig) pathExcluded(urlPath string) bool {
	for _, g := range c.excludeGlobs {
		if g.Match(urlPath) {
			return true
		}
	}
	return false
}

// loadSetConfig reads and parses the configuration for one instruction set.
// It returns (nil, nil) when the set has no configuration file at all, and
// an error when a file exists but cannot be used.
func loadSetConfig(store Store, set string) (*SetConfig, error) {
	for _, name := range setConfigNames {
		raw, ok := store.ReadDocument(set + "/" + name)
		if !ok {
			continue
		}
		cfg := &SetConfig{}
		var err error
		if name == "_config.json" {
			err = json.Unmarshal([]byte(raw), cfg)
		} else {
			err = yaml.Unmarshal([]byte(raw), cfg)
		}
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		if err := cfg.compile(); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	return nil, nil
}
