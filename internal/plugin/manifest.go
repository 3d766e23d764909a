package plugin

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Manifest is the top-level shape of plugins.yaml (spec §4.2a, §6).
type Manifest struct {
	// Plugins lists each namespace this shell will dispatch ns::var lookups
	// to, and the gRPC target that serves it.
	Plugins []Entry `yaml:"plugins"`
}

// Entry describes a single plugin namespace.
type Entry struct {
	// Namespace is the ns:: prefix this plugin answers for, e.g. "docker".
	Namespace string `yaml:"namespace"`

	// Target is the gRPC dial target, e.g. "127.0.0.1:7770" or
	// "unix:///run/ion/docker.sock".
	Target string `yaml:"target"`

	// Timeout bounds a single Lookup call. Defaults to 2s when omitted or
	// unparseable.
	Timeout string `yaml:"timeout,omitempty"`
}

func (e Entry) timeout() time.Duration {
	if e.Timeout == "" {
		return defaultTimeout
	}
	d, err := time.ParseDuration(e.Timeout)
	if err != nil {
		return defaultTimeout
	}
	return d
}

// LoadManifest reads and parses a plugins.yaml file. A missing file is not
// an error: it simply means no plugin namespaces are configured.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Manifest{}, nil
		}
		return nil, fmt.Errorf("read plugin manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse plugin manifest: %w", err)
	}
	return &m, nil
}
