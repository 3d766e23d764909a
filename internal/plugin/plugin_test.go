package plugin

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadManifestMissingFileIsEmpty(t *testing.T) {
	m, err := LoadManifest(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(m.Plugins) != 0 {
		t.Fatalf("expected empty manifest, got %d entries", len(m.Plugins))
	}
}

func TestLoadManifestParsesEntries(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plugins.yaml")
	contents := "plugins:\n  - namespace: docker\n    target: 127.0.0.1:7770\n    timeout: 500ms\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	m, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(m.Plugins) != 1 || m.Plugins[0].Namespace != "docker" || m.Plugins[0].Target != "127.0.0.1:7770" {
		t.Fatalf("unexpected manifest: %+v", m.Plugins)
	}
	if got := m.Plugins[0].timeout(); got.String() != "500ms" {
		t.Fatalf("got timeout %v", got)
	}
}

func TestEntryTimeoutDefaultsWhenUnset(t *testing.T) {
	e := Entry{}
	if e.timeout() != defaultTimeout {
		t.Fatalf("expected default timeout")
	}
}

func TestDispatchUnconfiguredNamespace(t *testing.T) {
	r := NewRegistry(&Manifest{})
	if _, ok := r.Dispatch("docker", "containers"); ok {
		t.Fatalf("expected no dispatch for unconfigured namespace")
	}
}
