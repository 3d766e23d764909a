package store

import (
	"strings"

	"github.com/ion-shell/ion/internal/diag"
	"github.com/ion-shell/ion/internal/value"
)

// Set assigns name to v per spec §4.3. An empty name is a no-op. A
// super::/global::-qualified name is a read-only-namespace violation:
// outer-namespace mutation is denied outright, reported to stderr, and
// never touches live state. NS_PLUGINS is intercepted: "0"/"1" toggle
// plugin support and anything else is a warning, never a stored variable.
// Otherwise, if a visible binding of a different kind already exists, the
// assignment shadows it in the current scope rather than overwriting it in
// place; if the existing binding has the same kind, it is overwritten
// there, with an empty string/array/map value deleting the binding
// outright.
func (s *Store) Set(name string, v value.Value) {
	if name == "" {
		return
	}
	if strings.HasPrefix(name, "super::") || strings.HasPrefix(name, "global::") {
		diag.Errorf("%s: cannot assign to an outer-namespace qualifier", name)
		return
	}
	if name == "NS_PLUGINS" {
		s.setPluginFlag(v)
		return
	}

	sc, ok := s.findMutable(name)
	if !ok {
		s.Shadow(name, v)
		return
	}

	existing, _ := sc.Get(name)
	if existing.Kind() != v.Kind() {
		s.Shadow(name, v)
		return
	}

	switch v.Kind() {
	case value.KindString, value.KindArray, value.KindKeyedMap, value.KindOrderedMap:
		if v.IsEmpty() {
			sc.Delete(name)
			return
		}
	}
	sc.Set(name, v)
}

func (s *Store) setPluginFlag(v value.Value) {
	switch v.AsString() {
	case "0":
		s.DisablePlugins()
	case "1":
		s.EnablePlugins()
	default:
		diag.Warn("unsupported value for NS_PLUGINS. Value must be either 0 or 1.")
	}
}
