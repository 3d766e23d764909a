package store

import (
	"strings"

	"github.com/ion-shell/ion/internal/diag"
	"github.com/ion-shell/ion/internal/expand"
	"github.com/ion-shell/ion/internal/value"
)

var builtinNamespaces = map[string]bool{
	"c": true, "color": true,
	"x": true, "hex": true,
	"env": true, "super": true, "global": true,
}

// GetArray resolves name and returns it only if it holds an array.
func (s *Store) GetArray(name string) ([]string, bool) {
	v, ok := s.GetRef(name)
	if !ok || v.Kind() != value.KindArray {
		return nil, false
	}
	return v.AsArray(), true
}

// GetAlias resolves name and returns it only if it holds an alias.
func (s *Store) GetAlias(name string) (string, bool) {
	v, ok := s.GetRef(name)
	if !ok || v.Kind() != value.KindAlias {
		return "", false
	}
	return v.AsAlias(), true
}

// GetKeyedMap resolves name and returns it only if it holds a keyed or
// ordered map.
func (s *Store) GetKeyedMap(name string) (map[string]value.Value, bool) {
	v, ok := s.GetRef(name)
	if !ok || (v.Kind() != value.KindKeyedMap && v.Kind() != value.KindOrderedMap) {
		return nil, false
	}
	return v.AsKeyedMap(), true
}

// GetOrderedMap resolves name and returns it only if it holds an ordered
// map, preserving insertion order.
func (s *Store) GetOrderedMap(name string) ([]string, map[string]value.Value, bool) {
	v, ok := s.GetRef(name)
	if !ok || v.Kind() != value.KindOrderedMap {
		return nil, nil, false
	}
	keys, m := v.AsOrderedMap()
	return keys, m, true
}

// GetFunction resolves name and returns it only if it holds a function.
func (s *Store) GetFunction(name string) (value.Function, bool) {
	v, ok := s.GetRef(name)
	if !ok || v.Kind() != value.KindFunction {
		return value.Function{}, false
	}
	return v.AsFunction(), true
}

// GetString orchestrates the namespaced string lookup of spec §4.2:
// MWD/SWD are derived on the fly, c::/color:: and x::/hex:: expand to
// escape sequences, env:: reads the process environment directly, a plain
// name resolves through the scope stack and renders with Value.Display,
// an unrecognized namespace dispatches to a plugin, and the final
// fallback is a raw process-environment lookup.
func (s *Store) GetString(name string) (string, bool) {
	switch name {
	case "MWD":
		return s.mwd(), true
	case "SWD":
		return s.swd(), true
	}

	if rest, ok := stripNamespace(name, "c::", "color::"); ok {
		return expand.Color(rest)
	}
	if rest, ok := stripNamespace(name, "x::", "hex::"); ok {
		return expand.Hex(rest)
	}
	if rest, ok := stripNamespace(name, "env::"); ok {
		return s.lookupEnv(rest)
	}

	if v, ok := s.GetRef(name); ok {
		return v.Display(), true
	}

	if ns, key, ok := splitNamespace(name); ok && !builtinNamespaces[ns] {
		if s.isRoot() {
			diag.Errorf("%s: plugin dispatch is forbidden to root", name)
			return "", false
		}
		if s.deps.Plugins == nil || !s.HasPluginSupport() {
			diag.Errorf("%s: plugin support is disabled (set NS_PLUGINS=1 to enable)", name)
			return "", false
		}
		return s.deps.Plugins.Dispatch(ns, key)
	}

	return s.lookupEnv(name)
}

// ExpandTilde applies tilde-expansion to word using HOME resolved through
// GetString (a shell variable HOME wins, with the process environment as
// the fallback) and PWD/OLDPWD read directly from the process environment.
func (s *Store) ExpandTilde(word string) (string, bool) {
	env := expand.Env{}
	if home, ok := s.GetString("HOME"); ok {
		env.Home, env.HomeSet = home, true
	}
	if pwd, ok := s.lookupEnvRaw("PWD"); ok {
		env.PWD, env.PWDSet = pwd, true
	}
	if old, ok := s.lookupEnvRaw("OLDPWD"); ok {
		env.OldPWD, env.OldPWDSet = old, true
	}
	return expand.Tilde(word, env, s.deps.Dirs, s.deps.Users)
}

func (s *Store) swd() string {
	pwd, _ := s.lookupEnvRaw("PWD")
	home, homeOK := s.GetString("HOME")
	return expand.SWD(pwd, home, homeOK)
}

func (s *Store) mwd() string {
	pwd, _ := s.lookupEnvRaw("PWD")
	home, homeOK := s.GetString("HOME")
	return expand.MWD(pwd, home, homeOK)
}

func (s *Store) lookupEnv(name string) (string, bool) {
	return s.lookupEnvRaw(name)
}

func (s *Store) lookupEnvRaw(name string) (string, bool) {
	if s.deps.Env == nil {
		return "", false
	}
	return s.deps.Env.LookupEnv(name)
}

func (s *Store) isRoot() bool {
	return s.deps.Sys != nil && s.deps.Sys.IsRoot()
}

// stripNamespace returns the suffix of name after the first prefix in
// prefixes that matches, or ok=false if none does.
func stripNamespace(name string, prefixes ...string) (rest string, ok bool) {
	for _, p := range prefixes {
		if strings.HasPrefix(name, p) {
			return name[len(p):], true
		}
	}
	return "", false
}

// splitNamespace splits name on its first "::" separator.
func splitNamespace(name string) (ns, key string, ok bool) {
	i := strings.Index(name, "::")
	if i < 0 {
		return "", "", false
	}
	return name[:i], name[i+2:], true
}
