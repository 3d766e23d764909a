// Package store implements the variable store: an ordered stack of scopes
// with a current cursor, exposing push/pop, shadowing, qualified and
// unqualified lookup, and typed retrieval (spec §§3, 4.1-4.3).
package store

import (
	"strings"

	"github.com/ion-shell/ion/internal/expand"
	"github.com/ion-shell/ion/internal/scope"
	"github.com/ion-shell/ion/internal/value"
)

const pluginFlag uint8 = 1

// EnvLookup is the process-environment collaborator the string accessor
// falls back to (spec §4.2, the env:: namespace and the final fallback).
type EnvLookup interface {
	LookupEnv(name string) (string, bool)
}

// PluginDispatcher backs ns::var lookups for any namespace that isn't one
// of the builtin color/hex/env namespaces (spec §4.2a).
type PluginDispatcher interface {
	Dispatch(namespace, key string) (string, bool)
}

// SysInfo is the subset of process-external facts Get/Set needs directly
// (the rest -- tty, pid, etc -- live in the REPL and config layers).
type SysInfo interface {
	IsRoot() bool
}

// Deps bundles the store's external collaborators. Every field may be left
// nil; a nil collaborator simply makes its corresponding feature report
// absent (plugins effectively disabled, env:: lookups always miss, etc).
type Deps struct {
	Env     EnvLookup
	Plugins PluginDispatcher
	Sys     SysInfo
	Dirs    expand.DirStack
	Users   expand.UserHomes
}

// Store is the scope stack described in spec §3.
type Store struct {
	scopes  []*scope.Scope
	current int
	flags   uint8

	deps Deps
}

// New returns a Store with a single, empty, non-namespace global scope at
// index 0 (spec §3 invariants). Callers typically follow this with
// config.Bootstrap to populate the initial defaults (spec §6).
func New(deps Deps) *Store {
	return &Store{
		scopes:  []*scope.Scope{scope.New(false)},
		current: 0,
		deps:    deps,
	}
}

// Current returns the index of the active scope.
func (s *Store) Current() int { return s.current }

// PushScope adds a new lexical layer above the current one, reusing a
// previously-popped slot when available (spec §3, §9 "scope stack with
// reusable slots").
func (s *Store) PushScope(namespace bool) {
	s.current++
	if s.current >= len(s.scopes) {
		s.scopes = append(s.scopes, scope.New(namespace))
	} else {
		s.scopes[s.current].Namespace = namespace
	}
}

// PopScope clears the current scope in place and steps back to its
// parent. The scope at index 0 is never popped.
func (s *Store) PopScope() {
	if s.current == 0 {
		return
	}
	s.scopes[s.current].Reset(false)
	s.current--
}

// PopScopesTo drains every scope strictly above index, moves the cursor to
// index, and returns the drained scopes so a caller can later reinstate
// them with AppendScopes.
func (s *Store) PopScopesTo(index int) []*scope.Scope {
	if index < 0 {
		index = 0
	}
	if index > s.current {
		index = s.current
	}
	drained := append([]*scope.Scope(nil), s.scopes[index+1:]...)
	s.scopes = s.scopes[:index+1]
	s.current = index
	return drained
}

// AppendScopes reinstates previously-drained scopes above the current
// cursor, discarding anything currently above it.
func (s *Store) AppendScopes(scopes []*scope.Scope) {
	s.scopes = s.scopes[:s.current+1]
	s.current += len(scopes)
	s.scopes = append(s.scopes, scopes...)
}

// activeNamespaceCount counts the namespace-boundary scopes among the
// active scopes (index 0..current), used to resolve global:: (spec §4.1).
func (s *Store) activeNamespaceCount() int {
	n := 0
	for i := 0; i <= s.current; i++ {
		if s.scopes[i].Namespace {
			n++
		}
	}
	return n
}

// GetRef resolves name to a value per spec §4.1: global::/super:: strip to
// a climb count, functions are visible through any number of boundaries,
// and any other kind is visible only once the climb count has reached
// zero. Crossing a namespace boundary with no climb budget left to spend
// permanently disqualifies any further non-function match (it does not
// merely skip that one scope): once blocked, only a function further out
// can still be returned.
func (s *Store) GetRef(name string) (value.Value, bool) {
	climb := 0
	switch {
	case strings.HasPrefix(name, "global::"):
		name = name[len("global::"):]
		climb = s.activeNamespaceCount()
	default:
		for strings.HasPrefix(name, "super::") {
			name = name[len("super::"):]
			climb++
		}
	}

	blocked := false
	for i := s.current; i >= 0; i-- {
		sc := s.scopes[i]
		if v, ok := sc.Get(name); ok {
			if v.Kind() == value.KindFunction {
				return v, true
			}
			if !blocked && climb == 0 {
				return v, true
			}
		}
		if sc.Namespace {
			if climb > 0 {
				climb--
			} else {
				blocked = true
			}
		}
	}
	return value.Absent, false
}

// findMutable locates the scope holding the nearest visible entry for
// name, refusing to cross a namespace boundary unless the match is found
// in the boundary scope itself (spec §4.1, SPEC_FULL.md §9 open question b).
func (s *Store) findMutable(name string) (*scope.Scope, bool) {
	if strings.HasPrefix(name, "super::") || strings.HasPrefix(name, "global::") {
		return nil, false
	}
	for i := s.current; i >= 0; i-- {
		sc := s.scopes[i]
		if sc.Has(name) {
			return sc, true
		}
		if sc.Namespace {
			break
		}
	}
	return nil, false
}

// GetMut resolves name the way Set does, without creating anything. It is
// exposed mainly for tests and callers that need to inspect mutability
// without performing an assignment.
func (s *Store) GetMut(name string) (value.Value, bool) {
	sc, ok := s.findMutable(name)
	if !ok {
		return value.Absent, false
	}
	return sc.Get(name)
}

// Remove deletes the nearest visible entry for name and returns it.
func (s *Store) Remove(name string) (value.Value, bool) {
	sc, ok := s.findMutable(name)
	if !ok {
		return value.Absent, false
	}
	return sc.Delete(name)
}

// Shadow writes value into the current scope unconditionally, hiding any
// outer binding of the same name without deleting it.
func (s *Store) Shadow(name string, v value.Value) {
	s.scopes[s.current].Set(name, v)
}

func (s *Store) EnablePlugins()        { s.flags |= pluginFlag }
func (s *Store) DisablePlugins()       { s.flags &^= pluginFlag }
func (s *Store) HasPluginSupport() bool { return s.flags&pluginFlag == pluginFlag }
