// Package scope implements a single lexical layer of the shell variable
// stack: a name-to-value mapping plus the namespace-boundary flag that
// determines how far an unqualified lookup may cross it (spec §3).
package scope

import "github.com/ion-shell/ion/internal/value"

// Scope is one layer of the variable stack.
type Scope struct {
	vars map[string]value.Value

	// Namespace marks this scope as a boundary: an unqualified lookup that
	// reaches it from the inside stops here unless explicitly qualified
	// with super:: or global::.
	Namespace bool
}

// New returns an empty scope whose namespace-boundary flag is namespace.
func New(namespace bool) *Scope {
	return &Scope{vars: make(map[string]value.Value), Namespace: namespace}
}

// Reset clears the scope's bindings in place and reassigns its namespace
// flag, matching the "retain the backing slot" discipline of spec §3
// (popped scopes keep their map allocation for reuse at the next push).
func (s *Scope) Reset(namespace bool) {
	for k := range s.vars {
		delete(s.vars, k)
	}
	s.Namespace = namespace
}

// Get returns the value bound to name in this scope only.
func (s *Scope) Get(name string) (value.Value, bool) {
	v, ok := s.vars[name]
	return v, ok
}

// Set binds name to v in this scope, overwriting any existing binding.
func (s *Scope) Set(name string, v value.Value) {
	s.vars[name] = v
}

// Delete removes name from this scope and returns its prior value, if any.
func (s *Scope) Delete(name string) (value.Value, bool) {
	v, ok := s.vars[name]
	if ok {
		delete(s.vars, name)
	}
	return v, ok
}

// Has reports whether name is bound in this scope.
func (s *Scope) Has(name string) bool {
	_, ok := s.vars[name]
	return ok
}

// Len returns the number of bindings in this scope.
func (s *Scope) Len() int { return len(s.vars) }

// Range calls fn for every binding in this scope. Iteration order is
// unspecified, matching the underlying Go map.
func (s *Scope) Range(fn func(name string, v value.Value) bool) {
	for k, v := range s.vars {
		if !fn(k, v) {
			return
		}
	}
}
