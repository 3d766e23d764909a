// Package history implements the in-memory command buffer, its background
// writer to HISTFILE, and the "!"-designator expansion language (spec
// §§4.8-4.9).
package history

import (
	"strings"
	"sync"
)

// Buffer is the in-memory record of submitted commands, truncated to a
// configured limit (cmd/ion passes HISTORY_SIZE, spec §6).
type Buffer struct {
	mu      sync.Mutex
	entries []string
	limit   int
}

// NewBuffer returns an empty buffer capped at limit entries. limit <= 0
// means unbounded.
func NewBuffer(limit int) *Buffer {
	return &Buffer{limit: limit}
}

// Append adds cmd as the most recent entry, dropping the oldest entry if
// the buffer is at its limit.
func (b *Buffer) Append(cmd string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries = append(b.entries, cmd)
	if b.limit > 0 && len(b.entries) > b.limit {
		b.entries = b.entries[len(b.entries)-b.limit:]
	}
}

// Len reports the number of stored entries.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.entries)
}

// All returns a copy of every stored entry, oldest first.
func (b *Buffer) All() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.entries))
	copy(out, b.entries)
	return out
}

// At returns the n-th entry (1-based, oldest is 1), for !N.
func (b *Buffer) At(n int) (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if n < 1 || n > len(b.entries) {
		return "", false
	}
	return b.entries[n-1], true
}

// FromEnd returns the n-th most recent entry (1-based, !! is FromEnd(1)),
// for !-N.
func (b *Buffer) FromEnd(n int) (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if n < 1 || n > len(b.entries) {
		return "", false
	}
	return b.entries[len(b.entries)-n], true
}

// MatchPrefix returns the most recent entry starting with prefix, for !string.
func (b *Buffer) MatchPrefix(prefix string) (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := len(b.entries) - 1; i >= 0; i-- {
		if strings.HasPrefix(b.entries[i], prefix) {
			return b.entries[i], true
		}
	}
	return "", false
}

// MatchSubstring returns the most recent entry containing sub, for !?string?.
func (b *Buffer) MatchSubstring(sub string) (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := len(b.entries) - 1; i >= 0; i-- {
		if strings.Contains(b.entries[i], sub) {
			return b.entries[i], true
		}
	}
	return "", false
}

// DirChecker reports whether a path names an existing directory.
type DirChecker interface {
	IsDir(path string) bool
}

// SaveText applies the save policy of spec §4.9: if cmd doesn't already
// end in '/' and its tilde-expanded form names an existing directory,
// the stored form gets a trailing '/' appended.
func SaveText(cmd, tildeExpanded string, dirs DirChecker) string {
	if strings.HasSuffix(cmd, "/") {
		return cmd
	}
	if dirs != nil && dirs.IsDir(tildeExpanded) {
		return cmd + "/"
	}
	return cmd
}
