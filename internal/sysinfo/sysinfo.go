// Package sysinfo is the collaborator boundary for the handful of
// operating-system facts the core needs but never implements itself:
// uid/gid/pid, tty detection, user-database home lookup, and hostname
// (spec §6, "Process-external calls").
package sysinfo

import (
	"os"
	"os/user"
	"strconv"

	"github.com/mattn/go-isatty"
)

// Info is the real, OS-backed implementation of the process-external
// calls this core needs. It has no state and is safe for concurrent use.
type Info struct{}

// New returns the default OS-backed Info.
func New() Info { return Info{} }

// Pid returns the current process ID as a decimal string (spec §6). The
// process ID is always available, so unlike Uid/Euid it never returns "?".
func (Info) Pid() string { return strconv.Itoa(os.Getpid()) }

// Uid returns the current user ID as a decimal string, or "?" if the
// platform doesn't expose one (e.g. Windows).
func (Info) Uid() string {
	if u, err := user.Current(); err == nil {
		return u.Uid
	}
	return "?"
}

// Euid returns the effective user ID as a decimal string, or "?".
func (Info) Euid() string {
	if id := os.Geteuid(); id >= 0 {
		return strconv.Itoa(id)
	}
	return "?"
}

// IsRoot reports whether the effective user is root (uid 0). Plugin
// dispatch (spec §4.2a) is forbidden to root.
func (Info) IsRoot() bool { return os.Geteuid() == 0 }

// Isatty reports whether fd refers to a terminal.
func (Info) Isatty(fd uintptr) bool { return isatty.IsTerminal(fd) }

// Hostname returns the machine's hostname, or "?" on failure.
func (Info) Hostname() string {
	if h, err := os.Hostname(); err == nil {
		return h
	}
	return "?"
}

// UserHomeDir resolves name's home directory from the OS user database,
// for the ~user tilde-expansion form (spec §4.4).
func (Info) UserHomeDir(name string) (string, bool) {
	u, err := user.Lookup(name)
	if err != nil || u.HomeDir == "" {
		return "", false
	}
	return u.HomeDir, true
}

// HomeDir returns the current process's home directory, if known.
func (Info) HomeDir() (string, bool) {
	h, err := os.UserHomeDir()
	if err != nil || h == "" {
		return "", false
	}
	return h, true
}
