// Package config assembles the process-environment and XDG-derived values
// that seed the initial global scope and the interactive driver's file
// locations (spec §4.10).
package config

import (
	"path/filepath"

	"github.com/OpenPeeDeeP/xdg"

	"github.com/ion-shell/ion/internal/plugin"
	"github.com/ion-shell/ion/internal/store"
	"github.com/ion-shell/ion/internal/value"
)

const (
	vendor      = ""
	application = "ion"

	defaultPrompt = "${SWD} # "
)

// SysInfo is the subset of internal/sysinfo.Info that bootstrap needs.
type SysInfo interface {
	Pid() string
	Uid() string
	Euid() string
	Hostname() string
	HomeDir() (string, bool)
}

// XDGDirs resolves the two base directories this shell persists state
// under, both namespaced by the "ion" prefix (spec §6).
type XDGDirs struct {
	dirs *xdg.XDG
}

// NewXDGDirs builds the default XDG resolver.
func NewXDGDirs() XDGDirs {
	return XDGDirs{dirs: xdg.New(vendor, application)}
}

// DataHome returns the directory HISTFILE lives under.
func (x XDGDirs) DataHome() (string, bool) {
	if x.dirs == nil {
		return "", false
	}
	dir := x.dirs.DataHome()
	return dir, dir != ""
}

// ConfigHome returns the directory plugins.yaml lives under.
func (x XDGDirs) ConfigHome() (string, bool) {
	if x.dirs == nil {
		return "", false
	}
	dir := x.dirs.ConfigHome()
	return dir, dir != ""
}

// PluginManifestPath returns the expected location of plugins.yaml.
func (x XDGDirs) PluginManifestPath() (string, bool) {
	dir, ok := x.ConfigHome()
	if !ok {
		return "", false
	}
	return filepath.Join(dir, "plugins.yaml"), true
}

// HistfilePath returns the expected location of the history file.
func (x XDGDirs) HistfilePath() (string, bool) {
	dir, ok := x.DataHome()
	if !ok {
		return "", false
	}
	return filepath.Join(dir, "history"), true
}

// Bootstrap seeds st's global scope with the defaults of spec §6. It must
// be called once, immediately after store.New, while the store's cursor
// is still at scope 0.
func Bootstrap(st *store.Store, sys SysInfo, dirs XDGDirs) {
	st.Shadow("DIRECTORY_STACK_SIZE", value.NewString("1000"))
	st.Shadow("HISTORY_SIZE", value.NewString("1000"))
	st.Shadow("HISTFILE_SIZE", value.NewString("100000"))
	st.Shadow("PROMPT", value.NewString(defaultPrompt))
	st.Shadow("PID", value.NewString(sys.Pid()))
	st.Shadow("UID", value.NewString(sys.Uid()))
	st.Shadow("EUID", value.NewString(sys.Euid()))
	st.Shadow("HISTORY_IGNORE", value.NewArray([]string{"no_such_command", "whitespace", "duplicates"}))

	if home, ok := sys.HomeDir(); ok {
		st.Shadow("HOME", value.NewString(home))
	}
	if host := sys.Hostname(); host != "" && host != "?" {
		st.Shadow("HOST", value.NewString(host))
	}

	if histfile, ok := dirs.HistfilePath(); ok {
		st.Shadow("HISTFILE", value.NewString(histfile))
		st.Shadow("HISTFILE_ENABLED", value.NewString("1"))
	}

	// Routed through Set, not Shadow: NS_PLUGINS is an intercepted name
	// (spec §4.3) and must toggle the PLUGIN flag, never become a stored
	// variable.
	st.Set("NS_PLUGINS", value.NewString("0"))
}

// LoadPluginManifest reads plugins.yaml from dirs' config directory. A
// missing manifest or unresolved config directory yields an empty
// registry, not an error (spec §4.2a).
func LoadPluginManifest(dirs XDGDirs) (*plugin.Manifest, error) {
	path, ok := dirs.PluginManifestPath()
	if !ok {
		return &plugin.Manifest{}, nil
	}
	return plugin.LoadManifest(path)
}
