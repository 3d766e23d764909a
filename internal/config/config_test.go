package config

import (
	"testing"

	"github.com/ion-shell/ion/internal/store"
)

type fakeSys struct{}

func (fakeSys) Pid() string             { return "123" }
func (fakeSys) Uid() string             { return "1000" }
func (fakeSys) Euid() string            { return "1000" }
func (fakeSys) Hostname() string        { return "box" }
func (fakeSys) HomeDir() (string, bool) { return "/home/bob", true }

func TestBootstrapSeedsDefaults(t *testing.T) {
	st := store.New(store.Deps{})
	Bootstrap(st, fakeSys{}, XDGDirs{})

	cases := map[string]string{
		"DIRECTORY_STACK_SIZE": "1000",
		"HISTORY_SIZE":         "1000",
		"HISTFILE_SIZE":        "100000",
		"PID":                  "123",
		"UID":                  "1000",
		"EUID":                 "1000",
		"HOME":                 "/home/bob",
		"HOST":                 "box",
	}
	for name, want := range cases {
		v, ok := st.GetRef(name)
		if !ok || v.AsString() != want {
			t.Fatalf("%s: got %q ok=%v, want %q", name, v.AsString(), ok, want)
		}
	}

	if arr, ok := st.GetArray("HISTORY_IGNORE"); !ok || len(arr) != 3 {
		t.Fatalf("expected HISTORY_IGNORE array of 3, got %v ok=%v", arr, ok)
	}

	if _, ok := st.GetRef("NS_PLUGINS"); ok {
		t.Fatalf("NS_PLUGINS must never be stored as a variable")
	}
	if st.HasPluginSupport() {
		t.Fatalf("plugins should default to disabled")
	}

	if _, ok := st.GetRef("HISTFILE"); ok {
		t.Fatalf("unresolved XDG data dir should leave HISTFILE unset")
	}
}
