package repl

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/ion-shell/ion/internal/repl/worddivide"
)

type fakeShell struct {
	vars          map[string]string
	opts          Opts
	executed      []string
	unterminated  bool
	preExit       func()
	onCommand     func(time.Duration)
	resumedJobs   bool
	sentSIGHUP    bool
	initEvaluated bool
	builtins      map[string]BuiltinFunc
}

func newFakeShell() *fakeShell {
	return &fakeShell{vars: map[string]string{}, builtins: map[string]BuiltinFunc{}}
}

func (f *fakeShell) Opts() Opts                    { return f.opts }
func (f *fakeShell) ResumeStoppedJobs()             { f.resumedJobs = true }
func (f *fakeShell) SendSIGHUPToBackground()        { f.sentSIGHUP = true }
func (f *fakeShell) Execute(cmd string)             { f.executed = append(f.executed, cmd) }
func (f *fakeShell) GetString(name string) (string, bool) {
	v, ok := f.vars[name]
	return v, ok
}
func (f *fakeShell) ExpandTilde(word string) (string, bool) { return word, true }
func (f *fakeShell) EvaluateInitFile()                      { f.initEvaluated = true }
func (f *fakeShell) RegisterBuiltin(name string, fn BuiltinFunc, help string) {
	f.builtins[name] = fn
}
func (f *fakeShell) SetUnterminated(v bool)                       { f.unterminated = v }
func (f *fakeShell) SetPreExitHook(fn func())                     { f.preExit = fn }
func (f *fakeShell) SetOnCommandHook(fn func(elapsed time.Duration)) { f.onCommand = fn }

type fakeEditor struct {
	keyBindings   string
	buffers       []string
	pushed        []string
	committed     bool
	loadedPath    string
	wordDividerFn func(string) []worddivide.Span
	commitErr     error
}

func (f *fakeEditor) Readln() (string, bool) { return "", false }
func (f *fakeEditor) SetKeyBindings(mode string) error {
	f.keyBindings = mode
	return nil
}
func (f *fakeEditor) SetWordDivider(fn func(string) []worddivide.Span) { f.wordDividerFn = fn }
func (f *fakeEditor) HistoryBuffers() []string                        { return f.buffers }
func (f *fakeEditor) HistoryPush(line string) error {
	f.pushed = append(f.pushed, line)
	return nil
}
func (f *fakeEditor) HistoryCommitAndJoin() error {
	f.committed = true
	return f.commitErr
}
func (f *fakeEditor) LoadHistoryFile(path string) error {
	f.loadedPath = path
	return nil
}
func (f *fakeEditor) At(n int) (string, bool)             { return "", false }
func (f *fakeEditor) FromEnd(n int) (string, bool)        { return "", false }
func (f *fakeEditor) MatchPrefix(s string) (string, bool)   { return "", false }
func (f *fakeEditor) MatchSubstring(s string) (string, bool) { return "", false }

type fakeParser struct{}

func (fakeParser) Terminate(next func() (string, bool)) (string, bool) { return "", false }

type fakeDirs map[string]bool

func (f fakeDirs) IsDir(path string) bool { return f[path] }

func TestNewLoadsHistoryFileWhenEnabled(t *testing.T) {
	shell := newFakeShell()
	shell.vars["HISTFILE_ENABLED"] = "1"
	shell.vars["HISTFILE"] = filepath.Join(t.TempDir(), "history")

	editor := &fakeEditor{}
	New(shell, editor, fakeParser{}, fakeDirs{})

	if editor.loadedPath != shell.vars["HISTFILE"] {
		t.Fatalf("expected history file to be loaded, got %q", editor.loadedPath)
	}
	if editor.wordDividerFn == nil {
		t.Fatalf("expected word divider to be installed")
	}
}

func TestNewSkipsHistoryFileWhenDisabled(t *testing.T) {
	shell := newFakeShell()
	editor := &fakeEditor{}
	New(shell, editor, fakeParser{}, fakeDirs{})
	if editor.loadedPath != "" {
		t.Fatalf("expected no history file load, got %q", editor.loadedPath)
	}
}

func TestAddCallbacksPreExitCommitsHistory(t *testing.T) {
	shell := newFakeShell()
	shell.opts.HupOnExit = true
	editor := &fakeEditor{}
	d := New(shell, editor, fakeParser{}, fakeDirs{})
	d.addCallbacks()

	shell.preExit()

	if !shell.resumedJobs || !shell.sentSIGHUP {
		t.Fatalf("expected huponexit to resume jobs and send SIGHUP")
	}
	if !editor.committed {
		t.Fatalf("expected history to be committed on pre-exit")
	}
}

func TestAddCallbacksOnCommandAppendsSummaryOnlyWhenEnabled(t *testing.T) {
	shell := newFakeShell()
	editor := &fakeEditor{}
	d := New(shell, editor, fakeParser{}, fakeDirs{})
	d.addCallbacks()

	shell.onCommand(250 * time.Millisecond)
	if len(editor.pushed) != 0 {
		t.Fatalf("expected no summary when RECORD_SUMMARY is unset")
	}

	shell.vars["RECORD_SUMMARY"] = "1"
	shell.onCommand(250 * time.Millisecond)
	if len(editor.pushed) != 1 {
		t.Fatalf("expected one summary line, got %v", editor.pushed)
	}
}

func TestKeybindingsBuiltin(t *testing.T) {
	shell := newFakeShell()
	editor := &fakeEditor{}
	d := New(shell, editor, fakeParser{}, fakeDirs{})

	if got := d.keybindingsBuiltin([]string{"vi"}); !got.Ok() || editor.keyBindings != "vi" {
		t.Fatalf("got %+v bindings=%q", got, editor.keyBindings)
	}
	if got := d.keybindingsBuiltin([]string{"nonsense"}); got.Ok() || got.Err != "Invalid keybindings. Choices are vi and emacs" {
		t.Fatalf("got %+v", got)
	}
	if got := d.keybindingsBuiltin(nil); got.Ok() {
		t.Fatalf("expected error for missing argument")
	}
}

func TestHistoryBuiltinPrintsBuffers(t *testing.T) {
	shell := newFakeShell()
	editor := &fakeEditor{buffers: []string{"a", "b"}}
	d := New(shell, editor, fakeParser{}, fakeDirs{})

	if got := d.historyBuiltin(nil); !got.Ok() {
		t.Fatalf("got %+v", got)
	}
}

func TestAddCallbacksHistoryCommitErrorIsNonFatal(t *testing.T) {
	shell := newFakeShell()
	editor := &fakeEditor{commitErr: errors.New("disk full")}
	d := New(shell, editor, fakeParser{}, fakeDirs{})
	d.addCallbacks()

	shell.preExit()
}
