package repl

import (
	"time"

	"github.com/ion-shell/ion/internal/repl/worddivide"
)

// Opts is the subset of shell options the driver's pre-exit hook reads.
type Opts struct {
	HupOnExit bool
}

// Status is a builtin's result, mirroring the external shell's own
// success/error status type closely enough for the two builtins this
// core registers.
type Status struct {
	Err string
}

// Success reports a zero-value, successful Status.
func Success() Status { return Status{} }

// Error builds a failing Status carrying msg.
func Error(msg string) Status { return Status{Err: msg} }

// Ok reports whether s represents success.
func (s Status) Ok() bool { return s.Err == "" }

// BuiltinFunc is the shape of a command registered into the shell's
// builtin table.
type BuiltinFunc func(args []string) Status

// Shell is the external command parser/executor collaborator (spec §1,
// "out of scope" list) that the driver drives and installs hooks into.
type Shell interface {
	Opts() Opts
	ResumeStoppedJobs()
	SendSIGHUPToBackground()
	Execute(cmd string)
	GetString(name string) (string, bool)
	ExpandTilde(word string) (string, bool)
	EvaluateInitFile()
	RegisterBuiltin(name string, fn BuiltinFunc, help string)
	SetUnterminated(bool)
	SetPreExitHook(fn func())
	SetOnCommandHook(fn func(elapsed time.Duration))
}

// LineEditor is the external line-editing collaborator (spec §1):
// prompt rendering, key-binding modes, and history-buffer storage are
// its responsibility. It also exposes the read-only history view the
// designator expander needs (At/FromEnd/MatchPrefix/MatchSubstring).
type LineEditor interface {
	Readln() (string, bool)
	SetKeyBindings(mode string) error
	SetWordDivider(fn func(line string) []worddivide.Span)
	HistoryBuffers() []string
	HistoryPush(line string) error
	HistoryCommitAndJoin() error
	LoadHistoryFile(path string) error

	At(n int) (string, bool)
	FromEnd(n int) (string, bool)
	MatchPrefix(s string) (string, bool)
	MatchSubstring(s string) (string, bool)
}

// Parser is the external command-parser collaborator's termination
// predicate (spec §4.8 step 2). Terminate pulls additional lines from
// next (which should delegate to LineEditor.Readln) as many times as it
// needs before deciding the accumulated text is a complete command.
// complete=false means input was abandoned (e.g. an interrupted
// continuation), not merely "needs one more line" -- Terminate only
// returns once it has either an answer or has given up.
type Parser interface {
	Terminate(next func() (string, bool)) (command string, complete bool)
}

// DirChecker reports whether a path names an existing directory, used by
// the history save policy (spec §4.9).
type DirChecker interface {
	IsDir(path string) bool
}
