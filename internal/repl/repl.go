// Package repl implements the interactive driver: it owns the line
// editor context and a shell handle, installs lifecycle hooks, and runs
// the read-terminate-expand-execute-save loop (spec §4.8).
package repl

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/ion-shell/ion/internal/diag"
	"github.com/ion-shell/ion/internal/history"
	"github.com/ion-shell/ion/internal/repl/worddivide"
)

const manHistory = `NAME
    history - print command history

SYNOPSIS
    history

DESCRIPTION
    Prints the command history.`

// Driver is the interactive REPL glue.
type Driver struct {
	shell  Shell
	editor LineEditor
	parser Parser
	dirs   DirChecker
}

// New constructs a Driver and, when HISTFILE_ENABLED=="1", loads the
// history file named by HISTFILE -- creating it lazily and announcing
// the creation to stderr when it doesn't yet exist.
func New(shell Shell, editor LineEditor, parser Parser, dirs DirChecker) *Driver {
	d := &Driver{shell: shell, editor: editor, parser: parser, dirs: dirs}
	editor.SetWordDivider(worddivide.DivideString)

	if enabled, _ := shell.GetString("HISTFILE_ENABLED"); enabled == "1" {
		path, ok := shell.GetString("HISTFILE")
		if !ok {
			diag.Error("HISTFILE_ENABLED is set but HISTFILE is unset")
		} else {
			if _, err := os.Stat(path); os.IsNotExist(err) {
				diag.Warnf("creating history file at %q", path)
			}
			if err := editor.LoadHistoryFile(path); err != nil {
				diag.Errorf("load history: %v", err)
			}
		}
	}
	return d
}

// addCallbacks installs the pre-exit and post-command lifecycle hooks.
func (d *Driver) addCallbacks() {
	d.shell.SetPreExitHook(func() {
		if d.shell.Opts().HupOnExit {
			d.shell.ResumeStoppedJobs()
			d.shell.SendSIGHUPToBackground()
		}
		if err := d.editor.HistoryCommitAndJoin(); err != nil {
			diag.Errorf("history commit: %v", err)
		}
	})

	d.shell.SetOnCommandHook(func(elapsed time.Duration) {
		if recordSummary, _ := d.shell.GetString("RECORD_SUMMARY"); recordSummary != "1" {
			return
		}
		summary := fmt.Sprintf("#summary# elapsed real time: %d.%09d seconds",
			int64(elapsed/time.Second), int64(elapsed%time.Second))
		if err := d.editor.HistoryPush(summary); err != nil {
			diag.Errorf("history append: %v", err)
		}
	})
}

// registerBuiltins installs the "history" and "keybindings" builtins,
// scoped to this interactive session.
func (d *Driver) registerBuiltins() {
	d.shell.RegisterBuiltin("history", d.historyBuiltin,
		"Display a log of all commands previously executed")
	d.shell.RegisterBuiltin("keybindings", d.keybindingsBuiltin,
		"Change the keybindings")
}

func (d *Driver) historyBuiltin(args []string) Status {
	if checkHelp(args, manHistory) {
		return Success()
	}
	buffers := d.editor.HistoryBuffers()
	fmt.Printf("# %s commands\n", humanize.Comma(int64(len(buffers))))
	for _, line := range buffers {
		fmt.Println(line)
	}
	return Success()
}

func (d *Driver) keybindingsBuiltin(args []string) Status {
	if len(args) == 0 {
		return Error("keybindings need an argument")
	}
	switch args[0] {
	case "vi", "emacs":
		if err := d.editor.SetKeyBindings(args[0]); err != nil {
			return Error(err.Error())
		}
		return Success()
	default:
		return Error("Invalid keybindings. Choices are vi and emacs")
	}
}

func checkHelp(args []string, manText string) bool {
	if len(args) == 0 {
		return false
	}
	switch args[0] {
	case "-help", "--help", "help":
		fmt.Println(manText)
		return true
	default:
		return false
	}
}

// Run installs callbacks and builtins, evaluates the shell's init file,
// and enters the main loop. It returns only when the shell exits.
func (d *Driver) Run() {
	d.addCallbacks()
	d.registerBuiltins()
	d.shell.EvaluateInitFile()

	for {
		command, complete := d.parser.Terminate(d.editor.Readln)
		if !complete {
			d.shell.SetUnterminated(true)
			continue
		}
		d.shell.SetUnterminated(false)

		trimmed := strings.TrimRight(command, " \t\n")
		expanded := history.Expand(trimmed, d.editor)
		d.shell.Execute(expanded)
		d.save(expanded)
	}
}

// save applies the save policy of spec §4.9 and pushes the result into
// the editor's history buffer.
func (d *Driver) save(cmd string) {
	expanded, ok := d.shell.ExpandTilde(cmd)
	if !ok {
		expanded = cmd
	}
	text := history.SaveText(cmd, expanded, d.dirs)
	if err := d.editor.HistoryPush(text); err != nil {
		diag.Errorf("history append: %v", err)
	}
}
