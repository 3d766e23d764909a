package history

import (
	"os"
	"path/filepath"
	"testing"
)

type fakeDirs map[string]bool

func (f fakeDirs) IsDir(path string) bool { return f[path] }

func TestBufferAppendTruncatesToLimit(t *testing.T) {
	b := NewBuffer(2)
	b.Append("a")
	b.Append("b")
	b.Append("c")
	if got := b.All(); len(got) != 2 || got[0] != "b" || got[1] != "c" {
		t.Fatalf("got %v", got)
	}
}

func TestBufferAtAndFromEnd(t *testing.T) {
	b := NewBuffer(0)
	b.Append("one")
	b.Append("two")
	b.Append("three")

	if v, ok := b.At(1); !ok || v != "one" {
		t.Fatalf("At(1) got %q ok=%v", v, ok)
	}
	if v, ok := b.FromEnd(1); !ok || v != "three" {
		t.Fatalf("FromEnd(1) got %q ok=%v", v, ok)
	}
	if v, ok := b.FromEnd(2); !ok || v != "two" {
		t.Fatalf("FromEnd(2) got %q ok=%v", v, ok)
	}
	if _, ok := b.At(99); ok {
		t.Fatalf("expected out-of-range miss")
	}
}

func TestBufferMatchPrefixAndSubstring(t *testing.T) {
	b := NewBuffer(0)
	b.Append("git status")
	b.Append("git commit -m x")
	b.Append("ls -la")

	if v, ok := b.MatchPrefix("git"); !ok || v != "git commit -m x" {
		t.Fatalf("got %q ok=%v", v, ok)
	}
	if v, ok := b.MatchSubstring("-la"); !ok || v != "ls -la" {
		t.Fatalf("got %q ok=%v", v, ok)
	}
	if _, ok := b.MatchPrefix("nope"); ok {
		t.Fatalf("expected no match")
	}
}

func TestSaveTextAppendsSlashForExistingDirectory(t *testing.T) {
	dirs := fakeDirs{"/tmp": true}
	if got := SaveText("/tmp", "/tmp", dirs); got != "/tmp/" {
		t.Fatalf("got %q", got)
	}
	if got := SaveText("/tmp/", "/tmp", dirs); got != "/tmp/" {
		t.Fatalf("already-slashed command should be unchanged, got %q", got)
	}
	if got := SaveText("ls", "ls", dirs); got != "ls" {
		t.Fatalf("non-directory command should be unchanged, got %q", got)
	}
}

func TestExpandBangBang(t *testing.T) {
	b := NewBuffer(0)
	b.Append("echo hi")
	got := Expand("!!", b)
	if got != "echo hi" {
		t.Fatalf("got %q", got)
	}
}

func TestExpandNumericAndRelative(t *testing.T) {
	b := NewBuffer(0)
	b.Append("first")
	b.Append("second")
	b.Append("third")

	if got := Expand("!1", b); got != "first" {
		t.Fatalf("got %q", got)
	}
	if got := Expand("!-2", b); got != "second" {
		t.Fatalf("got %q", got)
	}
}

func TestExpandStringAndSubstring(t *testing.T) {
	b := NewBuffer(0)
	b.Append("git status")
	b.Append("ls -la /tmp")

	if got := Expand("!git", b); got != "git status" {
		t.Fatalf("got %q", got)
	}
	if got := Expand("!?tmp?", b); got != "ls -la /tmp" {
		t.Fatalf("got %q", got)
	}
}

func TestExpandWordSelector(t *testing.T) {
	b := NewBuffer(0)
	b.Append("ls -la /tmp")

	if got := Expand("!!:$", b); got != "/tmp" {
		t.Fatalf("got %q", got)
	}
	if got := Expand("!!:^", b); got != "-la" {
		t.Fatalf("got %q", got)
	}
}

func TestExpandLeavesUnresolvedLiteral(t *testing.T) {
	b := NewBuffer(0)
	got := Expand("!nonexistent", b)
	if got != "!nonexistent" {
		t.Fatalf("got %q", got)
	}
}

func TestExpandIsPure(t *testing.T) {
	b := NewBuffer(0)
	b.Append("echo hi")
	before := b.Len()
	Expand("!! && !!", b)
	if b.Len() != before {
		t.Fatalf("expansion must not mutate the history source")
	}
}

func TestWriterCommitAndJoinFlushesToDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history")
	w, err := NewWriter(path)
	if err != nil {
		t.Fatal(err)
	}
	w.Push("one")
	w.Push("two")
	if err := w.CommitAndJoin(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "one\ntwo\n" {
		t.Fatalf("got %q", string(data))
	}
}
