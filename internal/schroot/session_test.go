package schroot

import (
	"strings"
	"testing"
)

func TestBeginSession(t *testing.T) {
	exec := &fakeExec{outputs: map[string]string{
		"--begin-session": "dirtbike-focal-amd64-1a2b3c\n",
	}}

	s, err := BeginSession(exec, "dirtbike-focal-amd64")
	if err != nil {
		t.Fatalf("BeginSession failed: %v", err)
	}
	if s.ID != "dirtbike-focal-amd64-1a2b3c" {
		t.Errorf("session ID = %q", s.ID)
	}
	if exec.calls[0].cmd != "schroot --begin-session --chroot dirtbike-focal-amd64" {
		t.Errorf("begin command = %q", exec.calls[0].cmd)
	}
}

func TestBeginSessionEmptyID(t *testing.T) {
	exec := &fakeExec{outputs: map[string]string{"--begin-session": "\n"}}
	if _, err := BeginSession(exec, "dirtbike-focal-amd64"); err == nil {
		t.Fatal("expected error when schroot returns no session id")
	}
}

func TestBeginSessionFailure(t *testing.T) {
	exec := &fakeExec{failOn: "--begin-session"}
	if _, err := BeginSession(exec, "dirtbike-focal-amd64"); err == nil {
		t.Fatal("expected error when begin-session fails")
	}
}

func TestSessionRunAndEnd(t *testing.T) {
	exec := &fakeExec{outputs: map[string]string{
		"--begin-session": "session-id-1\n",
		"find .":          "./stupid-0.1-py2.py3-none-any.whl\n",
	}}

	s, err := BeginSession(exec, "dirtbike-focal-amd64")
	if err != nil {
		t.Fatalf("BeginSession failed: %v", err)
	}

	if err := s.Run("apt-get purge -y dirtbike-stupid"); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	out, err := s.Output("find . -maxdepth 1 -name *.whl")
	if err != nil {
		t.Fatalf("Output failed: %v", err)
	}
	if !strings.Contains(out, ".whl") {
		t.Errorf("Output = %q", out)
	}

	if err := s.End(); err != nil {
		t.Fatalf("End failed: %v", err)
	}

	wantCmds := []string{
		"schroot --begin-session --chroot dirtbike-focal-amd64",
		"schroot --run-session --chroot session-id-1 -u root -- apt-get purge -y dirtbike-stupid",
		"schroot --run-session --chroot session-id-1 -u root -- find . -maxdepth 1 -name *.whl",
		"schroot --end-session --chroot session-id-1",
	}
	if len(exec.calls) != len(wantCmds) {
		t.Fatalf("expected %d commands, got %+v", len(wantCmds), exec.calls)
	}
	for i, w := range wantCmds {
		if exec.calls[i].cmd != w {
			t.Errorf("command %d = %q, want %q", i, exec.calls[i].cmd, w)
		}
	}
}

func TestSessionRunFailure(t *testing.T) {
	exec := &fakeExec{outputs: map[string]string{"--begin-session": "session-id-2\n"}}
	s, err := BeginSession(exec, "dirtbike-focal-amd64")
	if err != nil {
		t.Fatalf("BeginSession failed: %v", err)
	}

	exec.failOn = "--run-session"
	if err := s.Run("false"); err == nil {
		t.Fatal("expected error when in-session command fails")
	}
}
