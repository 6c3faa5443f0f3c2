package schroot

import (
	"fmt"
	"strings"

	"github.com/dirtbike/mkschroot/internal/utils/logger"
)

// Session is a running schroot session on a provisioned chroot. Session
// writes land on the overlay, not on the base filesystem.
type Session struct {
	ID   string
	exec Executor
}

// BeginSession starts a new session on the named chroot and returns a
// handle for running commands inside it.
func BeginSession(exec Executor, chrootName string) (*Session, error) {
	out, err := exec.Run("schroot --begin-session --chroot "+chrootName, true)
	if err != nil {
		return nil, fmt.Errorf("beginning session on %s: %w", chrootName, err)
	}

	id := strings.TrimSpace(out)
	if id == "" {
		return nil, fmt.Errorf("schroot returned no session id for %s", chrootName)
	}

	logger.Logger().Debugf("Began schroot session %s", id)
	return &Session{ID: id, exec: exec}, nil
}

// Run executes a command as root inside the session.
func (s *Session) Run(cmd string) error {
	full := fmt.Sprintf("schroot --run-session --chroot %s -u root -- %s", s.ID, cmd)
	if _, err := s.exec.Run(full, true); err != nil {
		return fmt.Errorf("running %q in session %s: %w", cmd, s.ID, err)
	}
	return nil
}

// Output executes a command as root inside the session and returns its
// captured output.
func (s *Session) Output(cmd string) (string, error) {
	full := fmt.Sprintf("schroot --run-session --chroot %s -u root -- %s", s.ID, cmd)
	out, err := s.exec.Run(full, true)
	if err != nil {
		return out, fmt.Errorf("running %q in session %s: %w", cmd, s.ID, err)
	}
	return out, nil
}

// End tears the session down, discarding the overlay.
func (s *Session) End() error {
	if _, err := s.exec.Run("schroot --end-session --chroot "+s.ID, true); err != nil {
		return fmt.Errorf("ending session %s: %w", s.ID, err)
	}
	logger.Logger().Debugf("Ended schroot session %s", s.ID)
	return nil
}
