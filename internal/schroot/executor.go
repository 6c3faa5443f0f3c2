package schroot

import "github.com/dirtbike/mkschroot/internal/utils/shell"

// Executor runs host commands for the provisioner and for sessions. The
// production implementation shells out; tests substitute a recording fake.
type Executor interface {
	// Run executes a command and returns its combined output.
	Run(cmd string, sudo bool) (string, error)

	// RunStreaming executes a long-running command, streaming its output
	// to the log as it happens.
	RunStreaming(cmd string, sudo bool) (string, error)

	// RunWithInput executes a command feeding input on stdin.
	RunWithInput(input, cmd string, sudo bool) (string, error)

	// CommandExists reports whether a command resolves on the host, or
	// inside the chroot tree when chrootPath is non-empty.
	CommandExists(cmd string, chrootPath string) bool
}

// ShellExecutor backs Executor with synchronous child-process invocations.
type ShellExecutor struct{}

func (ShellExecutor) Run(cmd string, sudo bool) (string, error) {
	return shell.ExecCmd(cmd, sudo, shell.HostPath, nil)
}

func (ShellExecutor) RunStreaming(cmd string, sudo bool) (string, error) {
	return shell.ExecCmdWithStream(cmd, sudo, shell.HostPath, nil)
}

func (ShellExecutor) RunWithInput(input, cmd string, sudo bool) (string, error) {
	return shell.ExecCmdWithInput(input, cmd, sudo, shell.HostPath, nil)
}

func (ShellExecutor) CommandExists(cmd string, chrootPath string) bool {
	return shell.IsCommandExist(cmd, chrootPath)
}
