package cli

// CommandError ends a command with a specific exit code. The command has
// already reported the problem on stderr and, for the menu, saved the
// ledger, so main only needs to exit.
type CommandError struct {
	exitCode int
}

// NewCommandError creates a CommandError exiting with exitCode.
func NewCommandError(exitCode int) *CommandError {
	return &CommandError{exitCode: exitCode}
}

func (e *CommandError) Error() string {
	return "command failed"
}

// ExitCode is the process exit status to use.
func (e *CommandError) ExitCode() int {
	return e.exitCode
}
