package cli

import (
	"errors"
	"strconv"
)

// Common CLI errors
var (
	ErrWorkspaceRequired = errors.New("workspace name required: pass it as an argument or set validationWorkspace")
	ErrNoWorkspaces      = errors.New("no workspaces selected")
)

// ExitError ends the command with Code without printing an error message.
// Commands return it after they have already reported the outcome.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return "exit status " + strconv.Itoa(e.Code)
}
