package perltidy

import (
	"fmt"
	"path/filepath"
)

// ConfigurationError reports a condition under which formatting cannot even
// be attempted: the document belongs to no workspace, or formatting is
// administratively disabled for its workspace.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return e.Reason
}

// FormatError reports a failure of the external perltidy process, either
// because it could not be started or because it exited with nonzero status.
type FormatError struct {
	Message string
}

func (e *FormatError) Error() string {
	return e.Message
}

func newExitError(status int, stderr string) *FormatError {
	if stderr == "" {
		return &FormatError{Message: fmt.Sprintf("perltidy exited with status %d", status)}
	}
	return &FormatError{Message: fmt.Sprintf("perltidy exited with status %d: %s", status, stderr)}
}

func newStartError(executable string, err error) *FormatError {
	message := fmt.Sprintf("could not start %s: %v", executable, err)
	if filepath.Base(executable) == DefaultExecutable {
		message += "; is perltidy installed and on your PATH?"
	}
	return &FormatError{Message: message}
}
