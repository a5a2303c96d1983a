package utils

import (
	"os"

	"golang.org/x/term"
)

// InteractiveStderr reports whether stderr is a terminal a person is watching.
// Lambda and redirected output are not.
func InteractiveStderr() bool {
	if os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "" {
		return false
	}
	return term.IsTerminal(int(os.Stderr.Fd()))
}
