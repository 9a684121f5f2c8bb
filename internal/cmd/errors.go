// Copyright (c) 2023 Colin McRae

package cmd

import (
	"errors"
	"fmt"
)

// notFoundError ends run --strict when some search found nothing. Every
// analysis has already printed its result by then, so execute exits with
// notFoundExitCode and prints nothing more.
type notFoundError struct {
	notFound int
	total    int
}

func (e *notFoundError) Error() string {
	return fmt.Sprintf("%d of %d analyses found nothing", e.notFound, e.total)
}

// exitCode maps an error returned by a command to the process exit code.
// quiet is true when the error has already been reported through the
// command's output. Any error other than notFoundError exits with 1.
func exitCode(err error) (code int, quiet bool) {
	var nf *notFoundError
	if errors.As(err, &nf) {
		return notFoundExitCode, true
	}
	return 1, false
}
