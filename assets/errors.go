// Copyright 2024 Dmitry Chestnykh. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package assets

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// InputError is returned when an input file can't be read.
type InputError struct {
	Path string
	Err  error
}

func (e *InputError) Error() string { return e.Err.Error() }

func (e *InputError) Unwrap() error { return e.Err }

// IsInputError returns true if err is or wraps an *InputError.
func IsInputError(err error) bool {
	var ie *InputError
	return errors.As(err, &ie)
}

// Report writes a line describing err to w: "Error: ..." for
// unreadable input files, "An error occurred: ..." for everything else.
// Multi-line error messages are joined into one line.
func Report(w io.Writer, err error) {
	msg := strings.Replace(strings.TrimSpace(err.Error()), "\n", " ", -1)
	if IsInputError(err) {
		fmt.Fprintf(w, "Error: %s\n", msg)
		return
	}
	fmt.Fprintf(w, "An error occurred: %s\n", msg)
}
