// Copyright 2013 Dmitry Chestnykh. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package filters

// `jsmin` minifies JavaScript.

import (
	"errors"
	"fmt"

	"github.com/dchest/jsmin"
	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/js"
)

func init() {
	Register("jsmin", func(args []string) (Filter, error) {
		return JSMin(0), nil
	})
}

type JSMin int

func (f JSMin) Name() string { return "jsmin" }

func (f JSMin) Apply(s string) (out string, err error) {
	// jsmin exits the process on unterminated strings, comments
	// and regular expressions, so reject bad input before it gets there.
	if err := checkSyntax(s); err != nil {
		return "", err
	}
	result, err := jsmin.Minify([]byte(s))
	if err != nil {
		return "", err
	}
	return string(result), nil
}

// checkSyntax parses s as JavaScript and returns a single-line
// description of the first syntax error.
func checkSyntax(s string) error {
	_, err := js.Parse(parse.NewInputString(s), js.Options{})
	if err == nil {
		return nil
	}
	// Drop the source context, which takes several lines.
	var perr *parse.Error
	if errors.As(err, &perr) {
		return fmt.Errorf("%s on line %d and column %d", perr.Message, perr.Line, perr.Column)
	}
	return err
}
