// Copyright 2024 Dmitry Chestnykh. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package filters

// `styles` minifies CSS embedded into JavaScript as
//
//	const styles = `...`;
//
// Only the first such block is minified. The optional argument selects
// the CSS minifier: `cssmin` (default) or `minify`.

import (
	"fmt"
	"regexp"
	"strings"
)

func init() {
	Register("styles", MakeStylesFilter)
}

var stylesRx = regexp.MustCompile("const styles = `([^`]*)`;")

type stylesFilter struct {
	engine string
	css    Filter
}

func MakeStylesFilter(args []string) (Filter, error) {
	engine := "cssmin"
	if len(args) > 0 {
		engine = args[0]
	}
	var css Filter
	switch engine {
	case "cssmin":
		css = CSSMin(0)
	case "minify":
		css = &minifyFilter{mediatype: "text/css"}
	default:
		return nil, fmt.Errorf("styles: unknown CSS minifier %q", engine)
	}
	return &stylesFilter{engine: engine, css: css}, nil
}

func (f *stylesFilter) Name() string {
	if f.engine == "cssmin" {
		return "styles"
	}
	return "styles " + f.engine
}

func (f *stylesFilter) Apply(s string) (out string, err error) {
	m := stylesRx.FindStringSubmatch(s)
	if m == nil || m[1] == "" {
		return s, nil
	}
	css, err := f.css.Apply(m[1])
	if err != nil {
		return "", err
	}
	// Every occurrence of the original CSS text is replaced,
	// not only the one inside the matched block.
	return strings.Replace(s, m[1], css, -1), nil
}
