// Copyright 2024 Dmitry Chestnykh. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package filters

// `minify` minifies JavaScript or CSS with tdewolff/minify.
// Optional argument is a media type, text/javascript by default.

import (
	"fmt"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/js"
)

var minifier = minify.New()

func init() {
	minifier.AddFunc("text/css", css.Minify)
	minifier.AddFunc("text/javascript", js.Minify)
	Register("minify", MakeMinifyFilter)
}

type minifyFilter struct {
	mediatype string
}

func MakeMinifyFilter(args []string) (Filter, error) {
	mediatype := "text/javascript"
	if len(args) > 0 {
		mediatype = args[0]
	}
	switch mediatype {
	case "text/javascript", "text/css":
	default:
		return nil, fmt.Errorf("minify: unsupported media type %q", mediatype)
	}
	return &minifyFilter{mediatype: mediatype}, nil
}

func (f *minifyFilter) Name() string { return "minify " + f.mediatype }

func (f *minifyFilter) Apply(s string) (out string, err error) {
	return minifier.String(f.mediatype, s)
}
