// Copyright 2013 Dmitry Chestnykh. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/dchest/assetmin/assets"
	"github.com/dchest/assetmin/fspoll"
	"github.com/dchest/assetmin/hashcache"
)

var (
	fConfig   = flag.String("config", assets.ConfigFileName, "assets config file")
	fIn       = flag.String("in", "", "input file (default "+assets.DefaultInput+")")
	fOut      = flag.String("out", "", "output file (default "+assets.DefaultOutput+")")
	fFilters  = flag.String("filters", "", "comma-separated filter chain (default styles,obfuscate,jsmin)")
	fWatch    = flag.Bool("watch", false, "watch input files for changes and rebuild")
	fInterval = flag.Duration("interval", fspoll.DefaultInterval, "polling interval when watching")
	fStrict   = flag.Bool("strict", false, "exit with non-zero status on error")
)

var Usage = func() {
	fmt.Printf(`usage: assetmin [options]

Minifies %s into %s, or assets described in %s.

Filters:
  jsmin      - minify JavaScript with jsmin
  styles     - minify CSS in "const styles = `+"`...`"+`;"
  obfuscate  - rename declared identifiers
  cssmin     - minify CSS
  minify     - minify with tdewolff/minify
  esbuild    - minify with esbuild
  exec       - pipe through external command

Options:
`, assets.DefaultInput, assets.DefaultOutput, assets.ConfigFileName)
	flag.PrintDefaults()
}

func loadConfig() (*assets.Config, error) {
	conf, err := assets.LoadConfig(*fConfig)
	if err != nil {
		return nil, err
	}
	if *fIn != "" || *fOut != "" || *fFilters != "" {
		var filter []string
		if *fFilters != "" {
			for _, v := range strings.Split(*fFilters, ",") {
				filter = append(filter, strings.TrimSpace(v))
			}
		}
		conf.Assets = []*assets.Asset{assets.NewAsset(*fIn, *fOut, filter)}
	}
	return conf, nil
}

// build processes assets and reports the result to w.
func build(c *assets.Collection, w io.Writer) error {
	err := c.Process(w)
	if err != nil {
		assets.Report(w, err)
	}
	return err
}

func watch(c *assets.Collection) error {
	w, err := fspoll.Watch(c.Inputs(), *fInterval, 0)
	if err != nil {
		return err
	}
	defer w.Close()
	log.Printf("* Watching for changes. Press Ctrl+C to quit.")
	for {
		select {
		case <-w.Change:
			log.Printf("W change")
			build(c, os.Stdout)
		case err := <-w.Error:
			log.Printf("! watcher error: %s", err)
		}
	}
}

func main() {
	log.SetFlags(0)
	flag.Usage = Usage
	flag.Parse()

	failed := false
	defer func() {
		if failed && *fStrict {
			os.Exit(1)
		}
	}()

	conf, err := loadConfig()
	if err != nil {
		assets.Report(os.Stdout, err)
		failed = true
		return
	}
	c, err := assets.NewCollection(conf)
	if err != nil {
		assets.Report(os.Stdout, err)
		failed = true
		return
	}
	if *fWatch {
		c.SetCache(hashcache.New())
	}
	if err := build(c, os.Stdout); err != nil {
		failed = true
	}
	if *fWatch {
		if err := watch(c); err != nil {
			log.Fatalf("! Cannot start watcher: %s", err)
		}
	}
}
