// Copyright 2013 Dmitry Chestnykh. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package assets implements building of minified JavaScript assets.
package assets

import (
	"fmt"
	"io"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/dchest/assetmin/filewriter"
	"github.com/dchest/assetmin/filters"
	"github.com/dchest/assetmin/hashcache"
	"github.com/dchest/assetmin/utils"
)

const (
	ConfigFileName = "assets.yml"

	DefaultInput  = "assets/js/gtag.js"
	DefaultOutput = "assets/js/custom.js"
)

// DefaultFilter is the filter chain used for assets without a filter.
var DefaultFilter = []interface{}{"styles", "obfuscate", "jsmin"}

type Asset struct {
	Name      string      `yaml:"name"`
	Filter    interface{} `yaml:"filter,omitempty"`
	Files     []string    `yaml:"files"`
	Separator string      `yaml:"separator,omitempty"`
	OutName   string      `yaml:"outname"`

	Filename string `yaml:"-"`
}

// Config is the content of assets.yml.
type Config struct {
	Assets   []*Asset                   `yaml:"assets"`
	Compress *filewriter.CompressConfig `yaml:"compress"`
}

// NewAsset returns an asset built from a single file.
// Empty arguments are replaced with defaults.
func NewAsset(in, out string, filter []string) *Asset {
	if in == "" {
		in = DefaultInput
	}
	if out == "" {
		out = DefaultOutput
	}
	a := &Asset{Files: []string{in}, OutName: out}
	if len(filter) > 0 {
		f := make([]interface{}, len(filter))
		for i, v := range filter {
			f[i] = v
		}
		a.Filter = f
	}
	return a
}

// LoadConfig reads config from the given file.
//
// No config file is not an error: the returned config contains
// a single asset that minifies DefaultInput into DefaultOutput.
func LoadConfig(filename string) (*Config, error) {
	var c Config
	if err := utils.UnmarshallYAMLFile(filename, &c); err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	if len(c.Assets) == 0 {
		c.Assets = []*Asset{NewAsset("", "", nil)}
	}
	return &c, nil
}

type Collection struct {
	sync.Mutex
	assets  []*Asset
	byName  map[string]*Asset
	filters *filters.Collection
	writer  *filewriter.FileWriter
	cache   *hashcache.Cache
}

// NewCollection creates a collection of assets from config.
func NewCollection(conf *Config) (c *Collection, err error) {
	c = &Collection{
		byName:  make(map[string]*Asset),
		filters: filters.NewCollection(),
	}
	c.writer, err = filewriter.New(conf.Compress)
	if err != nil {
		return nil, err
	}
	for _, v := range conf.Assets {
		if len(v.Files) == 0 {
			return nil, fmt.Errorf("asset %q has no files", v.Name)
		}
		if v.OutName == "" {
			return nil, fmt.Errorf("asset %q has no outname", v.Name)
		}
		if v.Name == "" {
			v.Name = v.OutName
		}
		if _, exists := c.byName[v.Name]; exists {
			return nil, fmt.Errorf("duplicate asset name %q", v.Name)
		}
		filter := v.Filter
		if filter == nil {
			filter = DefaultFilter
		}
		if err := c.filters.AddFromYAML(v.Name, filter); err != nil {
			return nil, fmt.Errorf("asset %q: %w", v.Name, err)
		}
		c.byName[v.Name] = v
		c.assets = append(c.assets, v)
	}
	return c, nil
}

// Load loads an asset collection from the given assets config file and returns it.
func Load(filename string) (*Collection, error) {
	conf, err := LoadConfig(filename)
	if err != nil {
		return nil, err
	}
	return NewCollection(conf)
}

// SetCache makes the collection skip assets whose input files and
// filters didn't change since they were last processed.
// A nil cache disables skipping.
func (c *Collection) SetCache(cache *hashcache.Cache) {
	c.Lock()
	defer c.Unlock()
	c.cache = cache
}

// Process processes all assets in the collection in order and
// writes a status line for every written asset to w.
// It stops at the first error.
func (c *Collection) Process(w io.Writer) error {
	c.Lock()
	defer c.Unlock()
	for _, a := range c.assets {
		if err := c.process(a, w); err != nil {
			return err
		}
	}
	return nil
}

func (c *Collection) process(a *Asset, w io.Writer) error {
	// Concatenate files.
	b, err := concatFiles(a.Files, a.Separator)
	if err != nil {
		return err
	}
	chain := c.filters.Get(a.Name)
	if c.cache != nil && c.cache.Seen(a.Name, b, []byte(chain.Name())) {
		log.Printf("* %s unchanged", a.Name)
		return nil
	}
	if err := a.Process(c.filters, c.writer, b); err != nil {
		if c.cache != nil {
			c.cache.Forget(a.Name)
		}
		return err
	}
	fmt.Fprintln(w, a.Status(chain))
	return nil
}

// Get returns an asset by name or nil if there's no such asset.
func (c *Collection) Get(name string) *Asset {
	c.Lock()
	defer c.Unlock()
	return c.byName[name]
}

// Inputs returns the list of files read by assets in the collection.
func (c *Collection) Inputs() []string {
	c.Lock()
	defer c.Unlock()
	var files []string
	seen := make(map[string]bool)
	for _, a := range c.assets {
		for _, f := range a.Files {
			if !seen[f] {
				seen[f] = true
				files = append(files, f)
			}
		}
	}
	return files
}

func concatFiles(filenames []string, separator string) (out []byte, err error) {
	sep := []byte(separator)
	for i, f := range filenames {
		b, err := ioutil.ReadFile(f)
		if err != nil {
			return nil, &InputError{Path: f, Err: err}
		}
		out = append(out, b...)
		if i != len(filenames)-1 {
			out = append(out, sep...)
		}
	}
	return out, nil
}

// Process filters the content of asset files and writes the result.
// Nothing is written if filtering fails.
func (a *Asset) Process(fc *filters.Collection, w *filewriter.FileWriter, content []byte) error {
	// Filter result.
	s, err := fc.ApplyFilter(a.Name, string(content))
	if err != nil {
		return fmt.Errorf("asset %s: %w", a.Name, err)
	}
	// Make name from hash.
	a.Filename = utils.TemplatedHash(a.OutName, []byte(s))
	// Write to file.
	if err := w.WriteFile(filepath.FromSlash(a.Filename), []byte(s)); err != nil {
		return fmt.Errorf("asset %s: %w", a.Name, err)
	}
	return nil
}

// Status returns a line describing what was done to the asset
// by the given filter, for example:
//
//	Minified and obfuscated gtag.js (with embedded CSS) to custom.js
func (a *Asset) Status(f filters.Filter) string {
	var obfuscated, styles bool
	if c, ok := f.(filters.Chain); ok {
		obfuscated = c.Has("obfuscate")
		styles = c.Has("styles")
	}
	verb := "Minified"
	if obfuscated {
		verb = "Minified and obfuscated"
	}
	names := make([]string, len(a.Files))
	for i, v := range a.Files {
		names[i] = filepath.Base(v)
	}
	extra := ""
	if styles {
		extra = " (with embedded CSS)"
	}
	return fmt.Sprintf("%s %s%s to %s", verb, strings.Join(names, ", "), extra, filepath.Base(a.Filename))
}
