// Copyright 2013 Dmitry Chestnykh. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package filters implements text filtering.
package filters

import (
	"fmt"
	"strings"
)

// Filter is an interface declaring a filter.
type Filter interface {
	Name() string
	Apply(string) (string, error)
}

// Maker is a type of function which accepts arguments
// for filter and returns a new instance of the filter.
type Maker func([]string) (Filter, error)

// makers stores builtin filter makers addressed by their names.
var makers = make(map[string]Maker)

// Register registers a new filter maker.
func Register(name string, maker Maker) {
	makers[name] = maker
}

// Make creates a new filter by name with the given arguments.
func Make(name string, args []string) (Filter, error) {
	maker := makers[name]
	if maker == nil {
		return nil, fmt.Errorf("filter %s not found", name)
	}
	return maker(args)
}

// Chain is a list of filters applied one after another.
type Chain []Filter

func (c Chain) Name() string {
	names := make([]string, len(c))
	for i, f := range c {
		names[i] = f.Name()
	}
	return strings.Join(names, ", ")
}

// Apply applies filters in order, stopping at the first error.
func (c Chain) Apply(s string) (out string, err error) {
	out = s
	for _, f := range c {
		out, err = f.Apply(out)
		if err != nil {
			return "", fmt.Errorf("%s: %w", f.Name(), err)
		}
	}
	return out, nil
}

// Has returns true if the chain contains a filter of the given kind.
func (c Chain) Has(name string) bool {
	for _, f := range c {
		if f.Name() == name || strings.HasPrefix(f.Name(), name+" ") {
			return true
		}
	}
	return false
}

// ParseLine parses a single filter line: either a filter name
// or an array of name followed by arguments.
func ParseLine(line interface{}) (Filter, error) {
	switch x := line.(type) {
	case string:
		return Make(x, nil)
	case []interface{}:
		if len(x) == 0 {
			return nil, fmt.Errorf("failed to parse filters: empty array")
		}
		args := make([]string, len(x))
		for i, v := range x {
			s, ok := v.(string)
			if !ok {
				return nil, fmt.Errorf("failed to parse filters: not an array of strings")
			}
			args[i] = s
		}
		return Make(args[0], args[1:])
	default:
		return nil, fmt.Errorf("failed to parse filters: not a string or array")
	}
}

// ParseChain parses a `filter` value from YAML. It accepts a single
// filter line or a list of them.
func ParseChain(v interface{}) (Chain, error) {
	if list, ok := v.([]interface{}); ok && len(list) > 0 && isChainList(list) {
		c := make(Chain, 0, len(list))
		for _, line := range list {
			f, err := ParseLine(line)
			if err != nil {
				return nil, err
			}
			c = append(c, f)
		}
		return c, nil
	}
	f, err := ParseLine(v)
	if err != nil {
		return nil, err
	}
	return Chain{f}, nil
}

// isChainList distinguishes [jsmin, cssmin] (a list of filters) from
// [exec, uglifyjs] (a single filter with arguments): the former's
// elements are all registered filter names or nested arrays.
func isChainList(list []interface{}) bool {
	for _, v := range list {
		switch x := v.(type) {
		case string:
			if makers[x] == nil {
				return false
			}
		case []interface{}:
		default:
			return false
		}
	}
	return true
}

// MakeChain creates a chain from filter names.
func MakeChain(names ...string) (Chain, error) {
	c := make(Chain, 0, len(names))
	for _, name := range names {
		f, err := Make(name, nil)
		if err != nil {
			return nil, err
		}
		c = append(c, f)
	}
	return c, nil
}

// Collection is a collection of filters addressed by some key.
type Collection struct {
	filters map[string]Filter
}

// NewCollection returns a new collection.
func NewCollection() *Collection {
	return &Collection{
		filters: make(map[string]Filter),
	}
}

// Set makes the filter addressable by key.
func (c *Collection) Set(key string, f Filter) {
	c.filters[key] = f
}

// AddFromYAML parses a `filter` value and adds corresponding filters.
func (c *Collection) AddFromYAML(key string, line interface{}) error {
	chain, err := ParseChain(line)
	if err != nil {
		return err
	}
	c.filters[key] = chain
	return nil
}

// Get returns a filter for key.
// It returns nil if the filter wasn't found.
func (c *Collection) Get(key string) Filter {
	return c.filters[key]
}

// ApplyFilter applies a filter found by key to the given string.
// If the filter wasn't found, returns the original string.
func (c *Collection) ApplyFilter(key string, in string) (out string, err error) {
	f := c.filters[key]
	if f == nil {
		return in, nil
	}
	return f.Apply(in)
}
