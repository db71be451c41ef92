// Copyright 2014 Dmitry Chestnykh. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fspoll implements a primitive polling-based file watcher.
package fspoll

import (
	"os"
	"time"
)

type Watcher struct {
	paths         []string
	state         map[string]os.FileInfo
	interval      time.Duration
	sleepInterval time.Duration
	closed        chan struct{}

	// event channels
	Change chan bool
	Error  chan error
}

const (
	DefaultInterval = 1 * time.Second
	SleepAfter      = 5 * time.Minute
)

// Watch polls the given files for changes with the given interval.
// A file that appears, disappears, or changes its mode, size or
// modification time is reported as a change.
//
// When there was no change for the given interval in 5 minutes, interval
// changes to sleepInterval (interval * 5 by default).
// It's back to normal interval if a change is detected.
// If sleepInterval is negative, don't sleep.
//
// It returns a Watcher or an error.
func Watch(paths []string, interval, sleepInterval time.Duration) (w *Watcher, err error) {
	if interval == 0 {
		interval = DefaultInterval
	}
	if sleepInterval < 0 {
		sleepInterval = interval
	} else if sleepInterval == 0 {
		sleepInterval = interval * 5
	}
	w = &Watcher{
		paths:         paths,
		interval:      interval,
		sleepInterval: sleepInterval,
		Change:        make(chan bool),
		Error:         make(chan error),
		closed:        make(chan struct{}),
	}
	// Get initial state
	w.state, err = w.getState()
	if err != nil {
		return nil, err
	}
	// Start watching goroutine
	go w.start()
	return w, nil
}

func (w *Watcher) start() {
	lastChangeTime := time.Now()
	currentInterval := w.interval
	for {
		hasChange, err := w.check()
		switch {
		case err != nil:
			select {
			case w.Error <- err:
			case <-w.closed:
				return
			}
		case hasChange:
			lastChangeTime = time.Now()
			currentInterval = w.interval
			select {
			case w.Change <- true:
			case <-w.closed:
				return
			}
		case time.Since(lastChangeTime) > SleepAfter:
			currentInterval = w.sleepInterval
		}
		select {
		case <-time.After(currentInterval):
			continue
		case <-w.closed:
			return
		}
	}
}

// getState returns file infos for watched paths.
// Missing files are absent from the result.
func (w *Watcher) getState() (map[string]os.FileInfo, error) {
	ns := make(map[string]os.FileInfo)
	for _, path := range w.paths {
		fi, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}
		ns[path] = fi
	}
	return ns, nil
}

func (w *Watcher) check() (hasChange bool, err error) {
	ns, err := w.getState()
	if err != nil {
		return false, err
	}
	defer func() {
		// Set new state as current when this function finishes.
		w.state = ns
	}()
	if len(ns) != len(w.state) {
		return true, nil
	}
	for path, nfi := range ns {
		ofi, ok := w.state[path]
		if !ok {
			// New file.
			return true, nil
		}
		if ofi.Mode() != nfi.Mode() ||
			!ofi.ModTime().Equal(nfi.ModTime()) ||
			ofi.Size() != nfi.Size() {
			return true, nil
		}
	}
	// Nothing changed.
	return false, nil
}

// Close stops the watcher.
func (w *Watcher) Close() {
	close(w.closed)
}
