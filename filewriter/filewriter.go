// Package filewriter writes output files along with their
// compressed copies.
package filewriter

import (
	"compress/gzip"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/andybalholm/brotli"
)

// assets.yml -> compress:
type CompressConfig struct {
	Methods    []string `yaml:"methods"`
	Extensions []string `yaml:"extensions"`
}

type Compressor struct {
	Ext string
	New func(w io.Writer) io.WriteCloser
}

var gzipCompressor = &Compressor{
	Ext: "gz",
	New: func(w io.Writer) io.WriteCloser {
		z, err := gzip.NewWriterLevel(w, gzipLevel)
		if err != nil {
			panic(err.Error()) // shouldn't happen
		}
		return z
	},
}

var brotliCompressor = &Compressor{
	Ext: "br",
	New: func(w io.Writer) io.WriteCloser {
		return brotli.NewWriterLevel(w, brotliLevel)
	},
}

const (
	gzipLevel   = 9
	brotliLevel = 11
)

type FileWriter struct {
	compressedExtensions map[string]struct{}
	compressors          []*Compressor
}

// New returns a FileWriter for the given config.
// If c is nil, files are written without compressed copies.
func New(c *CompressConfig) (*FileWriter, error) {
	extensions := make(map[string]struct{})
	compressors := make([]*Compressor, 0)
	if c != nil {
		for _, v := range c.Extensions {
			extensions["."+v] = struct{}{}
		}
		for _, v := range c.Methods {
			switch v {
			case "gzip":
				compressors = append(compressors, gzipCompressor)
			case "br":
				compressors = append(compressors, brotliCompressor)
			default:
				return nil, fmt.Errorf("unknown compression method: %q", v)
			}
		}
	}
	return &FileWriter{
		compressedExtensions: extensions,
		compressors:          compressors,
	}, nil
}

func (f *FileWriter) compressorsFor(ext string) []*Compressor {
	if _, ok := f.compressedExtensions[ext]; ok {
		return f.compressors
	}
	return nil
}

// WriteFile writes data to filename, creating its directory if needed,
// and then writes a compressed copy for every configured method
// next to it (filename.gz, filename.br).
//
// Every file is first written to a temporary file in the same directory
// and then renamed, so a failed write never leaves a truncated file.
func (f *FileWriter) WriteFile(filename string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return err
	}
	compressors := f.compressorsFor(filepath.Ext(filename))
	done := make(chan error, 1+len(compressors))
	go func() {
		done <- writeFileAtomic(filename, func(w io.Writer) error {
			_, err := w.Write(data)
			return err
		})
	}()
	for _, c := range compressors {
		c := c
		go func() {
			done <- writeFileAtomic(filename+"."+c.Ext, func(w io.Writer) error {
				z := c.New(w)
				if _, err := z.Write(data); err != nil {
					z.Close()
					return err
				}
				return z.Close()
			})
		}()
	}
	var firstErr error
	for i := 0; i < 1+len(compressors); i++ {
		err := <-done
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// writeFileAtomic calls write with a temporary file and renames
// it to filename on success. On failure the temporary file is removed
// and filename is left untouched.
func writeFileAtomic(filename string, write func(w io.Writer) error) (err error) {
	tmp, err := ioutil.TempFile(filepath.Dir(filename), "."+filepath.Base(filename)+".tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()
	if err = write(tmp); err != nil {
		return err
	}
	if err = tmp.Chmod(0644); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), filename)
}
