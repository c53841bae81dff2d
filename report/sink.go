// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zip"

	"github.com/UNO-SOFT/xlreport"
)

// Document is a named output file of a report.
type Document struct {
	Name string
	Body io.WriterTo
}

// Sink persists the documents of one report.
type Sink interface {
	// Save writes docs and returns the path of the saved report.
	// Either every document is saved or none.
	Save(docs ...Document) (string, error)
}

// DirSink writes each document as a file in Dir.
// The returned path is the path of the first document.
type DirSink struct {
	Dir string
}

var _ = Sink(DirSink{})

func (s DirSink) Save(docs ...Document) (string, error) {
	if len(docs) == 0 {
		return "", errors.New("nothing to save")
	}
	var saved []string
	for _, doc := range docs {
		path := filepath.Join(s.Dir, doc.Name)
		if err := writeFile(path, func(w io.Writer) error {
			_, err := doc.Body.WriteTo(w)
			return err
		}); err != nil {
			for _, p := range saved {
				_ = os.Remove(p)
			}
			return "", err
		}
		saved = append(saved, path)
	}
	return saved[0], nil
}

// ZipSink stores all documents in one zip archive in Dir,
// named after the first document.
type ZipSink struct {
	Dir string
}

var _ = Sink(ZipSink{})

func (s ZipSink) Save(docs ...Document) (string, error) {
	if len(docs) == 0 {
		return "", errors.New("nothing to save")
	}
	name := docs[0].Name
	path := filepath.Join(s.Dir, strings.TrimSuffix(name, filepath.Ext(name))+".zip")
	return path, writeFile(path, func(w io.Writer) error {
		zw := zip.NewWriter(w)
		for _, doc := range docs {
			fw, err := zw.Create(doc.Name)
			if err != nil {
				return err
			}
			if _, err = doc.Body.WriteTo(fw); err != nil {
				return err
			}
		}
		return zw.Close()
	})
}

// writeFile writes path through a temporary file in the same directory,
// so a failed write leaves nothing behind.
func writeFile(path string, write func(io.Writer) error) error {
	fh, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return &xlreport.PersistenceError{Path: path, Err: err}
	}
	tmp := fh.Name()
	// CreateTemp makes the file private; reports are as readable as any saved file.
	if err = fh.Chmod(0644); err == nil {
		err = write(fh)
	}
	if err != nil {
		fh.Close()
		os.Remove(tmp)
		return &xlreport.PersistenceError{Path: path, Err: err}
	}
	if err = fh.Close(); err != nil {
		os.Remove(tmp)
		return &xlreport.PersistenceError{Path: path, Err: err}
	}
	if err = os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return &xlreport.PersistenceError{Path: path, Err: err}
	}
	return nil
}
