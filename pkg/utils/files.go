package utils

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bodgit/sevenzip"
)

// LoadFile loads a BIOS or ROM image, transparently unpacking zip,
// gzip and 7z archives. Archives are expected to carry the image as
// their first file.
func LoadFile(filename string) ([]byte, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	switch filepath.Ext(filename) {
	case ".zip":
		r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			return nil, err
		}
		if len(r.File) == 0 {
			return nil, fmt.Errorf("utils: empty archive: %s", filename)
		}
		f, err := r.File[0].Open()
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return io.ReadAll(f)
	case ".gz":
		r, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		defer r.Close()
		return io.ReadAll(r)
	case ".7z":
		r, err := sevenzip.OpenReader(filename)
		if err != nil {
			return nil, err
		}
		defer r.Close()
		for _, file := range r.File {
			if file.FileInfo().IsDir() {
				continue
			}
			f, err := file.Open()
			if err != nil {
				return nil, err
			}
			defer f.Close()
			return io.ReadAll(f)
		}
		return nil, fmt.Errorf("utils: empty archive: %s", filename)
	}

	return data, nil
}
