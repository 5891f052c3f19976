package archive

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/zip"
)

// Ext is the only accepted archive file extension, compared case-insensitively
const Ext = ".zip"

var (
	ErrInvalidArchive = errors.New("payload is not a readable zip archive")
	ErrEntryNotFound  = errors.New("archive entry not found")
)

// HasArchiveExt reports whether filename carries the .zip extension
func HasArchiveExt(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), Ext)
}

// Reader gives random access to the files of a zip payload
type Reader struct {
	files []*zip.File
	index map[string]*zip.File
}

// NewReader parses data as a zip archive
func NewReader(data []byte) (*Reader, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArchive, err)
	}

	r := &Reader{index: make(map[string]*zip.File, len(zr.File))}
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		r.files = append(r.files, f)
		r.index[f.Name] = f
	}
	return r, nil
}

// Names lists the file entries in archive order, folders excluded
func (r *Reader) Names() []string {
	names := make([]string, 0, len(r.files))
	for _, f := range r.files {
		names = append(names, f.Name)
	}
	return names
}

// FindSuffix returns the first file entry whose name ends with suffix
func (r *Reader) FindSuffix(suffix string) (string, bool) {
	for _, f := range r.files {
		if strings.HasSuffix(f.Name, suffix) {
			return f.Name, true
		}
	}
	return "", false
}

// Has reports whether a file entry exists at exactly name
func (r *Reader) Has(name string) bool {
	_, ok := r.index[name]
	return ok
}

// ReadFile returns the contents of the entry at exactly name
func (r *Reader) ReadFile(name string) ([]byte, error) {
	f, ok := r.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrEntryNotFound, name)
	}

	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open entry %s: %w", name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read entry %s: %w", name, err)
	}
	return data, nil
}
