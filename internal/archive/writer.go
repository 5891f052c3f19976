// Package archive builds and reads the zip bundles exchanged with the badge office.
package archive

import (
	"bytes"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/klauspost/compress/zip"
	"go.uber.org/zap"
)

var (
	ErrEmptyName  = errors.New("archive entry name is empty")
	ErrUnsafeName = errors.New("archive entry name escapes the archive root")
	ErrClosed     = errors.New("archive writer is closed")
)

// Writer accumulates folders and files into an in-memory zip
type Writer struct {
	buf     *bytes.Buffer
	zw      *zip.Writer
	folders map[string]bool
	entries []string
	closed  bool
	logger  *zap.Logger
}

// NewWriter creates a new Writer
func NewWriter(logger *zap.Logger) *Writer {
	if logger == nil {
		logger = zap.NewNop()
	}
	buf := new(bytes.Buffer)
	return &Writer{
		buf:     buf,
		zw:      zip.NewWriter(buf),
		folders: make(map[string]bool),
		logger:  logger,
	}
}

// AddFolder creates the directory entry "name/" once.
// Adding a folder that already exists is a no-op.
func (w *Writer) AddFolder(name string) error {
	if w.closed {
		return ErrClosed
	}
	name = strings.TrimSuffix(name, "/")
	if err := checkName(name); err != nil {
		return err
	}
	if w.folders[name] {
		return nil
	}

	if _, err := w.zw.CreateHeader(&zip.FileHeader{Name: name + "/", Method: zip.Store}); err != nil {
		return fmt.Errorf("failed to create folder %s: %w", name, err)
	}
	w.folders[name] = true
	w.entries = append(w.entries, name+"/")

	w.logger.Debug("Created archive folder", zap.String("folder", name))
	return nil
}

// AddFile writes data at the slash-separated path name, creating its parent folder if needed
func (w *Writer) AddFile(name string, data []byte) error {
	if w.closed {
		return ErrClosed
	}
	if err := checkName(name); err != nil {
		return err
	}

	if dir := path.Dir(name); dir != "." {
		if err := w.AddFolder(dir); err != nil {
			return err
		}
	}

	fw, err := w.zw.Create(name)
	if err != nil {
		return fmt.Errorf("failed to create entry %s: %w", name, err)
	}
	if _, err := fw.Write(data); err != nil {
		return fmt.Errorf("failed to write entry %s: %w", name, err)
	}
	w.entries = append(w.entries, name)

	w.logger.Debug("Added archive entry",
		zap.String("name", name),
		zap.Int("bytes", len(data)))
	return nil
}

// Entries returns the entry names in the order they were written
func (w *Writer) Entries() []string {
	return append([]string(nil), w.entries...)
}

// Close finalizes the zip and returns its bytes
func (w *Writer) Close() ([]byte, error) {
	if w.closed {
		return nil, ErrClosed
	}
	w.closed = true
	if err := w.zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize archive: %w", err)
	}
	return w.buf.Bytes(), nil
}

// checkName rejects empty names and names that could escape the archive root
func checkName(name string) error {
	if name == "" {
		return ErrEmptyName
	}
	if strings.HasPrefix(name, "/") || strings.Contains(name, "\\") {
		return fmt.Errorf("%w: %s", ErrUnsafeName, name)
	}
	for _, part := range strings.Split(name, "/") {
		if part == ".." {
			return fmt.Errorf("%w: %s", ErrUnsafeName, name)
		}
	}
	return nil
}
