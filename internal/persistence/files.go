package persistence

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// maxDocumentBytes bounds how much of an import source is read
const maxDocumentBytes = 10 << 20

// FileSaver delivers an exported document to the user
type FileSaver interface {
	SaveFile(ctx context.Context, name string, content []byte) error
}

// DocumentSource supplies the bytes of a document chosen for import
type DocumentSource interface {
	ReadDocument(ctx context.Context) ([]byte, error)
}

// DirSaver writes exported documents into a directory
type DirSaver struct {
	Dir string
}

// SaveFile writes content to Dir/name through a temp file
func (s DirSaver) SaveFile(ctx context.Context, name string, content []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := s.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	path := filepath.Join(dir, filepath.Base(name))
	tmpFile := path + ".tmp"
	if err := os.WriteFile(tmpFile, content, 0644); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}
	if err := os.Rename(tmpFile, path); err != nil {
		_ = os.Remove(tmpFile)
		return fmt.Errorf("failed to write export file: %w", err)
	}
	return nil
}

// FileSource reads an import document from disk
type FileSource struct {
	Path string
}

// ReadDocument reads the whole file
func (s FileSource) ReadDocument(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := os.Open(s.Path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return ReaderSource{R: file}.ReadDocument(ctx)
}

// ReaderSource reads an import document from a stream such as an upload
type ReaderSource struct {
	R io.Reader
}

// ReadDocument reads up to maxDocumentBytes from R
func (s ReaderSource) ReadDocument(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, err := io.ReadAll(io.LimitReader(s.R, maxDocumentBytes+1))
	if err != nil {
		return nil, err
	}
	if len(raw) > maxDocumentBytes {
		return nil, fmt.Errorf("document larger than %d bytes", maxDocumentBytes)
	}
	return raw, nil
}
