// Package media stores uploaded product images on a filesystem.
package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/afero"
)

// URLPrefix is the public path under which stored files are served.
const URLPrefix = "/uploads/"

// maxNameAttempts bounds the search for a free timestamp-derived name.
const maxNameAttempts = 1000

// ErrInvalidReference is returned for references that do not point into the store.
var ErrInvalidReference = errors.New("invalid media reference")

// LocalStore keeps files in a single directory of an afero filesystem.
// File names are the upload time in Unix milliseconds plus the original extension.
type LocalStore struct {
	fs  afero.Fs
	now func() time.Time
}

// NewLocalStore creates dir on base if needed and scopes the store to it.
func NewLocalStore(base afero.Fs, dir string) (*LocalStore, error) {
	if err := base.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir %q: %w", dir, err)
	}
	return &LocalStore{
		fs:  afero.NewBasePathFs(base, dir),
		now: time.Now,
	}, nil
}

// Put writes r under a new unique name and returns its reference ("/uploads/<name>").
func (s *LocalStore) Put(ctx context.Context, r io.Reader, originalName string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ext := filepath.Ext(filepath.Base(originalName))
	stamp := s.now().UnixMilli()

	for i := int64(0); i < maxNameAttempts; i++ {
		name := strconv.FormatInt(stamp+i, 10) + ext
		f, err := s.fs.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("failed to create %q: %w", name, err)
		}

		if _, err := io.Copy(f, r); err != nil {
			_ = f.Close()
			_ = s.fs.Remove(name)
			return "", fmt.Errorf("failed to write %q: %w", name, err)
		}
		if err := f.Close(); err != nil {
			_ = s.fs.Remove(name)
			return "", fmt.Errorf("failed to close %q: %w", name, err)
		}
		return URLPrefix + name, nil
	}
	return "", fmt.Errorf("no free file name after %d attempts", maxNameAttempts)
}

// Delete removes the file behind ref. It reports false with a nil error when
// the file does not exist.
func (s *LocalStore) Delete(ctx context.Context, ref string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	name, err := nameFromRef(ref)
	if err != nil {
		return false, err
	}

	exists, err := afero.Exists(s.fs, name)
	if err != nil {
		return false, fmt.Errorf("failed to stat %q: %w", name, err)
	}
	if !exists {
		return false, nil
	}
	if err := s.fs.Remove(name); err != nil {
		return false, fmt.Errorf("failed to remove %q: %w", name, err)
	}
	return true, nil
}

// FileSystem exposes stored files for http serving. Directories are hidden.
func (s *LocalStore) FileSystem() http.FileSystem {
	return filesOnly{afero.NewHttpFs(s.fs)}
}

func nameFromRef(ref string) (string, error) {
	name, ok := strings.CutPrefix(ref, URLPrefix)
	if !ok || name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrInvalidReference, ref)
	}
	return name, nil
}

type filesOnly struct {
	fs http.FileSystem
}

func (f filesOnly) Open(name string) (http.File, error) {
	file, err := f.fs.Open(name)
	if err != nil {
		return nil, err
	}
	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, err
	}
	if info.IsDir() {
		_ = file.Close()
		return nil, fs.ErrNotExist
	}
	return file, nil
}
