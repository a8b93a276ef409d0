package storage

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

const maxImageSize = 5 << 20

var (
	ErrNotAnImage  = errors.New("file is not an image")
	ErrFileTooBig  = errors.New("file exceeds size limit")
	ErrInvalidName = errors.New("invalid object name")
)

// Store keeps uploaded images on local disk under <dir>/public and serves
// them through the static route.
type Store struct {
	dir           string
	publicBaseURL string
}

func NewStore(dir, publicBaseURL string) (*Store, error) {
	if err := os.MkdirAll(filepath.Join(dir, "public"), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &Store{dir: dir, publicBaseURL: strings.TrimRight(publicBaseURL, "/")}, nil
}

// Save validates and persists one uploaded image, returning the object name
// and its public URL.
func (s *Store) Save(file *multipart.FileHeader) (string, string, error) {
	if file.Size > maxImageSize {
		return "", "", ErrFileTooBig
	}
	contentType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return "", "", ErrNotAnImage
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	name := fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), uuid.NewString()[:8], ext)

	src, err := file.Open()
	if err != nil {
		return "", "", err
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.dir, "public", name))
	if err != nil {
		return "", "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dst.Name())
		return "", "", err
	}

	return name, s.URL(name), nil
}

// Delete removes an object by name. Names are generated by Save, so path
// separators mean a forged request.
func (s *Store) Delete(name string) error {
	if name == "" || name != filepath.Base(name) {
		return ErrInvalidName
	}
	err := os.Remove(filepath.Join(s.dir, "public", name))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// URL builds the public URL for a stored object.
func (s *Store) URL(name string) string {
	return s.publicBaseURL + "/static/" + name
}

// PublicDir is the directory the static route serves.
func (s *Store) PublicDir() string {
	return filepath.Join(s.dir, "public")
}
