package blob

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"barangay-pet-registry/internal/ports/photos"
)

// FilesystemStore guarda objetos bajo un directorio raíz. Pensado para
// dev; la URL pública asume que el root se sirve estático aparte.
type FilesystemStore struct {
	root    string
	baseURL string
}

func NewFilesystem(root, baseURL string) (*FilesystemStore, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		root = "./photodata"
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	return &FilesystemStore{
		root:    root,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

func (s *FilesystemStore) Put(ctx context.Context, key string, r io.Reader, opts photos.PutOptions) error {
	path, err := s.resolve(key)
	if err != nil {
		return err
	}

	if !opts.Overwrite {
		if _, err := os.Stat(path); err == nil {
			return ErrExists
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func (s *FilesystemStore) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	path, err := s.resolve(key)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, photos.ErrNotFound
		}
		return nil, err
	}
	return f, nil
}

func (s *FilesystemStore) PublicURL(key string) string {
	if s.baseURL == "" {
		return "file://" + filepath.Join(s.root, filepath.FromSlash(key))
	}
	return s.baseURL + "/" + key
}

func (s *FilesystemStore) Driver() photos.Driver { return photos.DriverFilesystem }

// resolve valida que la key no escape del root.
func (s *FilesystemStore) resolve(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" || strings.Contains(key, "..") {
		return "", errors.New("blob: invalid key")
	}
	return filepath.Join(s.root, filepath.FromSlash(key)), nil
}
