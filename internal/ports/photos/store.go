package photos

import (
	"context"
	"errors"
	"io"
)

// Driver identifica el backend de almacenamiento de fotos.
type Driver string

const (
	DriverMemory     Driver = "memory" // tests
	DriverFilesystem Driver = "fs"     // dev
	DriverS3         Driver = "s3"     // producción (S3 / MinIO)
)

var ErrNotFound = errors.New("photos: object not found")

// PutOptions parametriza una escritura.
type PutOptions struct {
	ContentType string
	// Overwrite pisa el objeto si la key ya existe (upsert).
	Overwrite bool
}

// Store es la abstracción mínima de object storage que necesita la
// ingesta de fotos: subir y obtener una URL pública dereferenciable.
type Store interface {
	Put(ctx context.Context, key string, r io.Reader, opts PutOptions) error
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	PublicURL(key string) string
	Driver() Driver
}
