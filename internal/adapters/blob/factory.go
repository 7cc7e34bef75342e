package blob

import (
	"context"
	"fmt"
	"os"

	"barangay-pet-registry/internal/ports/photos"
)

// Open selecciona el backend de fotos por env:
//
//	PHOTOS_DRIVER: fs|s3|memory (default fs)
//	PHOTOS_FS_ROOT: root cuando driver=fs (default ./photodata)
//	PHOTOS_FS_PUBLIC_URL: base pública para URLs del driver fs
//	(variables S3 documentadas en s3.go)
func Open(ctx context.Context) (photos.Store, error) {
	driver := os.Getenv("PHOTOS_DRIVER")
	if driver == "" {
		driver = string(photos.DriverFilesystem)
	}

	switch photos.Driver(driver) {
	case photos.DriverFilesystem:
		return NewFilesystem(os.Getenv("PHOTOS_FS_ROOT"), os.Getenv("PHOTOS_FS_PUBLIC_URL"))
	case photos.DriverS3:
		return OpenS3FromEnv(ctx)
	case photos.DriverMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown photos driver %s", driver)
	}
}
