package photoingest

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"

	"barangay-pet-registry/internal/platform/logger"
	"barangay-pet-registry/internal/ports/photos"
)

var ErrNoTenant = errors.New("no barangay context for upload")

// Ingestor convierte payloads inline (data: URL) en objetos almacenados
// con key namespaced por barangay. Si la subida falla, retorna el payload
// original: el caller igual persiste algo mostrable (disponibilidad
// sobre eficiencia).
type Ingestor struct {
	store photos.Store
	log   logger.Logger
}

func New(store photos.Store, log logger.Logger) *Ingestor {
	return &Ingestor{store: store, log: log}
}

// Ingest sube el payload y retorna la URL pública.
// - barangayID vacío => ErrNoTenant (no hay uploads anónimos).
// - payload que no es data: URL => pass-through sin tocar.
// - cualquier falla posterior => retorna el payload original, sin error.
func (i *Ingestor) Ingest(ctx context.Context, barangayID, payload, logicalPath string) (string, error) {
	if strings.TrimSpace(barangayID) == "" {
		return "", ErrNoTenant
	}
	if !strings.HasPrefix(payload, "data:") {
		return payload, nil
	}
	if i == nil || i.store == nil {
		return payload, nil
	}

	contentType, data, err := decodeDataURL(payload)
	if err != nil {
		i.warn("photo decode failed", err)
		return payload, nil
	}

	ext := extFromContentType(contentType)
	key := barangayID + "/" + strings.Trim(logicalPath, "/") + "." + ext

	err = i.store.Put(ctx, key, strings.NewReader(string(data)), photos.PutOptions{
		ContentType: contentType,
		Overwrite:   true,
	})
	if err != nil {
		i.warn("photo upload failed", err)
		return payload, nil
	}

	return i.store.PublicURL(key), nil
}

func (i *Ingestor) warn(msg string, err error) {
	if i.log == nil {
		return
	}
	i.log.Warn(msg, map[string]any{"error": err.Error()})
}

// decodeDataURL parsea "data:image/png;base64,...." y retorna MIME + bytes.
func decodeDataURL(payload string) (string, []byte, error) {
	rest := strings.TrimPrefix(payload, "data:")
	comma := strings.IndexByte(rest, ',')
	if comma < 0 {
		return "", nil, errors.New("malformed data url")
	}

	meta := rest[:comma]
	body := rest[comma+1:]

	contentType := meta
	base64Encoded := false
	if idx := strings.IndexByte(meta, ';'); idx >= 0 {
		contentType = meta[:idx]
		base64Encoded = strings.Contains(meta[idx:], "base64")
	}
	if contentType == "" {
		contentType = "image/jpeg"
	}

	if !base64Encoded {
		return contentType, []byte(body), nil
	}

	data, err := base64.StdEncoding.DecodeString(body)
	if err != nil {
		return "", nil, err
	}
	return contentType, data, nil
}

func extFromContentType(contentType string) string {
	parts := strings.SplitN(contentType, "/", 2)
	if len(parts) == 2 && parts[1] != "" {
		return parts[1]
	}
	return "jpg"
}
