package snapshot

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"cloud.google.com/go/storage"
)

// Writer stores an encoded snapshot under an object name.
type Writer interface {
	Write(ctx context.Context, objectName string, data []byte) error
}

// GCSWriter archives snapshots to a Cloud Storage bucket. It assumes
// Application Default Credentials are configured.
type GCSWriter struct {
	Bucket string
}

func (w *GCSWriter) Write(ctx context.Context, objectName string, data []byte) error {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return fmt.Errorf("GCSWriter: creating storage client: %w", err)
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	wc := client.Bucket(w.Bucket).Object(objectName).NewWriter(ctx)
	wc.ContentType = "application/json"

	if _, err := wc.Write(data); err != nil {
		_ = wc.Close()
		return fmt.Errorf("GCSWriter: writing object: %w", err)
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("GCSWriter: finalizing upload: %w", err)
	}

	return nil
}

// FileWriter stores snapshots under a local directory, mirroring the object
// layout the GCS writer uses.
type FileWriter struct {
	Dir string
}

func (w *FileWriter) Write(ctx context.Context, objectName string, data []byte) error {
	path := filepath.Join(w.Dir, filepath.FromSlash(objectName))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("FileWriter: creating directories: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("FileWriter: writing file: %w", err)
	}
	return nil
}

// Export captures, encodes and stores a snapshot, returning the object name
// it was written under.
func Export(ctx context.Context, w Writer, snap Snapshot) (string, error) {
	data, err := snap.Encode()
	if err != nil {
		return "", fmt.Errorf("Export: %w", err)
	}

	name := snap.ObjectName()
	if err := w.Write(ctx, name, data); err != nil {
		return "", fmt.Errorf("Export: %w", err)
	}
	return name, nil
}

var (
	_ Writer = (*GCSWriter)(nil)
	_ Writer = (*FileWriter)(nil)
)
