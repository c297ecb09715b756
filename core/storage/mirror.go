package storage

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"path"
	"strings"

	"github.com/minio/minio-go/v7"
)

// maxImageBytes bounds a single mirrored image download.
const maxImageBytes = 25 << 20

// Mirror copies remote image URLs into the local bucket so imported records
// do not depend on remotely hosted assets.
type Mirror struct {
	client Client
	bucket string
	http   *http.Client
}

// NewMirror creates an image mirror over the given storage client.
func NewMirror(client Client, bucket string) *Mirror {
	return &Mirror{client: client, bucket: bucket, http: http.DefaultClient}
}

// EnsureBucket creates the mirror bucket if it does not exist yet.
func (m *Mirror) EnsureBucket(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return fmt.Errorf("failed to check mirror bucket: %w", err)
	}
	if exists {
		return nil
	}
	if err := m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create mirror bucket: %w", err)
	}
	return nil
}

// MirrorURL downloads the image at url and stores it under a content-derived
// object name. It returns the object name. Mirroring the same URL twice is a
// no-op: the object name is deterministic and existing objects are skipped.
func (m *Mirror) MirrorURL(ctx context.Context, url string) (string, error) {
	if !IsAbsoluteURL(url) {
		return "", fmt.Errorf("refusing to mirror non-absolute URL %q", url)
	}

	objectName := objectNameFor(url)

	// Already mirrored?
	if _, err := m.client.StatObject(ctx, m.bucket, objectName, minio.StatObjectOptions{}); err == nil {
		return objectName, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build image request: %w", err)
	}
	resp, err := m.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("image fetch returned status %d", resp.StatusCode)
	}

	size := resp.ContentLength
	if size > maxImageBytes {
		return "", errors.New("image exceeds mirror size limit")
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err = m.client.PutObject(ctx, m.bucket, objectName, resp.Body, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to store mirrored image: %w", err)
	}
	return objectName, nil
}

// IsAbsoluteURL reports whether s is an absolute external http(s) URL.
// Relative paths and other schemes are rejected; the mapper uses the same
// check to gate image-typed fields.
func IsAbsoluteURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// objectNameFor derives a stable object name from the source URL, keeping
// the original extension when present.
func objectNameFor(url string) string {
	sum := sha256.Sum256([]byte(url))
	name := hex.EncodeToString(sum[:16])
	if ext := path.Ext(strings.SplitN(url, "?", 2)[0]); ext != "" && len(ext) <= 8 {
		name += ext
	}
	return "mirrored/" + name
}
