// Package storage provides report writers: a local directory and a Google
// Cloud Storage bucket.
package storage

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskquant/pkg/domain/interfaces"
)

const gcsScheme = "gs://"

// Writer is a ReportWriter that may hold a client needing release
type Writer interface {
	interfaces.ReportWriter
	Close() error
}

// IsGCS reports whether location is a gs:// URL
func IsGCS(location string) bool {
	return strings.HasPrefix(location, gcsScheme)
}

// ParseGCS splits gs://bucket/prefix into bucket and prefix. The prefix has
// no leading or trailing slash and may be empty.
func ParseGCS(location string) (bucket, prefix string, err error) {
	if !IsGCS(location) {
		return "", "", goerr.New("location is not a gs:// URL", goerr.V("location", location))
	}
	rest := strings.TrimPrefix(location, gcsScheme)
	bucket, prefix, _ = strings.Cut(rest, "/")
	if bucket == "" {
		return "", "", goerr.New("bucket name is missing", goerr.V("location", location))
	}
	return bucket, strings.Trim(prefix, "/"), nil
}

// New returns a GCS writer for gs:// locations and a directory writer
// otherwise
func New(ctx context.Context, location string) (Writer, error) {
	if IsGCS(location) {
		bucket, prefix, err := ParseGCS(location)
		if err != nil {
			return nil, err
		}
		return NewGCS(ctx, bucket, prefix)
	}
	return NewLocal(location)
}
