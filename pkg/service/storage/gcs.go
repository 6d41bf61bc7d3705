package storage

import (
	"context"
	"path"

	"cloud.google.com/go/storage"
	"github.com/m-mizutani/goerr/v2"
)

// GCS writes reports as objects under a bucket prefix
type GCS struct {
	client *storage.Client
	bucket string
	prefix string
}

func NewGCS(ctx context.Context, bucket, prefix string) (*GCS, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create storage client", goerr.V("bucket", bucket))
	}
	return &GCS{
		client: client,
		bucket: bucket,
		prefix: prefix,
	}, nil
}

func (g *GCS) objectName(name string) string {
	if g.prefix == "" {
		return name
	}
	return path.Join(g.prefix, name)
}

func (g *GCS) Write(ctx context.Context, name string, data []byte) (string, error) {
	object := g.objectName(name)

	w := g.client.Bucket(g.bucket).Object(object).NewWriter(ctx)
	w.ContentType = "application/json"
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return "", goerr.Wrap(err, "failed to write report object",
			goerr.V("bucket", g.bucket), goerr.V("object", object))
	}
	// The object is committed on Close
	if err := w.Close(); err != nil {
		return "", goerr.Wrap(err, "failed to commit report object",
			goerr.V("bucket", g.bucket), goerr.V("object", object))
	}

	return gcsScheme + g.bucket + "/" + object, nil
}

func (g *GCS) Close() error {
	return g.client.Close()
}
