package storage

// ObjectName is exported for testing
func (g *GCS) ObjectName(name string) string {
	return g.objectName(name)
}

// NewGCSForTest builds a GCS writer without a client
func NewGCSForTest(bucket, prefix string) *GCS {
	return &GCS{bucket: bucket, prefix: prefix}
}
