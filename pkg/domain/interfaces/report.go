package interfaces

import "context"

// ReportWriter stores an exported report document under name and returns
// the location it was written to
type ReportWriter interface {
	Write(ctx context.Context, name string, data []byte) (string, error)
}
