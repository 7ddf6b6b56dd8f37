package port

import "context"

// ObjectStorage reads whole objects addressed by URI, e.g.
// "s3://vibecheck-programs/2026/d66.pdf".
type ObjectStorage interface {
	Fetch(ctx context.Context, uri string) ([]byte, error)
}
