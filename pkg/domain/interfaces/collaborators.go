package interfaces

import (
	"context"

	"github.com/psq-lab/psiquo/pkg/domain/model"
)

// BlobStorage stores opaque binary artifacts (evidence payloads, rendered
// reports). Keys are content-derived so a retried write is idempotent; the
// core itself never retries.
type BlobStorage interface {
	Store(ctx context.Context, key string, data []byte, contentType string) error
	Fetch(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

// Renderer turns a report snapshot into a binary document. Treated as a
// pure function of the snapshot.
type Renderer interface {
	Render(ctx context.Context, snapshot *model.ReportSnapshot) ([]byte, error)
	ContentType() string
}
