package blob

import (
	"context"
	"errors"
	"io"

	"cloud.google.com/go/storage"
	"github.com/m-mizutani/goerr/v2"
	"github.com/psq-lab/psiquo/pkg/domain/types"
	"github.com/psq-lab/psiquo/pkg/utils/safe"
)

// GCS stores artifacts as objects in a Cloud Storage bucket. All failures
// are tagged as storage errors so callers can map them to a gateway status.
type GCS struct {
	client *storage.Client
	bucket string
	prefix string
}

type GCSOption func(*GCS)

// WithObjectPrefix namespaces all object keys, for sharing a bucket across
// deployments
func WithObjectPrefix(prefix string) GCSOption {
	return func(g *GCS) {
		g.prefix = prefix
	}
}

func NewGCS(ctx context.Context, bucket string, opts ...GCSOption) (*GCS, error) {
	if bucket == "" {
		return nil, goerr.New("bucket name is required")
	}

	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create storage client", goerr.T(types.ErrTagStorage))
	}

	g := &GCS{
		client: client,
		bucket: bucket,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

func (g *GCS) object(key string) *storage.ObjectHandle {
	name := key
	if g.prefix != "" {
		name = g.prefix + "/" + key
	}
	return g.client.Bucket(g.bucket).Object(name)
}

func (g *GCS) Store(ctx context.Context, key string, data []byte, contentType string) error {
	w := g.object(key).NewWriter(ctx)
	w.ContentType = contentType
	w.CacheControl = "no-cache, no-store, must-revalidate"

	if _, err := w.Write(data); err != nil {
		safe.Close(ctx, w)
		return goerr.Wrap(err, "failed to write object",
			goerr.T(types.ErrTagStorage), goerr.V("key", key))
	}
	if err := w.Close(); err != nil {
		return goerr.Wrap(err, "failed to finalize object",
			goerr.T(types.ErrTagStorage), goerr.V("key", key))
	}
	return nil
}

func (g *GCS) Fetch(ctx context.Context, key string) ([]byte, error) {
	r, err := g.object(key).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, goerr.Wrap(err, "object not found",
				goerr.T(types.ErrTagNotFound), goerr.V("key", key))
		}
		return nil, goerr.Wrap(err, "failed to open object",
			goerr.T(types.ErrTagStorage), goerr.V("key", key))
	}
	defer safe.Close(ctx, r)

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read object",
			goerr.T(types.ErrTagStorage), goerr.V("key", key))
	}
	return data, nil
}

func (g *GCS) Delete(ctx context.Context, key string) error {
	if err := g.object(key).Delete(ctx); err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil
		}
		return goerr.Wrap(err, "failed to delete object",
			goerr.T(types.ErrTagStorage), goerr.V("key", key))
	}
	return nil
}

func (g *GCS) Close() error {
	return g.client.Close()
}
