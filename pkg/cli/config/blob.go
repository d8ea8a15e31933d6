package config

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/psq-lab/psiquo/pkg/domain/interfaces"
	"github.com/psq-lab/psiquo/pkg/service/blob"
	"github.com/psq-lab/psiquo/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// Blob holds CLI flags for artifact storage configuration
type Blob struct {
	backend      string
	bucket       string
	objectPrefix string
}

// Flags returns CLI flags for blob storage configuration
func (b *Blob) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "blob-backend",
			Usage:       "Blob storage backend type (gcs or memory)",
			Value:       "gcs",
			Sources:     cli.EnvVars("PSIQUO_BLOB_BACKEND"),
			Destination: &b.backend,
		},
		&cli.StringFlag{
			Name:        "blob-bucket",
			Usage:       "GCS bucket for artifacts (required when using gcs backend)",
			Sources:     cli.EnvVars("PSIQUO_BLOB_BUCKET"),
			Destination: &b.bucket,
		},
		&cli.StringFlag{
			Name:        "blob-object-prefix",
			Usage:       "Prefix for all object keys",
			Sources:     cli.EnvVars("PSIQUO_BLOB_OBJECT_PREFIX"),
			Destination: &b.objectPrefix,
		},
	}
}

// Configure initializes the configured blob storage backend
func (b *Blob) Configure(ctx context.Context) (interfaces.BlobStorage, error) {
	switch b.backend {
	case "gcs":
		if b.bucket == "" {
			return nil, goerr.New("blob-bucket is required when using gcs backend")
		}
		var opts []blob.GCSOption
		if b.objectPrefix != "" {
			opts = append(opts, blob.WithObjectPrefix(b.objectPrefix))
		}
		store, err := blob.NewGCS(ctx, b.bucket, opts...)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to initialize gcs blob storage")
		}
		logging.Default().Info("Using GCS blob storage", "bucket", b.bucket)
		return store, nil

	case "memory":
		logging.Default().Info("Using in-memory blob storage (development mode)")
		return blob.NewMemory(), nil

	default:
		return nil, goerr.New("invalid blob backend", goerr.V("backend", b.backend))
	}
}
