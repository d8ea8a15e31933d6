package model

import (
	"time"

	"github.com/psq-lab/psiquo/pkg/domain/types"
)

// Evidence is a supporting document uploaded by the company. The core never
// inspects the payload; it only tracks the blob key and metadata.
type Evidence struct {
	ID        types.EvidenceID
	CompanyID types.CompanyID
	Label     string
	MediaType string // content type of the stored payload
	BlobKey   string // key in blob storage, content-derived
	SizeKB    int
	CreatedAt time.Time
}
