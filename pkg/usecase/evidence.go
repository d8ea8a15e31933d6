package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/psq-lab/psiquo/pkg/domain/model"
	"github.com/psq-lab/psiquo/pkg/domain/types"
	"github.com/psq-lab/psiquo/pkg/utils/logging"
)

// Evidence limits per company
const (
	maxEvidencePerCompany = 5
	maxEvidenceBytes      = 10 << 20 // 10MB
	minEvidenceLabelLen   = 3
)

// allowedEvidenceTypes is the content-type allowlist for uploads
var allowedEvidenceTypes = map[string]bool{
	"application/pdf": true,
	"image/jpeg":      true,
	"image/png":       true,
	"image/webp":      true,
}

// AddEvidenceInput carries an evidence upload
type AddEvidenceInput struct {
	Label     string
	MediaType string
	Payload   []byte
}

// AddEvidence stores an uploaded document and its metadata. The payload
// lands in blob storage under a content-derived key; the record holds only
// the key.
func (uc *UseCases) AddEvidence(ctx context.Context, companyID types.CompanyID, input *AddEvidenceInput) (*model.Evidence, error) {
	label := strings.TrimSpace(input.Label)
	if len(label) < minEvidenceLabelLen {
		return nil, goerr.New("evidence label must have at least 3 characters",
			goerr.T(types.ErrTagValidation), goerr.V("field", "label"))
	}
	if !allowedEvidenceTypes[input.MediaType] {
		return nil, goerr.New("evidence media type is not allowed",
			goerr.T(types.ErrTagValidation), goerr.V("media_type", input.MediaType))
	}
	if len(input.Payload) == 0 {
		return nil, goerr.New("evidence payload is empty",
			goerr.T(types.ErrTagValidation), goerr.V("field", "payload"))
	}
	if len(input.Payload) > maxEvidenceBytes {
		return nil, goerr.New("evidence payload exceeds 10MB",
			goerr.T(types.ErrTagValidation), goerr.V("size", len(input.Payload)))
	}

	if _, err := uc.repo.Company().Get(ctx, companyID); err != nil {
		return nil, goerr.Wrap(err, "failed to get company", goerr.V(types.CompanyIDKey, companyID))
	}

	existing, err := uc.repo.Evidence().ListByCompany(ctx, companyID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list evidence", goerr.V(types.CompanyIDKey, companyID))
	}
	if len(existing) >= maxEvidencePerCompany {
		return nil, goerr.New("evidence limit of 5 documents reached",
			goerr.T(types.ErrTagPrecondition), goerr.V(types.CompanyIDKey, companyID))
	}

	key := evidenceBlobKey(companyID, input.Payload)
	if err := uc.blob.Store(ctx, key, input.Payload, input.MediaType); err != nil {
		return nil, goerr.Wrap(err, "failed to store evidence payload", goerr.V("key", key))
	}

	evidence, err := uc.repo.Evidence().Create(ctx, &model.Evidence{
		CompanyID: companyID,
		Label:     label,
		MediaType: input.MediaType,
		BlobKey:   key,
		SizeKB:    (len(input.Payload) + 1023) / 1024,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create evidence record", goerr.V(types.CompanyIDKey, companyID))
	}

	logging.From(ctx).Info("evidence uploaded",
		"company_id", companyID,
		"evidence_id", evidence.ID,
		"size_kb", evidence.SizeKB,
	)

	return evidence, nil
}

// ListEvidence returns the evidence records of the company, newest first
func (uc *UseCases) ListEvidence(ctx context.Context, companyID types.CompanyID) ([]*model.Evidence, error) {
	items, err := uc.repo.Evidence().ListByCompany(ctx, companyID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list evidence", goerr.V(types.CompanyIDKey, companyID))
	}
	return items, nil
}

// FetchEvidence returns an evidence record together with its payload
func (uc *UseCases) FetchEvidence(ctx context.Context, companyID types.CompanyID, id types.EvidenceID) (*model.Evidence, []byte, error) {
	evidence, err := uc.evidenceOwnedBy(ctx, companyID, id)
	if err != nil {
		return nil, nil, err
	}

	payload, err := uc.blob.Fetch(ctx, evidence.BlobKey)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to fetch evidence payload", goerr.V("key", evidence.BlobKey))
	}
	return evidence, payload, nil
}

// DeleteEvidence removes an evidence record and its stored payload
func (uc *UseCases) DeleteEvidence(ctx context.Context, companyID types.CompanyID, id types.EvidenceID) error {
	evidence, err := uc.evidenceOwnedBy(ctx, companyID, id)
	if err != nil {
		return err
	}

	if err := uc.repo.Evidence().Delete(ctx, id); err != nil {
		return goerr.Wrap(err, "failed to delete evidence record", goerr.V(types.EvidenceIDKey, id))
	}

	// Record removal wins; an orphaned blob is garbage, not corruption
	if err := uc.blob.Delete(ctx, evidence.BlobKey); err != nil {
		logging.From(ctx).Warn("failed to delete evidence payload",
			"key", evidence.BlobKey, "error", err.Error())
	}
	return nil
}

func (uc *UseCases) evidenceOwnedBy(ctx context.Context, companyID types.CompanyID, id types.EvidenceID) (*model.Evidence, error) {
	evidence, err := uc.repo.Evidence().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get evidence", goerr.V(types.EvidenceIDKey, id))
	}
	if evidence.CompanyID != companyID {
		return nil, goerr.New("evidence not found",
			goerr.T(types.ErrTagNotFound),
			goerr.V(types.EvidenceIDKey, id), goerr.V(types.CompanyIDKey, companyID))
	}
	return evidence, nil
}

func evidenceBlobKey(companyID types.CompanyID, payload []byte) string {
	sum := sha256.Sum256(payload)
	return "evidence/" + companyID.String() + "/" + hex.EncodeToString(sum[:])
}
