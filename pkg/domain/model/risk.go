package model

import (
	"time"

	"github.com/psq-lab/psiquo/pkg/domain/types"
)

// Risk is a persisted risk record produced by assessment regeneration. A
// record exists only for categories whose classification came out Medium or
// High. Classification is always derived from (Probability, Severity) via
// the scoring matrix; it is stored for query convenience but recomputed on
// every write path.
type Risk struct {
	ID            types.RiskID
	SectorID      types.SectorID
	Category      types.CategoryID
	Description   string
	Probability   types.Level
	Severity      types.Level
	Classification types.Classification
	Justification string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// CategoryResult is the pure output of scoring one category of one sector.
// It is never persisted on its own.
type CategoryResult struct {
	Category       types.CategoryID
	MeanScore      float64
	Probability    types.Level
	Severity       types.Level
	Classification types.Classification
}

// ScoredAnswer is the scoring input: one answered question of a sector
type ScoredAnswer struct {
	Value int // raw Likert value, 1..5
	Order int // ordinal position of the question
}
