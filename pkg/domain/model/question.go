package model

import (
	"time"

	"github.com/psq-lab/psiquo/pkg/domain/types"
)

// Question is one item of the fixed questionnaire. Questions are seeded from
// the assessment configuration and keyed by their ordinal position; only the
// text and active flag are ever edited afterwards.
type Question struct {
	ID        types.QuestionID
	Category  types.CategoryID
	Order     int
	Text      string
	Active    bool
	CreatedAt time.Time
}

// Answer is a single Likert response of a sector to a question. Unique per
// (sector, question); submitting again overwrites the value.
type Answer struct {
	ID         string
	SectorID   types.SectorID
	QuestionID types.QuestionID
	Value      int // 1..5
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
