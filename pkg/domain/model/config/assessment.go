package config

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/psq-lab/psiquo/pkg/domain/types"
)

// Category maps one risk category to the questionnaire orders that feed it
type Category struct {
	ID          types.CategoryID
	Description string
	Orders      []int
}

// QuestionSeed is the declarative definition of one questionnaire item
type QuestionSeed struct {
	Category types.CategoryID
	Order    int
	Text     string
}

// AssessmentConfig is the immutable scoring configuration: category to
// question-order mapping, the set of positive-scale orders (higher raw value
// means better outcome, so the score is inverted), the level thresholds and
// the question seed. It is injected into the scoring engine and the seeding
// command; tests substitute alternate configurations freely.
type AssessmentConfig struct {
	Categories     []Category
	PositiveOrders map[int]bool
	HighThreshold  float64
	MediumThreshold float64
	Questions      []QuestionSeed
}

// Validate checks structural consistency of the configuration
func (c *AssessmentConfig) Validate() error {
	if len(c.Categories) == 0 {
		return goerr.New("at least one category is required", goerr.T(types.ErrTagValidation))
	}
	if c.HighThreshold <= c.MediumThreshold {
		return goerr.New("high threshold must exceed medium threshold",
			goerr.V("high", c.HighThreshold), goerr.V("medium", c.MediumThreshold),
			goerr.T(types.ErrTagValidation))
	}

	seen := map[types.CategoryID]bool{}
	orderOwner := map[int]types.CategoryID{}
	for _, cat := range c.Categories {
		if err := cat.ID.Validate(); err != nil {
			return err
		}
		if seen[cat.ID] {
			return goerr.New("duplicate category", goerr.V("id", cat.ID), goerr.T(types.ErrTagValidation))
		}
		seen[cat.ID] = true
		if len(cat.Orders) == 0 {
			return goerr.New("category has no question orders", goerr.V("id", cat.ID), goerr.T(types.ErrTagValidation))
		}
		for _, ord := range cat.Orders {
			if owner, dup := orderOwner[ord]; dup {
				return goerr.New("question order assigned to two categories",
					goerr.V("order", ord), goerr.V("category", cat.ID), goerr.V("other", owner),
					goerr.T(types.ErrTagValidation))
			}
			orderOwner[ord] = cat.ID
		}
	}

	for _, q := range c.Questions {
		if _, ok := orderOwner[q.Order]; !ok {
			return goerr.New("question order not covered by any category",
				goerr.V("order", q.Order), goerr.T(types.ErrTagValidation))
		}
		if q.Text == "" {
			return goerr.New("question text is required", goerr.V("order", q.Order), goerr.T(types.ErrTagValidation))
		}
	}

	return nil
}

// CategoryByID returns the category with the given ID, if configured
func (c *AssessmentConfig) CategoryByID(id types.CategoryID) (Category, bool) {
	for _, cat := range c.Categories {
		if cat.ID == id {
			return cat, true
		}
	}
	return Category{}, false
}

// Description returns the human-readable risk description for a category,
// falling back to the raw category ID.
func (c *AssessmentConfig) Description(id types.CategoryID) string {
	if cat, ok := c.CategoryByID(id); ok && cat.Description != "" {
		return cat.Description
	}
	return id.String()
}
