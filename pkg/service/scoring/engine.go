package scoring

import (
	"github.com/psq-lab/psiquo/pkg/domain/model"
	"github.com/psq-lab/psiquo/pkg/domain/model/config"
	"github.com/psq-lab/psiquo/pkg/domain/types"
)

// Engine computes per-category results from a sector's raw answers. It is a
// pure function of its inputs and the injected assessment configuration.
type Engine struct {
	cfg *config.AssessmentConfig
}

// New creates a scoring engine bound to the given configuration
func New(cfg *config.AssessmentConfig) *Engine {
	return &Engine{cfg: cfg}
}

// ScoreSector scores one sector's answered questions. Categories without any
// answered question produce no result; partial answers within a category are
// still averaged, no minimum count is enforced.
func (e *Engine) ScoreSector(answers []model.ScoredAnswer) []model.CategoryResult {
	results := make([]model.CategoryResult, 0, len(e.cfg.Categories))

	for _, cat := range e.cfg.Categories {
		var sum float64
		var count int
		for _, ans := range answers {
			if !containsOrder(cat.Orders, ans.Order) {
				continue
			}
			sum += float64(e.score(ans))
			count++
		}
		if count == 0 {
			continue
		}

		mean := sum / float64(count)
		probability := e.levelFor(mean)
		// Severity mirrors probability under the current scoring method.
		// The field stays separate because overrides may diverge later.
		severity := probability

		results = append(results, model.CategoryResult{
			Category:       cat.ID,
			MeanScore:      mean,
			Probability:    probability,
			Severity:       severity,
			Classification: Classify(probability, severity),
		})
	}

	return results
}

// score converts one raw answer to its risk score. Positive-scale questions
// are inverted so that 1..5 always reads "higher = riskier".
func (e *Engine) score(ans model.ScoredAnswer) int {
	if e.cfg.PositiveOrders[ans.Order] {
		return 6 - ans.Value
	}
	return ans.Value
}

// levelFor buckets a mean score into a level. Boundaries are inclusive on
// the lower bound of each tier.
func (e *Engine) levelFor(mean float64) types.Level {
	switch {
	case mean >= e.cfg.HighThreshold:
		return types.LevelHigh
	case mean >= e.cfg.MediumThreshold:
		return types.LevelMedium
	default:
		return types.LevelLow
	}
}

func containsOrder(orders []int, order int) bool {
	for _, o := range orders {
		if o == order {
			return true
		}
	}
	return false
}
