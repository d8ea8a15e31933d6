package scoring

import "github.com/psq-lab/psiquo/pkg/domain/types"

// classificationMatrix maps (probability, severity) to a classification.
// Probability selects the row, severity the column. Keep it a table: the
// tiers come from the published risk matrix, not from a formula.
var classificationMatrix = map[types.Level]map[types.Level]types.Classification{
	types.LevelHigh: {
		types.LevelHigh:   types.ClassificationHigh,
		types.LevelMedium: types.ClassificationHigh,
		types.LevelLow:    types.ClassificationMedium,
	},
	types.LevelMedium: {
		types.LevelHigh:   types.ClassificationHigh,
		types.LevelMedium: types.ClassificationMedium,
		types.LevelLow:    types.ClassificationLow,
	},
	types.LevelLow: {
		types.LevelHigh:   types.ClassificationMedium,
		types.LevelMedium: types.ClassificationLow,
		types.LevelLow:    types.ClassificationLow,
	},
}

// Classify derives the risk classification from a probability and severity
// level. This is the single source of truth: no other code path assigns a
// classification value.
func Classify(probability, severity types.Level) types.Classification {
	return classificationMatrix[probability][severity]
}
