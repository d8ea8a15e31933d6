package types

import "github.com/m-mizutani/goerr/v2"

// Classification is the risk tier derived from a (probability, severity)
// pair. It is never assigned independently; scoring.Classify is the only
// producer.
type Classification string

const (
	ClassificationLow    Classification = "low"
	ClassificationMedium Classification = "medium"
	ClassificationHigh   Classification = "high"
)

// AllClassifications returns all valid classifications in ascending order
func AllClassifications() []Classification {
	return []Classification{ClassificationLow, ClassificationMedium, ClassificationHigh}
}

// IsValid checks if the classification is one of the known values
func (x Classification) IsValid() bool {
	switch x {
	case ClassificationLow, ClassificationMedium, ClassificationHigh:
		return true
	default:
		return false
	}
}

// RequiresRecord reports whether a category with this classification must be
// persisted as a risk record. Low-classified categories are never stored.
func (x Classification) RequiresRecord() bool {
	return x == ClassificationMedium || x == ClassificationHigh
}

// String returns the string representation of the classification
func (x Classification) String() string {
	return string(x)
}

// ParseClassification parses a string into a Classification
func ParseClassification(s string) (Classification, error) {
	c := Classification(s)
	if !c.IsValid() {
		return "", goerr.New("invalid classification", goerr.V("classification", s), goerr.T(ErrTagValidation))
	}
	return c, nil
}
