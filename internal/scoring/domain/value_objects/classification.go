package value_objects

import (
	"errors"
	"fmt"
	"strings"
)

// Classification labels an email thread by who is on the other end.
type Classification int

const (
	ClassificationNoise Classification = iota
	ClassificationMarket
	ClassificationLawyerBroker
	ClassificationBuyer
	ClassificationVendor
)

var (
	ErrUnknownClassification = errors.New("unknown classification")
)

var classificationNames = map[Classification]string{
	ClassificationNoise:        "noise",
	ClassificationMarket:       "market",
	ClassificationLawyerBroker: "lawyer_broker",
	ClassificationBuyer:        "buyer",
	ClassificationVendor:       "vendor",
}

var classificationValues = map[string]Classification{
	"noise":         ClassificationNoise,
	"market":        ClassificationMarket,
	"lawyer_broker": ClassificationLawyerBroker,
	"buyer":         ClassificationBuyer,
	"vendor":        ClassificationVendor,
}

// classificationScores maps each label to its factor score. Vendors and buyers
// are the revenue-bearing relationships, so they outrank market updates and
// noise by a wide margin.
var classificationScores = map[Classification]float64{
	ClassificationNoise:        5,
	ClassificationMarket:       30,
	ClassificationLawyerBroker: 55,
	ClassificationBuyer:        70,
	ClassificationVendor:       80,
}

// ParseClassification creates a Classification from a string.
func ParseClassification(s string) (Classification, error) {
	c, ok := classificationValues[strings.ToLower(s)]
	if !ok {
		return ClassificationNoise, fmt.Errorf("%w: %q", ErrUnknownClassification, s)
	}
	return c, nil
}

// String returns the string representation of the classification.
func (c Classification) String() string {
	if name, ok := classificationNames[c]; ok {
		return name
	}
	return "unknown"
}

// IsValid returns true if the classification is a known value.
func (c Classification) IsValid() bool {
	_, ok := classificationNames[c]
	return ok
}

// Score returns the 0-100 factor score for the classification.
func (c Classification) Score() (float64, error) {
	score, ok := classificationScores[c]
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrUnknownClassification, int(c))
	}
	return score, nil
}
