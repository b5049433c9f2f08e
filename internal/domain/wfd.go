package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Class is a WFD status class.
type Class string

const (
	ClassHigh     Class = "High"
	ClassGood     Class = "Good"
	ClassModerate Class = "Moderate"
	ClassPoor     Class = "Poor"
	ClassBad      Class = "Bad"
)

// ClassBoundaries holds four strictly increasing class thresholds. The four
// values split the number line into five half-open intervals, one per class.
type ClassBoundaries [4]float64

// ParseClassBoundaries parses a semicolon-separated boundary string, e.g.
// "475.0;650.0;1075.0;1775.0". It requires exactly four numeric tokens in
// strictly increasing order and returns ErrInvalidArgument otherwise.
func ParseClassBoundaries(s string) (ClassBoundaries, error) {
	tokens := strings.Split(s, ";")
	if len(tokens) != len(ClassBoundaries{}) {
		return ClassBoundaries{}, fmt.Errorf("%w: boundary string %q has %d values, want 4",
			ErrInvalidArgument, s, len(tokens))
	}

	var b ClassBoundaries
	for i, tok := range tokens {
		v, err := strconv.ParseFloat(strings.TrimSpace(tok), 64)
		if err != nil {
			return ClassBoundaries{}, fmt.Errorf("%w: boundary string %q: token %q is not numeric",
				ErrInvalidArgument, s, tok)
		}
		if i > 0 && v <= b[i-1] {
			return ClassBoundaries{}, fmt.Errorf("%w: boundary string %q is not strictly increasing",
				ErrInvalidArgument, s)
		}
		b[i] = v
	}
	return b, nil
}

// Classify maps a value to its WFD class. Intervals are half-open on the
// lower end: a value equal to a boundary falls in the class above it
// (lower quality). Lowest values classify as High.
func (b ClassBoundaries) Classify(value float64) Class {
	switch {
	case value < b[0]:
		return ClassHigh
	case value < b[1]:
		return ClassGood
	case value < b[2]:
		return ClassModerate
	case value < b[3]:
		return ClassPoor
	default:
		return ClassBad
	}
}

// ClassifyWFD parses a boundary string and classifies value in one step.
func ClassifyWFD(boundaryStr string, value float64) (Class, error) {
	b, err := ParseClassBoundaries(boundaryStr)
	if err != nil {
		return "", err
	}
	return b.Classify(value), nil
}
