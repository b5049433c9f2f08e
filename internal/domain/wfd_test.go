package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBoundaries = "475.0;650.0;1075.0;1775.0"

func TestClassifyWFD(t *testing.T) {
	cases := []struct {
		name  string
		value float64
		want  Class
	}{
		{"well below first boundary", 300, ClassHigh},
		{"just below first boundary", 474.999, ClassHigh},
		{"on first boundary", 475, ClassGood},
		{"between first and second", 500, ClassGood},
		{"on second boundary", 650, ClassModerate},
		{"between second and third", 1000, ClassModerate},
		{"on third boundary", 1075, ClassPoor},
		{"between third and fourth", 1500, ClassPoor},
		{"on fourth boundary", 1775, ClassBad},
		{"above fourth boundary", 2000, ClassBad},
		{"negative value", -10, ClassHigh},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ClassifyWFD(testBoundaries, tc.value)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestClassifyWFD_MonotonicNonIncreasing(t *testing.T) {
	// Class quality must never improve as the value increases.
	rank := map[Class]int{ClassHigh: 0, ClassGood: 1, ClassModerate: 2, ClassPoor: 3, ClassBad: 4}

	prev := -1
	for v := 0.0; v <= 2500; v += 12.5 {
		class, err := ClassifyWFD(testBoundaries, v)
		require.NoError(t, err)
		r, ok := rank[class]
		require.True(t, ok, "unexpected class %q", class)
		assert.GreaterOrEqual(t, r, prev, "class quality improved at value %v", v)
		prev = r
	}
}

func TestParseClassBoundaries_Invalid(t *testing.T) {
	cases := []struct {
		name     string
		boundary string
	}{
		{"too few tokens", "475.0;650.0;1075.0"},
		{"too many tokens", "475.0;650.0;1075.0;1775.0;2000.0"},
		{"non-numeric token", "475.0;abc;1075.0;1775.0"},
		{"empty string", ""},
		{"not strictly increasing", "475.0;475.0;1075.0;1775.0"},
		{"decreasing", "1775.0;1075.0;650.0;475.0"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseClassBoundaries(tc.boundary)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidArgument)
		})
	}
}

func TestParseClassBoundaries_TrimsWhitespace(t *testing.T) {
	b, err := ParseClassBoundaries("475.0; 650.0; 1075.0; 1775.0")
	require.NoError(t, err)
	assert.Equal(t, ClassBoundaries{475, 650, 1075, 1775}, b)
}
