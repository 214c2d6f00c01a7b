package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyBoundaries(t *testing.T) {
	cases := []struct {
		percentage float64
		tier       string
	}{
		{100, RiskLow},
		{90, RiskLow},
		{89.9, RiskMedium},
		{75, RiskMedium},
		{74.9, RiskHigh},
		{0, RiskHigh},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.tier, Classify(tc.percentage), "classify(%v)", tc.percentage)
	}
}
