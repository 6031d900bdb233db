package entitlements

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePlan(t *testing.T) {
	tests := []struct {
		in   string
		want Plan
		ok   bool
	}{
		{in: "STARTER", want: PlanStarter, ok: true},
		{in: "premium", want: PlanPremium, ok: true},
		{in: " Enterprise ", want: PlanEnterprise, ok: true},
		{in: "gold", ok: false},
		{in: "", ok: false},
	}

	for _, tt := range tests {
		got, ok := ParsePlan(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestIsPaid(t *testing.T) {
	assert.False(t, PlanStarter.IsPaid())
	assert.True(t, PlanPremium.IsPaid())
	assert.True(t, PlanEnterprise.IsPaid())
}

func TestFeaturesGrowWithPlan(t *testing.T) {
	assert.Len(t, Features(PlanStarter), 1)
	assert.Greater(t, len(Features(PlanEnterprise)), len(Features(PlanPremium)))
}
