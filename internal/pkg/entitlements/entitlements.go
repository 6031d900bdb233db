package entitlements

import (
	"strings"

	"github.com/itzsam-lol/com-app/app/models"
)

type Plan string

const (
	PlanStarter    Plan = models.PLAN_STARTER
	PlanPremium    Plan = models.PLAN_PREMIUM
	PlanEnterprise Plan = models.PLAN_ENTERPRISE
)

// DefaultPlan is assigned to every newly created user.
const DefaultPlan = PlanStarter

// ParsePlan normalizes a client supplied plan name. Matching is case-insensitive.
func ParsePlan(raw string) (Plan, bool) {
	switch Plan(strings.ToUpper(strings.TrimSpace(raw))) {
	case PlanStarter:
		return PlanStarter, true
	case PlanPremium:
		return PlanPremium, true
	case PlanEnterprise:
		return PlanEnterprise, true
	default:
		return "", false
	}
}

// IsPaid reports whether the plan is bought through the payment processor.
func (p Plan) IsPaid() bool {
	return p == PlanPremium || p == PlanEnterprise
}

func (p Plan) String() string {
	return string(p)
}

// Features lists what a plan unlocks in the client.
func Features(p Plan) []string {
	switch p {
	case PlanEnterprise:
		return []string{"sos_alerts", "medical_profile", "family_sharing", "priority_dispatch", "dedicated_support"}
	case PlanPremium:
		return []string{"sos_alerts", "medical_profile", "family_sharing"}
	default:
		return []string{"sos_alerts"}
	}
}
