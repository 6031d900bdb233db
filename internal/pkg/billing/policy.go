package billing

import (
	"fmt"

	"github.com/itzsam-lol/com-app/internal/pkg/entitlements"
)

// Decision is the outcome of a plan transition check.
type Decision struct {
	Allowed bool
	Reason  string
}

const downgradeReason = "Downgrade to Starter is not allowed for active Premium/Enterprise users."

// Decide checks whether a user on current may switch to requested through the
// direct plan endpoint. Paid plans cannot fall back to the free tier; every
// other transition, including same-plan and lateral moves, is allowed.
func Decide(current, requested entitlements.Plan) Decision {
	if current.IsPaid() && requested == entitlements.PlanStarter {
		return Decision{Allowed: false, Reason: downgradeReason}
	}
	return Decision{Allowed: true}
}

// Err converts a rejection into an error wrapping ErrPolicyViolation.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrPolicyViolation, d.Reason)
}
