package billing

import "errors"

var (
	// ErrInvalidPlan is returned for plan names that are unknown or cannot be bought.
	ErrInvalidPlan = errors.New("invalid plan")
	// ErrInvalidMonths is returned when the purchase duration is out of range.
	ErrInvalidMonths = errors.New("invalid number of months")
	// ErrPolicyViolation is returned when a plan transition is not allowed.
	ErrPolicyViolation = errors.New("plan change not allowed")
	// ErrUserNotFound is returned when the referenced user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrUpstreamUnavailable wraps payment processor failures.
	ErrUpstreamUnavailable = errors.New("payment processor unavailable")
	// ErrInvalidSignature is returned for webhook payloads failing verification.
	ErrInvalidSignature = errors.New("invalid webhook signature")
	// ErrInvalidPayload is returned for verified webhooks whose body cannot be decoded.
	ErrInvalidPayload = errors.New("invalid webhook payload")
	// ErrMissingMetadata is recorded for checkout sessions lacking user or plan metadata.
	ErrMissingMetadata = errors.New("checkout session metadata incomplete")
)
