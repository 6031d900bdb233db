package billing

// Event is a verified webhook event. Only the kinds the service acts upon get
// their own variant; everything else arrives as UnhandledEvent.
type Event interface {
	EventID() string
	EventType() string
}

// CheckoutCompleted is a paid checkout session.
type CheckoutCompleted struct {
	ID              string
	SessionID       string
	PaymentIntentID string
	AmountTotal     int64
	Currency        string
	Metadata        map[string]string
}

func (e CheckoutCompleted) EventID() string   { return e.ID }
func (e CheckoutCompleted) EventType() string { return EventCheckoutSessionCompleted }

// PaymentReference is the idempotency key of the resulting payment.
func (e CheckoutCompleted) PaymentReference() string {
	if e.PaymentIntentID != "" {
		return e.PaymentIntentID
	}
	return "cs:" + e.SessionID
}

// UnhandledEvent is acknowledged without any state change.
type UnhandledEvent struct {
	ID   string
	Type string
}

func (e UnhandledEvent) EventID() string   { return e.ID }
func (e UnhandledEvent) EventType() string { return e.Type }
