package models

import "time"

const (
	PAYMENT_STATUS_SUCCESS = "success"
)

// Payment is an append-only ledger entry for a plan period. Reference holds
// the processor payment reference and acts as the idempotency key.
type Payment struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index" json:"userId"`
	Plan        string    `gorm:"type:varchar(20);not null" json:"plan"`
	Amount      float64   `gorm:"type:decimal(12,2);not null;default:0" json:"amount"`
	Currency    string    `gorm:"type:varchar(10);not null" json:"currency"`
	Status      string    `gorm:"type:varchar(20);not null;default:'success'" json:"status"`
	Reference   string    `gorm:"type:varchar(191);not null;uniqueIndex:ux_payments_reference" json:"reference"`
	PeriodStart time.Time `gorm:"type:timestamp;not null" json:"periodStart"`
	PeriodEnd   time.Time `gorm:"type:timestamp;not null" json:"periodEnd"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index" json:"createdAt"`
}
