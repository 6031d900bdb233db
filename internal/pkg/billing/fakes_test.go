package billing

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/itzsam-lol/com-app/app/models"
)

type fakeRepository struct {
	mu          sync.Mutex
	users       map[uint]*models.User
	payments    []models.Payment
	events      map[string]*models.BillingWebhookEvent
	nextEventID uint
	applyErr    error
}

func newFakeRepository(users ...*models.User) *fakeRepository {
	r := &fakeRepository{
		users:  make(map[uint]*models.User),
		events: make(map[string]*models.BillingWebhookEvent),
	}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeRepository) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeRepository) UpdateUserPlan(ctx context.Context, userID uint, plan string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return ErrUserNotFound
	}
	u.Plan = plan
	return nil
}

func (r *fakeRepository) ApplyPlanChange(ctx context.Context, change PlanChange) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.applyErr != nil {
		err := r.applyErr
		r.applyErr = nil
		return false, err
	}
	u, ok := r.users[change.UserID]
	if !ok {
		return false, ErrUserNotFound
	}
	if change.Payment != nil {
		for _, p := range r.payments {
			if p.Reference == change.Payment.Reference {
				return false, nil
			}
		}
		change.Payment.ID = uint(len(r.payments) + 1)
		change.Payment.CreatedAt = time.Now()
		r.payments = append(r.payments, *change.Payment)
	}
	u.Plan = string(change.Plan)
	if change.PlanExpiry != nil {
		t := *change.PlanExpiry
		u.PlanExpiry = &t
	}
	if change.LastPaymentID != nil {
		id := *change.LastPaymentID
		u.LastPaymentID = &id
	}
	return true, nil
}

func (r *fakeRepository) CreateWebhookEventIfNotExists(ctx context.Context, event *models.BillingWebhookEvent) (bool, *models.BillingWebhookEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := event.Provider + "|" + event.ProviderEventID
	if stored, ok := r.events[key]; ok {
		cp := *stored
		return false, &cp, nil
	}
	r.nextEventID++
	event.ID = r.nextEventID
	cp := *event
	r.events[key] = &cp
	return true, event, nil
}

func (r *fakeRepository) MarkWebhookProcessed(ctx context.Context, id uint, processingError string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.events {
		if e.ID == id {
			now := time.Now()
			e.ProcessedAt = &now
			e.ProcessingError = processingError
			return nil
		}
	}
	return errors.New("webhook event not found")
}

func (r *fakeRepository) user(id uint) models.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	return *r.users[id]
}

func (r *fakeRepository) paymentCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.payments)
}

type fakeProcessor struct {
	calls  []SessionParams
	err    error
	result *CheckoutSession
}

func (p *fakeProcessor) CreateCheckoutSession(ctx context.Context, params SessionParams) (*CheckoutSession, error) {
	p.calls = append(p.calls, params)
	if p.err != nil {
		return nil, p.err
	}
	if p.result != nil {
		return p.result, nil
	}
	return &CheckoutSession{ID: "cs_test_123", URL: "https://checkout.stripe.com/c/pay/cs_test_123"}, nil
}
