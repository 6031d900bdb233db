package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/itzsam-lol/com-app/app/models"
	"github.com/itzsam-lol/com-app/app/repository"
	"github.com/itzsam-lol/com-app/internal/pkg/billing"
	"github.com/itzsam-lol/com-app/internal/pkg/usercontext"
)

type fakeUsers struct {
	mu     sync.Mutex
	byID   map[uint]*models.User
	nextID uint
}

func newFakeUsers(users ...*models.User) *fakeUsers {
	f := &fakeUsers{byID: map[uint]*models.User{}, nextID: 100}
	for _, u := range users {
		f.byID[u.ID] = u
	}
	return f
}

func (f *fakeUsers) Create(user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	user.ID = f.nextID
	f.byID[user.ID] = user
	return nil
}

func (f *fakeUsers) GetByID(id uint) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.byID[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUsers) GetByFirebaseUID(uid string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byID {
		if u.FirebaseUID == uid {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUsers) GetOrCreateByFirebaseUID(uid, email, name string) (*models.User, bool, error) {
	if u, err := f.GetByFirebaseUID(uid); err == nil {
		return u, false, nil
	}
	u, err := models.NewUser(uid, email, name)
	if err != nil {
		return nil, false, err
	}
	if err := f.Create(u); err != nil {
		return nil, false, err
	}
	return u, true, nil
}

func (f *fakeUsers) UpdateProfile(id uint, p repository.ProfileUpdate) (*models.User, error) {
	f.mu.Lock()
	u, ok := f.byID[id]
	if !ok {
		f.mu.Unlock()
		return nil, gorm.ErrRecordNotFound
	}
	if p.DisplayName != nil {
		u.DisplayName = *p.DisplayName
	}
	if p.Phone != nil {
		u.Phone = *p.Phone
	}
	if p.Age != nil {
		age := *p.Age
		u.Age = &age
	}
	if p.Gender != nil {
		u.Gender = *p.Gender
	}
	if p.Address != nil {
		u.Address = *p.Address
	}
	if p.EmergencyContact != nil {
		u.EmergencyContact = *p.EmergencyContact
	}
	f.mu.Unlock()
	return f.GetByID(id)
}

type fakePayments struct {
	payments []models.Payment
}

func (f *fakePayments) ListByUserID(userID uint) ([]models.Payment, error) {
	var out []models.Payment
	for _, p := range f.payments {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePayments) HistoryByUserID(userID uint) ([]models.Payment, error) {
	out, _ := f.ListByUserID(userID)
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

type fakePlanService struct {
	users *fakeUsers
}

func (f *fakePlanService) SetPlan(ctx context.Context, userID uint, requested string) (*models.User, error) {
	return billing.NewService(&billingRepoAdapter{users: f.users}).SetPlan(ctx, userID, requested)
}

func (f *fakePlanService) ActivateStarter(ctx context.Context, userID uint) (*models.Payment, error) {
	return billing.NewService(&billingRepoAdapter{users: f.users}).ActivateStarter(ctx, userID)
}

// billingRepoAdapter runs the real billing service over the fake user store.
type billingRepoAdapter struct {
	users *fakeUsers
}

func (a *billingRepoAdapter) GetUserByID(_ context.Context, id uint) (*models.User, error) {
	u, err := a.users.GetByID(id)
	if err != nil {
		return nil, billing.ErrUserNotFound
	}
	return u, nil
}

func (a *billingRepoAdapter) UpdateUserPlan(_ context.Context, userID uint, plan string) error {
	a.users.mu.Lock()
	defer a.users.mu.Unlock()
	u, ok := a.users.byID[userID]
	if !ok {
		return billing.ErrUserNotFound
	}
	u.Plan = plan
	return nil
}

func (a *billingRepoAdapter) ApplyPlanChange(_ context.Context, change billing.PlanChange) (bool, error) {
	a.users.mu.Lock()
	defer a.users.mu.Unlock()
	u, ok := a.users.byID[change.UserID]
	if !ok {
		return false, billing.ErrUserNotFound
	}
	u.Plan = string(change.Plan)
	if change.PlanExpiry != nil {
		expiry := *change.PlanExpiry
		u.PlanExpiry = &expiry
	}
	if change.LastPaymentID != nil {
		ref := *change.LastPaymentID
		u.LastPaymentID = &ref
	}
	return true, nil
}

func (a *billingRepoAdapter) CreateWebhookEventIfNotExists(context.Context, *models.BillingWebhookEvent) (bool, *models.BillingWebhookEvent, error) {
	return true, &models.BillingWebhookEvent{ID: 1}, nil
}

func (a *billingRepoAdapter) MarkWebhookProcessed(context.Context, uint, string) error {
	return nil
}

type fakeCheckout struct {
	last billing.CheckoutRequest
	err  error
}

func (f *fakeCheckout) CreateSession(_ context.Context, req billing.CheckoutRequest) (*billing.CheckoutSession, error) {
	f.last = req
	if f.err != nil {
		return nil, f.err
	}
	return &billing.CheckoutSession{ID: "cs_test_1", URL: "https://checkout.stripe.test/cs_test_1"}, nil
}

type fakePlanCache struct {
	plans map[string]string
}

func (f *fakePlanCache) Get(_ context.Context, uid string) (string, bool) {
	p, ok := f.plans[uid]
	return p, ok
}

func (f *fakePlanCache) Set(_ context.Context, uid, plan string) error {
	f.plans[uid] = plan
	return nil
}

type fakeWebhooks struct {
	result *billing.WebhookResult
	err    error
	body   []byte
	sig    string
	ctx    context.Context
}

func (f *fakeWebhooks) HandleWebhook(ctx context.Context, payload []byte, signature string) (*billing.WebhookResult, error) {
	f.ctx = ctx
	f.body = payload
	f.sig = signature
	return f.result, f.err
}

// newTestApp returns a fiber app whose requests run as the given caller.
func newTestApp(caller usercontext.UserContext) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if caller.IsLoggedIn {
			usercontext.SetUserContext(c, caller)
		}
		return c.Next()
	})
	return app
}

func loggedIn(userID uint, uid string) usercontext.UserContext {
	return usercontext.UserContext{UserID: userID, UID: uid, Email: uid + "@example.com", Name: "Test " + uid, IsLoggedIn: true}
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	return resp, data
}

func decodeMap(t *testing.T, data []byte) map[string]interface{} {
	t.Helper()
	out := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}
