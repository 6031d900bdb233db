package controllers

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itzsam-lol/com-app/app/models"
	"github.com/itzsam-lol/com-app/internal/pkg/usercontext"
)

func newUserApp(caller usercontext.UserContext, users *fakeUsers) *fiber.App {
	uc := NewUserController(users, &fakePlanService{users: users})
	app := newTestApp(caller)
	app.Get("/user/me", uc.HandleGetMe)
	app.Put("/user/me", uc.HandleUpdateMe)
	app.Put("/user/me/plan", uc.HandleSetPlan)
	return app
}

func TestGetMeCreatesUserLazily(t *testing.T) {
	users := newFakeUsers()
	app := newUserApp(loggedIn(0, "uid-new"), users)

	resp, data := doJSON(t, app, "GET", "/user/me", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeMap(t, data)
	assert.Equal(t, "uid-new", body["firebaseUid"])
	assert.Equal(t, models.PLAN_STARTER, body["plan"])
	assert.Nil(t, body["planExpiry"])

	// second call returns the same account
	resp, data = doJSON(t, app, "GET", "/user/me", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, body["id"], decodeMap(t, data)["id"])
	assert.Len(t, users.byID, 1)
}

func TestGetMeRequiresAuth(t *testing.T) {
	app := newUserApp(usercontext.UserContext{}, newFakeUsers())

	resp, _ := doJSON(t, app, "GET", "/user/me", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestUpdateMe(t *testing.T) {
	users := newFakeUsers(&models.User{ID: 1, FirebaseUID: "uid-1", Plan: models.PLAN_STARTER})
	app := newUserApp(loggedIn(1, "uid-1"), users)

	resp, data := doJSON(t, app, "PUT", "/user/me", map[string]interface{}{
		"phone":            "+91 98765 43210",
		"age":              34,
		"emergencyContact": "Ravi +91 90000 00000",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeMap(t, data)
	assert.Equal(t, "+91 98765 43210", body["phone"])
	assert.Equal(t, float64(34), body["age"])

	resp, _ = doJSON(t, app, "PUT", "/user/me", map[string]interface{}{"age": 400})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestSetPlanStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		current    string
		userID     uint
		requested  string
		wantStatus int
		wantPlan   string
	}{
		{name: "upgrade", current: models.PLAN_STARTER, userID: 1, requested: "premium", wantStatus: fiber.StatusOK, wantPlan: models.PLAN_PREMIUM},
		{name: "lateral", current: models.PLAN_PREMIUM, userID: 1, requested: "ENTERPRISE", wantStatus: fiber.StatusOK, wantPlan: models.PLAN_ENTERPRISE},
		{name: "same plan", current: models.PLAN_PREMIUM, userID: 1, requested: "PREMIUM", wantStatus: fiber.StatusOK, wantPlan: models.PLAN_PREMIUM},
		{name: "downgrade", current: models.PLAN_ENTERPRISE, userID: 1, requested: "STARTER", wantStatus: fiber.StatusForbidden, wantPlan: models.PLAN_ENTERPRISE},
		{name: "invalid plan", current: models.PLAN_STARTER, userID: 1, requested: "GOLD", wantStatus: fiber.StatusBadRequest, wantPlan: models.PLAN_STARTER},
		{name: "unknown user", current: models.PLAN_STARTER, userID: 0, requested: "PREMIUM", wantStatus: fiber.StatusNotFound, wantPlan: models.PLAN_STARTER},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := newFakeUsers(&models.User{ID: 1, FirebaseUID: "uid-1", Plan: tt.current})
			app := newUserApp(loggedIn(tt.userID, "uid-1"), users)

			resp, data := doJSON(t, app, "PUT", "/user/me/plan", map[string]string{"plan": tt.requested})
			assert.Equal(t, tt.wantStatus, resp.StatusCode, string(data))
			assert.Equal(t, tt.wantPlan, users.byID[1].Plan)
			if tt.wantStatus == fiber.StatusOK {
				assert.Equal(t, tt.wantPlan, decodeMap(t, data)["plan"])
			}
		})
	}
}
