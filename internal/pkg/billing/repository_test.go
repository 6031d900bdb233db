package billing

import (
	"context"
	"io"
	"log"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/itzsam-lol/com-app/app/models"
	"github.com/itzsam-lol/com-app/internal/pkg/entitlements"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:       sqlDB,
		DriverName: "postgres",
	}), &gorm.Config{
		Logger: logger.New(log.New(io.Discard, "", log.LstdFlags), logger.Config{LogLevel: logger.Silent}),
	})
	require.NoError(t, err)
	return db, mock
}

func testPlanChange() PlanChange {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := PeriodEnd(start, 1)
	pi := "pi_1"
	return PlanChange{
		UserID:        5,
		Plan:          entitlements.PlanPremium,
		PlanExpiry:    &end,
		LastPaymentID: &pi,
		Payment: &models.Payment{
			UserID:      5,
			Plan:        models.PLAN_PREMIUM,
			Amount:      299,
			Currency:    "inr",
			Status:      models.PAYMENT_STATUS_SUCCESS,
			Reference:   "pi_1",
			PeriodStart: start,
			PeriodEnd:   end,
		},
	}
}

func TestApplyPlanChangeCommitsPaymentAndPlan(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "payments"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
	mock.ExpectExec(`UPDATE "users" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	change := testPlanChange()
	applied, err := repo.ApplyPlanChange(context.Background(), change)
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, uint(11), change.Payment.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyPlanChangeSkipsKnownPaymentReference(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "payments" .* ON CONFLICT \("reference"\) DO NOTHING`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectCommit()

	applied, err := repo.ApplyPlanChange(context.Background(), testPlanChange())
	require.NoError(t, err)
	assert.False(t, applied)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyPlanChangeRollsBackOnUserUpdateFailure(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "payments"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(12))
	mock.ExpectExec(`UPDATE "users" SET`).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	applied, err := repo.ApplyPlanChange(context.Background(), testPlanChange())
	require.Error(t, err)
	assert.False(t, applied)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUserByIDMapsNotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE "users"."id" = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetUserByID(context.Background(), 77)
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
