package repository

import (
	"sync"

	"gorm.io/gorm"
)

// Factory manages repository instances and ensures they are singletons
type Factory struct {
	db    *gorm.DB
	repos *Repositories
	once  sync.Once
}

// NewFactory creates a new repository factory
func NewFactory(db *gorm.DB) *Factory {
	return &Factory{
		db: db,
	}
}

// DB returns the underlying handle, for services that manage their own queries
func (f *Factory) DB() *gorm.DB {
	return f.db
}

// GetRepositories returns a singleton instance of all repositories
func (f *Factory) GetRepositories() *Repositories {
	f.once.Do(func() {
		f.repos = NewRepositories(f.db)
	})
	return f.repos
}

// GetUserRepository returns the user repository instance
func (f *Factory) GetUserRepository() UserRepository {
	return f.GetRepositories().User
}

// GetPaymentRepository returns the payment repository instance
func (f *Factory) GetPaymentRepository() PaymentRepository {
	return f.GetRepositories().Payment
}

// GetMedicalRepository returns the medical profile repository instance
func (f *Factory) GetMedicalRepository() MedicalRepository {
	return f.GetRepositories().Medical
}

// GetSOSRepository returns the SOS event repository instance
func (f *Factory) GetSOSRepository() SOSRepository {
	return f.GetRepositories().SOS
}

// GetLoyaltyRepository returns the loyalty repository instance
func (f *Factory) GetLoyaltyRepository() LoyaltyRepository {
	return f.GetRepositories().Loyalty
}
