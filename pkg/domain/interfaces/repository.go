package interfaces

// Repository defines the interface for data persistence
type Repository interface {
	Profile() ProfileRepository
	Investment() InvestmentRepository

	Close() error
}
