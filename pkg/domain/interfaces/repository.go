package interfaces

// Repository defines the interface for the record store. The executor never
// assumes more than id-CRUD and filter-by-project with ordered reads: no
// joins, no transactions spanning multiple records.
type Repository interface {
	Project() ProjectRepository
	Takeoff() TakeoffRepository
	RFI() RFIRepository
	ActionLog() ActionLogRepository

	Close() error
}
