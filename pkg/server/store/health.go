package store

// HealthStore reports on the server's ability to reach its backends.
type HealthStore interface {
	CheckConnectivity() error
}
