package storage

// SeenStore records which URLs an audit run has already scheduled.
type SeenStore interface {
	// MarkSeen records url. Returns true if the URL was newly added,
	// false if it was already present.
	MarkSeen(url string) (bool, error)

	// IsSeen reports whether url has been recorded.
	IsSeen(url string) (bool, error)

	// SeenCount returns the number of recorded URLs.
	SeenCount() (int, error)

	// Close releases the underlying database.
	Close() error
}
