package domain

// EventKind classifies what a store observer is told about.
type EventKind string

const (
	EventInitialized   EventKind = "initialized"
	EventMutated       EventKind = "mutated"
	EventPersistFailed EventKind = "persist_failed"
	EventReadCorrupt   EventKind = "read_corrupt"
	// EventReadFailed means storage could not be read; the load is retried
	// on the next call and writes wait until it succeeds.
	EventReadFailed EventKind = "read_failed"
)

// Event is published by the store after initialization, every mutation and
// every non-fatal storage failure.
type Event struct {
	Kind    EventKind
	Outcome Outcome
	ItemID  string
	Count   int
	Total   float64
	Err     error
}
