// Package route contains the pure business logic for route ledgers.
// This is part of the Functional Core - no I/O, only pure functions.
package route

// ChangeRecord marks a capacity regime: from Timestamp onward, until the next
// record, the route carries Capacity seats.
type ChangeRecord struct {
	Timestamp int64
	Capacity  int64
}

// IsCancellation reports whether the record is the zero-capacity sentinel.
func (c ChangeRecord) IsCancellation() bool {
	return c.Capacity == 0
}

// Seed returns the record every ledger starts with.
func Seed(capacity int64) ChangeRecord {
	return ChangeRecord{Timestamp: 0, Capacity: capacity}
}

// Exposure computes the time-weighted seat total of a single ledger at atTime.
//
// The ledger is walked newest first. Each non-cancelled record contributes
// (cursor - Timestamp) * Capacity and moves the cursor back to its Timestamp.
// The walk stops at the first cancellation without counting it.
// Deltas are not clamped: querying before the newest record yields a negative term.
func Exposure(ledger []ChangeRecord, atTime int64) int64 {
	var sum int64
	cursor := atTime
	for i := len(ledger) - 1; i >= 0; i-- {
		rec := ledger[i]
		if rec.IsCancellation() {
			break
		}
		sum += (cursor - rec.Timestamp) * rec.Capacity
		cursor = rec.Timestamp
	}
	return sum
}
