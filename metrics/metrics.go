package metrics

import "context"

// RecordCounter reports how many records a collection currently holds.
// Both repository backends implement it.
type RecordCounter interface {
	Count(ctx context.Context) (int64, error)
}
