package listview

import (
	"context"
	"sync"
)

// Outcome reports the result of one delete within a bulk operation.
type Outcome struct {
	ID  string
	Err error
}

// DeleteMany runs one delete per id concurrently and waits for all of them.
// There is no atomicity across ids; every id gets its own outcome, in input
// order. Precondition checks (admin guards) belong to the caller and must run
// before any delete is issued.
func DeleteMany(ctx context.Context, del func(ctx context.Context, id string) error, ids []string) []Outcome {
	outcomes := make([]Outcome, len(ids))

	var wg sync.WaitGroup
	for i, id := range ids {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			outcomes[i] = Outcome{ID: id, Err: del(ctx, id)}
		}(i, id)
	}
	wg.Wait()

	return outcomes
}

// FailedIDs returns the ids whose delete returned an error.
func FailedIDs(outcomes []Outcome) []string {
	var failed []string
	for _, o := range outcomes {
		if o.Err != nil {
			failed = append(failed, o.ID)
		}
	}
	return failed
}
