package skeleton

import (
	"errors"
	"sync"

	"github.com/Carmen-Shannon/automation/tools/worker"
)

// NormalizeAll runs NormalizeAndUpload for every store on the worker pool and blocks until all
// of them finish. Each store must be bound to a distinct mesh. With a nil pool the stores are
// processed inline.
//
// Parameters:
//   - pool: the worker pool to run on, or nil
//   - stores: the stores to finalize
//
// Returns:
//   - error: the joined errors of all failing stores, or nil
func NormalizeAll(pool worker.DynamicWorkerPool, stores ...VertexBoneData) error {
	errs := make([]error, len(stores))

	if pool == nil {
		for i, s := range stores {
			errs[i] = s.NormalizeAndUpload()
		}
		return errors.Join(errs...)
	}

	var wg sync.WaitGroup
	for i, s := range stores {
		wg.Add(1)
		idx, store := i, s
		pool.SubmitTask(worker.Task{
			ID: idx,
			Do: func() (any, error) {
				defer wg.Done()
				errs[idx] = store.NormalizeAndUpload()
				return nil, errs[idx]
			},
		})
	}
	wg.Wait()

	return errors.Join(errs...)
}
