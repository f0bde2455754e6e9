package load

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAggregator_Empty(t *testing.T) {
	snap := NewAggregator().Snapshot()
	assert.Equal(t, Counts{}, snap)
	assert.Equal(t, int64(0), snap.Total())
}

func TestAggregator_RecordByCause(t *testing.T) {
	agg := NewAggregator()

	agg.Record(Succeeded(200))
	agg.Record(Failed(CauseStatus, 500, nil))
	agg.Record(Failed(CauseTimeout, 0, errors.New("deadline")))
	agg.Record(Failed(CauseTransport, 0, errors.New("refused")))
	agg.Record(Failed(CauseTransport, 0, errors.New("reset")))

	snap := agg.Snapshot()
	assert.Equal(t, int64(1), snap.Success)
	assert.Equal(t, int64(4), snap.Failure)
	assert.Equal(t, FailureBreakdown{Status: 1, Timeout: 1, Transport: 2}, snap.Failures)
	assert.Equal(t, int64(5), snap.Total())
}

func TestAggregator_ConcurrentRecord(t *testing.T) {
	const (
		workers   = 100
		perWorker = 100
	)

	agg := NewAggregator()
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				if (w+i)%2 == 0 {
					agg.Record(Succeeded(200))
				} else {
					agg.Record(Failed(CauseStatus, 500, nil))
				}
			}
		}(w)
	}
	wg.Wait()

	snap := agg.Snapshot()
	assert.Equal(t, int64(workers*perWorker/2), snap.Success)
	assert.Equal(t, int64(workers*perWorker/2), snap.Failure)
	assert.Equal(t, int64(workers*perWorker), snap.Total())
}
