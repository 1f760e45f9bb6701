package pg

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/romchhh/13vplus-site-sub001/internal/model"
)

type WorkerPool struct {
	ctx        context.Context
	cancel     context.CancelFunc
	numWorkers int

	pauseMu   sync.Mutex
	pauseCond *sync.Cond
	paused    bool
}

func NewWorkerPool() *WorkerPool {
	ctx, cancel := context.WithCancel(context.Background())

	wp := &WorkerPool{
		ctx:        ctx,
		cancel:     cancel,
		numWorkers: runtime.NumCPU(),
	}

	wp.pauseCond = sync.NewCond(&wp.pauseMu)

	return wp
}

// run раздает заказы воркерам и дожидается обработки всей пачки.
// Канал задач создается на каждую пачку заново.
func (wp *WorkerPool) run(orders []model.Order, work func(context.Context, model.Order)) {
	jobs := make(chan model.Order, wp.numWorkers)

	var wg sync.WaitGroup
	wg.Add(wp.numWorkers)
	for i := 0; i < wp.numWorkers; i++ {
		go func() {
			defer wg.Done()
			for order := range jobs {
				if wp.ctx.Err() != nil {
					return
				}
				wp.waitIfPaused()
				work(wp.ctx, order)
			}
		}()
	}

	for _, order := range orders {
		jobs <- order
	}
	close(jobs)

	wg.Wait()
}

func (wp *WorkerPool) waitIfPaused() {
	wp.pauseMu.Lock()
	for wp.paused {
		wp.pauseCond.Wait()
	}
	wp.pauseMu.Unlock()
}

func (wp *WorkerPool) shutdown() {
	wp.cancel()
	wp.resumePool()
}

// pausePoolWithTimer останавливает воркеры на время, заданное rate limit'ом шлюза.
func (wp *WorkerPool) pausePoolWithTimer(duration time.Duration) {
	wp.pauseMu.Lock()
	defer wp.pauseMu.Unlock()

	if wp.paused {
		return
	}

	wp.paused = true

	go func() {
		time.Sleep(duration)
		wp.resumePool()
	}()
}

func (wp *WorkerPool) resumePool() {
	wp.pauseMu.Lock()
	defer wp.pauseMu.Unlock()

	if !wp.paused {
		return
	}

	wp.paused = false

	// разблокируем все воркеры
	wp.pauseCond.Broadcast()
}
