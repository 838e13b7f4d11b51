package app

import (
	"context"
	"log/slog"
	stdsync "sync"
	"time"
)

// Display is the headless kitchen display: it renders the current queue
// page to the log on a timer and immediately after any store change.
type Display struct {
	facade   *TerminalFacade
	interval time.Duration
	logger   *slog.Logger

	kick        chan struct{}
	unsubscribe func()
	cancel      context.CancelFunc
	wg          stdsync.WaitGroup
	mu          stdsync.Mutex
}

// NewDisplay constructs the display worker.
func NewDisplay(facade *TerminalFacade, interval time.Duration, logger *slog.Logger) *Display {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &Display{
		facade:   facade,
		interval: interval,
		logger:   logger,
		kick:     make(chan struct{}, 1),
	}
}

// Start begins rendering until Stop is called.
func (d *Display) Start(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	d.unsubscribe = d.facade.Subscribe(func() {
		select {
		case d.kick <- struct{}{}:
		default:
		}
	})

	d.wg.Add(1)
	go d.run(runCtx)
}

// Stop halts rendering and detaches from the store.
func (d *Display) Stop() {
	d.mu.Lock()
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	if d.unsubscribe != nil {
		d.unsubscribe()
		d.unsubscribe = nil
	}
	d.mu.Unlock()

	d.wg.Wait()
}

func (d *Display) run(ctx context.Context) {
	defer d.wg.Done()
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	d.render()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.render()
		case <-d.kick:
			d.render()
		}
	}
}

func (d *Display) render() {
	page := d.facade.KitchenQueue(time.Now())
	tally := d.facade.QueueTally()

	urgent := 0
	for _, entry := range page.Entries {
		if entry.Urgent {
			urgent++
		}
	}

	d.logger.Info("kitchen queue",
		slog.Int("page", page.Number),
		slog.Int("of", page.TotalPages),
		slog.Int("showing", len(page.Entries)),
		slog.Int("active", page.TotalItems),
		slog.Int("urgent", urgent),
		slog.Int("new", tally.New),
		slog.Int("cooking", tally.Cooking),
		slog.Int("served", tally.Served),
		slog.Bool("connected", d.facade.Connected()),
	)
}
