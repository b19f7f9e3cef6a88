package worker

import (
	"context"
	"log"
	"time"

	"sevadesk/models"
	"sevadesk/service"
)

// ForecastWorker periodically regenerates the demand forecast so the
// compliance trail carries fresh snapshots. Disabled by default; each run is
// independent and the fallback path keeps runs from blocking on the model.
type ForecastWorker struct {
	requests *service.RequestService
	forecast *service.ForecastService
	interval time.Duration
	stopChan chan struct{}
	running  bool
}

// NewForecastWorker creates a new forecast worker
func NewForecastWorker(
	requests *service.RequestService,
	forecast *service.ForecastService,
	interval time.Duration,
) *ForecastWorker {
	return &ForecastWorker{
		requests: requests,
		forecast: forecast,
		interval: interval,
		stopChan: make(chan struct{}),
	}
}

// Start starts the worker in a separate goroutine.
func (w *ForecastWorker) Start() {
	if w.running {
		log.Println("Forecast worker is already running")
		return
	}

	w.running = true
	log.Printf("Forecast worker started (interval: %v)", w.interval)

	go w.run()
}

// Stop stops the worker.
func (w *ForecastWorker) Stop() {
	if !w.running {
		return
	}

	log.Println("Stopping forecast worker...")
	close(w.stopChan)
	w.running = false
	log.Println("Forecast worker stopped")
}

func (w *ForecastWorker) run() {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	// Snapshot immediately on start
	w.snapshot()

	for {
		select {
		case <-ticker.C:
			w.snapshot()
		case <-w.stopChan:
			return
		}
	}
}

// snapshot regenerates one forecast. Safe to call repeatedly: every run is
// a fresh backlog read plus an independent model call or fallback.
func (w *ForecastWorker) snapshot() {
	startTime := time.Now()

	backlog, err := w.requests.Backlog()
	if err != nil {
		log.Printf("[worker] backlog read failed, skipping snapshot: %v", err)
		return
	}

	forecast := w.forecast.Forecast(context.Background(), backlog, models.RoleSystem, "internal")
	log.Printf("[worker] forecast snapshot for %s completed in %v (%d requests)",
		forecast.ForecastDate, time.Since(startTime), len(backlog))
}
