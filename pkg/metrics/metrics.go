// Package metrics is a thin facade over an embedded time-series store.
// Gauges record point-in-time values, counters accumulate monotonically.
package metrics

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/nakabonne/tstorage"
)

// Metric names.
const (
	SystemCPUUsage    = "system_cpu_usage"
	SystemMemUsage    = "system_mem_usage"
	PairingTotal      = "pairing_total"
	SubscriptionTotal = "subscription_total"
	PushSent          = "push_sent"
	PushFailed        = "push_failed"
	PushPruned        = "push_pruned"
	HistoryAppended   = "history_appended"
	UploadBytes       = "upload_bytes"
)

var (
	mu       sync.Mutex
	storage  tstorage.Storage
	counters = map[string]int64{}
)

// InitMetrics opens the metrics store under workdir. Call once at startup.
func InitMetrics(workdir string) error {
	s, err := tstorage.NewStorage(
		tstorage.WithDataPath(filepath.Join(workdir, "metrics")),
		tstorage.WithTimestampPrecision(tstorage.Seconds),
		tstorage.WithPartitionDuration(time.Hour),
	)
	if err != nil {
		return err
	}
	mu.Lock()
	storage = s
	mu.Unlock()
	return nil
}

// SetGauge records the current value of a gauge metric.
func SetGauge(name string, value int64) {
	insert(name, float64(value))
}

// IncrCounter adds delta to a named counter and records the new total.
func IncrCounter(name string, delta int64) {
	mu.Lock()
	counters[name] += delta
	total := counters[name]
	mu.Unlock()
	insert(name, float64(total))
}

func insert(name string, value float64) {
	mu.Lock()
	s := storage
	mu.Unlock()
	if s == nil {
		return
	}
	_ = s.InsertRows([]tstorage.Row{
		{
			Metric:    name,
			DataPoint: tstorage.DataPoint{Timestamp: time.Now().Unix(), Value: value},
		},
	})
}

// Close flushes and closes the metrics store.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if storage == nil {
		return nil
	}
	err := storage.Close()
	storage = nil
	return err
}
