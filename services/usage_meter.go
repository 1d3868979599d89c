package services

import (
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
)

// UsageMeter keeps process-lifetime request counters. Created once at startup,
// reset only by process restart. Counts are exact under concurrency: totals
// use atomic increments, per-endpoint records sit behind a mutex.
type UsageMeter struct {
	totalRequests atomic.Int64
	totalErrors   atomic.Int64

	mu        sync.Mutex
	endpoints map[endpointKey]*endpointRecord
}

type endpointKey struct {
	Method string
	Path   string
}

type endpointRecord struct {
	count       int64
	errorCount  int64
	totalTimeMs int64
}

// EndpointStats is the per-endpoint view computed on read.
type EndpointStats struct {
	Method       string  `json:"method"`
	Path         string  `json:"path"`
	Count        int64   `json:"count"`
	ErrorCount   int64   `json:"error_count"`
	AvgLatencyMs float64 `json:"avg_latency_ms"`
}

// StatsView is a consistent snapshot of the meter.
type StatsView struct {
	TotalRequests int64           `json:"total_requests"`
	TotalErrors   int64           `json:"total_errors"`
	ErrorRate     string          `json:"error_rate"`
	Endpoints     []EndpointStats `json:"endpoints"`
}

func NewUsageMeter() *UsageMeter {
	return &UsageMeter{
		endpoints: make(map[endpointKey]*endpointRecord),
	}
}

// RecordRequest counts a request before its handler executes.
func (m *UsageMeter) RecordRequest(method, path string) {
	m.totalRequests.Add(1)
	m.mu.Lock()
	m.record(method, path).count++
	m.mu.Unlock()
}

// RecordCompletion accrues latency for the endpoint and, for status >= 400,
// both error counters.
func (m *UsageMeter) RecordCompletion(method, path string, statusCode int, durationMs int64) {
	m.mu.Lock()
	rec := m.record(method, path)
	rec.totalTimeMs += durationMs
	if statusCode >= 400 {
		rec.errorCount++
		m.totalErrors.Add(1)
	}
	m.mu.Unlock()
}

// record returns the endpoint entry, creating it on first touch. A completion
// for an endpoint that was never started is a caller bug; the meter tolerates
// it rather than taking the process down.
func (m *UsageMeter) record(method, path string) *endpointRecord {
	key := endpointKey{Method: method, Path: path}
	rec, ok := m.endpoints[key]
	if !ok {
		rec = &endpointRecord{}
		m.endpoints[key] = rec
	}
	return rec
}

// Snapshot computes the stats view: error rate as a percentage with two
// decimals (zero requests means "0.00%", not NaN), per-endpoint average
// latency, endpoints sorted by request count descending.
func (m *UsageMeter) Snapshot() StatsView {
	total := m.totalRequests.Load()
	errs := m.totalErrors.Load()

	rate := 0.0
	if total > 0 {
		rate = float64(errs) / float64(total) * 100
	}

	m.mu.Lock()
	endpoints := make([]EndpointStats, 0, len(m.endpoints))
	for key, rec := range m.endpoints {
		avg := 0.0
		if rec.count > 0 {
			avg = float64(rec.totalTimeMs) / float64(rec.count)
		}
		endpoints = append(endpoints, EndpointStats{
			Method:       key.Method,
			Path:         key.Path,
			Count:        rec.count,
			ErrorCount:   rec.errorCount,
			AvgLatencyMs: avg,
		})
	}
	m.mu.Unlock()

	sort.Slice(endpoints, func(i, j int) bool {
		if endpoints[i].Count != endpoints[j].Count {
			return endpoints[i].Count > endpoints[j].Count
		}
		if endpoints[i].Path != endpoints[j].Path {
			return endpoints[i].Path < endpoints[j].Path
		}
		return endpoints[i].Method < endpoints[j].Method
	})

	return StatsView{
		TotalRequests: total,
		TotalErrors:   errs,
		ErrorRate:     fmt.Sprintf("%.2f%%", rate),
		Endpoints:     endpoints,
	}
}
