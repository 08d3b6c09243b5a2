package database

import (
	"context"
	"sort"
	"sync"
	"time"
)

// Pinger is implemented by every backing store client.
type Pinger interface {
	Ping(ctx context.Context) error
}

// CheckResult is the outcome of pinging one dependency.
type CheckResult struct {
	Name    string `json:"name"`
	Healthy bool   `json:"healthy"`
	Error   string `json:"error,omitempty"`
}

// CheckAll pings every dependency concurrently, each bounded by timeout.
// Results are sorted by name.
func CheckAll(ctx context.Context, deps map[string]Pinger, timeout time.Duration) []CheckResult {
	results := make([]CheckResult, 0, len(deps))
	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	for name, dep := range deps {
		wg.Add(1)
		go func() {
			defer wg.Done()
			pingCtx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			r := CheckResult{Name: name, Healthy: true}
			if err := dep.Ping(pingCtx); err != nil {
				r.Healthy = false
				r.Error = err.Error()
			}
			mu.Lock()
			results = append(results, r)
			mu.Unlock()
		}()
	}
	wg.Wait()

	sort.Slice(results, func(i, j int) bool { return results[i].Name < results[j].Name })
	return results
}

// AllHealthy reports whether every result is healthy.
func AllHealthy(results []CheckResult) bool {
	for _, r := range results {
		if !r.Healthy {
			return false
		}
	}
	return true
}
