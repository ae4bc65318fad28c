// Command rowpost-loadtest drives synthetic rows through the bridge against a live endpoint.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"rowpost/internal/slots"
	"rowpost/pkg/rowbridge"
	"rowpost/pkg/rowbridge/httpclient"
)

// config captures command-line configuration for the load test.
type config struct {
	Endpoint       string
	ContentType    string
	Duration       time.Duration
	Concurrency    int
	SlotCapacity   int
	PayloadBytes   int
	RequestTimeout time.Duration
}

// loadtestStats aggregates outcome counters and latency samples.
type loadtestStats struct {
	successCount   uint64
	failureCount   uint64
	timedOutCount  uint64
	cancelledCount uint64
	slotErrors     uint64

	mu        sync.Mutex
	latencies []int64
}

func main() {
	cfg := parseConfig()
	if err := cfg.validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	client := httpclient.New()
	defer client.Close()
	bridge, err := rowbridge.New(client, rowbridge.Options{
		Endpoint:    cfg.Endpoint,
		ContentType: cfg.ContentType,
		Timeout:     cfg.RequestTimeout,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	pool := slots.Noop
	if cfg.SlotCapacity > 0 {
		pool, err = slots.NewLocal(cfg.SlotCapacity)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	defer pool.Close()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Duration)
	defer cancel()

	stats := runLoad(ctx, bridge, pool, cfg)
	printSummary(cfg, stats)
}

// parseConfig reads flags and builds a config.
func parseConfig() config {
	var cfg config
	flag.StringVar(&cfg.Endpoint, "endpoint", "http://localhost:8080/ingest", "target URL to POST rows to")
	flag.StringVar(&cfg.ContentType, "content-type", "application/json", "request content type")
	flag.DurationVar(&cfg.Duration, "duration", 30*time.Second, "test duration")
	flag.IntVar(&cfg.Concurrency, "concurrency", 50, "concurrent workers")
	flag.IntVar(&cfg.SlotCapacity, "slots", 0, "local slot capacity (0 disables slot gating)")
	flag.IntVar(&cfg.PayloadBytes, "payload-bytes", 256, "approximate payload size")
	flag.DurationVar(&cfg.RequestTimeout, "request-timeout", 5*time.Second, "per-request timeout")
	flag.Parse()
	return cfg
}

// validate ensures the configuration is usable.
func (c config) validate() error {
	if c.Endpoint == "" {
		return fmt.Errorf("endpoint is required")
	}
	if c.Duration <= 0 {
		return fmt.Errorf("duration must be positive")
	}
	if c.Concurrency <= 0 {
		return fmt.Errorf("concurrency must be positive")
	}
	if c.SlotCapacity < 0 {
		return fmt.Errorf("slots must not be negative")
	}
	if c.PayloadBytes <= 0 {
		return fmt.Errorf("payload-bytes must be positive")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request-timeout must be positive")
	}
	return nil
}

// runLoad executes the concurrent load until the context expires.
func runLoad(ctx context.Context, bridge *rowbridge.Bridge, pool slots.Slots, cfg config) *loadtestStats {
	stats := &loadtestStats{
		latencies: make([]int64, 0, cfg.Concurrency*16),
	}
	var sequence uint64
	var wg sync.WaitGroup
	for i := 0; i < cfg.Concurrency; i++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			for {
				select {
				case <-ctx.Done():
					return
				default:
				}

				release, err := pool.Reserve(ctx)
				if err != nil {
					if ctx.Err() != nil {
						return
					}
					atomic.AddUint64(&stats.slotErrors, 1)
					continue
				}

				payload := syntheticPayload(rng, atomic.AddUint64(&sequence, 1), cfg.PayloadBytes)
				start := time.Now()
				result := bridge.Invoke(ctx, payload)
				stats.recordLatency(time.Since(start))
				_ = release(context.WithoutCancel(ctx))

				switch result.Kind {
				case rowbridge.OutcomeSuccess:
					atomic.AddUint64(&stats.successCount, 1)
				case rowbridge.OutcomeFailure:
					atomic.AddUint64(&stats.failureCount, 1)
				case rowbridge.OutcomeTimedOut:
					atomic.AddUint64(&stats.timedOutCount, 1)
				case rowbridge.OutcomeCancelled:
					atomic.AddUint64(&stats.cancelledCount, 1)
				}
			}
		}(int64(i + 1))
	}
	wg.Wait()
	return stats
}

// syntheticPayload builds a JSON row with filler data of roughly the requested size.
func syntheticPayload(rng *rand.Rand, seq uint64, size int) []byte {
	const letters = "abcdefghijklmnopqrstuvwxyz0123456789"
	filler := make([]byte, size)
	for i := range filler {
		filler[i] = letters[rng.Intn(len(letters))]
	}
	return []byte(fmt.Sprintf(`{"seq": %d, "data": %q}`, seq, filler))
}

// printSummary renders load test metrics to stdout.
func printSummary(cfg config, stats *loadtestStats) {
	elapsed := cfg.Duration.Seconds()
	success := atomic.LoadUint64(&stats.successCount)
	failure := atomic.LoadUint64(&stats.failureCount)
	timedOut := atomic.LoadUint64(&stats.timedOutCount)
	cancelled := atomic.LoadUint64(&stats.cancelledCount)
	slotErrors := atomic.LoadUint64(&stats.slotErrors)
	total := success + failure + timedOut + cancelled

	fmt.Println("rowpost load test summary")
	fmt.Printf("endpoint: %s duration: %s concurrency: %d slots: %d\n", cfg.Endpoint, cfg.Duration, cfg.Concurrency, cfg.SlotCapacity)
	fmt.Printf("rows/sec: %.2f total: %d\n", float64(total)/elapsed, total)
	fmt.Printf("success: %d failure: %d timed_out: %d cancelled: %d slot errors: %d\n",
		success, failure, timedOut, cancelled, slotErrors)
	fmt.Printf("latency p50=%s p95=%s p99=%s\n",
		percentileDuration(stats.latencies, 0.50),
		percentileDuration(stats.latencies, 0.95),
		percentileDuration(stats.latencies, 0.99),
	)
}

// recordLatency appends a request latency sample.
func (s *loadtestStats) recordLatency(d time.Duration) {
	s.mu.Lock()
	s.latencies = append(s.latencies, d.Nanoseconds())
	s.mu.Unlock()
}

// percentileDuration computes a duration percentile for samples in nanoseconds.
func percentileDuration(samples []int64, p float64) time.Duration {
	if len(samples) == 0 {
		return 0
	}
	copySamples := append([]int64(nil), samples...)
	sort.Slice(copySamples, func(i, j int) bool { return copySamples[i] < copySamples[j] })
	if p <= 0 {
		return time.Duration(copySamples[0])
	}
	if p >= 1 {
		return time.Duration(copySamples[len(copySamples)-1])
	}
	pos := int(float64(len(copySamples)-1) * p)
	return time.Duration(copySamples[pos])
}
