package slots

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"rowpost/internal/slots/tb"
	"rowpost/internal/spec"
)

// Build constructs a slot pool based on configuration. The job key
// names the shared ledger account when TigerBeetle mode is used.
func Build(cfg spec.SlotsConfig, jobKey string) (Slots, error) {
	mode := strings.ToLower(strings.TrimSpace(cfg.Mode))
	switch mode {
	case "", "disabled":
		return Noop, nil
	case "local":
		return NewLocal(cfg.Capacity)
	case "tigerbeetle":
		return buildTigerBeetle(cfg, jobKey)
	default:
		return nil, fmt.Errorf("unsupported slots mode %q", cfg.Mode)
	}
}

// buildTigerBeetle constructs the shared-ledger slot backend.
func buildTigerBeetle(cfg spec.SlotsConfig, jobKey string) (Slots, error) {
	if len(cfg.TigerBeetle.Addresses) == 0 {
		return nil, fmt.Errorf("slots tigerbeetle addresses are required")
	}
	if strings.TrimSpace(jobKey) == "" {
		return nil, fmt.Errorf("slots job key is required")
	}
	clusterID, err := strconv.ParseUint(strings.TrimSpace(cfg.TigerBeetle.ClusterID), 10, 32)
	if err != nil {
		return nil, fmt.Errorf("parse cluster_id: %w", err)
	}
	return tb.New(tb.Config{
		ClusterID:      uint32(clusterID),
		Addresses:      cfg.TigerBeetle.Addresses,
		Sessions:       cfg.TigerBeetle.Sessions,
		MaxBatchEvents: cfg.TigerBeetle.MaxBatchEvents,
		FlushInterval:  time.Duration(cfg.TigerBeetle.FlushIntervalMicros) * time.Microsecond,
		JobKey:         jobKey,
		Capacity:       uint64(cfg.Capacity),
		TimeoutSec:     cfg.TimeoutSec,
		RetryAfter:     time.Duration(cfg.RetryAfterMs) * time.Millisecond,
		NewLeaseID:     NewULID,
	})
}
