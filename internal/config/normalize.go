package config

import "rowpost/internal/spec"

const (
	defaultContentType      = "application/json"
	defaultRequestTimeoutMs = 30000
	defaultFunction         = "http_post"
	defaultRetryAfterMs     = 250
	defaultSlotTimeoutSec   = 60
	defaultListenAddr       = ":8090"
)

func Normalize(cfg *spec.Config) {
	if cfg.Endpoint.ContentType == "" {
		cfg.Endpoint.ContentType = defaultContentType
	}
	if cfg.Endpoint.RequestTimeoutMs <= 0 {
		cfg.Endpoint.RequestTimeoutMs = defaultRequestTimeoutMs
	}
	if cfg.Run.Function == "" {
		cfg.Run.Function = defaultFunction
	}
	if cfg.Run.Workers <= 0 {
		cfg.Run.Workers = 1
	}
	if cfg.Slots.Mode == "" {
		cfg.Slots.Mode = "disabled"
	}
	if cfg.Slots.RetryAfterMs <= 0 {
		cfg.Slots.RetryAfterMs = defaultRetryAfterMs
	}
	if cfg.Slots.TimeoutSec <= 0 {
		cfg.Slots.TimeoutSec = defaultSlotTimeoutSec
	}
	if cfg.Slots.Mode == "tigerbeetle" {
		normalizeTigerBeetle(&cfg.Slots.TigerBeetle)
	}
	if cfg.Report.ListenAddr == "" {
		cfg.Report.ListenAddr = defaultListenAddr
	}
}

// normalizeTigerBeetle applies cluster defaults.
func normalizeTigerBeetle(tb *spec.TigerBeetleConfig) {
	if tb.ClusterID == "" {
		tb.ClusterID = "0"
	}
	if tb.Sessions <= 0 {
		tb.Sessions = 1
	}
	if tb.MaxBatchEvents <= 0 {
		tb.MaxBatchEvents = 8000
	}
	if tb.FlushIntervalMicros <= 0 {
		tb.FlushIntervalMicros = 200
	}
}
