package spec

// Config is the root of a rowpost YAML configuration.
type Config struct {
	Version  int            `yaml:"version"`
	Endpoint EndpointConfig `yaml:"endpoint"`
	Run      RunConfig      `yaml:"run"`
	Slots    SlotsConfig    `yaml:"slots"`
	Store    StoreConfig    `yaml:"store"`
	Report   ReportConfig   `yaml:"report"`
}

// EndpointConfig describes the target HTTP endpoint.
type EndpointConfig struct {
	URL              string `yaml:"url"`
	ContentType      string `yaml:"content_type"`
	RequestTimeoutMs int    `yaml:"request_timeout_ms"`
}

// RunConfig describes how rows are read and fanned out.
type RunConfig struct {
	Function string `yaml:"function"`
	Input    string `yaml:"input"`
	Workers  int    `yaml:"workers"`
}

// SlotsConfig bounds the number of simultaneous outstanding requests.
type SlotsConfig struct {
	Mode         string            `yaml:"mode"`
	Capacity     int               `yaml:"capacity"`
	RetryAfterMs int               `yaml:"retry_after_ms"`
	TimeoutSec   int               `yaml:"timeout_seconds"`
	TigerBeetle  TigerBeetleConfig `yaml:"tigerbeetle"`
}

// TigerBeetleConfig describes the shared slot ledger cluster.
type TigerBeetleConfig struct {
	ClusterID           string   `yaml:"cluster_id"`
	Addresses           []string `yaml:"addresses"`
	Sessions            int      `yaml:"sessions"`
	MaxBatchEvents      int      `yaml:"max_batch_events"`
	FlushIntervalMicros int      `yaml:"flush_interval_micros"`
}

// StoreConfig points at the DuckDB results database.
type StoreConfig struct {
	Path string `yaml:"path"`
}

// ReportConfig configures the report server.
type ReportConfig struct {
	ListenAddr string `yaml:"listen_addr"`
}
