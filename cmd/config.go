package main

import "time"

type Config struct {
	BufferSize           int           `env:"BUFFER_SIZE,default=64"`
	SinkTimeout          time.Duration `env:"SINK_TIMEOUT,default=2s"`
	RestartInterval      time.Duration `env:"RESTART_INTERVAL,default=200ms"`
	MetricInterval       time.Duration `env:"METRIC_INTERVAL,default=5s"`
	LatencyThreshold     time.Duration `env:"LATENCY_THRESHOLD,default=500ms"`
	LowCapacityThreshold int           `env:"LOW_CAPACITY_THRESHOLD,default=8"`
	LogLevel             string        `env:"LOG_LEVEL,default=INFO"`
}
