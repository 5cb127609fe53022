package test

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// STAGE_TEST_COMMAND_BUFFER sizes the async command channel
	CommandBuffer int `envconfig:"STAGE_TEST_COMMAND_BUFFER" default:"64"`
	// STAGE_TEST_SINK_TIMEOUT bounds each receive callback
	SinkTimeout     time.Duration `envconfig:"STAGE_TEST_SINK_TIMEOUT" default:"1s"`
	MetricInterval  time.Duration `envconfig:"STAGE_TEST_METRIC_INTERVAL" default:"500ms"`
	RestartInterval time.Duration `envconfig:"STAGE_TEST_RESTART_INTERVAL" default:"100ms"`
	ScenarioTimeout time.Duration `envconfig:"STAGE_TEST_SCENARIO_TIMEOUT" default:"2s"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
