// control/config.go
// Author: momentics <momentics@gmail.com>
//
// Sorter configuration with yaml loading and validation.

package control

import (
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/momentics/parsort/api"
	"github.com/momentics/parsort/internal/concurrency"
	"github.com/momentics/parsort/partition"
)

// AutoWorkers sizes the pool to the available parallelism minus the caller.
const AutoWorkers = -1

// Work container names.
const (
	ContainerLockFree = "lockfree"
	ContainerMutex    = "mutex"
	ContainerFIFO     = "fifo"
)

// Config holds parameters for one Sorter. All fields are read once per
// sort call.
type Config struct {
	Workers    int                       `yaml:"workers"`     // Pool size; AutoWorkers, 0 or a positive count
	Grain      int                       `yaml:"grain"`       // Ranges shorter than this are sorted inline
	Pivot      string                    `yaml:"pivot"`       // Pivot selector name, see partition.PivotByName
	Container  string                    `yaml:"container"`   // Shared work container implementation
	PinWorkers bool                      `yaml:"pin_workers"` // Pin each worker to one CPU
	Backoff    concurrency.BackoffConfig `yaml:"backoff"`     // Idle strategy of workers and waiters
}

// DefaultConfig returns default configuration values.
func DefaultConfig() *Config {
	return &Config{
		Workers:    AutoWorkers,
		Grain:      256,
		Pivot:      partition.PivotNameMedianOfThree,
		Container:  ContainerLockFree,
		PinWorkers: false,
		Backoff:    concurrency.DefaultBackoffConfig(),
	}
}

// LoadConfig reads a yaml file over the defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig decodes a yaml document over the defaults and validates it.
func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, api.NewError(api.ErrCodeInvalidConfig, "decode config").Wrap(err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every field.
func (c *Config) Validate() error {
	if c.Workers < AutoWorkers {
		return api.NewError(api.ErrCodeInvalidConfig, "workers").
			Wrap(api.ErrInvalidWorkerCount).
			WithContext("workers", c.Workers)
	}
	if c.Grain < 0 {
		return api.NewError(api.ErrCodeInvalidConfig, "grain must not be negative").
			Wrap(api.ErrInvalidArgument).
			WithContext("grain", c.Grain)
	}
	if _, err := partition.PivotByName(c.Pivot); err != nil {
		return api.NewError(api.ErrCodeInvalidConfig, "pivot").Wrap(err)
	}
	switch c.Container {
	case ContainerLockFree, ContainerMutex, ContainerFIFO:
	default:
		return api.NewError(api.ErrCodeInvalidConfig, "container").
			Wrap(api.ErrUnknownContainer).
			WithContext("container", c.Container)
	}
	if c.Backoff.Spins < 0 || c.Backoff.MaxSleep < 0 {
		return api.NewError(api.ErrCodeInvalidConfig, "backoff must not be negative").
			Wrap(api.ErrInvalidArgument)
	}
	return nil
}

// ResolveWorkers returns the pool size for this config.
func (c *Config) ResolveWorkers() int {
	if c.Workers == AutoWorkers {
		return max(runtime.GOMAXPROCS(0)-1, 0)
	}
	return c.Workers
}

// Clone returns an independent copy.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}
