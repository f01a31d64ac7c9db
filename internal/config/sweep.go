package config

import "time"

// SweepConfig holds configuration for the expiry sweeper
type SweepConfig struct {
	Interval     time.Duration
	RescoreAfter time.Duration
	BatchConfig  BatchConfig
}

// BatchConfig holds batch processing configuration
type BatchConfig struct {
	Size       int
	Workers    int
	MaxRetries int
	BatchDelay time.Duration
}

// DefaultSweepConfig returns the default sweep configuration
func DefaultSweepConfig() *SweepConfig {
	return &SweepConfig{
		Interval:     time.Minute * 15,
		RescoreAfter: time.Hour * 24 * 7,
		BatchConfig: BatchConfig{
			Size:       20,
			Workers:    3,
			MaxRetries: 2,
			BatchDelay: time.Second,
		},
	}
}
