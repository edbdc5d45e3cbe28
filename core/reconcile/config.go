package reconcile

// Config holds configuration for the reconciliation engine.
type Config struct {
	// Threads bounds the worker pool; 0 uses one worker per CPU.
	Threads int `mapstructure:"threads" default:"0"`
	// NoHash skips content hashing during load.
	NoHash bool `mapstructure:"no_hash" default:"false"`
}
