package logger

// Config holds configuration for the logger.
type Config struct {
	// Level is the minimum level: debug, info, warn or error.
	Level string `mapstructure:"level" default:"info"`
	// Format is console, json, or auto (console on a terminal, json otherwise).
	Format string `mapstructure:"format" default:"auto"`
}
