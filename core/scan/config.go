package scan

// Config holds configuration for discovery walks.
type Config struct {
	// FollowSymlinks descends into symlinked directories.
	FollowSymlinks bool `mapstructure:"follow_symlinks" default:"false"`
	// Exclude is a comma-separated list of doublestar patterns in the environment.
	Exclude []string `mapstructure:"exclude" default:""`
}
