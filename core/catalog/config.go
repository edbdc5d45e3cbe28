package catalog

// Config holds configuration for the catalog document.
type Config struct {
	// Path is the catalog JSON file.
	Path string `mapstructure:"path" default:"books.json"`
	// Lock takes an advisory lock beside the catalog during mutating commands.
	Lock bool `mapstructure:"lock" default:"true"`
}
