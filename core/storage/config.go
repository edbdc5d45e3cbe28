package storage

// Config holds configuration for the object storage used by backup and remote merge.
type Config struct {
	// Endpoint is the URL of the storage service.
	Endpoint string `mapstructure:"endpoint" default:"localhost:9000"`
	// AccessKey is the access key ID for authentication.
	AccessKey string `mapstructure:"access_key" default:"minioadmin"`
	// SecretKey is the secret access key for authentication.
	SecretKey string `mapstructure:"secret_key" default:"minioadmin"`
	// UseSSL indicates whether to use SSL/TLS for connections.
	UseSSL bool `mapstructure:"use_ssl" default:"false"`
	// Bucket receives catalog backups.
	Bucket string `mapstructure:"bucket" default:"ebooks"`
	// Prefix is the object key prefix for backups.
	Prefix string `mapstructure:"prefix" default:"catalog"`
	// Retain is how many backups to keep; 0 keeps all.
	Retain int `mapstructure:"retain" default:"10"`
	// Region is the location of the bucket (e.g., us-east-1).
	Region string `mapstructure:"region" default:""`
	// TimeoutSeconds is the connection timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
