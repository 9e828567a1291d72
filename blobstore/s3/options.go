package s3

import "github.com/aws/aws-sdk-go-v2/aws"

// UploadConfig configures the S3 uploader.
type UploadConfig struct {
	// PartSize is the minimum part size for multipart uploads. Blobs up to
	// PartSize bytes are sent with a single PutObject call.
	// Default: 8MB
	PartSize int64

	// Concurrency is the number of concurrent part uploads.
	// Default: 5 (matches SDK default)
	Concurrency int

	// EnableChecksum enables CRC32C integrity validation.
	// Default: true
	EnableChecksum bool
}

// DefaultUploadConfig returns the default upload settings.
func DefaultUploadConfig() UploadConfig {
	return UploadConfig{
		PartSize:       8 * 1024 * 1024,
		Concurrency:    5,
		EnableChecksum: true,
	}
}

type options struct {
	prefix   string
	region   string
	endpoint string
	upload   UploadConfig
	client   Client
	awsOpts  []func(*aws.Config)
}

// Option configures New.
type Option func(*options)

// WithPrefix sets the key prefix prepended to every blob name.
func WithPrefix(prefix string) Option {
	return func(o *options) {
		o.prefix = prefix
	}
}

// WithRegion overrides the region from the default AWS config chain.
func WithRegion(region string) Option {
	return func(o *options) {
		o.region = region
	}
}

// WithEndpoint points the client at an S3-compatible endpoint
// (e.g. LocalStack). Path-style addressing is enabled.
func WithEndpoint(endpoint string) Option {
	return func(o *options) {
		o.endpoint = endpoint
	}
}

// WithUploadConfig overrides DefaultUploadConfig.
func WithUploadConfig(cfg UploadConfig) Option {
	return func(o *options) {
		o.upload = cfg
	}
}

// WithClient supplies a preconfigured client; no AWS config is loaded.
func WithClient(client Client) Option {
	return func(o *options) {
		o.client = client
	}
}

// WithAWSConfig applies fn to the loaded aws.Config before the client is built.
func WithAWSConfig(fn func(*aws.Config)) Option {
	return func(o *options) {
		o.awsOpts = append(o.awsOpts, fn)
	}
}
