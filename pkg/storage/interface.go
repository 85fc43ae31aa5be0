package storage

import (
	"context"
	"errors"
	"io"
)

var ErrUnknownProvider = errors.New("unknown storage provider")

// StorageProvider stores uploaded media (driver and user profile images).
type StorageProvider interface {
	Upload(ctx context.Context, request *UploadRequest) (*UploadResponse, error)
	Delete(ctx context.Context, key string) error
	FileExists(ctx context.Context, key string) (bool, error)
	PublicURL(key string) string
}

type UploadRequest struct {
	Key          string            `json:"key"`
	Reader       io.Reader         `json:"-"`
	ContentType  string            `json:"content_type"`
	Size         int64             `json:"size"`
	Metadata     map[string]string `json:"metadata"`
	CacheControl string            `json:"cache_control"`
}

type UploadResponse struct {
	Key  string `json:"key"`
	URL  string `json:"url"`
	Size int64  `json:"size"`
	ETag string `json:"etag"`
}

type Options struct {
	Provider string // local, aws, gcp

	LocalBasePath string
	LocalBaseURL  string

	AWSRegion    string
	AWSBucket    string
	AWSCDNDomain string

	GCPBucket          string
	GCPCredentialsFile string
	GCPCDNDomain       string
}

// New builds the provider selected by opts.Provider.
func New(ctx context.Context, opts Options) (StorageProvider, error) {
	switch opts.Provider {
	case "", "local":
		return NewLocalStorage(opts.LocalBasePath, opts.LocalBaseURL)
	case "aws", "s3":
		return NewAWSS3Storage(ctx, opts.AWSRegion, opts.AWSBucket, opts.AWSCDNDomain)
	case "gcp", "gcs":
		return NewGCPStorage(ctx, opts.GCPBucket, opts.GCPCredentialsFile, opts.GCPCDNDomain)
	default:
		return nil, ErrUnknownProvider
	}
}
