package storage

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"gocloud.dev/blob"
	"gocloud.dev/blob/s3blob"

	"github.com/meteoswiss-mdr/goesmirror/pkg/goesfile"
)

// S3Options configures access to the archive's S3 endpoint.
type S3Options struct {
	// Region of the archive buckets. Default: us-east-1, where the NOAA
	// buckets live.
	Region string

	// Endpoint overrides the S3 endpoint (MinIO-compatible stores).
	// A custom endpoint implies path-style addressing.
	Endpoint string

	// Anonymous skips the credential chain. Required for the public
	// NOAA buckets unless real AWS credentials are configured.
	Anonymous bool
}

// S3Opener opens satellite containers on a shared S3 client. The client
// is read-only state and safe for concurrent use.
type S3Opener struct {
	client *s3.Client
}

// NewS3Opener builds the S3 client once; OpenBucket then wraps it per
// container without further setup cost.
func NewS3Opener(ctx context.Context, opts S3Options) (*S3Opener, error) {
	if opts.Region == "" {
		opts.Region = "us-east-1"
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(opts.Region),
	}
	if opts.Anonymous {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(aws.AnonymousCredentials{}))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("storage: load AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Opener{client: client}, nil
}

// OpenBucket opens the archive container for a satellite number.
func (o *S3Opener) OpenBucket(ctx context.Context, satellite string) (*blob.Bucket, error) {
	bkt, err := s3blob.OpenBucketV2(ctx, o.client, goesfile.Container(satellite), nil)
	if err != nil {
		return nil, fmt.Errorf("storage: open %s: %w", goesfile.Container(satellite), err)
	}
	return bkt, nil
}

// URLOpener opens satellite containers through gocloud bucket URLs.
type URLOpener struct {
	// Pattern is a gocloud bucket URL with a %s placeholder for the
	// container name, e.g.
	// "s3://%s?endpoint=http://localhost:9000&use_path_style=true".
	Pattern string
}

// OpenBucket opens the container for a satellite via the URL pattern.
func (o URLOpener) OpenBucket(ctx context.Context, satellite string) (*blob.Bucket, error) {
	url := fmt.Sprintf(o.Pattern, goesfile.Container(satellite))
	bkt, err := blob.OpenBucket(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("storage: open %s: %w", url, err)
	}
	return bkt, nil
}
