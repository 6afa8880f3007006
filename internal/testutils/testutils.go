//go:build integration

// Package testutils provides shared test infrastructure for integration tests.
package testutils

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"gocloud.dev/blob"

	"github.com/meteoswiss-mdr/goesmirror/pkg/goesfile"
)

// MinioEnv contains connection information for a Minio test environment.
type MinioEnv struct {
	Container testcontainers.Container
	Endpoint  string
	AccessKey string
	SecretKey string
}

// Close terminates the Minio container.
func (e *MinioEnv) Close(ctx context.Context) error {
	if e.Container != nil {
		return e.Container.Terminate(ctx)
	}
	return nil
}

// BucketURL returns a gocloud s3:// URL for the given bucket on this Minio.
func (e *MinioEnv) BucketURL(bucketName string) string {
	return fmt.Sprintf("s3://%s?endpoint=http://%s&use_path_style=true&disable_https=true&region=us-east-1",
		bucketName,
		e.Endpoint,
	)
}

// OpenBucket opens a gocloud bucket connection to the Minio environment.
func (e *MinioEnv) OpenBucket(ctx context.Context, bucketName string) (*blob.Bucket, error) {
	return blob.OpenBucket(ctx, e.BucketURL(bucketName))
}

// StartMinioContainer starts a Minio container with the given pre-created
// buckets. Bucket names follow the archive convention, e.g. "noaa-goes16".
func StartMinioContainer(t *testing.T, ctx context.Context, bucketNames ...string) *MinioEnv {
	t.Helper()

	const (
		accessKey = "minioadmin"
		secretKey = "minioadmin"
	)

	// Create a network for minio and mc to communicate
	networkName := fmt.Sprintf("minio-test-net-%d", time.Now().UnixNano())
	network, err := testcontainers.GenericNetwork(ctx, testcontainers.GenericNetworkRequest{
		NetworkRequest: testcontainers.NetworkRequest{
			Name: networkName,
		},
	})
	if err != nil {
		t.Fatalf("create network: %v", err)
	}
	t.Cleanup(func() { network.Remove(ctx) })

	// Start minio container
	minioReq := testcontainers.ContainerRequest{
		Image:        "minio/minio:latest",
		ExposedPorts: []string{"9000/tcp"},
		Networks:     []string{networkName},
		NetworkAliases: map[string][]string{
			networkName: {"minio"},
		},
		Env: map[string]string{
			"MINIO_ROOT_USER":     accessKey,
			"MINIO_ROOT_PASSWORD": secretKey,
		},
		Cmd:        []string{"server", "/data"},
		WaitingFor: wait.ForHTTP("/minio/health/ready").WithPort("9000"),
	}

	minioContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: minioReq,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("start minio container: %v", err)
	}

	createBucketsWithMC(t, ctx, networkName, accessKey, secretKey, bucketNames)

	host, err := minioContainer.Host(ctx)
	if err != nil {
		t.Fatalf("get container host: %v", err)
	}

	port, err := minioContainer.MappedPort(ctx, "9000")
	if err != nil {
		t.Fatalf("get container port: %v", err)
	}

	endpoint := fmt.Sprintf("%s:%s", host, port.Port())

	// Set AWS credentials via environment variables (gocloud reads these)
	t.Setenv("AWS_ACCESS_KEY_ID", accessKey)
	t.Setenv("AWS_SECRET_ACCESS_KEY", secretKey)

	return &MinioEnv{
		Container: minioContainer,
		Endpoint:  endpoint,
		AccessKey: accessKey,
		SecretKey: secretKey,
	}
}

// createBucketsWithMC creates buckets using a separate minio/mc container.
func createBucketsWithMC(t *testing.T, ctx context.Context, networkName, accessKey, secretKey string, bucketNames []string) {
	t.Helper()

	script := fmt.Sprintf("/usr/bin/mc config host add myminio http://minio:9000 %s %s", accessKey, secretKey)
	for _, name := range bucketNames {
		script += fmt.Sprintf(" && /usr/bin/mc mb myminio/%s && /usr/bin/mc policy set download myminio/%s", name, name)
	}
	script += "; exit 0"

	// mc container runs, creates the buckets, then exits
	mcReq := testcontainers.ContainerRequest{
		Image:      "minio/mc:latest",
		Networks:   []string{networkName},
		Entrypoint: []string{"/bin/sh", "-c"},
		Cmd:        []string{script},
		WaitingFor: wait.ForExit(),
	}

	mcContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: mcReq,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("start mc container: %v", err)
	}
	defer mcContainer.Terminate(ctx)
}

// GOESName builds a plausible ABI L1b radiance filename for the given
// channel, satellite and start timestamp (YYYYDDDHHMMSS plus a tenth of
// a second digit is appended here).
func GOESName(channel int, satellite, stamp string) string {
	return fmt.Sprintf("OR_ABI-L1b-RadF-M6C%02d_G%s_s%s0_e%s0_c%s0.nc",
		channel, satellite, stamp, stamp, stamp)
}

// SeedObject writes a file into the bucket under its hour-partitioned key
// and returns the key.
func SeedObject(t *testing.T, ctx context.Context, bkt *blob.Bucket, product, name string, size int) string {
	t.Helper()

	ts, err := goesfile.Timestamp(name)
	if err != nil {
		t.Fatalf("timestamp from %q: %v", name, err)
	}
	key := goesfile.Key(product, ts, name)

	data := make([]byte, size)
	for i := range data {
		data[i] = byte(i % 251)
	}
	if err := bkt.WriteAll(ctx, key, data, nil); err != nil {
		t.Fatalf("seed %s: %v", key, err)
	}
	return key
}
