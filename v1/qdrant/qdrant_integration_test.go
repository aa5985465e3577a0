package qdrant

import (
	"context"
	"fmt"
	"net"
	"os"
	"testing"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/go-connections/nat"
	qdrant "github.com/qdrant/go-client/qdrant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/Aleph-Alpha/qdrant-sink/v1/sink"
	"github.com/Aleph-Alpha/qdrant-sink/v1/value"
)

// QdrantContainer represents a Qdrant container for testing
type QdrantContainer struct {
	testcontainers.Container
	Host string
	Port string
}

// URL returns the gRPC URL of the container.
func (c *QdrantContainer) URL() string {
	return "http://" + net.JoinHostPort(c.Host, c.Port)
}

// setupQdrantContainer sets up a Qdrant container for testing
func setupQdrantContainer(ctx context.Context) (*QdrantContainer, error) {
	port, err := getFreePort()
	if err != nil {
		return nil, fmt.Errorf("could not get free port: %w", err)
	}

	portStr := fmt.Sprintf("%d", port)
	portBindings := nat.PortMap{
		"6334/tcp": []nat.PortBinding{{HostPort: portStr}},
	}

	req := testcontainers.ContainerRequest{
		Image: "qdrant/qdrant:v1.16.0",
		Env: map[string]string{
			"QDRANT__SERVICE__GRPC_PORT": "6334",
		},
		ExposedPorts: []string{"6334/tcp"},
		HostConfigModifier: func(cfg *container.HostConfig) {
			cfg.PortBindings = portBindings
		},
		WaitingFor: wait.ForListeningPort("6334/tcp").WithStartupTimeout(60 * time.Second),
	}

	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start qdrant container: %w", err)
	}

	host, err := c.Host(ctx)
	if err != nil {
		_ = c.Terminate(ctx)
		return nil, fmt.Errorf("failed to get host: %w", err)
	}

	mappedPort, err := c.MappedPort(ctx, "6334")
	if err != nil {
		_ = c.Terminate(ctx)
		return nil, fmt.Errorf("failed to get mapped port: %w", err)
	}
	portStr = mappedPort.Port()

	fmt.Printf("Waiting for Qdrant to be ready on %s:%s...\n", host, portStr)
	if err := waitForQdrantReady(host, portStr, 30*time.Second); err != nil {
		_ = c.Terminate(ctx)
		return nil, fmt.Errorf("qdrant container not ready: %w", err)
	}

	return &QdrantContainer{Container: c, Host: host, Port: portStr}, nil
}

// getFreePort gets a free port from the OS
func getFreePort() (int, error) {
	addr, err := net.Listen("tcp", "localhost:0")
	if err != nil {
		return 0, err
	}
	defer func(addr net.Listener) {
		if err := addr.Close(); err != nil {
			fmt.Printf("Failed to close listener: %v", err)
		}
	}(addr)

	return addr.Addr().(*net.TCPAddr).Port, nil
}

// waitForQdrantReady attempts to connect to Qdrant until it's ready or times out
func waitForQdrantReady(host, port string, timeout time.Duration) error {
	startTime := time.Now()
	for {
		if time.Since(startTime) > timeout {
			return fmt.Errorf("timed out waiting for Qdrant to be ready after %s", timeout)
		}

		conn, err := net.DialTimeout("tcp", net.JoinHostPort(host, port), 2*time.Second)
		if err == nil {
			_ = conn.Close()
			time.Sleep(2 * time.Second)
			return nil
		}

		time.Sleep(500 * time.Millisecond)
	}
}

// TestMain sets up the testing environment
func TestMain(m *testing.M) {
	code := m.Run()
	os.Exit(code)
}

// nopLogger satisfies sink.Logger without output.
type nopLogger struct{}

func (nopLogger) Info(string, error, ...map[string]interface{})  {}
func (nopLogger) Debug(string, error, ...map[string]interface{}) {}
func (nopLogger) Warn(string, error, ...map[string]interface{})  {}
func (nopLogger) Error(string, error, ...map[string]interface{}) {}
func (nopLogger) Fatal(string, error, ...map[string]interface{}) {}

// TestQdrantWithFXModule writes records through the sink into a real Qdrant
// instance and reads them back.
func TestQdrantWithFXModule(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	containerInstance, err := setupQdrantContainer(ctx)
	require.NoError(t, err)
	defer func() {
		if err := containerInstance.Terminate(ctx); err != nil {
			t.Fatalf("failed to terminate container: %s", err)
		}
	}()

	t.Logf("Using Qdrant on %s", containerInstance.URL())

	var qdrantClient *QdrantClient
	app := fxtest.New(t,
		fx.Provide(
			func() *Config {
				return FromURL(containerInstance.URL()).
					WithCompatibilityCheck(false).
					WithTimeout(10 * time.Second)
			},
		),
		FXModule,
		fx.Populate(&qdrantClient),
	)
	require.NoError(t, app.Start(ctx))
	defer app.RequireStop()
	require.NotNil(t, qdrantClient)

	// Collection administration is outside the client, so the test sets up
	// collections with the SDK directly.
	admin, err := qdrant.NewClient(&qdrant.Config{Host: containerInstance.Host, Port: mustPort(t, containerInstance.Port)})
	require.NoError(t, err)
	defer admin.Close()

	require.NoError(t, admin.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: "named",
		VectorsConfig: qdrant.NewVectorsConfigMap(map[string]*qdrant.VectorParams{
			"text": {Size: 2, Distance: qdrant.Distance_Cosine},
		}),
		SparseVectorsConfig: qdrant.NewSparseVectorsConfig(map[string]*qdrant.SparseVectorParams{
			"keywords": {},
		}),
	}))
	require.NoError(t, admin.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: "plain",
		VectorsConfig:  qdrant.NewVectorsConfig(&qdrant.VectorParams{Size: 3, Distance: qdrant.Distance_Dot}),
	}))

	s := sink.NewSink(sink.Config{}, qdrantClient, nopLogger{})

	t.Run("UpsertGroupsByCollection", func(t *testing.T) {
		report, err := s.Process(ctx, []sink.Record{
			{Offset: 0, Value: `{"collection_name": "named", "id": "00000000-0000-0000-0000-000000000001",
				"vector": {"text": [0.1, 0.2], "keywords": {"indices": [4, 9], "values": [0.5, 0.25]}},
				"payload": {"title": "first", "rank": 1, "score": 0.5}}`},
			{Offset: 1, Value: `{"collection_name": "plain", "id": 7, "vector": [1, 2, 3]}`},
			{Offset: 2, Value: nil},
		})
		require.NoError(t, err)
		assert.Equal(t, 2, report.Count(sink.OutcomeUpserted))
		assert.Equal(t, 1, report.Count(sink.OutcomeSkipped))

		points, err := admin.Get(ctx, &qdrant.GetPoints{
			CollectionName: "named",
			Ids:            []*qdrant.PointId{qdrant.NewIDUUID("00000000-0000-0000-0000-000000000001")},
			WithPayload:    qdrant.NewWithPayload(true),
		})
		require.NoError(t, err)
		require.Len(t, points, 1)

		payload := points[0].GetPayload()
		assert.True(t, value.String("first").Equal(fromValue(payload["title"])))
		assert.True(t, value.Integer(1).Equal(fromValue(payload["rank"])))
		assert.True(t, value.Double(0.5).Equal(fromValue(payload["score"])))
	})

	t.Run("UpsertIntoMissingCollectionFails", func(t *testing.T) {
		_, err := s.Process(ctx, []sink.Record{
			{Value: `{"collection_name": "missing", "id": 1, "vector": [1, 2, 3]}`},
			{Value: `{"collection_name": "plain", "id": 8, "vector": [3, 2, 1]}`},
		})
		require.Error(t, err)
		assert.True(t, IsUpsertError(err))

		count, err := admin.Count(ctx, &qdrant.CountPoints{CollectionName: "plain", Exact: qdrant.PtrOf(true)})
		require.NoError(t, err)
		assert.Equal(t, uint64(2), count)
	})
}

func mustPort(t *testing.T, port string) int {
	t.Helper()
	var p int
	_, err := fmt.Sscanf(port, "%d", &p)
	require.NoError(t, err)
	return p
}
