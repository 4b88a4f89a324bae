package nats_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	broker "github.com/haris936hk/EchoNote-sub002/internal/adapters/eventbroker/nats"
	"github.com/haris936hk/EchoNote-sub002/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

type mockHandler struct {
	messages [][]byte
	received chan struct{}
	err      error
	mu       sync.Mutex
}

func (m *mockHandler) HandleMessage(ctx context.Context, data []byte) error {
	m.mu.Lock()
	m.messages = append(m.messages, data)
	m.mu.Unlock()

	if m.received != nil {
		m.received <- struct{}{}
	}
	return m.err
}

func (m *mockHandler) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.messages)
}

func setupNATSContainer(t *testing.T) (string, func()) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "nats:2.10-alpine",
		ExposedPorts: []string{"4222/tcp"},
		Cmd:          []string{"-js"},
		WaitingFor:   wait.ForLog("Server is ready"),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	port, err := container.MappedPort(ctx, "4222")
	require.NoError(t, err)

	cleanup := func() {
		_ = container.Terminate(ctx)
	}

	return "nats://" + host + ":" + port.Port(), cleanup
}

func testConfig(natsURL, prefix string) config.NATSConfig {
	return config.NATSConfig{
		URL:           natsURL,
		StreamName:    prefix + "-stream",
		UploadSubject: prefix + ".meeting.uploaded",
		NotifySubject: prefix + ".notification",
		ConsumerName:  prefix + "-worker",
		DeliverGroup:  "workers",
	}
}

func TestBroker_PublishAndSubscribeRoundTrip(t *testing.T) {
	// Arrange
	natsURL, cleanup := setupNATSContainer(t)
	defer cleanup()

	cfg := testConfig(natsURL, "roundtrip")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	b, err := broker.NewBroker(ctx, cfg, logger)
	require.NoError(t, err)
	defer b.Close()

	handler := &mockHandler{received: make(chan struct{}, 1)}

	payload, err := json.Marshal(map[string]string{"meeting_id": "abc"})
	require.NoError(t, err)

	// Act
	err = b.Subscribe(ctx, handler)
	require.NoError(t, err)

	err = b.Publish(ctx, cfg.UploadSubject, payload)
	require.NoError(t, err)

	select {
	case <-handler.received:
	case <-time.After(5 * time.Second):
		t.Fatal("message not received")
	}

	// Assert
	require.Equal(t, 1, handler.count())
	assert.Equal(t, payload, handler.messages[0])
}

func TestBroker_HandlerErrorTriggersRedelivery(t *testing.T) {
	natsURL, cleanup := setupNATSContainer(t)
	defer cleanup()

	cfg := testConfig(natsURL, "redelivery")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	b, err := broker.NewBroker(ctx, cfg, logger)
	require.NoError(t, err)
	defer b.Close()

	handler := &mockHandler{received: make(chan struct{}, 2), err: assert.AnError}

	err = b.Subscribe(ctx, handler)
	require.NoError(t, err)

	err = b.Publish(ctx, cfg.UploadSubject, []byte("fail"))
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		select {
		case <-handler.received:
		case <-time.After(10 * time.Second):
			t.Fatal("expected redelivery")
		}
	}

	assert.GreaterOrEqual(t, handler.count(), 2)
}

func TestBroker_NotificationSubjectIsNotConsumed(t *testing.T) {
	// worker consumer filters on the upload subject; notification events are
	// for the external dispatcher
	natsURL, cleanup := setupNATSContainer(t)
	defer cleanup()

	cfg := testConfig(natsURL, "notify")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	b, err := broker.NewBroker(ctx, cfg, logger)
	require.NoError(t, err)
	defer b.Close()

	handler := &mockHandler{received: make(chan struct{}, 1)}

	err = b.Subscribe(ctx, handler)
	require.NoError(t, err)

	err = b.Publish(ctx, cfg.NotifySubject, []byte(`{"type":"meeting.completed"}`))
	require.NoError(t, err)

	select {
	case <-handler.received:
		t.Fatal("notification must not reach the upload consumer")
	case <-time.After(time.Second):
	}
}

func TestBroker_GracefulShutdown(t *testing.T) {
	natsURL, cleanup := setupNATSContainer(t)
	defer cleanup()

	cfg := testConfig(natsURL, "shutdown")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	ctx := context.Background()

	b, err := broker.NewBroker(ctx, cfg, logger)
	require.NoError(t, err)

	handler := &mockHandler{received: make(chan struct{}, 1)}

	require.NoError(t, b.Subscribe(ctx, handler))
	require.NoError(t, b.Close())

	// publish over a fresh connection; the closed broker must not consume it
	b2, err := broker.NewBroker(ctx, cfg, logger)
	require.NoError(t, err)
	defer b2.Close()
	require.NoError(t, b2.Publish(ctx, cfg.UploadSubject, []byte("late-data")))

	select {
	case <-handler.received:
		t.Fatal("message should not have been processed after Close")
	case <-time.After(500 * time.Millisecond):
	}
}
