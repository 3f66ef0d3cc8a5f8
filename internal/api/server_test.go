package api

import (
	"context"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/classquiz/internal/testutil"
)

func TestServerListensOnEphemeralPort(t *testing.T) {
	cfg := DefaultServerConfig()
	cfg.Host = "127.0.0.1"
	cfg.Port = 0
	cfg.ShutdownTimeout = time.Second

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "ok")
	})
	server := NewServer(handler, cfg, testutil.NopLogger())
	require.NoError(t, server.Listen())
	assert.NotEqual(t, "127.0.0.1:0", server.Addr())

	errCh := make(chan error, 1)
	go func() { errCh <- server.Serve() }()

	resp, err := http.Get("http://" + server.Addr())
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	assert.Equal(t, "ok", string(body))

	require.NoError(t, server.Shutdown(context.Background()))
	assert.NoError(t, <-errCh)
}

func TestServerListenFailsOnBusyPort(t *testing.T) {
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = busy.Close() })

	cfg := DefaultServerConfig()
	cfg.Host = "127.0.0.1"
	cfg.Port = busy.Addr().(*net.TCPAddr).Port

	server := NewServer(http.NotFoundHandler(), cfg, testutil.NopLogger())
	assert.Error(t, server.Listen())
	assert.Error(t, server.Serve())
}
