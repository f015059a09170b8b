package cli

import (
	"bytes"
	"context"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"timeline/app/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() config.Config {
	return config.Config{
		Addr:       "127.0.0.1:0",
		Env:        "test",
		LogLevel:   "error",
		Locale:     "pt_BR",
		SessionTTL: time.Minute,
		DeleteMode: config.DeleteByValue,
	}
}

func TestRunGracefulShutdown(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, testConfig(), ln)
	}()

	var resp *http.Response
	require.Eventually(t, func() bool {
		resp, err = http.Get("http://" + addr + "/api/posts")
		return err == nil
	}, 2*time.Second, 20*time.Millisecond)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"id":1`)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(shutdownTimeout + time.Second):
		t.Fatal("server did not stop")
	}
}

func TestRunRejectsBadLocale(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	cfg := testConfig()
	cfg.Locale = "xx"
	assert.Error(t, Run(context.Background(), cfg, ln))
}

func TestCheck(t *testing.T) {
	now := time.Date(2024, time.May, 12, 9, 20, 0, 0, time.Local)

	t.Run("built-in feed", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Check(&buf, "", "pt_BR", now))
		assert.Contains(t, buf.String(), "Christian Borges")
		assert.Contains(t, buf.String(), "10 de maio às 09:20h")
		assert.Contains(t, buf.String(), "há 2 dias")
		assert.Contains(t, buf.String(), "built-in feed: 2 posts valid")
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "feed.yaml")
		feed := `posts:
  - id: 7
    author: {name: Ana}
    published_at: "2024-05-11 09:20:00"
    content:
      - {value: "hello"}
`
		require.NoError(t, os.WriteFile(path, []byte(feed), 0o600))

		var buf bytes.Buffer
		require.NoError(t, Check(&buf, path, "en", now))
		assert.Contains(t, buf.String(), "Ana")
		assert.Contains(t, buf.String(), "1 day ago")
		assert.Contains(t, buf.String(), path+": 1 post valid")
	})

	t.Run("invalid file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "feed.yaml")
		require.NoError(t, os.WriteFile(path, []byte("posts:\n  - id: 0\n"), 0o600))

		var buf bytes.Buffer
		assert.Error(t, Check(&buf, path, "en", now))
	})
}
