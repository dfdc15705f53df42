package server

import (
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeAddr(t *testing.T) {
	cases := map[string]string{
		"":               "",
		"5567":           ":5567",
		":5567":          ":5567",
		"127.0.0.1:5567": "127.0.0.1:5567",
	}
	for in, want := range cases {
		assert.Equal(t, want, normalizeAddr(in), in)
	}
}

func TestServer_RunAndShutdown(t *testing.T) {
	srv := New(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "pong")
	}))

	errc := make(chan error, 1)
	go func() { errc <- srv.Run("127.0.0.1:0") }()

	addr := srv.Addr()
	require.NotNil(t, addr)

	resp, err := http.Get("http://" + addr.String())
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	assert.Equal(t, "pong", string(body))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, srv.Shutdown(ctx))

	select {
	case err := <-errc:
		assert.NoError(t, err, "clean shutdown must not be reported as an error")
	case <-time.After(time.Second):
		t.Fatal("Run did not return after Shutdown")
	}
}

func TestServer_RunBindFailure(t *testing.T) {
	first := New(http.NotFoundHandler())
	go func() { _ = first.Run("127.0.0.1:0") }()
	addr := first.Addr()
	require.NotNil(t, addr)
	defer func() { _ = first.Shutdown(context.Background()) }()

	second := New(http.NotFoundHandler())
	err := second.Run(addr.String())
	assert.Error(t, err)
	assert.Nil(t, second.Addr())
}
