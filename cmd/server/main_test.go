package main

import (
	"context"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"legal-roster/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServe_ShutdownWaitsForInFlightRequests(t *testing.T) {
	started := make(chan struct{})
	finish := make(chan struct{})

	mux := http.NewServeMux()
	mux.HandleFunc("/slow", func(w http.ResponseWriter, _ *http.Request) {
		close(started)
		<-finish
		_, _ = io.WriteString(w, "done")
	})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srv := &http.Server{Handler: mux}
	served := make(chan error, 1)
	go func() {
		served <- serve(ctx, srv, ln, logger.NewTestLogger(t), 5*time.Second)
	}()

	type result struct {
		body string
		err  error
	}
	resp := make(chan result, 1)
	go func() {
		r, err := http.Get("http://" + ln.Addr().String() + "/slow")
		if err != nil {
			resp <- result{err: err}
			return
		}
		defer r.Body.Close()
		b, err := io.ReadAll(r.Body)
		resp <- result{body: string(b), err: err}
	}()

	<-started
	cancel()

	select {
	case <-served:
		t.Fatal("serve returned before the in-flight request finished")
	case <-time.After(100 * time.Millisecond):
	}

	close(finish)

	got := <-resp
	require.NoError(t, got.err)
	assert.Equal(t, "done", got.body)

	select {
	case err := <-served:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not return after shutdown")
	}

	_, err = net.DialTimeout("tcp", ln.Addr().String(), 200*time.Millisecond)
	assert.Error(t, err, "listener should be closed after shutdown")
}

func TestServe_ReturnsListenerErrors(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	require.NoError(t, ln.Close())

	err = serve(context.Background(), &http.Server{Handler: http.NewServeMux()}, ln, logger.NewTestLogger(t), time.Second)
	assert.Error(t, err)
}
