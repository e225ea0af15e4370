package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialWS(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	return conn
}

func TestHandleChatWS_AnswersEachFrame(t *testing.T) {
	client := &queueLLM{responses: []json.RawMessage{
		json.RawMessage(`{"response":"Use neem oil weekly."}`),
		json.RawMessage(`{"response":"Water in the early morning."}`),
	}}
	h := newTestHandler(client)
	srv := httptest.NewServer(http.HandlerFunc(h.HandleChatWS))
	defer srv.Close()

	conn := dialWS(t, srv)
	defer conn.Close()

	for _, want := range []string{"Use neem oil weekly.", "Water in the early morning."} {
		require.NoError(t, conn.WriteJSON(chatBody{
			Question: "How do I protect my crop?",
			Language: "English",
		}))
		var out chatWSOutbound
		require.NoError(t, conn.ReadJSON(&out))
		assert.Equal(t, want, out.Response)
		assert.Empty(t, out.Error)
	}
}

func TestHandleChatWS_InvalidFrameGetsErrorNotClose(t *testing.T) {
	h := newTestHandler(&queueLLM{responses: []json.RawMessage{
		json.RawMessage(`{"response":"Rotate your crops."}`),
	}})
	srv := httptest.NewServer(http.HandlerFunc(h.HandleChatWS))
	defer srv.Close()

	conn := dialWS(t, srv)
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(chatBody{Question: "How do I rotate?"}))
	var out chatWSOutbound
	require.NoError(t, conn.ReadJSON(&out))
	assert.Equal(t, "Language is required.", out.Error)
	assert.Empty(t, out.Response)

	// The connection survives a bad turn.
	require.NoError(t, conn.WriteJSON(chatBody{Question: "How do I rotate?", Language: "Hindi"}))
	require.NoError(t, conn.ReadJSON(&out))
	assert.Equal(t, "Rotate your crops.", out.Response)
}

// Pings and responses interleave on one connection; both must flow through
// the single write pump without corrupting each other.
func TestChatWritePump_SerializesPingsAndResponses(t *testing.T) {
	serverConns := make(chan *websocket.Conn, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := chatWSUpgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		serverConns <- conn
	}))
	defer srv.Close()

	client := dialWS(t, srv)
	defer client.Close()
	server := <-serverConns
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	writeCh := make(chan chatWSOutbound, 8)
	pumpDone := make(chan struct{})
	go func() {
		defer close(pumpDone)
		chatWritePump(ctx, server, writeCh, time.Millisecond)
	}()

	pings := make(chan struct{}, 1)
	client.SetPingHandler(func(string) error {
		select {
		case pings <- struct{}{}:
		default:
		}
		return nil
	})

	const frames = 20
	go func() {
		for i := 0; i < frames; i++ {
			writeCh <- chatWSOutbound{Response: fmt.Sprintf("answer %d", i)}
			time.Sleep(time.Millisecond)
		}
	}()

	for i := 0; i < frames; i++ {
		var out chatWSOutbound
		require.NoError(t, client.ReadJSON(&out))
		assert.Equal(t, fmt.Sprintf("answer %d", i), out.Response)
	}

	select {
	case <-pings:
	default:
		// The ping handler only runs inside a read, so block on one more
		// read until a ping has been processed.
		require.NoError(t, client.SetReadDeadline(time.Now().Add(time.Second)))
		_, _, _ = client.ReadMessage()
		select {
		case <-pings:
		default:
			t.Fatal("no ping interleaved with the response frames")
		}
	}

	cancel()
	select {
	case <-pumpDone:
	case <-time.After(time.Second):
		t.Fatal("write pump did not stop on cancel")
	}
}
