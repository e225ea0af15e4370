package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"agrisentry/internal/flows"
)

var errInvalidDataURI = errors.New("handler: invalid data URI")

type chatBody struct {
	Question string           `json:"question"`
	Language string           `json:"language"`
	History  []flows.ChatTurn `json:"history"`
}

func (h *Service) HandleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var in chatBody
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond(w, http.StatusBadRequest, nil, "Invalid JSON body.")
		return
	}
	resp, err := h.flows.RunChat(r.Context(), flows.ChatRequest{
		Question: in.Question,
		Language: in.Language,
		History:  in.History,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, resp, "")
}

const (
	chatWSWriteWait = 10 * time.Second
	chatWSPongWait  = 60 * time.Second
	chatWSPingEvery = (chatWSPongWait * 9) / 10
)

var chatWSUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(_ *http.Request) bool {
		return true
	},
}

type chatWSOutbound struct {
	Response string `json:"response,omitempty"`
	Error    string `json:"error,omitempty"`
}

// chatWritePump is the sole writer on conn: responses and pings both go
// through it, since the connection supports only one concurrent writer.
// It runs until ctx is cancelled or a write fails.
func chatWritePump(ctx context.Context, conn *websocket.Conn, writeCh <-chan chatWSOutbound, pingEvery time.Duration) {
	ticker := time.NewTicker(pingEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case out := <-writeCh:
			if err := conn.SetWriteDeadline(time.Now().Add(chatWSWriteWait)); err != nil {
				return
			}
			if err := conn.WriteJSON(out); err != nil {
				return
			}
		case <-ticker.C:
			if err := conn.SetWriteDeadline(time.Now().Add(chatWSWriteWait)); err != nil {
				return
			}
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// HandleChatWS serves the chat flow over a websocket. Each inbound frame is
// one full ChatRequest (history included, client-owned); each outbound frame
// is the answer or a caller-safe error for that turn.
func (h *Service) HandleChatWS(w http.ResponseWriter, r *http.Request) {
	conn, err := chatWSUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	if err := conn.SetReadDeadline(time.Now().Add(chatWSPongWait)); err != nil {
		log.Printf("chat ws set read deadline failed: %v", err)
		return
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(chatWSPongWait))
	})

	writeCh := make(chan chatWSOutbound, 8)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		defer cancel()
		chatWritePump(ctx, conn, writeCh, chatWSPingEvery)
	}()

	for {
		var in chatBody
		if err := conn.ReadJSON(&in); err != nil {
			cancel()
			<-writerDone
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(chatWSPongWait))

		out := chatWSOutbound{}
		resp, err := h.flows.RunChat(ctx, flows.ChatRequest{
			Question: in.Question,
			Language: in.Language,
			History:  in.History,
		})
		if err != nil {
			out.Error = flows.UserMessage(err)
		} else {
			out.Response = resp
		}
		select {
		case writeCh <- out:
		case <-ctx.Done():
			<-writerDone
			return
		}
	}
}
