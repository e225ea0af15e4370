package server

import (
	"net/http"

	"agrisentry/internal/gateway/handler"
	"agrisentry/internal/gateway/middleware"
)

func NewMux(h *handler.Service) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/diagnosis", h.HandleDiagnosis)
	mux.HandleFunc("/api/forecast", h.HandleForecast)
	mux.HandleFunc("/api/advice", h.HandleAdvice)
	mux.HandleFunc("/api/chat", h.HandleChat)
	mux.HandleFunc("/api/chat/ws", h.HandleChatWS)
	mux.HandleFunc("/api/healthz", h.HandleHealth)

	return middleware.CORS(mux)
}
