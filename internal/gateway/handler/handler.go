package handler

import (
	"encoding/json"
	"log"
	"net/http"

	"agrisentry/internal/flows"
)

// Service exposes the workflow orchestrator over the HTTP form surface.
// Every response carries the {data, error} shape; nothing unhandled crosses
// this boundary.
type Service struct {
	flows *flows.Service
}

func NewService(f *flows.Service) *Service {
	return &Service{flows: f}
}

type envelope struct {
	Data  any     `json:"data"`
	Error *string `json:"error"`
}

func respond(w http.ResponseWriter, status int, data any, errMsg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	env := envelope{Data: data}
	if errMsg != "" {
		env.Error = &errMsg
	}
	if err := json.NewEncoder(w).Encode(env); err != nil {
		log.Printf("encode response: %v", err)
	}
}

// respondError maps the flow error taxonomy onto HTTP statuses. Validation
// echoes the specific reason; everything else stays generic.
func respondError(w http.ResponseWriter, err error) {
	status := http.StatusBadGateway
	switch flows.KindOf(err) {
	case flows.KindValidation:
		status = http.StatusBadRequest
	case flows.KindTimeout:
		status = http.StatusGatewayTimeout
	}
	respond(w, status, nil, flows.UserMessage(err))
}

func (h *Service) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"ok": true})
}
