package handler

import (
	"encoding/json"
	"net/http"

	"agrisentry/internal/flows"
)

type forecastBody struct {
	Temperature  float64 `json:"temperature"`
	Humidity     float64 `json:"humidity"`
	RainForecast string  `json:"rainForecast"`
	Crop         string  `json:"crop"`
}

func (h *Service) HandleForecast(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var in forecastBody
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond(w, http.StatusBadRequest, nil, "Invalid JSON body.")
		return
	}
	data, err := h.flows.RunForecast(r.Context(), flows.ForecastRequest{
		Temperature:  in.Temperature,
		Humidity:     in.Humidity,
		RainForecast: in.RainForecast,
		Crop:         in.Crop,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, data, "")
}
