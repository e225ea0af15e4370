package handler

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"

	"agrisentry/internal/flows"
)

type adviceBody struct {
	Disease      string  `json:"disease"`
	Temperature  float64 `json:"temperature"`
	Humidity     float64 `json:"humidity"`
	RainForecast string  `json:"rainForecast"`
	CropType     string  `json:"cropType"`
	// Optional photo as a data URI: data:<mimetype>;base64,<encoded>
	PhotoDataURI string `json:"photoDataUri,omitempty"`
}

func (h *Service) HandleAdvice(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var in adviceBody
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond(w, http.StatusBadRequest, nil, "Invalid JSON body.")
		return
	}

	req := flows.AdviceRequest{
		Disease:      in.Disease,
		Temperature:  in.Temperature,
		Humidity:     in.Humidity,
		RainForecast: in.RainForecast,
		CropType:     in.CropType,
	}
	if in.PhotoDataURI != "" {
		mime, data, err := decodeDataURI(in.PhotoDataURI)
		if err != nil {
			respond(w, http.StatusBadRequest, nil, "Invalid photo data URI.")
			return
		}
		req.Image = data
		req.ImageMIME = mime
	}

	data, err := h.flows.RunAdvice(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, data, "")
}

// decodeDataURI splits a data:<mime>;base64,<payload> URI.
func decodeDataURI(uri string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return "", nil, errInvalidDataURI
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, errInvalidDataURI
	}
	mime, _, _ := strings.Cut(meta, ";")
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, err
	}
	return mime, data, nil
}
