package handler

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"agrisentry/internal/flows"
)

// 8 MiB covers phone camera captures; anything larger is rejected upfront.
const maxUploadBytes = 8 << 20

// HandleDiagnosis accepts the diagnosis form: photo (file), temperature,
// humidity, rainForecast.
func (h *Service) HandleDiagnosis(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respond(w, http.StatusBadRequest, nil, "Invalid form submission.")
		return
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		respond(w, http.StatusBadRequest, nil, "Image is required.")
		return
	}
	defer file.Close()
	image, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		respond(w, http.StatusBadRequest, nil, "Could not read the uploaded image.")
		return
	}
	mime := header.Header.Get("Content-Type")
	if mime == "" || mime == "application/octet-stream" {
		mime = sniffImageMIME(header.Filename)
	}

	temperature, err := parseFormNumber(r, "temperature")
	if err != nil {
		respond(w, http.StatusBadRequest, nil, "Temperature must be a number.")
		return
	}
	humidity, err := parseFormNumber(r, "humidity")
	if err != nil {
		respond(w, http.StatusBadRequest, nil, "Humidity must be a number.")
		return
	}

	data, err := h.flows.RunDiagnosis(r.Context(), flows.DiagnosisRequest{
		Image:        image,
		ImageMIME:    mime,
		Temperature:  temperature,
		Humidity:     humidity,
		RainForecast: r.FormValue("rainForecast"),
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, data, "")
}

func parseFormNumber(r *http.Request, field string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(r.FormValue(field)), 64)
}

func sniffImageMIME(filename string) string {
	switch {
	case strings.HasSuffix(filename, ".png"):
		return "image/png"
	case strings.HasSuffix(filename, ".webp"):
		return "image/webp"
	case strings.HasSuffix(filename, ".jpg"), strings.HasSuffix(filename, ".jpeg"):
		return "image/jpeg"
	default:
		return ""
	}
}
