package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/couchcryptid/fantasy-weather-service/internal/domain"
	"github.com/couchcryptid/fantasy-weather-service/internal/forecast"
)

const (
	maxBodyBytes    = 1 << 20
	maxAdvanceHours = 24 * 366
)

// ForecastAPI is the simulation surface the handlers drive.
// *forecast.Service implements it.
type ForecastAPI interface {
	InitializeSeason(region domain.Region, season domain.Season, date time.Time) []domain.ForecastHour
	AdvanceTime(region domain.Region, hours int, date time.Time) []domain.ForecastHour
	RegionForecast(id string) []domain.ForecastHour
	Regions() []domain.Region
	StartTransition(source, target domain.Region) ([]domain.ForecastHour, bool)
	AdvanceTransition(hours int) ([]domain.ForecastHour, bool)
	EndTransition() []domain.ForecastHour
	TransitionInfo() *forecast.TransitionInfo
	TransitionWeather() []domain.ForecastHour
}

type forecastHandlers struct {
	api    ForecastAPI
	logger *slog.Logger
}

type initializeRequest struct {
	ID     string    `json:"id"`
	Biome  string    `json:"biome"`
	Season string    `json:"season"`
	Date   time.Time `json:"date"`
}

type advanceRequest struct {
	Hours int       `json:"hours"`
	Date  time.Time `json:"date"`
}

type transitionRequest struct {
	Source domain.Region `json:"source"`
	Target domain.Region `json:"target"`
}

type forecastResponse struct {
	RegionID string                `json:"region_id"`
	Hours    []domain.ForecastHour `json:"hours"`
}

type transitionResponse struct {
	Traveling bool                     `json:"traveling"`
	Info      *forecast.TransitionInfo `json:"info,omitempty"`
	Hours     []domain.ForecastHour    `json:"hours"`
	// ArrivedAt names the region whose forecast Hours holds once travel ends.
	ArrivedAt string `json:"arrived_at,omitempty"`
}

func (h *forecastHandlers) listRegions(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]domain.Region{"regions": h.api.Regions()})
}

func (h *forecastHandlers) initializeRegion(w http.ResponseWriter, r *http.Request) {
	var req initializeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	req.ID = strings.TrimSpace(req.ID)
	if req.ID == "" || strings.TrimSpace(req.Biome) == "" {
		writeError(w, http.StatusBadRequest, "id and biome are required")
		return
	}
	season, ok := domain.ParseSeason(req.Season)
	if !ok {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown season %q", req.Season))
		return
	}

	region := domain.Region{ID: req.ID, Biome: domain.Biome(strings.ToLower(strings.TrimSpace(req.Biome)))}
	hours := h.api.InitializeSeason(region, season, req.Date)
	h.logger.Info("region initialized via api", "region", region.ID, "biome", region.Biome, "season", season)
	writeJSON(w, http.StatusCreated, forecastResponse{RegionID: region.ID, Hours: hours})
}

func (h *forecastHandlers) regionForecast(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	hours := h.api.RegionForecast(id)
	if len(hours) == 0 {
		writeError(w, http.StatusNotFound, "no forecast available for region "+id)
		return
	}
	writeJSON(w, http.StatusOK, forecastResponse{RegionID: id, Hours: hours})
}

func (h *forecastHandlers) advanceRegion(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var req advanceRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validateHours(req.Hours); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	hours := h.api.AdvanceTime(domain.Region{ID: id}, req.Hours, req.Date)
	if len(hours) == 0 {
		writeError(w, http.StatusNotFound, "no forecast available for region "+id)
		return
	}
	writeJSON(w, http.StatusOK, forecastResponse{RegionID: id, Hours: hours})
}

func (h *forecastHandlers) transitionStatus(w http.ResponseWriter, _ *http.Request) {
	info := h.api.TransitionInfo()
	if info == nil {
		writeJSON(w, http.StatusOK, transitionResponse{Traveling: false, Hours: []domain.ForecastHour{}})
		return
	}
	writeJSON(w, http.StatusOK, transitionResponse{Traveling: true, Info: info, Hours: h.api.TransitionWeather()})
}

func (h *forecastHandlers) startTransition(w http.ResponseWriter, r *http.Request) {
	var req transitionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Source.ID == "" || req.Target.ID == "" {
		writeError(w, http.StatusBadRequest, "source.id and target.id are required")
		return
	}
	req.Source.Biome = domain.Biome(strings.ToLower(string(req.Source.Biome)))
	req.Target.Biome = domain.Biome(strings.ToLower(string(req.Target.Biome)))

	hours, ok := h.api.StartTransition(req.Source, req.Target)
	if !ok {
		writeError(w, http.StatusConflict, "cannot travel to the current region")
		return
	}
	writeJSON(w, http.StatusCreated, transitionResponse{Traveling: true, Info: h.api.TransitionInfo(), Hours: hours})
}

func (h *forecastHandlers) advanceTransition(w http.ResponseWriter, r *http.Request) {
	var req advanceRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validateHours(req.Hours); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	before := h.api.TransitionInfo()
	if before == nil {
		writeError(w, http.StatusNotFound, "no active transition")
		return
	}
	hours, traveling := h.api.AdvanceTransition(req.Hours)
	if traveling {
		writeJSON(w, http.StatusOK, transitionResponse{Traveling: true, Info: h.api.TransitionInfo(), Hours: hours})
		return
	}
	target := before.TargetRegion.ID
	writeJSON(w, http.StatusOK, transitionResponse{
		Traveling: false,
		Hours:     h.api.RegionForecast(target),
		ArrivedAt: target,
	})
}

func (h *forecastHandlers) endTransition(w http.ResponseWriter, _ *http.Request) {
	info := h.api.TransitionInfo()
	hours := h.api.EndTransition()
	if info == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, transitionResponse{Traveling: false, Hours: hours, ArrivedAt: info.TargetRegion.ID})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func validateHours(hours int) error {
	if hours <= 0 {
		return errors.New("hours must be positive")
	}
	if hours > maxAdvanceHours {
		return fmt.Errorf("hours must be at most %d", maxAdvanceHours)
	}
	return nil
}
