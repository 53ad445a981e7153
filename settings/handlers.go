package settings

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"sabor/mq"
	"sabor/schedule"
	"sabor/utils"

	"github.com/julienschmidt/httprouter"
)

type Handler struct {
	repo Repo
}

func NewHandler(repo Repo) *Handler {
	return &Handler{repo: repo}
}

// GetSchedule is public; the booking form reads it to render opening hours.
func (h *Handler) GetSchedule(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	s, err := h.repo.Get(r.Context())
	if err != nil {
		log.Printf("settings: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, s)
}

// UpdateSchedule replaces the operating-hours texts. Admin only.
func (h *Handler) UpdateSchedule(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		Weekdays string `json:"weekdays"`
		Weekends string `json:"weekends"`
		Holidays string `json:"holidays"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	s, err := h.repo.Get(r.Context())
	if err != nil {
		log.Printf("settings: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal error")
		return
	}
	s.Weekdays = input.Weekdays
	s.Weekends = input.Weekends
	s.Holidays = input.Holidays

	if err := h.repo.Put(r.Context(), s); err != nil {
		log.Printf("settings: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal error")
		return
	}

	mq.Emit(r.Context(), "settings-updated", settingsID)
	utils.RespondWithJSON(w, http.StatusOK, s)
}

// GetAvailability returns the bookable slots for a date, derived from the
// stored schedule. Unparsable schedule text degrades to an empty list.
func (h *Handler) GetAvailability(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	date, err := time.Parse("2006-01-02", r.URL.Query().Get("date"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	interval := schedule.DefaultInterval
	if raw := r.URL.Query().Get("interval"); raw != "" {
		interval, err = strconv.Atoi(raw)
		if err != nil || interval <= 0 {
			utils.RespondWithError(w, http.StatusBadRequest, "interval must be a positive integer")
			return
		}
	}

	s, err := h.repo.Get(r.Context())
	if err != nil {
		log.Printf("settings: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal error")
		return
	}

	slots := schedule.Slots(*s, date, interval)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"date":  date.Format("2006-01-02"),
		"slots": slots,
	})
}
