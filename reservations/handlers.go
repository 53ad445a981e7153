package reservations

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"sabor/access"
	"sabor/models"
	"sabor/mq"
	"sabor/utils"

	"github.com/julienschmidt/httprouter"
)

type Handler struct {
	svc      *Service
	profiles access.ProfileSource
}

func NewHandler(svc *Service, profiles access.ProfileSource) *Handler {
	return &Handler{svc: svc, profiles: profiles}
}

// Create takes the public booking form. No session required; the contact
// fields identify the customer.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input CreateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	res, err := h.svc.Create(r.Context(), input)
	if err != nil {
		writeErr(w, err)
		return
	}

	mq.Emit(r.Context(), "reservation-created", res.ID)
	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"reservation": res})
}

// Mine lists the reservations belonging to the signed-in customer, matched by
// the profile's email.
func (h *Handler) Mine(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	session := access.SessionFrom(r.Context())
	if session == nil || session.Kind != models.KindCustomer {
		utils.RespondWithError(w, http.StatusUnauthorized, "Missing session")
		return
	}

	profile, err := h.profiles.FindByCredentialID(r.Context(), session.CredentialID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			utils.RespondWithJSON(w, http.StatusOK, utils.M{"reservations": []models.Reservation{}})
			return
		}
		writeErr(w, err)
		return
	}

	list, err := h.svc.ListByEmail(r.Context(), profile.Email)
	if err != nil {
		writeErr(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"reservations": list})
}

// ListAll serves the admin dashboard table. Routes wrap this with the access
// gate.
func (h *Handler) ListAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	list, err := h.svc.ListAll(r.Context())
	if err != nil {
		writeErr(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"reservations": list})
}

// UpdateStatus confirms or cancels a pending reservation. Admin only.
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var input struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	res, err := h.svc.UpdateStatus(r.Context(), ps.ByName("id"), input.Status)
	if err != nil {
		writeErr(w, err)
		return
	}

	mq.Emit(r.Context(), "reservation-updated", res.ID)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"reservation": res})
}

// Delete removes a reservation. Admin only, allowed from any status.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")
	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeErr(w, err)
		return
	}

	mq.Emit(r.Context(), "reservation-deleted", id)
	w.WriteHeader(http.StatusNoContent)
}

func writeErr(w http.ResponseWriter, err error) {
	var ve *models.ValidationError
	switch {
	case errors.As(err, &ve):
		utils.RespondWithJSON(w, http.StatusBadRequest, utils.M{"error": ve.Reason, "field": ve.Field})
	case errors.Is(err, models.ErrNotFound):
		utils.RespondWithError(w, http.StatusNotFound, "Reservation not found")
	case errors.Is(err, models.ErrInvalidTransition):
		utils.RespondWithError(w, http.StatusConflict, "Status can no longer change")
	default:
		log.Printf("reservations: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal error")
	}
}
