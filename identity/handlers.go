package identity

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"sabor/access"
	"sabor/models"
	"sabor/rdx"
	"sabor/utils"

	"github.com/julienschmidt/httprouter"
)

// sessionsHash is the Redis hash holding the active token per credential.
const sessionsHash = "sessions"

type Handler struct {
	owners    *Owners
	customers *Customers
	profiles  ProfileRepo
	broker    *Broker
}

func NewHandler(owners *Owners, customers *Customers, profiles ProfileRepo, broker *Broker) *Handler {
	return &Handler{owners: owners, customers: customers, profiles: profiles, broker: broker}
}

func (h *Handler) OwnerSetup(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	if err := h.owners.Setup(r.Context(), input.Email, input.Password, input.Name); err != nil {
		writeErr(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"ok": true})
}

func (h *Handler) OwnerSignIn(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	session, token, err := h.owners.SignIn(r.Context(), input.Email, input.Password)
	if err != nil {
		writeErr(w, err)
		return
	}
	storeToken(session.CredentialID, token)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"token": token, "session": session})
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
		Phone    string `json:"phone"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	session, token, err := h.customers.Register(r.Context(), input.Email, input.Password, input.Name, input.Phone)
	if err != nil {
		writeErr(w, err)
		return
	}
	storeToken(session.CredentialID, token)
	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"token": token, "session": session})
}

func (h *Handler) SignIn(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	session, token, err := h.customers.SignIn(r.Context(), input.Email, input.Password)
	if err != nil {
		writeErr(w, err)
		return
	}
	storeToken(session.CredentialID, token)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"token": token, "session": session})
}

func (h *Handler) SignOut(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	session := access.SessionFrom(r.Context())
	if session != nil && rdx.Conn != nil {
		if _, err := rdx.RdxHdel(sessionsHash, session.CredentialID); err != nil {
			log.Printf("Error removing token from Redis: %v", err)
		}
	}
	h.broker.Publish(nil)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true})
}

// Me returns the caller's session with a freshly loaded profile.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	session := access.SessionFrom(r.Context())
	if session == nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Missing session")
		return
	}
	if session.Kind == models.KindCustomer {
		if profile, err := h.profiles.FindByCredentialID(r.Context(), session.CredentialID); err == nil {
			session.Profile = profile
		}
	}
	utils.RespondWithJSON(w, http.StatusOK, session)
}

func (h *Handler) RequestReset(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	if err := h.customers.ResetPassword(r.Context(), input.Email); err != nil {
		writeErr(w, err)
		return
	}
	// Same response whether or not the email is registered
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true})
}

func (h *Handler) ConfirmReset(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	if err := h.customers.ConfirmReset(r.Context(), input.Token, input.Password); err != nil {
		writeErr(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true})
}

func (h *Handler) SetAdminFlag(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var input struct {
		IsAdmin int `json:"isAdmin"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	if err := h.customers.SetAdminFlag(r.Context(), ps.ByName("id"), input.IsAdmin); err != nil {
		writeErr(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true})
}

func storeToken(credentialID, token string) {
	if rdx.Conn == nil {
		return
	}
	if err := rdx.RdxHset(sessionsHash, credentialID, token); err != nil {
		log.Printf("Redis token storage failed: %v", err)
	}
}

func writeErr(w http.ResponseWriter, err error) {
	var ve *models.ValidationError
	switch {
	case errors.As(err, &ve):
		utils.RespondWithJSON(w, http.StatusBadRequest, utils.M{"error": ve.Reason, "field": ve.Field})
	case errors.Is(err, models.ErrUnauthorized):
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, models.ErrAlreadyConfigured):
		utils.RespondWithError(w, http.StatusConflict, "Setup already completed")
	case errors.Is(err, models.ErrNotFound):
		utils.RespondWithError(w, http.StatusNotFound, "Not found")
	default:
		log.Printf("identity: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal error")
	}
}
