package access

import (
	"context"
	"net/http"

	"sabor/globals"
	"sabor/models"

	"github.com/julienschmidt/httprouter"
)

// ProfileSource is the read side of the customer profile store the gate
// re-derives admin status from. No result is cached.
type ProfileSource interface {
	FindByCredentialID(ctx context.Context, credentialID string) (*models.CustomerProfile, error)
}

// Gate decides whether a session may enter the admin area and mutate
// reservations. Every decision fails closed: no session, no profile record or
// a store error all mean no.
type Gate struct {
	profiles ProfileSource
}

func NewGate(profiles ProfileSource) *Gate {
	return &Gate{profiles: profiles}
}

// IsAdmin is true only for a customer session whose profile record carries
// isAdmin == 1.
func (g *Gate) IsAdmin(ctx context.Context, session *models.Session) bool {
	if session == nil || session.Kind != models.KindCustomer {
		return false
	}
	profile, err := g.profiles.FindByCredentialID(ctx, session.CredentialID)
	if err != nil || profile == nil {
		return false
	}
	return profile.IsAdmin == 1
}

// IsOwnerSession reports whether the session belongs to the bootstrap owner.
func (g *Gate) IsOwnerSession(session *models.Session) bool {
	return session != nil && session.Kind == models.KindOwner
}

// SessionFrom rebuilds the principal the auth middleware attached to the
// request context. Nil when the request is anonymous.
func SessionFrom(ctx context.Context) *models.Session {
	kind, _ := ctx.Value(globals.SessionKindKey).(string)
	credentialID, _ := ctx.Value(globals.CredentialIDKey).(string)
	if kind == "" || credentialID == "" {
		return nil
	}
	return &models.Session{Kind: kind, CredentialID: credentialID}
}

// RequireAdmin guards the admin dashboard routes. Layered after Authenticate.
// The owner principal passes too; it is the actor that flags the first admin.
func (g *Gate) RequireAdmin(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		session := SessionFrom(r.Context())
		if !g.IsAdmin(r.Context(), session) && !g.IsOwnerSession(session) {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		next(w, r, ps)
	}
}
