package auth

import (
	"net/http"

	"github.com/dmitrijs2005/robotika/internal/common"
	"github.com/dmitrijs2005/robotika/internal/server/models"
)

// TokenVerifier is the part of TokenService the gate depends on.
type TokenVerifier interface {
	Verify(tokenString string) (*Identity, error)
}

// Authenticate derives the caller identity from the session cookie. It
// returns false when the cookie is missing or its token does not verify;
// the two cases are deliberately indistinguishable to the caller.
func Authenticate(r *http.Request, tokens TokenVerifier) (*Identity, bool) {
	cookie, err := r.Cookie(common.SessionCookieName)
	if err != nil || cookie.Value == "" {
		return nil, false
	}

	identity, err := tokens.Verify(cookie.Value)
	if err != nil {
		return nil, false
	}

	return identity, true
}

// Authorize is an exact role match. There is no role hierarchy: an admin is
// not implicitly a teacher.
func Authorize(identity *Identity, required models.Role) bool {
	return identity != nil && required.Valid() && identity.Role == required
}
