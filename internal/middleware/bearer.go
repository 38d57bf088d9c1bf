package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/mycontacts/mycontacts/internal/apperr"
	"github.com/mycontacts/mycontacts/internal/auth"
)

const identityLocal = "identity"

// TokenVerifier resolves a bearer token to the identity it was issued for.
type TokenVerifier interface {
	Verify(token string) (auth.Identity, error)
}

// BearerAuth validates the `Authorization: Bearer <token>` header and stores
// the verified identity in the request context. A missing or malformed header
// fails with apperr.ErrUnauthenticated, a bad or expired token with
// apperr.ErrInvalidToken.
func BearerAuth(tokens TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authz := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
		if authz == "" {
			return apperr.ErrUnauthenticated
		}
		scheme, token, found := strings.Cut(authz, " ")
		token = strings.TrimSpace(token)
		if !found || !strings.EqualFold(scheme, "bearer") || token == "" {
			return apperr.ErrUnauthenticated
		}

		id, err := tokens.Verify(token)
		if err != nil {
			return err
		}

		c.Locals(identityLocal, id)
		c.SetUserContext(auth.WithIdentity(c.UserContext(), id))
		return c.Next()
	}
}

// IdentityFrom returns the identity stored by BearerAuth.
func IdentityFrom(c *fiber.Ctx) (auth.Identity, bool) {
	id, ok := c.Locals(identityLocal).(auth.Identity)
	return id, ok && id.UserID != ""
}
