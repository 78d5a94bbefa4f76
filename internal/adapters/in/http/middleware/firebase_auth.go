// internal/adapters/in/http/middleware/firebase_auth.go
package middleware

import (
	"fmt"
	"net/http"
	"strings"

	fbauth "firebase.google.com/go/v4/auth"
)

// FirebaseAuthClient は firebase auth クライアントのエイリアス。
type FirebaseAuthClient = fbauth.Client

// FederatedIdentity is what a verified provider token asserts about the user.
type FederatedIdentity struct {
	UID   string
	Email string
	Name  string
}

// VerifyBearer checks the Authorization: Bearer <ID_TOKEN> header against
// Firebase and returns the asserted identity. The token must carry a
// verified email claim.
func VerifyBearer(r *http.Request, client *FirebaseAuthClient) (FederatedIdentity, error) {
	var zero FederatedIdentity

	if client == nil {
		return zero, fmt.Errorf("firebase auth not initialized")
	}

	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return zero, fmt.Errorf("missing bearer token")
	}
	idToken := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	if idToken == "" {
		return zero, fmt.Errorf("empty bearer token")
	}

	token, err := client.VerifyIDToken(r.Context(), idToken)
	if err != nil {
		return zero, fmt.Errorf("invalid token: %w", err)
	}

	id := FederatedIdentity{UID: strings.TrimSpace(token.UID)}
	if id.UID == "" {
		return zero, fmt.Errorf("invalid uid in token")
	}

	if raw, ok := token.Claims["email"]; ok {
		if e, ok2 := raw.(string); ok2 {
			id.Email = strings.TrimSpace(strings.ToLower(e))
		}
	}
	if id.Email == "" {
		return zero, fmt.Errorf("token carries no email claim")
	}

	if raw, ok := token.Claims["name"]; ok {
		if n, ok2 := raw.(string); ok2 {
			id.Name = strings.TrimSpace(n)
		}
	}

	return id, nil
}
