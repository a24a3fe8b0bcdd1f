package middleware

import (
	"context"
	"encoding/base64"
	"net/http"
	"os"
	"strings"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

// Context keys for authenticated request data.
type contextKey string

const UserIDKey contextKey = "user_id"

var authClient *fbauth.Client

// InitializeFirebase initializes the Firebase Admin SDK from environment
// credentials. With no credentials configured it leaves the client nil and
// the middleware runs in dev mode with token checks disabled.
func InitializeFirebase() error {
	credentials := loadServiceAccount()
	if credentials == nil {
		log.Warn().Msg("no Firebase credentials configured, auth checks disabled")
		return nil
	}

	projectID := os.Getenv("FIREBASE_PROJECT_ID")
	if projectID == "" {
		projectID = "nextgen-accounts"
	}

	app, err := firebase.NewApp(context.Background(),
		&firebase.Config{ProjectID: projectID},
		option.WithCredentialsJSON(credentials))
	if err != nil {
		return err
	}

	authClient, err = app.Auth(context.Background())
	if err != nil {
		return err
	}

	log.Info().Str("project", projectID).Msg("Firebase Admin SDK initialized")
	return nil
}

// loadServiceAccount reads the service account from the environment, raw JSON
// first, then base64.
func loadServiceAccount() []byte {
	if raw := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON"); raw != "" {
		return []byte(raw)
	}
	if encoded := os.Getenv("FIREBASE_SERVICE_ACCOUNT_BASE64"); encoded != "" {
		decoded, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			log.Error().Err(err).Msg("failed to decode base64 Firebase credentials")
			return nil
		}
		return decoded
	}
	return nil
}

// AuthClient returns the initialized Firebase auth client, or nil in dev mode.
func AuthClient() *fbauth.Client {
	return authClient
}

// AuthMiddleware verifies the Firebase ID token from the Authorization header
// and stores the user id in the request context.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// CORS preflight never carries a token
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		if authClient == nil {
			// Dev mode: pretend the fixed dev user is signed in.
			ctx := context.WithValue(r.Context(), UserIDKey, "dev-user")
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}

		idToken := extractToken(r.Header.Get("Authorization"))
		if idToken == "" {
			http.Error(w, "Unauthorized: no token provided", http.StatusUnauthorized)
			return
		}

		token, err := authClient.VerifyIDToken(r.Context(), idToken)
		if err != nil {
			log.Warn().Err(err).Msg("token verification failed")
			http.Error(w, "Unauthorized: invalid token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, token.UID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// extractToken gets the bearer token from the Authorization header.
func extractToken(authHeader string) string {
	if authHeader == "" {
		return ""
	}
	parts := strings.Split(authHeader, "Bearer ")
	if len(parts) != 2 {
		return ""
	}
	return parts[1]
}

// GetUserIDFromContext retrieves the authenticated user id, or "" when the
// request is unauthenticated.
func GetUserIDFromContext(r *http.Request) string {
	userID, ok := r.Context().Value(UserIDKey).(string)
	if !ok {
		return ""
	}
	return userID
}
