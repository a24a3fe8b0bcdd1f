package auth

import (
	"context"
	"fmt"

	fbauth "firebase.google.com/go/v4/auth"
)

// User is the session user handle delivered by the identity provider.
type User struct {
	UID         string
	Email       string
	DisplayName string
}

// AuthError is an identity-provider rejection (bad credential, disabled
// account, malformed token). The provider's message is surfaced verbatim.
type AuthError struct {
	Op  string
	Err error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("auth: %s: %v", e.Op, e.Err)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// IdentityProvider is the external authentication boundary. Session lifetime
// itself (tokens, cookies) is the provider's business; this layer only
// creates credentials, verifies session tokens and revokes sessions.
type IdentityProvider interface {
	SignUp(ctx context.Context, email, password, displayName string) (*User, error)
	VerifyToken(ctx context.Context, idToken string) (*User, error)
	SignOut(ctx context.Context, uid string) error
}

// FirebaseProvider implements IdentityProvider on the Firebase Admin SDK.
type FirebaseProvider struct {
	client *fbauth.Client
}

func NewFirebaseProvider(client *fbauth.Client) *FirebaseProvider {
	return &FirebaseProvider{client: client}
}

func (p *FirebaseProvider) SignUp(ctx context.Context, email, password, displayName string) (*User, error) {
	params := (&fbauth.UserToCreate{}).
		Email(email).
		Password(password).
		DisplayName(displayName)

	record, err := p.client.CreateUser(ctx, params)
	if err != nil {
		return nil, &AuthError{Op: "sign up", Err: err}
	}
	return &User{
		UID:         record.UID,
		Email:       record.Email,
		DisplayName: record.DisplayName,
	}, nil
}

func (p *FirebaseProvider) VerifyToken(ctx context.Context, idToken string) (*User, error) {
	token, err := p.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, &AuthError{Op: "verify token", Err: err}
	}

	user := &User{UID: token.UID}
	if email, ok := token.Claims["email"].(string); ok {
		user.Email = email
	}
	if name, ok := token.Claims["name"].(string); ok {
		user.DisplayName = name
	}
	return user, nil
}

func (p *FirebaseProvider) SignOut(ctx context.Context, uid string) error {
	if err := p.client.RevokeRefreshTokens(ctx, uid); err != nil {
		return &AuthError{Op: "sign out", Err: err}
	}
	return nil
}
