package security

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// FirebaseVerifier validates Firebase ID tokens minted by the mobile client.
// Used when auth mode is "firebase": the app keeps its existing Firebase Auth
// session and this backend only verifies, never issues.
type FirebaseVerifier struct {
	client *auth.Client
}

func NewFirebaseVerifier(ctx context.Context, credentialsFile string) (*FirebaseVerifier, error) {
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase auth client: %w", err)
	}
	return &FirebaseVerifier{client: client}, nil
}

// Verify checks the ID token and returns the Firebase UID and email claim.
func (v *FirebaseVerifier) Verify(ctx context.Context, idToken string) (uid, email string, err error) {
	token, err := v.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return "", "", ErrInvalidToken
	}
	if e, ok := token.Claims["email"].(string); ok {
		email = e
	}
	return token.UID, email, nil
}
