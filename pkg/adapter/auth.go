package adapter

import (
	"context"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"github.com/m-mizutani/aiforge/pkg/model"
	"github.com/m-mizutani/goerr/v2"
)

// TokenVerifier resolves a bearer credential to a stable owner ID
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (string, error)
}

// firebaseVerifier implements TokenVerifier using Firebase Auth ID tokens
type firebaseVerifier struct {
	client *auth.Client
}

// NewFirebaseVerifier creates a TokenVerifier backed by Firebase Auth
func NewFirebaseVerifier(ctx context.Context, projectID string) (TokenVerifier, error) {
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to initialize firebase app",
			goerr.V("project", projectID))
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firebase auth client")
	}

	return &firebaseVerifier{client: client}, nil
}

func (v *firebaseVerifier) Verify(ctx context.Context, token string) (string, error) {
	decoded, err := v.client.VerifyIDToken(ctx, token)
	if err != nil {
		return "", goerr.Wrap(err, "invalid credential", goerr.T(model.ErrTagUnauthorized))
	}
	return decoded.UID, nil
}
