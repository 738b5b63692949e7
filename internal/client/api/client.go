// Package api is the HTTP boundary to the ParcelAce backend. Besides
// issuing requests it owns the producer side of the session-expiry
// contract: a 401, or a success-shaped body carrying the expiry sentinel
// message, broadcasts on the expiry bus before the response is returned.
package api

import (
	"context"

	"github.com/desirppc/parcelace/internal/client/models"
)

// Client is the backend surface the session layer consumes. The concrete
// implementation is RestyClient; tests substitute fakes.
type Client interface {
	// Request performs one API call and returns the decoded envelope.
	Request(ctx context.Context, endpoint, method string, body any) (*models.APIResponse, error)

	// Login exchanges credentials for the user record and bearer token.
	Login(ctx context.Context, email, password string) (*models.User, string, error)

	// Profile fetches the current user record.
	Profile(ctx context.Context) (*models.User, error)

	// Wallet fetches the wallet balance snapshot.
	Wallet(ctx context.Context) (*models.Wallet, error)

	Close() error
}

// TokenSource supplies the bearer token attached to outbound requests.
// The session manager satisfies it; an empty token means no auth header.
type TokenSource interface {
	Token() string
}
