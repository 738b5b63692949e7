package api

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
	"github.com/tidwall/gjson"

	"github.com/desirppc/parcelace/internal/client/models"
	"github.com/desirppc/parcelace/internal/client/session"
	"github.com/desirppc/parcelace/internal/common"
	"github.com/desirppc/parcelace/internal/logging"
)

// expiryDebounce bounds how often concurrent failing requests may each
// broadcast the expiry signal. One detection burst, one broadcast.
const expiryDebounce = 2 * time.Second

// RestyClient talks to the backend over REST with bearer auth.
type RestyClient struct {
	http   *resty.Client
	tokens TokenSource
	bus    *session.ExpiryBus
	log    logging.Logger

	mu         sync.Mutex
	lastExpiry time.Time
}

// NewRestyClient builds a client against baseURL. tokens may be nil for a
// pre-login client; bus may be nil when no expiry consumer exists (tests).
func NewRestyClient(baseURL string, tokens TokenSource, bus *session.ExpiryBus, log logging.Logger) *RestyClient {
	if log == nil {
		log = logging.NewNopLogger()
	}
	c := resty.New()
	c.SetBaseURL(baseURL)
	c.SetHeader("Accept", "application/json")
	return &RestyClient{http: c, tokens: tokens, bus: bus, log: log}
}

// Request performs one API call. Transport failures come back wrapped in
// common.ErrUnavailable; an expired session comes back as
// common.ErrSessionExpired after the expiry signal has been broadcast.
func (c *RestyClient) Request(ctx context.Context, endpoint, method string, body any) (*models.APIResponse, error) {
	req := c.http.R().SetContext(ctx)

	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.SetHeader(common.AuthorizationHeaderName, "Bearer "+token)
		}
	}
	if body != nil {
		req.SetHeader("Content-Type", "application/json")
		req.SetBody(body)
	}

	resp, err := req.Execute(method, endpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}

	raw := resp.Body()

	if c.detectExpiry(ctx, resp.StatusCode(), raw) {
		return nil, common.ErrSessionExpired
	}

	var envelope models.APIResponse
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode response from %s: %w", endpoint, err)
	}
	if envelope.Status == 0 {
		envelope.Status = resp.StatusCode()
	}
	return &envelope, nil
}

// detectExpiry applies the producer contract: HTTP 401, or a success-shaped
// payload whose message is the expiry sentinel, means the session is gone.
// The broadcast is debounced so simultaneous failing requests coalesce into
// a single signal.
func (c *RestyClient) detectExpiry(ctx context.Context, status int, body []byte) bool {
	expired := status == http.StatusUnauthorized ||
		gjson.GetBytes(body, "message").String() == common.SessionExpiredMessage
	if !expired {
		return false
	}

	c.mu.Lock()
	fire := time.Since(c.lastExpiry) > expiryDebounce
	if fire {
		c.lastExpiry = time.Now()
	}
	c.mu.Unlock()

	if fire && c.bus != nil {
		c.log.Info(ctx, "backend reports expired session, broadcasting")
		c.bus.Broadcast()
	}
	return true
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginData struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// Login exchanges credentials for the user record and bearer token.
func (c *RestyClient) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	envelope, err := c.Request(ctx, "/login", http.MethodPost, loginRequest{Email: email, Password: password})
	if err != nil {
		return nil, "", err
	}
	if !envelope.Success {
		if envelope.Status == http.StatusUnauthorized {
			return nil, "", common.ErrUnauthorized
		}
		return nil, "", fmt.Errorf("login failed: %s", envelope.Message)
	}

	var data loginData
	if err := envelope.DecodeData(&data); err != nil {
		return nil, "", fmt.Errorf("failed to decode login payload: %w", err)
	}
	if data.User == nil || data.Token == "" {
		return nil, "", fmt.Errorf("login response missing user or token")
	}
	return data.User, data.Token, nil
}

// Profile fetches the current user record.
func (c *RestyClient) Profile(ctx context.Context) (*models.User, error) {
	envelope, err := c.Request(ctx, "/profile", http.MethodGet, nil)
	if err != nil {
		return nil, err
	}
	if !envelope.Success {
		return nil, fmt.Errorf("profile fetch failed: %s", envelope.Message)
	}
	var user models.User
	if err := envelope.DecodeData(&user); err != nil {
		return nil, fmt.Errorf("failed to decode profile payload: %w", err)
	}
	return &user, nil
}

// Wallet fetches the wallet balance snapshot.
func (c *RestyClient) Wallet(ctx context.Context) (*models.Wallet, error) {
	envelope, err := c.Request(ctx, "/wallet/balance", http.MethodGet, nil)
	if err != nil {
		return nil, err
	}
	if !envelope.Success {
		return nil, fmt.Errorf("wallet fetch failed: %s", envelope.Message)
	}
	var wallet models.Wallet
	if err := envelope.DecodeData(&wallet); err != nil {
		return nil, fmt.Errorf("failed to decode wallet payload: %w", err)
	}
	return &wallet, nil
}

// Close releases idle transport connections.
func (c *RestyClient) Close() error {
	c.http.GetClient().CloseIdleConnections()
	return nil
}
