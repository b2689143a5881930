// Package api wraps every call to the NFC4Care backend: bearer-token
// attachment, response classification, and the forced-logout side effects on
// authentication failures.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"nfc4care/internal/notify"
	"nfc4care/internal/storage"
)

type Client struct {
	rest       *resty.Client
	store      *storage.Store
	expiry     *notify.ExpirationNotifier
	log        zerolog.Logger
	revalidate time.Duration
	validate   *validator.Validate
}

func New(baseURL string, timeout, revalidate time.Duration, store *storage.Store, expiry *notify.ExpirationNotifier, log zerolog.Logger) *Client {
	rest := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Client{
		rest:       rest,
		store:      store,
		expiry:     expiry,
		log:        log,
		revalidate: revalidate,
		validate:   validator.New(),
	}
}

// callOpts tune classification per request.
type callOpts struct {
	// search requests degrade 401/403 to a local error instead of forcing a
	// global logout, so live queries never interrupt typing.
	search bool
	// noEscalate suppresses the forced-logout side effects entirely. Used by
	// the unauthenticated entry points (login, 2FA) where a 401 means bad
	// credentials, and by logout itself.
	noEscalate bool
	// bearer overrides the stored token, e.g. the pending 2FA challenge.
	bearer string
}

func (c *Client) execute(ctx context.Context, method, url string, body, out any, opts callOpts) error {
	req := c.rest.R().SetContext(ctx)

	if opts.bearer != "" {
		req.SetAuthToken(opts.bearer)
	} else if tok, ok := c.store.Get(storage.KeyAuthToken); ok {
		req.SetAuthToken(tok)
	}
	if body != nil {
		req.SetBody(body)
	}
	if out != nil {
		req.SetResult(out)
	}

	resp, err := req.Execute(method, url)
	if err != nil {
		c.log.Debug().Err(err).Str("method", method).Str("url", url).Msg("transport failure")
		return &Error{Kind: KindNetwork, Message: "cannot reach server"}
	}
	return c.classify(ctx, resp, opts)
}

// classify turns a response into nil or a typed *Error, applying the global
// side effects for auth failures. It never panics.
func (c *Client) classify(ctx context.Context, resp *resty.Response, opts callOpts) error {
	status := resp.StatusCode()
	if resp.IsSuccess() {
		return nil
	}

	c.log.Debug().Int("status", status).Str("url", resp.Request.URL).Msg("request failed")

	switch {
	case status == http.StatusUnauthorized:
		if opts.search {
			return &Error{Kind: KindAuth, Status: status, Message: "session expired"}
		}
		if opts.noEscalate {
			// Login and friends: a 401 is bad credentials. Prefer the
			// server's own wording.
			msg := bodyMessage(resp.Body())
			if msg == "" {
				msg = "invalid credentials"
			}
			return &Error{Kind: KindAuth, Status: status, Message: msg}
		}
		c.forceLogout(status)
		return &Error{Kind: KindAuth, Status: status, Message: "authentication required"}

	case status == http.StatusForbidden:
		if opts.search {
			return &Error{Kind: KindForbidden, Status: status, Message: "access denied"}
		}
		if opts.noEscalate {
			return &Error{Kind: KindForbidden, Status: status, Message: "access denied"}
		}
		return c.handleForbidden(ctx)

	case status == http.StatusNotFound:
		return &Error{Kind: KindNotFound, Status: status, Message: "resource not found"}

	case status == http.StatusUnprocessableEntity:
		msg := bodyMessage(resp.Body())
		if msg == "" {
			msg = "invalid data"
		}
		return &Error{Kind: KindValidation, Status: status, Message: msg}

	case status >= http.StatusInternalServerError:
		return &Error{Kind: KindServer, Status: status, Message: "server error, please try again later"}

	default:
		msg := strings.TrimSpace(string(resp.Body()))
		if msg == "" {
			msg = "unexpected HTTP status"
		}
		return &Error{Kind: KindHTTP, Status: status, Message: msg}
	}
}

// handleForbidden decides whether a 403 is a revoked session or a plain
// permission problem. Without a stored token there is nothing to re-check.
// With one, the server is only asked again if the last confirmed validation
// is older than the re-validation interval; a fresher timestamp with a 403
// on top means the session state is stale, so log out directly.
func (c *Client) handleForbidden(ctx context.Context) error {
	tok, ok := c.store.Get(storage.KeyAuthToken)
	if !ok || tok == "" {
		c.forceLogout(http.StatusForbidden)
		return &Error{Kind: KindForbidden, Status: http.StatusForbidden, Message: "access denied"}
	}

	if time.Since(c.lastValidation()) > c.revalidate {
		if err := c.ValidateToken(ctx, tok); err != nil {
			c.forceLogout(http.StatusForbidden)
			return &Error{Kind: KindForbidden, Status: http.StatusForbidden, Message: "session no longer valid"}
		}
		// Token checks out; this 403 is a genuine permission problem.
		return &Error{Kind: KindForbidden, Status: http.StatusForbidden, Message: "access denied"}
	}

	c.forceLogout(http.StatusForbidden)
	return &Error{Kind: KindForbidden, Status: http.StatusForbidden, Message: "session no longer valid"}
}

// forceLogout clears the stored session and raises the expiration signal.
func (c *Client) forceLogout(status int) {
	c.log.Info().Int("status", status).Msg("forcing local logout")
	if err := c.store.Remove(
		storage.KeyAuthToken,
		storage.KeyDoctorData,
		storage.KeyPendingLogin,
		storage.KeyLastTokenValidation,
	); err != nil {
		c.log.Error().Err(err).Msg("failed to clear session state")
	}
	c.expiry.Signal(status)
}

func (c *Client) lastValidation() time.Time {
	raw, ok := c.store.Get(storage.KeyLastTokenValidation)
	if !ok {
		return time.Time{}
	}
	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Time{}
	}
	return time.UnixMilli(ms)
}

func (c *Client) recordValidation() {
	ms := strconv.FormatInt(time.Now().UnixMilli(), 10)
	if err := c.store.Set(storage.KeyLastTokenValidation, ms); err != nil {
		c.log.Error().Err(err).Msg("failed to record token validation")
	}
}

// bodyMessage pulls a human-readable message out of a JSON error body, or
// returns the raw text for non-JSON bodies.
func bodyMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
		return ""
	}
	return strings.TrimSpace(string(body))
}

func (c *Client) validatePayload(v any) error {
	if err := c.validate.Struct(v); err != nil {
		return &Error{Kind: KindValidation, Message: err.Error()}
	}
	return nil
}
