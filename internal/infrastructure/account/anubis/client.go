package anubis

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/cricket-club/internal/domain/user"
	"github.com/riskibarqy/cricket-club/internal/platform/logging"
	"github.com/riskibarqy/cricket-club/internal/platform/resilience"
	"github.com/riskibarqy/cricket-club/internal/usecase"
)

const (
	adminKeyHeader      = "x-admin-key"
	maxResponseBytes    = 1 << 20
	defaultCacheTTL     = 30 * time.Second
	defaultCacheEntries = 10000
)

// Options tunes the principal cache. Zero values fall back to defaults.
type Options struct {
	CacheTTL        time.Duration
	CacheMaxEntries int
}

// Client verifies bearer tokens against the Anubis introspection endpoint.
type Client struct {
	httpClient    *http.Client
	introspectURL string
	adminKey      string
	breaker       *resilience.CircuitBreaker
	cache         *principalCache
	logger        *logging.Logger
}

func NewClient(
	httpClient *http.Client,
	baseURL, introspectPath, adminKey string,
	breakerCfg resilience.CircuitBreakerConfig,
	opts Options,
	logger *logging.Logger,
) *Client {
	if logger == nil {
		logger = logging.Default()
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Second}
	}
	if opts.CacheTTL == 0 {
		opts.CacheTTL = defaultCacheTTL
	}
	if opts.CacheMaxEntries <= 0 {
		opts.CacheMaxEntries = defaultCacheEntries
	}

	breakerCfg.OnStateChange = func(from, to resilience.CircuitState) {
		logger.Warn("anubis circuit state changed", "from", string(from), "to", string(to))
	}

	return &Client{
		httpClient:    httpClient,
		introspectURL: buildURL(baseURL, introspectPath),
		adminKey:      strings.TrimSpace(adminKey),
		breaker:       resilience.NewCircuitBreaker(breakerCfg),
		cache:         newPrincipalCache(opts.CacheTTL, opts.CacheMaxEntries),
		logger:        logger,
	}
}

func (c *Client) VerifyAccessToken(ctx context.Context, token string) (user.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return user.Principal{}, crerr.Wrap(usecase.ErrUnauthorized, "token is required")
	}

	cacheKey := hashToken(token)
	if principal, ok := c.cache.Get(cacheKey); ok {
		return principal, nil
	}

	var principal user.Principal
	err := c.breaker.Do(func() error {
		var err error
		principal, err = c.introspect(ctx, token)
		return err
	}, isCircuitFailure)
	if crerr.Is(err, resilience.ErrCircuitOpen) {
		return user.Principal{}, crerr.WithSecondaryError(
			crerr.Wrap(usecase.ErrDependencyUnavailable, "anubis circuit open"), err)
	}
	if err != nil {
		return user.Principal{}, err
	}

	c.cache.Set(cacheKey, principal)
	return principal, nil
}

func (c *Client) introspect(ctx context.Context, token string) (user.Principal, error) {
	encoded, err := sonic.Marshal(introspectRequest{Token: token})
	if err != nil {
		return user.Principal{}, crerr.Wrap(err, "marshal introspect request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.introspectURL, bytes.NewReader(encoded))
	if err != nil {
		return user.Principal{}, crerr.Wrap(err, "create introspect request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.adminKey != "" {
		req.Header.Set(adminKeyHeader, c.adminKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return user.Principal{}, transientErr(err, "request introspection to anubis")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return user.Principal{}, transientErr(err, "read introspect response")
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return user.Principal{}, crerr.Wrap(usecase.ErrUnauthorized, "introspection denied")
	case resp.StatusCode == http.StatusForbidden:
		// 403 means our admin key was rejected, not the caller's token.
		c.logger.WarnContext(ctx, "anubis rejected admin key", "status_code", resp.StatusCode)
		return user.Principal{}, crerr.Wrap(usecase.ErrDependencyUnavailable, "anubis rejected admin key")
	case resp.StatusCode >= http.StatusInternalServerError:
		c.logger.WarnContext(ctx, "anubis introspection failed", "status_code", resp.StatusCode)
		return user.Principal{}, transientErr(crerr.Newf("status %d", resp.StatusCode), "anubis introspection failed")
	case resp.StatusCode != http.StatusOK:
		return user.Principal{}, crerr.Wrapf(usecase.ErrDependencyUnavailable, "anubis introspection status %d", resp.StatusCode)
	}

	var decoded introspectResponse
	if err := sonic.Unmarshal(body, &decoded); err != nil {
		return user.Principal{}, crerr.Wrap(err, "unmarshal introspect response")
	}
	if !decoded.Active {
		return user.Principal{}, crerr.Wrap(usecase.ErrUnauthorized, "inactive token")
	}
	if strings.TrimSpace(decoded.UserID) == "" {
		return user.Principal{}, crerr.New("invalid introspect response: user_id is empty")
	}

	return user.Principal{
		UserID: decoded.UserID,
		Email:  decoded.Email,
		Roles:  append([]string(nil), decoded.Roles...),
	}, nil
}

func transientErr(cause error, msg string) error {
	return &transientError{err: crerr.WithSecondaryError(crerr.Wrap(usecase.ErrDependencyUnavailable, msg), cause)}
}

type introspectRequest struct {
	Token string `json:"token"`
}

type introspectResponse struct {
	Active bool     `json:"active"`
	UserID string   `json:"user_id"`
	Email  string   `json:"email"`
	Roles  []string `json:"roles"`
}
