package myrentcar

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/osse101/FleetSync_Go/internal/domain"
	"github.com/osse101/FleetSync_Go/internal/logger"
	"github.com/osse101/FleetSync_Go/internal/metrics"
)

const maxErrorBody = 512

// Client talks to the rental platform with a cookie session. A request
// rejected with 401 triggers exactly one fresh login and retry.
type Client struct {
	BaseURL  string
	Username string
	Password string
	Client   *http.Client

	mu      sync.Mutex
	cookies []*http.Cookie
}

// NewClient creates a new rental platform client
func NewClient(baseURL, username, password string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		BaseURL:  strings.TrimRight(baseURL, "/"),
		Username: username,
		Password: password,
		Client:   &http.Client{Timeout: timeout},
	}
}

// Configured reports whether credentials are present
func (c *Client) Configured() bool {
	return c != nil && c.BaseURL != "" && c.Username != "" && c.Password != ""
}

// login opens a new session and stores its cookies
func (c *Client) login(ctx context.Context) error {
	body, err := json.Marshal(loginRequest{Username: c.Username, Password: c.Password})
	if err != nil {
		return fmt.Errorf("failed to marshal login: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+PathLogin, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.Client.Do(req)
	if err != nil {
		metrics.RecordUpstream(SourceLabel, 0)
		return fmt.Errorf("myrentcar login: %w", err)
	}
	defer resp.Body.Close()
	metrics.RecordUpstream(SourceLabel, resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("%w: myrentcar login returned %d: %s", domain.ErrUpstreamAuth, resp.StatusCode, msg)
	}

	cookies := resp.Cookies()
	if len(cookies) == 0 {
		return fmt.Errorf("%w: myrentcar login returned no session cookie", domain.ErrUpstreamAuth)
	}

	c.mu.Lock()
	c.cookies = cookies
	c.mu.Unlock()

	logger.FromContext(ctx).Debug(LogMsgSessionOpened, "cookies", len(cookies))
	return nil
}

func (c *Client) session() []*http.Cookie {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cookies
}

// get performs an authenticated GET, logging in first if there is no session
func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	if !c.Configured() {
		return ErrNotConfigured
	}
	if len(c.session()) == 0 {
		if err := c.login(ctx); err != nil {
			return err
		}
	}

	status, body, err := c.send(ctx, path, query)
	if err != nil {
		return err
	}
	if status == http.StatusUnauthorized {
		logger.FromContext(ctx).Info(LogMsgRelogin, "path", path)
		if err := c.login(ctx); err != nil {
			return err
		}
		status, body, err = c.send(ctx, path, query)
		if err != nil {
			return err
		}
		if status == http.StatusUnauthorized {
			return fmt.Errorf("%w: myrentcar %s rejected after re-login", domain.ErrUpstreamAuth, path)
		}
	}
	if status < 200 || status >= 300 {
		if len(body) > maxErrorBody {
			body = body[:maxErrorBody]
		}
		return &StatusError{Path: path, StatusCode: status, Body: string(body)}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return nil
}

func (c *Client) send(ctx context.Context, path string, query url.Values) (int, []byte, error) {
	u := c.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	for _, ck := range c.session() {
		req.AddCookie(ck)
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		metrics.RecordUpstream(SourceLabel, 0)
		return 0, nil, fmt.Errorf("myrentcar %s: %w", path, err)
	}
	defer resp.Body.Close()
	metrics.RecordUpstream(SourceLabel, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to read %s response: %w", path, err)
	}
	return resp.StatusCode, body, nil
}

// VehicleIDs lists every vehicle id the account can see
func (c *Client) VehicleIDs(ctx context.Context) ([]int64, error) {
	var ids idList
	if err := c.get(ctx, PathVehicleIDs, nil, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// VehicleDetails fetches the full payload for the given ids in one request
func (c *Client) VehicleDetails(ctx context.Context, ids []int64) ([]VehicleDetail, error) {
	q := url.Values{}
	for _, id := range ids {
		q.Add(ParamIDs, strconv.FormatInt(id, 10))
	}
	var details detailList
	if err := c.get(ctx, PathVehicleDetails, q, &details); err != nil {
		return nil, err
	}
	return details, nil
}

// FetchVehicles lists ids then fetches details in sequential batches. An
// unconfigured client and an account without the fleet module yield no
// vehicles.
func (c *Client) FetchVehicles(ctx context.Context) ([]VehicleDetail, error) {
	log := logger.FromContext(ctx)
	if !c.Configured() {
		log.Debug(LogMsgNotConfigured)
		return []VehicleDetail{}, nil
	}

	ids, err := c.VehicleIDs(ctx)
	if errors.Is(err, domain.ErrModuleUnavailable) {
		log.Warn(LogMsgModuleUnavailable, "error", err)
		return []VehicleDetail{}, nil
	}
	if err != nil {
		return nil, err
	}

	out := make([]VehicleDetail, 0, len(ids))
	for start := 0; start < len(ids); start += DetailBatchSize {
		end := min(start+DetailBatchSize, len(ids))
		batch, err := c.VehicleDetails(ctx, ids[start:end])
		if err != nil {
			return nil, fmt.Errorf("detail batch %d-%d: %w", start, end, err)
		}
		log.Debug(LogMsgBatchFetched, "from", start, "to", end, "received", len(batch))
		out = append(out, batch...)
	}
	return out, nil
}
