package hr

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"iter"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/osse101/FleetSync_Go/internal/domain"
	"github.com/osse101/FleetSync_Go/internal/logger"
	"github.com/osse101/FleetSync_Go/internal/metrics"
)

const maxErrorBody = 512

// Client reads the HR platform's REST API
type Client struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewClient creates a new HR client
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		APIKey:  apiKey,
		Client:  &http.Client{Timeout: timeout},
	}
}

// Configured reports whether credentials are present
func (c *Client) Configured() bool {
	return c != nil && c.BaseURL != "" && c.APIKey != ""
}

// doRequest performs one GET. Timeouts, transport errors and non-2xx
// statuses fail the call.
func (c *Client) doRequest(ctx context.Context, resource string, query url.Values) ([]byte, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	u := c.BaseURL + resource
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set(HeaderAPIKey, c.APIKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.Client.Do(req)
	if err != nil {
		metrics.RecordUpstream(SourceLabel, 0)
		logger.FromContext(ctx).Warn(LogMsgRequestFailed, "resource", resource, "error", err)
		return nil, fmt.Errorf("hr %s: %w", resource, err)
	}
	defer resp.Body.Close()
	metrics.RecordUpstream(SourceLabel, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s response: %w", resource, err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, fmt.Errorf("%w: hr %s", domain.ErrUpstreamAuth, resource)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{Resource: resource, StatusCode: resp.StatusCode, Body: truncate(body)}
	}
	return body, nil
}

func truncate(b []byte) string {
	if len(b) > maxErrorBody {
		b = b[:maxErrorBody]
	}
	return string(b)
}

// Paginate walks every page of a resource lazily. Iteration stops at the
// first error, which is yielded once.
func Paginate[T any](ctx context.Context, c *Client, resource string, query url.Values) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		var zero T
		for page := 1; ; page++ {
			q := url.Values{}
			for k, v := range query {
				q[k] = v
			}
			q.Set(ParamLimit, strconv.Itoa(DefaultPageSize))
			q.Set(ParamPage, strconv.Itoa(page))

			body, err := c.doRequest(ctx, resource, q)
			if err != nil {
				yield(zero, err)
				return
			}

			var env Envelope[T]
			if err := json.Unmarshal(body, &env); err != nil {
				yield(zero, fmt.Errorf("failed to decode %s page %d: %w", resource, page, err))
				return
			}
			logger.FromContext(ctx).Debug(LogMsgPageFetched, "resource", resource, "page", page, "items", len(env.Data))

			for _, item := range env.Data {
				if !yield(item, nil) {
					return
				}
			}
			if !env.Meta.HasNextPage || len(env.Data) == 0 {
				return
			}
		}
	}
}

// FetchAll collects every item of a resource. An unconfigured client and
// modules the account cannot access both yield an empty slice.
func FetchAll[T any](ctx context.Context, c *Client, resource string, query url.Values) ([]T, error) {
	if !c.Configured() {
		logger.FromContext(ctx).Debug(LogMsgNotConfigured, "resource", resource)
		return []T{}, nil
	}

	items := []T{}
	for item, err := range Paginate[T](ctx, c, resource, query) {
		if err != nil {
			if errors.Is(err, domain.ErrModuleUnavailable) {
				logger.FromContext(ctx).Warn(LogMsgModuleUnavailable, "resource", resource, "error", err)
				return []T{}, nil
			}
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (c *Client) Employees(ctx context.Context) ([]Employee, error) {
	return FetchAll[Employee](ctx, c, ResourceEmployees, nil)
}

func (c *Client) Teams(ctx context.Context) ([]Team, error) {
	return FetchAll[Team](ctx, c, ResourceTeams, nil)
}

func (c *Client) Memberships(ctx context.Context) ([]Membership, error) {
	return FetchAll[Membership](ctx, c, ResourceMemberships, nil)
}

func (c *Client) Fields(ctx context.Context) ([]Field, error) {
	return FetchAll[Field](ctx, c, ResourceFields, nil)
}

func (c *Client) FieldValues(ctx context.Context) ([]FieldValue, error) {
	return FetchAll[FieldValue](ctx, c, ResourceFieldValues, nil)
}

func (c *Client) FieldOptions(ctx context.Context) ([]FieldOption, error) {
	return FetchAll[FieldOption](ctx, c, ResourceFieldOptions, nil)
}

func (c *Client) ContractVersions(ctx context.Context) ([]ContractVersion, error) {
	return FetchAll[ContractVersion](ctx, c, ResourceContractVersions, nil)
}

func (c *Client) CustomResourceValues(ctx context.Context) ([]CustomResourceValue, error) {
	return FetchAll[CustomResourceValue](ctx, c, ResourceCustomResourceValues, nil)
}

// LeavesOn returns leaves overlapping the given day
func (c *Client) LeavesOn(ctx context.Context, day time.Time) ([]Leave, error) {
	d := day.Format(DayLayout)
	return FetchAll[Leave](ctx, c, ResourceLeaves, url.Values{ParamFrom: {d}, ParamTo: {d}})
}

func (c *Client) LeaveTypes(ctx context.Context) ([]LeaveType, error) {
	return FetchAll[LeaveType](ctx, c, ResourceLeaveTypes, nil)
}
