package adminapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"automan.solutions/console/internal/obs"
	"automan.solutions/console/internal/session"
)

const defaultTimeout = 15 * time.Second

// Client is the single shared client for the remote admin API. The base
// URL is fixed at construction; the bearer token is read from the request
// context on every call, so the client itself carries no session state.
type Client struct {
	base *url.URL
	http *http.Client
}

// New builds a client for the given base URL (ending in /api/admin).
// Outbound requests are traced and measured; there are no retries and no
// token refresh, a 401 surfaces to the caller as *Error.
func New(baseURL string) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, errors.New("adminapi: base url must be absolute")
	}
	transport := otelhttp.NewTransport(obs.UpstreamTransport(bearerTransport{next: http.DefaultTransport}))
	return &Client{
		base: base,
		http: &http.Client{Transport: transport, Timeout: defaultTimeout},
	}, nil
}

// bearerTransport attaches the session token, when present, to every
// outgoing request. Absent token sends the request unauthenticated and
// lets the remote service reject it.
type bearerTransport struct {
	next http.RoundTripper
}

func (t bearerTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	if token, ok := session.TokenFromContext(r.Context()); ok {
		r = r.Clone(r.Context())
		r.Header.Set("Authorization", "Bearer "+token)
	}
	return t.next.RoundTrip(r)
}

// Login exchanges credentials for a token and the admin identity.
func (c *Client) Login(ctx context.Context, email, password string) (LoginResult, error) {
	var out LoginResult
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/login", body, &out); err != nil {
		return LoginResult{}, err
	}
	if out.Token == "" {
		return LoginResult{}, &Error{Status: http.StatusBadGateway, Message: "login response carried no token"}
	}
	return out, nil
}

// DashboardSummary fetches the landing-screen counters and recent logs.
func (c *Client) DashboardSummary(ctx context.Context) (DashboardSummary, error) {
	var out DashboardSummary
	err := c.do(ctx, http.MethodGet, "/dashboard/summary", nil, &out)
	return out, err
}

// ListTenants fetches the full tenant collection.
func (c *Client) ListTenants(ctx context.Context) ([]Tenant, error) {
	var out struct {
		Tenants []Tenant `json:"tenants"`
	}
	if err := c.do(ctx, http.MethodGet, "/tenants", nil, &out); err != nil {
		return nil, err
	}
	return out.Tenants, nil
}

// CreateTenant submits the form as multipart: a JSON "data" blob plus an
// optional "logo" attachment.
func (c *Client) CreateTenant(ctx context.Context, form TenantForm) error {
	return c.doMultipart(ctx, http.MethodPost, "/tenants", form)
}

// UpdateTenant replaces the tenant's fields, same multipart shape as create.
func (c *Client) UpdateTenant(ctx context.Context, id int64, form TenantForm) error {
	return c.doMultipart(ctx, http.MethodPut, fmt.Sprintf("/tenants/%d", id), form)
}

// DeleteTenant removes the tenant. The confirmation step lives in the UI;
// by the time this is called the operator has already said yes.
func (c *Client) DeleteTenant(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/tenants/%d", id), nil, nil)
}

// ListTenantUsers fetches the users scoped to one tenant. The tenant id
// must be supplied by the operator first; callers guard the empty case.
func (c *Client) ListTenantUsers(ctx context.Context, tenantID string) ([]TenantUser, error) {
	if strings.TrimSpace(tenantID) == "" {
		return nil, errors.New("adminapi: tenant id is required")
	}
	var out struct {
		Users []TenantUser `json:"users"`
	}
	if err := c.do(ctx, http.MethodGet, "/tenant_users/"+url.PathEscape(tenantID), nil, &out); err != nil {
		return nil, err
	}
	return out.Users, nil
}

// CreateTenantUser provisions an account under the given tenant.
func (c *Client) CreateTenantUser(ctx context.Context, tenantID string, form TenantUserForm) (string, error) {
	if strings.TrimSpace(tenantID) == "" {
		return "", errors.New("adminapi: tenant id is required")
	}
	var out struct {
		Message string `json:"message"`
	}
	err := c.do(ctx, http.MethodPost, "/tenant_users/"+url.PathEscape(tenantID), form, &out)
	return out.Message, err
}

// ListSubscriptions fetches the full subscription collection.
func (c *Client) ListSubscriptions(ctx context.Context) ([]Subscription, error) {
	var out struct {
		Subscriptions []Subscription `json:"subscriptions"`
	}
	if err := c.do(ctx, http.MethodGet, "/subscriptions", nil, &out); err != nil {
		return nil, err
	}
	return out.Subscriptions, nil
}

// CreateSubscription records a new subscription, price as entered.
func (c *Client) CreateSubscription(ctx context.Context, form SubscriptionForm) (string, error) {
	var out struct {
		Message string `json:"message"`
	}
	err := c.do(ctx, http.MethodPost, "/subscriptions", form, &out)
	return out.Message, err
}

// Ping checks the remote base is reachable. Any HTTP answer counts as
// reachable; only transport failure reports not ready.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.base.String(), nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("admin api unreachable: %w", err)
	}
	resp.Body.Close()
	return nil
}

// --- request plumbing ---

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var payload io.Reader
	contentType := ""
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		payload = bytes.NewReader(data)
		contentType = "application/json"
	}
	return c.send(ctx, method, path, contentType, payload, out)
}

func (c *Client) doMultipart(ctx context.Context, method, path string, form TenantForm) error {
	data, err := form.MarshalData()
	if err != nil {
		return fmt.Errorf("marshal tenant data: %w", err)
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("data", string(data)); err != nil {
		return fmt.Errorf("write data part: %w", err)
	}
	if form.Logo != nil && len(form.Logo.Content) > 0 {
		part, err := mw.CreateFormFile("logo", form.Logo.Filename)
		if err != nil {
			return fmt.Errorf("create logo part: %w", err)
		}
		if _, err := part.Write(form.Logo.Content); err != nil {
			return fmt.Errorf("write logo part: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("close multipart: %w", err)
	}

	return c.send(ctx, method, path, mw.FormDataContentType(), &buf, nil)
}

func (c *Client) send(ctx context.Context, method, path, contentType string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.base.String()+path, body)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("call admin api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	apiErr := &Error{Status: resp.StatusCode, Message: genericMessage}
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err == nil && json.Unmarshal(raw, &body) == nil {
		switch {
		case body.Error != "":
			apiErr.Message = body.Error
		case body.Message != "":
			apiErr.Message = body.Message
		}
	}
	return apiErr
}
