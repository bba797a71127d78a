package client

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

	"github.com/dmitrijs2005/realty/internal/catalog"
	"github.com/dmitrijs2005/realty/internal/common"
	"github.com/dmitrijs2005/realty/internal/netx"
	"github.com/dmitrijs2005/realty/internal/session"
)

const (
	collectionPath = "/rest/v1/properties"
	loginPath      = "/api/v1/session/login"
	imagesPath     = "/api/v1/admin/images"
)

type RESTClient struct {
	baseURL string
	apiKey  string
	http    *http.Client

	mu    sync.RWMutex
	token string
}

func NewRESTClient(baseURL, apiKey string, timeout time.Duration) *RESTClient {
	return &RESTClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *RESTClient) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

func (c *RESTClient) ClearToken() {
	c.SetToken("")
}

func (c *RESTClient) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

type errorBody struct {
	Error string `json:"error"`
}

// statusError maps a non-2xx response to a shared sentinel error.
func statusError(code int, body []byte) error {
	var eb errorBody
	_ = json.Unmarshal(body, &eb)
	msg := eb.Error
	if msg == "" {
		msg = http.StatusText(code)
	}

	switch code {
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", common.ErrorValidation, msg)
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", common.ErrorUnauthorized, msg)
	case http.StatusForbidden:
		return fmt.Errorf("%w: %s", common.ErrorForbidden, msg)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", common.ErrorNotFound, msg)
	case http.StatusPreconditionRequired:
		return catalog.ErrNotConfirmed
	default:
		return fmt.Errorf("%w: server returned %d: %s", common.ErrorInternal, code, msg)
	}
}

func (c *RESTClient) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set(common.APIKeyHeaderName, c.apiKey)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp.StatusCode, raw)
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func propertyPath(id int64) string {
	return collectionPath + "/" + strconv.FormatInt(id, 10)
}

// List returns every listing, newest first.
func (c *RESTClient) List(ctx context.Context) ([]catalog.Property, error) {
	var props []catalog.Property
	if err := c.do(ctx, http.MethodGet, collectionPath, nil, &props); err != nil {
		return nil, err
	}
	return props, nil
}

func (c *RESTClient) Insert(ctx context.Context, d catalog.Draft) (catalog.Property, error) {
	var p catalog.Property
	err := c.do(ctx, http.MethodPost, collectionPath, d, &p)
	return p, err
}

func (c *RESTClient) Update(ctx context.Context, id int64, d catalog.Draft) (catalog.Property, error) {
	var p catalog.Property
	err := c.do(ctx, http.MethodPut, propertyPath(id), d, &p)
	return p, err
}

func (c *RESTClient) SetActive(ctx context.Context, id int64, active bool) error {
	return c.do(ctx, http.MethodPatch, propertyPath(id), map[string]bool{"active": active}, nil)
}

// Delete removes a listing. The caller has already confirmed, so the
// confirmation flag is always sent.
func (c *RESTClient) Delete(ctx context.Context, id int64) error {
	q := url.Values{"confirm": {"true"}}
	return c.do(ctx, http.MethodDelete, propertyPath(id)+"?"+q.Encode(), nil, nil)
}

type loginResponse struct {
	Token string `json:"token"`
}

// Login exchanges admin credentials for a session token and keeps it for
// subsequent requests. Rejected credentials yield
// session.ErrInvalidCredentials.
func (c *RESTClient) Login(ctx context.Context, id, secret string) (string, error) {
	var resp loginResponse
	err := c.do(ctx, http.MethodPost, loginPath, map[string]string{"id": id, "secret": secret}, &resp)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			return "", session.ErrInvalidCredentials
		}
		return "", err
	}
	c.SetToken(resp.Token)
	return resp.Token, nil
}

// Verifier checks credentials by logging in against the server.
func (c *RESTClient) Verifier() session.CredentialVerifier {
	return session.VerifierFunc(func(ctx context.Context, id, secret string) error {
		_, err := c.Login(ctx, id, secret)
		return err
	})
}

// ImageUpload is the server's answer to a presign request.
type ImageUpload struct {
	Key         string    `json:"key"`
	UploadURL   string    `json:"upload_url"`
	PublicURL   string    `json:"public_url"`
	ContentType string    `json:"content_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// PresignImage asks the server for a one-off upload URL. Requires an admin
// session.
func (c *RESTClient) PresignImage(ctx context.Context, contentType string) (ImageUpload, error) {
	var u ImageUpload
	err := c.do(ctx, http.MethodPost, imagesPath, map[string]string{"content_type": contentType}, &u)
	return u, err
}

// UploadImage stores a listing photo in the bucket and returns the URL it
// will be served from.
func (c *RESTClient) UploadImage(ctx context.Context, contentType string, data []byte) (string, error) {
	u, err := c.PresignImage(ctx, contentType)
	if err != nil {
		return "", err
	}
	if err := netx.UploadToPresignedURL(ctx, c.http, u.UploadURL, u.ContentType, data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return u.PublicURL, nil
}

var _ catalog.Collection = (*RESTClient)(nil)
