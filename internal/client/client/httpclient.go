package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/dmitrijs2005/notely/internal/client/models"
	"github.com/dmitrijs2005/notely/internal/common"
	"github.com/dmitrijs2005/notely/internal/netx"
)

const maxResponseBody = 4 << 20

type HTTPClient struct {
	baseURL string
	http    *http.Client

	mu    sync.RWMutex
	token string
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{baseURL: baseURL, http: &http.Client{Timeout: timeout}}
}

func (c *HTTPClient) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

func (c *HTTPClient) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// envelope covers every response shape the API produces.
type envelope struct {
	S       bool              `json:"s"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors"`
	Token   string            `json:"token"`
	URL     string            `json:"url"`
	User    *models.User      `json:"user"`
	Note    *models.Note      `json:"note"`
}

func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string, out any) error {
	u, err := netx.JoinURL(c.baseURL, path, query)
	if err != nil {
		return fmt.Errorf("bad server url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if tok := c.Token(); tok != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+tok)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if netx.IsUnavailable(err) {
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode}
		var env envelope
		if json.Unmarshal(raw, &env) == nil {
			apiErr.Message = env.Message
			apiErr.Fields = env.Errors
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *HTTPClient) doJSON(ctx context.Context, method, path string, in any, out any) error {
	var body io.Reader
	contentType := ""
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
		contentType = "application/json"
	}
	return c.do(ctx, method, path, nil, body, contentType, out)
}

func (c *HTTPClient) Register(ctx context.Context, name, email, password string) (*models.User, string, error) {
	in := map[string]string{"name": name, "email": email, "password": password}
	var env envelope
	if err := c.doJSON(ctx, http.MethodPost, "/auth/register", in, &env); err != nil {
		return nil, "", err
	}
	return env.User, env.Token, nil
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	in := map[string]string{"email": email, "password": password}
	var env envelope
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login", in, &env); err != nil {
		return nil, "", err
	}
	return env.User, env.Token, nil
}

func (c *HTTPClient) Logout(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodPost, "/auth/logout", nil, nil)
}

func (c *HTTPClient) Me(ctx context.Context) (*models.User, error) {
	var u models.User
	if err := c.doJSON(ctx, http.MethodGet, "/user", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, name, email string) (*models.User, error) {
	in := map[string]string{"name": name, "email": email}
	var env envelope
	if err := c.doJSON(ctx, http.MethodPut, "/user/update", in, &env); err != nil {
		return nil, err
	}
	return env.User, nil
}

func (c *HTTPClient) UploadPicture(ctx context.Context, filename string, data []byte) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("profile_picture", filename)
	if err != nil {
		return "", err
	}
	if _, err := fw.Write(data); err != nil {
		return "", err
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	var env envelope
	if err := c.do(ctx, http.MethodPost, "/user/upload", nil, &buf, mw.FormDataContentType(), &env); err != nil {
		return "", err
	}
	return env.URL, nil
}

func pageQuery(page int) url.Values {
	q := url.Values{}
	if page > 1 {
		q.Set("page", strconv.Itoa(page))
	}
	return q
}

func (c *HTTPClient) ListNotes(ctx context.Context, page int) (*models.NotePage, error) {
	var p models.NotePage
	if err := c.do(ctx, http.MethodGet, "/notes", pageQuery(page), nil, "", &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *HTTPClient) SearchNotes(ctx context.Context, query string, page int) (*models.NotePage, error) {
	q := pageQuery(page)
	q.Set("query", query)

	var out struct {
		Notes models.NotePage `json:"notes"`
	}
	if err := c.do(ctx, http.MethodGet, "/notes/search", q, nil, "", &out); err != nil {
		return nil, err
	}
	return &out.Notes, nil
}

func (c *HTTPClient) GetNote(ctx context.Context, id string) (*models.Note, error) {
	var env envelope
	if err := c.doJSON(ctx, http.MethodGet, "/notes/"+url.PathEscape(id), nil, &env); err != nil {
		return nil, err
	}
	return env.Note, nil
}

func (c *HTTPClient) CreateNote(ctx context.Context, title, content string) (*models.Note, error) {
	in := map[string]string{"title": title, "content": content}
	var env envelope
	if err := c.doJSON(ctx, http.MethodPost, "/notes", in, &env); err != nil {
		return nil, err
	}
	return env.Note, nil
}

func (c *HTTPClient) UpdateNote(ctx context.Context, id string, title, content *string) (*models.Note, error) {
	in := map[string]*string{}
	if title != nil {
		in["title"] = title
	}
	if content != nil {
		in["content"] = content
	}
	var env envelope
	if err := c.doJSON(ctx, http.MethodPut, "/notes/"+url.PathEscape(id), in, &env); err != nil {
		return nil, err
	}
	return env.Note, nil
}

func (c *HTTPClient) DeleteNote(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/notes/"+url.PathEscape(id), nil, nil)
}

var _ Client = (*HTTPClient)(nil)
