package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/set-night/zeno/internal/config"
	"github.com/set-night/zeno/internal/domain"
)

// TokenSource supplies the current bearer credential. An empty token means
// the request goes out unauthenticated (login and register do).
type TokenSource interface {
	Token() string
}

// Client talks to the Zeno chat API. One request per call, no retries.
type Client struct {
	baseURL    string
	tokens     TokenSource
	httpClient *http.Client
}

func New(baseURL string, tokens TokenSource) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		tokens:     tokens,
		httpClient: &http.Client{Timeout: config.RequestTimeout},
	}
}

// Error is a non-2xx response from the API. Msg carries the server's "msg"
// field when the body had one.
type Error struct {
	Status int
	Msg    string
}

func (e *Error) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("api: %d: %s", e.Status, e.Msg)
	}
	return fmt.Sprintf("api: unexpected status %d", e.Status)
}

// ServerMessage extracts the server-provided message from err, if err is an
// API error that carried one.
func ServerMessage(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Msg
	}
	return ""
}

type wireMessage struct {
	MongoID   string `json:"_id"`
	ID        string `json:"id"`
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

func (m wireMessage) toDomain() domain.Message {
	id := m.MongoID
	if id == "" {
		id = m.ID
	}

	role := domain.RoleBot
	if m.Role == string(domain.RoleUser) {
		role = domain.RoleUser
	}

	var ts time.Time
	if m.Timestamp != "" {
		// History rows written before timestamps existed decode to zero;
		// the session layer backfills those.
		ts, _ = time.Parse(time.RFC3339, m.Timestamp)
	}

	return domain.Message{
		ID:        id,
		Role:      role,
		Content:   m.Content,
		Timestamp: ts,
		Status:    domain.StatusDelivered,
	}
}

func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var out struct {
		Token string `json:"token"`
	}
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, &out); err != nil {
		return "", err
	}
	if out.Token == "" {
		return "", fmt.Errorf("login: empty token in response")
	}
	return out.Token, nil
}

func (c *Client) Register(ctx context.Context, name, email, password string) error {
	body := map[string]string{"name": name, "email": email, "password": password}
	return c.do(ctx, http.MethodPost, "/api/auth/register", body, nil)
}

func (c *Client) History(ctx context.Context) ([]domain.Message, error) {
	var out struct {
		Messages []wireMessage `json:"messages"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/chat/get-history", nil, &out); err != nil {
		return nil, err
	}
	messages := make([]domain.Message, 0, len(out.Messages))
	for _, m := range out.Messages {
		messages = append(messages, m.toDomain())
	}
	return messages, nil
}

func (c *Client) Send(ctx context.Context, text string) (string, error) {
	var out struct {
		Reply string `json:"reply"`
	}
	body := map[string]string{"message": text}
	if err := c.do(ctx, http.MethodPost, "/api/chat/send-message", body, &out); err != nil {
		return "", err
	}
	return out.Reply, nil
}

func (c *Client) DeleteMessage(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/chat/delete-message/"+id, nil, nil)
}

func (c *Client) ClearHistory(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/api/chat/clear-history", nil, nil)
}

func (c *Client) Profile(ctx context.Context) (domain.Profile, error) {
	var out struct {
		Name      string `json:"name"`
		Email     string `json:"email"`
		CreatedAt string `json:"createdAt"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/user/profile", nil, &out); err != nil {
		return domain.Profile{}, err
	}

	var createdAt time.Time
	if out.CreatedAt != "" {
		createdAt, _ = time.Parse(time.RFC3339, out.CreatedAt)
	}

	return domain.Profile{
		Name:      out.Name,
		Email:     out.Email,
		CreatedAt: createdAt,
	}, nil
}

func (c *Client) EditProfile(ctx context.Context, name, email string) error {
	body := map[string]string{"name": name, "email": email}
	return c.do(ctx, http.MethodPut, "/api/user/edit-profile", body, nil)
}

func (c *Client) DeleteAccount(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/api/user/delete-account", nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var reqBody io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &Error{Status: resp.StatusCode}
		var errBody struct {
			Msg string `json:"msg"`
		}
		if json.Unmarshal(body, &errBody) == nil {
			apiErr.Msg = errBody.Msg
		}
		return apiErr
	}

	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("parse response: %w", err)
		}
	}
	return nil
}
