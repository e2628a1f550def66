// Package substack talks to the Substack drafts API on behalf of a publication.
package substack

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/gerunddev/draftbridge/internal/config"
)

const (
	defaultLoginURL = "https://substack.com/api/v1/login"
	defaultAPIURL   = "https://substack.com/api/v1"

	// Response bodies quoted in errors are cut to this many bytes
	errorExcerptLen = 200
)

// ErrUnauthorized is returned when Substack rejects the session with 401 or 403
var ErrUnauthorized = errors.New("not authorized: check your credentials")

// Client is an authenticated session against one publication
type Client struct {
	http           *http.Client
	publicationURL string
	apiURL         string
	loginURL       string
}

// Option customizes a Client
type Option func(*Client)

// WithHTTPClient uses a copy of hc for requests. The copy gets a fresh cookie
// jar if hc has none; hc itself is not modified.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		cp := *hc
		c.http = &cp
	}
}

// WithAPIURL points account endpoints (login, profile) at another host
func WithAPIURL(apiURL string) Option {
	return func(c *Client) {
		c.apiURL = strings.TrimRight(apiURL, "/")
		c.loginURL = c.apiURL + "/login"
	}
}

// NewClient authenticates with creds. Cookie auth loads the cookie string
// into the jar; password auth logs in through the login endpoint.
func NewClient(ctx context.Context, creds *config.Credentials, opts ...Option) (*Client, error) {
	c := &Client{
		http:           &http.Client{Timeout: 30 * time.Second},
		publicationURL: strings.TrimRight(creds.PublicationURL, "/"),
		apiURL:         defaultAPIURL,
		loginURL:       defaultLoginURL,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.http.Jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create cookie jar: %w", err)
		}
		c.http.Jar = jar
	}

	switch creds.Method() {
	case config.AuthCookie:
		if err := c.setCookies(creds.Cookie); err != nil {
			return nil, err
		}
	case config.AuthPassword:
		if err := c.login(ctx, creds.Email, creds.Password); err != nil {
			return nil, err
		}
	default:
		return nil, config.ErrNoCredentials
	}

	return c, nil
}

// ParseCookies splits a "name=value; name2=value2" header string
func ParseCookies(raw string) []*http.Cookie {
	var cookies []*http.Cookie
	for _, part := range strings.Split(raw, ";") {
		name, value, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok || name == "" {
			continue
		}
		cookies = append(cookies, &http.Cookie{
			Name:  strings.TrimSpace(name),
			Value: strings.TrimSpace(value),
		})
	}
	return cookies
}

func (c *Client) setCookies(raw string) error {
	cookies := ParseCookies(raw)
	if len(cookies) == 0 {
		return fmt.Errorf("cookie %q has no name=value pairs", raw)
	}

	for _, target := range []string{c.publicationURL, c.apiURL} {
		u, err := url.Parse(target)
		if err != nil {
			return fmt.Errorf("failed to parse url %q: %w", target, err)
		}
		c.http.Jar.SetCookies(u, cookies)
	}
	return nil
}

type loginRequest struct {
	Email           string  `json:"email"`
	Password        string  `json:"password"`
	CaptchaResponse *string `json:"captcha_response"`
	ForPub          string  `json:"for_pub"`
	Redirect        string  `json:"redirect"`
}

func (c *Client) login(ctx context.Context, email, password string) error {
	req := loginRequest{
		Email:    email,
		Password: password,
		Redirect: "/",
	}
	if err := c.do(ctx, http.MethodPost, c.loginURL, req, nil); err != nil {
		return fmt.Errorf("failed to log in: %w", err)
	}

	// Session cookies come back for substack.com; share them with the publication host
	loginURL, err := url.Parse(c.loginURL)
	if err != nil {
		return err
	}
	pubURL, err := url.Parse(c.publicationURL)
	if err != nil {
		return fmt.Errorf("failed to parse publication url: %w", err)
	}
	if cookies := c.http.Jar.Cookies(loginURL); len(cookies) > 0 {
		c.http.Jar.SetCookies(pubURL, cookies)
	}
	return nil
}

// UserID returns the id of the authenticated account
func (c *Client) UserID(ctx context.Context) (int64, error) {
	var profile struct {
		ID int64 `json:"id"`
	}
	if err := c.do(ctx, http.MethodGet, c.apiURL+"/user/profile/self", nil, &profile); err != nil {
		return 0, fmt.Errorf("failed to fetch profile: %w", err)
	}
	return profile.ID, nil
}

// Draft is what gets sent to the drafts endpoint
type Draft struct {
	Title    string
	Subtitle string
	// Body is the document tree, serialized to a JSON string on the wire
	Body     any
	AuthorID int64
	Audience string
}

type byline struct {
	ID      int64 `json:"id"`
	IsGuest bool  `json:"is_guest"`
}

type draftRequest struct {
	Title                   string   `json:"draft_title"`
	Subtitle                string   `json:"draft_subtitle"`
	Body                    string   `json:"draft_body"`
	Bylines                 []byline `json:"draft_bylines"`
	Audience                string   `json:"audience"`
	SectionChosen           bool     `json:"section_chosen"`
	WriteCommentPermissions string   `json:"write_comment_permissions"`
}

// CreateDraft posts a new draft and returns its id
func (c *Client) CreateDraft(ctx context.Context, d Draft) (int64, error) {
	body, err := json.Marshal(d.Body)
	if err != nil {
		return 0, fmt.Errorf("failed to encode draft body: %w", err)
	}

	audience := d.Audience
	if audience == "" {
		audience = "everyone"
	}

	req := draftRequest{
		Title:                   d.Title,
		Subtitle:                d.Subtitle,
		Body:                    string(body),
		Bylines:                 []byline{{ID: d.AuthorID}},
		Audience:                audience,
		SectionChosen:           true,
		WriteCommentPermissions: audience,
	}

	var created struct {
		ID int64 `json:"id"`
	}
	if err := c.do(ctx, http.MethodPost, c.publicationURL+"/api/v1/drafts", req, &created); err != nil {
		return 0, fmt.Errorf("failed to create draft: %w", err)
	}
	return created.ID, nil
}

// DraftURL is where the draft can be edited in the browser
func (c *Client) DraftURL(id int64) string {
	return fmt.Sprintf("%s/publish/post/%d", c.publicationURL, id)
}

func (c *Client) do(ctx context.Context, method, target string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return ErrUnauthorized
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return &StatusError{Code: resp.StatusCode, Body: excerpt(data)}
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// StatusError is a non-2xx response other than an auth failure
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected status %d", e.Code)
	}
	return fmt.Sprintf("unexpected status %d: %s", e.Code, e.Body)
}

func excerpt(data []byte) string {
	s := strings.TrimSpace(string(data))
	if len(s) > errorExcerptLen {
		return s[:errorExcerptLen] + "..."
	}
	return s
}
