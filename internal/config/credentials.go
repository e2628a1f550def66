package config

import (
	"errors"
	"strings"
)

// Environment variables read for publishing credentials
const (
	EnvPublicationURL = "SUBSTACK_PUBLICATION_URL"
	EnvCookie         = "SUBSTACK_COOKIE"
	EnvEmail          = "SUBSTACK_EMAIL"
	EnvPassword       = "SUBSTACK_PASSWORD"
)

var (
	ErrMissingPublicationURL = errors.New("missing " + EnvPublicationURL)
	ErrNoCredentials         = errors.New("no authentication configured")
)

// AuthMethod is how the client authenticates
type AuthMethod string

const (
	AuthCookie   AuthMethod = "cookie"
	AuthPassword AuthMethod = "password"
)

const maskedCookieLen = 20

// Credentials are the publication endpoint plus either a session cookie or an
// email/password pair. A cookie takes priority when both are set.
type Credentials struct {
	PublicationURL string
	Cookie         string
	Email          string
	Password       string
}

// LoadCredentials reads credentials through getenv, usually os.Getenv
func LoadCredentials(getenv func(string) string) (*Credentials, error) {
	creds := &Credentials{
		PublicationURL: strings.TrimRight(strings.TrimSpace(getenv(EnvPublicationURL)), "/"),
		Cookie:         strings.TrimSpace(getenv(EnvCookie)),
		Email:          strings.TrimSpace(getenv(EnvEmail)),
		Password:       getenv(EnvPassword),
	}

	if creds.PublicationURL == "" {
		return nil, ErrMissingPublicationURL
	}
	if creds.Method() == "" {
		return nil, ErrNoCredentials
	}
	return creds, nil
}

// Method returns the auth method the credentials support, or "" for none
func (c *Credentials) Method() AuthMethod {
	switch {
	case c.Cookie != "":
		return AuthCookie
	case c.Email != "" && c.Password != "":
		return AuthPassword
	}
	return ""
}

// MaskedCookie shows only the start of the cookie for display
func (c *Credentials) MaskedCookie() string {
	if len(c.Cookie) > maskedCookieLen {
		return c.Cookie[:maskedCookieLen] + "..."
	}
	return c.Cookie
}

// EnvStatus reports which credential variables are set, for the auth check
type EnvStatus struct {
	PublicationURL string
	Method         AuthMethod
	Cookie         string
	Email          string
	Missing        []string
}

// CheckEnvironment inspects the credential variables without failing.
// Missing lists what still has to be exported.
func CheckEnvironment(getenv func(string) string) EnvStatus {
	creds := Credentials{
		PublicationURL: strings.TrimSpace(getenv(EnvPublicationURL)),
		Cookie:         strings.TrimSpace(getenv(EnvCookie)),
		Email:          strings.TrimSpace(getenv(EnvEmail)),
		Password:       getenv(EnvPassword),
	}

	status := EnvStatus{
		PublicationURL: creds.PublicationURL,
		Method:         creds.Method(),
		Cookie:         creds.MaskedCookie(),
		Email:          creds.Email,
	}

	if creds.PublicationURL == "" {
		status.Missing = append(status.Missing, EnvPublicationURL)
	}
	if status.Method == "" {
		if creds.Email == "" {
			status.Missing = append(status.Missing, EnvEmail)
		}
		if creds.Password == "" {
			status.Missing = append(status.Missing, EnvPassword)
		}
	}
	return status
}
