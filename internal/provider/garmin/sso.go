package garmin

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
)

var (
	csrfPattern   = regexp.MustCompile(`name="_csrf"\s+value="(.+?)"`)
	titlePattern  = regexp.MustCompile(`<title>(.+?)</title>`)
	ticketPattern = regexp.MustCompile(`embed\?ticket=([^"]+)"`)
)

// ssoTicket signs in through the embedded SSO widget and returns the service
// ticket used for the OAuth1 exchange.
func (c *Client) ssoTicket(ctx context.Context, hc *http.Client, email, password string) (string, error) {
	sso := c.ssoBaseURL() + "/sso"
	embed := sso + "/embed"

	embedParams := url.Values{}
	embedParams.Set("id", "gauth-widget")
	embedParams.Set("embedWidget", "true")
	embedParams.Set("gauthHost", sso)
	if _, err := c.ssoGet(ctx, hc, embed+"?"+embedParams.Encode(), ""); err != nil {
		return "", fmt.Errorf("open sso embed: %w", err)
	}

	signinParams := url.Values{}
	signinParams.Set("id", "gauth-widget")
	signinParams.Set("embedWidget", "true")
	signinParams.Set("gauthHost", embed)
	signinParams.Set("service", embed)
	signinParams.Set("source", embed)
	signinParams.Set("redirectAfterAccountLoginUrl", embed)
	signinParams.Set("redirectAfterAccountCreationUrl", embed)
	signinURL := sso + "/signin?" + signinParams.Encode()

	page, err := c.ssoGet(ctx, hc, signinURL, embed)
	if err != nil {
		return "", fmt.Errorf("open sso signin: %w", err)
	}
	csrf, err := parseCSRF(page)
	if err != nil {
		return "", err
	}

	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)
	form.Set("embed", "true")
	form.Set("_csrf", csrf)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, signinURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("create signin request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", c.userAgent())
	req.Header.Set("Referer", signinURL)
	body, err := do(hc, req)
	if err != nil {
		return "", fmt.Errorf("submit sso signin: %w", err)
	}
	return parseTicket(string(body))
}

func (c *Client) ssoGet(ctx context.Context, hc *http.Client, rawURL, referer string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("create sso request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent())
	if referer != "" {
		req.Header.Set("Referer", referer)
	}
	body, err := do(hc, req)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func parseCSRF(page string) (string, error) {
	m := csrfPattern.FindStringSubmatch(page)
	if m == nil {
		return "", fmt.Errorf("csrf token not found on signin page")
	}
	return m[1], nil
}

// parseTicket checks the signin result page and extracts the service ticket.
func parseTicket(page string) (string, error) {
	title := ""
	if m := titlePattern.FindStringSubmatch(page); m != nil {
		title = strings.TrimSpace(m[1])
	}
	if title != "Success" {
		if strings.Contains(title, "MFA") {
			return "", ErrMFARequired
		}
		return "", fmt.Errorf("unexpected signin page title %q", title)
	}
	m := ticketPattern.FindStringSubmatch(page)
	if m == nil {
		return "", fmt.Errorf("service ticket not found on signin result page")
	}
	return m[1], nil
}
