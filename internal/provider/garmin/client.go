package garmin

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/net/publicsuffix"
	"golang.org/x/oauth2"
)

const (
	defaultSSOBaseURL  = "https://sso.garmin.com"
	defaultAPIBaseURL  = "https://connectapi.garmin.com"
	defaultConsumerURL = "https://thegarth.s3.amazonaws.com/oauth_consumer.json"
	defaultUserAgent   = "GCM-iOS-5.7.2.1"
	oauthUserAgent     = "com.garmin.android.apps.connectmobile"
	defaultTimeout     = 30 * time.Second
)

// Client logs in to Garmin Connect. Zero values fall back to the public
// Garmin endpoints.
type Client struct {
	SSOBaseURL  string
	APIBaseURL  string
	ConsumerURL string
	UserAgent   string
	HTTPClient  *http.Client
	Logger      *zap.Logger
}

// Login runs the SSO flow and returns a session authorized with an OAuth2
// bearer token. Every failure wraps ErrAuthentication.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	hc, err := c.httpClient()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAuthentication, err)
	}
	log := c.logger()

	ticket, err := c.ssoTicket(ctx, hc, email, password)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAuthentication, err)
	}
	log.Debug("obtained sso ticket")

	consumer, err := c.fetchConsumer(ctx, hc)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAuthentication, err)
	}
	oauth1Token, err := c.preauthorize(ctx, hc, consumer, ticket)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAuthentication, err)
	}
	token, err := c.exchange(ctx, hc, consumer, oauth1Token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAuthentication, err)
	}
	log.Debug("obtained oauth2 token", zap.Time("expiry", token.Expiry))

	return &Session{
		baseURL:   c.apiBaseURL(),
		userAgent: c.userAgent(),
		logger:    log,
		http: &http.Client{
			Timeout: hc.Timeout,
			Transport: &oauth2.Transport{
				Source: oauth2.StaticTokenSource(token),
				Base:   hc.Transport,
			},
		},
	}, nil
}

type consumerCredentials struct {
	Key    string `json:"consumer_key"`
	Secret string `json:"consumer_secret"`
}

type oauth1Credentials struct {
	Token    string
	Secret   string
	MFAToken string
}

type oauth2Response struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

func (c *Client) fetchConsumer(ctx context.Context, hc *http.Client) (consumerCredentials, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.consumerURL(), nil)
	if err != nil {
		return consumerCredentials{}, fmt.Errorf("create consumer request: %w", err)
	}
	body, err := do(hc, req)
	if err != nil {
		return consumerCredentials{}, fmt.Errorf("fetch oauth consumer: %w", err)
	}
	var out consumerCredentials
	if err := json.Unmarshal(body, &out); err != nil {
		return consumerCredentials{}, fmt.Errorf("decode oauth consumer: %w", err)
	}
	if out.Key == "" || out.Secret == "" {
		return consumerCredentials{}, fmt.Errorf("oauth consumer response is missing key or secret")
	}
	return out, nil
}

func (c *Client) preauthorize(ctx context.Context, hc *http.Client, consumer consumerCredentials, ticket string) (oauth1Credentials, error) {
	q := url.Values{}
	q.Set("ticket", ticket)
	q.Set("login-url", c.ssoBaseURL()+"/sso/embed")
	q.Set("accepts-mfa-tokens", "true")
	endpoint := c.apiBaseURL() + "/oauth-service/oauth/preauthorized?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return oauth1Credentials{}, fmt.Errorf("create preauthorized request: %w", err)
	}
	req.Header.Set("User-Agent", oauthUserAgent)
	if err := signOAuth1(req, consumer, nil, nil); err != nil {
		return oauth1Credentials{}, err
	}

	body, err := do(hc, req)
	if err != nil {
		return oauth1Credentials{}, fmt.Errorf("exchange sso ticket: %w", err)
	}
	values, err := url.ParseQuery(strings.TrimSpace(string(body)))
	if err != nil {
		return oauth1Credentials{}, fmt.Errorf("decode oauth1 token: %w", err)
	}
	out := oauth1Credentials{
		Token:    values.Get("oauth_token"),
		Secret:   values.Get("oauth_token_secret"),
		MFAToken: values.Get("mfa_token"),
	}
	if out.Token == "" || out.Secret == "" {
		return oauth1Credentials{}, fmt.Errorf("oauth1 response is missing token or secret")
	}
	return out, nil
}

func (c *Client) exchange(ctx context.Context, hc *http.Client, consumer consumerCredentials, tok oauth1Credentials) (*oauth2.Token, error) {
	form := url.Values{}
	if tok.MFAToken != "" {
		form.Set("mfa_token", tok.MFAToken)
	}
	endpoint := c.apiBaseURL() + "/oauth-service/oauth/exchange/user/2.0"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("create exchange request: %w", err)
	}
	req.Header.Set("User-Agent", oauthUserAgent)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if err := signOAuth1(req, consumer, &tok, form); err != nil {
		return nil, err
	}

	body, err := do(hc, req)
	if err != nil {
		return nil, fmt.Errorf("exchange oauth1 token: %w", err)
	}
	var parsed oauth2Response
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode oauth2 token: %w", err)
	}
	if parsed.AccessToken == "" {
		return nil, fmt.Errorf("oauth2 response is missing access token")
	}
	token := &oauth2.Token{
		AccessToken:  parsed.AccessToken,
		TokenType:    parsed.TokenType,
		RefreshToken: parsed.RefreshToken,
	}
	if parsed.ExpiresIn > 0 {
		token.Expiry = time.Now().Add(time.Duration(parsed.ExpiresIn) * time.Second)
	}
	return token, nil
}

// httpClient returns a copy of the configured client carrying a cookie jar,
// which the SSO pages rely on.
func (c *Client) httpClient() (*http.Client, error) {
	var hc http.Client
	if c.HTTPClient != nil {
		hc = *c.HTTPClient
	} else {
		hc.Timeout = defaultTimeout
	}
	if hc.Jar == nil {
		jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
		if err != nil {
			return nil, fmt.Errorf("create cookie jar: %w", err)
		}
		hc.Jar = jar
	}
	return &hc, nil
}

func (c *Client) ssoBaseURL() string {
	return baseURLOr(c.SSOBaseURL, defaultSSOBaseURL)
}

func (c *Client) apiBaseURL() string {
	return baseURLOr(c.APIBaseURL, defaultAPIBaseURL)
}

func (c *Client) consumerURL() string {
	if v := strings.TrimSpace(c.ConsumerURL); v != "" {
		return v
	}
	return defaultConsumerURL
}

func (c *Client) userAgent() string {
	if v := strings.TrimSpace(c.UserAgent); v != "" {
		return v
	}
	return defaultUserAgent
}

func (c *Client) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}

func baseURLOr(v, def string) string {
	v = strings.TrimRight(strings.TrimSpace(v), "/")
	if v == "" {
		return def
	}
	return v
}

// do executes req and returns the body of a 2xx response.
func do(hc *http.Client, req *http.Request) ([]byte, error) {
	resp, err := hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return body, fmt.Errorf("%s %s failed with status %d", req.Method, req.URL.Path, resp.StatusCode)
	}
	return body, nil
}
