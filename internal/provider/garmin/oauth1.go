package garmin

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/gomodule/oauth1/oauth"
)

// signOAuth1 sets an OAuth 1.0a HMAC-SHA1 Authorization header on req. A nil
// token signs with the consumer alone, which the preauthorized call requires.
// form holds the urlencoded body parameters, if any.
func signOAuth1(req *http.Request, consumer consumerCredentials, token *oauth1Credentials, form url.Values) error {
	client := oauth.Client{
		Credentials:     oauth.Credentials{Token: consumer.Key, Secret: consumer.Secret},
		SignatureMethod: oauth.HMACSHA1,
	}
	var creds *oauth.Credentials
	if token != nil {
		creds = &oauth.Credentials{Token: token.Token, Secret: token.Secret}
	}
	if err := client.SetAuthorizationHeader(req.Header, creds, req.Method, req.URL, form); err != nil {
		return fmt.Errorf("sign oauth1 request: %w", err)
	}
	return nil
}
