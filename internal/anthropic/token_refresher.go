package anthropic

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const (
	DefaultTokenURL = "https://console.anthropic.com/v1/oauth/token"
	DefaultClientID = "9d1c250a-e61b-44d9-88ed-5944d1962f5e"
)

type Doer interface {
	Do(*http.Request) (*http.Response, error)
}

// Grant is the token endpoint's response to a refresh_token exchange.
type Grant struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	ExpiresIn    int64         `json:"expires_in"`
	Scope        string        `json:"scope"`
	Organization *Organization `json:"organization"`
	Account      *Account      `json:"account"`
}

type Organization struct {
	UUID string `json:"uuid"`
	Name string `json:"name"`
}

type Account struct {
	UUID         string `json:"uuid"`
	EmailAddress string `json:"email_address"`
}

type TokenRefresher struct {
	d        Doer
	tokenURL string
	clientID string
}

func NewTokenRefresher(tokenURL, clientID string, d Doer) *TokenRefresher {
	return &TokenRefresher{
		d:        d,
		tokenURL: tokenURL,
		clientID: clientID,
	}
}

// Refresh exchanges the given refresh token for a new token pair. Any
// non-200 response is an error carrying the status code and the error body.
func (f *TokenRefresher) Refresh(refreshToken string) (*Grant, error) {
	body, err := json.Marshal(struct {
		GrantType    string `json:"grant_type"`
		RefreshToken string `json:"refresh_token"`
		ClientID     string `json:"client_id"`
	}{
		GrantType:    "refresh_token",
		RefreshToken: refreshToken,
		ClientID:     f.clientID,
	})
	if err != nil {
		return nil, err
	}

	req, _ := http.NewRequest("POST", f.tokenURL, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.d.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("token refresh failed, expected 200, got %d: %s", resp.StatusCode, errorBody(data))
	}

	var grant Grant
	if err := json.NewDecoder(resp.Body).Decode(&grant); err != nil {
		return nil, err
	}

	if grant.AccessToken == "" {
		return nil, fmt.Errorf("token response missing access_token")
	}

	return &grant, nil
}

func errorBody(data []byte) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return string(data)
	}
	return buf.String()
}
