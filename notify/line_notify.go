// Package notify delivers push messages through the LINE Notify API.
package notify

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/oauth2"
)

const (
	notifyEndpoint = "https://notify-api.line.me/api/notify"
	authEndpoint   = "https://notify-bot.line.me/oauth/authorize"
	tokenEndpoint  = "https://notify-bot.line.me/oauth/token"

	// The sticker shipped with status-change messages.
	stickerPackageID = 2
	stickerID        = 171
)

// Client talks to LINE Notify. The zero value is not usable; construct
// with NewClient.
type Client struct {
	oauth      *oauth2.Config
	httpClient *http.Client
}

func NewClient(clientID, clientSecret, redirectURL string) *Client {
	return &Client{
		oauth: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"notify"},
			Endpoint: oauth2.Endpoint{
				AuthURL:   authEndpoint,
				TokenURL:  tokenEndpoint,
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		httpClient: http.DefaultClient,
	}
}

// AuthCodeURL builds the URL the user visits to grant notify access.
func (c *Client) AuthCodeURL(state string) string {
	return c.oauth.AuthCodeURL(state, oauth2.SetAuthURLParam("response_mode", "form_post"))
}

// ExchangeCode trades the callback code for a long-lived notify token.
func (c *Client) ExchangeCode(ctx context.Context, code string) (string, error) {
	token, err := c.oauth.Exchange(ctx, code)
	if err != nil {
		return "", errors.Wrap(err, "exchange notify code")
	}
	return token.AccessToken, nil
}

// Send pushes a message to the token's owner. With sticker set a fixed
// sticker rides along with the text.
func (c *Client) Send(ctx context.Context, token, message string, sticker bool) error {
	form := url.Values{}
	form.Set("message", message)
	if sticker {
		form.Set("stickerPackageId", strconv.Itoa(stickerPackageID))
		form.Set("stickerId", strconv.Itoa(stickerID))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, notifyEndpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return errors.Wrap(err, "build notify request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "post notify message")
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return errors.Errorf("notify api returned %d: %s", resp.StatusCode, body)
	}
	return nil
}
