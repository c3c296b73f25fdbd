package server

import (
	"context"
	"io"
	"net/http"

	"github.com/golang-jwt/jwt/v4"
	"github.com/pkg/errors"
	"golang.org/x/oauth2"

	"github.com/unimarket/unimarket/market"
	"github.com/unimarket/unimarket/model"
)

const (
	lineAuthURL       = "https://access.line.me/oauth2/v2.1/authorize"
	lineTokenURL      = "https://api.line.me/oauth2/v2.1/token"
	lineIDTokenIssuer = "https://access.line.me"
)

// LineLogin implements the social login side of the LINE OpenID
// Connect flow. The id_token is signed HS256 with the channel secret,
// so no key fetch is needed to verify it.
type LineLogin struct {
	oauth         *oauth2.Config
	channelSecret string
	httpClient    *http.Client
}

func NewLineLogin(channelID, channelSecret, redirectURL string) *LineLogin {
	return &LineLogin{
		oauth: &oauth2.Config{
			ClientID:     channelID,
			ClientSecret: channelSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"profile", "openid"},
			Endpoint: oauth2.Endpoint{
				AuthURL:   lineAuthURL,
				TokenURL:  lineTokenURL,
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		channelSecret: channelSecret,
		httpClient:    http.DefaultClient,
	}
}

func (l *LineLogin) AuthCodeURL(state string) string {
	return l.oauth.AuthCodeURL(state)
}

type lineIDTokenClaims struct {
	jwt.RegisteredClaims
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// ExchangeProfile trades the callback code for the account's id, name
// and avatar.
func (l *LineLogin) ExchangeProfile(ctx context.Context, code string) (market.SocialProfile, error) {
	token, err := l.oauth.Exchange(ctx, code)
	if err != nil {
		return market.SocialProfile{}, errors.Wrap(err, "exchange line code")
	}
	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		return market.SocialProfile{}, errors.New("line token response has no id_token")
	}

	claims := lineIDTokenClaims{}
	_, err = jwt.ParseWithClaims(rawIDToken, &claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.Errorf("unexpected id_token signing method %v", t.Header["alg"])
		}
		return []byte(l.channelSecret), nil
	})
	if err != nil {
		return market.SocialProfile{}, errors.Wrap(err, "verify line id_token")
	}
	if claims.Issuer != lineIDTokenIssuer {
		return market.SocialProfile{}, errors.Errorf("id_token issued by %q", claims.Issuer)
	}
	if claims.Subject == "" {
		return market.SocialProfile{}, errors.New("id_token has no subject")
	}

	avatar, mimeType, err := l.fetchAvatar(ctx, claims.Picture)
	if err != nil {
		return market.SocialProfile{}, err
	}
	return market.SocialProfile{
		Account: model.LogInServiceAndID{
			Service:   model.AccountServiceLine,
			ServiceID: claims.Subject,
		},
		DisplayName: claims.Name,
		Avatar:      avatar,
		AvatarMime:  mimeType,
	}, nil
}

func (l *LineLogin) fetchAvatar(ctx context.Context, pictureURL string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pictureURL, nil)
	if err != nil {
		return nil, "", errors.Wrap(err, "build avatar request")
	}
	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, "", errors.Wrap(err, "fetch line avatar")
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, "", errors.Errorf("avatar fetch returned %d", resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", errors.Wrap(err, "read line avatar")
	}
	mimeType := resp.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "image/png"
	}
	return data, mimeType, nil
}
