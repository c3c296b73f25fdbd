package server

import (
	"io"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/unimarket/unimarket/market"
	"github.com/unimarket/unimarket/model"
	"github.com/unimarket/unimarket/utils/log"
)

// Callbacks holds the non-GraphQL HTTP surface: the OAuth redirect
// receivers and the image endpoint.
type Callbacks struct {
	Identity *market.Identity
	Images   market.ImageStore
	// SiteURL is the frontend origin redirected to after the flows.
	SiteURL string
}

// LineLogInReceiver handles the redirect back from the LINE
// authorization page. A cancelled dialog sends the user home, an
// unknown state renders an error, a success redirects with the token in
// the URL fragment so it never hits server logs.
func (cb *Callbacks) LineLogInReceiver(c *gin.Context) {
	code := c.Query("code")
	state := c.Query("state")
	if code == "" || state == "" {
		// The user backed out of the provider dialog.
		c.Redirect(http.StatusFound, cb.SiteURL)
		return
	}

	result, err := cb.Identity.HandleLogInCallback(c.Request.Context(), code, state)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrInvalidToken):
			c.String(http.StatusBadRequest, "log in error: unknown state %s", state)
		case errors.Is(err, model.ErrEmailNotVerified):
			c.String(http.StatusOK, "confirm your email address first, then log in again")
		default:
			log.Log.Errorf("line log in callback: %v", err)
			c.String(http.StatusInternalServerError, "log in failed")
		}
		return
	}

	if result.AccessToken != "" {
		c.Redirect(http.StatusFound, cb.SiteURL+"/#"+encodeFragment(map[string]string{
			"accessToken": result.AccessToken,
		}))
		return
	}
	c.Redirect(http.StatusFound, cb.SiteURL+"/signup#"+encodeFragment(map[string]string{
		"sendEmailToken": result.SignUpToken,
		"name":           result.Name,
		"imageId":        result.ImageID,
	}))
}

// LineNotifyReceiver handles the redirect back from the LINE Notify
// authorization page.
func (cb *Callbacks) LineNotifyReceiver(c *gin.Context) {
	code := c.Query("code")
	state := c.Query("state")
	if code == "" || state == "" {
		c.Redirect(http.StatusFound, cb.SiteURL)
		return
	}
	if err := cb.Identity.HandleNotifyCallback(c.Request.Context(), code, state); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			c.String(http.StatusBadRequest, "notify error: unknown state %s", state)
			return
		}
		log.Log.Errorf("line notify callback: %v", err)
		c.String(http.StatusInternalServerError, "notify registration failed")
		return
	}
	c.Redirect(http.StatusFound, cb.SiteURL)
}

// EmailVerificationReceiver flips the verification flag behind the link
// in the confirmation mail. The next social login promotes the account.
func (cb *Callbacks) EmailVerificationReceiver(c *gin.Context) {
	key := c.Param("key")
	if err := cb.Identity.VerifyEmail(c.Request.Context(), key); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			c.String(http.StatusNotFound, "unknown verification key")
			return
		}
		log.Log.Errorf("email verification: %v", err)
		c.String(http.StatusInternalServerError, "verification failed")
		return
	}
	c.String(http.StatusOK, "email verified, log in again to finish registration")
}

// ImageHandler streams a stored blob. Ids are content-immutable so the
// response is cacheable for a year.
func (cb *Callbacks) ImageHandler(c *gin.Context) {
	id := c.Param("id")
	body, mimeType, err := cb.Images.Open(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		log.Log.Errorf("open image %s: %v", id, err)
		c.Status(http.StatusInternalServerError)
		return
	}
	defer body.Close()

	c.Header("Cache-Control", "public, max-age=31536000")
	c.Header("Content-Type", mimeType)
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, body); err != nil {
		log.Log.Warnf("stream image %s: %v", id, err)
	}
}

func encodeFragment(values map[string]string) string {
	v := url.Values{}
	for key, value := range values {
		v.Set(key, value)
	}
	return v.Encode()
}

// Register binds the HTTP surface onto the router.
func (cb *Callbacks) Register(router *gin.Engine) {
	router.GET("/login/line", cb.LineLogInReceiver)
	router.GET("/notify/callback", cb.LineNotifyReceiver)
	router.GET("/verify/:key", cb.EmailVerificationReceiver)
	router.GET("/image/:id", cb.ImageHandler)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
}
