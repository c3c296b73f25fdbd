package market

import (
	"context"
	"regexp"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/unimarket/unimarket/model"
	"github.com/unimarket/unimarket/utils/log"
)

// Sign-up tokens stop working once the registration form sits unused
// for this long.
const signUpTokenLifetime = 30 * time.Minute

// Campus address check applied at registration, student id mailboxes
// only.
var campusEmailPattern = regexp.MustCompile(`^s\d{7}@[a-zA-Z0-9]+\.tsukuba\.ac\.jp$`)

// SocialProfile is what a social login provider tells us about the
// account after the OAuth code exchange.
type SocialProfile struct {
	Account     model.LogInServiceAndID
	DisplayName string
	Avatar      []byte
	AvatarMime  string
}

// SocialLogin is the provider side of the login redirect flow.
type SocialLogin interface {
	AuthCodeURL(state string) string
	ExchangeProfile(ctx context.Context, code string) (SocialProfile, error)
}

// NotifyAuth is the provider side of the notify registration flow.
type NotifyAuth interface {
	AuthCodeURL(state string) string
	ExchangeCode(ctx context.Context, code string) (string, error)
}

// LogInResult carries exactly one of the two token kinds: an access
// token when the account maps to a user, or a sign-up token when the
// account still has to fill the registration form.
type LogInResult struct {
	AccessToken string
	SignUpToken string

	// Pending profile echoed back for the sign-up form prefill.
	Name    string
	ImageID string
}

// Identity issues and verifies tokens and owns the account lifecycle
// from first social login to full user.
type Identity struct {
	store      Store
	images     ImageStore
	states     StateStore
	notifier   Notifier
	login      SocialLogin
	notifyAuth NotifyAuth

	accessSecret []byte
	signUpSecret []byte
	now          func() time.Time
}

func NewIdentity(store Store, images ImageStore, states StateStore, notifier Notifier, login SocialLogin, notifyAuth NotifyAuth, accessSecret, signUpSecret []byte) *Identity {
	return &Identity{
		store:        store,
		images:       images,
		states:       states,
		notifier:     notifier,
		login:        login,
		notifyAuth:   notifyAuth,
		accessSecret: accessSecret,
		signUpSecret: signUpSecret,
		now:          time.Now,
	}
}

// GenerateLogInURL mints a one-time state and builds the provider's
// authorization URL for it.
func (i *Identity) GenerateLogInURL(ctx context.Context, service string) (string, error) {
	if _, err := model.ParseAccountService(service); err != nil {
		return "", err
	}
	state, err := i.states.CreateLogInState(ctx)
	if err != nil {
		return "", err
	}
	return i.login.AuthCodeURL(state), nil
}

// HandleLogInCallback consumes the state, exchanges the code for the
// social profile and resolves it to a token.
func (i *Identity) HandleLogInCallback(ctx context.Context, code, state string) (LogInResult, error) {
	ok, err := i.states.ConsumeLogInState(ctx, state)
	if err != nil {
		return LogInResult{}, err
	}
	if !ok {
		return LogInResult{}, errors.Wrap(model.ErrInvalidToken, "unknown log in state")
	}
	profile, err := i.login.ExchangeProfile(ctx, code)
	if err != nil {
		return LogInResult{}, err
	}
	return i.ResolveOrCreateUser(ctx, profile)
}

// ResolveOrCreateUser maps a social profile to a session. Known users
// get a fresh access token; a verified pending registration is promoted
// to a full user first; an unverified one is rejected; an unknown
// account gets a sign-up token for the registration form.
func (i *Identity) ResolveOrCreateUser(ctx context.Context, profile SocialProfile) (LogInResult, error) {
	key := profile.Account.String()

	userID, err := i.store.GetUserIDByLogInService(ctx, key)
	if err == nil {
		token, err := i.issueAccessToken(ctx, userID)
		if err != nil {
			return LogInResult{}, err
		}
		return LogInResult{AccessToken: token}, nil
	}
	if !errors.Is(err, model.ErrNotFound) {
		return LogInResult{}, err
	}

	pending, err := i.store.GetPendingVerification(ctx, key)
	if err == nil {
		if !pending.EmailVerified {
			return LogInResult{}, errors.Wrapf(model.ErrEmailNotVerified, "account %s", key)
		}
		userID, err := i.promote(ctx, key, pending)
		if err != nil {
			return LogInResult{}, err
		}
		token, err := i.issueAccessToken(ctx, userID)
		if err != nil {
			return LogInResult{}, err
		}
		return LogInResult{AccessToken: token}, nil
	}
	if !errors.Is(err, model.ErrNotFound) {
		return LogInResult{}, err
	}

	imageID, err := i.images.Save(ctx, profile.Avatar, profile.AvatarMime)
	if err != nil {
		return LogInResult{}, err
	}
	if err := i.store.PutPendingUser(ctx, model.PendingUser{
		Key:       key,
		Name:      profile.DisplayName,
		ImageID:   imageID,
		CreatedAt: i.now(),
	}); err != nil {
		return LogInResult{}, err
	}
	signUpToken, err := i.createSignUpToken(key)
	if err != nil {
		return LogInResult{}, err
	}
	return LogInResult{SignUpToken: signUpToken, Name: profile.DisplayName, ImageID: imageID}, nil
}

// promote turns a verified pre-registration into the only kind of path
// that creates a User record.
func (i *Identity) promote(ctx context.Context, key string, pending model.PendingVerification) (string, error) {
	userID, err := i.store.CreateUser(ctx, model.User{
		DisplayName:  pending.Name,
		ImageID:      pending.ImageID,
		Introduction: "",
		Department:   pending.Department,
		Graduate:     pending.Graduate,
		CreatedAt:    i.now(),
		SoldProducts: []string{},
	})
	if err != nil {
		return "", err
	}
	if err := i.store.CreateUserPrivate(ctx, model.UserPrivate{
		ID:                  userID,
		LogInServiceAndID:   key,
		NotifyToken:         nil,
		BoughtProducts:      []string{},
		Trading:             []string{},
		Traded:              []string{},
		LikedProducts:       []string{},
		HistoryViewProducts: []string{},
		CommentedProducts:   []string{},
	}); err != nil {
		return "", err
	}
	if err := i.store.DeletePendingVerification(ctx, key); err != nil {
		return "", err
	}
	return userID, nil
}

// RegisterSignUpData consumes the sign-up token and the pending social
// identity and stores the filled registration form, waiting for the
// email confirmation click.
func (i *Identity) RegisterSignUpData(ctx context.Context, signUpToken, displayName string, image *model.DataURL, university model.University, email string) error {
	key, err := i.verifySignUpToken(signUpToken)
	if err != nil {
		return err
	}
	if !campusEmailPattern.MatchString(email) {
		return errors.Errorf("email %q is not a campus student address", email)
	}

	pending, err := i.store.TakePendingUser(ctx, key)
	if err != nil {
		return err
	}

	imageID := pending.ImageID
	if image != nil {
		imageID, err = i.images.Save(ctx, image.Data, image.MimeType)
		if err != nil {
			return err
		}
		if err := i.images.Delete(ctx, pending.ImageID); err != nil {
			log.Log.Warnf("could not drop replaced avatar %s: %v", pending.ImageID, err)
		}
	}

	department, graduate := university.Flatten()
	return i.store.PutPendingVerification(ctx, model.PendingVerification{
		Key:           key,
		Name:          displayName,
		ImageID:       imageID,
		Department:    department,
		Graduate:      graduate,
		Email:         email,
		EmailVerified: false,
		CreatedAt:     i.now(),
	})
}

// VerifyEmail flips the verification flag after the confirmation link
// is clicked. The next social login promotes the account.
func (i *Identity) VerifyEmail(ctx context.Context, key string) error {
	return i.store.MarkEmailVerified(ctx, key)
}

// VerifyAccessToken checks signature, shape and that the token is still
// the latest one issued for its user, and returns the user id.
func (i *Identity) VerifyAccessToken(ctx context.Context, accessToken string) (string, error) {
	claims := jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(accessToken, &claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.Wrapf(model.ErrInvalidToken, "unexpected signing method %v", t.Header["alg"])
		}
		return i.accessSecret, nil
	})
	if err != nil {
		return "", errors.Wrapf(model.ErrInvalidToken, "parse access token: %v", err)
	}
	if claims.Subject == "" || claims.ID == "" {
		return "", errors.Wrap(model.ErrInvalidToken, "missing sub or jti")
	}

	private, err := i.store.GetUserPrivate(ctx, claims.Subject)
	if err != nil {
		return "", errors.Wrapf(model.ErrInvalidToken, "token subject: %v", err)
	}
	if private.LastAccessTokenID != claims.ID {
		return "", errors.Wrap(model.ErrTokenSuperseded, "logged in elsewhere")
	}
	return claims.Subject, nil
}

// GenerateNotifyURL starts the notify registration redirect flow for
// the token's user.
func (i *Identity) GenerateNotifyURL(ctx context.Context, accessToken string) (string, error) {
	userID, err := i.VerifyAccessToken(ctx, accessToken)
	if err != nil {
		return "", err
	}
	return i.NotifyURLForUser(ctx, userID)
}

// NotifyURLForUser mints the notify state for an already authenticated
// user.
func (i *Identity) NotifyURLForUser(ctx context.Context, userID string) (string, error) {
	state, err := i.states.CreateNotifyState(ctx, userID)
	if err != nil {
		return "", err
	}
	return i.notifyAuth.AuthCodeURL(state), nil
}

// HandleNotifyCallback finishes the notify registration: consume the
// state, trade the code for a delivery token, persist it and push a
// confirmation message.
func (i *Identity) HandleNotifyCallback(ctx context.Context, code, state string) error {
	userID, err := i.states.ConsumeNotifyState(ctx, state)
	if err != nil {
		return err
	}
	token, err := i.notifyAuth.ExchangeCode(ctx, code)
	if err != nil {
		return err
	}
	if err := i.store.SetNotifyToken(ctx, userID, token); err != nil {
		return err
	}
	if err := i.notifier.Send(ctx, token, "通知を登録できたことをお知らせします!", true); err != nil {
		log.Log.Warnf("notify confirmation to %s failed: %v", userID, err)
	}
	return nil
}

// issueAccessToken rotates the user's jti so every earlier token stops
// verifying, then signs the new one.
func (i *Identity) issueAccessToken(ctx context.Context, userID string) (string, error) {
	tokenID := uuid.NewString()
	if err := i.store.SetLastAccessTokenID(ctx, userID, tokenID); err != nil {
		return "", err
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject: userID,
		ID:      tokenID,
	})
	signed, err := token.SignedString(i.accessSecret)
	if err != nil {
		return "", errors.Wrap(err, "sign access token")
	}
	return signed, nil
}

func (i *Identity) createSignUpToken(key string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   key,
		ExpiresAt: jwt.NewNumericDate(i.now().Add(signUpTokenLifetime)),
	})
	signed, err := token.SignedString(i.signUpSecret)
	if err != nil {
		return "", errors.Wrap(err, "sign sign-up token")
	}
	return signed, nil
}

func (i *Identity) verifySignUpToken(signUpToken string) (string, error) {
	claims := jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(signUpToken, &claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.Wrapf(model.ErrInvalidToken, "unexpected signing method %v", t.Header["alg"])
		}
		return i.signUpSecret, nil
	})
	if err != nil {
		return "", errors.Wrapf(model.ErrInvalidToken, "parse sign-up token: %v", err)
	}
	if claims.Subject == "" {
		return "", errors.Wrap(model.ErrInvalidToken, "missing sub")
	}
	return claims.Subject, nil
}
