package model

import "errors"

// Domain errors surfaced to the GraphQL layer as resolution errors. The
// data-access layers never retry on these; notification delivery is the
// only side effect allowed to fail silently.
var (
	// ErrInvalidToken is returned when an access token fails signature or
	// shape verification.
	ErrInvalidToken = errors.New("invalid access token")

	// ErrTokenSuperseded is returned when a token is well formed but a newer
	// token has been issued for the same user since.
	ErrTokenSuperseded = errors.New("token superseded by a newer log in")

	// ErrUserNotFound is returned when no user is bound to a social login
	// identity.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailNotVerified is returned when a pending registration exists but
	// its email address has not been confirmed yet.
	ErrEmailNotVerified = errors.New("email not verified")

	// ErrForbidden is returned when the caller is neither buyer nor seller
	// of the entity being mutated.
	ErrForbidden = errors.New("caller is not a party of this entity")

	// ErrProductNotAvailable is returned when starting a trade on a product
	// that is not currently selling.
	ErrProductNotAvailable = errors.New("product is not available for trade")

	// ErrSelfTradeForbidden is returned when a seller tries to buy their own
	// product.
	ErrSelfTradeForbidden = errors.New("cannot trade your own product")

	// ErrImageListEmpty is returned when an image update would leave a
	// product or draft with zero images.
	ErrImageListEmpty = errors.New("product must keep at least one image")

	// ErrEmptyComment is returned for whitespace-only comment bodies.
	ErrEmptyComment = errors.New("comment body must not be empty")

	// ErrInvalidUniversity is returned when a university affiliation has
	// neither a department nor a graduate program.
	ErrInvalidUniversity = errors.New("university needs a department, a graduate program, or both")

	// ErrStorageError is returned when a blob storage round trip fails.
	ErrStorageError = errors.New("blob storage operation failed")

	// ErrNotFound is returned when a document id does not exist.
	ErrNotFound = errors.New("document not found")
)
