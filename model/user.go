package model

import "time"

// User is the public identity record. Department/Graduate encode the
// University affiliation in its nullable storage shape; use University()
// to get the checked sum type.
type User struct {
	ID           string      `bson:"_id"`
	DisplayName  string      `bson:"displayName"`
	ImageID      string      `bson:"imageId"`
	Introduction string      `bson:"introduction"`
	Department   *Department `bson:"department"`
	Graduate     *Graduate   `bson:"graduate"`
	CreatedAt    time.Time   `bson:"createdAt"`
	SoldProducts []string    `bson:"soldProducts"`
}

// University returns the checked affiliation of this user.
func (u User) University() (University, error) {
	return NewUniversity(u.Department, u.Graduate)
}

// UserPrivate is the sensitive companion record, keyed by the user id.
// Trading must only hold open trade ids; Traded only terminal ones.
type UserPrivate struct {
	ID                  string   `bson:"_id"`
	LogInServiceAndID   string   `bson:"logInServiceAndId"`
	LastAccessTokenID   string   `bson:"lastAccessTokenId"`
	NotifyToken         *string  `bson:"notifyToken"`
	BoughtProducts      []string `bson:"boughtProducts"`
	Trading             []string `bson:"trading"`
	Traded              []string `bson:"traded"`
	LikedProducts       []string `bson:"likedProducts"`
	HistoryViewProducts []string `bson:"historyViewProducts"`
	CommentedProducts   []string `bson:"commentedProducts"`
}

// PendingUser is a social login identity waiting for the sign-up form,
// keyed by LogInServiceAndID.String(). Consumed exactly once.
type PendingUser struct {
	Key       string    `bson:"_id"`
	Name      string    `bson:"name"`
	ImageID   string    `bson:"imageId"`
	CreatedAt time.Time `bson:"createdAt"`
}

// PendingVerification is a completed sign-up form waiting for the email
// confirmation click. Promotion to a full User happens on the next
// social login after EmailVerified flips.
type PendingVerification struct {
	Key           string      `bson:"_id"`
	Name          string      `bson:"name"`
	ImageID       string      `bson:"imageId"`
	Department    *Department `bson:"department"`
	Graduate      *Graduate   `bson:"graduate"`
	Email         string      `bson:"email"`
	EmailVerified bool        `bson:"emailVerified"`
	CreatedAt     time.Time   `bson:"createdAt"`
}
