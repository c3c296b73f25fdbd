package market

import (
	"context"
	"time"

	"github.com/unimarket/unimarket/model"
)

// Profiles manages the public identity record.
type Profiles struct {
	store  Store
	images ImageStore
	now    func() time.Time
}

func NewProfiles(store Store, images ImageStore) *Profiles {
	return &Profiles{store: store, images: images, now: time.Now}
}

// SetProfile replaces the user's editable identity fields. A non-nil
// image stores a new avatar; the previous one stays in blob storage for
// records that still reference it (comment and seller snapshots).
func (p *Profiles) SetProfile(ctx context.Context, userID, displayName, introduction string, image *model.DataURL, university model.University) (model.User, error) {
	user, err := p.store.GetUser(ctx, userID)
	if err != nil {
		return model.User{}, err
	}

	imageID := user.ImageID
	if image != nil {
		imageID, err = p.images.Save(ctx, image.Data, image.MimeType)
		if err != nil {
			return model.User{}, err
		}
	}

	department, graduate := university.Flatten()
	if err := p.store.UpdateUserProfile(ctx, userID, displayName, imageID, introduction, department, graduate); err != nil {
		return model.User{}, err
	}

	user.DisplayName = displayName
	user.ImageID = imageID
	user.Introduction = introduction
	user.Department = department
	user.Graduate = graduate
	return user, nil
}

// User returns the public record.
func (p *Profiles) User(ctx context.Context, userID string) (model.User, error) {
	return p.store.GetUser(ctx, userID)
}

// Private returns the sensitive companion record of the given user.
func (p *Profiles) Private(ctx context.Context, userID string) (model.UserPrivate, error) {
	return p.store.GetUserPrivate(ctx, userID)
}
