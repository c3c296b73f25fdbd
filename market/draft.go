package market

import (
	"context"

	"github.com/pkg/errors"

	"github.com/unimarket/unimarket/model"
)

// DraftListing carries the editable fields of a draft. Price, condition
// and category may stay unset while the listing is composed.
type DraftListing struct {
	Name        string
	Description string
	Price       *int32
	Condition   *model.Condition
	Category    *model.Category
}

// AddDraftProduct saves an unpublished candidate listing. The first
// image becomes the draft thumbnail.
func (c *Catalog) AddDraftProduct(ctx context.Context, userID string, listing DraftListing, images []model.DataURL) (model.DraftProduct, error) {
	if len(images) == 0 {
		return model.DraftProduct{}, errors.Wrap(model.ErrImageListEmpty, "add draft")
	}

	thumbnailID, err := c.images.SaveThumbnail(ctx, images[0].Data, images[0].MimeType)
	if err != nil {
		return model.DraftProduct{}, err
	}
	imageIDs := make([]string, 0, len(images))
	for _, img := range images {
		id, err := c.images.Save(ctx, img.Data, img.MimeType)
		if err != nil {
			return model.DraftProduct{}, err
		}
		imageIDs = append(imageIDs, id)
	}

	now := c.now()
	draft := model.DraftProduct{
		UserID:           userID,
		Name:             listing.Name,
		Description:      listing.Description,
		Price:            listing.Price,
		Condition:        listing.Condition,
		Category:         listing.Category,
		ThumbnailImageID: thumbnailID,
		ImageIDs:         imageIDs,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	draftID, err := c.store.CreateDraftProduct(ctx, draft)
	if err != nil {
		return model.DraftProduct{}, err
	}
	draft.ID = draftID
	return draft, nil
}

// UpdateDraftProduct edits a draft with the same image remap rules as a
// live listing.
func (c *Catalog) UpdateDraftProduct(ctx context.Context, userID, draftID string, listing DraftListing, addImages []model.DataURL, deleteImageIndexes []int) (model.DraftProduct, error) {
	before, err := c.store.GetDraftProduct(ctx, userID, draftID)
	if err != nil {
		return model.DraftProduct{}, err
	}

	thumbnailID, imageIDs, err := c.remapImages(ctx, before.ThumbnailImageID, before.ImageIDs, addImages, deleteImageIndexes)
	if err != nil {
		return model.DraftProduct{}, err
	}

	now := c.now()
	update := model.DraftUpdate{
		Name:             listing.Name,
		Description:      listing.Description,
		Price:            listing.Price,
		Condition:        listing.Condition,
		Category:         listing.Category,
		ThumbnailImageID: thumbnailID,
		ImageIDs:         imageIDs,
		UpdatedAt:        now,
	}
	if err := c.store.UpdateDraftProduct(ctx, userID, draftID, update); err != nil {
		return model.DraftProduct{}, err
	}

	after := before
	after.Name = update.Name
	after.Description = update.Description
	after.Price = update.Price
	after.Condition = update.Condition
	after.Category = update.Category
	after.ThumbnailImageID = thumbnailID
	after.ImageIDs = imageIDs
	after.UpdatedAt = now
	return after, nil
}

func (c *Catalog) DeleteDraftProduct(ctx context.Context, userID, draftID string) error {
	return c.store.DeleteDraftProduct(ctx, userID, draftID)
}

func (c *Catalog) DraftProducts(ctx context.Context, userID string) ([]model.DraftProduct, error) {
	return c.store.ListDraftProducts(ctx, userID)
}
