package market

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/unimarket/unimarket/model"
	"github.com/unimarket/unimarket/utils"
	"github.com/unimarket/unimarket/utils/log"
)

// Catalog manages product listings, likes, comments and view history.
type Catalog struct {
	store    Store
	images   ImageStore
	notifier Notifier
	siteURL  string
	now      func() time.Time
}

func NewCatalog(store Store, images ImageStore, notifier Notifier, siteURL string) *Catalog {
	return &Catalog{
		store:    store,
		images:   images,
		notifier: notifier,
		siteURL:  strings.TrimSuffix(siteURL, "/"),
		now:      time.Now,
	}
}

// ProductListing carries the seller-editable fields of a listing.
type ProductListing struct {
	Name        string
	Price       int32
	Description string
	Condition   model.Condition
	Category    model.Category
}

// SellProduct publishes a new listing. The first image becomes the
// thumbnail; the seller snapshot is denormalized at this point and
// never re-synced.
func (c *Catalog) SellProduct(ctx context.Context, sellerID string, listing ProductListing, images []model.DataURL) (model.Product, error) {
	if len(images) == 0 {
		return model.Product{}, errors.Wrap(model.ErrImageListEmpty, "sell product")
	}
	seller, err := c.store.GetUser(ctx, sellerID)
	if err != nil {
		return model.Product{}, err
	}

	thumbnailID, err := c.images.SaveThumbnail(ctx, images[0].Data, images[0].MimeType)
	if err != nil {
		return model.Product{}, err
	}
	imageIDs := make([]string, 0, len(images))
	for _, img := range images {
		id, err := c.images.Save(ctx, img.Data, img.MimeType)
		if err != nil {
			return model.Product{}, err
		}
		imageIDs = append(imageIDs, id)
	}

	now := c.now()
	product := model.Product{
		Name:             listing.Name,
		Price:            listing.Price,
		Description:      listing.Description,
		Condition:        listing.Condition,
		Category:         listing.Category,
		ThumbnailImageID: thumbnailID,
		ImageIDs:         imageIDs,
		Status:           model.ProductStatusSelling,
		SellerID:         sellerID,
		SellerName:       seller.DisplayName,
		SellerImageID:    seller.ImageID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	productID, err := c.store.CreateProduct(ctx, product)
	if err != nil {
		return model.Product{}, err
	}
	product.ID = productID

	if err := c.store.AppendSoldProduct(ctx, sellerID, productID); err != nil {
		return model.Product{}, err
	}
	return product, nil
}

// UpdateProduct edits a selling listing. deleteImageIndexes removes
// existing images by position, addImages appends new ones; removing the
// first image regenerates the thumbnail from the new head.
func (c *Catalog) UpdateProduct(ctx context.Context, sellerID, productID string, listing ProductListing, addImages []model.DataURL, deleteImageIndexes []int) (model.Product, error) {
	before, err := c.store.GetProduct(ctx, productID)
	if err != nil {
		return model.Product{}, err
	}
	if before.SellerID != sellerID {
		return model.Product{}, errors.Wrapf(model.ErrForbidden, "user %s does not sell product %s", sellerID, productID)
	}
	if before.Status != model.ProductStatusSelling {
		return model.Product{}, errors.Wrapf(model.ErrProductNotAvailable, "product %s is %s", productID, before.Status)
	}

	thumbnailID, imageIDs, err := c.remapImages(ctx, before.ThumbnailImageID, before.ImageIDs, addImages, deleteImageIndexes)
	if err != nil {
		return model.Product{}, err
	}

	now := c.now()
	update := model.ProductUpdate{
		Name:             listing.Name,
		Price:            listing.Price,
		Description:      listing.Description,
		Condition:        listing.Condition,
		Category:         listing.Category,
		ThumbnailImageID: thumbnailID,
		ImageIDs:         imageIDs,
		UpdatedAt:        now,
	}
	if err := c.store.UpdateProductListing(ctx, productID, update); err != nil {
		return model.Product{}, err
	}

	after := before
	after.Name = update.Name
	after.Price = update.Price
	after.Description = update.Description
	after.Condition = update.Condition
	after.Category = update.Category
	after.ThumbnailImageID = thumbnailID
	after.ImageIDs = imageIDs
	after.UpdatedAt = now
	return after, nil
}

// remapImages drops existing images by ascending index, appends the new
// uploads and decides the thumbnail. Deleting index 0 forces a new
// thumbnail from whichever image ends up first.
func (c *Catalog) remapImages(ctx context.Context, thumbnailID string, before []string, addImages []model.DataURL, deleteIndexes []int) (string, []string, error) {
	kept := make([]string, 0, len(before))
	firstSurvives := true
	deleteAt := 0
	for i, id := range before {
		if deleteAt < len(deleteIndexes) && i == deleteIndexes[deleteAt] {
			if i == 0 {
				firstSurvives = false
			}
			deleteAt++
			continue
		}
		kept = append(kept, id)
	}
	for _, img := range addImages {
		id, err := c.images.Save(ctx, img.Data, img.MimeType)
		if err != nil {
			return "", nil, err
		}
		kept = append(kept, id)
	}
	if len(kept) == 0 {
		return "", nil, errors.Wrap(model.ErrImageListEmpty, "image update")
	}
	if !firstSurvives {
		newThumb, err := c.images.ThumbnailFrom(ctx, kept[0])
		if err != nil {
			return "", nil, err
		}
		return newThumb, kept, nil
	}
	return thumbnailID, kept, nil
}

// DeleteProduct archives a selling listing of the caller and removes it
// from the live collection.
func (c *Catalog) DeleteProduct(ctx context.Context, sellerID, productID string) error {
	seller, err := c.store.GetUser(ctx, sellerID)
	if err != nil {
		return err
	}
	if !utils.ContainsString(seller.SoldProducts, productID) {
		return errors.Wrapf(model.ErrForbidden, "user %s does not sell product %s", sellerID, productID)
	}
	product, err := c.store.GetProduct(ctx, productID)
	if err != nil {
		return err
	}
	if product.Status != model.ProductStatusSelling {
		return errors.Wrapf(model.ErrProductNotAvailable, "product %s is %s", productID, product.Status)
	}
	if err := c.store.ArchiveProduct(ctx, model.DeletedProduct{Product: product, DeletedAt: c.now()}); err != nil {
		return err
	}
	return c.store.DeleteProduct(ctx, productID)
}

// LikeProduct is idempotent: liking twice leaves the count unchanged.
func (c *Catalog) LikeProduct(ctx context.Context, userID, productID string) (model.Product, error) {
	private, err := c.store.GetUserPrivate(ctx, userID)
	if err != nil {
		return model.Product{}, err
	}
	if !utils.ContainsString(private.LikedProducts, productID) {
		if err := c.store.AddLikedProduct(ctx, userID, productID); err != nil {
			return model.Product{}, err
		}
		if err := c.store.IncrementProductLiked(ctx, productID, 1); err != nil {
			return model.Product{}, err
		}
	}
	return c.store.GetProduct(ctx, productID)
}

// UnlikeProduct mirrors LikeProduct.
func (c *Catalog) UnlikeProduct(ctx context.Context, userID, productID string) (model.Product, error) {
	private, err := c.store.GetUserPrivate(ctx, userID)
	if err != nil {
		return model.Product{}, err
	}
	if utils.ContainsString(private.LikedProducts, productID) {
		if err := c.store.RemoveLikedProduct(ctx, userID, productID); err != nil {
			return model.Product{}, err
		}
		if err := c.store.IncrementProductLiked(ctx, productID, -1); err != nil {
			return model.Product{}, err
		}
	}
	return c.store.GetProduct(ctx, productID)
}

// MarkProductInHistory records a product view: the history list gets
// the id at most once while the view counter always increments.
func (c *Catalog) MarkProductInHistory(ctx context.Context, userID, productID string) (model.Product, error) {
	if err := c.store.AddHistoryViewProduct(ctx, userID, productID); err != nil {
		return model.Product{}, err
	}
	if err := c.store.IncrementProductViewed(ctx, productID); err != nil {
		return model.Product{}, err
	}
	return c.store.GetProduct(ctx, productID)
}

// AddProductComment appends a comment with a speaker snapshot and tells
// the seller about it.
func (c *Catalog) AddProductComment(ctx context.Context, userID, productID, body string) ([]model.ProductComment, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, errors.Wrap(model.ErrEmptyComment, "product comment")
	}
	speaker, err := c.store.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := c.store.AddCommentedProduct(ctx, userID, productID); err != nil {
		return nil, err
	}
	now := c.now()
	comment := model.ProductComment{
		ProductID:      productID,
		Body:           body,
		SpeakerID:      userID,
		SpeakerName:    speaker.DisplayName,
		SpeakerImageID: speaker.ImageID,
		CreatedAt:      now,
	}
	if _, err := c.store.AddProductComment(ctx, comment); err != nil {
		return nil, err
	}
	if err := c.store.TouchProduct(ctx, productID, now); err != nil {
		return nil, err
	}

	product, err := c.store.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	c.notifySeller(ctx, product,
		fmt.Sprintf("%sさんが%sにコメントをつけました。\n\n%s\n\n%s/product/%s", speaker.DisplayName, product.Name, body, c.siteURL, productID))
	return c.store.ListProductComments(ctx, productID)
}

// Read surface.

func (c *Catalog) Product(ctx context.Context, productID string) (model.Product, error) {
	return c.store.GetProduct(ctx, productID)
}

func (c *Catalog) AllProducts(ctx context.Context) ([]model.Product, error) {
	return c.store.ListProducts(ctx)
}

func (c *Catalog) RecentProducts(ctx context.Context) ([]model.Product, error) {
	return c.store.ListRecentProducts(ctx)
}

func (c *Catalog) RecommendProducts(ctx context.Context) ([]model.Product, error) {
	return c.store.ListRecommendProducts(ctx)
}

func (c *Catalog) FreeProducts(ctx context.Context) ([]model.Product, error) {
	return c.store.ListFreeProducts(ctx)
}

func (c *Catalog) ProductComments(ctx context.Context, productID string) ([]model.ProductComment, error) {
	return c.store.ListProductComments(ctx, productID)
}

func (c *Catalog) notifySeller(ctx context.Context, product model.Product, message string) {
	private, err := c.store.GetUserPrivate(ctx, product.SellerID)
	if err != nil {
		log.Log.Warnf("skip notification for %s: %v", product.SellerID, err)
		return
	}
	if private.NotifyToken == nil {
		return
	}
	if err := c.notifier.Send(ctx, *private.NotifyToken, message, false); err != nil {
		log.Log.Warnf("notification to %s failed: %v", product.SellerID, err)
	}
}
