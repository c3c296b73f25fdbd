package model

import "time"

// ProductStatus tracks where a product sits in its lifecycle. A product
// is selling unless exactly one open trade references it (trading) or a
// finished trade transitioned it to soldOut.
type ProductStatus string

const (
	ProductStatusSelling ProductStatus = "selling"
	ProductStatusTrading ProductStatus = "trading"
	ProductStatusSoldOut ProductStatus = "soldOut"
)

// Product is a published listing. Seller fields are a snapshot taken at
// creation time and deliberately never re-synced with the User record.
type Product struct {
	ID               string        `bson:"_id"`
	Name             string        `bson:"name"`
	Price            int32         `bson:"price"`
	Description      string        `bson:"description"`
	Condition        Condition     `bson:"condition"`
	Category         Category      `bson:"category"`
	ThumbnailImageID string        `bson:"thumbnailImageId"`
	ImageIDs         []string      `bson:"imageIds"`
	LikedCount       int32         `bson:"likedCount"`
	ViewedCount      int32         `bson:"viewedCount"`
	Status           ProductStatus `bson:"status"`
	SellerID         string        `bson:"sellerId"`
	SellerName       string        `bson:"sellerName"`
	SellerImageID    string        `bson:"sellerImageId"`
	CreatedAt        time.Time     `bson:"createdAt"`
	UpdatedAt        time.Time     `bson:"updatedAt"`
}

// ProductUpdate carries the editable listing fields for an update.
type ProductUpdate struct {
	Name             string
	Price            int32
	Description      string
	Condition        Condition
	Category         Category
	ThumbnailImageID string
	ImageIDs         []string
	UpdatedAt        time.Time
}

// DeletedProduct is the archive snapshot kept after a seller removes a
// live listing.
type DeletedProduct struct {
	Product   `bson:",inline"`
	DeletedAt time.Time `bson:"deletedAt"`
}

// ProductComment is an immutable append-only comment on a product, with
// a speaker snapshot denormalized at write time.
type ProductComment struct {
	ID             string    `bson:"_id"`
	ProductID      string    `bson:"productId"`
	Body           string    `bson:"body"`
	SpeakerID      string    `bson:"speakerId"`
	SpeakerName    string    `bson:"speakerName"`
	SpeakerImageID string    `bson:"speakerImageId"`
	CreatedAt      time.Time `bson:"createdAt"`
}

// DraftProduct is a per-user unpublished candidate listing. Price,
// condition and category stay nullable while the draft is composed;
// publishing is a separate SellProduct call, never automatic.
type DraftProduct struct {
	ID               string     `bson:"_id"`
	UserID           string     `bson:"userId"`
	Name             string     `bson:"name"`
	Description      string     `bson:"description"`
	Price            *int32     `bson:"price"`
	Condition        *Condition `bson:"condition"`
	Category         *Category  `bson:"category"`
	ThumbnailImageID string     `bson:"thumbnailImageId"`
	ImageIDs         []string   `bson:"imageIds"`
	CreatedAt        time.Time  `bson:"createdAt"`
	UpdatedAt        time.Time  `bson:"updatedAt"`
}

// DraftUpdate carries the editable fields of a draft.
type DraftUpdate struct {
	Name             string
	Description      string
	Price            *int32
	Condition        *Condition
	Category         *Category
	ThumbnailImageID string
	ImageIDs         []string
	UpdatedAt        time.Time
}
