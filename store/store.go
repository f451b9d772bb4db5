package store

import (
	"context"
	"errors"

	"github.com/mashfikur/Echo-Estates-Server/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrNotFound is returned by single-document lookups when no document
// matches. Handlers decide whether that maps to an empty 200 body or 403.
var ErrNotFound = errors.New("store: document not found")

// SortDir is the price ordering requested by a search. SortNone keeps the
// store's natural order.
type SortDir int

const (
	SortNone SortDir = iota
	SortAsc
	SortDesc
)

// ParseSortDir maps the query-string token to a direction. Anything other
// than "asc" or "desc" means no explicit ordering.
func ParseSortDir(tok string) SortDir {
	switch tok {
	case "asc":
		return SortAsc
	case "desc":
		return SortDesc
	}
	return SortNone
}

// PropertySearch carries the public search parameters. An empty Search term
// means the title predicate is skipped entirely.
type PropertySearch struct {
	Search string
	Sort   SortDir
}

// PropertyUpdate is the set of fields an owning agent may edit.
type PropertyUpdate struct {
	Title       string    `json:"property_title,omitempty"`
	Location    string    `json:"property_location,omitempty"`
	Image       string    `json:"property_image,omitempty"`
	PriceRange  []float64 `json:"price_range,omitempty"`
	Description string    `json:"description,omitempty"`
}

type UserStore interface {
	// FindByUserID looks a user up by the external identity provider's id.
	FindByUserID(ctx context.Context, userID string) (*models.User, error)
	// EnsureUser inserts u unless a user with the same userId already
	// exists. The insert is a single conditional operation, so concurrent
	// calls cannot create duplicates. created is false on the no-op path.
	EnsureUser(ctx context.Context, u models.User) (res *models.InsertResult, created bool, err error)
	All(ctx context.Context) ([]models.User, error)
	SetRole(ctx context.Context, userID string, role models.Role) (*models.UpdateResult, error)
	Delete(ctx context.Context, userID string) (*models.DeleteResult, error)
}

type PropertyStore interface {
	Insert(ctx context.Context, p models.Property) (*models.InsertResult, error)
	ByID(ctx context.Context, id primitive.ObjectID) (*models.Property, error)
	ByAgent(ctx context.Context, agentID string) ([]models.Property, error)
	All(ctx context.Context) ([]models.Property, error)
	// SearchVerified returns verified listings matching q. The title match
	// is a case-insensitive substring test.
	SearchVerified(ctx context.Context, q PropertySearch) ([]models.Property, error)
	// Advertised returns listings whose isAdvertised flag equals the
	// string literal "true".
	Advertised(ctx context.Context) ([]models.Property, error)
	ByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Property, error)
	SetVerification(ctx context.Context, id primitive.ObjectID, status models.VerificationStatus) (*models.UpdateResult, error)
	SetAdvertised(ctx context.Context, id primitive.ObjectID, flag string) (*models.UpdateResult, error)
	// UpdateDetails applies upd to the property only if agentID owns it.
	UpdateDetails(ctx context.Context, id primitive.ObjectID, agentID string, upd PropertyUpdate) (*models.UpdateResult, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*models.DeleteResult, error)
	DeleteByAgent(ctx context.Context, agentID string) (*models.DeleteResult, error)
}

type WishlistStore interface {
	Add(ctx context.Context, e models.WishlistEntry) (*models.InsertResult, error)
	ByUser(ctx context.Context, userID string) ([]models.WishlistEntry, error)
	// RemoveByProperty bulk-deletes every entry pointing at propertyID.
	RemoveByProperty(ctx context.Context, propertyID string) (*models.DeleteResult, error)
}

type OfferStore interface {
	Insert(ctx context.Context, o models.Offer) (*models.InsertResult, error)
	ByID(ctx context.Context, id primitive.ObjectID) (*models.Offer, error)
	ByBuyer(ctx context.Context, buyerID string) ([]models.Offer, error)
	ByAgent(ctx context.Context, agentID string) ([]models.Offer, error)
	SoldByAgent(ctx context.Context, agentID string) ([]models.Offer, error)
	SetStatus(ctx context.Context, id primitive.ObjectID, status models.OfferStatus) (*models.UpdateResult, error)
	// Complete forces the offer's status to "bought" and attaches
	// o.TranxID. There is deliberately no prior-state guard; a repeat call
	// overwrites the transaction id.
	Complete(ctx context.Context, id primitive.ObjectID, o models.Offer) (*models.UpdateResult, error)
}

type ReviewStore interface {
	Insert(ctx context.Context, rv models.Review) (*models.InsertResult, error)
	// Latest returns at most n reviews, newest first.
	Latest(ctx context.Context, n int64) ([]models.Review, error)
	All(ctx context.Context) ([]models.Review, error)
	ByProperty(ctx context.Context, propertyID string) ([]models.Review, error)
	ByReviewer(ctx context.Context, reviewerID string) ([]models.Review, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*models.DeleteResult, error)
}

// Stores bundles the collection-backed stores handed to the router, so
// handlers receive explicit dependencies instead of package globals.
type Stores struct {
	Users      UserStore
	Properties PropertyStore
	Wishlist   WishlistStore
	Offers     OfferStore
	Reviews    ReviewStore
}
