package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// WishlistEntry is a join row between a user and a property. PropertyID
// holds the property's hex object id as stored by the client.
type WishlistEntry struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	WishlistedBy string             `bson:"wishlisted_by" json:"wishlisted_by"`
	PropertyID   string             `bson:"property_id" json:"property_id"`
}
