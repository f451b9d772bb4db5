package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Review struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	PropertyID    string             `bson:"property_id" json:"property_id"`
	PropertyTitle string             `bson:"property_title,omitempty" json:"property_title,omitempty"`
	ReviewerID    string             `bson:"reviewer_id" json:"reviewer_id"`
	ReviewerName  string             `bson:"reviewer_name,omitempty" json:"reviewer_name,omitempty"`
	ReviewerImage string             `bson:"reviewer_image,omitempty" json:"reviewer_image,omitempty"`
	Description   string             `bson:"review_description" json:"review_description"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
}
