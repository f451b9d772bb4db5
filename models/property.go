package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationVerified VerificationStatus = "verified"
	VerificationRejected VerificationStatus = "rejected"
)

func ValidVerificationStatus(s VerificationStatus) bool {
	switch s {
	case VerificationPending, VerificationVerified, VerificationRejected:
		return true
	}
	return false
}

// Property is a listing. IsAdvertised is a string flag ("true"/"false")
// rather than a bool: the persisted data stores it that way and advertised
// lookups compare against the literal "true".
type Property struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	AgentID            string             `bson:"agent_id" json:"agent_id"`
	AgentName          string             `bson:"agent_name,omitempty" json:"agent_name,omitempty"`
	VerificationStatus VerificationStatus `bson:"verification_status" json:"verification_status"`
	IsAdvertised       string             `bson:"isAdvertised,omitempty" json:"isAdvertised,omitempty"`
	Title              string             `bson:"property_title" json:"property_title"`
	Location           string             `bson:"property_location" json:"property_location"`
	Image              string             `bson:"property_image,omitempty" json:"property_image,omitempty"`
	PriceRange         []float64          `bson:"price_range" json:"price_range"`
	Description        string             `bson:"description,omitempty" json:"description,omitempty"`
}

// PriceMin is the sort key for price-ordered search results.
func (p Property) PriceMin() float64 {
	if len(p.PriceRange) == 0 {
		return 0
	}
	return p.PriceRange[0]
}
