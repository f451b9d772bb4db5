package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type OfferStatus string

const (
	OfferPending  OfferStatus = "pending"
	OfferAccepted OfferStatus = "accepted"
	OfferRejected OfferStatus = "rejected"
	OfferBought   OfferStatus = "bought"
)

// ValidOfferDecision reports whether s is a status an agent may move a
// pending offer to. "bought" is reserved for transaction completion.
func ValidOfferDecision(s OfferStatus) bool {
	return s == OfferAccepted || s == OfferRejected
}

type Offer struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	PropertyID   string             `bson:"property_id" json:"property_id"`
	Title        string             `bson:"property_title,omitempty" json:"property_title,omitempty"`
	Location     string             `bson:"property_location,omitempty" json:"property_location,omitempty"`
	AgentID      string             `bson:"agent_id" json:"agent_id"`
	BuyerID      string             `bson:"buyer_id" json:"buyer_id"`
	BuyerName    string             `bson:"buyer_name,omitempty" json:"buyer_name,omitempty"`
	BuyerEmail   string             `bson:"buyer_email,omitempty" json:"buyer_email,omitempty"`
	OfferedPrice float64            `bson:"offered_price" json:"offered_price"`
	Status       OfferStatus        `bson:"status" json:"status"`
	TranxID      string             `bson:"tranx_id,omitempty" json:"tranx_id,omitempty"`
}
