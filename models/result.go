package models

// Mutation results mirror the document driver's native shapes so responses
// keep the payloads clients of the original API already parse.

type InsertResult struct {
	InsertedID interface{} `json:"insertedId"`
}

type UpdateResult struct {
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
}

type DeleteResult struct {
	DeletedCount int64 `json:"deletedCount"`
}
