package store

import (
	"context"

	"github.com/mashfikur/Echo-Estates-Server/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// NewMongoStores wires every store to its collection in db.
func NewMongoStores(db *mongo.Database) *Stores {
	return &Stores{
		Users:      &mongoUserStore{col: db.Collection("users")},
		Properties: &mongoPropertyStore{col: db.Collection("properties")},
		Wishlist:   &mongoWishlistStore{col: db.Collection("wishlist")},
		Offers:     &mongoOfferStore{col: db.Collection("offered")},
		Reviews:    &mongoReviewStore{col: db.Collection("reviews")},
	}
}

type mongoUserStore struct {
	col *mongo.Collection
}

func (s *mongoUserStore) FindByUserID(ctx context.Context, userID string) (*models.User, error) {
	var u models.User
	err := s.col.FindOne(ctx, bson.M{"userId": userID}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *mongoUserStore) EnsureUser(ctx context.Context, u models.User) (*models.InsertResult, bool, error) {
	// Conditional insert: the upsert matches on userId and only writes on
	// the insert path, so two concurrent calls cannot both create a row.
	res, err := s.col.UpdateOne(ctx,
		bson.M{"userId": u.UserID},
		bson.M{"$setOnInsert": bson.M{
			"userId": u.UserID,
			"name":   u.Name,
			"email":  u.Email,
			"role":   u.Role,
		}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return nil, false, err
	}
	if res.UpsertedCount == 0 {
		return nil, false, nil
	}
	return &models.InsertResult{InsertedID: res.UpsertedID}, true, nil
}

func (s *mongoUserStore) All(ctx context.Context) ([]models.User, error) {
	cursor, err := s.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *mongoUserStore) SetRole(ctx context.Context, userID string, role models.Role) (*models.UpdateResult, error) {
	res, err := s.col.UpdateOne(ctx, bson.M{"userId": userID}, bson.M{"$set": bson.M{"role": role}})
	if err != nil {
		return nil, err
	}
	return &models.UpdateResult{MatchedCount: res.MatchedCount, ModifiedCount: res.ModifiedCount}, nil
}

func (s *mongoUserStore) Delete(ctx context.Context, userID string) (*models.DeleteResult, error) {
	res, err := s.col.DeleteOne(ctx, bson.M{"userId": userID})
	if err != nil {
		return nil, err
	}
	return &models.DeleteResult{DeletedCount: res.DeletedCount}, nil
}

type mongoPropertyStore struct {
	col *mongo.Collection
}

func (s *mongoPropertyStore) Insert(ctx context.Context, p models.Property) (*models.InsertResult, error) {
	res, err := s.col.InsertOne(ctx, p)
	if err != nil {
		return nil, err
	}
	return &models.InsertResult{InsertedID: res.InsertedID}, nil
}

func (s *mongoPropertyStore) ByID(ctx context.Context, id primitive.ObjectID) (*models.Property, error) {
	var p models.Property
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *mongoPropertyStore) find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Property, error) {
	cursor, err := s.col.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	properties := []models.Property{}
	if err := cursor.All(ctx, &properties); err != nil {
		return nil, err
	}
	return properties, nil
}

func (s *mongoPropertyStore) ByAgent(ctx context.Context, agentID string) ([]models.Property, error) {
	return s.find(ctx, bson.M{"agent_id": agentID})
}

func (s *mongoPropertyStore) All(ctx context.Context) ([]models.Property, error) {
	return s.find(ctx, bson.M{})
}

func (s *mongoPropertyStore) SearchVerified(ctx context.Context, q PropertySearch) ([]models.Property, error) {
	filter := bson.M{"verification_status": models.VerificationVerified}
	if q.Search != "" {
		// Absent search skips the predicate; building a regex from an
		// empty term would match everything through the wrong path.
		filter["property_title"] = bson.M{"$regex": primitive.Regex{Pattern: q.Search, Options: "i"}}
	}

	opts := options.Find()
	switch q.Sort {
	case SortAsc:
		opts.SetSort(bson.D{{Key: "price_range.0", Value: 1}})
	case SortDesc:
		opts.SetSort(bson.D{{Key: "price_range.0", Value: -1}})
	}
	return s.find(ctx, filter, opts)
}

func (s *mongoPropertyStore) Advertised(ctx context.Context) ([]models.Property, error) {
	// String-typed flag, per the persisted data.
	return s.find(ctx, bson.M{"isAdvertised": "true"})
}

func (s *mongoPropertyStore) ByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Property, error) {
	if len(ids) == 0 {
		return []models.Property{}, nil
	}
	return s.find(ctx, bson.M{"_id": bson.M{"$in": ids}})
}

func (s *mongoPropertyStore) update(ctx context.Context, filter, set bson.M) (*models.UpdateResult, error) {
	res, err := s.col.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return nil, err
	}
	return &models.UpdateResult{MatchedCount: res.MatchedCount, ModifiedCount: res.ModifiedCount}, nil
}

func (s *mongoPropertyStore) SetVerification(ctx context.Context, id primitive.ObjectID, status models.VerificationStatus) (*models.UpdateResult, error) {
	return s.update(ctx, bson.M{"_id": id}, bson.M{"verification_status": status})
}

func (s *mongoPropertyStore) SetAdvertised(ctx context.Context, id primitive.ObjectID, flag string) (*models.UpdateResult, error) {
	return s.update(ctx, bson.M{"_id": id}, bson.M{"isAdvertised": flag})
}

func (s *mongoPropertyStore) UpdateDetails(ctx context.Context, id primitive.ObjectID, agentID string, upd PropertyUpdate) (*models.UpdateResult, error) {
	set := bson.M{}
	if upd.Title != "" {
		set["property_title"] = upd.Title
	}
	if upd.Location != "" {
		set["property_location"] = upd.Location
	}
	if upd.Image != "" {
		set["property_image"] = upd.Image
	}
	if len(upd.PriceRange) > 0 {
		set["price_range"] = upd.PriceRange
	}
	if upd.Description != "" {
		set["description"] = upd.Description
	}
	if len(set) == 0 {
		return &models.UpdateResult{}, nil
	}
	// Ownership is part of the filter, so a non-owner matches nothing.
	return s.update(ctx, bson.M{"_id": id, "agent_id": agentID}, set)
}

func (s *mongoPropertyStore) Delete(ctx context.Context, id primitive.ObjectID) (*models.DeleteResult, error) {
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return nil, err
	}
	return &models.DeleteResult{DeletedCount: res.DeletedCount}, nil
}

func (s *mongoPropertyStore) DeleteByAgent(ctx context.Context, agentID string) (*models.DeleteResult, error) {
	res, err := s.col.DeleteMany(ctx, bson.M{"agent_id": agentID})
	if err != nil {
		return nil, err
	}
	return &models.DeleteResult{DeletedCount: res.DeletedCount}, nil
}

type mongoWishlistStore struct {
	col *mongo.Collection
}

func (s *mongoWishlistStore) Add(ctx context.Context, e models.WishlistEntry) (*models.InsertResult, error) {
	res, err := s.col.InsertOne(ctx, e)
	if err != nil {
		return nil, err
	}
	return &models.InsertResult{InsertedID: res.InsertedID}, nil
}

func (s *mongoWishlistStore) ByUser(ctx context.Context, userID string) ([]models.WishlistEntry, error) {
	cursor, err := s.col.Find(ctx, bson.M{"wishlisted_by": userID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	entries := []models.WishlistEntry{}
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *mongoWishlistStore) RemoveByProperty(ctx context.Context, propertyID string) (*models.DeleteResult, error) {
	res, err := s.col.DeleteMany(ctx, bson.M{"property_id": propertyID})
	if err != nil {
		return nil, err
	}
	return &models.DeleteResult{DeletedCount: res.DeletedCount}, nil
}

type mongoOfferStore struct {
	col *mongo.Collection
}

func (s *mongoOfferStore) Insert(ctx context.Context, o models.Offer) (*models.InsertResult, error) {
	res, err := s.col.InsertOne(ctx, o)
	if err != nil {
		return nil, err
	}
	return &models.InsertResult{InsertedID: res.InsertedID}, nil
}

func (s *mongoOfferStore) ByID(ctx context.Context, id primitive.ObjectID) (*models.Offer, error) {
	var o models.Offer
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&o)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (s *mongoOfferStore) find(ctx context.Context, filter bson.M) ([]models.Offer, error) {
	cursor, err := s.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	offers := []models.Offer{}
	if err := cursor.All(ctx, &offers); err != nil {
		return nil, err
	}
	return offers, nil
}

func (s *mongoOfferStore) ByBuyer(ctx context.Context, buyerID string) ([]models.Offer, error) {
	return s.find(ctx, bson.M{"buyer_id": buyerID})
}

func (s *mongoOfferStore) ByAgent(ctx context.Context, agentID string) ([]models.Offer, error) {
	return s.find(ctx, bson.M{"agent_id": agentID})
}

func (s *mongoOfferStore) SoldByAgent(ctx context.Context, agentID string) ([]models.Offer, error) {
	return s.find(ctx, bson.M{"agent_id": agentID, "status": models.OfferBought})
}

func (s *mongoOfferStore) SetStatus(ctx context.Context, id primitive.ObjectID, status models.OfferStatus) (*models.UpdateResult, error) {
	res, err := s.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return nil, err
	}
	return &models.UpdateResult{MatchedCount: res.MatchedCount, ModifiedCount: res.ModifiedCount}, nil
}

func (s *mongoOfferStore) Complete(ctx context.Context, id primitive.ObjectID, o models.Offer) (*models.UpdateResult, error) {
	res, err := s.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"status":   models.OfferBought,
		"tranx_id": o.TranxID,
	}})
	if err != nil {
		return nil, err
	}
	return &models.UpdateResult{MatchedCount: res.MatchedCount, ModifiedCount: res.ModifiedCount}, nil
}

type mongoReviewStore struct {
	col *mongo.Collection
}

func (s *mongoReviewStore) Insert(ctx context.Context, rv models.Review) (*models.InsertResult, error) {
	res, err := s.col.InsertOne(ctx, rv)
	if err != nil {
		return nil, err
	}
	return &models.InsertResult{InsertedID: res.InsertedID}, nil
}

func (s *mongoReviewStore) find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Review, error) {
	cursor, err := s.col.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	reviews := []models.Review{}
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

func (s *mongoReviewStore) Latest(ctx context.Context, n int64) ([]models.Review, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(n)
	return s.find(ctx, bson.M{}, opts)
}

func (s *mongoReviewStore) All(ctx context.Context) ([]models.Review, error) {
	return s.find(ctx, bson.M{})
}

func (s *mongoReviewStore) ByProperty(ctx context.Context, propertyID string) ([]models.Review, error) {
	return s.find(ctx, bson.M{"property_id": propertyID})
}

func (s *mongoReviewStore) ByReviewer(ctx context.Context, reviewerID string) ([]models.Review, error) {
	return s.find(ctx, bson.M{"reviewer_id": reviewerID})
}

func (s *mongoReviewStore) Delete(ctx context.Context, id primitive.ObjectID) (*models.DeleteResult, error) {
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return nil, err
	}
	return &models.DeleteResult{DeletedCount: res.DeletedCount}, nil
}
