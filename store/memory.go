package store

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/mashfikur/Echo-Estates-Server/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NewMemoryStores returns stores backed by in-process maps, used by the
// handler and middleware tests and handy for local development without a
// mongod. Each store guards its data with its own mutex; the cross-store
// sequences (fraud cascade) are as non-atomic here as they are on mongo.
func NewMemoryStores() *Stores {
	return &Stores{
		Users:      &memUserStore{users: map[string]models.User{}},
		Properties: &memPropertyStore{},
		Wishlist:   &memWishlistStore{},
		Offers:     &memOfferStore{},
		Reviews:    &memReviewStore{},
	}
}

type memUserStore struct {
	mu    sync.Mutex
	users map[string]models.User
}

func (s *memUserStore) FindByUserID(_ context.Context, userID string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (s *memUserStore) EnsureUser(_ context.Context, u models.User) (*models.InsertResult, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[u.UserID]; ok {
		return nil, false, nil
	}
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	s.users[u.UserID] = u
	return &models.InsertResult{InsertedID: u.ID}, true, nil
}

func (s *memUserStore) All(_ context.Context) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.User{}
	for _, u := range s.users {
		out = append(out, u)
	}
	return out, nil
}

func (s *memUserStore) SetRole(_ context.Context, userID string, role models.Role) (*models.UpdateResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return &models.UpdateResult{}, nil
	}
	modified := int64(0)
	if u.Role != role {
		u.Role = role
		s.users[userID] = u
		modified = 1
	}
	return &models.UpdateResult{MatchedCount: 1, ModifiedCount: modified}, nil
}

func (s *memUserStore) Delete(_ context.Context, userID string) (*models.DeleteResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[userID]; !ok {
		return &models.DeleteResult{}, nil
	}
	delete(s.users, userID)
	return &models.DeleteResult{DeletedCount: 1}, nil
}

type memPropertyStore struct {
	mu         sync.Mutex
	properties []models.Property
}

func (s *memPropertyStore) Insert(_ context.Context, p models.Property) (*models.InsertResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	s.properties = append(s.properties, p)
	return &models.InsertResult{InsertedID: p.ID}, nil
}

func (s *memPropertyStore) ByID(_ context.Context, id primitive.ObjectID) (*models.Property, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.properties {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, ErrNotFound
}

func (s *memPropertyStore) filter(keep func(models.Property) bool) []models.Property {
	out := []models.Property{}
	for _, p := range s.properties {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}

func (s *memPropertyStore) ByAgent(_ context.Context, agentID string) ([]models.Property, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter(func(p models.Property) bool { return p.AgentID == agentID }), nil
}

func (s *memPropertyStore) All(_ context.Context) ([]models.Property, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter(func(models.Property) bool { return true }), nil
}

func (s *memPropertyStore) SearchVerified(_ context.Context, q PropertySearch) ([]models.Property, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	term := strings.ToLower(q.Search)
	out := s.filter(func(p models.Property) bool {
		if p.VerificationStatus != models.VerificationVerified {
			return false
		}
		if term == "" {
			return true
		}
		return strings.Contains(strings.ToLower(p.Title), term)
	})
	switch q.Sort {
	case SortAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].PriceMin() < out[j].PriceMin() })
	case SortDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].PriceMin() > out[j].PriceMin() })
	}
	return out, nil
}

func (s *memPropertyStore) Advertised(_ context.Context) ([]models.Property, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter(func(p models.Property) bool { return p.IsAdvertised == "true" }), nil
}

func (s *memPropertyStore) ByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.Property, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	want := map[primitive.ObjectID]bool{}
	for _, id := range ids {
		want[id] = true
	}
	return s.filter(func(p models.Property) bool { return want[p.ID] }), nil
}

// apply runs mut against the matching property. mut reports whether it
// changed anything so no-op writes yield ModifiedCount 0, the same way
// mongo counts them.
func (s *memPropertyStore) apply(id primitive.ObjectID, agentID string, mut func(*models.Property) bool) *models.UpdateResult {
	for i := range s.properties {
		if s.properties[i].ID != id {
			continue
		}
		if agentID != "" && s.properties[i].AgentID != agentID {
			continue
		}
		modified := int64(0)
		if mut(&s.properties[i]) {
			modified = 1
		}
		return &models.UpdateResult{MatchedCount: 1, ModifiedCount: modified}
	}
	return &models.UpdateResult{}
}

func (s *memPropertyStore) SetVerification(_ context.Context, id primitive.ObjectID, status models.VerificationStatus) (*models.UpdateResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.apply(id, "", func(p *models.Property) bool {
		if p.VerificationStatus == status {
			return false
		}
		p.VerificationStatus = status
		return true
	}), nil
}

func (s *memPropertyStore) SetAdvertised(_ context.Context, id primitive.ObjectID, flag string) (*models.UpdateResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.apply(id, "", func(p *models.Property) bool {
		if p.IsAdvertised == flag {
			return false
		}
		p.IsAdvertised = flag
		return true
	}), nil
}

func (s *memPropertyStore) UpdateDetails(_ context.Context, id primitive.ObjectID, agentID string, upd PropertyUpdate) (*models.UpdateResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.apply(id, agentID, func(p *models.Property) bool {
		changed := false
		if upd.Title != "" && upd.Title != p.Title {
			p.Title = upd.Title
			changed = true
		}
		if upd.Location != "" && upd.Location != p.Location {
			p.Location = upd.Location
			changed = true
		}
		if upd.Image != "" && upd.Image != p.Image {
			p.Image = upd.Image
			changed = true
		}
		if len(upd.PriceRange) > 0 && !equalPrices(upd.PriceRange, p.PriceRange) {
			p.PriceRange = upd.PriceRange
			changed = true
		}
		if upd.Description != "" && upd.Description != p.Description {
			p.Description = upd.Description
			changed = true
		}
		return changed
	}), nil
}

func equalPrices(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (s *memPropertyStore) Delete(_ context.Context, id primitive.ObjectID) (*models.DeleteResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.properties {
		if s.properties[i].ID == id {
			s.properties = append(s.properties[:i], s.properties[i+1:]...)
			return &models.DeleteResult{DeletedCount: 1}, nil
		}
	}
	return &models.DeleteResult{}, nil
}

func (s *memPropertyStore) DeleteByAgent(_ context.Context, agentID string) (*models.DeleteResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.properties[:0]
	deleted := int64(0)
	for _, p := range s.properties {
		if p.AgentID == agentID {
			deleted++
			continue
		}
		kept = append(kept, p)
	}
	s.properties = kept
	return &models.DeleteResult{DeletedCount: deleted}, nil
}

type memWishlistStore struct {
	mu      sync.Mutex
	entries []models.WishlistEntry
}

func (s *memWishlistStore) Add(_ context.Context, e models.WishlistEntry) (*models.InsertResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e.ID.IsZero() {
		e.ID = primitive.NewObjectID()
	}
	s.entries = append(s.entries, e)
	return &models.InsertResult{InsertedID: e.ID}, nil
}

func (s *memWishlistStore) ByUser(_ context.Context, userID string) ([]models.WishlistEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.WishlistEntry{}
	for _, e := range s.entries {
		if e.WishlistedBy == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *memWishlistStore) RemoveByProperty(_ context.Context, propertyID string) (*models.DeleteResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.entries[:0]
	deleted := int64(0)
	for _, e := range s.entries {
		if e.PropertyID == propertyID {
			deleted++
			continue
		}
		kept = append(kept, e)
	}
	s.entries = kept
	return &models.DeleteResult{DeletedCount: deleted}, nil
}

type memOfferStore struct {
	mu     sync.Mutex
	offers []models.Offer
}

func (s *memOfferStore) Insert(_ context.Context, o models.Offer) (*models.InsertResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if o.ID.IsZero() {
		o.ID = primitive.NewObjectID()
	}
	s.offers = append(s.offers, o)
	return &models.InsertResult{InsertedID: o.ID}, nil
}

func (s *memOfferStore) ByID(_ context.Context, id primitive.ObjectID) (*models.Offer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.offers {
		if o.ID == id {
			return &o, nil
		}
	}
	return nil, ErrNotFound
}

func (s *memOfferStore) filter(keep func(models.Offer) bool) []models.Offer {
	out := []models.Offer{}
	for _, o := range s.offers {
		if keep(o) {
			out = append(out, o)
		}
	}
	return out
}

func (s *memOfferStore) ByBuyer(_ context.Context, buyerID string) ([]models.Offer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter(func(o models.Offer) bool { return o.BuyerID == buyerID }), nil
}

func (s *memOfferStore) ByAgent(_ context.Context, agentID string) ([]models.Offer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter(func(o models.Offer) bool { return o.AgentID == agentID }), nil
}

func (s *memOfferStore) SoldByAgent(_ context.Context, agentID string) ([]models.Offer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter(func(o models.Offer) bool {
		return o.AgentID == agentID && o.Status == models.OfferBought
	}), nil
}

func (s *memOfferStore) SetStatus(_ context.Context, id primitive.ObjectID, status models.OfferStatus) (*models.UpdateResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.offers {
		if s.offers[i].ID == id {
			s.offers[i].Status = status
			return &models.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
		}
	}
	return &models.UpdateResult{}, nil
}

func (s *memOfferStore) Complete(_ context.Context, id primitive.ObjectID, o models.Offer) (*models.UpdateResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.offers {
		if s.offers[i].ID == id {
			s.offers[i].Status = models.OfferBought
			s.offers[i].TranxID = o.TranxID
			return &models.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
		}
	}
	return &models.UpdateResult{}, nil
}

type memReviewStore struct {
	mu      sync.Mutex
	reviews []models.Review
}

func (s *memReviewStore) Insert(_ context.Context, rv models.Review) (*models.InsertResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rv.ID.IsZero() {
		rv.ID = primitive.NewObjectID()
	}
	s.reviews = append(s.reviews, rv)
	return &models.InsertResult{InsertedID: rv.ID}, nil
}

func (s *memReviewStore) filter(keep func(models.Review) bool) []models.Review {
	out := []models.Review{}
	for _, rv := range s.reviews {
		if keep(rv) {
			out = append(out, rv)
		}
	}
	return out
}

func (s *memReviewStore) Latest(_ context.Context, n int64) ([]models.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.filter(func(models.Review) bool { return true })
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if int64(len(out)) > n {
		out = out[:n]
	}
	return out, nil
}

func (s *memReviewStore) All(_ context.Context) ([]models.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter(func(models.Review) bool { return true }), nil
}

func (s *memReviewStore) ByProperty(_ context.Context, propertyID string) ([]models.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter(func(rv models.Review) bool { return rv.PropertyID == propertyID }), nil
}

func (s *memReviewStore) ByReviewer(_ context.Context, reviewerID string) ([]models.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter(func(rv models.Review) bool { return rv.ReviewerID == reviewerID }), nil
}

func (s *memReviewStore) Delete(_ context.Context, id primitive.ObjectID) (*models.DeleteResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.reviews {
		if s.reviews[i].ID == id {
			s.reviews = append(s.reviews[:i], s.reviews[i+1:]...)
			return &models.DeleteResult{DeletedCount: 1}, nil
		}
	}
	return &models.DeleteResult{}, nil
}
