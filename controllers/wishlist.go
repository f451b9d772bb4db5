package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/mashfikur/Echo-Estates-Server/middleware"
	"github.com/mashfikur/Echo-Estates-Server/models"
	"github.com/mashfikur/Echo-Estates-Server/store"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func AddToWishlist(wishlist store.WishlistStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var entry models.WishlistEntry
		if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
			zap.S().Infof("Invalid wishlist payload: %v", err)
			writeMessage(w, http.StatusBadRequest, "Invalid request payload")
			return
		}
		if entry.WishlistedBy == "" || entry.PropertyID == "" {
			writeMessage(w, http.StatusBadRequest, "wishlisted_by and property_id are required")
			return
		}

		res, err := wishlist.Add(r.Context(), entry)
		if err != nil {
			zap.S().Errorf("Failed to add wishlist entry: %v", err)
			writeMessage(w, http.StatusInternalServerError, "Failed to add to wishlist")
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

// GetWishlist resolves a user's wishlist to full property documents via a
// two-step join: collect the wishlisted property ids, then fetch the
// matching properties. Callers may only read their own wishlist.
func GetWishlist(wishlist store.WishlistStore, properties store.PropertyStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := middleware.UID(r.Context())
		if !ok {
			writeMessage(w, http.StatusUnauthorized, "Unauthorised Access")
			return
		}

		id := mux.Vars(r)["id"]
		if uid != id {
			writeMessage(w, http.StatusForbidden, "Forbidden Access")
			return
		}

		entries, err := wishlist.ByUser(r.Context(), id)
		if err != nil {
			zap.S().Errorf("Failed to fetch wishlist for user %s: %v", id, err)
			writeMessage(w, http.StatusInternalServerError, "Failed to fetch wishlist")
			return
		}

		ids := make([]primitive.ObjectID, 0, len(entries))
		for _, entry := range entries {
			objID, err := primitive.ObjectIDFromHex(entry.PropertyID)
			if err != nil {
				zap.S().Infof("Skipping wishlist entry with bad property id %q", entry.PropertyID)
				continue
			}
			ids = append(ids, objID)
		}

		result, err := properties.ByIDs(r.Context(), ids)
		if err != nil {
			zap.S().Errorf("Failed to resolve wishlist properties for user %s: %v", id, err)
			writeMessage(w, http.StatusInternalServerError, "Failed to fetch wishlist")
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}

// RemoveWishlist bulk-deletes every wishlist entry for a property id.
func RemoveWishlist(wishlist store.WishlistStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemID := mux.Vars(r)["itemId"]

		res, err := wishlist.RemoveByProperty(r.Context(), itemID)
		if err != nil {
			zap.S().Errorf("Failed to remove wishlist entries for property %s: %v", itemID, err)
			writeMessage(w, http.StatusInternalServerError, "Failed to remove from wishlist")
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}
