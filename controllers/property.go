package controllers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/mashfikur/Echo-Estates-Server/middleware"
	"github.com/mashfikur/Echo-Estates-Server/models"
	"github.com/mashfikur/Echo-Estates-Server/store"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const listingCacheTTL = 10 * time.Minute

// AddProperty creates a listing owned by the authenticated agent. New
// listings start pending verification regardless of the submitted payload.
func AddProperty(properties store.PropertyStore, redisClient *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := middleware.UID(r.Context())
		if !ok {
			writeMessage(w, http.StatusUnauthorized, "Unauthorised Access")
			return
		}

		var property models.Property
		if err := json.NewDecoder(r.Body).Decode(&property); err != nil {
			zap.S().Infof("Invalid property payload: %v", err)
			writeMessage(w, http.StatusBadRequest, "Invalid request payload")
			return
		}

		property.ID = primitive.NewObjectID()
		property.AgentID = uid
		property.VerificationStatus = models.VerificationPending

		res, err := properties.Insert(r.Context(), property)
		if err != nil {
			zap.S().Errorf("Insert failed for property: %v", err)
			writeMessage(w, http.StatusInternalServerError, "Failed to create property")
			return
		}

		invalidateListingCache(redisClient)

		writeJSON(w, http.StatusOK, res)
	}
}

// VerifiedProperties is the public search: verified listings only, optional
// case-insensitive title match and price ordering. Results are cached per
// normalized query when redis is configured.
func VerifiedProperties(properties store.PropertyStore, redisClient *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		search := r.URL.Query().Get("search")
		sortTok := r.URL.Query().Get("sort")

		cacheKey := searchCacheKey(search, sortTok)
		if redisClient != nil {
			cached, err := redisClient.Get(r.Context(), cacheKey).Result()
			if err == nil {
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(cached))
				return
			}
			if err != redis.Nil {
				zap.S().Errorf("Redis GET error for key %s: %v", cacheKey, err)
			}
		}

		result, err := properties.SearchVerified(r.Context(), store.PropertySearch{
			Search: search,
			Sort:   store.ParseSortDir(sortTok),
		})
		if err != nil {
			zap.S().Errorf("Error fetching verified properties: %v", err)
			writeMessage(w, http.StatusInternalServerError, "Error fetching properties")
			return
		}

		resultBytes, err := json.Marshal(result)
		if err != nil {
			zap.S().Errorf("Failed to serialize properties: %v", err)
			writeMessage(w, http.StatusInternalServerError, "Failed to encode response")
			return
		}

		if redisClient != nil {
			if err := redisClient.Set(r.Context(), cacheKey, resultBytes, listingCacheTTL).Err(); err != nil {
				zap.S().Errorf("Failed to cache response for key %s: %v", cacheKey, err)
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write(resultBytes)
	}
}

func AdvertisedProperties(properties store.PropertyStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := properties.Advertised(r.Context())
		if err != nil {
			zap.S().Errorf("Error fetching advertised properties: %v", err)
			writeMessage(w, http.StatusInternalServerError, "Error fetching properties")
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}

// PropertyDetails returns a single listing, or a null body when the id
// matches nothing. Absent documents are not an error on this surface.
func PropertyDetails(properties store.PropertyStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]
		objID, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid property ID")
			return
		}

		property, err := properties.ByID(r.Context(), objID)
		if err == store.ErrNotFound {
			writeJSON(w, http.StatusOK, nil)
			return
		}
		if err != nil {
			zap.S().Errorf("Error fetching property %s: %v", id, err)
			writeMessage(w, http.StatusInternalServerError, "Error fetching property")
			return
		}
		writeJSON(w, http.StatusOK, property)
	}
}

func AddedProperties(properties store.PropertyStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]

		result, err := properties.ByAgent(r.Context(), id)
		if err != nil {
			zap.S().Errorf("Error fetching properties for agent %s: %v", id, err)
			writeMessage(w, http.StatusInternalServerError, "Error fetching properties")
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}

// AgentProperties lists every property for the admin verification queue.
func AgentProperties(properties store.PropertyStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := properties.All(r.Context())
		if err != nil {
			zap.S().Errorf("Error fetching properties: %v", err)
			writeMessage(w, http.StatusInternalServerError, "Error fetching properties")
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}

// UpdatePropertyStatus moves a listing through the verification lifecycle.
// Only the closed set of statuses is accepted.
func UpdatePropertyStatus(properties store.PropertyStore, redisClient *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]
		objID, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid property ID")
			return
		}

		status := models.VerificationStatus(r.URL.Query().Get("status"))
		if !models.ValidVerificationStatus(status) {
			writeMessage(w, http.StatusBadRequest, "Invalid status value")
			return
		}

		res, err := properties.SetVerification(r.Context(), objID, status)
		if err != nil {
			zap.S().Errorf("Error updating status of property %s: %v", id, err)
			writeMessage(w, http.StatusInternalServerError, "Failed to update property")
			return
		}

		invalidateListingCache(redisClient)

		writeJSON(w, http.StatusOK, res)
	}
}

// AdvertiseProperty flips the string-typed isAdvertised flag. The persisted
// data stores "true"/"false" literals, so that is the accepted input.
func AdvertiseProperty(properties store.PropertyStore, redisClient *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]
		objID, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid property ID")
			return
		}

		flag := r.URL.Query().Get("status")
		if flag != "true" && flag != "false" {
			writeMessage(w, http.StatusBadRequest, "Invalid status value")
			return
		}

		res, err := properties.SetAdvertised(r.Context(), objID, flag)
		if err != nil {
			zap.S().Errorf("Error advertising property %s: %v", id, err)
			writeMessage(w, http.StatusInternalServerError, "Failed to update property")
			return
		}

		invalidateListingCache(redisClient)

		writeJSON(w, http.StatusOK, res)
	}
}

// UpdateProperty edits a listing's details. The filter carries the owning
// agent id, so editing someone else's listing matches nothing and 403s.
func UpdateProperty(properties store.PropertyStore, redisClient *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := middleware.UID(r.Context())
		if !ok {
			writeMessage(w, http.StatusUnauthorized, "Unauthorised Access")
			return
		}

		id := mux.Vars(r)["id"]
		objID, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid property ID")
			return
		}

		var upd store.PropertyUpdate
		if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
			zap.S().Infof("Invalid update payload: %v", err)
			writeMessage(w, http.StatusBadRequest, "Invalid request payload")
			return
		}

		res, err := properties.UpdateDetails(r.Context(), objID, uid, upd)
		if err != nil {
			zap.S().Errorf("Update failed for property %s: %v", id, err)
			writeMessage(w, http.StatusInternalServerError, "Update failed")
			return
		}
		if res.MatchedCount == 0 {
			writeMessage(w, http.StatusForbidden, "No property found or unauthorized")
			return
		}

		invalidateListingCache(redisClient)

		writeJSON(w, http.StatusOK, res)
	}
}

func DeleteProperty(properties store.PropertyStore, redisClient *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]
		objID, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid property ID")
			return
		}

		res, err := properties.Delete(r.Context(), objID)
		if err != nil {
			zap.S().Errorf("Delete failed for property %s: %v", id, err)
			writeMessage(w, http.StatusInternalServerError, "Delete failed")
			return
		}

		invalidateListingCache(redisClient)

		writeJSON(w, http.StatusOK, res)
	}
}
