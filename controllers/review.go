package controllers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/mashfikur/Echo-Estates-Server/models"
	"github.com/mashfikur/Echo-Estates-Server/store"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// publicReviewLimit caps the public feed at the latest handful of reviews.
const publicReviewLimit = 6

func AddReview(reviews store.ReviewStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var review models.Review
		if err := json.NewDecoder(r.Body).Decode(&review); err != nil {
			zap.S().Infof("Invalid review payload: %v", err)
			writeMessage(w, http.StatusBadRequest, "Invalid request payload")
			return
		}

		review.ID = primitive.NewObjectID()
		review.CreatedAt = time.Now()

		res, err := reviews.Insert(r.Context(), review)
		if err != nil {
			zap.S().Errorf("Failed to insert review: %v", err)
			writeMessage(w, http.StatusInternalServerError, "Failed to add review")
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

// PublicReviews serves the landing-page feed, newest first.
func PublicReviews(reviews store.ReviewStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := reviews.Latest(r.Context(), publicReviewLimit)
		if err != nil {
			zap.S().Errorf("Failed to fetch latest reviews: %v", err)
			writeMessage(w, http.StatusInternalServerError, "Failed to fetch reviews")
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}

func AllReviews(reviews store.ReviewStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := reviews.All(r.Context())
		if err != nil {
			zap.S().Errorf("Failed to fetch reviews: %v", err)
			writeMessage(w, http.StatusInternalServerError, "Failed to fetch reviews")
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}

func PropertyReviews(reviews store.ReviewStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]

		result, err := reviews.ByProperty(r.Context(), id)
		if err != nil {
			zap.S().Errorf("Failed to fetch reviews of property %s: %v", id, err)
			writeMessage(w, http.StatusInternalServerError, "Failed to fetch reviews")
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}

func UserReviews(reviews store.ReviewStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]

		result, err := reviews.ByReviewer(r.Context(), id)
		if err != nil {
			zap.S().Errorf("Failed to fetch reviews by user %s: %v", id, err)
			writeMessage(w, http.StatusInternalServerError, "Failed to fetch reviews")
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}

func DeleteReview(reviews store.ReviewStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]
		objID, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid review ID")
			return
		}

		res, err := reviews.Delete(r.Context(), objID)
		if err != nil {
			zap.S().Errorf("Failed to delete review %s: %v", id, err)
			writeMessage(w, http.StatusInternalServerError, "Failed to delete review")
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}
