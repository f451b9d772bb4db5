package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/mashfikur/Echo-Estates-Server/models"
	"github.com/mashfikur/Echo-Estates-Server/store"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// AddOffer records a buyer's offer on a property. Offers always enter the
// lifecycle as pending, whatever the payload claims.
func AddOffer(offers store.OfferStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var offer models.Offer
		if err := json.NewDecoder(r.Body).Decode(&offer); err != nil {
			zap.S().Infof("Invalid offer payload: %v", err)
			writeMessage(w, http.StatusBadRequest, "Invalid request payload")
			return
		}

		offer.ID = primitive.NewObjectID()
		offer.Status = models.OfferPending
		offer.TranxID = ""

		res, err := offers.Insert(r.Context(), offer)
		if err != nil {
			zap.S().Errorf("Failed to insert offer: %v", err)
			writeMessage(w, http.StatusInternalServerError, "Failed to create offer")
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

func OfferedProperties(offers store.OfferStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]

		result, err := offers.ByBuyer(r.Context(), id)
		if err != nil {
			zap.S().Errorf("Failed to fetch offers of buyer %s: %v", id, err)
			writeMessage(w, http.StatusInternalServerError, "Failed to fetch offers")
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}

func RequestedProperties(offers store.OfferStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]

		result, err := offers.ByAgent(r.Context(), id)
		if err != nil {
			zap.S().Errorf("Failed to fetch offers for agent %s: %v", id, err)
			writeMessage(w, http.StatusInternalServerError, "Failed to fetch offers")
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}

func SoldProperties(offers store.OfferStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]

		result, err := offers.SoldByAgent(r.Context(), id)
		if err != nil {
			zap.S().Errorf("Failed to fetch sold offers for agent %s: %v", id, err)
			writeMessage(w, http.StatusInternalServerError, "Failed to fetch offers")
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}

// ChangeOfferStatus lets the agent accept or reject a pending offer. The
// lifecycle never regresses from "bought", so a completed offer cannot be
// re-decided. The path keeps its historical name (change-property-status)
// for the clients already calling it.
func ChangeOfferStatus(offers store.OfferStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]
		objID, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid offer ID")
			return
		}

		status := models.OfferStatus(r.URL.Query().Get("status"))
		if !models.ValidOfferDecision(status) {
			writeMessage(w, http.StatusBadRequest, "Invalid status value")
			return
		}

		offer, err := offers.ByID(r.Context(), objID)
		if err == store.ErrNotFound {
			writeJSON(w, http.StatusOK, &models.UpdateResult{})
			return
		}
		if err != nil {
			zap.S().Errorf("Failed to fetch offer %s: %v", id, err)
			writeMessage(w, http.StatusInternalServerError, "Failed to update offer")
			return
		}
		if offer.Status == models.OfferBought {
			writeMessage(w, http.StatusConflict, "Offer already completed")
			return
		}

		res, err := offers.SetStatus(r.Context(), objID, status)
		if err != nil {
			zap.S().Errorf("Failed to update status of offer %s: %v", id, err)
			writeMessage(w, http.StatusInternalServerError, "Failed to update offer")
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

// CompletedTransaction finalizes a purchase: status is forced to "bought"
// and the supplied transaction id is attached. There is no prior-state
// guard, so a repeat call overwrites the transaction id.
func CompletedTransaction(offers store.OfferStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]
		objID, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid offer ID")
			return
		}

		var offer models.Offer
		if err := json.NewDecoder(r.Body).Decode(&offer); err != nil {
			zap.S().Infof("Invalid transaction payload: %v", err)
			writeMessage(w, http.StatusBadRequest, "Invalid request payload")
			return
		}

		res, err := offers.Complete(r.Context(), objID, offer)
		if err != nil {
			zap.S().Errorf("Failed to complete transaction for offer %s: %v", id, err)
			writeMessage(w, http.StatusInternalServerError, "Failed to complete transaction")
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}
