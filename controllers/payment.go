package controllers

import (
	"encoding/json"
	"math"
	"net/http"

	"github.com/mashfikur/Echo-Estates-Server/payment"
	"go.uber.org/zap"
)

// CreatePaymentIntent asks the payment provider for an intent over the
// given price. The provider deals in minor units, hence price × 100.
func CreatePaymentIntent(bridge payment.Bridge) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Price float64 `json:"price"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			zap.S().Infof("Invalid payment payload: %v", err)
			writeMessage(w, http.StatusBadRequest, "Invalid request payload")
			return
		}
		if body.Price <= 0 {
			writeMessage(w, http.StatusBadRequest, "price must be positive")
			return
		}

		amount := int64(math.Round(body.Price * 100))

		clientSecret, err := bridge.CreateIntent(r.Context(), amount)
		if err != nil {
			zap.S().Errorf("Failed to create payment intent: %v", err)
			writeMessage(w, http.StatusInternalServerError, "Failed to create payment intent")
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"clientSecret": clientSecret})
	}
}
