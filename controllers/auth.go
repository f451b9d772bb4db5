package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/mashfikur/Echo-Estates-Server/utils"
	"go.uber.org/zap"
)

// CreateToken exchanges a user id for a signed session token. There is no
// refresh endpoint; clients re-issue when the token expires.
func CreateToken(tokens *utils.TokenService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			UID string `json:"uid"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			zap.S().Infof("Error decoding token request: %v", err)
			writeMessage(w, http.StatusBadRequest, "Invalid request payload")
			return
		}
		if body.UID == "" {
			writeMessage(w, http.StatusBadRequest, "uid is required")
			return
		}

		token, err := tokens.Issue(body.UID)
		if err != nil {
			zap.S().Errorf("Error issuing token: %v", err)
			writeMessage(w, http.StatusInternalServerError, "Failed to generate token")
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"token": token})
	}
}
