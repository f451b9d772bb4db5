package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/mashfikur/Echo-Estates-Server/models"
	"github.com/mashfikur/Echo-Estates-Server/store"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// AddUser registers a user on first sign-in. Registration is idempotent: a
// repeat call for the same userId performs no write and reports that the
// user already exists.
func AddUser(users store.UserStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var user models.User
		if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
			zap.S().Infof("Error decoding user data: %v", err)
			writeMessage(w, http.StatusBadRequest, "Invalid request payload")
			return
		}
		if user.UserID == "" {
			writeMessage(w, http.StatusBadRequest, "userId is required")
			return
		}

		res, created, err := users.EnsureUser(r.Context(), user)
		if err != nil {
			zap.S().Errorf("Error inserting user %s: %v", user.UserID, err)
			writeMessage(w, http.StatusInternalServerError, "Failed to create user")
			return
		}
		if !created {
			writeMessage(w, http.StatusOK, "User Already Exists")
			return
		}

		writeJSON(w, http.StatusOK, res)
	}
}

func CheckAgent(users store.UserStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]

		user, err := users.FindByUserID(r.Context(), id)
		if err != nil && err != store.ErrNotFound {
			zap.S().Errorf("Error looking up user %s: %v", id, err)
			writeMessage(w, http.StatusInternalServerError, "Failed to check user")
			return
		}

		isAgent := err == nil && user.Role == models.RoleAgent
		writeJSON(w, http.StatusOK, map[string]bool{"isAgent": isAgent})
	}
}

func CheckAdmin(users store.UserStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]

		user, err := users.FindByUserID(r.Context(), id)
		if err != nil && err != store.ErrNotFound {
			zap.S().Errorf("Error looking up user %s: %v", id, err)
			writeMessage(w, http.StatusInternalServerError, "Failed to check user")
			return
		}

		isAdmin := err == nil && user.Role == models.RoleAdmin
		writeJSON(w, http.StatusOK, map[string]bool{"isAdmin": isAdmin})
	}
}

func GetUsers(users store.UserStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		all, err := users.All(r.Context())
		if err != nil {
			zap.S().Errorf("Error fetching users: %v", err)
			writeMessage(w, http.StatusInternalServerError, "Failed to fetch users")
			return
		}
		writeJSON(w, http.StatusOK, all)
	}
}

// UpdateUserRole sets a user's role from the ?role= query parameter. Unknown
// role values are rejected rather than persisted verbatim.
func UpdateUserRole(users store.UserStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]
		role := models.Role(r.URL.Query().Get("role"))

		if !models.ValidRole(role) {
			writeMessage(w, http.StatusBadRequest, "Invalid role value")
			return
		}

		res, err := users.SetRole(r.Context(), id, role)
		if err != nil {
			zap.S().Errorf("Error updating role for user %s: %v", id, err)
			writeMessage(w, http.StatusInternalServerError, "Failed to update user")
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

// MakeFraud flags an agent as fraudulent and removes every listing they
// added. The two steps are not transactional: if the bulk delete fails the
// user stays flagged while their listings remain until a retry.
func MakeFraud(users store.UserStore, properties store.PropertyStore, redisClient *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]

		updateRes, err := users.SetRole(r.Context(), id, models.RoleFraud)
		if err != nil {
			zap.S().Errorf("Error flagging user %s as fraud: %v", id, err)
			writeMessage(w, http.StatusInternalServerError, "Failed to update user")
			return
		}

		deleteRes, err := properties.DeleteByAgent(r.Context(), id)
		if err != nil {
			zap.S().Errorf("Error deleting properties of fraud agent %s: %v", id, err)
			writeMessage(w, http.StatusInternalServerError, "Failed to delete agent properties")
			return
		}

		invalidateListingCache(redisClient)

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"updated": updateRes,
			"deleted": deleteRes,
		})
	}
}

func DeleteUser(users store.UserStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]

		res, err := users.Delete(r.Context(), id)
		if err != nil {
			zap.S().Errorf("Error deleting user %s: %v", id, err)
			writeMessage(w, http.StatusInternalServerError, "Failed to delete user")
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}
