package routes

import (
	"github.com/gorilla/mux"
	"github.com/mashfikur/Echo-Estates-Server/controllers"
	"github.com/mashfikur/Echo-Estates-Server/middleware"
	"github.com/mashfikur/Echo-Estates-Server/models"
	"github.com/mashfikur/Echo-Estates-Server/payment"
	"github.com/mashfikur/Echo-Estates-Server/store"
	"github.com/mashfikur/Echo-Estates-Server/utils"
	"github.com/redis/go-redis/v9"
)

// Routes wires the full /api/v1 surface. Everything under /admin and /agent
// runs behind the authenticate + role gates; get-wishlist only needs
// authentication (plus its own self-ownership check in the handler).
func Routes(router *mux.Router, stores *store.Stores, tokens *utils.TokenService, bridge payment.Bridge, redisClient *redis.Client) {
	verify := middleware.VerifyToken(tokens)

	api := router.PathPrefix("/api/v1").Subrouter()

	// Auth
	api.HandleFunc("/auth/create-token", controllers.CreateToken(tokens)).Methods("POST")

	// Public user-facing reads
	api.HandleFunc("/user/check-agent/{id}", controllers.CheckAgent(stores.Users)).Methods("GET")
	api.HandleFunc("/user/check-admin/{id}", controllers.CheckAdmin(stores.Users)).Methods("GET")
	api.HandleFunc("/user/verified-properties", controllers.VerifiedProperties(stores.Properties, redisClient)).Methods("GET")
	api.HandleFunc("/user/advertised-properties", controllers.AdvertisedProperties(stores.Properties)).Methods("GET")
	api.HandleFunc("/user/property/details/{id}", controllers.PropertyDetails(stores.Properties)).Methods("GET")
	api.HandleFunc("/user/get-offered-properties/{id}", controllers.OfferedProperties(stores.Offers)).Methods("GET")
	api.HandleFunc("/public/get-reviews", controllers.PublicReviews(stores.Reviews)).Methods("GET")
	api.HandleFunc("/property/get-reviews/{id}", controllers.PropertyReviews(stores.Reviews)).Methods("GET")
	api.HandleFunc("/user/get-reviews/{id}", controllers.UserReviews(stores.Reviews)).Methods("GET")

	// Authenticated: wishlist is readable only by its owner
	api.Handle("/user/get-wishlist/{id}", verify(controllers.GetWishlist(stores.Wishlist, stores.Properties))).Methods("GET")

	// Public mutations
	api.HandleFunc("/add-user", controllers.AddUser(stores.Users)).Methods("POST")
	api.HandleFunc("/create-payment-intent", controllers.CreatePaymentIntent(bridge)).Methods("POST")
	api.HandleFunc("/user/add-to-wishlist", controllers.AddToWishlist(stores.Wishlist)).Methods("POST")
	api.HandleFunc("/user/offered", controllers.AddOffer(stores.Offers)).Methods("POST")
	api.HandleFunc("/user/add-review", controllers.AddReview(stores.Reviews)).Methods("POST")
	api.HandleFunc("/user/completed-transaction/{id}", controllers.CompletedTransaction(stores.Offers)).Methods("PUT")
	api.HandleFunc("/user/remove-wishlist/{itemId}", controllers.RemoveWishlist(stores.Wishlist)).Methods("DELETE")
	api.HandleFunc("/user/delete-property/{id}", controllers.DeleteProperty(stores.Properties, redisClient)).Methods("DELETE")
	api.HandleFunc("/user/delete-review/{id}", controllers.DeleteReview(stores.Reviews)).Methods("DELETE")

	// Agent-only
	agent := api.PathPrefix("/agent").Subrouter()
	agent.Use(verify, middleware.RequireRole(stores.Users, models.RoleAgent))
	agent.HandleFunc("/added-properties/{id}", controllers.AddedProperties(stores.Properties)).Methods("GET")
	agent.HandleFunc("/get-requested-properties/{id}", controllers.RequestedProperties(stores.Offers)).Methods("GET")
	agent.HandleFunc("/sold-properties/{id}", controllers.SoldProperties(stores.Offers)).Methods("GET")
	agent.HandleFunc("/add-property", controllers.AddProperty(stores.Properties, redisClient)).Methods("POST")
	agent.HandleFunc("/update-property/{id}", controllers.UpdateProperty(stores.Properties, redisClient)).Methods("PATCH")
	agent.HandleFunc("/change-property-status/{id}", controllers.ChangeOfferStatus(stores.Offers)).Methods("PATCH")

	// Admin-only
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(verify, middleware.RequireRole(stores.Users, models.RoleAdmin))
	admin.HandleFunc("/get-users", controllers.GetUsers(stores.Users)).Methods("GET")
	admin.HandleFunc("/agent-properties", controllers.AgentProperties(stores.Properties)).Methods("GET")
	admin.HandleFunc("/get-reviews", controllers.AllReviews(stores.Reviews)).Methods("GET")
	admin.HandleFunc("/update-user/{id}", controllers.UpdateUserRole(stores.Users)).Methods("PATCH")
	admin.HandleFunc("/update-property/{id}", controllers.UpdatePropertyStatus(stores.Properties, redisClient)).Methods("PATCH")
	admin.HandleFunc("/advertise-property/{id}", controllers.AdvertiseProperty(stores.Properties, redisClient)).Methods("PATCH")
	admin.HandleFunc("/make-fraud/{id}", controllers.MakeFraud(stores.Users, stores.Properties, redisClient)).Methods("POST")
	admin.HandleFunc("/delete-user/{id}", controllers.DeleteUser(stores.Users)).Methods("DELETE")
}
