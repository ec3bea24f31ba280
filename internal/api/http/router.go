package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"locagest-backend/internal/config"
)

// NewCORS builds the CORS wrapper from the configured allowed origins.
func NewCORS(cfg *config.Config) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.Server.CorsAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300, // 5 minutes
	})
	return c.Handler
}

func NewRouter(
	clientHandler *ClientHandler,
	equipmentHandler *EquipmentHandler,
	rentalHandler *RentalHandler,
	reportHandler *ReportHandler,
	notificationHandler *NotificationHandler,
	authMiddleware *AuthMiddleware,
) *mux.Router {
	r := mux.NewRouter()
	r.Use(RecoveryMiddleware)
	r.Use(MetricsMiddleware)

	// Unauthenticated operational endpoints
	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(authMiddleware.Authenticate)

	// Clients
	api.HandleFunc("/clients", clientHandler.ListClients).Methods("GET")
	api.HandleFunc("/clients", clientHandler.CreateClient).Methods("POST")
	api.HandleFunc("/clients/{id}", clientHandler.GetClient).Methods("GET")
	api.HandleFunc("/clients/{id}", clientHandler.UpdateClient).Methods("PUT")
	api.HandleFunc("/clients/{id}", clientHandler.DeleteClient).Methods("DELETE")

	// Equipment
	api.HandleFunc("/equipment", equipmentHandler.ListEquipment).Methods("GET")
	api.HandleFunc("/equipment", equipmentHandler.CreateEquipment).Methods("POST")
	api.HandleFunc("/equipment/available", equipmentHandler.ListAvailable).Methods("GET")
	api.HandleFunc("/equipment/{id}", equipmentHandler.GetEquipment).Methods("GET")
	api.HandleFunc("/equipment/{id}", equipmentHandler.UpdateEquipment).Methods("PUT")
	api.HandleFunc("/equipment/{id}", equipmentHandler.DeleteEquipment).Methods("DELETE")
	api.HandleFunc("/equipment/{id}/revenue", reportHandler.EquipmentReport).Methods("GET")

	// Rentals and lifecycle transitions
	api.HandleFunc("/rentals", rentalHandler.ListRentals).Methods("GET")
	api.HandleFunc("/rentals", rentalHandler.CreateRental).Methods("POST")
	api.HandleFunc("/rentals/{id}", rentalHandler.GetRental).Methods("GET")
	api.HandleFunc("/rentals/{id}", rentalHandler.DeleteRental).Methods("DELETE")
	api.HandleFunc("/rentals/{id}/payment", rentalHandler.MarkPaid).Methods("POST")
	api.HandleFunc("/rentals/{id}/delivery", rentalHandler.ScheduleDelivery).Methods("POST")
	api.HandleFunc("/rentals/{id}/delivery/confirmation", rentalHandler.MarkDelivered).Methods("POST")
	api.HandleFunc("/rentals/{id}/collection", rentalHandler.MarkCollected).Methods("POST")
	api.HandleFunc("/rentals/{id}/invoice", rentalHandler.MarkInvoiceIssued).Methods("POST")
	api.HandleFunc("/rentals/{id}/renewal", rentalHandler.Renew).Methods("POST")
	api.HandleFunc("/rentals/{id}/receivables", rentalHandler.ListReceivables).Methods("GET")
	api.HandleFunc("/rentals/{id}/receipt", rentalHandler.Receipt).Methods("GET")

	// Notifications
	api.HandleFunc("/notifications", notificationHandler.ListNotifications).Methods("GET")
	api.HandleFunc("/notifications/{id}/read", notificationHandler.MarkAsRead).Methods("POST")

	return r
}
