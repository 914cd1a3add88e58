package http

import (
	"net/http"

	"activity-booking-service/internal/delivery/http/handler"
	"activity-booking-service/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router          *mux.Router
	activityHandler *handler.ActivityHandler
	bookingHandler  *handler.BookingHandler
	authMiddleware  *middleware.AuthMiddleware
	corsMiddleware  *middleware.CORSMiddleware
}

func NewRouter(
	activityHandler *handler.ActivityHandler,
	bookingHandler *handler.BookingHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:          mux.NewRouter(),
		activityHandler: activityHandler,
		bookingHandler:  bookingHandler,
		authMiddleware:  authMiddleware,
		corsMiddleware:  corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Public activity directory
	api.HandleFunc("/activities", r.activityHandler.ListActivities).Methods(http.MethodGet)
	api.HandleFunc("/activities/{id}", r.activityHandler.GetActivity).Methods(http.MethodGet)

	// Booking submission uses optional auth: anonymous attempts reach the
	// eligibility check and get the proper "please sign in" rejection
	submit := api.PathPrefix("/bookings").Subrouter()
	submit.Use(r.authMiddleware.OptionalAuthenticate)
	submit.HandleFunc("", r.bookingHandler.SubmitBooking).Methods(http.MethodPost)

	// Customer routes (protected)
	customer := api.PathPrefix("").Subrouter()
	customer.Use(r.authMiddleware.Authenticate)
	customer.HandleFunc("/my-bookings", r.bookingHandler.GetMyBookings).Methods(http.MethodGet)
	customer.HandleFunc("/bookings/{id}/status", r.bookingHandler.ChangeStatus).Methods(http.MethodPatch)

	// Provider routes (protected - provider or admin)
	provider := api.PathPrefix("/provider").Subrouter()
	provider.Use(r.authMiddleware.Authenticate)
	provider.Use(middleware.RequireStaff)
	provider.HandleFunc("/activities", r.activityHandler.CreateActivity).Methods(http.MethodPost)
	provider.HandleFunc("/activities", r.activityHandler.GetProviderActivities).Methods(http.MethodGet)
	provider.HandleFunc("/activities/{id}", r.activityHandler.UpdateActivity).Methods(http.MethodPut)
	provider.HandleFunc("/activities/{id}/bookings", r.bookingHandler.GetActivityBookings).Methods(http.MethodGet)

	// Admin routes (protected - admin only)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)
	admin.HandleFunc("/bookings", r.bookingHandler.GetAllBookings).Methods(http.MethodGet)
	admin.HandleFunc("/activities/{id}", r.activityHandler.UpdateActivity).Methods(http.MethodPut)
	admin.HandleFunc("/activities/{id}", r.activityHandler.DeleteActivity).Methods(http.MethodDelete)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
