package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"homehub-backend/internal/security"
	"homehub-backend/internal/service"
)

// Handlers groups the HTTP handlers wired by the router.
type Handlers struct {
	Invitations   *InvitationHandler
	Families      *FamilyHandler
	Users         *UserHandler
	Notifications *NotificationHandler
	Pantry        *PantryHandler
	Shopping      *ShoppingHandler
}

func NewHandlers(
	invitations service.InvitationService,
	families service.FamilyService,
	users service.UserService,
	notifications service.NotificationService,
	pantry service.PantryService,
	shopping service.ShoppingService,
) *Handlers {
	return &Handlers{
		Invitations:   NewInvitationHandler(invitations),
		Families:      NewFamilyHandler(families),
		Users:         NewUserHandler(users),
		Notifications: NewNotificationHandler(notifications),
		Pantry:        NewPantryHandler(pantry),
		Shopping:      NewShoppingHandler(shopping),
	}
}

// NewRouter builds the API router. Every route under /api/v1 requires a
// bearer token; the validate endpoint included, since only signed-in users
// enter codes.
func NewRouter(h *Handlers, tokens security.TokenManager) *mux.Router {
	r := mux.NewRouter()
	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware)

	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(AuthMiddleware(tokens))

	// Families and admission
	api.HandleFunc("/families", h.Families.Create).Methods(http.MethodPost)
	api.HandleFunc("/families/{id:[0-9]+}", h.Families.Get).Methods(http.MethodGet)
	api.HandleFunc("/families/{id:[0-9]+}/members", h.Families.ListMembers).Methods(http.MethodGet)
	api.HandleFunc("/families/{id:[0-9]+}/invitations", h.Invitations.Issue).Methods(http.MethodPost)
	api.HandleFunc("/invitations/validate", h.Invitations.Validate).Methods(http.MethodGet)
	api.HandleFunc("/invitations/redeem", h.Invitations.Redeem).Methods(http.MethodPost)

	// Profile
	api.HandleFunc("/me", h.Users.Me).Methods(http.MethodGet)
	api.HandleFunc("/me", h.Users.UpdateMe).Methods(http.MethodPatch)

	// Notifications
	api.HandleFunc("/notifications", h.Notifications.List).Methods(http.MethodGet)
	api.HandleFunc("/notifications/{id:[0-9]+}/read", h.Notifications.MarkAsRead).Methods(http.MethodPost)

	// Pantry
	api.HandleFunc("/families/{id:[0-9]+}/pantry", h.Pantry.List).Methods(http.MethodGet)
	api.HandleFunc("/families/{id:[0-9]+}/pantry", h.Pantry.Create).Methods(http.MethodPost)
	api.HandleFunc("/pantry/{itemId:[0-9]+}", h.Pantry.Update).Methods(http.MethodPut)
	api.HandleFunc("/pantry/{itemId:[0-9]+}", h.Pantry.Delete).Methods(http.MethodDelete)

	// Shopping list
	api.HandleFunc("/families/{id:[0-9]+}/shopping", h.Shopping.List).Methods(http.MethodGet)
	api.HandleFunc("/families/{id:[0-9]+}/shopping", h.Shopping.Create).Methods(http.MethodPost)
	api.HandleFunc("/shopping/{itemId:[0-9]+}", h.Shopping.Update).Methods(http.MethodPut)
	api.HandleFunc("/shopping/{itemId:[0-9]+}", h.Shopping.Delete).Methods(http.MethodDelete)
	api.HandleFunc("/shopping/{itemId:[0-9]+}/check", h.Shopping.Check).Methods(http.MethodPost)

	return r
}
