package router

import "net/http"

type SessionRouteRegistrar interface {
	RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler)
}

type AccountServiceRouteRegistrar interface {
	RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler)
}

// New builds the teller mux. The API docs stay outside authMiddleware.
func New(sessionController SessionRouteRegistrar, authMiddleware func(http.Handler) http.Handler) *http.ServeMux {
	mux := http.NewServeMux()
	registerSwaggerRoutes(mux)

	if sessionController != nil {
		sessionController.RegisterRoutes(mux, authMiddleware)
	}

	return mux
}

// NewAccountService builds the mock account service mux. The mockable endpoint it
// stands in for is unauthenticated, so no middleware is applied.
func NewAccountService(accountServiceController AccountServiceRouteRegistrar) *http.ServeMux {
	mux := http.NewServeMux()

	if accountServiceController != nil {
		accountServiceController.RegisterRoutes(mux, nil)
	}

	return mux
}
