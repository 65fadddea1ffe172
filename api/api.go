// Package api exposes the rental service over HTTP: a JSON API guarded
// by the web apikey and the server-rendered admin panel guarded by
// operator sessions.
package api

import (
	"net/http"

	"github.com/dkasparas/autonuoma/cache"
	"github.com/dkasparas/autonuoma/config"
	"github.com/dkasparas/autonuoma/database"
	"github.com/dkasparas/autonuoma/notifier"
	"github.com/dkasparas/autonuoma/session"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// Server carries the shared state the handlers need.
type Server struct {
	Cache    *cache.Store
	Sessions *session.Store
	Notify   *notifier.PushoverClient
}

// NewServer wires the handler dependencies.
func NewServer(store *cache.Store, sessions *session.Store, notify *notifier.PushoverClient) *Server {
	return &Server{Cache: store, Sessions: sessions, Notify: notify}
}

// AddRoutes attaches every route to the router: /api for the JSON
// surface, /admin for the panel, /login and /logout for sessions.
func (s *Server) AddRoutes(router *gin.Engine) {
	settings := config.GetSettingsGeneral()
	if len(settings.CorsOrigins) > 0 {
		corsconfig := cors.DefaultConfig()
		corsconfig.AllowOrigins = settings.CorsOrigins
		corsconfig.AllowHeaders = []string{"Origin", "Content-Type", "X-CSRF-Token"}
		router.Use(cors.New(corsconfig))
	}
	if settings.APIRateLimit > 0 {
		router.Use(ratelimit(rate.NewLimiter(rate.Limit(settings.APIRateLimit), settings.APIRateBurst)))
	}

	router.GET("/", func(ctx *gin.Context) {
		ctx.Redirect(http.StatusFound, "/admin")
	})
	router.GET("/login", s.loginPage)
	router.POST("/login", s.handleLogin)
	router.GET("/logout", s.handleLogout)

	routerapi := router.Group("/api")
	routerapi.Use(checkauth)
	s.addRESTRoutes(routerapi)
	s.addGeneralRoutes(routerapi)

	admin := router.Group("/admin")
	admin.Use(s.requireAuth, s.requireCSRF)
	s.addWebRoutes(admin)
}

// checkauth guards the JSON API with the configured web apikey, passed
// as a query parameter the way every client of this API already does.
func checkauth(ctx *gin.Context) {
	queryParam, ok := ctx.GetQuery("apikey")
	if ok && queryParam != "" && queryParam == config.GetSettingsGeneral().WebAPIKey {
		ctx.Next()
		return
	}
	msg := "no apikey in query"
	if ok {
		msg = "wrong apikey in query"
	}
	ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized - " + msg})
}

func ratelimit(limiter *rate.Limiter) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if !limiter.Allow() {
			ctx.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		ctx.Next()
	}
}

// Cached collection accessors. Every grid and list endpoint reads these,
// mutations invalidate the matching tag.

func (s *Server) cars() []database.Car {
	return cache.Get(s.Cache, "cars", database.GetCars, "cars")
}

func (s *Server) clients() []database.Client {
	return cache.Get(s.Cache, "clients", database.GetClients, "clients")
}

func (s *Server) employees() []database.Employee {
	return cache.Get(s.Cache, "employees", database.GetEmployees, "employees")
}

func (s *Server) orders() []database.Order {
	return cache.Get(s.Cache, "orders", database.GetOrders, "orders")
}

func (s *Server) reservations() []database.Reservation {
	return cache.Get(s.Cache, "reservations", database.GetReservations, "reservations")
}

func (s *Server) invoices() []database.Invoice {
	return cache.Get(s.Cache, "invoices", database.GetInvoices, "invoices")
}

func (s *Server) tickets() []database.SupportTicket {
	return cache.Get(s.Cache, "support_tickets", database.GetTickets, "support_tickets")
}
