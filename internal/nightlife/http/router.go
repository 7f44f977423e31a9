package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/nightlife/internal/nightlife/service"
	"github.com/aussiebroadwan/nightlife/internal/nightlife/store"
	"github.com/aussiebroadwan/nightlife/pkg/httpx"
	"github.com/aussiebroadwan/nightlife/pkg/metrics"
	"github.com/aussiebroadwan/nightlife/pkg/slogx"

	_ "github.com/aussiebroadwan/nightlife/api/nightlife" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

const (
	corsMethods = "GET, POST, OPTIONS"
	corsHeaders = "Content-Type, X-Request-ID"
)

// RouterOptions are the transport settings that do not belong to any service.
type RouterOptions struct {
	CORSOrigins    []string
	RequestTimeout time.Duration
	// SessionStore is pinged by /readyz when sessions live outside the
	// main database.
	SessionStore Pinger
	// LoginRedirectURL is where provider logins land. Defaults to "/".
	LoginRedirectURL string
}

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware
	handler     http.Handler

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	opts         RouterOptions

	store             store.Store
	Cookies           *SessionCookies
	AuthService       *service.AuthService
	AttendanceService *service.AttendanceService
	DirectoryService  *service.DirectoryService
	Providers         *service.IdentityProviders
}

func NewRouter(buildVersion string, st store.Store, logger *slog.Logger, opts RouterOptions) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		logger:       logger,
		opts:         opts,
		store:        st,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		metrics.InstrumentHandler,
		httpx.CORS(opts.CORSOrigins, corsMethods, corsHeaders),
		httpx.Deadline(opts.RequestTimeout),
	}

	return r
}

// ApplyRoutes registers every route. Services and Cookies must be set first.
func (r *Router) ApplyRoutes() {
	if r.Providers == nil {
		r.Providers = service.NewIdentityProviders()
	}

	r.registerAuth()
	r.registerVenues()
	r.registerDirectory()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())

	r.middlewares = append(r.middlewares, httpx.SessionMiddleware(r.Cookies))
	r.handler = httpx.Chain(r.Mux, r.middlewares...)
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Nightlife API
//	@version		0.1.0
//	@description	Backend for the nightlife app: venue search through the business directory,
//	@description	local accounts with cookie sessions, and "who's going tonight" attendance.
//
//	@contact.name	AussieBroadWAN Team
//	@contact.url	https://github.com/aussiebroadwan/nightlife
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host			localhost:3001
//	@BasePath		/
//
//	@schemes		http https
//
//	@securityDefinitions.apikey	SessionCookie
//	@in							cookie
//	@name						nightlife.sid
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if r.handler == nil {
		httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
		return
	}
	r.handler.ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	// POST /api/register - strict rate limit by IP (account creation)
	r.Mux.Handle("POST /api/register",
		httpx.Chain(&RegisterHandler{AuthService: r.AuthService},
			httpx.RateLimitByIP(httpx.ParseRateLimitFromEnv("REGISTER", httpx.StrictLimit)),
		),
	)

	// POST /api/login - strict rate limit by IP + username to slow credential stuffing
	r.Mux.Handle("POST /api/login",
		httpx.Chain(&LoginHandler{AuthService: r.AuthService, Cookies: r.Cookies},
			httpx.RateLimitByIPAndJSONField(httpx.ParseRateLimitFromEnv("LOGIN", httpx.StrictLimit), "username"),
		),
	)

	r.Mux.Handle("GET /api/logout",
		httpx.Chain(&LogoutHandler{AuthService: r.AuthService, Cookies: r.Cookies},
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	r.Mux.Handle("GET /api/current-session",
		httpx.Chain(&CurrentSessionHandler{AuthService: r.AuthService},
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	oauth := &OAuthHandler{
		Providers:   r.Providers,
		AuthService: r.AuthService,
		Cookies:     r.Cookies,
		RedirectURL: r.opts.LoginRedirectURL,
	}
	r.Mux.Handle("GET /api/auth/{provider}",
		httpx.Chain(http.HandlerFunc(oauth.HandleStart),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("GET /api/auth/{provider}/callback",
		httpx.Chain(http.HandlerFunc(oauth.HandleCallback),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerVenues() {
	h := &VenuesHandler{AttendanceService: r.AttendanceService}

	secured := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn,
			httpx.RequireSession(),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		)
	}

	r.Mux.Handle("POST /api/venues-attending", secured(h.HandleAdd))
	r.Mux.Handle("POST /api/venue-remove", secured(h.HandleRemove))
	r.Mux.Handle("GET /api/number-attending/{yelpId}", secured(h.HandleCount))
}

func (r *Router) registerDirectory() {
	h := &DirectoryHandler{DirectoryService: r.DirectoryService}

	// Every call spends directory API quota, so these share a moderate IP limit.
	limit := httpx.ParseRateLimitFromEnv("DIRECTORY", httpx.ModerateLimit)
	r.Mux.Handle("POST /api/yelp-data/{location}",
		httpx.Chain(http.HandlerFunc(h.HandleSearch), httpx.RateLimitByIP(limit)),
	)
	r.Mux.Handle("GET /api/get-venues-attending/{venueYelpId}",
		httpx.Chain(http.HandlerFunc(h.HandleBusiness), httpx.RateLimitByIP(limit)),
	)
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.opts.SessionStore),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /metrics", metrics.Handler())
}
