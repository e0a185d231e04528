package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	httpctx "github.com/dtroode/profile-server/internal/api/http/context"
	"github.com/dtroode/profile-server/internal/api/http/handler"
	"github.com/dtroode/profile-server/internal/api/http/middleware"
	"github.com/dtroode/profile-server/internal/logger"
	"github.com/dtroode/profile-server/internal/model"
	"github.com/dtroode/profile-server/internal/session"
	"github.com/dtroode/profile-server/web"
)

var _ Sessions = (*session.Manager)(nil)

// Sessions loads, commits and destroys session state.
type Sessions interface {
	Load(ctx context.Context, token string) (model.SessionState, error)
	Commit(ctx context.Context, before, after model.SessionState) (model.SessionState, string, error)
	Destroy(ctx context.Context, state model.SessionState) error
}

// Config holds the transport settings of the router.
type Config struct {
	Cookie          middleware.CookieConfig
	RateLimitMax    int
	RateLimitWindow time.Duration
	// BodyLimit caps request bodies, uploads included.
	BodyLimit int
}

// Router builds the fiber application serving the profile site.
type Router struct {
	cfg            Config
	authService    handler.AuthService
	profileService handler.ProfileService
	sessions       Sessions
	views          handler.Renderer
	contextManager *httpctx.Manager
	logger         *logger.Logger
}

// New creates new Router instance.
func New(
	cfg Config,
	authService handler.AuthService,
	profileService handler.ProfileService,
	sessions Sessions,
	views handler.Renderer,
	contextManager *httpctx.Manager,
	logger *logger.Logger,
) *Router {
	return &Router{
		cfg:            cfg,
		authService:    authService,
		profileService: profileService,
		sessions:       sessions,
		views:          views,
		contextManager: contextManager,
		logger:         logger,
	}
}

// Register builds the application with all middleware and routes.
func (r *Router) Register() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "profile-server",
		BodyLimit:             r.cfg.BodyLimit,
		DisableStartupMessage: true,
		ErrorHandler:          handler.ErrorHandler(r.logger),
	})

	logging := middleware.NewLogging(r.logger)
	sessions := middleware.NewSession(r.sessions, r.contextManager, r.cfg.Cookie, r.logger)

	app.Use(logging.Handle)
	app.Use(sessions.Handle)

	r.registerAuthRoutes(app)
	r.registerProfileRoutes(app)
	r.registerPageRoutes(app)

	app.Use("/", filesystem.New(filesystem.Config{
		Root:  http.FS(web.Static()),
		Index: "index.html",
	}))

	return app
}

func (r *Router) registerAuthRoutes(app *fiber.App) {
	authHandler := handler.NewAuth(r.authService, r.sessions, r.contextManager, r.logger)
	limit := r.rateLimit()

	app.Post("/register", limit, authHandler.Register)
	app.Post("/verify", limit, authHandler.Verify)
	app.Post("/login", limit, authHandler.Login)
	app.Get("/login", authHandler.LoginPage)
	app.Get("/logout", authHandler.Logout)
}

func (r *Router) registerProfileRoutes(app *fiber.App) {
	profileHandler := handler.NewProfile(r.profileService, r.views, r.contextManager, r.logger)
	authenticate := middleware.NewAuthenticate(r.contextManager, r.logger)

	app.Get("/users/:username", authenticate.RequireLogin, profileHandler.UserPage)
	app.Get("/users/:username/text", profileHandler.UserTextPage)

	app.Post("/upload-profile-pic", profileHandler.Upload(model.ImageProfile))
	app.Post("/upload-banner-image", profileHandler.Upload(model.ImageBanner))
	app.Get("/remove-profile-pic", authenticate.RequireUserID, profileHandler.Remove(model.ImageProfile))
	app.Get("/remove-banner-image", authenticate.RequireUserID, profileHandler.Remove(model.ImageBanner))

	app.Get("/"+model.ImageProfile.Dir()+"/:name", profileHandler.Image(model.ImageProfile))
	app.Get("/"+model.ImageBanner.Dir()+"/:name", profileHandler.Image(model.ImageBanner))
}

func (r *Router) registerPageRoutes(app *fiber.App) {
	pagesHandler := handler.NewPages(r.profileService, r.sessions, r.views, r.contextManager, r.logger)
	authenticate := middleware.NewAuthenticate(r.contextManager, r.logger)

	app.Get("/upload-prompt", authenticate.RequireUserID, pagesHandler.UploadPrompt)
	app.Get("/faq", pagesHandler.FAQ)
	app.Get("/about", pagesHandler.About)
	app.Get("/contact", pagesHandler.Contact)
	app.Get("/healthz", pagesHandler.Health)
}

// rateLimit limits credential posts per client IP. One limiter is shared by
// every route it guards.
func (r *Router) rateLimit() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        r.cfg.RateLimitMax,
		Expiration: r.cfg.RateLimitWindow,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return fiber.NewError(fiber.StatusTooManyRequests, "Too many requests, please try again later.")
		},
	})
}
