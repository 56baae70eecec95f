package routes

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/rs/zerolog"

	"github.com/Hossain-Md-Shahriar/volunteer-management-server/configs"
	"github.com/Hossain-Md-Shahriar/volunteer-management-server/dto"
	"github.com/Hossain-Md-Shahriar/volunteer-management-server/internal/handlers"
	"github.com/Hossain-Md-Shahriar/volunteer-management-server/internal/metrics"
	"github.com/Hossain-Md-Shahriar/volunteer-management-server/internal/middleware"
	"github.com/Hossain-Md-Shahriar/volunteer-management-server/internal/services"
)

// Deps holds shared dependencies to inject into handlers.
type Deps struct {
	Cfg      configs.Config
	Log      zerolog.Logger
	Posts    *services.PostService
	Requests *services.RequestService
}

// ErrorHandler renders every fiber error as the {"message": ...} shape the
// frontend expects. Wire it into fiber.Config.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	return c.Status(code).JSON(dto.ErrorResponse{Message: err.Error()})
}

// Register mounts all HTTP routes in one place.
func Register(app *fiber.App, d Deps) {
	app.Use(metrics.Middleware())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(d.Cfg.AllowedOrigins, ","),
		AllowCredentials: true,
	}))

	auth := middleware.JWTFromCookie(d.Cfg.JWTSecret)
	gate := middleware.RequireAuth()

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Hello from volunteer management server...")
	})
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	app.Get("/metrics", metrics.Handler())

	// Sessions
	app.Post("/session", handlers.IssueSession(d.Cfg))
	app.Get("/session/logout", handlers.Logout(d.Cfg))

	// Posts
	posts := app.Group("/posts")
	posts.Get("/", handlers.ListPosts(d.Posts))
	posts.Get("/by-organizer/:email", auth, gate, middleware.RequireOwnEmail("email"), handlers.ListPostsByOrganizer(d.Posts))
	posts.Get("/:id", auth, gate, handlers.GetPost(d.Posts))
	posts.Post("/", auth, gate, handlers.CreatePost(d.Posts))
	posts.Put("/:id", auth, gate, handlers.UpdatePost(d.Posts))
	posts.Delete("/:id", auth, gate, handlers.DeletePost(d.Posts))

	// Requests
	requests := app.Group("/requests", auth, gate)
	requests.Post("/", handlers.ApplyRequest(d.Requests))
	requests.Delete("/", handlers.CancelRequest(d.Requests))
	requests.Get("/by-volunteer/:email", middleware.RequireOwnEmail("email"), handlers.ListRequestsByVolunteer(d.Requests))
}
