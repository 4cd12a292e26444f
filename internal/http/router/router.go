package router

import (
	"github.com/gin-gonic/gin"

	"github.com/rishidar/freelance-connector/internal/config"
	"github.com/rishidar/freelance-connector/internal/http/handlers"
	"github.com/rishidar/freelance-connector/internal/http/middleware"
	"github.com/rishidar/freelance-connector/internal/service"
)

// Handlers собирает все хэндлеры приложения.
type Handlers struct {
	Gallery      *handlers.GalleryHandler
	Live         *handlers.WSHandler
	Freelancer   *handlers.FreelancerHandler
	Cart         *handlers.CartHandler
	Lead         *handlers.LeadHandler
	Attachment   *handlers.AttachmentHandler
	Contact      *handlers.ContactHandler
	Counter      *handlers.CounterHandler
	Auth         *handlers.AuthHandler
	Health       *handlers.HealthHandler
	TokenManager *service.TokenManager
}

func SetupRouter(cfg *config.Config, h Handlers) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	r.GET("/health", h.Health.Health)
	r.Static("/uploads", cfg.UploadStoragePath)

	api := r.Group("/api")

	// Галереи работ
	api.GET("/works", h.Gallery.Works)
	api.GET("/galleries/:slug", h.Gallery.Gallery)
	api.GET("/live/galleries/:slug", h.Live.Handle)

	// Исполнители
	api.GET("/freelancers", h.Freelancer.List)
	api.GET("/freelancers/:id", h.Freelancer.Get)
	api.GET("/freelancers/:id/profile.pdf", h.Freelancer.ProfilePDF)
	api.GET("/counters", h.Counter.List)
	api.GET("/leads/categories", h.Lead.Categories)

	// Маршруты в рамках сессии посетителя
	session := api.Group("/")
	session.Use(middleware.Session(cfg.Env == "production"))
	{
		session.GET("/cart", h.Cart.Get)
		session.POST("/cart", h.Cart.Add)
		session.DELETE("/cart", h.Cart.Clear)
		session.DELETE("/cart/:id", h.Cart.Remove)
		session.GET("/cart/profile.pdf", h.Cart.TeamPDF)

		session.GET("/leads/attachments", h.Attachment.List)
		session.DELETE("/leads/attachments/:id", middleware.UUIDValidator("id"), h.Attachment.Delete)
	}

	limited := session.Group("/")
	limited.Use(middleware.RateLimitMiddleware("leads", cfg.RateLimitLimit, cfg.RateLimitPeriod))
	{
		limited.POST("/leads", h.Lead.Create)
		limited.POST("/leads/attachments", h.Attachment.Upload)
	}

	contact := api.Group("/contact")
	contact.GET("/join", h.Contact.Join)
	contact.GET("/chat", h.Contact.Chat)
	contactLimited := contact.Group("/")
	contactLimited.Use(middleware.RateLimitMiddleware("contact", cfg.RateLimitLimit, cfg.RateLimitPeriod))
	{
		contactLimited.POST("/message", h.Contact.Message)
		contactLimited.POST("/meeting", h.Contact.Meeting)
	}

	// Администрирование счётчиков
	api.POST("/admin/login", middleware.RateLimitMiddleware("admin-login", 5, cfg.RateLimitPeriod), h.Auth.Login)
	admin := api.Group("/admin")
	admin.Use(middleware.AdminAuth(h.TokenManager))
	{
		admin.PUT("/counters/:key", h.Counter.Update)
	}

	return r
}
