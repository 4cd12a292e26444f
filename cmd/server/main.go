package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/rishidar/freelance-connector/internal/catalog"
	"github.com/rishidar/freelance-connector/internal/config"
	"github.com/rishidar/freelance-connector/internal/db"
	"github.com/rishidar/freelance-connector/internal/export"
	"github.com/rishidar/freelance-connector/internal/goroutine"
	httpHandlers "github.com/rishidar/freelance-connector/internal/http/handlers"
	"github.com/rishidar/freelance-connector/internal/http/middleware"
	httpRouter "github.com/rishidar/freelance-connector/internal/http/router"
	"github.com/rishidar/freelance-connector/internal/logger"
	"github.com/rishidar/freelance-connector/internal/repository"
	"github.com/rishidar/freelance-connector/internal/service"
	"github.com/rishidar/freelance-connector/internal/source"
	"github.com/rishidar/freelance-connector/internal/storage"
	"github.com/rishidar/freelance-connector/internal/store"
	"github.com/rishidar/freelance-connector/internal/ws"
)

// counterStore - хранилище счётчиков, на изменения которого можно подписаться.
type counterStore interface {
	store.CounterStore
	Subscribe(fn func(store.Change)) func()
}

func main() {
	// Готовим контекст для graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main: ошибка загрузки конфигурации: %v", err)
	}
	logger.Setup(cfg.Env)

	leadCategories := service.DefaultLeadCategories()

	// Счётчики: PostgreSQL при наличии DATABASE_URL, иначе память процесса.
	var (
		dbConn   *sqlx.DB
		counters counterStore
	)
	if cfg.UsesDatabase() {
		dbConn, err = db.NewPostgres(ctx, cfg.DatabaseURL, db.DefaultPool)
		if err != nil {
			log.Fatalf("main: ошибка подключения к базе: %v", err)
		}
		defer safeClose(dbConn)

		if err := db.RunMigrations(ctx, dbConn, cfg.MigrationsPath); err != nil {
			log.Fatalf("main: ошибка миграций: %v", err)
		}

		counterRepo := repository.NewCounterRepository(dbConn)
		initial := make(map[string]int, len(leadCategories))
		for _, c := range leadCategories {
			initial[store.CounterKey(c.CounterKey)] = 0
		}
		if err := counterRepo.Seed(ctx, initial); err != nil {
			log.Fatalf("main: не удалось создать счётчики: %v", err)
		}
		counters = store.NewObservedCounters(counterRepo)
	} else {
		logger.L().Warn("main: DATABASE_URL не задан, счётчики хранятся в памяти")
		counters = store.NewMemoryCounters(nil)
	}

	// Таблица галерей и источник xlsx.
	registry, err := catalog.Load(cfg.CategoriesFile)
	if err != nil {
		log.Fatalf("main: ошибка таблицы категорий: %v", err)
	}
	fetcher := source.New(cfg.DataDir, cfg.DataBaseURL, cfg.FetchTimeout)

	attachmentStorage, err := storage.NewAttachmentStorage(cfg.UploadStoragePath, cfg.MaxUploadSizeMB)
	if err != nil {
		log.Fatalf("main: не удалось подготовить файловое хранилище: %v", err)
	}

	// Вебсокеты.
	hub := ws.NewHub()
	goroutine.SafeGoWithContext(ctx, hub.Run)

	unsubscribe := counters.Subscribe(func(ch store.Change) {
		key := strings.TrimPrefix(ch.Key, store.CounterKeyPrefix)
		if err := hub.Broadcast(ws.ReplyCounters, map[string]int{key: ch.Value}); err != nil {
			logger.L().WithError(err).Warn("main: не удалось разослать счётчики")
		}
	})
	defer unsubscribe()

	// Сервисы.
	contact := export.Contact{Name: cfg.Contact.Name, Email: cfg.Contact.Email, Phone: cfg.Contact.Phone}
	links := service.NewLinkBuilder(cfg.Contact.WhatsAppNumber)
	tokenManager := service.NewTokenManager(cfg.JWTSecret, cfg.AdminTokenTTL)

	galleryService := service.NewGalleryService(registry, fetcher)
	freelancerService := service.NewFreelancerService(service.DefaultFreelancers())
	cartService := service.NewCartService(store.NewCarts(), freelancerService)
	exportService := service.NewExportService(freelancerService, cartService, contact)
	counterService := service.NewCounterService(counters, leadCategories)
	attachmentService := service.NewAttachmentService(attachmentStorage, cfg.PublicBaseURL)
	leadService := service.NewLeadService(counterService, attachmentService, links, cfg.Contact.Name)
	contactService := service.NewContactService(links, cfg.Contact.Name)
	authService := service.NewAdminAuthService(cfg.AdminPasswordHash, tokenManager)
	if !authService.Enabled() {
		logger.L().Warn("main: ADMIN_PASSWORD_HASH не задан, вход администратора отключён")
	}

	// Роутер.
	engine := httpRouter.SetupRouter(cfg, httpRouter.Handlers{
		Gallery:      httpHandlers.NewGalleryHandler(galleryService),
		Live:         httpHandlers.NewWSHandler(galleryService, hub, middleware.OriginAllowed(cfg.AllowedOrigins)),
		Freelancer:   httpHandlers.NewFreelancerHandler(freelancerService, exportService),
		Cart:         httpHandlers.NewCartHandler(cartService, exportService),
		Lead:         httpHandlers.NewLeadHandler(leadService, counterService),
		Attachment:   httpHandlers.NewAttachmentHandler(attachmentService, attachmentStorage.MaxBytes()),
		Contact:      httpHandlers.NewContactHandler(contactService),
		Counter:      httpHandlers.NewCounterHandler(counterService),
		Auth:         httpHandlers.NewAuthHandler(authService),
		Health:       httpHandlers.NewHealthHandler(dbConn, counterService, hub),
		TokenManager: tokenManager,
	})

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Завершаем сервер при получении сигнала.
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("main: ошибка остановки http сервера: %v", err)
		}
	}()

	logger.L().WithField("port", cfg.HTTPPort).Info("main: HTTP сервер запущен")

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("main: сервер завершился с ошибкой: %v", err)
	}
}

// safeClose закрывает соединение с базой.
func safeClose(db *sqlx.DB) {
	if err := db.Close(); err != nil {
		log.Printf("main: ошибка закрытия базы: %v", err)
	}
}
