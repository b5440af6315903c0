package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"reading-log-server/config"
	"reading-log-server/internal/handler"
	"reading-log-server/internal/repository"
	"reading-log-server/internal/security"
	"reading-log-server/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	_ "github.com/lib/pq"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	db, err := config.SetupDatabase(cfg.DatabaseConfig.DSN)
	if err != nil {
		log.Fatalf("Не удалось подключиться к БД: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Ошибка при закрытии БД: %v", err)
		}
	}()

	redisClient, err := config.SetupRedis(&cfg.RedisConfig)
	if err != nil {
		log.Fatalf("Ошибка подключения к Redis: %v", err)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Printf("Ошибка при закрытии Redis: %v", err)
		}
	}()

	srv, router := config.SetupServer(cfg.ServerAddr)

	userRepo := repository.NewUserRepository(db)
	jwtRepo := repository.NewJWTRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, time.Duration(cfg.TTL.S3AndRedis)*time.Second)

	s3Service, err := service.NewS3Service(ctx, &cfg.S3Config)
	if err != nil {
		log.Fatalf("Ошибка создания S3 сервиса: %v", err)
	}

	jwtService := security.NewJWTService(&cfg.JWT)
	googleVerifier := security.NewGoogleVerifier(&cfg.Google)

	authService := service.NewAuthenticationService(jwtRepo, jwtService, userRepo, googleVerifier)
	userService := service.NewUserService(userRepo, s3Service)
	postService := service.NewPostService(postRepo, userRepo, cacheRepo, s3Service, cfg.Feed.PageSize)
	commentService := service.NewCommentService(commentRepo, cacheRepo)

	authHandler := handler.NewAuthenticationHandler(authService, cfg)
	userHandler := handler.NewUserHandler(userService)
	postHandler := handler.NewPostHandler(postService)
	commentHandler := handler.NewCommentHandler(commentService)
	mediaHandler := handler.NewMediaHandler(s3Service, time.Duration(cfg.TTL.S3AndRedis)*time.Second)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	setupAuthRoutes(router, authHandler)
	setupUserRoutes(router, userHandler, jwtService, cfg)
	setupPostRoutes(router, postHandler, jwtService, cfg)
	setupCommentRoutes(router, commentHandler, jwtService, cfg)
	setupMediaRoutes(router, mediaHandler)

	runServer(ctx, srv)
}

func setupAuthRoutes(r chi.Router, h *handler.AuthenticationHandler) {
	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
		r.Post("/google", h.GoogleLogin)
		r.Post("/refresh", h.RefreshToken)
		r.Post("/logout", h.Logout)
	})
}

func setupUserRoutes(r chi.Router, h *handler.UserHandler, jwtService *security.JWTService, cfg *config.AppConfig) {
	r.Route("/api/users", func(r chi.Router) {
		r.Use(security.JWTMiddleware([]byte(cfg.JWT.AccessSecretKey), jwtService))

		r.Get("/", h.ListUsers)

		r.Route("/{uuid}", func(r chi.Router) {
			r.Get("/", h.GetUser)
			r.Put("/", h.UpdateUser)
			r.Post("/profile-picture", h.UploadProfilePicture)
			r.Delete("/", h.DeleteUser)
		})
	})
}

func setupPostRoutes(r chi.Router, h *handler.PostHandler, jwtService *security.JWTService, cfg *config.AppConfig) {
	r.Route("/api/posts", func(r chi.Router) {
		r.Use(security.JWTMiddleware([]byte(cfg.JWT.AccessSecretKey), jwtService))

		r.Get("/feed", h.GetFeed)
		r.Get("/user/{userUUID}", h.GetUserPosts)
		r.Post("/", h.CreatePost)

		r.Route("/{uuid}", func(r chi.Router) {
			r.Get("/", h.GetPost)
			r.Put("/", h.UpdatePost)
			r.Delete("/", h.DeletePost)
			r.Post("/like", h.ToggleLike)
		})
	})
}

func setupCommentRoutes(r chi.Router, h *handler.CommentHandler, jwtService *security.JWTService, cfg *config.AppConfig) {
	r.Route("/api/comments", func(r chi.Router) {
		r.Use(security.JWTMiddleware([]byte(cfg.JWT.AccessSecretKey), jwtService))

		r.Get("/", h.ListAll)
		r.Post("/", h.CreateComment)
		r.Get("/post/{postUUID}", h.ListByPost)
		r.Put("/{uuid}", h.UpdateComment)
		r.Delete("/{uuid}", h.DeleteComment)
	})
}

// setupMediaRoutes публичный, картинки постов видны без авторизации
func setupMediaRoutes(r chi.Router, h *handler.MediaHandler) {
	r.Get("/api/media/{key}", h.ServeObject)

	r.Get("/api", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"message":"API работает"}`))
	})
}

func runServer(ctx context.Context, server *http.Server) {
	serverErrors := make(chan error, 1)
	go func() {
		log.Println("сервер запущен на " + server.Addr)
		serverErrors <- server.ListenAndServe()
	}()

	signalChannel := make(chan os.Signal, 1)
	signal.Notify(signalChannel, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil {
			log.Fatalf("ошибка работы сервера: %v", err)
		}
	case sig := <-signalChannel:
		log.Printf("получен сигнал %v остановки работы сервера ", sig)
	}

	shutDownCtx, shutDownCancel := context.WithTimeout(ctx, 5*time.Second)
	defer shutDownCancel()

	if err := server.Shutdown(shutDownCtx); err != nil {
		log.Printf("ошибка при остановке сервера: %v", err)
	} else {
		log.Println("Сервер успешно остановлен")
	}
}
