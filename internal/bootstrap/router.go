package bootstrap

import (
	"database/sql"
	"time"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/uptask-dev/uptask-backend/config"
	httpapi "github.com/uptask-dev/uptask-backend/internal/api/http"
	apimw "github.com/uptask-dev/uptask-backend/internal/api/http/middleware"
	"github.com/uptask-dev/uptask-backend/internal/auth"
	authmw "github.com/uptask-dev/uptask-backend/internal/auth/middleware"
	"github.com/uptask-dev/uptask-backend/internal/mailer"
	projhttp "github.com/uptask-dev/uptask-backend/internal/projects/http"
	projrepo "github.com/uptask-dev/uptask-backend/internal/projects/repository"
	projsvc "github.com/uptask-dev/uptask-backend/internal/projects/service"
	taskhttp "github.com/uptask-dev/uptask-backend/internal/tasks/http"
	taskrepo "github.com/uptask-dev/uptask-backend/internal/tasks/repository"
	tasksvc "github.com/uptask-dev/uptask-backend/internal/tasks/service"
	"github.com/uptask-dev/uptask-backend/internal/users"
)

type RouterDeps struct {
	Cfg        *config.Config
	DB         *sql.DB
	Redis      *redis.Client
	AuthClient *fbauth.Client // nil disables token verification (dev only)
	Mailer     mailer.Mailer  // nil disables invite mail
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(apimw.RequestID())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     dep.Cfg.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	healthHandler := httpapi.NewHealthHandler("uptask-backend", dep.Cfg.App.Version, dep.DB, dep.Redis)
	healthHandler.RegisterRoutes(r)

	userRepo := users.NewRepo(dep.DB)
	var cache *users.Cache
	if dep.Redis != nil && dep.Cfg.Redis.CacheTTLSeconds > 0 {
		cache = users.NewCache(dep.Redis, time.Duration(dep.Cfg.Redis.CacheTTLSeconds)*time.Second)
	}
	dir := users.NewDirectory(userRepo, cache)

	projectRepo := projrepo.NewProjectRepository(dep.DB)
	projectSvc := projsvc.NewProjectService(projectRepo, dir, dep.Mailer)
	taskRepo := taskrepo.NewTaskRepository(dep.DB)
	taskSvc := tasksvc.NewTaskService(taskRepo, projectRepo)

	api := r.Group("/api/v1")
	if dep.AuthClient != nil {
		api.Use(authmw.FirebaseAuthMiddleware(dep.AuthClient))
	}
	api.Use(auth.WithUser(dir))

	auth.NewProfileHandler(dir).Register(api.Group("/users"))

	projHandler := projhttp.New(projectSvc)
	projHandler.Register(api.Group("/projects"))
	projHandler.RegisterSearch(api,
		apimw.RateLimitByClient(dep.Cfg.Server.SearchRatePerSec, dep.Cfg.Server.SearchBurst))

	taskhttp.New(taskSvc).Register(api.Group("/tasks"))

	return r
}
