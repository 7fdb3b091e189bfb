package bootstrap

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/blogforge/blogforge/config"
	"github.com/blogforge/blogforge/internal/adapters/cloudinary"
	"github.com/blogforge/blogforge/internal/adapters/devmedia"
	redisadapter "github.com/blogforge/blogforge/internal/adapters/redis"
	"github.com/blogforge/blogforge/internal/adapters/token"
	"github.com/blogforge/blogforge/internal/data"
	"github.com/blogforge/blogforge/internal/observability/statsd"
	"github.com/blogforge/blogforge/internal/ports"
	"github.com/blogforge/blogforge/internal/service"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Auth     *service.AuthService
	Users    *service.UserService
	Blogs    *service.BlogService
	Contacts *service.ContactService

	MetricsSink *statsd.Client
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// NewServices builds the service container from shared infrastructure.
func NewServices(deps *ServiceDeps) (ServiceContainer, error) {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cfg := deps.Config

	issuer, err := token.NewJWTIssuer(token.Config{
		Secret: cfg.Auth.JWTSecret,
		TTL:    cfg.Auth.TokenTTL,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("token issuer: %w", err)
	}

	var revocations ports.RevocationStore
	if deps.RedisClient != nil {
		revocations = redisadapter.NewRevocationStore(deps.RedisClient)
	}

	media, err := buildMediaStore(cfg, logger)
	if err != nil {
		return ServiceContainer{}, err
	}

	userRepo := data.NewUserRepo(deps.DB)
	blogRepo := data.NewBlogRepo(deps.DB)
	contactRepo := data.NewContactRepo(deps.DB)

	container := ServiceContainer{
		Auth: service.NewAuthService(service.AuthServiceOptions{
			Users:       userRepo,
			Tokens:      issuer,
			Revocations: revocations,
			Media:       media,
			Logger:      logger,
		}),
		Users: service.NewUserService(service.UserServiceOptions{
			Users:  userRepo,
			Media:  media,
			Logger: logger,
		}),
		Blogs: service.NewBlogService(service.BlogServiceOptions{
			Blogs:  blogRepo,
			Media:  media,
			Logger: logger,
		}),
		Contacts: service.NewContactService(service.ContactServiceOptions{
			Contacts: contactRepo,
			Logger:   logger,
		}),
		MetricsSink: buildMetricsSink(cfg, logger),
	}

	return container, nil
}

// buildMediaStore picks Cloudinary when credentials are configured and the
// in-memory dev store otherwise. The dev store is refused outside dev mode.
func buildMediaStore(cfg *config.AppConfig, logger *slog.Logger) (ports.MediaStore, error) {
	if cfg.Media.IsConfigured() {
		store, err := cloudinary.NewStore(cloudinary.Config{
			CloudName: cfg.Media.CloudName,
			APIKey:    cfg.Media.APIKey,
			APISecret: cfg.Media.APISecret,
			Folder:    cfg.Media.Folder,
		})
		if err != nil {
			return nil, fmt.Errorf("cloudinary store: %w", err)
		}
		return store, nil
	}

	if !cfg.IsDev {
		return nil, fmt.Errorf("media storage is not configured; set CLOUDINARY_* or run with DEV=true")
	}

	logger.Warn("cloudinary not configured; using in-memory media store")
	return devmedia.NewStore(), nil
}

func buildMetricsSink(cfg *config.AppConfig, logger *slog.Logger) *statsd.Client {
	if !cfg.Observability.Metrics.IsEnabled() {
		return nil
	}

	client, err := statsd.NewClient(statsd.Config{
		Enabled: true,
		Address: cfg.Observability.Metrics.StatsdAddress,
		Prefix:  cfg.Observability.Metrics.StatsdPrefix,
		Logger:  logger,
	})
	if err != nil {
		logger.Error("failed to initialise statsd client", "error", err)
		return nil
	}
	return client
}
