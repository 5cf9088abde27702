package container

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"fedblog-backend/internal/config"
	"fedblog-backend/internal/infrastructure/cache"
	"fedblog-backend/internal/infrastructure/queue"
	"fedblog-backend/pkg/jwt"
	"fedblog-backend/pkg/logger"

	"fedblog-backend/internal/domains/blog"
	blogHandler "fedblog-backend/internal/domains/blog/handler"
	blogRepo "fedblog-backend/internal/domains/blog/repository"
	blogService "fedblog-backend/internal/domains/blog/service"

	"fedblog-backend/internal/domains/follower"
	followerHandler "fedblog-backend/internal/domains/follower/handler"
	followerRepo "fedblog-backend/internal/domains/follower/repository"

	"fedblog-backend/internal/domains/federation"
	fedHandler "fedblog-backend/internal/domains/federation/handler"
	fedService "fedblog-backend/internal/domains/federation/service"
	fedTransport "fedblog-backend/internal/domains/federation/transport"
)

// Container holds the full dependency graph. Everything in it is a
// singleton: stateless layers over one Redis connection and one asynq client.
type Container struct {
	// Infrastructure
	Config      *config.Config
	Store       *cache.RedisStore
	AsynqClient *asynq.Client
	JWTManager  *jwt.Manager

	// Federation plumbing
	Addresser *federation.Addresser
	Transport federation.Transport
	Resolver  federation.Resolver
	Deliverer *fedTransport.Deliverer

	// Repositories
	BlogRepo     blog.Repository
	FollowerRepo follower.Repository

	// Services
	BlogService  blog.Service
	Synchronizer federation.Synchronizer
	Inbox        federation.Inbox

	// Handlers
	BlogHandler       *blogHandler.BlogHandler
	FollowerHandler   *followerHandler.FollowerHandler
	FederationHandler *fedHandler.FederationHandler
}

// NewContainer initializes the dependency graph in order:
// config, infrastructure, repositories, services, handlers.
func NewContainer() (*Container, error) {
	c := &Container{}

	// 1. Config
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	c.Config = cfg

	// 2. Infrastructure
	c.Store = cache.NewRedisStore(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := c.Store.Connect(ctx); err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}

	c.AsynqClient = queue.NewClient(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpiryHours)*time.Hour)

	// 3. Federation plumbing
	c.Addresser = federation.NewAddresser(cfg.BaseURL())
	c.Transport = fedTransport.NewAsynqTransport(c.AsynqClient, cfg.Worker.DeliveryQueue, cfg.Worker.MaxRetry)
	c.Resolver = fedTransport.NewHTTPResolver()
	c.Deliverer = fedTransport.NewDeliverer()

	// 4. Repositories
	c.BlogRepo = blogRepo.NewKVRepository(c.Store)
	c.FollowerRepo = followerRepo.NewKVRepository(c.Store)

	// 5. Services
	c.BlogService = blogService.NewBlogService(c.BlogRepo)
	c.Synchronizer = fedService.NewSynchronizer(c.FollowerRepo, c.Transport, c.Addresser)
	c.Inbox = fedService.NewInboxService(c.BlogService, c.FollowerRepo, c.Transport, c.Resolver, c.Addresser)

	// 6. Handlers
	tokenExpiry := time.Duration(cfg.JWT.ExpiryHours) * time.Hour
	c.BlogHandler = blogHandler.NewBlogHandler(c.BlogService, c.Synchronizer, c.JWTManager, tokenExpiry)
	c.FollowerHandler = followerHandler.NewFollowerHandler(c.FollowerRepo)
	c.FederationHandler = fedHandler.NewFederationHandler(c.BlogService, c.Inbox, c.FollowerRepo, c.Addresser, cfg.Federation.Domain)

	logger.Info("container initialized", map[string]interface{}{
		"environment": cfg.App.Environment,
		"domain":      cfg.Federation.Domain,
	})

	return c, nil
}

// Cleanup closes open connections.
func (c *Container) Cleanup() {
	if c.AsynqClient != nil {
		if err := c.AsynqClient.Close(); err != nil {
			logger.Error("close asynq client", err)
		}
	}
	if c.Store != nil {
		if err := c.Store.Close(); err != nil {
			logger.Error("close redis", err)
		}
	}
}
