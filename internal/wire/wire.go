package wire

import (
	"Inkwell/internal/api"
	"Inkwell/internal/api/config"
	"Inkwell/internal/api/handler"
	"Inkwell/internal/job"
	"Inkwell/internal/pkg/cron"
	"Inkwell/internal/pkg/kafka"
	mongorepo "Inkwell/internal/pkg/mongo"
	"Inkwell/internal/pkg/ratelimit"
	"Inkwell/internal/pkg/security"
	"Inkwell/internal/repository"
	"Inkwell/internal/service"
	"errors"
	log "log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router        *gin.Engine
	DB            *gorm.DB
	CronMgr       *cron.Manager
	KafkaManager  *kafka.ConsumerManager // 未开启审计归档时为 nil
	AuditProducer *kafka.AuditProducer   // 未开启审计镜像时为 nil
}

// BuildApplication rdb 与 mongoDB 未启用时可为 nil
func BuildApplication(db *gorm.DB, rdb *redis.Client, mongoDB *mongo.Database, cfg *config.Config) (*ApplicationContainer, error) {
	postRepo := repository.NewPostRepository(db)
	profileRepo := repository.NewProfileRepo(db)
	commentRepo := repository.NewCommentRepo(db)
	likeRepo := repository.NewLikeRepo(db)
	tagRepo := repository.NewTagRepository(db)

	// 限流
	var limiter ratelimit.Limiter
	var sweepJob *job.RateLimitSweepJob
	switch cfg.RateLimit.Backend {
	case "redis":
		if rdb == nil {
			return nil, errors.New("rate_limit.backend is redis but redis is not initialized")
		}
		limiter = ratelimit.NewRedisLimiter(rdb)
	default:
		memLimiter := ratelimit.NewMemoryLimiter(ratelimit.WithMaxEntries(cfg.RateLimit.MaxEntries))
		limiter = memLimiter
		sweepJob = job.NewRateLimitSweepJob(memLimiter)
	}
	policies := buildPolicies(cfg.RateLimit.Policies)

	// 审计
	var auditStore interface {
		service.AuditSink
		service.AuditReader
	}
	switch cfg.Audit.Store {
	case "mongo":
		if mongoDB == nil {
			return nil, errors.New("audit.store is mongo but mongo is not initialized")
		}
		auditStore = mongorepo.NewAuditLogRepo(mongoDB)
	default:
		auditStore = repository.NewAuditLogRepo(db)
	}
	sinks := []service.AuditSink{auditStore}

	var producer *kafka.AuditProducer
	if cfg.Audit.Kafka.Enable {
		var err error
		producer, err = kafka.NewAuditProducer(cfg.Kafka, cfg.Audit.Kafka.Topic)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, producer)
	}

	permissionSvc := service.NewPermissionService(postRepo, profileRepo)
	auditLogger := service.NewAuditLogger(permissionSvc, auditStore, sinks...)
	securePostSvc := service.NewSecurePostService(postRepo, permissionSvc, auditLogger, limiter, policies)
	postSvc := service.NewPostService(postRepo)
	commentSvc := service.NewCommentService(commentRepo, permissionSvc, auditLogger, limiter, policies)
	likeSvc := service.NewLikeService(likeRepo, permissionSvc, limiter, policies)
	profileSvc := service.NewProfileService(profileRepo, auditLogger)
	tagSvc := service.NewTagService(tagRepo)

	handlers := &api.HandlersGroup{
		PostHandler:     handler.NewPostHandler(securePostSvc, postSvc),
		CommentHandler:  handler.NewCommentHandler(commentSvc),
		LikeHandler:     handler.NewLikeHandler(likeSvc),
		ProfileHandler:  handler.NewProfileHandler(profileSvc),
		TagHandler:      handler.NewTagHandler(tagSvc, postSvc),
		AuditLogHandler: handler.NewAuditLogHandler(auditLogger),
		TokenVerifier:   security.NewTokenVerifier(cfg.JWT.Secret, cfg.JWT.Issuer),
	}

	router := api.SetupRouter(handlers, cfg)

	cronMgr := cron.NewCronManager(cfg.RateLimit.SweepSchedule, sweepJob, job.NewLikeCountJob(likeRepo))

	// 审计归档：从 Kafka 消费并写入 MongoDB
	var kafkaMgr *kafka.ConsumerManager
	if cfg.Audit.Kafka.Enable && cfg.Audit.Kafka.Archive.Enable {
		if mongoDB == nil {
			return nil, errors.New("audit archive requires mongo")
		}
		var err error
		kafkaMgr, err = kafka.NewConsumerManager(cfg, mongorepo.NewAuditLogRepo(mongoDB))
		if err != nil {
			_ = producer.Close()
			return nil, err
		}
	}

	log.Info("Application built",
		"rate_limit_backend", cfg.RateLimit.Backend,
		"audit_store", cfg.Audit.Store,
		"audit_kafka", cfg.Audit.Kafka.Enable,
	)

	return &ApplicationContainer{
		Router:        router,
		DB:            db,
		CronMgr:       cronMgr,
		KafkaManager:  kafkaMgr,
		AuditProducer: producer,
	}, nil
}

// buildPolicies 配置中的窗口单位为秒
func buildPolicies(cfg map[string]config.RateLimitPolicy) ratelimit.Policies {
	policies := make(ratelimit.Policies, len(cfg))
	for action, p := range cfg {
		policies[action] = ratelimit.Policy{
			Limit:  p.Limit,
			Window: time.Duration(p.Window) * time.Second,
		}
	}
	return policies
}
