package main

import (
	"context"
	"time"

	"github.com/Abraxas-365/jobboard/board/assist"
	"github.com/Abraxas-365/jobboard/board/assist/assistapi"
	"github.com/Abraxas-365/jobboard/board/assist/assistsrv"
	"github.com/Abraxas-365/jobboard/board/category/categoryapi"
	"github.com/Abraxas-365/jobboard/board/category/categoryinfra"
	"github.com/Abraxas-365/jobboard/board/category/categorysrv"
	"github.com/Abraxas-365/jobboard/board/company/companyapi"
	"github.com/Abraxas-365/jobboard/board/company/companyinfra"
	"github.com/Abraxas-365/jobboard/board/company/companysrv"
	"github.com/Abraxas-365/jobboard/board/job"
	"github.com/Abraxas-365/jobboard/board/job/jobapi"
	"github.com/Abraxas-365/jobboard/board/job/jobinfra"
	"github.com/Abraxas-365/jobboard/board/job/jobsrv"
	"github.com/Abraxas-365/jobboard/board/profile"
	"github.com/Abraxas-365/jobboard/board/profile/profileapi"
	"github.com/Abraxas-365/jobboard/board/profile/profileinfra"
	"github.com/Abraxas-365/jobboard/board/profile/profilesrv"
	"github.com/Abraxas-365/jobboard/internal/ai/embeddings"
	"github.com/Abraxas-365/jobboard/internal/ai/textgen"
	"github.com/Abraxas-365/jobboard/pkg/auth"
	"github.com/Abraxas-365/jobboard/pkg/fsx"
	"github.com/Abraxas-365/jobboard/pkg/fsx/fsxs3"
	"github.com/Abraxas-365/jobboard/pkg/logx"
	"github.com/Abraxas-365/jobboard/pkg/mailx"
	"github.com/Abraxas-365/jobboard/pkg/mailx/mailqueue"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-redis/redis/v8"
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

const mailQueueName = "jobboard:mail"

// Container holds all application dependencies
type Container struct {
	Config *Config

	// Infrastructure
	DB         *sqlx.DB
	Redis      *redis.Client
	FileSystem fsx.FileSystem
	S3Client   *s3.Client
	MailQueue  *mailqueue.RedisQueue
	MailWorker *mailqueue.Worker

	// Services
	TokenService    auth.TokenService
	CategoryService *categorysrv.CategoryService
	CompanyService  *companysrv.CompanyService
	JobService      *jobsrv.JobService
	ProfileService  *profilesrv.ProfileService
	AssistService   *assistsrv.AssistService

	// API Handlers
	CategoryHandlers *categoryapi.Handlers
	CompanyHandlers  *companyapi.Handlers
	JobHandlers      *jobapi.Handlers
	ProfileHandlers  *profileapi.Handlers
	AssistHandlers   *assistapi.Handlers

	// Middleware
	RequireAuth  fiber.Handler
	OptionalAuth fiber.Handler
}

// NewContainer connects to the database. Commands that only touch the
// schema stop here; serve continues with InitServices.
func NewContainer(cfg *Config) *Container {
	c := &Container{Config: cfg}
	c.initDatabase()
	return c
}

func (c *Container) initDatabase() {
	db, err := sqlx.Connect("postgres", c.Config.DSN())
	if err != nil {
		logx.Fatalf("Failed to connect to database: %v", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	c.DB = db
}

// InitServices wires storage, queues and every domain service
func (c *Container) InitServices(ctx context.Context) {
	c.initInfrastructure(ctx)
	c.initDomain()
}

func (c *Container) initInfrastructure(ctx context.Context) {
	cfg := c.Config

	// Redis backs the notification queue
	c.Redis = redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       0,
	})
	if err := c.Redis.Ping(ctx).Err(); err != nil {
		logx.Warnf("Failed to connect to Redis: %v", err)
	}
	c.MailQueue = mailqueue.NewRedisQueue(c.Redis, mailQueueName)

	// S3 stores resumes and their previews
	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(cfg.AWS.Region))
	if err != nil {
		logx.Fatalf("unable to load SDK config, %v", err)
	}
	c.S3Client = s3.NewFromConfig(awsCfg)
	c.FileSystem = fsxs3.NewS3FileSystem(c.S3Client, cfg.AWS.Bucket, cfg.AWS.Region, cfg.AWS.Prefix)

	if cfg.JWT.Secret == "" {
		logx.Warn("JWT_SECRET is not set, using default (unsafe for production)")
		cfg.JWT.Secret = "super-secret-key-please-change-me-in-production"
	}
	c.TokenService = auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.TTL, cfg.JWT.Issuer)
}

func (c *Container) initDomain() {
	cfg := c.Config

	// --- Repositories ---
	categoryRepo := categoryinfra.NewPostgresCategoryRepository(c.DB)
	companyRepo := companyinfra.NewPostgresCompanyRepository(c.DB)
	jobRepo := jobinfra.NewPostgresJobRepository(c.DB)
	profileRepo := profileinfra.NewPostgresProfileRepository(c.DB)
	resumeRepo := profileinfra.NewPostgresResumeRepository(c.DB)

	// --- AI ---
	var embedder job.Embedder
	var generator assist.TextGenerator
	if cfg.OpenAI.APIKey != "" {
		embedder = embeddings.NewGenerator(cfg.OpenAI.APIKey)
		generator = textgen.NewGenerator(cfg.OpenAI.APIKey, cfg.OpenAI.Model)
	} else {
		logx.Warn("OPENAI_API_KEY is not set, similar jobs and drafting are disabled")
	}

	// --- Notifications ---
	var notifier profile.Notifier
	if cfg.MailEnabled() {
		mailer := mailx.NewSMTPMailer(cfg.SMTP)
		c.MailWorker = mailqueue.NewWorker(mailer, c.MailQueue, cfg.MailWorkers)
		notifier = mailqueue.NewDispatcher(c.MailQueue)
	} else {
		logx.Warn("SMTP is not configured, applicants will not be notified")
	}

	// --- Services ---
	c.CategoryService = categorysrv.NewCategoryService(categoryRepo)
	c.CompanyService = companysrv.NewCompanyService(companyRepo)
	c.JobService = jobsrv.NewJobService(jobRepo, companyRepo, embedder)
	c.ProfileService = profilesrv.NewProfileService(profileRepo, resumeRepo, jobRepo, c.FileSystem, notifier)
	c.AssistService = assistsrv.NewAssistService(generator)

	// --- Handlers ---
	c.CategoryHandlers = categoryapi.NewHandlers(c.CategoryService)
	c.CompanyHandlers = companyapi.NewHandlers(c.CompanyService)
	c.JobHandlers = jobapi.NewHandlers(c.JobService)
	c.ProfileHandlers = profileapi.NewHandlers(c.ProfileService)
	c.AssistHandlers = assistapi.NewHandlers(c.AssistService)

	// --- Middleware ---
	c.RequireAuth = auth.Middleware(c.TokenService)
	c.OptionalAuth = auth.OptionalMiddleware(c.TokenService)
}

// Close releases the connections held by the container
func (c *Container) Close() {
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			logx.Warnf("closing redis: %v", err)
		}
	}
	if err := c.DB.Close(); err != nil {
		logx.Warnf("closing database: %v", err)
	}
}
