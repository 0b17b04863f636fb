package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	_ "github.com/noah-isme/enrollment-api/api/swagger"
	"github.com/noah-isme/enrollment-api/internal/handler"
	internalmiddleware "github.com/noah-isme/enrollment-api/internal/middleware"
	"github.com/noah-isme/enrollment-api/internal/repository"
	"github.com/noah-isme/enrollment-api/internal/service"
	"github.com/noah-isme/enrollment-api/pkg/config"
	"github.com/noah-isme/enrollment-api/pkg/database"
	"github.com/noah-isme/enrollment-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/enrollment-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/enrollment-api/pkg/middleware/requestid"
	"github.com/noah-isme/enrollment-api/pkg/response"
)

// Dependencies are the long lived clients the router wires into handlers.
// Redis and Metrics are optional.
type Dependencies struct {
	Config  *config.Config
	DB      *sqlx.DB
	Redis   *redis.Client
	Logger  *zap.Logger
	Metrics *service.MetricsService
}

// NewRouter builds the HTTP engine with every route registered.
func NewRouter(deps Dependencies) *gin.Engine {
	cfg := deps.Config
	if cfg == nil {
		cfg = &config.Config{APIPrefix: "/api"}
	}
	logr := deps.Logger
	if logr == nil {
		logr = zap.NewNop()
	}
	metrics := deps.Metrics
	if metrics == nil {
		metrics = service.NewMetricsService()
	}

	courseRepo := repository.NewCourseRepository(deps.DB).WithObserver(metrics)
	studentRepo := repository.NewStudentRepository(deps.DB).WithObserver(metrics)
	enrollmentRepo := repository.NewEnrollmentRepository(deps.DB).WithObserver(metrics)
	tx := database.NewTransactor(deps.DB)

	cacheEnabled := cfg.Cache.Enabled && deps.Redis != nil
	cacheSvc := service.NewCacheService(repository.NewCacheRepository(deps.Redis, logr), metrics, cfg.Cache.TTL, logr, cacheEnabled)

	validate := validator.New()
	courseSvc := service.NewCourseService(service.CourseServiceParams{
		Repo:      courseRepo,
		Tx:        tx,
		Cache:     cacheSvc,
		Validator: validate,
		Logger:    logr,
	})
	studentSvc := service.NewStudentService(service.StudentServiceParams{
		Repo:      studentRepo,
		Tx:        tx,
		Cache:     cacheSvc,
		Validator: validate,
		Logger:    logr,
	})
	enrollmentSvc := service.NewEnrollmentService(service.EnrollmentServiceParams{
		Repo:      enrollmentRepo,
		Students:  studentRepo,
		Courses:   courseRepo,
		Tx:        tx,
		Validator: validate,
		Logger:    logr,
	})

	courseHandler := handler.NewCourseHandler(courseSvc)
	studentHandler := handler.NewStudentHandler(studentSvc)
	enrollmentHandler := handler.NewEnrollmentHandler(enrollmentSvc)
	metricsHandler := handler.NewMetricsHandler(metrics, deps.DB, logr)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	if cfg.Tracing.Enabled {
		r.Use(otelgin.Middleware(serviceName(cfg)))
	}
	r.Use(logger.GinMiddleware(logr))
	r.Use(internalmiddleware.Metrics(metrics))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)
	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		api.POST("/course", courseHandler.Create)
		api.GET("/course/:course_id", courseHandler.Get)
		api.PUT("/course/:course_id", courseHandler.Update)
		api.DELETE("/course/:course_id", courseHandler.Delete)

		api.POST("/student", studentHandler.Create)
		api.GET("/student/:student_id", studentHandler.Get)
		api.PUT("/student/:student_id", studentHandler.Update)
		api.DELETE("/student/:student_id", studentHandler.Delete)

		api.GET("/student/:student_id/course", enrollmentHandler.List)
		api.POST("/student/:student_id/course", enrollmentHandler.Create)
		api.DELETE("/student/:student_id/course/:course_id", enrollmentHandler.Delete)
	}

	r.NoRoute(func(c *gin.Context) {
		response.Empty(c, http.StatusNotFound)
	})

	return r
}

func serviceName(cfg *config.Config) string {
	if cfg.Tracing.ServiceName != "" {
		return cfg.Tracing.ServiceName
	}
	return "enrollment-api"
}
