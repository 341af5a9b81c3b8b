package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/lssauto/auto-scheduler/internal/handler"
	"github.com/lssauto/auto-scheduler/internal/middleware"
	"github.com/lssauto/auto-scheduler/internal/models"
	"github.com/lssauto/auto-scheduler/internal/service"
	"github.com/lssauto/auto-scheduler/internal/store"
	"github.com/lssauto/auto-scheduler/pkg/cache"
	"github.com/lssauto/auto-scheduler/pkg/config"
	"github.com/lssauto/auto-scheduler/pkg/logger"
	corsmiddleware "github.com/lssauto/auto-scheduler/pkg/middleware/cors"
	reqidmiddleware "github.com/lssauto/auto-scheduler/pkg/middleware/requestid"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	policy, err := config.LoadPolicy(cfg.PolicyFile)
	if err != nil {
		logr.Sugar().Fatalw("failed to load policy", "error", err)
	}

	st := store.New()
	if err := seedStore(st, policy); err != nil {
		logr.Sugar().Fatalw("failed to seed scheduling context", "error", err)
	}

	validate := validator.New()
	metricsSvc := service.NewMetricsService()

	cacheSvc := service.NewCacheService(nil, cfg.Cache.TTL, logr)
	if cfg.Cache.Enabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, timetable cache disabled", "error", err)
		} else {
			cacheSvc = service.NewCacheService(redisClient, cfg.Cache.TTL, logr)
		}
	}

	notifier := service.NewLogNotifier(logr)
	rosterSvc := service.NewRosterService(st, policy, validate, logr, notifier)
	schedulerSvc := service.NewSchedulerService(st, policy, validate, logr, metricsSvc, service.SchedulerConfig{
		ReportTTL: cfg.Scheduler.ReportTTL,
	})

	var authSvc *service.AuthService
	if cfg.JWT.Enabled {
		authSvc = service.NewAuthService(service.AuthConfig{
			Secret:     cfg.JWT.Secret,
			Expiration: cfg.JWT.Expiration,
		}, logr)
	}

	rosterHandler := handler.NewRosterHandler(rosterSvc)
	schedulerHandler := handler.NewSchedulerHandler(schedulerSvc)
	timetableHandler := handler.NewTimetableHandler(rosterSvc, cacheSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/metrics", metricsHandler.Prometheus)

	api := r.Group(cfg.APIPrefix)
	api.Use(middleware.JWT(authSvc))
	{
		api.POST("/tutors", rosterHandler.CreateTutor)
		api.GET("/tutors", rosterHandler.ListTutors)
		api.DELETE("/tutors/:id", rosterHandler.DeleteTutor)
		api.POST("/tutors/:id/blocks", rosterHandler.AddTimeBlock)
		api.DELETE("/tutors/:id/blocks/:blockId", rosterHandler.RemoveTimeBlock)
		api.GET("/tutors/:id/timetable", timetableHandler.Tutor)

		api.POST("/courses", rosterHandler.CreateCourse)
		api.PATCH("/courses/:id/status", rosterHandler.UpdateCourseStatus)
		api.DELETE("/courses/:id", rosterHandler.DeleteCourse)

		api.POST("/buildings", rosterHandler.CreateBuilding)
		api.GET("/buildings", rosterHandler.ListBuildings)
		api.DELETE("/buildings/:id", rosterHandler.DeleteBuilding)

		api.POST("/rooms", rosterHandler.CreateRoom)
		api.GET("/rooms", rosterHandler.ListRooms)
		api.DELETE("/rooms/:id", rosterHandler.DeleteRoom)
		api.GET("/rooms/:id/timetable", timetableHandler.Room)

		api.POST("/schedule/run", schedulerHandler.Run)
		api.GET("/schedule/runs/:id", schedulerHandler.Report)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

// seedStore installs the policy positions and the registrar request
// queue into a fresh scheduling context.
func seedStore(st *store.Store, policy *models.Policy) error {
	st.Lock()
	defer st.Unlock()

	for i := range policy.Positions {
		if err := st.AddPosition(&policy.Positions[i]); err != nil {
			return err
		}
	}

	registrar := &models.Building{
		ID:    uuid.NewString(),
		Name:  policy.Registrar.Name,
		Range: policy.Registrar.Range,
	}
	if err := st.AddBuilding(registrar); err != nil {
		return err
	}
	if _, err := st.EnsureRequestRoom(registrar.ID); err != nil {
		return err
	}
	return st.SetRegistrar(registrar.ID)
}
