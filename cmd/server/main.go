package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sanjeevan43/LifeFlow/internal/config"
	"github.com/sanjeevan43/LifeFlow/internal/firebase"
	"github.com/sanjeevan43/LifeFlow/internal/logger"
	"github.com/sanjeevan43/LifeFlow/internal/notify"
	"github.com/sanjeevan43/LifeFlow/internal/push"
	"github.com/sanjeevan43/LifeFlow/internal/reminder"
	"github.com/sanjeevan43/LifeFlow/internal/scheduler"
	"github.com/sanjeevan43/LifeFlow/internal/store"
)

func main() {
	config.LoadConfig()
	cfg := config.AppConfig

	log := logger.New(logger.FromConfig(cfg.LogLevel, cfg.LogFormat))

	gin.SetMode(cfg.GinMode)

	ctx := context.Background()

	// Firebase clients (Firestore + Cloud Messaging)
	fb, err := firebase.NewClient(ctx, cfg.FirebaseProjectID, cfg.FirebaseCredJSON)
	if err != nil {
		log.Error("failed to initialize firebase", "error", err)
		os.Exit(1)
	}
	defer fb.Close()

	location, err := time.LoadLocation(cfg.SchedulerTimezone)
	if err != nil {
		log.Error("invalid scheduler timezone",
			"timezone", cfg.SchedulerTimezone,
			"error", err)
		os.Exit(1)
	}

	// Initialize services
	documents := store.New(fb.Firestore, log)
	sender := push.NewFCMSender(fb.Messaging, log)

	evaluator := reminder.NewEvaluator(
		documents,
		documents,
		time.Duration(cfg.ReminderWindowMinutes)*time.Minute,
		location,
	)
	dispatcher := reminder.NewDispatcher(sender, log)
	reminderService := reminder.NewService(
		documents,
		documents,
		evaluator,
		dispatcher,
		log,
		cfg.PushNotificationsEnabled,
	)
	notifyService := notify.NewService(
		documents,
		sender,
		log,
		cfg.PushNotificationsEnabled,
		time.Duration(cfg.WelcomeGracePeriodSeconds)*time.Second,
	)

	// Initialize handlers
	reminderHandler := reminder.NewHandler(reminderService, log)
	notifyHandler := notify.NewHandler(notifyService, log)

	// Initialize Gin router
	router := gin.Default()
	router.Use(requestIDMiddleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "instance": logger.GetInstanceID()})
	})

	v1 := router.Group("/v1")
	{
		notifications := v1.Group("/notifications")
		{
			notifications.POST("/send", notifyHandler.SendNotification)
		}

		events := v1.Group("/events")
		{
			events.POST("/user-created", notifyHandler.UserCreated)
		}

		triggers := v1.Group("/triggers")
		{
			triggers.POST("/task-reminders", reminderHandler.TaskReminders)
			triggers.POST("/streak-warnings", reminderHandler.StreakWarnings)
		}
	}

	// Recurring cycles
	sched := scheduler.New(location, time.Duration(cfg.CycleTimeoutSeconds)*time.Second, log)
	jobs := []scheduler.Job{
		{
			Name: "task-reminders",
			Spec: cfg.TaskReminderSchedule,
			Run: func(ctx context.Context) {
				reminderService.RunTaskReminders(ctx, time.Now())
			},
		},
		{
			Name: "streak-warnings",
			Spec: cfg.StreakWarningSchedule,
			Run: func(ctx context.Context) {
				reminderService.RunStreakWarnings(ctx, time.Now())
			},
		},
	}
	for _, job := range jobs {
		if err := sched.Register(job); err != nil {
			log.Error("failed to register job", "job", job.Name, "error", err)
			os.Exit(1)
		}
	}

	if cfg.SchedulerEnabled {
		sched.Start()
	} else {
		log.Warn("scheduler disabled, cycles run only via trigger endpoints")
	}

	port := ":" + cfg.Port
	log.Info("notification service listening", "port", port, "timezone", cfg.SchedulerTimezone)

	srv := &http.Server{
		Addr:    port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	if cfg.SchedulerEnabled {
		sched.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ServerShutdownTimeoutSeconds)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("server exited")
}

// requestIDMiddleware tags every request context with a generated request ID
// so handler logs are correlatable.
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := logger.WithRequestID(c.Request.Context(), logger.GenerateRequestID())
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
