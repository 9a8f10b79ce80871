package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	cancelReservationHandler "github.com/m04kA/SMC-ConsultingService/internal/api/handlers/cancel_reservation"
	createAppointmentTypeHandler "github.com/m04kA/SMC-ConsultingService/internal/api/handlers/create_appointment_type"
	createBlockedDateHandler "github.com/m04kA/SMC-ConsultingService/internal/api/handlers/create_blocked_date"
	createLeadHandler "github.com/m04kA/SMC-ConsultingService/internal/api/handlers/create_lead"
	createReservationHandler "github.com/m04kA/SMC-ConsultingService/internal/api/handlers/create_reservation"
	deleteBlockedDateHandler "github.com/m04kA/SMC-ConsultingService/internal/api/handlers/delete_blocked_date"
	deleteLeadHandler "github.com/m04kA/SMC-ConsultingService/internal/api/handlers/delete_lead"
	deleteReservationHandler "github.com/m04kA/SMC-ConsultingService/internal/api/handlers/delete_reservation"
	exportCalendarHandler "github.com/m04kA/SMC-ConsultingService/internal/api/handlers/export_calendar"
	getAvailableSlotsHandler "github.com/m04kA/SMC-ConsultingService/internal/api/handlers/get_available_slots"
	getCalendarConfigHandler "github.com/m04kA/SMC-ConsultingService/internal/api/handlers/get_calendar_config"
	getLeadHandler "github.com/m04kA/SMC-ConsultingService/internal/api/handlers/get_lead"
	getLeadPipelineHandler "github.com/m04kA/SMC-ConsultingService/internal/api/handlers/get_lead_pipeline"
	getMyReservationsHandler "github.com/m04kA/SMC-ConsultingService/internal/api/handlers/get_my_reservations"
	getReservationHandler "github.com/m04kA/SMC-ConsultingService/internal/api/handlers/get_reservation"
	getReservationBoardHandler "github.com/m04kA/SMC-ConsultingService/internal/api/handlers/get_reservation_board"
	listAppointmentTypesHandler "github.com/m04kA/SMC-ConsultingService/internal/api/handlers/list_appointment_types"
	listBlockedDatesHandler "github.com/m04kA/SMC-ConsultingService/internal/api/handlers/list_blocked_dates"
	listLeadsHandler "github.com/m04kA/SMC-ConsultingService/internal/api/handlers/list_leads"
	listReservationsHandler "github.com/m04kA/SMC-ConsultingService/internal/api/handlers/list_reservations"
	moveLeadStageHandler "github.com/m04kA/SMC-ConsultingService/internal/api/handlers/move_lead_stage"
	reservationFeedHandler "github.com/m04kA/SMC-ConsultingService/internal/api/handlers/reservation_feed"
	transitionReservationHandler "github.com/m04kA/SMC-ConsultingService/internal/api/handlers/transition_reservation"
	updateAppointmentTypeHandler "github.com/m04kA/SMC-ConsultingService/internal/api/handlers/update_appointment_type"
	updateCalendarConfigHandler "github.com/m04kA/SMC-ConsultingService/internal/api/handlers/update_calendar_config"
	updateLeadHandler "github.com/m04kA/SMC-ConsultingService/internal/api/handlers/update_lead"
	updateReservationHandler "github.com/m04kA/SMC-ConsultingService/internal/api/handlers/update_reservation"
	"github.com/m04kA/SMC-ConsultingService/internal/api/middleware"
	"github.com/m04kA/SMC-ConsultingService/internal/config"
	"github.com/m04kA/SMC-ConsultingService/internal/infra/changefeed"
	appointmentTypeRepo "github.com/m04kA/SMC-ConsultingService/internal/infra/storage/appointment_type"
	blockedDateRepo "github.com/m04kA/SMC-ConsultingService/internal/infra/storage/blocked_date"
	calendarRepo "github.com/m04kA/SMC-ConsultingService/internal/infra/storage/calendar"
	leadRepo "github.com/m04kA/SMC-ConsultingService/internal/infra/storage/lead"
	reservationRepo "github.com/m04kA/SMC-ConsultingService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-ConsultingService/internal/integrations/blobstore"
	"github.com/m04kA/SMC-ConsultingService/internal/integrations/identity"
	"github.com/m04kA/SMC-ConsultingService/internal/integrations/notifier"
	"github.com/m04kA/SMC-ConsultingService/internal/jobs"
	calendarService "github.com/m04kA/SMC-ConsultingService/internal/service/calendar"
	leadsService "github.com/m04kA/SMC-ConsultingService/internal/service/leads"
	reservationsService "github.com/m04kA/SMC-ConsultingService/internal/service/reservations"
	createReservationUC "github.com/m04kA/SMC-ConsultingService/internal/usecase/create_reservation"
	exportCalendarUC "github.com/m04kA/SMC-ConsultingService/internal/usecase/export_calendar"
	getAvailableSlotsUC "github.com/m04kA/SMC-ConsultingService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-ConsultingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ConsultingService/pkg/logger"
	"github.com/m04kA/SMC-ConsultingService/pkg/metrics"
	"github.com/m04kA/SMC-ConsultingService/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-ConsultingService...")

	// Метрики (nil, если выключены: все методы Metrics nil-safe)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Database.DBName, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Репозитории
	calendarRepository := calendarRepo.NewRepository(wrappedDB)
	blockedDateRepository := blockedDateRepo.NewRepository(wrappedDB)
	appointmentTypeRepository := appointmentTypeRepo.NewRepository(wrappedDB)
	reservationRepository := reservationRepo.NewRepository(wrappedDB)
	leadRepository := leadRepo.NewRepository(wrappedDB)

	// Лента изменений: Redis для нескольких инстансов, иначе в памяти процесса
	var (
		feed        changefeed.Feed
		redisClient *redis.Client
	)
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			log.Warn("Redis is not reachable at %s: %v", cfg.Redis.Addr, err)
		}
		cancelPing()

		feed = changefeed.NewRedisFeed(redisClient, cfg.Redis.Channel, log)
		log.Info("Change feed: redis channel=%s", cfg.Redis.Channel)
	} else {
		feed = changefeed.NewHub(log)
		log.Info("Change feed: in-process hub")
	}

	// Отправка писем
	var sender interface {
		Send(ctx context.Context, msg notifier.Message) error
	}
	if cfg.Notifications.Enabled {
		sender = notifier.NewSendGridSender(cfg.Notifications.SendGridAPIKey,
			cfg.Notifications.FromEmail, cfg.Notifications.FromName, log)
		log.Info("Notifications: sendgrid from=%s", cfg.Notifications.FromEmail)
	} else {
		sender = notifier.NewStubSender(log)
		log.Info("Notifications: disabled, messages are only logged")
	}

	// Use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		reservationRepository,
		calendarRepository,
		blockedDateRepository,
		log,
	)
	createReservationUseCase := createReservationUC.NewUseCase(
		getAvailableSlotsUseCase,
		reservationRepository,
		appointmentTypeRepository,
		feed,
		log,
	).WithMetrics(metricsCollector)
	exportCalendarUseCase := exportCalendarUC.NewUseCase(reservationRepository, calendarRepository, log)

	// Сервисы
	reservationSvc := reservationsService.NewService(
		reservationRepository,
		calendarRepository,
		txMgr,
		sender,
		feed,
		log,
	).WithMetrics(metricsCollector).WithOrganizer(exportCalendarUC.Organizer{
		Name:  cfg.Notifications.FromName,
		Email: cfg.Notifications.FromEmail,
	})
	calendarSvc := calendarService.NewService(
		calendarRepository,
		blockedDateRepository,
		appointmentTypeRepository,
		txMgr,
		feed,
		log,
	)
	leadSvc := leadsService.NewService(
		leadRepository,
		sender,
		feed,
		cfg.Notifications.AdminEmails,
		log,
	)

	// Аутентификация: локальная проверка JWT или удаленная через identity provider
	var verifier middleware.TokenVerifier
	if cfg.Auth.IdentityURL != "" {
		verifier = identity.NewClient(
			cfg.Auth.IdentityURL,
			cfg.Auth.IdentityAPIKey,
			time.Duration(cfg.Auth.IdentityTimeout)*time.Second,
			log,
		)
	}
	auth := middleware.NewAuthenticator(cfg.Auth.JWTSecret, verifier, cfg.Auth.AdminEmails, log)

	// Лимит на публичные формы
	limit := func(h http.Handler) http.Handler { return h }
	if cfg.RateLimit.Enabled {
		window := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
		var limiter middleware.Limiter
		if redisClient != nil {
			limiter = middleware.NewRedisLimiter(redisClient, "ratelimit", cfg.RateLimit.Requests, window)
		} else {
			limiter = middleware.NewLocalLimiter(cfg.RateLimit.Requests, window)
		}
		proxies, err := middleware.ParseTrustedProxies(cfg.RateLimit.TrustedProxies)
		if err != nil {
			log.Fatal("Invalid rate_limit.trusted_proxies: %v", err)
		}
		limit = middleware.RateLimit(limiter, proxies, log)
		log.Info("Rate limit: %d requests per %s", cfg.RateLimit.Requests, window)
	}

	// Handlers
	h := apiHandlers{
		GetCalendarConfig:          getCalendarConfigHandler.NewHandler(calendarSvc, log).Handle,
		ListPublicAppointmentTypes: listAppointmentTypesHandler.NewHandler(calendarSvc, true, log).Handle,
		GetAvailableSlots:          getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log).Handle,
		CreateReservation:          createReservationHandler.NewHandler(createReservationUseCase, log).Handle,
		CreateLead:                 createLeadHandler.NewHandler(leadSvc, log).Handle,

		GetMyReservations: getMyReservationsHandler.NewHandler(reservationSvc, log).Handle,
		CancelReservation: cancelReservationHandler.NewHandler(reservationSvc, log).Handle,

		UpdateCalendarConfig:    updateCalendarConfigHandler.NewHandler(calendarSvc, log).Handle,
		ExportCalendar:          exportCalendarHandler.NewHandler(exportCalendarUseCase, log).Handle,
		ListBlockedDates:        listBlockedDatesHandler.NewHandler(calendarSvc, log).Handle,
		CreateBlockedDate:       createBlockedDateHandler.NewHandler(calendarSvc, log).Handle,
		DeleteBlockedDate:       deleteBlockedDateHandler.NewHandler(calendarSvc, log).Handle,
		ListAllAppointmentTypes: listAppointmentTypesHandler.NewHandler(calendarSvc, false, log).Handle,
		CreateAppointmentType:   createAppointmentTypeHandler.NewHandler(calendarSvc, log).Handle,
		UpdateAppointmentType:   updateAppointmentTypeHandler.NewHandler(calendarSvc, log).Handle,

		ListReservations:      listReservationsHandler.NewHandler(reservationSvc, log).Handle,
		GetReservationBoard:   getReservationBoardHandler.NewHandler(reservationSvc, log).Handle,
		ReservationFeed:       reservationFeedHandler.NewHandler(feed, cfg.Server.AllowedOrigins, log).Handle,
		GetReservation:        getReservationHandler.NewHandler(reservationSvc, log).Handle,
		UpdateReservation:     updateReservationHandler.NewHandler(reservationSvc, log).Handle,
		DeleteReservation:     deleteReservationHandler.NewHandler(reservationSvc, log).Handle,
		TransitionReservation: transitionReservationHandler.NewHandler(reservationSvc, log).Handle,

		ListLeads:       listLeadsHandler.NewHandler(leadSvc, log).Handle,
		GetLeadPipeline: getLeadPipelineHandler.NewHandler(leadSvc, log).Handle,
		GetLead:         getLeadHandler.NewHandler(leadSvc, log).Handle,
		UpdateLead:      updateLeadHandler.NewHandler(leadSvc, log).Handle,
		DeleteLead:      deleteLeadHandler.NewHandler(leadSvc, log).Handle,
		MoveLeadStage:   moveLeadStageHandler.NewHandler(leadSvc, log).Handle,
	}

	// Настраиваем роутер
	r := newRouter(h, auth, limit, metricsCollector, cfg.Metrics.Path)
	if metricsCollector != nil {
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// Фоновые задачи
	jobsLoc, err := time.LoadLocation(cfg.Jobs.Timezone)
	if err != nil {
		log.Fatal("Invalid jobs timezone %q: %v", cfg.Jobs.Timezone, err)
	}
	scheduler := jobs.NewScheduler(jobsLoc, log)
	if err := scheduler.Add(cfg.Jobs.RemindersSpec, jobs.NewRemindersJob(reservationSvc, log)); err != nil {
		log.Fatal("Failed to schedule reminders: %v", err)
	}
	if cfg.Storage.Enabled {
		store, err := blobstore.New(context.Background(), blobstore.Config{
			Bucket:        cfg.Storage.Bucket,
			Region:        cfg.Storage.Region,
			Endpoint:      cfg.Storage.Endpoint,
			PublicBaseURL: cfg.Storage.PublicBaseURL,
		})
		if err != nil {
			log.Fatal("Failed to initialize blob store: %v", err)
		}
		publishJob := jobs.NewPublishCalendarJob(exportCalendarUseCase, store, cfg.Jobs.CalendarPublishKey, log)
		if err := scheduler.Add(cfg.Jobs.CalendarSpec, publishJob); err != nil {
			log.Fatal("Failed to schedule calendar publication: %v", err)
		}
	}
	scheduler.Start()

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}
	if err := scheduler.Stop(shutdownCtx); err != nil {
		log.Warn("Scheduler stopped before jobs finished: %v", err)
	}

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}
