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

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	createBookingHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_booking"
	getScheduleSettingsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_schedule_settings"
	getServiceHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_service"
	listBookingsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/list_bookings"
	listServicesHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/list_services"
	listStaffHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/list_staff"
	transitionStatusHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/transition_status"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/config"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/lock"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/lock/redislock"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/migrations"
	bookingRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/booking"
	serviceRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/service"
	staffRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/staff"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/staffdirectory"
	bookingsService "github.com/m04kA/SMC-AppointmentService/internal/service/bookings"
	catalogService "github.com/m04kA/SMC-AppointmentService/internal/service/catalog"
	createBookingUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_available_slots"
	transitionStatusUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/transition_status"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/keylock"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/metrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/txmanager"
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

	log.Info("Starting SMC-AppointmentService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены). nil-коллектор ничего не пишет.
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Часовой пояс и настройки расписания
	loc, err := cfg.BusinessHours.Location()
	if err != nil {
		log.Fatal("Failed to load timezone %q: %v", cfg.BusinessHours.Timezone, err)
	}

	schedulingConfig := domain.SchedulingConfig{
		OpeningTime:            cfg.BusinessHours.OpeningTime,
		ClosingTime:            cfg.BusinessHours.ClosingTime,
		SlotGranularityMinutes: cfg.BusinessHours.SlotGranularityMinutes,
		DefaultDurationMinutes: cfg.BusinessHours.DefaultDurationMinutes,
		AdvanceBookingDays:     cfg.Booking.AdvanceBookingDays,
		Location:               loc,
	}
	log.Info("Business hours %s-%s (%s), granularity=%dm, default duration=%dm",
		schedulingConfig.OpeningTime, schedulingConfig.ClosingTime, loc,
		schedulingConfig.SlotGranularityMinutes, schedulingConfig.DefaultDurationMinutes)

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение (база может подниматься дольше сервиса)
	if err := pingWithRetry(db, cfg.Database.ConnectRetries, time.Duration(cfg.Database.RetryInterval)*time.Second, log); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	if cfg.Database.MigrateOnStart {
		if err := migrations.Up(db, log); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
	}

	// Обертка с метриками запросов и пула соединений
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB, metricsCollector)

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	serviceRepository := serviceRepo.NewRepository(wrappedDB)

	// Источник сотрудников: таблица staff или внешний справочник
	var staffSource staffdirectory.Directory
	switch cfg.StaffDirectory.Source {
	case config.StaffSourceHTTP:
		staffSource = staffdirectory.NewClient(
			cfg.StaffDirectory.URL,
			time.Duration(cfg.StaffDirectory.Timeout)*time.Second,
			log,
		)
		log.Info("Staff directory client initialized (url=%s, timeout=%ds)",
			cfg.StaffDirectory.URL, cfg.StaffDirectory.Timeout)
	default:
		staffSource = staffRepo.NewRepository(wrappedDB)
		log.Info("Staff are read from the database")
	}

	// Блокировки расписания сотрудника
	var (
		lockBackend lock.Locker
		redisClient *redis.Client
	)
	switch cfg.Locking.Backend {
	case config.LockBackendRedis:
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := redisClient.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			log.Fatal("Failed to ping redis at %s: %v", cfg.Redis.Addr, err)
		}
		lockBackend = redislock.New(redisClient, time.Duration(cfg.Locking.TTLSeconds)*time.Second, cfg.Redis.KeyPrefix, log)
		log.Info("Redis locking enabled (addr=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Locking.TTLSeconds)
	default:
		lockBackend = keylock.New()
		log.Info("In-process locking enabled")
	}
	locker := lock.Instrument(lockBackend, cfg.Locking.Backend, time.Duration(cfg.Locking.WaitTimeoutSeconds)*time.Second, metricsCollector)

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, staffSource, log)
	catalogSvc := catalogService.NewService(serviceRepository, staffSource, schedulingConfig, log)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		serviceRepository,
		staffSource,
		schedulingConfig,
		log,
	)

	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		serviceRepository,
		staffSource,
		txMgr,
		locker,
		metricsCollector,
		schedulingConfig,
		log,
	)

	transitionStatusUseCase := transitionStatusUC.NewUseCase(
		bookingRepository,
		staffSource,
		txMgr,
		locker,
		metricsCollector,
		schedulingConfig,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, loc, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	transitionStatus := transitionStatusHandler.NewHandler(transitionStatusUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	listServices := listServicesHandler.NewHandler(catalogSvc, log)
	getService := getServiceHandler.NewHandler(catalogSvc, log)
	listStaff := listStaffHandler.NewHandler(catalogSvc, log)
	getSettings := getScheduleSettingsHandler.NewHandler(catalogSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recover(log))
	r.Use(middleware.Logging(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	api.HandleFunc("/slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/services", listServices.Handle).Methods(http.MethodGet)
	api.HandleFunc("/services/{serviceId}", getService.Handle).Methods(http.MethodGet)
	api.HandleFunc("/staff", listStaff.Handle).Methods(http.MethodGet)
	api.HandleFunc("/settings", getSettings.Handle).Methods(http.MethodGet)

	// Создание бронирования клиентом (с ограничением частоты)
	var createHandler http.Handler = http.HandlerFunc(createBooking.Handle)
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst, log)
		limiterCtx, stopLimiter := context.WithCancel(context.Background())
		defer stopLimiter()
		limiter.StartCleanup(limiterCtx, 10*time.Minute)
		createHandler = limiter.Handler(createHandler)
		log.Info("Rate limit for POST /bookings: %.0f req/min, burst=%d",
			cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst)
	}
	api.Handle("/bookings", createHandler).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-Staff-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	protected.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/status", transitionStatus.Handle).Methods(http.MethodPatch)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
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

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close redis client: %v", err)
		}
	}

	log.Info("Server stopped gracefully")
}

// pingWithRetry проверяет соединение с БД, повторяя попытки
func pingWithRetry(db *sql.DB, retries int, interval time.Duration, log *logger.Logger) error {
	var err error
	for attempt := 1; attempt <= retries+1; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err = db.PingContext(ctx)
		cancel()
		if err == nil {
			return nil
		}
		if attempt <= retries {
			log.Warn("Database is not ready (attempt %d/%d): %v", attempt, retries+1, err)
			time.Sleep(interval)
		}
	}
	return err
}
