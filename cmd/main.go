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

	cancelAppointmentHandler "github.com/m04kA/ClinicBookingService/internal/api/handlers/cancel_appointment"
	createBookingHandler "github.com/m04kA/ClinicBookingService/internal/api/handlers/create_booking"
	createTimeOffHandler "github.com/m04kA/ClinicBookingService/internal/api/handlers/create_time_off"
	deleteTimeOffHandler "github.com/m04kA/ClinicBookingService/internal/api/handlers/delete_time_off"
	getAppointmentHandler "github.com/m04kA/ClinicBookingService/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/m04kA/ClinicBookingService/internal/api/handlers/get_available_slots"
	getClinicAppointmentsHandler "github.com/m04kA/ClinicBookingService/internal/api/handlers/get_clinic_appointments"
	getPatientAppointmentsHandler "github.com/m04kA/ClinicBookingService/internal/api/handlers/get_patient_appointments"
	getProfessionalScheduleHandler "github.com/m04kA/ClinicBookingService/internal/api/handlers/get_professional_schedule"
	putAvailabilityHandler "github.com/m04kA/ClinicBookingService/internal/api/handlers/put_professional_availability"
	rescheduleBookingHandler "github.com/m04kA/ClinicBookingService/internal/api/handlers/reschedule_booking"
	"github.com/m04kA/ClinicBookingService/internal/api/middleware"
	"github.com/m04kA/ClinicBookingService/internal/config"
	appointmentRepo "github.com/m04kA/ClinicBookingService/internal/infra/storage/appointment"
	clinicRepo "github.com/m04kA/ClinicBookingService/internal/infra/storage/clinic"
	professionalRepo "github.com/m04kA/ClinicBookingService/internal/infra/storage/professional"
	reminderRepo "github.com/m04kA/ClinicBookingService/internal/infra/storage/reminder"
	scheduleRepo "github.com/m04kA/ClinicBookingService/internal/infra/storage/schedule"
	notificationServiceClient "github.com/m04kA/ClinicBookingService/internal/integrations/notificationservice"
	appointmentsService "github.com/m04kA/ClinicBookingService/internal/service/appointments"
	availabilityService "github.com/m04kA/ClinicBookingService/internal/service/availability"
	"github.com/m04kA/ClinicBookingService/internal/service/conflictguard"
	remindersService "github.com/m04kA/ClinicBookingService/internal/service/reminders"
	scheduleService "github.com/m04kA/ClinicBookingService/internal/service/schedule"
	createBookingUC "github.com/m04kA/ClinicBookingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/ClinicBookingService/internal/usecase/get_available_slots"
	rescheduleBookingUC "github.com/m04kA/ClinicBookingService/internal/usecase/reschedule_booking"
	"github.com/m04kA/ClinicBookingService/pkg/dbmetrics"
	"github.com/m04kA/ClinicBookingService/pkg/logger"
	"github.com/m04kA/ClinicBookingService/pkg/metrics"
	"github.com/m04kA/ClinicBookingService/pkg/txmanager"
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

	log.Info("Starting ClinicBookingService...")

	// Инициализируем метрики (если включены)
	// Выключенные метрики остаются nil: все методы *metrics.Metrics безопасны для nil
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

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)

	// Инициализируем репозитории
	appointmentRepository := appointmentRepo.NewRepository(wrappedDB)
	clinicRepository := clinicRepo.NewRepository(wrappedDB)
	professionalRepository := professionalRepo.NewRepository(wrappedDB)
	scheduleRepository := scheduleRepo.NewRepository(wrappedDB)
	reminderRepository := reminderRepo.NewRepository(wrappedDB)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем интеграционных клиентов
	notificationClient := notificationServiceClient.NewClient(
		cfg.NotificationService.URL,
		time.Duration(cfg.NotificationService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (NotificationService=%s timeout=%ds)",
		cfg.NotificationService.URL, cfg.NotificationService.Timeout)

	// Инициализируем сервисы
	availabilitySvc := availabilityService.NewService(
		professionalRepository,
		scheduleRepository,
		appointmentRepository,
		metricsCollector,
		log,
	)
	guard := conflictguard.NewGuard(availabilitySvc, appointmentRepository, metricsCollector, log)
	reminderSvc := remindersService.NewService(
		clinicRepository,
		professionalRepository,
		reminderRepository,
		&remindersService.RealTimeProvider{},
		log,
	)
	appointmentsSvc := appointmentsService.NewService(
		appointmentRepository,
		clinicRepository,
		reminderSvc,
		log,
	)
	scheduleSvc := scheduleService.NewService(
		professionalRepository,
		clinicRepository,
		scheduleRepository,
		txMgr,
		log,
	)

	// Запускаем рассылку напоминаний
	var dispatcher *remindersService.Dispatcher
	if cfg.Reminders.Enabled {
		dispatcher = remindersService.NewDispatcher(
			reminderRepository,
			notificationClient,
			metricsCollector,
			&remindersService.RealTimeProvider{},
			log,
			remindersService.DispatcherConfig{
				PollInterval: time.Duration(cfg.Reminders.PollIntervalSeconds) * time.Second,
				BatchSize:    uint64(cfg.Reminders.BatchSize),
			},
		)
		if err := dispatcher.Start(context.Background()); err != nil {
			log.Fatal("Failed to start reminder dispatcher: %v", err)
		}
		log.Info("Reminder dispatcher started (poll=%ds, batch=%d)",
			cfg.Reminders.PollIntervalSeconds, cfg.Reminders.BatchSize)
	}

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		appointmentRepository,
		clinicRepository,
		guard,
		reminderSvc,
		txMgr,
		metricsCollector,
		log,
	)
	rescheduleBookingUseCase := rescheduleBookingUC.NewUseCase(
		appointmentRepository,
		clinicRepository,
		guard,
		reminderSvc,
		txMgr,
		metricsCollector,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		clinicRepository,
		availabilitySvc,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	rescheduleBooking := rescheduleBookingHandler.NewHandler(rescheduleBookingUseCase, log)
	getPatientAppointments := getPatientAppointmentsHandler.NewHandler(appointmentsSvc, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentsSvc, log)
	getClinicAppointments := getClinicAppointmentsHandler.NewHandler(appointmentsSvc, log)
	getProfessionalSchedule := getProfessionalScheduleHandler.NewHandler(scheduleSvc, log)
	putAvailability := putAvailabilityHandler.NewHandler(scheduleSvc, log)
	createTimeOff := createTimeOffHandler.NewHandler(scheduleSvc, log)
	deleteTimeOff := deleteTimeOffHandler.NewHandler(scheduleSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

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

	public := api.PathPrefix("/public").Subrouter()
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(
			cfg.RateLimit.RequestsPerMinute,
			cfg.RateLimit.Burst,
			cfg.RateLimit.TrustForwarded,
		)
		public.Use(limiter.Middleware)
		log.Info("Rate limit enabled for public routes (%.0f req/min, burst=%d, trust_forwarded=%t)",
			cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst, cfg.RateLimit.TrustForwarded)
	}

	// Свободные слоты клиники
	public.HandleFunc("/clinics/{slug}/availability", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Запись на прием, X-User-ID необязателен
	public.Handle("/clinics/{slug}/appointments",
		middleware.OptionalAuth(http.HandlerFunc(createBooking.Handle))).Methods(http.MethodPost)

	// ============================================================
	// PATIENT ROUTES (требуют X-User-ID header)
	// ============================================================

	patient := api.PathPrefix("/me").Subrouter()
	patient.Use(middleware.Auth)

	patient.HandleFunc("/appointments", getPatientAppointments.Handle).Methods(http.MethodGet)
	patient.HandleFunc("/appointments/{appointmentId}/reschedule", rescheduleBooking.Handle).Methods(http.MethodPatch)

	// ============================================================
	// SHARED ROUTES (X-User-ID или X-Clinic-ID)
	// ============================================================

	shared := api.PathPrefix("/appointments").Subrouter()
	shared.Use(middleware.AnyAuth)

	shared.HandleFunc("/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)
	shared.HandleFunc("/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)

	// ============================================================
	// CLINIC ROUTES (требуют X-Clinic-ID header)
	// ============================================================

	clinic := api.PathPrefix("/clinic").Subrouter()
	clinic.Use(middleware.ClinicAuth)

	clinic.HandleFunc("/appointments", getClinicAppointments.Handle).Methods(http.MethodGet)
	clinic.HandleFunc("/professionals/{professionalId}/availability", getProfessionalSchedule.Handle).Methods(http.MethodGet)
	clinic.HandleFunc("/professionals/{professionalId}/availability", putAvailability.Handle).Methods(http.MethodPut)
	clinic.HandleFunc("/professionals/{professionalId}/timeoff", createTimeOff.Handle).Methods(http.MethodPost)
	clinic.HandleFunc("/professionals/{professionalId}/timeoff/{timeOffId}", deleteTimeOff.Handle).Methods(http.MethodDelete)

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

	if dispatcher != nil {
		dispatcher.Stop()
		log.Info("Reminder dispatcher stopped")
	}

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}
