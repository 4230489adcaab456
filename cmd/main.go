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

	cancelBookingHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/cancel_booking"
	checkAvailabilityHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/check_availability"
	confirmPaymentHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/confirm_payment"
	createBookingHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/create_booking"
	createCouponHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/create_coupon"
	createVehicleHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/create_vehicle"
	deleteCouponHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/delete_coupon"
	deleteVehicleHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/delete_vehicle"
	getAvailabilityHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/get_availability"
	getBookingHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/get_booking"
	getBookingsHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/get_bookings"
	getCouponsHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/get_coupons"
	getUserBookingsHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/get_user_bookings"
	getVehicleHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/get_vehicle"
	listBrandsHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/list_brands"
	listVehiclesHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/list_vehicles"
	updateBookingStatusHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/update_booking_status"
	updateCouponHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/update_coupon"
	updateVehicleHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/update_vehicle"
	validateCouponHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/validate_coupon"
	"github.com/m04kA/SMC-RentalService/internal/api/middleware"
	"github.com/m04kA/SMC-RentalService/internal/config"
	bookingRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/booking"
	couponRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/coupon"
	userRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/user"
	vehicleRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/vehicle"
	mailerClient "github.com/m04kA/SMC-RentalService/internal/integrations/mailer"
	paymentsClient "github.com/m04kA/SMC-RentalService/internal/integrations/payments"
	bookingsService "github.com/m04kA/SMC-RentalService/internal/service/bookings"
	couponsService "github.com/m04kA/SMC-RentalService/internal/service/coupons"
	vehiclesService "github.com/m04kA/SMC-RentalService/internal/service/vehicles"
	cancelBookingUC "github.com/m04kA/SMC-RentalService/internal/usecase/cancel_booking"
	checkAvailabilityUC "github.com/m04kA/SMC-RentalService/internal/usecase/check_availability"
	confirmPaymentUC "github.com/m04kA/SMC-RentalService/internal/usecase/confirm_payment"
	createBookingUC "github.com/m04kA/SMC-RentalService/internal/usecase/create_booking"
	getAvailabilityUC "github.com/m04kA/SMC-RentalService/internal/usecase/get_availability"
	"github.com/m04kA/SMC-RentalService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RentalService/pkg/logger"
	"github.com/m04kA/SMC-RentalService/pkg/metrics"
	"github.com/m04kA/SMC-RentalService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-RentalService/pkg/txmanager"
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

	log.Info("Starting SMC-RentalService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
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

	// Инициализируем интеграционных клиентов
	stripeClient := paymentsClient.NewClient(cfg.Stripe.SecretKey, cfg.Stripe.Currency, log)
	emailClient := mailerClient.NewClient(
		cfg.Email.Host,
		cfg.Email.Port,
		cfg.Email.Username,
		cfg.Email.Password,
		cfg.Email.From,
		cfg.Email.AdminEmail,
		log,
	)
	log.Info("Integration clients initialized (Stripe currency=%s, SMTP=%s:%d)",
		cfg.Stripe.Currency, cfg.Email.Host, cfg.Email.Port)

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository *bookingRepo.Repository
		vehicleRepository *vehicleRepo.Repository
		couponRepository  *couponRepo.Repository
		userRepository    *userRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		vehicleRepository = vehicleRepo.NewRepository(wrappedDB)
		couponRepository = couponRepo.NewRepository(wrappedDB)
		userRepository = userRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		vehicleRepository = vehicleRepo.NewRepository(db)
		couponRepository = couponRepo.NewRepository(db)
		userRepository = userRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	vehiclesSvc := vehiclesService.NewService(vehicleRepository, log)
	couponsSvc := couponsService.NewService(couponRepository, log)
	bookingsSvc := bookingsService.NewService(bookingRepository, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		vehicleRepository,
		userRepository,
		couponsSvc,
		stripeClient,
		txMgr,
		cfg.Extras,
		log,
	)
	confirmPaymentUseCase := confirmPaymentUC.NewUseCase(
		bookingRepository,
		vehicleRepository,
		userRepository,
		stripeClient,
		emailClient,
		txMgr,
		log,
	)
	cancelBookingUseCase := cancelBookingUC.NewUseCase(
		bookingRepository,
		stripeClient,
		log,
	)
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		bookingRepository,
		vehicleRepository,
		log,
	)
	checkAvailabilityUseCase := checkAvailabilityUC.NewUseCase(
		bookingRepository,
		vehicleRepository,
		log,
	)

	// Инициализируем handlers
	listVehicles := listVehiclesHandler.NewHandler(vehiclesSvc, log)
	listBrands := listBrandsHandler.NewHandler(vehiclesSvc, log)
	getVehicle := getVehicleHandler.NewHandler(vehiclesSvc, log)
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	checkAvailability := checkAvailabilityHandler.NewHandler(checkAvailabilityUseCase, log)
	validateCoupon := validateCouponHandler.NewHandler(couponsSvc, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingsSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingsSvc, log)
	confirmPayment := confirmPaymentHandler.NewHandler(confirmPaymentUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(cancelBookingUseCase, log)
	getBookings := getBookingsHandler.NewHandler(bookingsSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingsSvc, log)
	createVehicle := createVehicleHandler.NewHandler(vehiclesSvc, log)
	updateVehicle := updateVehicleHandler.NewHandler(vehiclesSvc, log)
	deleteVehicle := deleteVehicleHandler.NewHandler(vehiclesSvc, log)
	getCoupons := getCouponsHandler.NewHandler(couponsSvc, log)
	createCoupon := createCouponHandler.NewHandler(couponsSvc, log)
	updateCoupon := updateCouponHandler.NewHandler(couponsSvc, log)
	deleteCoupon := deleteCouponHandler.NewHandler(couponsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Health check
	api.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, `{"status":"ok"}`)
	}).Methods(http.MethodGet)

	// Каталог автомобилей
	// /vehicles/brands регистрируется до /vehicles/{vehicleId},
	// иначе "brands" разбирается как ID автомобиля
	api.HandleFunc("/vehicles", listVehicles.Handle).Methods(http.MethodGet)
	api.HandleFunc("/vehicles/brands", listBrands.Handle).Methods(http.MethodGet)
	api.HandleFunc("/vehicles/{vehicleId}", getVehicle.Handle).Methods(http.MethodGet)

	// Доступность автомобиля
	api.HandleFunc("/vehicles/{vehicleId}/availability", getAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/vehicles/{vehicleId}/check-availability", checkAvailability.Handle).Methods(http.MethodGet)

	// Проверка купона
	api.HandleFunc("/coupons/validate", validateCoupon.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(log))

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/confirm-payment", confirmPayment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// История бронирований пользователя
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// ============================================================
	// ADMIN ROUTES (требуют X-User-Role: admin)
	// ============================================================

	admin := api.PathPrefix("").Subrouter()
	admin.Use(middleware.Auth(log), middleware.AdminOnly(log))

	// --- Бронирования ---
	admin.HandleFunc("/bookings", getBookings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

	// --- Каталог ---
	admin.HandleFunc("/vehicles", createVehicle.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/vehicles/{vehicleId}", updateVehicle.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/vehicles/{vehicleId}", deleteVehicle.Handle).Methods(http.MethodDelete)

	// --- Купоны ---
	admin.HandleFunc("/coupons", getCoupons.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/coupons", createCoupon.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/coupons/{couponId}", updateCoupon.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/coupons/{couponId}", deleteCoupon.Handle).Methods(http.MethodDelete)

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

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
