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

	advanceCheckoutHandler "github.com/m04kA/PCS-CheckoutService/internal/api/handlers/advance_checkout"
	createCheckoutSessionHandler "github.com/m04kA/PCS-CheckoutService/internal/api/handlers/create_checkout_session"
	createPaymentIntentHandler "github.com/m04kA/PCS-CheckoutService/internal/api/handlers/create_payment_intent"
	getCheckoutSessionHandler "github.com/m04kA/PCS-CheckoutService/internal/api/handlers/get_checkout_session"
	reportPaymentResultHandler "github.com/m04kA/PCS-CheckoutService/internal/api/handlers/report_payment_result"
	sendContactEmailHandler "github.com/m04kA/PCS-CheckoutService/internal/api/handlers/send_contact_email"
	setAddonHandler "github.com/m04kA/PCS-CheckoutService/internal/api/handlers/set_addon"
	stripeWebhookHandler "github.com/m04kA/PCS-CheckoutService/internal/api/handlers/stripe_webhook"
	updateCustomerDetailsHandler "github.com/m04kA/PCS-CheckoutService/internal/api/handlers/update_customer_details"
	"github.com/m04kA/PCS-CheckoutService/internal/api/middleware"
	"github.com/m04kA/PCS-CheckoutService/internal/config"
	webhookEventRepo "github.com/m04kA/PCS-CheckoutService/internal/infra/storage/webhookevent"
	"github.com/m04kA/PCS-CheckoutService/internal/integrations/sendgridclient"
	"github.com/m04kA/PCS-CheckoutService/internal/integrations/stripeclient"
	checkoutService "github.com/m04kA/PCS-CheckoutService/internal/service/checkout"
	notificationsService "github.com/m04kA/PCS-CheckoutService/internal/service/notifications"
	createPaymentIntentUC "github.com/m04kA/PCS-CheckoutService/internal/usecase/create_payment_intent"
	processWebhookEventUC "github.com/m04kA/PCS-CheckoutService/internal/usecase/process_webhook_event"
	"github.com/m04kA/PCS-CheckoutService/pkg/logger"
	"github.com/m04kA/PCS-CheckoutService/pkg/metrics"
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

	log.Info("Starting PCS-CheckoutService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Интерфейсы метрик для слоев ниже заполняются только при включенных
	// метриках, иначе typed nil в интерфейсе обошел бы nil-проверки
	var (
		intentMetrics  createPaymentIntentUC.Metrics
		webhookMetrics processWebhookEventUC.Metrics
		emailMetrics   notificationsService.Metrics
	)
	if cfg.Metrics.Enabled {
		intentMetrics = metricsCollector
		webhookMetrics = metricsCollector
		emailMetrics = metricsCollector
	}

	// Подключаемся к базе данных (журнал webhook-событий)
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
	stripeClient := stripeclient.NewClient(cfg.Stripe.SecretKey, cfg.Stripe.WebhookSecret, log)
	sendgridClient := sendgridclient.NewClient(
		cfg.SendGrid.APIKey,
		cfg.SendGrid.SenderName,
		cfg.SendGrid.SenderAddress,
		log,
	)
	log.Info("Integration clients initialized (Stripe, SendGrid sender=%s)", cfg.SendGrid.SenderAddress)

	// Инициализируем репозитории
	eventJournal := webhookEventRepo.NewRepository(db)

	schemaCtx, cancelSchema := context.WithTimeout(context.Background(), 10*time.Second)
	if err := eventJournal.EnsureSchema(schemaCtx); err != nil {
		cancelSchema()
		log.Fatal("Failed to ensure webhook event journal schema: %v", err)
	}
	cancelSchema()

	// Инициализируем сервисы
	staleWindow := time.Duration(cfg.Checkout.StaleIntentWindowMinutes) * time.Minute

	notificationSvc := notificationsService.NewService(
		sendgridClient,
		cfg.SendGrid.BusinessAddress,
		emailMetrics,
		log,
	)

	// Инициализируем use cases
	createPaymentIntentUseCase := createPaymentIntentUC.NewUseCase(
		stripeClient,
		staleWindow,
		intentMetrics,
		log,
	)
	processWebhookEventUseCase := processWebhookEventUC.NewUseCase(
		stripeClient,
		notificationSvc,
		eventJournal,
		staleWindow,
		webhookMetrics,
		log,
	)

	checkoutSvc := checkoutService.NewService(
		createPaymentIntentUseCase,
		checkoutService.RealTimeProvider{},
		log,
	)

	// Инициализируем handlers
	createPaymentIntent := createPaymentIntentHandler.NewHandler(createPaymentIntentUseCase, log)
	sendContactEmail := sendContactEmailHandler.NewHandler(notificationSvc, log)
	stripeWebhook := stripeWebhookHandler.NewHandler(stripeClient, processWebhookEventUseCase, log)
	createCheckoutSession := createCheckoutSessionHandler.NewHandler(checkoutSvc, log)
	getCheckoutSession := getCheckoutSessionHandler.NewHandler(checkoutSvc, log)
	updateCustomerDetails := updateCustomerDetailsHandler.NewHandler(checkoutSvc, log)
	setAddon := setAddonHandler.NewHandler(checkoutSvc, log)
	advanceCheckout := advanceCheckoutHandler.NewHandler(checkoutSvc, log)
	reportPaymentResult := reportPaymentResultHandler.NewHandler(checkoutSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix; платёжная форма живет на другом origin, поэтому CORS открыт
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.CORS())

	// Платёжные интенты (обычный и express потоки)
	api.HandleFunc("/payment-intents", createPaymentIntent.Handle).
		Methods(http.MethodPost, http.MethodOptions)

	// Контактная форма
	api.HandleFunc("/contact", sendContactEmail.Handle).
		Methods(http.MethodPost, http.MethodOptions)

	// Webhook платёжного провайдера
	api.HandleFunc("/webhooks/stripe", stripeWebhook.Handle).Methods(http.MethodPost)

	// Сессии оформления заказа
	api.HandleFunc("/checkout/sessions", createCheckoutSession.Handle).
		Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/checkout/sessions/{sessionId}", getCheckoutSession.Handle).
		Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/checkout/sessions/{sessionId}/details", updateCustomerDetails.Handle).
		Methods(http.MethodPatch, http.MethodOptions)
	api.HandleFunc("/checkout/sessions/{sessionId}/add-on", setAddon.Handle).
		Methods(http.MethodPut, http.MethodOptions)
	api.HandleFunc("/checkout/sessions/{sessionId}/advance", advanceCheckout.HandleAdvance).
		Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/checkout/sessions/{sessionId}/back", advanceCheckout.HandleBack).
		Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/checkout/sessions/{sessionId}/payment-result", reportPaymentResult.Handle).
		Methods(http.MethodPost, http.MethodOptions)

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

	log.Info("Server stopped gracefully")
}
