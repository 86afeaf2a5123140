package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/safinirasol/WellMind-IBM/internal/advisory"
	advisoryhandler "github.com/safinirasol/WellMind-IBM/internal/advisory/handler"
	"github.com/safinirasol/WellMind-IBM/internal/aiscoring"
	"github.com/safinirasol/WellMind-IBM/internal/audit"
	authhandler "github.com/safinirasol/WellMind-IBM/internal/auth/handler"
	burnoutrepo "github.com/safinirasol/WellMind-IBM/internal/burnout/repository"
	"github.com/safinirasol/WellMind-IBM/internal/chat"
	chathandler "github.com/safinirasol/WellMind-IBM/internal/chat/handler"
	"github.com/safinirasol/WellMind-IBM/internal/config"
	"github.com/safinirasol/WellMind-IBM/internal/dashboard"
	dashboardhandler "github.com/safinirasol/WellMind-IBM/internal/dashboard/handler"
	"github.com/safinirasol/WellMind-IBM/internal/db"
	"github.com/safinirasol/WellMind-IBM/internal/db/migrate"
	employeehandler "github.com/safinirasol/WellMind-IBM/internal/employee/handler"
	employeerepo "github.com/safinirasol/WellMind-IBM/internal/employee/repository"
	employeeservice "github.com/safinirasol/WellMind-IBM/internal/employee/service"
	healthhandler "github.com/safinirasol/WellMind-IBM/internal/health/handler"
	"github.com/safinirasol/WellMind-IBM/internal/ledger/hedera"
	"github.com/safinirasol/WellMind-IBM/internal/logging"
	"github.com/safinirasol/WellMind-IBM/internal/metrics"
	"github.com/safinirasol/WellMind-IBM/internal/notify"
	notifyhandler "github.com/safinirasol/WellMind-IBM/internal/notify/handler"
	"github.com/safinirasol/WellMind-IBM/internal/report"
	reporthandler "github.com/safinirasol/WellMind-IBM/internal/report/handler"
	"github.com/safinirasol/WellMind-IBM/internal/security"
	"github.com/safinirasol/WellMind-IBM/internal/server"
	"github.com/safinirasol/WellMind-IBM/internal/server/middleware"
	surveyhandler "github.com/safinirasol/WellMind-IBM/internal/survey/handler"
	surveyservice "github.com/safinirasol/WellMind-IBM/internal/survey/service"
	"github.com/safinirasol/WellMind-IBM/internal/telemetry"
	otelsetup "github.com/safinirasol/WellMind-IBM/internal/telemetry/otel"
	"github.com/safinirasol/WellMind-IBM/internal/telemetry/producer"
	telemetryrepo "github.com/safinirasol/WellMind-IBM/internal/telemetry/repository"
	"github.com/safinirasol/WellMind-IBM/internal/workflow"
)

const serviceName = "wellmind-api"

func main() {
	cfg, err := config.Load()
	if err != nil {
		_, _ = os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}
	log, err := logging.New(cfg.LogLevel, cfg.Env)
	if err != nil {
		_, _ = os.Stderr.WriteString("logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Fatal("server exited", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx := context.Background()
	if cfg.DatabaseURL == "" {
		return errors.New("DATABASE_URL is not set; create a .env from .env.example or set DATABASE_URL")
	}

	providers, err := otelsetup.NewProviders(ctx, cfg.OTLPEndpoint, serviceName, cfg.Env, cfg.OTLPInsecure, log)
	if err != nil {
		return err
	}
	providers.SetGlobal()

	if cfg.AutoMigrate {
		if err := migrate.Up(cfg.DatabaseURL, log); err != nil {
			return err
		}
	}
	conn, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer conn.Close()

	m := metrics.New()
	timeout := cfg.ExternalTimeoutDuration()

	var ledger audit.Ledger
	if cfg.LedgerEnabled() {
		client, err := hedera.NewClient(cfg.LedgerNetwork, cfg.HederaAccountID, cfg.HederaPrivateKey, timeout)
		if err != nil {
			log.Warn("ledger client unavailable, audit references will be simulated", zap.Error(err))
		} else {
			defer client.Close()
			ledger = client
		}
	}
	recorder := audit.NewRecorder(ledger, cfg.HederaTopicID, timeout, log)
	recorder.SetObserver(m)

	rules, err := loadRules(ctx, cfg.WorkflowPolicyFile)
	if err != nil {
		return err
	}
	var wfClient *workflow.Client
	if cfg.WorkflowEnabled() {
		wfClient = workflow.NewClient(cfg.WorkflowKey, cfg.WorkflowURL, timeout)
	}
	trigger := workflow.NewTrigger(wfClient, rules, cfg.WorkflowRateLimit, timeout, log)
	trigger.SetObserver(m)

	var aiClient *aiscoring.Client
	if cfg.AIScoringEnabled() {
		aiClient = aiscoring.NewClient(cfg.AIScoringKey, cfg.AIScoringURL, cfg.AIScoringModel, timeout)
	}
	analyzer := aiscoring.NewAnalyzer(aiClient, log)
	analyzer.SetObserver(m)

	var mailer advisory.Mailer
	if cfg.MailEnabled() {
		mailer = advisory.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.MailFrom)
	}
	advisories := advisory.NewSender(mailer, log)
	advisories.SetObserver(m)

	var assistant chathandler.Assistant
	if cfg.ChatEnabled() {
		assistant = chat.NewAssistant(cfg.ChatAPIKey, cfg.ChatBaseURL, cfg.ChatModel, timeout, log)
	}

	emitters := []telemetry.EventEmitter{
		otelsetup.NewEventEmitter(providers.LoggerProvider),
		telemetryrepo.NewPostgresRepository(conn),
	}
	kafkaProducer, err := producer.NewKafkaProducer(cfg.KafkaBrokersList(), cfg.EventsTopic)
	if err != nil {
		return err
	}
	if kafkaProducer != nil {
		defer kafkaProducer.Close()
		emitters = append(emitters, kafkaProducer)
	}

	employees := employeerepo.NewPostgresRepository(conn)
	results := burnoutrepo.NewPostgresRepository(conn)

	surveys := surveyservice.NewSurveyService(surveyservice.NewPostgresStore(conn), recorder, trigger, analyzer, log)
	surveys.SetMetrics(m)
	surveys.SetEmitter(telemetry.Multi(emitters...))

	dash := dashboard.NewService(employees, results)
	roster := employeeservice.NewRoster(employees, results)
	exporter := report.NewExporter(roster, dash)

	sweeper := notify.NewSweeper(employees, results, trigger, notify.NewMemoryCooldownStore(), cfg.NotifyCooldownDuration(), log)
	sweeper.SetObserver(m)
	scheduler, err := notify.Schedule(cfg.NotifySchedule, sweeper, log)
	if err != nil {
		return err
	}
	if scheduler != nil {
		scheduler.Start()
		defer func() { <-scheduler.Stop().Done() }()
	}

	deps := server.Deps{
		Log:         log,
		ServiceName: serviceName,
		CORSOrigins: cfg.CORSOriginsList(),
		RateLimiter: middleware.NewIPRateLimiter(float64(cfg.RateLimitRPS), cfg.RateLimitBurst),
		Metrics:     m,
		Health: healthhandler.NewServer(map[string]healthhandler.Checker{
			"database": healthhandler.CheckerFunc(conn.PingContext),
			"rules":    rules,
		}),
		Survey:    surveyhandler.NewHandler(surveys, log),
		Dashboard: dashboardhandler.NewHandler(dash, log),
		Employees: employeehandler.NewHandler(roster, log),
		Reports:   reporthandler.NewHandler(exporter, log),
		Notify:    notifyhandler.NewHandler(sweeper, cfg.NotifySchedule, log),
		Advisory:  advisoryhandler.NewHandler(advisories, log),
		Chat:      chathandler.NewHandler(assistant, log),
	}
	if cfg.HRAuthEnabled() {
		tokens, err := security.NewTokenProviderFromPEM(cfg.JWTPrivateKey, cfg.JWTPublicKey, cfg.JWTIssuer, cfg.JWTAudience, cfg.AccessTTL())
		if err != nil {
			return err
		}
		hr, err := security.NewHRAuthenticator(cfg.HRPassword, security.NewHasher(cfg.BcryptCost), tokens)
		if err != nil {
			return err
		}
		deps.HRTokens = tokens
		deps.Auth = authhandler.NewHandler(hr, log)
	} else {
		log.Warn("HR_PASSWORD not set, HR routes are unauthenticated")
		deps.Auth = authhandler.NewHandler(nil, log)
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           server.NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server listening",
			zap.String("addr", cfg.HTTPAddr),
			zap.Bool("ledger", ledger != nil),
			zap.Bool("workflow", wfClient != nil),
			zap.Bool("ai_scoring", aiClient != nil),
			zap.Bool("mail", mailer != nil),
			zap.Bool("chat", assistant != nil),
			zap.Bool("hr_auth", deps.HRTokens != nil),
			zap.Bool("events_kafka", kafkaProducer != nil))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case <-quit:
	}

	log.Info("shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("HTTP shutdown", zap.Error(err))
	}
	// In-flight EmitAsync calls finish within their own timeout.
	time.Sleep(telemetry.ShutdownDrainDuration)
	if err := providers.Shutdown(shutdownCtx); err != nil {
		log.Warn("telemetry shutdown", zap.Error(err))
	}
	log.Info("HTTP server stopped")
	return nil
}

func loadRules(ctx context.Context, path string) (*workflow.OPARules, error) {
	if path != "" {
		return workflow.LoadOPARules(ctx, path)
	}
	return workflow.NewOPARules(ctx, workflow.DefaultPolicy)
}
