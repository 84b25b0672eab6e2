package main

import (
	"context"
	"net/http"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ppc-optimizer-api/infrastructure/database/postgres"
	"github.com/vfg2006/ppc-optimizer-api/infrastructure/integrator/amazon/adsclient"
	"github.com/vfg2006/ppc-optimizer-api/infrastructure/repository"
	"github.com/vfg2006/ppc-optimizer-api/internal/api"
	"github.com/vfg2006/ppc-optimizer-api/internal/config"
	"github.com/vfg2006/ppc-optimizer-api/internal/scheduler"
	"github.com/vfg2006/ppc-optimizer-api/internal/usecases/auditing"
	"github.com/vfg2006/ppc-optimizer-api/internal/usecases/authenticating"
	"github.com/vfg2006/ppc-optimizer-api/internal/usecases/mutating"
	"github.com/vfg2006/ppc-optimizer-api/internal/usecases/orchestrating"
	"github.com/vfg2006/ppc-optimizer-api/internal/usecases/reporting"
	"github.com/vfg2006/ppc-optimizer-api/internal/usecases/verifying"
	"github.com/vfg2006/ppc-optimizer-api/pkg/log"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// O warehouse é opcional: sem banco o sistema roda com auditoria apenas
	// em CSV e sem histórico de runs.
	var auditRepo auditing.Repository
	var summaryRepo repository.RunSummaryRepository
	if cfg.Database.Enabled {
		pgConn := pgconn(ctx, cfg.Database)
		defer pgConn.Close()

		auditRepo = repository.NewAuditRecordRepository(pgConn)
		summaryRepo = repository.NewRunSummaryRepository(pgConn)
	} else {
		logrus.Info("Warehouse desabilitado, auditoria persistida apenas em CSV")
	}

	authenticator := authenticating.NewService(cfg)

	httpClient := &http.Client{Timeout: 30 * time.Second}

	limiter := adsclient.NewRateLimiter(
		cfg.RateLimit.MaxRequestsPerSecond,
		cfg.RateLimit.BurstAllowance,
		time.Duration(cfg.RateLimit.MaxWaitSeconds)*time.Second,
	)
	session := adsclient.NewAuthSession(cfg, httpClient)
	gateway := adsclient.NewGateway(cfg, limiter, session, httpClient)
	adsClient := adsclient.NewClient(cfg, gateway)

	pipeline := reporting.NewPipeline(adsClient, reporting.DefaultPipelineConfig(cfg))
	mutator := mutating.NewBatchMutator(adsClient, cfg.Optimizer.BatchSize, log.L)
	verifier := verifying.NewVerifier(cfg, adsClient, log.L)

	orchestrator := orchestrating.NewService(
		cfg,
		adsClient,
		pipeline,
		mutator,
		verifier,
		auditRepo,
		summaryRepo,
		log.L,
	)

	syncService := scheduler.NewOptimizationSyncService(orchestrator, cfg)
	if err := syncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de otimização")
	} else {
		logrus.Info("Agendador de otimização iniciado com sucesso")
	}

	server, err := api.New(cfg, authenticator, syncService, verifier, summaryRepo)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
