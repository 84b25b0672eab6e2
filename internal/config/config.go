package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App              App              `mapstructure:",squash"`
	Server           Server           `mapstructure:",squash"`
	Database         Database         `mapstructure:",squash"`
	Amazon           Amazon           `mapstructure:",squash"`
	RateLimit        RateLimit        `mapstructure:",squash"`
	Reports          Reports          `mapstructure:",squash"`
	Optimizer        Optimizer        `mapstructure:",squash"`
	Dayparting       Dayparting       `mapstructure:",squash"`
	OptimizationSync OptimizationSync `mapstructure:",squash"`
	Auth             Auth             `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
	Enabled  bool   `mapstructure:"database_enabled"`
}

// Amazon agrupa as credenciais e endpoints da Amazon Advertising API. O
// refresh token é de longa duração e vem do ambiente; o access token vive
// apenas em memória, gerenciado pela AuthSession.
type Amazon struct {
	ClientID     string `mapstructure:"amazon_client_id"`
	ClientSecret string `mapstructure:"amazon_client_secret"`
	RefreshToken string `mapstructure:"amazon_refresh_token"`
	TokenURL     string `mapstructure:"amazon_token_url"`
	Region       string `mapstructure:"amazon_region"`
	BaseURL      string `mapstructure:"-"`
	ProfileID    string `mapstructure:"amazon_profile_id"`
}

type RateLimit struct {
	MaxRequestsPerSecond float64 `mapstructure:"max_requests_per_second"`
	BurstAllowance       int     `mapstructure:"burst_allowance"`
	MaxWaitSeconds       int     `mapstructure:"rate_limit_max_wait_seconds"`
}

type Reports struct {
	MaxWorkers         int `mapstructure:"report_max_workers"`
	PollCeilingSeconds int `mapstructure:"report_poll_ceiling_seconds"`
	DownloadTimeoutSec int `mapstructure:"report_download_timeout_seconds"`
}

type Optimizer struct {
	TargetAcos                    float64 `mapstructure:"target_acos"`
	Tolerance                     float64 `mapstructure:"acos_tolerance"`
	MinBid                        float64 `mapstructure:"min_bid"`
	MaxBid                        float64 `mapstructure:"max_bid"`
	MaxBidStep                    float64 `mapstructure:"max_bid_step"`
	StepFactor                    float64 `mapstructure:"bid_step_factor"`
	MinClicks                     int     `mapstructure:"min_clicks"`
	MinSpendForDecision           float64 `mapstructure:"min_spend_for_decision"`
	PauseThreshold                float64 `mapstructure:"pause_threshold"`
	ReactivateThreshold           float64 `mapstructure:"reactivate_threshold"`
	MinConsecutivePeriods         int     `mapstructure:"min_consecutive_periods"`
	MinClicksForDiscovery         int     `mapstructure:"min_clicks_for_discovery"`
	MinConversionsForDiscovery    int     `mapstructure:"min_conversions_for_discovery"`
	DiscoveryInitialBid           float64 `mapstructure:"discovery_initial_bid"`
	MinClicksForNegative          int     `mapstructure:"min_clicks_for_negative"`
	BatchSize                     int     `mapstructure:"batch_size"`
	LookbackDays                  int     `mapstructure:"lookback_days"`
	RunDeadlineSeconds            int     `mapstructure:"run_deadline_seconds"`
	FailOnCriticalErrors          bool    `mapstructure:"fail_on_critical_errors"`
	VerifierSampleSize            int     `mapstructure:"verifier_sample_size"`
	VerifierTimeoutSeconds        int     `mapstructure:"verifier_timeout_seconds"`
	AuditOutputDir                string  `mapstructure:"audit_output_dir"`
}

// Dayparting define as janelas de multiplicador de lance por dia/hora. O
// fuso horário é explícito para evitar comportamento dependente da região
// de deploy.
type Dayparting struct {
	Enabled       bool    `mapstructure:"dayparting_enabled"`
	Timezone      string  `mapstructure:"dayparting_timezone"`
	MinMultiplier float64 `mapstructure:"dayparting_min_multiplier"`
	MaxMultiplier float64 `mapstructure:"dayparting_max_multiplier"`
	// Windows é carregado de DAYPARTING_WINDOWS no formato
	// "DIA:HORA_INICIO-HORA_FIM:MULT" separado por vírgula,
	// ex.: "MONDAY:0-6:0.6,SATURDAY:18-23:1.3".
	Windows []string `mapstructure:"dayparting_windows"`
}

type OptimizationSync struct {
	CronSchedule string `mapstructure:"optimization_sync_cron"`
	Enabled      bool   `mapstructure:"optimization_sync_enabled"`
	DryRun       bool   `mapstructure:"optimization_sync_dry_run"`
}

type Auth struct {
	Secret               string `mapstructure:"auth_secret"`
	OperatorUsername     string `mapstructure:"operator_username"`
	OperatorPasswordHash string `mapstructure:"operator_password_hash"`
	TokenTTLMinutes      int    `mapstructure:"auth_token_ttl_minutes"`
}

// endpoints da Amazon Advertising API por região
var amazonEndpoints = map[string]string{
	"NA": "https://advertising-api.amazon.com",
	"EU": "https://advertising-api-eu.amazon.com",
	"FE": "https://advertising-api-fe.amazon.com",
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("LOG_LEVEL", "debug")

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/ppc")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")
	viper.SetDefault("DATABASE_ENABLED", false)

	viper.SetDefault("AMAZON_TOKEN_URL", "https://api.amazon.com/auth/o2/token")
	viper.SetDefault("AMAZON_REGION", "NA")

	viper.SetDefault("MAX_REQUESTS_PER_SECOND", 10) // limite documentado da API
	viper.SetDefault("BURST_ALLOWANCE", 3)
	viper.SetDefault("RATE_LIMIT_MAX_WAIT_SECONDS", 30)

	viper.SetDefault("REPORT_MAX_WORKERS", 3)
	viper.SetDefault("REPORT_POLL_CEILING_SECONDS", 120)
	viper.SetDefault("REPORT_DOWNLOAD_TIMEOUT_SECONDS", 60)

	viper.SetDefault("TARGET_ACOS", 0.30)
	viper.SetDefault("ACOS_TOLERANCE", 0.10)
	viper.SetDefault("MIN_BID", 0.25)
	viper.SetDefault("MAX_BID", 5.00)
	viper.SetDefault("MAX_BID_STEP", 0.30)
	viper.SetDefault("BID_STEP_FACTOR", 0.50)
	viper.SetDefault("MIN_CLICKS", 10)
	viper.SetDefault("MIN_SPEND_FOR_DECISION", 20.0)
	viper.SetDefault("PAUSE_THRESHOLD", 0.60)
	viper.SetDefault("REACTIVATE_THRESHOLD", 0.35)
	viper.SetDefault("MIN_CONSECUTIVE_PERIODS", 3)
	viper.SetDefault("MIN_CLICKS_FOR_DISCOVERY", 5)
	viper.SetDefault("MIN_CONVERSIONS_FOR_DISCOVERY", 1)
	viper.SetDefault("DISCOVERY_INITIAL_BID", 0.75)
	viper.SetDefault("MIN_CLICKS_FOR_NEGATIVE", 10)
	viper.SetDefault("BATCH_SIZE", 100)
	viper.SetDefault("LOOKBACK_DAYS", 14)
	viper.SetDefault("RUN_DEADLINE_SECONDS", 840) // abaixo do timeout do gatilho (15min)
	viper.SetDefault("FAIL_ON_CRITICAL_ERRORS", true)
	viper.SetDefault("VERIFIER_SAMPLE_SIZE", 5)
	viper.SetDefault("VERIFIER_TIMEOUT_SECONDS", 30)
	viper.SetDefault("AUDIT_OUTPUT_DIR", "./logs")

	viper.SetDefault("DAYPARTING_ENABLED", false)
	viper.SetDefault("DAYPARTING_TIMEZONE", "America/Los_Angeles")
	viper.SetDefault("DAYPARTING_MIN_MULTIPLIER", 0.4)
	viper.SetDefault("DAYPARTING_MAX_MULTIPLIER", 1.8)

	viper.SetDefault("OPTIMIZATION_SYNC_CRON", "0 3 * * *") // todos os dias às 3h
	viper.SetDefault("OPTIMIZATION_SYNC_ENABLED", false)
	viper.SetDefault("OPTIMIZATION_SYNC_DRY_RUN", true)

	viper.SetDefault("AUTH_TOKEN_TTL_MINUTES", 480)
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	baseURL, ok := amazonEndpoints[config.Amazon.Region]
	if !ok {
		logrus.Warnf("Região '%s' desconhecida, usando NA", config.Amazon.Region)
		baseURL = amazonEndpoints["NA"]
	}
	config.Amazon.BaseURL = baseURL

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../.env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
