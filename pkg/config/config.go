package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	FeatureFlags FeatureFlagsConfig
	Pricing      PricingConfig
	Mockups      MockupsConfig
	GoogleMaps   GoogleMapsConfig
	PDF          PDFConfig
	GCP          GCPConfig
	PubSub       PubSubConfig
	CORS         CORSConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(cfg.FeatureFlags.UseSQLite); err != nil {
		return nil, err
	}
	if err := cfg.Pricing.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"OOH_APP_ENV" required:"true"`
	Port         string `envconfig:"OOH_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"OOH_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"OOH_LOG_WARN_STACK" default:"false"`
	LogFormat    string `envconfig:"OOH_LOG_FORMAT" default:"json"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"OOH_DB_DSN"`
	Driver string `envconfig:"OOH_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"OOH_DB_HOST"`
	LegacyPort     int    `envconfig:"OOH_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"OOH_DB_USER"`
	LegacyPassword string `envconfig:"OOH_DB_PASSWORD"`
	LegacyName     string `envconfig:"OOH_DB_NAME"`
	LegacySSLMode  string `envconfig:"OOH_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"OOH_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"OOH_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"OOH_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"OOH_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// RedisConfig is optional; an empty URL disables idempotency replay.
type RedisConfig struct {
	URL          string        `envconfig:"OOH_REDIS_URL"`
	Address      string        `envconfig:"OOH_REDIS_ADDR"`
	Password     string        `envconfig:"OOH_REDIS_PASSWORD"`
	DB           int           `envconfig:"OOH_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"OOH_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"OOH_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"OOH_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"OOH_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"OOH_REDIS_WRITE_TIMEOUT" default:"5s"`
}

func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != "" || strings.TrimSpace(r.Address) != ""
}

type JWTConfig struct {
	Secret            string   `envconfig:"OOH_JWT_SECRET" required:"true"`
	Issuer            string   `envconfig:"OOH_JWT_ISSUER" default:"ooh-agent"`
	ExpirationMinutes int      `envconfig:"OOH_JWT_EXPIRATION_MINUTES" default:"525600"`
	AllowedClients    []string `envconfig:"OOH_JWT_ALLOWED_CLIENTS"`
}

func (j JWTConfig) TTL() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type FeatureFlagsConfig struct {
	UseSQLite     bool   `envconfig:"OOH_USE_SQLITE" default:"false"`
	SQLitePath    string `envconfig:"OOH_SQLITE_PATH" default:"ooh.db"`
	AutoMigrate   bool   `envconfig:"OOH_AUTO_MIGRATE" default:"false"`
	AuthDisabled  bool   `envconfig:"OOH_AUTH_DISABLED" default:"false"`
	AdminRoutes   bool   `envconfig:"OOH_ADMIN_ROUTES" default:"false"`
	MetricsPublic bool   `envconfig:"OOH_METRICS_PUBLIC" default:"true"`
}

// PricingConfig carries the commercial rates applied to every quote.
type PricingConfig struct {
	AgencyCommissionRate       float64 `envconfig:"OOH_PRICING_AGENCY_RATE" default:"0.20"`
	IntermediaryCommissionRate float64 `envconfig:"OOH_PRICING_INTERMEDIARY_RATE" default:"0.10"`
	IVARate                    float64 `envconfig:"OOH_PRICING_IVA_RATE" default:"0.21"`
	DaysPerMonth               int     `envconfig:"OOH_PRICING_DAYS_PER_MONTH" default:"30"`
	Currency                   string  `envconfig:"OOH_PRICING_CURRENCY" default:"ARS"`
}

func (p PricingConfig) validate() error {
	if p.DaysPerMonth <= 0 {
		return fmt.Errorf("%s must be positive", EnvPricingDaysPerMonth)
	}
	for env, rate := range map[string]float64{
		EnvPricingAgencyRate:       p.AgencyCommissionRate,
		EnvPricingIntermediaryRate: p.IntermediaryCommissionRate,
		EnvPricingIVARate:          p.IVARate,
	} {
		if rate < 0 || rate > 1 {
			return fmt.Errorf("%s must be between 0 and 1", env)
		}
	}
	return nil
}

type MockupsConfig struct {
	PlaceholderBaseURL  string `envconfig:"OOH_MOCKUPS_PLACEHOLDER_URL" default:"https://placehold.co"`
	CloudinaryCloudName string `envconfig:"OOH_MOCKUPS_CLOUDINARY_CLOUD"`
	CloudinaryPublicID  string `envconfig:"OOH_MOCKUPS_CLOUDINARY_PUBLIC_ID"`
	Width               int    `envconfig:"OOH_MOCKUPS_WIDTH" default:"1200"`
	Height              int    `envconfig:"OOH_MOCKUPS_HEIGHT" default:"800"`
	BackgroundColor     string `envconfig:"OOH_MOCKUPS_BG_COLOR" default:"1a365d"`
	TextColor           string `envconfig:"OOH_MOCKUPS_TEXT_COLOR" default:"ffffff"`
}

type GoogleMapsConfig struct {
	APIKey string `envconfig:"OOH_GOOGLE_MAPS_API_KEY"`
}

type PDFConfig struct {
	LogoDataURI       string `envconfig:"OOH_PDF_LOGO_DATA_URI"`
	ContactLine       string `envconfig:"OOH_PDF_CONTACT_LINE" default:"Global Argentina | +54 11 9 38902707 |"`
	DefaultBaseImage  string `envconfig:"OOH_PDF_BASE_IMAGE_URL" default:"https://raw.githubusercontent.com/tlleonart/sales-agent/main/image-example.png"`
	PortfolioImageURL string `envconfig:"OOH_PDF_PORTFOLIO_IMAGE_URL"`
}

type GCPConfig struct {
	ProjectID              string `envconfig:"OOH_GCP_PROJECT_ID"`
	ApplicationCredentials string `envconfig:"OOH_GOOGLE_APPLICATION_CREDENTIALS"`
}

// PubSubConfig enables audit fan-out when AuditTopic and a GCP project are set.
type PubSubConfig struct {
	AuditTopic string `envconfig:"OOH_PUBSUB_AUDIT_TOPIC"`
}

func (c *Config) AuditPublishingEnabled() bool {
	return strings.TrimSpace(c.PubSub.AuditTopic) != "" && strings.TrimSpace(c.GCP.ProjectID) != ""
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"OOH_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000,http://localhost:5678"`
	MaxAgeSeconds  int      `envconfig:"OOH_CORS_MAX_AGE_SECONDS" default:"300"`
}

// AllowsAnyOrigin reports a wildcard origin, which rules out credentials.
func (c CORSConfig) AllowsAnyOrigin() bool {
	for _, origin := range c.AllowedOrigins {
		if strings.TrimSpace(origin) == "*" {
			return true
		}
	}
	return false
}

func (db *DBConfig) ensureDSN(useSQLite bool) error {
	if db.DSN != "" || useSQLite {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
