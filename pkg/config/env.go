package config

const EnvPrefix = "OOH"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv   = "OOH_APP_ENV"
	EnvPort     = "OOH_APP_PORT"
	EnvLogLevel = "OOH_LOG_LEVEL"

	EnvDBDSN  = "OOH_DB_DSN"
	EnvDBHost = "OOH_DB_HOST"
	EnvDBUser = "OOH_DB_USER"
	EnvDBName = "OOH_DB_NAME"

	EnvRedisURL = "OOH_REDIS_URL"

	EnvJWTSecret = "OOH_JWT_SECRET"
	EnvJWTIssuer = "OOH_JWT_ISSUER"

	EnvUseSQLite = "OOH_USE_SQLITE"

	EnvPricingAgencyRate       = "OOH_PRICING_AGENCY_RATE"
	EnvPricingIntermediaryRate = "OOH_PRICING_INTERMEDIARY_RATE"
	EnvPricingIVARate          = "OOH_PRICING_IVA_RATE"
	EnvPricingDaysPerMonth     = "OOH_PRICING_DAYS_PER_MONTH"

	EnvGCPProjectID     = "OOH_GCP_PROJECT_ID"
	EnvPubSubAuditTopic = "OOH_PUBSUB_AUDIT_TOPIC"
	EnvCORSOrigins      = "OOH_CORS_ALLOWED_ORIGINS"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
