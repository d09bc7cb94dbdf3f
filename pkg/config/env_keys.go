package config

// EnvPrefix namespaces every environment variable the service reads.
const EnvPrefix = "vahanbazar"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "production"
)

const (
	EnvAppEnv   = "VAHANBAZAR_APP_ENV"
	EnvPort     = "VAHANBAZAR_APP_PORT"
	EnvLogLevel = "VAHANBAZAR_LOG_LEVEL"

	EnvDBDSN  = "VAHANBAZAR_DB_DSN"
	EnvDBHost = "VAHANBAZAR_DB_HOST"
	EnvDBUser = "VAHANBAZAR_DB_USER"
	EnvDBName = "VAHANBAZAR_DB_NAME"

	EnvRedisURL = "VAHANBAZAR_REDIS_URL"

	EnvGCPProjectID = "VAHANBAZAR_GCP_PROJECT_ID"

	EnvPubSubOrdersTopic = "VAHANBAZAR_PUBSUB_ORDERS_TOPIC"
	EnvPubSubOrdersSub   = "VAHANBAZAR_PUBSUB_ORDERS_SUBSCRIPTION"

	EnvSettlementAllowOversell = "VAHANBAZAR_SETTLEMENT_ALLOW_OVERSELL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
