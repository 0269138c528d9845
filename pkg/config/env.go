package config

// EnvPrefix scopes every envconfig lookup.
const EnvPrefix = "ordesite"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv                 = "ORDESITE_APP_ENV"
	EnvPort                   = "ORDESITE_APP_PORT"
	EnvDBDSN                  = "ORDESITE_DB_DSN"
	EnvDBHost                 = "ORDESITE_DB_HOST"
	EnvDBUser                 = "ORDESITE_DB_USER"
	EnvDBName                 = "ORDESITE_DB_NAME"
	EnvRedisURL               = "ORDESITE_REDIS_URL"
	EnvJWTSecret              = "ORDESITE_JWT_SECRET"
	EnvJWTIssuer              = "ORDESITE_JWT_ISSUER"
	EnvJWTExpMins             = "ORDESITE_JWT_EXPIRATION_MINUTES"
	EnvRefreshTokenTTLMinutes = "ORDESITE_REFRESH_TOKEN_TTL_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
