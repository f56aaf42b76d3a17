package config

const (
	// EnvPrefix namespaces every environment variable the service reads.
	EnvPrefix = "STAFFSHIELD"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "STAFFSHIELD_DB_DSN"
	EnvDBHost = "STAFFSHIELD_DB_HOST"
	EnvDBUser = "STAFFSHIELD_DB_USER"
	EnvDBName = "STAFFSHIELD_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
