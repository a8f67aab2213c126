package config

// EnvPrefix namespaces every environment variable read by Load.
const EnvPrefix = "eletrodesk"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvDBDSN  = "ELETRODESK_DB_DSN"
	EnvDBHost = "ELETRODESK_DB_HOST"
	EnvDBUser = "ELETRODESK_DB_USER"
	EnvDBName = "ELETRODESK_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
