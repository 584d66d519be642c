package config

// EnvPrefix is passed to envconfig; individual fields carry fully
// prefixed names so this stays empty.
const EnvPrefix = ""

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvDBDSN  = "HARITHA_DB_DSN"
	EnvDBHost = "HARITHA_DB_HOST"
	EnvDBUser = "HARITHA_DB_USER"
	EnvDBName = "HARITHA_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
