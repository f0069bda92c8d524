package config

// this holds the resolved configuration values from CLI
//
//nolint:lll // readablity
var (
	DB                 string // connection string for the database
	WaitForServices    string // duration to wait for other services to be ready
	LogLevel           string // sets the log level (zap log level values)
	SQLLogLevel        string // sets the log level for sql subsystem
	LogFormat          string // text vs json
	LogConfig          string // path to log config file
	MigrationSourceURL string // location of migration files
	ServerAddr         string // listen addr for the HTTP API server
	JWTSecret          string // secret used to sign session tokens
	TokenLifetime      string // validity duration of issued tokens
	OpenF1URL          string // base URL of the OpenF1 API
	UpstreamTimeout    string // timeout for upstream telemetry requests
	ScrapeInterval     string // if set, scrape jobs rerun on this interval
)
