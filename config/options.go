package config

const (
	defaultLogFile           = "goodbooks.log"
	defaultLogLevel          = "info"
	defaultLogFileMaxSize    = 20
	defaultLogFileMaxBackups = 3
	defaultLogFileMaxAge     = 28
	defaultLogCompress       = false
	defaultPort              = 8000
	defaultHost              = "0.0.0.0"
	defaultData              = "/var/opt/goodbooks"
	defaultAPIKey            = "dev-key-123"
	defaultPageSize          = 20
	defaultMaxPageSize       = 100
	defaultMetricsCollector  = false
)

// Why use mapstructure instead of json: viper unmarshals config files through
// mapstructure, so json field tags are not recognized.
// see: https://pkg.go.dev/github.com/mitchellh/mapstructure#hdr-Field_Tags
type Options struct {
	// LogFile is the file to write logs to
	LogFile string `mapstructure:"log_file"`
	// LogLevel is the level of logging to show
	LogLevel string `mapstructure:"log_level"`
	// LogFileMaxSize is the maximum size of the log file before it is rotated
	LogFileMaxSize int `mapstructure:"log_file_max_size"`
	// LogFileMaxBackups is the maximum number of log files to keep
	LogFileMaxBackups int `mapstructure:"log_file_max_backups"`
	// LogFileMaxAge is the maximum number of days to keep a log file
	LogFileMaxAge int `mapstructure:"log_file_max_age"`
	// LogCompress is whether or not to compress the log files
	LogCompress bool `mapstructure:"log_compress"`
	// DSN is the path of the sqlite database holding the catalog
	DSN string `mapstructure:"dsn_uri"`
	// Port is the port to listen on
	Port int `mapstructure:"port"`
	// Host is the host to listen on
	Host string `mapstructure:"host"`
	// Data is the directory to store data
	Data string `mapstructure:"data"`
	// APIKey is the static key expected in X-API-Key on the write path
	APIKey string `mapstructure:"api_key"`
	// DefaultPageSize is the page size used when a listing request omits one
	DefaultPageSize int `mapstructure:"default_page_size"`
	// MaxPageSize is the upper bound accepted for page_size
	MaxPageSize int `mapstructure:"max_page_size"`
	// MetricsCollector enables the Prometheus exposition endpoint
	MetricsCollector bool `mapstructure:"metrics_collector"`
}

func GetDefaultOptions() *Options {
	Opts = &Options{
		LogFile:           defaultLogFile,
		LogLevel:          defaultLogLevel,
		LogFileMaxSize:    defaultLogFileMaxSize,
		LogFileMaxBackups: defaultLogFileMaxBackups,
		LogFileMaxAge:     defaultLogFileMaxAge,
		LogCompress:       defaultLogCompress,
		Port:              defaultPort,
		Host:              defaultHost,
		Data:              defaultData,
		APIKey:            defaultAPIKey,
		DefaultPageSize:   defaultPageSize,
		MaxPageSize:       defaultMaxPageSize,
		MetricsCollector:  defaultMetricsCollector,
	}
	return Opts
}
