package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// Default values
	DefaultLogLevel    = "info"
	DefaultMaxFileSize = 100 * 1024 * 1024 // 100MB
	DefaultMaxPages    = 500
	DefaultWorkers     = 4
	DefaultJobTimeout  = 3 * time.Minute
	DefaultLLMModel    = "gpt-4o-mini"
	DefaultLLMTimeout  = 2 * time.Minute
	DefaultOCRDPI      = 300
	DefaultOCRLang     = "eng"

	// Directory permissions
	DefaultDirPerm = 0o750
)

// Config holds all configuration for the extraction tool
type Config struct {
	// Output configuration
	OutputDir string

	// Document limits
	MaxFileSize int64 // Maximum PDF file size in bytes
	MaxPages    int

	// Batch processing
	Workers    int
	JobTimeout time.Duration

	// Language model service (optional; page identification falls
	// back to title and keyword matching without it)
	LLMBaseURL string
	LLMAPIKey  string
	LLMModel   string
	LLMTimeout time.Duration

	// Table structure service (optional; layout-based parsing is
	// used when unset)
	TableServiceURL     string
	TableServiceTimeout time.Duration

	// Document AI OCR (optional)
	DocAIProjectID       string
	DocAILocation        string
	DocAIProcessorID     string
	DocAICredentialsFile string

	// Local OCR via pdftoppm + tesseract (optional)
	LocalOCR     bool
	LocalOCRDPI  int
	LocalOCRLang string

	// Application configuration
	Version        string
	LogLevel       string
	NonInteractive bool
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	currentDir, err := os.Getwd()
	if err != nil {
		currentDir = "."
	}

	return &Config{
		OutputDir:           currentDir,
		MaxFileSize:         DefaultMaxFileSize,
		MaxPages:            DefaultMaxPages,
		Workers:             DefaultWorkers,
		JobTimeout:          DefaultJobTimeout,
		LLMModel:            DefaultLLMModel,
		LLMTimeout:          DefaultLLMTimeout,
		TableServiceTimeout: 5 * time.Minute,
		DocAILocation:       "us",
		LocalOCRDPI:         DefaultOCRDPI,
		LocalOCRLang:        DefaultOCRLang,
		Version:             "1.0.0",
		LogLevel:            DefaultLogLevel,
	}
}

// LoadFromFlags parses command line flags and returns a configuration
// along with the positional PDF paths.
func LoadFromFlags() (*Config, []string, error) {
	cfg := DefaultConfig()

	setupViperEnvironment(cfg)
	defineCommandLineFlags(cfg)
	bindFlagsToViper()
	setupUsageMessage()

	if err := checkVersionFlag(); err != nil {
		return nil, nil, err
	}

	pflag.Parse()

	populateConfigFromViper(cfg)

	if cfg.OutputDir != "" {
		if expandedPath, err := filepath.Abs(cfg.OutputDir); err == nil {
			cfg.OutputDir = expandedPath
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, pflag.Args(), nil
}

// setupViperEnvironment configures viper with environment variables and defaults
func setupViperEnvironment(cfg *Config) {
	viper.SetEnvPrefix("PNLX")
	viper.AutomaticEnv()

	viper.SetDefault("out", cfg.OutputDir)
	viper.SetDefault("loglevel", cfg.LogLevel)
	viper.SetDefault("maxfilesize", cfg.MaxFileSize)
	viper.SetDefault("maxpages", cfg.MaxPages)
	viper.SetDefault("workers", cfg.Workers)
	viper.SetDefault("jobtimeout", cfg.JobTimeout)
	viper.SetDefault("llm_url", cfg.LLMBaseURL)
	viper.SetDefault("llm_key", cfg.LLMAPIKey)
	viper.SetDefault("llm_model", cfg.LLMModel)
	viper.SetDefault("llm_timeout", cfg.LLMTimeout)
	viper.SetDefault("tables_url", cfg.TableServiceURL)
	viper.SetDefault("tables_timeout", cfg.TableServiceTimeout)
	viper.SetDefault("docai_project", cfg.DocAIProjectID)
	viper.SetDefault("docai_location", cfg.DocAILocation)
	viper.SetDefault("docai_processor", cfg.DocAIProcessorID)
	viper.SetDefault("docai_credentials", cfg.DocAICredentialsFile)
	viper.SetDefault("local_ocr", cfg.LocalOCR)
	viper.SetDefault("local_ocr_dpi", cfg.LocalOCRDPI)
	viper.SetDefault("local_ocr_lang", cfg.LocalOCRLang)
	viper.SetDefault("noninteractive", cfg.NonInteractive)
}

// defineCommandLineFlags sets up all command line flags
func defineCommandLineFlags(cfg *Config) {
	pflag.String("out", cfg.OutputDir, "Directory for XLSX output files")
	pflag.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
	pflag.Int64("maxfilesize", cfg.MaxFileSize, "Maximum PDF file size in bytes")
	pflag.Int("maxpages", cfg.MaxPages, "Maximum page count per document")
	pflag.Int("workers", cfg.Workers, "Concurrent extraction workers")
	pflag.Duration("jobtimeout", cfg.JobTimeout, "Per-document processing timeout")
	pflag.String("llm-url", cfg.LLMBaseURL, "Chat completion endpoint base URL")
	pflag.String("llm-model", cfg.LLMModel, "Chat completion model name")
	pflag.Duration("llm-timeout", cfg.LLMTimeout, "Chat completion request timeout")
	pflag.String("tables-url", cfg.TableServiceURL, "Table structure service base URL")
	pflag.Duration("tables-timeout", cfg.TableServiceTimeout, "Table structure request timeout")
	pflag.String("docai-project", cfg.DocAIProjectID, "Document AI project ID")
	pflag.String("docai-location", cfg.DocAILocation, "Document AI location")
	pflag.String("docai-processor", cfg.DocAIProcessorID, "Document AI OCR processor ID")
	pflag.String("docai-credentials", cfg.DocAICredentialsFile, "Document AI credentials file")
	pflag.Bool("local-ocr", cfg.LocalOCR, "Enable local OCR via pdftoppm and tesseract")
	pflag.Int("local-ocr-dpi", cfg.LocalOCRDPI, "Rasterization DPI for local OCR")
	pflag.String("local-ocr-lang", cfg.LocalOCRLang, "Tesseract language for local OCR")
	pflag.Bool("noninteractive", cfg.NonInteractive, "Never prompt; proceed on low-confidence identification")
}

// bindFlagsToViper binds command line flags to viper configuration
func bindFlagsToViper() {
	_ = viper.BindPFlag("out", pflag.Lookup("out"))
	_ = viper.BindPFlag("loglevel", pflag.Lookup("loglevel"))
	_ = viper.BindPFlag("maxfilesize", pflag.Lookup("maxfilesize"))
	_ = viper.BindPFlag("maxpages", pflag.Lookup("maxpages"))
	_ = viper.BindPFlag("workers", pflag.Lookup("workers"))
	_ = viper.BindPFlag("jobtimeout", pflag.Lookup("jobtimeout"))
	_ = viper.BindPFlag("llm_url", pflag.Lookup("llm-url"))
	_ = viper.BindPFlag("llm_model", pflag.Lookup("llm-model"))
	_ = viper.BindPFlag("llm_timeout", pflag.Lookup("llm-timeout"))
	_ = viper.BindPFlag("tables_url", pflag.Lookup("tables-url"))
	_ = viper.BindPFlag("tables_timeout", pflag.Lookup("tables-timeout"))
	_ = viper.BindPFlag("docai_project", pflag.Lookup("docai-project"))
	_ = viper.BindPFlag("docai_location", pflag.Lookup("docai-location"))
	_ = viper.BindPFlag("docai_processor", pflag.Lookup("docai-processor"))
	_ = viper.BindPFlag("docai_credentials", pflag.Lookup("docai-credentials"))
	_ = viper.BindPFlag("local_ocr", pflag.Lookup("local-ocr"))
	_ = viper.BindPFlag("local_ocr_dpi", pflag.Lookup("local-ocr-dpi"))
	_ = viper.BindPFlag("local_ocr_lang", pflag.Lookup("local-ocr-lang"))
	_ = viper.BindPFlag("noninteractive", pflag.Lookup("noninteractive"))
}

// setupUsageMessage configures the custom usage message
func setupUsageMessage() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s: [options] report.pdf [report2.pdf ...]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\npnlextract - structured profit and loss extraction from annual report PDFs\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s annual-report.pdf                       # extract to ./annual-report.xlsx\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --out=/tmp/reports *.pdf                # batch extraction\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --local-ocr scanned-report.pdf          # OCR scanned input locally\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  PNLX_LLM_URL            Chat completion base URL\n")
		fmt.Fprintf(os.Stderr, "  PNLX_LLM_KEY            Chat completion API key\n")
		fmt.Fprintf(os.Stderr, "  PNLX_LLM_MODEL          Chat completion model\n")
		fmt.Fprintf(os.Stderr, "  PNLX_TABLES_URL         Table structure service URL\n")
		fmt.Fprintf(os.Stderr, "  PNLX_DOCAI_PROJECT      Document AI project ID\n")
		fmt.Fprintf(os.Stderr, "  PNLX_DOCAI_PROCESSOR    Document AI processor ID\n")
		fmt.Fprintf(os.Stderr, "  PNLX_LOGLEVEL           Log level\n")
		fmt.Fprintf(os.Stderr, "  PNLX_MAXFILESIZE        Maximum file size\n")
	}
}

// checkVersionFlag checks if version flag was requested
func checkVersionFlag() error {
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			return fmt.Errorf("version requested")
		}
	}
	return nil
}

// populateConfigFromViper fills the config struct with values from viper
func populateConfigFromViper(cfg *Config) {
	cfg.OutputDir = viper.GetString("out")
	cfg.LogLevel = viper.GetString("loglevel")
	cfg.MaxFileSize = viper.GetInt64("maxfilesize")
	cfg.MaxPages = viper.GetInt("maxpages")
	cfg.Workers = viper.GetInt("workers")
	cfg.JobTimeout = viper.GetDuration("jobtimeout")
	cfg.LLMBaseURL = viper.GetString("llm_url")
	cfg.LLMAPIKey = viper.GetString("llm_key")
	cfg.LLMModel = viper.GetString("llm_model")
	cfg.LLMTimeout = viper.GetDuration("llm_timeout")
	cfg.TableServiceURL = viper.GetString("tables_url")
	cfg.TableServiceTimeout = viper.GetDuration("tables_timeout")
	cfg.DocAIProjectID = viper.GetString("docai_project")
	cfg.DocAILocation = viper.GetString("docai_location")
	cfg.DocAIProcessorID = viper.GetString("docai_processor")
	cfg.DocAICredentialsFile = viper.GetString("docai_credentials")
	cfg.LocalOCR = viper.GetBool("local_ocr")
	cfg.LocalOCRDPI = viper.GetInt("local_ocr_dpi")
	cfg.LocalOCRLang = viper.GetString("local_ocr_lang")
	cfg.NonInteractive = viper.GetBool("noninteractive")
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.OutputDir == "" {
		return errors.New("output directory cannot be empty")
	}

	// Create the output directory if it does not exist
	if _, err := os.Stat(c.OutputDir); os.IsNotExist(err) {
		if err := os.MkdirAll(c.OutputDir, DefaultDirPerm); err != nil {
			return fmt.Errorf("cannot create output directory %s: %w", c.OutputDir, err)
		}
	} else if err != nil {
		return fmt.Errorf("cannot access output directory %s: %w", c.OutputDir, err)
	}

	if c.MaxFileSize <= 0 {
		return errors.New("maximum file size must be positive")
	}
	if c.MaxPages <= 0 {
		return errors.New("maximum page count must be positive")
	}
	if c.Workers <= 0 {
		return errors.New("workers must be positive")
	}
	if c.JobTimeout <= 0 {
		return errors.New("job timeout must be positive")
	}

	if c.LocalOCR && c.LocalOCRDPI < 72 {
		return fmt.Errorf("local OCR DPI %d is too low for legible rasterization", c.LocalOCRDPI)
	}

	// Document AI needs the full coordinate set or none of it
	docai := c.DocAIProjectID != "" || c.DocAIProcessorID != ""
	if docai && (c.DocAIProjectID == "" || c.DocAIProcessorID == "" || c.DocAILocation == "") {
		return errors.New("document AI requires project ID, location and processor ID together")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	return nil
}

// IsDebug returns true if debug logging is enabled
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

// String returns a string representation of the configuration. The
// LLM API key is never included.
func (c *Config) String() string {
	return fmt.Sprintf("Config{OutputDir: %s, LogLevel: %s, MaxFileSize: %d, MaxPages: %d, Workers: %d}",
		c.OutputDir, c.LogLevel, c.MaxFileSize, c.MaxPages, c.Workers)
}
