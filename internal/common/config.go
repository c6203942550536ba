package common

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig
	OCR    OCRConfig
	Queue  QueueConfig
	Log    LogConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr         string        `mapstructure:"addr"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	// MaxUploadBytes caps the size of a submitted document.
	MaxUploadBytes int64 `mapstructure:"max_upload_bytes"`
}

// OCRConfig holds the external tool settings for text extraction.
type OCRConfig struct {
	Pdftotext   string `mapstructure:"pdftotext"`
	Pdftoppm    string `mapstructure:"pdftoppm"`
	Tesseract   string `mapstructure:"tesseract"`
	Language    string `mapstructure:"language"`
	DPI         int    `mapstructure:"dpi"`
	TessdataDir string `mapstructure:"tessdata_dir"`
	// TSVConfidence enables the extra tesseract TSV pass that yields a
	// mean word confidence for images.
	TSVConfidence bool `mapstructure:"tsv_confidence"`
	// MinTextLayerChars is the threshold below which a PDF text layer is
	// considered scanned-only and the page is rasterized for OCR instead.
	MinTextLayerChars int `mapstructure:"min_text_layer_chars"`
}

// QueueConfig holds job manager settings.
type QueueConfig struct {
	Workers        int           `mapstructure:"workers"`
	Size           int           `mapstructure:"size"`
	ProcessTimeout time.Duration `mapstructure:"process_timeout"`
	Retention      time.Duration `mapstructure:"retention"`
	SweepInterval  time.Duration `mapstructure:"sweep_interval"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// LoadConfig reads configuration from environment variables with the
// DOCINGEST_ prefix, e.g. DOCINGEST_QUEUE_WORKERS=4.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("DOCINGEST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "60s")
	v.SetDefault("server.max_upload_bytes", 20<<20)

	v.SetDefault("ocr.pdftotext", "pdftotext")
	v.SetDefault("ocr.pdftoppm", "pdftoppm")
	v.SetDefault("ocr.tesseract", "tesseract")
	v.SetDefault("ocr.language", "pol+eng")
	v.SetDefault("ocr.dpi", 300)
	v.SetDefault("ocr.tessdata_dir", "")
	v.SetDefault("ocr.tsv_confidence", false)
	v.SetDefault("ocr.min_text_layer_chars", 32)

	v.SetDefault("queue.workers", 1)
	v.SetDefault("queue.size", 256)
	v.SetDefault("queue.process_timeout", "3m")
	v.SetDefault("queue.retention", "1h")
	v.SetDefault("queue.sweep_interval", "1h")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, WrapError(err, "unmarshal config")
	}
	return &cfg, nil
}
