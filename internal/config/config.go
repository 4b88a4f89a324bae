package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Env      Env
	Server   ServerConfig
	Database DatabaseConfig
	Storage  StorageConfig
	Upload   UploadConfig
	NATS     NATSConfig
	Engine   EngineConfig
	Archive  ArchiveConfig
}

type Env struct {
	Env string `envconfig:"ENV" default:"DEV"`
}

type ServerConfig struct {
	Host string `envconfig:"SERVER_HOST" default:"localhost"`
	Port string `envconfig:"SERVER_PORT" default:"8080"`
}

type DatabaseConfig struct {
	Host           string        `envconfig:"DB_HOST" required:"true"`
	Port           int           `envconfig:"DB_PORT" default:"5432"`
	User           string        `envconfig:"DB_USER" required:"true"`
	Password       string        `envconfig:"DB_PASSWORD" required:"true"`
	Name           string        `envconfig:"DB_NAME" required:"true"`
	SSLMode        string        `envconfig:"DB_SSLMODE" default:"disable"`
	MaxOpenCons    int           `envconfig:"DB_MAX_OPEN_CONS" default:"25"`
	MaxIdleCons    int           `envconfig:"DB_MAX_IDLE_CONS" default:"5"`
	ConMaxLifeTime time.Duration `envconfig:"DB_CONMAX_LIFE_TIME" default:"5m"`
	ProbeEvery     time.Duration `envconfig:"DB_PROBE_EVERY" default:"5m"`
}

// StorageConfig points the blob store at its root directory. Each test can
// point an instance at its own temporary root.
type StorageConfig struct {
	Root           string        `envconfig:"STORAGE_ROOT" default:"./storage"`
	PublicBasePath string        `envconfig:"STORAGE_PUBLIC_BASE_PATH" default:"/storage/audio"`
	TempMaxAge     time.Duration `envconfig:"STORAGE_TEMP_MAX_AGE" default:"1h"`
	CleanupEvery   time.Duration `envconfig:"STORAGE_CLEANUP_EVERY" default:"1h"`
}

type UploadConfig struct {
	MaxSizeBytes int64 `envconfig:"UPLOAD_MAX_SIZE" default:"52428800"` // 50 MiB
	// MinSizeBytes is an optional floor for deployments that want to reject
	// obviously truncated uploads; 0 disables the check.
	MinSizeBytes int64 `envconfig:"UPLOAD_MIN_SIZE" default:"0"`
}

type NATSConfig struct {
	URL           string `envconfig:"NATS_URL" required:"true"`
	StreamName    string `envconfig:"NATS_STREAM_NAME" default:"ECHONOTE"`
	UploadSubject string `envconfig:"NATS_UPLOAD_SUBJECT" default:"echonote.meeting.uploaded"`
	NotifySubject string `envconfig:"NATS_NOTIFY_SUBJECT" default:"echonote.notification"`
	ConsumerName  string `envconfig:"NATS_CONSUMER_NAME" default:"echonote-worker"`
	DeliverGroup  string `envconfig:"NATS_DELIVER_GROUP" default:"workers"`
}

// EngineConfig configures the external processing pipeline commands.
type EngineConfig struct {
	Python       string        `envconfig:"ENGINE_PYTHON" default:"python3"`
	ScriptDir    string        `envconfig:"ENGINE_SCRIPT_DIR" default:"./scripts"`
	StageTimeout time.Duration `envconfig:"ENGINE_STAGE_TIMEOUT" default:"10m"`
}

// ArchiveConfig configures the optional object-storage backup of durable audio.
type ArchiveConfig struct {
	Enabled    bool   `envconfig:"ARCHIVE_ENABLED" default:"false"`
	Endpoint   string `envconfig:"ARCHIVE_ENDPOINT"`
	BucketName string `envconfig:"ARCHIVE_BUCKET_NAME" default:"echonote-audio"`
	AccessKey  string `envconfig:"ARCHIVE_ACCESS_KEY"`
	SecretKey  string `envconfig:"ARCHIVE_SECRET_KEY"`
	UseSSL     bool   `envconfig:"ARCHIVE_USE_SSL" default:"false"`
}

func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
