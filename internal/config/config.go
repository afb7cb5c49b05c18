package config

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/wekeepgrowing/student-activity/pkg/config"
	"github.com/wekeepgrowing/student-activity/pkg/logger"
)

// ServiceName 설정 파일 이름이자 환경 변수 접두사(ACTIVITY_)
const ServiceName = "activity"

// Config 학생 활동 서비스 설정 구조체
type Config struct {
	Service struct {
		Name    string
		Version string
	}

	Server struct {
		HTTP struct {
			Port           string
			Timeout        time.Duration
			Debug          bool
			BodyLimit      string
			AllowedOrigins []string
		}
		GRPC struct {
			Port    string
			Enabled bool
		}
	}

	Database struct {
		Host            string
		Port            int
		Name            string
		User            string
		Password        string
		SSLMode         string
		MaxOpenConns    int
		MaxIdleConns    int
		ConnMaxLifetime time.Duration
		SlowThreshold   time.Duration
		AutoMigrate     bool
	}

	Redis struct {
		Enabled  bool
		Host     string
		Port     int
		Password string
		DB       int
		Channel  string
	}

	Storage struct {
		// Driver local, s3, memory
		Driver      string
		MaxFileSize int64
		Local       struct {
			Dir       string
			URLPrefix string
		}
		S3 struct {
			Region        string
			Bucket        string
			AccessKey     string
			SecretKey     string
			Endpoint      string
			Prefix        string
			PublicBaseURL string
		}
	}

	Seed struct {
		// StudentsFile cmd/seed 가 읽는 학생 목록 YAML
		StudentsFile string
	}

	App struct {
		Timezone string
		Location *time.Location
	}

	Log struct {
		Level    string
		Format   string
		Output   string
		FilePath string
	}

	Logger *zap.Logger
}

// Defaults 설정 파일에 값이 없을 때 적용되는 기본값
func Defaults() map[string]interface{} {
	return map[string]interface{}{
		"service.name":                "student-activity",
		"service.version":             "dev",
		"server.http.port":            "8080",
		"server.http.timeout":         "30s",
		"server.http.body_limit":      "64M",
		"server.http.allowed_origins": []string{"*"},
		"server.grpc.port":            "9090",
		"server.grpc.enabled":         true,
		"database.host":               "localhost",
		"database.port":               5432,
		"database.sslmode":            "disable",
		"database.max_open_conns":     20,
		"database.max_idle_conns":     5,
		"database.conn_max_lifetime":  "30m",
		"database.slow_threshold":     "1s",
		"database.auto_migrate":       true,
		"redis.enabled":               false,
		"redis.port":                  6379,
		"redis.channel":               "student-activity.events",
		"storage.driver":              "local",
		"storage.max_file_size":       5 * 1024 * 1024,
		"storage.local.dir":           "public/uploads",
		"storage.local.url_prefix":    "/uploads",
		"storage.s3.prefix":           "uploads",
		"seed.students_file":          "configs/example/students.yaml",
		"app.timezone":                "UTC",
		"log.level":                   "info",
		"log.format":                  "json",
		"log.output":                  "stdout",
	}
}

// Load 설정 파일을 읽어 Config와 로거를 만듭니다
func Load() (*Config, error) {
	cfg, err := config.Load(ServiceName, config.WithDefaults(Defaults()))
	if err != nil {
		return nil, err
	}
	return FromSource(cfg)
}

// FromSource 이미 로드된 설정 소스로부터 Config를 구성합니다
func FromSource(cfg config.Config) (*Config, error) {
	c := &Config{}

	c.Service.Name = cfg.GetString("service.name")
	c.Service.Version = cfg.GetString("service.version")

	c.Server.HTTP.Port = cfg.GetString("server.http.port")
	c.Server.HTTP.Timeout = cfg.GetDuration("server.http.timeout")
	c.Server.HTTP.Debug = cfg.GetBool("server.http.debug")
	c.Server.HTTP.BodyLimit = cfg.GetString("server.http.body_limit")
	c.Server.HTTP.AllowedOrigins = cfg.GetStringSlice("server.http.allowed_origins")
	c.Server.GRPC.Port = cfg.GetString("server.grpc.port")
	c.Server.GRPC.Enabled = cfg.GetBool("server.grpc.enabled")

	c.Database.Host = cfg.GetString("database.host")
	c.Database.Port = cfg.GetInt("database.port")
	c.Database.Name = cfg.GetString("database.name")
	c.Database.User = cfg.GetString("database.user")
	c.Database.Password = cfg.GetString("database.password")
	c.Database.SSLMode = cfg.GetString("database.sslmode")
	c.Database.MaxOpenConns = cfg.GetInt("database.max_open_conns")
	c.Database.MaxIdleConns = cfg.GetInt("database.max_idle_conns")
	c.Database.ConnMaxLifetime = cfg.GetDuration("database.conn_max_lifetime")
	c.Database.SlowThreshold = cfg.GetDuration("database.slow_threshold")
	c.Database.AutoMigrate = cfg.GetBool("database.auto_migrate")

	c.Redis.Enabled = cfg.GetBool("redis.enabled")
	c.Redis.Host = cfg.GetString("redis.host")
	c.Redis.Port = cfg.GetInt("redis.port")
	c.Redis.Password = cfg.GetString("redis.password")
	c.Redis.DB = cfg.GetInt("redis.db")
	c.Redis.Channel = cfg.GetString("redis.channel")

	c.Storage.Driver = cfg.GetString("storage.driver")
	c.Storage.MaxFileSize = cfg.GetInt64("storage.max_file_size")
	c.Storage.Local.Dir = cfg.GetString("storage.local.dir")
	c.Storage.Local.URLPrefix = cfg.GetString("storage.local.url_prefix")
	c.Storage.S3.Region = cfg.GetString("storage.s3.region")
	c.Storage.S3.Bucket = cfg.GetString("storage.s3.bucket")
	c.Storage.S3.AccessKey = cfg.GetString("storage.s3.access_key")
	c.Storage.S3.SecretKey = cfg.GetString("storage.s3.secret_key")
	c.Storage.S3.Endpoint = cfg.GetString("storage.s3.endpoint")
	c.Storage.S3.Prefix = cfg.GetString("storage.s3.prefix")
	c.Storage.S3.PublicBaseURL = cfg.GetString("storage.s3.public_base_url")

	c.Seed.StudentsFile = cfg.GetString("seed.students_file")

	c.App.Timezone = cfg.GetString("app.timezone")
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return nil, fmt.Errorf("잘못된 app.timezone %q: %w", c.App.Timezone, err)
	}
	c.App.Location = loc

	if c.Storage.MaxFileSize <= 0 {
		return nil, fmt.Errorf("storage.max_file_size는 0보다 커야 합니다: %d", c.Storage.MaxFileSize)
	}

	c.Log.Level = cfg.GetString("log.level")
	c.Log.Format = cfg.GetString("log.format")
	c.Log.Output = cfg.GetString("log.output")
	c.Log.FilePath = cfg.GetString("log.file_path")

	c.Logger, err = logger.NewZapLogger(logger.Config{
		Level:       c.Log.Level,
		Format:      c.Log.Format,
		Output:      c.Log.Output,
		FilePath:    c.Log.FilePath,
		Development: c.Server.HTTP.Debug,
	})
	if err != nil {
		return nil, fmt.Errorf("로거 생성 실패: %w", err)
	}

	return c, nil
}
