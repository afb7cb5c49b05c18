// Package config는 YAML 파일과 환경 변수로부터 서비스 설정을 읽습니다.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config 설정 값 조회 인터페이스
type Config interface {
	GetString(key string) string
	GetInt(key string) int
	GetInt64(key string) int64
	GetBool(key string) bool
	GetDuration(key string) time.Duration
	GetStringSlice(key string) []string
	IsSet(key string) bool
	GetAll() map[string]interface{}
}

type viperConfig struct {
	v *viper.Viper
}

func (c *viperConfig) GetString(key string) string { return c.v.GetString(key) }
func (c *viperConfig) GetInt(key string) int { return c.v.GetInt(key) }
func (c *viperConfig) GetInt64(key string) int64 { return c.v.GetInt64(key) }
func (c *viperConfig) GetBool(key string) bool { return c.v.GetBool(key) }
func (c *viperConfig) GetDuration(key string) time.Duration { return c.v.GetDuration(key) }
func (c *viperConfig) GetStringSlice(key string) []string { return c.v.GetStringSlice(key) }
func (c *viperConfig) IsSet(key string) bool { return c.v.IsSet(key) }
func (c *viperConfig) GetAll() map[string]interface{} { return c.v.AllSettings() }

const configDir = "configs"

type options struct {
	defaults map[string]interface{}
	optional bool
}

// Option Load 동작을 조정합니다
type Option func(*options)

// WithDefaults 설정 파일과 환경 변수에 값이 없을 때 사용할 기본값을 지정합니다
func WithDefaults(defaults map[string]interface{}) Option {
	return func(o *options) {
		o.defaults = defaults
	}
}

// WithOptionalFile 설정 파일이 없어도 기본값과 환경 변수만으로 로드합니다
func WithOptionalFile() Option {
	return func(o *options) {
		o.optional = true
	}
}

// Load는 configs/{APP_ENV}/{serviceName}.yaml 을 읽습니다.
// 파일이 없으면 configs/example 을 시도하고, 환경 변수는 {SERVICENAME}_ 접두사로 덮어씁니다.
func Load(serviceName string, opts ...Option) (Config, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigName(serviceName)

	for key, value := range o.defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(strings.ToUpper(serviceName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = filepath.Join(configDir, env)
	}
	v.AddConfigPath(configPath)
	v.AddConfigPath(filepath.Join(configDir, "example"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !o.optional || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("설정 파일 로드 실패: %w", err)
		}
	}

	return &viperConfig{v: v}, nil
}
