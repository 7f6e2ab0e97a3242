package cmd

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	HTTPPort string

	DB        DBConfig
	Log       LogConfig
	Redis     RedisConfig
	Kafka     KafkaConfig
	Tracing   TracingConfig
	Scheduler ServiceConfig
	Inventory ServiceConfig
	// ControlOrders points at an external control order service. With an
	// empty BaseURL control orders are created in process.
	ControlOrders ServiceConfig
	Jobs          JobsConfig
}

type DBConfig struct {
	Host          string
	Port          string
	User          string
	Password      string
	Name          string
	SslMode       string
	LogLevel      string
	SlowThreshold time.Duration
	MaxOpenConns  int
	MaxIdleConns  int
}

// DSN is the gorm connection string.
func (c DBConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SslMode)
}

// URL is the migrate connection string.
func (c DBConfig) URL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     c.Host + ":" + c.Port,
		Path:     c.Name,
		RawQuery: "sslmode=" + url.QueryEscape(c.SslMode),
	}
	return u.String()
}

type LogConfig struct {
	Level  string
	Format string
	Output string
}

// RedisConfig enables the shared number sequence when Addr is set. Without it
// numbers come from an in-process counter.
type RedisConfig struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
}

// KafkaConfig enables domain event publishing when Brokers is not empty.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

type TracingConfig struct {
	Enabled     bool
	Endpoint    string
	Insecure    bool
	ServiceName string
	SampleRatio float64
}

type ServiceConfig struct {
	BaseURL         string
	Timeout         time.Duration
	MaxRetries      uint64
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

type JobsConfig struct {
	Enabled           bool
	ProgressSchedule  string
	SynthesisSchedule string
	Timeout           time.Duration
}

// LoadConfig reads config.toml from the working directory when present and
// MFG_ prefixed environment variables, e.g. MFG_DB_HOST or
// MFG_SCHEDULER_BASE_URL. Environment variables win.
func LoadConfig() (Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	v.SetEnvPrefix("MFG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := Config{
		HTTPPort: v.GetString("http.port"),
		DB: DBConfig{
			Host:          v.GetString("db.host"),
			Port:          v.GetString("db.port"),
			User:          v.GetString("db.user"),
			Password:      v.GetString("db.password"),
			Name:          v.GetString("db.name"),
			SslMode:       v.GetString("db.sslmode"),
			LogLevel:      v.GetString("db.log_level"),
			SlowThreshold: v.GetDuration("db.slow_threshold"),
			MaxOpenConns:  v.GetInt("db.max_open_conns"),
			MaxIdleConns:  v.GetInt("db.max_idle_conns"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		Redis: RedisConfig{
			Addr:      v.GetString("redis.addr"),
			Password:  v.GetString("redis.password"),
			DB:        v.GetInt("redis.db"),
			KeyPrefix: v.GetString("redis.key_prefix"),
		},
		Kafka: KafkaConfig{
			Brokers: splitList(v.GetString("kafka.brokers")),
			Topic:   v.GetString("kafka.topic"),
		},
		Tracing: TracingConfig{
			Enabled:     v.GetBool("tracing.enabled"),
			Endpoint:    v.GetString("tracing.endpoint"),
			Insecure:    v.GetBool("tracing.insecure"),
			ServiceName: v.GetString("tracing.service_name"),
			SampleRatio: v.GetFloat64("tracing.sample_ratio"),
		},
		Scheduler:     serviceConfig(v, "scheduler"),
		Inventory:     serviceConfig(v, "inventory"),
		ControlOrders: serviceConfig(v, "control_orders"),
		Jobs: JobsConfig{
			Enabled:           v.GetBool("jobs.enabled"),
			ProgressSchedule:  v.GetString("jobs.progress_schedule"),
			SynthesisSchedule: v.GetString("jobs.synthesis_schedule"),
			Timeout:           v.GetDuration("jobs.timeout"),
		},
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	var errs []error
	if c.HTTPPort == "" {
		errs = append(errs, errors.New("http.port is required"))
	}
	if c.DB.Host == "" || c.DB.Name == "" {
		errs = append(errs, errors.New("db.host and db.name are required"))
	}
	if c.Scheduler.BaseURL == "" {
		errs = append(errs, errors.New("scheduler.base_url is required"))
	}
	if c.Inventory.BaseURL == "" {
		errs = append(errs, errors.New("inventory.base_url is required"))
	}
	if len(c.Kafka.Brokers) > 0 && c.Kafka.Topic == "" {
		errs = append(errs, errors.New("kafka.topic is required when brokers are set"))
	}
	return errors.Join(errs...)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http.port", "8080")

	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", "5432")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "")
	v.SetDefault("db.name", "manufacturing")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.log_level", "warn")
	v.SetDefault("db.slow_threshold", 200*time.Millisecond)
	v.SetDefault("db.max_open_conns", 20)
	v.SetDefault("db.max_idle_conns", 5)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.output", "stdout")

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.key_prefix", "mfg:sequence:")

	v.SetDefault("kafka.brokers", "")
	v.SetDefault("kafka.topic", "manufacturing.order-events")

	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.endpoint", "localhost:4317")
	v.SetDefault("tracing.insecure", true)
	v.SetDefault("tracing.service_name", "manufacturing")
	v.SetDefault("tracing.sample_ratio", 1.0)

	v.SetDefault("scheduler.base_url", "http://localhost:8016/api")
	v.SetDefault("inventory.base_url", "http://localhost:8014/api")
	v.SetDefault("control_orders.base_url", "")
	for _, service := range []string{"scheduler", "inventory", "control_orders"} {
		v.SetDefault(service+".timeout", 5*time.Second)
		v.SetDefault(service+".max_retries", 3)
		v.SetDefault(service+".initial_interval", 200*time.Millisecond)
		v.SetDefault(service+".max_interval", 2*time.Second)
	}

	v.SetDefault("jobs.enabled", true)
	v.SetDefault("jobs.progress_schedule", "@every 30s")
	v.SetDefault("jobs.synthesis_schedule", "@every 1m")
	v.SetDefault("jobs.timeout", 25*time.Second)
}

func serviceConfig(v *viper.Viper, name string) ServiceConfig {
	return ServiceConfig{
		BaseURL:         v.GetString(name + ".base_url"),
		Timeout:         v.GetDuration(name + ".timeout"),
		MaxRetries:      v.GetUint64(name + ".max_retries"),
		InitialInterval: v.GetDuration(name + ".initial_interval"),
		MaxInterval:     v.GetDuration(name + ".max_interval"),
	}
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
