package config

import (
	"errors"
	"log"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/spf13/viper"
)

// 用于管理应用配置

var (
	// 使用 atomic.Value 存储 *Config，实现无锁读取
	appConfig atomic.Value
	configMu  sync.Mutex // 仅用于写操作互斥
	configDir = "config"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Admin     AdminConfig     `mapstructure:"admin"`
	Upload    UploadConfig    `mapstructure:"upload"`
	Redis     RedisConfig     `mapstructure:"redis"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	CORS      CORSConfig      `mapstructure:"cors"`
}

type ServerConfig struct {
	Port     string `mapstructure:"port"`
	Mode     string `mapstructure:"mode"`
	HTTPS    bool   `mapstructure:"https"`
	CertFile string `mapstructure:"cert_file"`
	KeyFile  string `mapstructure:"key_file"`

	// TrustedProxies 为空时不信任任何代理头，ClientIP 取连接地址
	TrustedProxies []string `mapstructure:"trusted_proxies"`
}

type DatabaseConfig struct {
	Type     string `mapstructure:"type"`     // sqlite, mysql, postgres
	Filename string `mapstructure:"filename"` // for sqlite
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"` // database name
	SSL      bool   `mapstructure:"ssl"`  // enable TLS/SSL
}

// StorageConfig 对象存储（S3 兼容）配置
type StorageConfig struct {
	Endpoint        string `mapstructure:"endpoint"`
	Region          string `mapstructure:"region"`
	Bucket          string `mapstructure:"bucket"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	UseSSL          bool   `mapstructure:"use_ssl"`
	KeyPrefix       string `mapstructure:"key_prefix"`
	PublicBaseURL   string `mapstructure:"public_base_url"`
}

type AdminConfig struct {
	// CreateSecret 为空时拒绝所有管理员创建请求
	CreateSecret string `mapstructure:"create_secret"`
}

type UploadConfig struct {
	MaxFileSizeMB    int `mapstructure:"max_file_size_mb"`
	MaxBatchFiles    int `mapstructure:"max_batch_files"`
	MaxRequestBodyMB int `mapstructure:"max_request_body_mb"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

type RateLimitConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	LoginRPS    float64 `mapstructure:"login_rps"`
	LoginBurst  int     `mapstructure:"login_burst"`
	UploadRPS   float64 `mapstructure:"upload_rps"`
	UploadBurst int     `mapstructure:"upload_burst"`
}

type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// Get 获取当前配置的快照（高性能无锁）
func Get() Config {
	val := appConfig.Load()
	if val == nil {
		return Config{}
	}
	c, ok := val.(*Config)
	if !ok {
		return Config{}
	}
	return *c
}

func GetConfigDir() string {
	return configDir
}

func InitConfig(customConfigDir string) {
	v := initViper(customConfigDir)
	loadAndStore(v)
	log.Println("✅ 配置加载成功")
}

// Load 读取配置并返回一个独立的配置值，不影响全局快照
func Load(customConfigDir string) (Config, error) {
	v := initViper(customConfigDir)
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func initViper(customConfigDir string) *viper.Viper {
	v := viper.New()

	customConfigDir = strings.TrimSpace(customConfigDir)
	if customConfigDir == "" {
		customConfigDir = "config"
	}
	configDir = customConfigDir

	// 设置配置文件路径
	v.AddConfigPath(configDir)
	v.AddConfigPath(".")
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	setDefaults(v)

	// 读取配置文件
	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			log.Println("⚠️  未找到配置文件，将仅使用环境变量或默认值")
		} else {
			log.Fatalf("❌ 读取配置文件失败: %v", err)
		}
	}

	// 配置环境变量覆盖
	// 规则：所有环境变量必须以 LIVEWALL_ 开头
	// 例如：yaml 中的 storage.bucket 对应环境变量 LIVEWALL_STORAGE_BUCKET
	v.SetEnvPrefix("LIVEWALL")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "3000")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.https", false)
	v.SetDefault("server.cert_file", "certs/cert.pem")
	v.SetDefault("server.key_file", "certs/key.pem")
	v.SetDefault("server.trusted_proxies", []string{})
	v.SetDefault("database.type", "sqlite")
	v.SetDefault("database.filename", "database/livewall.db")
	v.SetDefault("database.host", "127.0.0.1")
	v.SetDefault("database.port", "3306")
	v.SetDefault("database.user", "root")
	v.SetDefault("database.password", "root")
	v.SetDefault("database.name", "livewall")
	v.SetDefault("database.ssl", false)
	v.SetDefault("storage.endpoint", "s3.amazonaws.com")
	v.SetDefault("storage.region", "us-east-1")
	v.SetDefault("storage.bucket", "")
	v.SetDefault("storage.access_key_id", "")
	v.SetDefault("storage.secret_access_key", "")
	v.SetDefault("storage.use_ssl", true)
	v.SetDefault("storage.key_prefix", "uploads/")
	v.SetDefault("storage.public_base_url", "")
	v.SetDefault("admin.create_secret", "")
	v.SetDefault("upload.max_file_size_mb", 10)
	v.SetDefault("upload.max_batch_files", 20)
	v.SetDefault("upload.max_request_body_mb", 2)
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "127.0.0.1:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.prefix", "livewall")
	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.login_rps", 1)
	v.SetDefault("rate_limit.login_burst", 5)
	v.SetDefault("rate_limit.upload_rps", 2)
	v.SetDefault("rate_limit.upload_burst", 20)
	v.SetDefault("cors.allow_origins", []string{"*"})
}

// loadAndStore 解析并原子更新配置
func loadAndStore(v *viper.Viper) {
	configMu.Lock()
	defer configMu.Unlock()

	var tempConfig Config
	if err := v.Unmarshal(&tempConfig); err != nil {
		log.Printf("❌ 配置解析失败: %v", err)
		return
	}

	if tempConfig.Server.Mode == "release" && tempConfig.Admin.CreateSecret == "" {
		log.Println("⚠️ 未设置 admin.create_secret，管理员创建接口将拒绝所有请求")
	}

	appConfig.Store(&tempConfig)
}

// Store 直接替换全局配置快照（测试与工具使用）
func Store(cfg Config) {
	configMu.Lock()
	defer configMu.Unlock()
	appConfig.Store(&cfg)
}

// MissingStorageFields 返回对象存储缺失的必填项
func (c StorageConfig) MissingStorageFields() []string {
	var missing []string
	if strings.TrimSpace(c.AccessKeyID) == "" {
		missing = append(missing, "storage.access_key_id")
	}
	if strings.TrimSpace(c.SecretAccessKey) == "" {
		missing = append(missing, "storage.secret_access_key")
	}
	if strings.TrimSpace(c.Bucket) == "" {
		missing = append(missing, "storage.bucket")
	}
	return missing
}

// MaxFileSizeBytes 单文件上传上限（字节）
func (c UploadConfig) MaxFileSizeBytes() int64 {
	mb := c.MaxFileSizeMB
	if mb <= 0 {
		mb = 10
	}
	return int64(mb) * 1024 * 1024
}

// BatchLimit 批量上传文件数上限
func (c UploadConfig) BatchLimit() int {
	if c.MaxBatchFiles <= 0 {
		return 20
	}
	return c.MaxBatchFiles
}
