package config

import (
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config represents the global application configuration
type Config struct {
	Port     int         `mapstructure:"port"`
	Log      Log         `mapstructure:"log"`
	RabbitMQ RabbitMQ    `mapstructure:"rabbitmq"`
	MySQL    MySQLConfig `mapstructure:"mysql"`
	Report   Report      `mapstructure:"report"`
	Rules    Rules       `mapstructure:"rules"`
	Amount   Amount      `mapstructure:"amount"`
	// Costs 采购成本表，key为SKU（大小写、空格不敏感）
	Costs     map[string]string `mapstructure:"costs"`
	CostsFile string            `mapstructure:"costs-file"`
}

// Log represents the logging configuration
type Log struct {
	Level   string `mapstructure:"level"`
	LogBase string `mapstructure:"log-base"`
}

// RabbitMQ represents the RabbitMQ configuration
type RabbitMQ struct {
	URL          string      `mapstructure:"url"`
	Exchange     string      `mapstructure:"exchange"`
	ExchangeType string      `mapstructure:"exchange-type"`
	Queue        RabbitQueue `mapstructure:"queue"`
}

// RabbitQueue represents the RabbitMQ queue configuration
type RabbitQueue struct {
	ReportReq string `mapstructure:"report-req"`
	ReportRes string `mapstructure:"report-res"`
}

// MySQLConfig represents the MySQL database configuration. The cost table is read from it when URL is set.
type MySQLConfig struct {
	Driver             string `mapstructure:"driver"`
	URL                string `mapstructure:"url"`
	MaxLifeTime        int    `mapstructure:"max-life-time"`
	MaxOpenConnections int    `mapstructure:"max-open-connections"`
	MaxIdleConnections int    `mapstructure:"max-idle-connections"`
}

// Report represents the report output configuration
type Report struct {
	// Dir 报表输出根目录，按 年/月 分目录存放
	Dir string `mapstructure:"dir"`
	// UploadDir 上传文件的临时目录
	UploadDir string `mapstructure:"upload-dir"`
	// SortBy sku | net-profit | revenue
	SortBy string `mapstructure:"sort-by"`
	// HeaderScanRows 订单Excel表头所在行的最大扫描行数
	HeaderScanRows int `mapstructure:"header-scan-rows"`
}

// Rules represents the profit rules
type Rules struct {
	// Ruleset baseline | extended
	Ruleset string `mapstructure:"ruleset"`
	// RealizedStatuses overrides the ruleset when not empty
	RealizedStatuses []string `mapstructure:"realized-statuses"`
	// Strict 结算金额不是数字时报错，而不是按0处理
	Strict bool `mapstructure:"strict"`
}

// Amount represents the claim amount pattern
type Amount struct {
	Prefix           string `mapstructure:"prefix"`
	DecimalSeparator string `mapstructure:"decimal-separator"`
	CaseInsensitive  bool   `mapstructure:"case-insensitive"`
}

// GlobalConfig is the global configuration instance
var GlobalConfig Config

// InitConfig initializes the global configuration
func InitConfig() (*Config, error) {
	err := viper.Unmarshal(&GlobalConfig)
	if err != nil {
		return nil, err
	}
	return &GlobalConfig, nil
}

// GetConfig returns the global configuration
func GetConfig() *Config {
	return &GlobalConfig
}

// SetDefaults registers default values on viper
func SetDefaults() {
	viper.SetDefault("port", 7005)
	viper.SetDefault("log.level", "info")
	viper.SetDefault("report.dir", "reports")
	viper.SetDefault("report.upload-dir", "uploads")
	viper.SetDefault("report.header-scan-rows", 5)
	viper.SetDefault("rules.ruleset", "baseline")
	viper.SetDefault("amount.prefix", "Rs")
	viper.SetDefault("amount.decimal-separator", ".")
	viper.SetDefault("rabbitmq.exchange-type", "direct")
}

// SeedCosts parses the costs section. Values that are not numbers are skipped and returned as errors.
func (c *Config) SeedCosts() (map[string]decimal.Decimal, []error) {
	out := make(map[string]decimal.Decimal, len(c.Costs))
	var errs []error
	for sku, raw := range c.Costs {
		v, err := decimal.NewFromString(raw)
		if err != nil {
			errs = append(errs, &CostValueError{SKU: sku, Value: raw, Err: err})
			continue
		}
		out[sku] = v
	}
	return out, errs
}
