// internal/config/config.go
package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Database struct {
		URL string `mapstructure:"url"`
	} `mapstructure:"database"`
	Server struct {
		Port string `mapstructure:"port"`
	} `mapstructure:"server"`
	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`
	App struct {
		ReviewLimit    int     `mapstructure:"review_limit"`    // 復習キューのデフォルト件数
		DefaultTier    int     `mapstructure:"default_tier"`    // 履歴が無い場合の難易度ティア
		MaxTier        int     `mapstructure:"max_tier"`        // 難易度ティアの上限
		BandMin        float64 `mapstructure:"band_min"`        // 理解度バンド下限 (既知語率)
		BandMax        float64 `mapstructure:"band_max"`        // 理解度バンド上限
		CandidateLimit int     `mapstructure:"candidate_limit"` // カタログから引く候補数の上限
		QueueSize      int     `mapstructure:"queue_size"`      // キャッシュするランキング済みキューの長さ
	} `mapstructure:"app"`
	Cache struct {
		FeedTTL     time.Duration `mapstructure:"feed_ttl"`
		SRSTTL      time.Duration `mapstructure:"srs_ttl"`
		ContentTTL  time.Duration `mapstructure:"content_ttl"`
		OpTimeout   time.Duration `mapstructure:"op_timeout"`   // キャッシュ1操作あたりのタイムアウト
		CleanupTick time.Duration `mapstructure:"cleanup_tick"` // インメモリ実装の掃除間隔
	} `mapstructure:"cache"`
	CORS struct {
		AllowedOrigins   []string `mapstructure:"allowed_origins"`
		AllowedMethods   []string `mapstructure:"allowed_methods"`
		AllowedHeaders   []string `mapstructure:"allowed_headers"`
		ExposedHeaders   []string `mapstructure:"exposed_headers"`
		AllowCredentials bool     `mapstructure:"allow_credentials"`
		MaxAge           int      `mapstructure:"max_age"`
	} `mapstructure:"cors"`
}

var Cfg Config

func LoadConfig(path string) error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(path)
	viper.AddConfigPath(".")

	// 環境変数から上書きできるようにする (例: APP_SERVER_PORT)
	viper.SetEnvPrefix("APP")
	viper.AutomaticEnv()
	viper.BindEnv("database.url", "DATABASE_URL")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("Warning: Config file not found. Using default settings or environment variables if available.")
		} else {
			log.Printf("Error reading config file: %s\n", err)
			return err
		}
	}

	if err := viper.Unmarshal(&Cfg); err != nil {
		log.Printf("Error unmarshalling config: %s\n", err)
		return err
	}

	applyDefaults()

	log.Println("Config loaded successfully")
	log.Printf("Server Port: %s", Cfg.Server.Port)
	log.Printf("Review Limit: %d", Cfg.App.ReviewLimit)
	log.Printf("Comprehension Band: %.2f - %.2f", Cfg.App.BandMin, Cfg.App.BandMax)

	return nil
}

// applyDefaults は未設定・不正な値にデフォルトを適用します
func applyDefaults() {
	if Cfg.Server.Port == "" {
		Cfg.Server.Port = DefaultServerPort
	}
	if Cfg.Log.Level == "" {
		Cfg.Log.Level = DefaultLogLevel
	}
	if Cfg.App.ReviewLimit <= 0 {
		Cfg.App.ReviewLimit = DefaultReviewLimit
	}
	if Cfg.App.DefaultTier <= 0 {
		Cfg.App.DefaultTier = DefaultDifficultyTier
	}
	if Cfg.App.MaxTier <= 0 {
		Cfg.App.MaxTier = DefaultMaxTier
	}
	if Cfg.App.BandMin <= 0 || Cfg.App.BandMin >= 1 {
		Cfg.App.BandMin = DefaultBandMin
	}
	if Cfg.App.BandMax <= Cfg.App.BandMin || Cfg.App.BandMax > 1 {
		Cfg.App.BandMax = DefaultBandMax
	}
	if Cfg.App.CandidateLimit <= 0 {
		Cfg.App.CandidateLimit = DefaultCandidateLimit
	}
	if Cfg.App.QueueSize <= 0 {
		Cfg.App.QueueSize = DefaultQueueSize
	}
	if Cfg.Cache.FeedTTL <= 0 {
		Cfg.Cache.FeedTTL = DefaultFeedQueueTTL
	}
	if Cfg.Cache.SRSTTL <= 0 {
		Cfg.Cache.SRSTTL = DefaultSRSQueueTTL
	}
	if Cfg.Cache.ContentTTL <= 0 {
		Cfg.Cache.ContentTTL = DefaultContentMetaTTL
	}
	if Cfg.Cache.OpTimeout <= 0 {
		Cfg.Cache.OpTimeout = DefaultCacheOpTimeout
	}
	if Cfg.Cache.CleanupTick <= 0 {
		Cfg.Cache.CleanupTick = DefaultCacheCleanupTick
	}
}
