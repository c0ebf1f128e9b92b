package bootstrap

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	ServerPort            string        `mapstructure:"SERVER_PORT"`
	RedisUrl              string        `mapstructure:"REDIS_URL"`
	RedisPassword         string        `mapstructure:"REDIS_PASSWORD"`
	MongoUri              string        `mapstructure:"MONGO_URI"`
	MongoDatabase         string        `mapstructure:"MONGO_DATABASE"`
	IsLocalCors           bool          `mapstructure:"LOCAL_CORS"`
	PageLimitGames        int           `mapstructure:"PAGE_LIMIT_GAMES"`
	StaleGameCleanupDelay time.Duration `mapstructure:"STALE_GAME_CLEANUP_DELAY"`
	StaleGameGracePeriod  time.Duration `mapstructure:"STALE_GAME_GRACE_PERIOD"`
	SessionCookie         string        `mapstructure:"SESSION_COOKIE"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("REDIS_URL", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGO_DATABASE", "gogame")
	v.SetDefault("LOCAL_CORS", false)
	v.SetDefault("PAGE_LIMIT_GAMES", 20)
	v.SetDefault("STALE_GAME_CLEANUP_DELAY", 15*time.Minute)
	v.SetDefault("STALE_GAME_GRACE_PERIOD", 5*time.Second)
	v.SetDefault("SESSION_COOKIE", "sessionID")
}

// Setup reads cfgPath (a .env file) on top of the defaults; environment
// variables with the same names win over both.
func Setup(cfgPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(cfgPath)
	v.SetConfigType("env")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	err := v.ReadInConfig()
	if err != nil {
		return nil, err
	}

	var cfg Config

	err = v.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}
