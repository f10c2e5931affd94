package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Config struct {
		Env          string
		Build        string
		Debug        bool
		TestMode     bool
		AppName      string
		RollbarToken string
		WorkDir      string

		Server struct {
			Address        string
			DisableReqLogs bool
		}

		Storage StorageConfig

		Units struct {
			MaxVideos  int
			VideoHosts []string
		}

		Media struct {
			MaxUploadBytes int64
		}

		Seed struct {
			TeacherUsername string
			TeacherPassword string
		}
	}

	StorageConfig struct {
		Driver     string // memory | bolt | redis | postgres | sqlite
		Path       string
		QuotaBytes int64

		Redis struct {
			URL    string
			Prefix string
		}

		Postgres struct {
			URL string
		}
	}
)

// NewConfig reads the configuration from defaults, `config/.env.<env>` and the environment.
// Environment variables are prefixed with the upper-cased env name, e.g. `DEV_STORAGE_DRIVER`.
func NewConfig() *Config {
	v := viper.New()

	// defaults
	v.SetTypeByDefaultValue(true)
	v.SetDefault("debug", true)
	v.SetDefault("appName", "Darasa")
	v.SetDefault("build", "dev")
	v.SetDefault("rollbarToken", "")
	v.SetDefault("server.address", ":8000")
	v.SetDefault("server.disableReqLogs", false)
	v.SetDefault("storage.driver", "bolt")
	v.SetDefault("storage.path", filepath.Join("data", "darasa.db"))
	v.SetDefault("storage.quotaBytes", 5*1024*1024)
	v.SetDefault("storage.redis.url", "redis://localhost:6379/0")
	v.SetDefault("storage.redis.prefix", "darasa:")
	v.SetDefault("storage.postgres.url", "postgres://localhost:5432/darasa?sslmode=disable")
	v.SetDefault("units.maxVideos", 10)
	v.SetDefault("units.videoHosts", []string{"youtube.com", "youtu.be"})
	v.SetDefault("media.maxUploadBytes", 64*1024*1024)
	v.SetDefault("seed.teacherUsername", "teacher")
	v.SetDefault("seed.teacherPassword", "pass123")

	env := strings.ToUpper(os.Getenv("ENV")) // DEV (local; default), TEST, PROD
	if env == "" {
		env = "DEV"
	}
	if env == "TEST" {
		v.SetDefault("testMode", true)
		v.SetDefault("storage.driver", "memory")
	}
	v.SetEnvPrefix(env)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	wd := Getwd()

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(wd, "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	conf := &Config{
		Env:          env,
		Build:        v.GetString("build"),
		Debug:        v.GetBool("debug"),
		TestMode:     v.GetBool("testMode"),
		AppName:      v.GetString("appName"),
		RollbarToken: v.GetString("rollbarToken"),
		WorkDir:      wd,
	}
	conf.Server.Address = v.GetString("server.address")
	conf.Server.DisableReqLogs = v.GetBool("server.disableReqLogs")

	conf.Storage.Driver = strings.ToLower(v.GetString("storage.driver"))
	conf.Storage.Path = v.GetString("storage.path")
	conf.Storage.QuotaBytes = v.GetInt64("storage.quotaBytes")
	conf.Storage.Redis.URL = v.GetString("storage.redis.url")
	conf.Storage.Redis.Prefix = v.GetString("storage.redis.prefix")
	conf.Storage.Postgres.URL = v.GetString("storage.postgres.url")

	conf.Units.MaxVideos = v.GetInt("units.maxVideos")
	conf.Units.VideoHosts = v.GetStringSlice("units.videoHosts")
	conf.Media.MaxUploadBytes = v.GetInt64("media.maxUploadBytes")

	conf.Seed.TeacherUsername = v.GetString("seed.teacherUsername")
	conf.Seed.TeacherPassword = v.GetString("seed.teacherPassword")
	return conf
}
