package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	// Config holds all process-wide settings. It is built once at startup and
	// passed by injection; nothing mutates it afterwards.
	Config struct {
		Debug    bool
		TestMode bool
		Env      string // DEV (default), TEST, QA, PROD
		AppName  string
		WorkDir  string

		SecretKey        string
		DefaultFromEmail string
		FrontendBaseURL  string
		SendgridAPIKey   string
		RollbarToken     string

		Server struct {
			Host                      string
			Port                      string
			JWTExpirationDelta        time.Duration
			JWTRefreshExpirationDelta time.Duration
			ShutdownTimeout           time.Duration
		}

		Store StoreConfig
	}

	// StoreConfig points at the SPARQL endpoints of the triplestore dataset.
	// Reads go to QueryURL, mutations to UpdateURL.
	StoreConfig struct {
		QueryURL  string
		UpdateURL string
		Namespace string // ontology namespace new resource IRIs are minted under
		Timeout   time.Duration
	}
)

func (c *Config) Address() string {
	return c.Server.Host + ":" + c.Server.Port
}

// NewConfig loads settings from the environment (and an optional
// config/.env.<env> file) into an immutable Config.
func NewConfig() *Config {
	v := viper.New()
	v.SetTypeByDefaultValue(true)

	// defaults
	v.SetDefault("debug", true)
	v.SetDefault("appName", "Trelix")
	v.SetDefault("secretKey", "w#05m$x_7ju9@c&yq1(t!z=4kf*2ghr+8bnv-pde3as6l)o0")
	v.SetDefault("defaultFromEmail", "noreply@localhost")
	v.SetDefault("frontendBaseURL", "http://localhost:3000")
	v.SetDefault("serverHost", "")
	v.SetDefault("serverPort", "8000")
	v.SetDefault("jwtExpirationDelta", 7*24*time.Hour)
	v.SetDefault("jwtRefreshExpirationDelta", 4*time.Hour)
	v.SetDefault("shutdownTimeout", 20*time.Second)
	v.SetDefault("storeQueryURL", "http://localhost:3030/trelix/sparql")
	v.SetDefault("storeUpdateURL", "http://localhost:3030/trelix/update")
	v.SetDefault("storeNamespace", "http://www.semanticweb.org/elyes/ontologies/2025/10/activity-personne-5/")
	v.SetDefault("storeTimeout", 30*time.Second)

	env := os.Getenv("ENV")
	if env == "" {
		env = "DEV"
	}
	if env == "TEST" {
		v.SetDefault("testMode", true)
	}
	v.SetEnvPrefix(env)

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
		Debug:            v.GetBool("debug"),
		TestMode:         v.GetBool("testMode"),
		Env:              env,
		AppName:          v.GetString("appName"),
		WorkDir:          wd,
		SecretKey:        v.GetString("secretKey"),
		DefaultFromEmail: v.GetString("defaultFromEmail"),
		FrontendBaseURL:  v.GetString("frontendBaseURL"),
		SendgridAPIKey:   v.GetString("sendgridAPIKey"),
		RollbarToken:     v.GetString("rollbarToken"),
	}
	conf.Server.Host = v.GetString("serverHost")
	conf.Server.Port = v.GetString("serverPort")
	conf.Server.JWTExpirationDelta = v.GetDuration("jwtExpirationDelta")
	conf.Server.JWTRefreshExpirationDelta = v.GetDuration("jwtRefreshExpirationDelta")
	conf.Server.ShutdownTimeout = v.GetDuration("shutdownTimeout")
	conf.Store = StoreConfig{
		QueryURL:  v.GetString("storeQueryURL"),
		UpdateURL: v.GetString("storeUpdateURL"),
		Namespace: v.GetString("storeNamespace"),
		Timeout:   v.GetDuration("storeTimeout"),
	}
	return conf
}
