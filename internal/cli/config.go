package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	errs "github.com/matzehuels/chirp/pkg/errors"
)

// Cache backends.
const (
	backendFile  = "file"
	backendRedis = "redis"
	backendMongo = "mongo"
	backendNone  = "none"
)

// Config is the CLI configuration file.
//
// Values are resolved in order: config file, CHIRP_* environment variables,
// command-line flags. Credentials missing from all three are taken from the
// session stored by "chirp login".
type Config struct {
	ConsumerKey       string `toml:"consumer_key"`
	ConsumerSecret    string `toml:"consumer_secret"`
	AccessToken       string `toml:"access_token"`
	AccessTokenSecret string `toml:"access_token_secret"`

	APIURL    string `toml:"api_url"`
	UploadURL string `toml:"upload_url"`
	OAuthURL  string `toml:"oauth_url"`

	Timeout            string `toml:"timeout"`
	InsecureSkipVerify bool   `toml:"insecure_skip_verify"`

	Cache CacheConfig `toml:"cache"`
}

// CacheConfig selects and configures the response cache backend.
type CacheConfig struct {
	Backend string `toml:"backend"` // file (default), redis, mongo or none
	Dir     string `toml:"dir"`     // file backend directory
	TTL     string `toml:"ttl"`     // duration or relative expression, e.g. "15m", "1 hour", "today"

	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`

	MongoURI      string `toml:"mongo_uri"`
	MongoDatabase string `toml:"mongo_database"`
}

// configDir returns the config directory using XDG standard (~/.config/chirp/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// loadConfig reads the config file at path. An empty path selects the
// default location, which may be absent; an explicit path must exist.
func loadConfig(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		dir, err := configDir()
		if err != nil {
			return &Config{}, nil
		}
		path = filepath.Join(dir, "config.toml")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return &Config{}, nil
		}
		return nil, errs.Wrap(errs.ErrCodeInvalidConfig, err, "read config %s", path)
	}

	var cfg Config
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errs.New(errs.ErrCodeInvalidConfig, "unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}
	return &cfg, nil
}

// applyEnv overrides cfg with CHIRP_* variables read through getenv.
func (cfg *Config) applyEnv(getenv func(string) string) error {
	strs := map[string]*string{
		"CONSUMER_KEY":        &cfg.ConsumerKey,
		"CONSUMER_SECRET":     &cfg.ConsumerSecret,
		"ACCESS_TOKEN":        &cfg.AccessToken,
		"ACCESS_TOKEN_SECRET": &cfg.AccessTokenSecret,
		"API_URL":             &cfg.APIURL,
		"UPLOAD_URL":          &cfg.UploadURL,
		"OAUTH_URL":           &cfg.OAuthURL,
		"TIMEOUT":             &cfg.Timeout,
		"CACHE_BACKEND":       &cfg.Cache.Backend,
		"CACHE_DIR":           &cfg.Cache.Dir,
		"CACHE_TTL":           &cfg.Cache.TTL,
		"REDIS_ADDR":          &cfg.Cache.RedisAddr,
		"REDIS_PASSWORD":      &cfg.Cache.RedisPassword,
		"MONGO_URI":           &cfg.Cache.MongoURI,
	}
	for name, dst := range strs {
		if v := getenv(envPrefix + name); v != "" {
			*dst = v
		}
	}

	if v := getenv(envPrefix + "INSECURE_SKIP_VERIFY"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return errs.Wrap(errs.ErrCodeInvalidConfig, err, "%sINSECURE_SKIP_VERIFY", envPrefix)
		}
		cfg.InsecureSkipVerify = b
	}
	if v := getenv(envPrefix + "REDIS_DB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errs.Wrap(errs.ErrCodeInvalidConfig, err, "%sREDIS_DB", envPrefix)
		}
		cfg.Cache.RedisDB = n
	}
	return nil
}

// applyFlags overrides cfg with the global flags that were set.
func (c *CLI) applyFlags(cfg *Config) {
	if c.apiURL != "" {
		cfg.APIURL = c.apiURL
	}
	if c.uploadURL != "" {
		cfg.UploadURL = c.uploadURL
	}
	if c.timeout != "" {
		cfg.Timeout = c.timeout
	}
	if c.insecure {
		cfg.InsecureSkipVerify = true
	}
	if c.noCache {
		cfg.Cache.Backend = backendNone
	}
}

// resolveConfig loads the config file and applies environment and flags.
func (c *CLI) resolveConfig() (*Config, error) {
	cfg, err := loadConfig(c.configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.applyEnv(os.Getenv); err != nil {
		return nil, err
	}
	c.applyFlags(cfg)
	return cfg, nil
}

// timeoutDuration parses the configured timeout. Empty means the client default.
func (cfg *Config) timeoutDuration() (time.Duration, error) {
	if cfg.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(cfg.Timeout)
	if err != nil || d < 0 {
		return 0, errs.New(errs.ErrCodeInvalidConfig, "invalid timeout %q", cfg.Timeout)
	}
	return d, nil
}

// backend returns the normalized cache backend name.
func (cc CacheConfig) backend() (string, error) {
	b := strings.ToLower(strings.TrimSpace(cc.Backend))
	switch b {
	case "":
		return backendFile, nil
	case backendFile, backendRedis, backendMongo, backendNone:
		return b, nil
	default:
		return "", errs.New(errs.ErrCodeInvalidConfig, "unknown cache backend %q (want %s, %s, %s or %s)",
			cc.Backend, backendFile, backendRedis, backendMongo, backendNone)
	}
}

// String renders cfg for display with secrets masked.
func (cfg *Config) String() string {
	return fmt.Sprintf("consumer_key=%s access_token=%s api_url=%s cache=%s",
		mask(cfg.ConsumerKey), mask(cfg.AccessToken), cfg.APIURL, cfg.Cache.Backend)
}

func mask(s string) string {
	if len(s) <= 4 {
		return strings.Repeat("*", len(s))
	}
	return s[:4] + strings.Repeat("*", len(s)-4)
}
