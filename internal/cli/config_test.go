package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	errs "github.com/matzehuels/chirp/pkg/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
consumer_key = "ck"
consumer_secret = "cs"
access_token = "at"
access_token_secret = "ats"
api_url = "https://api.example.com/1.1/"
timeout = "5s"

[cache]
backend = "redis"
ttl = "1 hour"
redis_addr = "localhost:6379"
redis_db = 2
`)

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if cfg.ConsumerKey != "ck" || cfg.ConsumerSecret != "cs" || cfg.AccessToken != "at" || cfg.AccessTokenSecret != "ats" {
		t.Errorf("credentials = %+v", cfg)
	}
	if cfg.APIURL != "https://api.example.com/1.1/" {
		t.Errorf("APIURL = %q", cfg.APIURL)
	}
	if cfg.Cache.Backend != "redis" || cfg.Cache.TTL != "1 hour" || cfg.Cache.RedisAddr != "localhost:6379" || cfg.Cache.RedisDB != 2 {
		t.Errorf("Cache = %+v", cfg.Cache)
	}
	if d, err := cfg.timeoutDuration(); err != nil || d != 5*time.Second {
		t.Errorf("timeoutDuration() = %v, %v", d, err)
	}
}

func TestLoadConfigMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig(default) error: %v", err)
	}
	if cfg.ConsumerKey != "" {
		t.Errorf("absent default config should be empty, got %+v", cfg)
	}

	_, err = loadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if errs.GetCode(err) != errs.ErrCodeInvalidConfig {
		t.Errorf("loadConfig(explicit missing) code = %v, want INVALID_CONFIG", errs.GetCode(err))
	}
}

func TestLoadConfigUnknownKey(t *testing.T) {
	path := writeConfig(t, "consumer_key = \"ck\"\nconsumer_sekret = \"typo\"\n")

	_, err := loadConfig(path)
	if err == nil {
		t.Fatal("unknown key should fail")
	}
	if !strings.Contains(err.Error(), "consumer_sekret") {
		t.Errorf("error %q should name the unknown key", err)
	}
}

func TestLoadConfigSyntaxError(t *testing.T) {
	path := writeConfig(t, "consumer_key = \n")

	if _, err := loadConfig(path); errs.GetCode(err) != errs.ErrCodeInvalidConfig {
		t.Errorf("loadConfig(bad toml) code = %v, want INVALID_CONFIG", errs.GetCode(err))
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"CHIRP_CONSUMER_KEY":         "env-ck",
		"CHIRP_ACCESS_TOKEN":         "env-at",
		"CHIRP_CACHE_BACKEND":        "none",
		"CHIRP_INSECURE_SKIP_VERIFY": "true",
		"CHIRP_REDIS_DB":             "3",
	}
	cfg := &Config{ConsumerKey: "file-ck", ConsumerSecret: "file-cs"}

	if err := cfg.applyEnv(func(k string) string { return env[k] }); err != nil {
		t.Fatalf("applyEnv() error: %v", err)
	}
	if cfg.ConsumerKey != "env-ck" {
		t.Errorf("ConsumerKey = %q, want env override", cfg.ConsumerKey)
	}
	if cfg.ConsumerSecret != "file-cs" {
		t.Errorf("ConsumerSecret = %q, unset variables must not clear file values", cfg.ConsumerSecret)
	}
	if cfg.AccessToken != "env-at" || cfg.Cache.Backend != "none" || !cfg.InsecureSkipVerify || cfg.Cache.RedisDB != 3 {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestApplyEnvInvalid(t *testing.T) {
	tests := map[string]string{
		"CHIRP_INSECURE_SKIP_VERIFY": "sometimes",
		"CHIRP_REDIS_DB":             "zero",
	}
	for name, value := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := &Config{}
			err := cfg.applyEnv(func(k string) string {
				if k == name {
					return value
				}
				return ""
			})
			if errs.GetCode(err) != errs.ErrCodeInvalidConfig {
				t.Errorf("applyEnv(%s=%s) code = %v, want INVALID_CONFIG", name, value, errs.GetCode(err))
			}
		})
	}
}

func TestApplyFlags(t *testing.T) {
	c := &CLI{apiURL: "http://localhost/1.1/", timeout: "1s", insecure: true, noCache: true}
	cfg := &Config{APIURL: "https://api.example.com/1.1/", Cache: CacheConfig{Backend: "redis"}}

	c.applyFlags(cfg)

	if cfg.APIURL != "http://localhost/1.1/" || cfg.Timeout != "1s" || !cfg.InsecureSkipVerify {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Cache.Backend != backendNone {
		t.Errorf("--no-cache backend = %q, want none", cfg.Cache.Backend)
	}
}

func TestCacheBackend(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"", backendFile, false},
		{"file", backendFile, false},
		{" Redis ", backendRedis, false},
		{"mongo", backendMongo, false},
		{"none", backendNone, false},
		{"memcached", "", true},
	}
	for _, tt := range tests {
		got, err := CacheConfig{Backend: tt.in}.backend()
		if (err != nil) != tt.wantErr {
			t.Errorf("backend(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("backend(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTimeoutDuration(t *testing.T) {
	for _, bad := range []string{"soon", "-1s"} {
		cfg := &Config{Timeout: bad}
		if _, err := cfg.timeoutDuration(); errs.GetCode(err) != errs.ErrCodeInvalidConfig {
			t.Errorf("timeoutDuration(%q) code = %v, want INVALID_CONFIG", bad, errs.GetCode(err))
		}
	}
	if d, err := (&Config{}).timeoutDuration(); err != nil || d != 0 {
		t.Errorf("empty timeout = %v, %v; want 0, nil", d, err)
	}
}

func TestConfigStringMasksSecrets(t *testing.T) {
	cfg := &Config{ConsumerKey: "abcdefghij", AccessToken: "xy"}

	s := cfg.String()
	if strings.Contains(s, "abcdefghij") {
		t.Errorf("String() leaked the consumer key: %s", s)
	}
	if !strings.Contains(s, "abcd******") || !strings.Contains(s, "access_token=**") {
		t.Errorf("String() = %s", s)
	}
}
