package cli

import (
	"context"

	"github.com/matzehuels/chirp/pkg/buildinfo"
	"github.com/matzehuels/chirp/pkg/cache"
	errs "github.com/matzehuels/chirp/pkg/errors"
	"github.com/matzehuels/chirp/pkg/httputil"
	"github.com/matzehuels/chirp/pkg/session"
	"github.com/matzehuels/chirp/pkg/twitter"
)

// =============================================================================
// Client Factory
// =============================================================================

// newClient creates an API client from the resolved configuration. The
// returned release func closes the cache backend and must be called when the
// command finishes.
func (c *CLI) newClient(ctx context.Context) (*twitter.Client, func(), error) {
	cfg, err := c.resolveConfig()
	if err != nil {
		return nil, nil, err
	}
	c.Logger.Debug("config resolved", "config", cfg.String())

	if cfg.AccessToken == "" && cfg.AccessTokenSecret == "" {
		if sess := c.storedSession(ctx); sess != nil {
			cfg.AccessToken, cfg.AccessTokenSecret = sess.Token, sess.TokenSecret
			c.Logger.Debug("using stored session", "account", sess.Account())
		}
	}
	if cfg.ConsumerKey == "" || cfg.ConsumerSecret == "" {
		return nil, nil, errs.New(errs.ErrCodeInvalidConfig,
			"consumer key and secret are not configured (set consumer_key/consumer_secret in the config file or %sCONSUMER_KEY/%sCONSUMER_SECRET)", envPrefix, envPrefix)
	}

	timeout, err := cfg.timeoutDuration()
	if err != nil {
		return nil, nil, err
	}
	respCache, release, err := c.newCache(ctx, cfg.Cache)
	if err != nil {
		return nil, nil, err
	}

	client, err := twitter.New(twitter.Config{
		ConsumerKey:        cfg.ConsumerKey,
		ConsumerSecret:     cfg.ConsumerSecret,
		AccessToken:        cfg.AccessToken,
		AccessTokenSecret:  cfg.AccessTokenSecret,
		APIURL:             cfg.APIURL,
		UploadURL:          cfg.UploadURL,
		OAuthURL:           cfg.OAuthURL,
		Timeout:            timeout,
		InsecureSkipVerify: cfg.InsecureSkipVerify,
		UserAgent:          appName + "/" + buildinfo.Version,
		Cache:              respCache,
		Logger:             c.Logger,
	})
	if err != nil {
		release()
		return nil, nil, err
	}
	return client, release, nil
}

// storedSession returns the session saved by "chirp login", or nil.
func (c *CLI) storedSession(ctx context.Context) *session.Session {
	store, err := session.NewCLIStore("", c.profile)
	if err != nil {
		return nil
	}
	sess, err := store.GetSession(ctx)
	if err != nil {
		return nil
	}
	return sess
}

// =============================================================================
// Cache Factory
// =============================================================================

// newCache opens the configured cache backend. The none backend returns a nil
// cache, which disables caching in the client.
func (c *CLI) newCache(ctx context.Context, cc CacheConfig) (*httputil.Cache, func(), error) {
	noop := func() {}

	backend, err := cc.backend()
	if err != nil {
		return nil, nil, err
	}
	if backend == backendNone {
		return nil, noop, nil
	}

	var ttl httputil.TTL
	if cc.TTL != "" {
		if ttl, err = httputil.ParseTTL(cc.TTL); err != nil {
			return nil, nil, err
		}
	}

	var store cache.Store
	switch backend {
	case backendFile:
		dir, err := cacheDir(cc)
		if err != nil {
			return nil, nil, errs.Wrap(errs.ErrCodeInvalidConfig, err, "resolve cache directory")
		}
		if store, err = cache.NewFileStore(dir); err != nil {
			return nil, nil, err
		}
	case backendRedis:
		if cc.RedisAddr == "" {
			return nil, nil, errs.New(errs.ErrCodeInvalidConfig, "cache backend redis needs redis_addr")
		}
		if store, err = cache.NewRedisStore(ctx, cache.RedisConfig{
			Addr:     cc.RedisAddr,
			Password: cc.RedisPassword,
			DB:       cc.RedisDB,
		}); err != nil {
			return nil, nil, err
		}
	case backendMongo:
		if cc.MongoURI == "" {
			return nil, nil, errs.New(errs.ErrCodeInvalidConfig, "cache backend mongo needs mongo_uri")
		}
		if store, err = cache.NewMongoStore(ctx, cache.MongoConfig{
			URI:      cc.MongoURI,
			Database: cc.MongoDatabase,
		}); err != nil {
			return nil, nil, err
		}
	}

	c.Logger.Debug("response cache", "backend", backend, "ttl", ttlString(ttl))
	release := func() {
		if err := store.Close(); err != nil {
			c.Logger.Warn("close cache", "backend", backend, "err", err)
		}
	}
	return httputil.NewCache(store, ttl).WithLogger(c.Logger), release, nil
}

// cacheDir returns the file cache directory: the configured one, or
// $XDG_CACHE_HOME/chirp (~/.cache/chirp).
func cacheDir(cc CacheConfig) (string, error) {
	if cc.Dir != "" {
		return cc.Dir, nil
	}
	return httputil.DefaultDir()
}

func ttlString(ttl httputil.TTL) string {
	if ttl == nil {
		return httputil.DefaultTTL.String()
	}
	return ttl.String()
}
