package oauth1

// Credentials holds the consumer key pair and an optional access token pair.
// The zero value has no consumer key. Credentials are immutable; copy freely.
type Credentials struct {
	consumerKey    string
	consumerSecret string
	token          string
	tokenSecret    string
}

// NewCredentials returns credentials for the given consumer and token pairs.
// token and tokenSecret may be empty for requests made before a user has
// authorized the application.
func NewCredentials(consumerKey, consumerSecret, token, tokenSecret string) Credentials {
	return Credentials{
		consumerKey:    consumerKey,
		consumerSecret: consumerSecret,
		token:          token,
		tokenSecret:    tokenSecret,
	}
}

func (c Credentials) ConsumerKey() string    { return c.consumerKey }
func (c Credentials) ConsumerSecret() string { return c.consumerSecret }
func (c Credentials) Token() string          { return c.token }
func (c Credentials) TokenSecret() string    { return c.tokenSecret }

// HasToken reports whether an access or request token is set.
func (c Credentials) HasToken() bool { return c.token != "" }

// WithToken returns a copy of c carrying the given token pair.
func (c Credentials) WithToken(token, tokenSecret string) Credentials {
	c.token = token
	c.tokenSecret = tokenSecret
	return c
}

// Identity returns a string that identifies the credentials without
// revealing either secret. It is stable across processes.
func (c Credentials) Identity() string {
	return c.consumerKey + ":" + c.token
}
