package oauth1

import "testing"

func TestAuthorizationHeader(t *testing.T) {
	params := map[string]string{
		"oauth_nonce":        "n o",
		"oauth_consumer_key": "ck",
		"oauth_signature":    "a+b/c=",
	}
	want := `OAuth oauth_consumer_key="ck", oauth_nonce="n%20o", oauth_signature="a%2Bb%2Fc%3D"`
	if got := AuthorizationHeader(params); got != want {
		t.Errorf("AuthorizationHeader() =\n%s\nwant\n%s", got, want)
	}
}

func TestParseAuthorizationHeader(t *testing.T) {
	params := map[string]string{
		"oauth_consumer_key": "ck",
		"oauth_nonce":        "n o",
		"oauth_signature":    "a+b/c=",
	}

	got, err := ParseAuthorizationHeader(`OAuth realm="Example", ` + AuthorizationHeader(params)[len("OAuth "):])
	if err != nil {
		t.Fatalf("ParseAuthorizationHeader() error: %v", err)
	}
	if len(got) != len(params) {
		t.Fatalf("got %d params, want %d: %v", len(got), len(params), got)
	}
	for k, v := range params {
		if got[k] != v {
			t.Errorf("%s = %q, want %q", k, got[k], v)
		}
	}
}

func TestParseAuthorizationHeaderErrors(t *testing.T) {
	tests := []string{
		"",
		"Bearer abc",
		`OAuth oauth_nonce`,
		`OAuth oauth_nonce="%zz"`,
	}
	for _, in := range tests {
		if _, err := ParseAuthorizationHeader(in); err == nil {
			t.Errorf("ParseAuthorizationHeader(%q) error = nil, want error", in)
		}
	}
}
