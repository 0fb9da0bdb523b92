package oauth1

import (
	"strings"
	"testing"
)

// rfc5849Params is the example request from RFC 5849 section 1.2.
func rfc5849Params() map[string]string {
	return map[string]string{
		"file":                   "vacation.jpg",
		"size":                   "original",
		"oauth_consumer_key":     "dpf43f3p2l4k3l03",
		"oauth_token":            "nnch734d00sl2jdk",
		"oauth_nonce":            "kllo9940pd9333jh",
		"oauth_timestamp":        "1191242096",
		"oauth_signature_method": "HMAC-SHA1",
		"oauth_version":          "1.0",
	}
}

func statusUpdateParams() map[string]string {
	return map[string]string{
		"status":                 "Hello Ladies + Gentlemen, a signed OAuth request!",
		"oauth_consumer_key":     "xvz1evFS4wEEPTGEFPHBog",
		"oauth_nonce":            "kYjzVBB8Y0ZFabxSWbWovY3uYSQ2pTgmZeNu2VS4cg",
		"oauth_signature_method": "HMAC-SHA1",
		"oauth_timestamp":        "1318622958",
		"oauth_token":            "370773112-GmHxMAgYyLbNEtIKZeRNFsMKPR9EyMZeS9weJAEb",
		"oauth_version":          "1.0",
	}
}

const (
	statusConsumerSecret = "kAcSOqF21Fu85e7zjz7ZN2U4ZRhfV3WpwPAoE3Z7kBw"
	statusTokenSecret    = "LswwdoUaIvS8ltyTt5jkRh4J50vUPVVHtR2oy1NsmeM"
)

func TestSignRFC5849(t *testing.T) {
	params := rfc5849Params()

	wantBase := "GET&http%3A%2F%2Fphotos.example.net%2Fphotos&file%3Dvacation.jpg%26oauth_consumer_key%3Ddpf43f3p2l4k3l03%26oauth_nonce%3Dkllo9940pd9333jh%26oauth_signature_method%3DHMAC-SHA1%26oauth_timestamp%3D1191242096%26oauth_token%3Dnnch734d00sl2jdk%26oauth_version%3D1.0%26size%3Doriginal"
	if got := BaseString("GET", "http://photos.example.net/photos", params); got != wantBase {
		t.Errorf("BaseString() =\n%s\nwant\n%s", got, wantBase)
	}

	got := Sign("GET", "http://photos.example.net/photos", params, "kd94hf93k423kf44", "pfkkdhi9sl3r4s00")
	if want := "tR3+Ty81lMeYAr/Fid0kMTYa/WM="; got != want {
		t.Errorf("Sign() = %q, want %q", got, want)
	}
}

func TestSignStatusUpdate(t *testing.T) {
	params := statusUpdateParams()
	url := "https://api.example.com/1.1/statuses/update.json"

	wantBase := "POST&https%3A%2F%2Fapi.example.com%2F1.1%2Fstatuses%2Fupdate.json&oauth_consumer_key%3Dxvz1evFS4wEEPTGEFPHBog%26oauth_nonce%3DkYjzVBB8Y0ZFabxSWbWovY3uYSQ2pTgmZeNu2VS4cg%26oauth_signature_method%3DHMAC-SHA1%26oauth_timestamp%3D1318622958%26oauth_token%3D370773112-GmHxMAgYyLbNEtIKZeRNFsMKPR9EyMZeS9weJAEb%26oauth_version%3D1.0%26status%3DHello%2520Ladies%2520%252B%2520Gentlemen%252C%2520a%2520signed%2520OAuth%2520request%2521"
	if got := BaseString("post", url, params); got != wantBase {
		t.Errorf("BaseString() =\n%s\nwant\n%s", got, wantBase)
	}

	got := Sign("POST", url, params, statusConsumerSecret, statusTokenSecret)
	if want := "wNYEZFZo9aKVn+a63sKfo2dfolM="; got != want {
		t.Errorf("Sign() = %q, want %q", got, want)
	}
}

func TestSignDeterministic(t *testing.T) {
	params := statusUpdateParams()
	a := Sign("POST", "https://api.example.com/x", params, "cs", "ts")
	b := Sign("POST", "https://api.example.com/x", params, "cs", "ts")
	if a != b {
		t.Errorf("Sign() not deterministic: %q != %q", a, b)
	}
}

func TestSignIgnoresSignatureParam(t *testing.T) {
	params := statusUpdateParams()
	want := Sign("POST", "https://api.example.com/x", params, "cs", "ts")

	params[ParamSignature] = "bogus"
	if got := Sign("POST", "https://api.example.com/x", params, "cs", "ts"); got != want {
		t.Errorf("Sign() with oauth_signature = %q, want %q", got, want)
	}
}

func TestSignIgnoresQueryAndFragment(t *testing.T) {
	params := map[string]string{"a": "1"}
	bare := Sign("GET", "https://api.example.com/x", params, "cs", "")
	withQuery := Sign("GET", "https://api.example.com/x?ignored=1#frag", params, "cs", "")
	if bare != withQuery {
		t.Errorf("query/fragment changed signature: %q != %q", bare, withQuery)
	}
}

func TestSigningKey(t *testing.T) {
	tests := []struct {
		cs, ts, want string
	}{
		{"kd94hf93k423kf44", "pfkkdhi9sl3r4s00", "kd94hf93k423kf44&pfkkdhi9sl3r4s00"},
		{"secret", "", "secret&"},
		{"a b", "c&d", "a%20b&c%26d"},
	}
	for _, tt := range tests {
		if got := SigningKey(tt.cs, tt.ts); got != tt.want {
			t.Errorf("SigningKey(%q, %q) = %q, want %q", tt.cs, tt.ts, got, tt.want)
		}
	}
}

func TestNormalizeParamsOrdering(t *testing.T) {
	params := map[string]string{
		"b":   "2",
		"a":   "1",
		"a_b": "x",
		"a-b": "x",
		"a.b": "x",
		"a~b": "x",
		"A":   "upper",
		"a b": "space",
		"a1":  "digit",
	}

	// Encoded byte order: '%' < '-' < '.' < '0'-'9' < 'A'-'Z' < '_' < 'a'-'z' < '~'.
	want := "A=upper&a=1&a%20b=space&a-b=x&a.b=x&a1=digit&a_b=x&a~b=x&b=2"
	if got := NormalizeParams(params); got != want {
		t.Errorf("NormalizeParams() =\n%s\nwant\n%s", got, want)
	}
}

func TestJoinPairsValueTieBreak(t *testing.T) {
	pairs := []pair{
		{"c", "hi%20there"},
		{"a", "3"},
		{"a", "1"},
		{"f", "50"},
		{"a", "2"},
		{"f", "25"},
	}
	want := "a=1&a=2&a=3&c=hi%20there&f=25&f=50"
	if got := joinPairs(pairs); got != want {
		t.Errorf("joinPairs() = %q, want %q", got, want)
	}
}

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"https://api.example.com/1.1/statuses/update.json", "https://api.example.com/1.1/statuses/update.json"},
		{"HTTPS://API.Example.com/1.1/x.json?a=1#top", "https://api.example.com/1.1/x.json"},
		{"http://example.com:80/r", "http://example.com/r"},
		{"https://example.com:443/r", "https://example.com/r"},
		{"http://example.com:8080/r", "http://example.com:8080/r"},
		{"not a url?x=1", "not a url"},
	}
	for _, tt := range tests {
		if got := NormalizeURL(tt.in); got != tt.want {
			t.Errorf("NormalizeURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestVerify(t *testing.T) {
	params := rfc5849Params()
	url := "http://photos.example.net/photos"

	if Verify("GET", url, params, "kd94hf93k423kf44", "pfkkdhi9sl3r4s00") {
		t.Error("Verify() without oauth_signature = true, want false")
	}

	params[ParamSignature] = "tR3+Ty81lMeYAr/Fid0kMTYa/WM="
	if !Verify("GET", url, params, "kd94hf93k423kf44", "pfkkdhi9sl3r4s00") {
		t.Error("Verify() = false for a valid signature")
	}
	if Verify("GET", url, params, "kd94hf93k423kf44", "wrong") {
		t.Error("Verify() = true with the wrong token secret")
	}

	params["size"] = "small"
	if Verify("GET", url, params, "kd94hf93k423kf44", "pfkkdhi9sl3r4s00") {
		t.Error("Verify() = true after tampering with a parameter")
	}
}

func TestBaseStringUppercasesMethod(t *testing.T) {
	got := BaseString("get", "https://example.com/", nil)
	if !strings.HasPrefix(got, "GET&") {
		t.Errorf("BaseString() = %q, want GET prefix", got)
	}
}
