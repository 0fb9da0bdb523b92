package oauth1

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// AuthorizationHeader renders params as an "OAuth" Authorization header value.
// Keys are sorted and values are percent-encoded and quoted.
func AuthorizationHeader(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("OAuth ")
	for i, k := range keys {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(PercentEncode(k))
		b.WriteString(`="`)
		b.WriteString(PercentEncode(params[k]))
		b.WriteByte('"')
	}
	return b.String()
}

// ParseAuthorizationHeader decodes an "OAuth" Authorization header value into
// its parameters. The realm parameter is discarded.
func ParseAuthorizationHeader(header string) (map[string]string, error) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(header), "OAuth ")
	if !ok {
		return nil, fmt.Errorf("not an OAuth authorization header")
	}

	params := make(map[string]string)
	for _, part := range strings.Split(rest, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		k, v, ok := strings.Cut(part, "=")
		if !ok {
			return nil, fmt.Errorf("malformed parameter %q", part)
		}
		v = strings.TrimSuffix(strings.TrimPrefix(v, `"`), `"`)

		key, err := url.PathUnescape(k)
		if err != nil {
			return nil, fmt.Errorf("decode key %q: %w", k, err)
		}
		value, err := url.PathUnescape(v)
		if err != nil {
			return nil, fmt.Errorf("decode value of %q: %w", key, err)
		}
		if key == "realm" {
			continue
		}
		params[key] = value
	}
	return params, nil
}
