package oauth1

import "strconv"

// Params maps request parameter names to values. A nil value marks an
// absent parameter: it is dropped before signing and never transmitted.
// Multi-valued parameters are not supported.
type Params map[string]*string

// String returns a pointer to s, for building Params literals.
func String(s string) *string { return &s }

// Set stores a present value under key and returns p for chaining.
func (p Params) Set(key, value string) Params {
	p[key] = &value
	return p
}

// SetInt stores the decimal form of n under key.
func (p Params) SetInt(key string, n int) Params {
	return p.Set(key, strconv.Itoa(n))
}

// SetBool stores "true" or "false" under key.
func (p Params) SetBool(key string, b bool) Params {
	return p.Set(key, strconv.FormatBool(b))
}

// SetNonEmpty stores value under key only if it is not empty.
func (p Params) SetNonEmpty(key, value string) Params {
	if value != "" {
		p[key] = &value
	}
	return p
}

// Values returns the present parameters as a plain map, dropping nil values.
func (p Params) Values() map[string]string {
	out := make(map[string]string, len(p))
	for k, v := range p {
		if v != nil {
			out[k] = *v
		}
	}
	return out
}

// Clone returns a shallow copy of p.
func (p Params) Clone() Params {
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}
