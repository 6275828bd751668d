// Package searchparams derives new query strings from the current one, the
// way list pages build their search, filter and pagination links.
package searchparams

import "net/url"

// Params maps a key to its new values. A key whose values are all empty is
// removed from the query.
type Params map[string][]string

// Set replaces the values of every key in params and returns the encoded query.
func Set(current url.Values, params Params) string {
	next := clone(current)

	for key, values := range params {
		next.Del(key)

		for _, v := range values {
			if v != "" {
				next.Add(key, v)
			}
		}
	}

	return next.Encode()
}

// Append adds the values in params after any existing values of the same
// key. A key with no non-empty values is removed instead.
func Append(current url.Values, params Params) string {
	next := clone(current)

	for key, values := range params {
		added := false

		for _, v := range values {
			if v != "" {
				next.Add(key, v)
				added = true
			}
		}

		if !added {
			next.Del(key)
		}
	}

	return next.Encode()
}

// Delete removes keys and returns the encoded query.
func Delete(current url.Values, keys ...string) string {
	next := clone(current)

	for _, key := range keys {
		next.Del(key)
	}

	return next.Encode()
}

// Get returns the first value of key and whether the key is present.
func Get(current url.Values, key string) (string, bool) {
	if !current.Has(key) {
		return "", false
	}

	return current.Get(key), true
}

func clone(v url.Values) url.Values {
	out := make(url.Values, len(v))

	for key, values := range v {
		out[key] = append([]string(nil), values...)
	}

	return out
}
