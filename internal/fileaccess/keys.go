package fileaccess

import (
	"net/url"
	"path"
	"strings"
)

// KeyNormalizer maps any accepted storage locator to a canonical key so
// ownership and lookup comparisons are independent of how the object was
// referenced. Accepted forms:
//
//	s3://bucket/users/a1/documents/cv.pdf      (protocol-prefixed)
//	https://bucket.host/users/a1/documents/cv.pdf?X-Sig=...  (virtual-host URL)
//	https://host/bucket/users/a1/documents/cv.pdf             (path-style URL)
//	users/a1/documents/cv.pdf                  (bare key)
//
// All of them normalize to "users/a1/documents/cv.pdf".
type KeyNormalizer struct {
	bucket string
}

func NewKeyNormalizer(bucket string) *KeyNormalizer {
	return &KeyNormalizer{bucket: bucket}
}

// Normalize returns the canonical key for the locator. ok is false when
// the locator is malformed; callers must treat that as an invalid request,
// never as an allow.
func (n *KeyNormalizer) Normalize(locator string) (key string, ok bool) {
	locator = strings.TrimSpace(locator)
	if locator == "" {
		return "", false
	}

	if i := strings.Index(locator, "://"); i >= 0 {
		scheme := locator[:i]
		switch scheme {
		case "http", "https":
			return n.normalizeURL(locator)
		default:
			// scheme://bucket/path: drop scheme and bucket segment
			rest := locator[i+3:]
			bucket, keyPart, found := strings.Cut(rest, "/")
			if !found || bucket == "" {
				return "", false
			}
			return cleanKey(keyPart)
		}
	}

	return cleanKey(locator)
}

func (n *KeyNormalizer) normalizeURL(locator string) (string, bool) {
	u, err := url.Parse(locator)
	if err != nil || u.Host == "" {
		return "", false
	}
	p := strings.TrimPrefix(u.Path, "/")

	// Path-style addressing carries the bucket as the first segment.
	if n.bucket != "" && !strings.HasPrefix(u.Host, n.bucket+".") {
		if first, rest, found := strings.Cut(p, "/"); found && first == n.bucket {
			p = rest
		}
	}
	return cleanKey(p)
}

func cleanKey(p string) (string, bool) {
	p = strings.TrimPrefix(p, "/")
	if p == "" {
		return "", false
	}
	cleaned := path.Clean(p)
	// Reject traversal and anything that cleans away to nothing.
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", false
	}
	return cleaned, true
}
