package objectclient

import (
	"fmt"
	"strings"
)

const uriScheme = "s3://"

// IsURI reports whether s names an object as s3://bucket/key.
func IsURI(s string) bool {
	return strings.HasPrefix(s, uriScheme)
}

// ParseURI splits s3://bucket/key. The key may be empty (a bucket root or
// prefix destination) but the bucket may not.
func ParseURI(s string) (bucket, key string, err error) {
	if !IsURI(s) {
		return "", "", fmt.Errorf("not an s3 uri: %q", s)
	}
	rest := strings.TrimPrefix(s, uriScheme)
	bucket, key, _ = strings.Cut(rest, "/")
	if bucket == "" {
		return "", "", fmt.Errorf("s3 uri %q has no bucket", s)
	}
	return bucket, key, nil
}
