package storage

import (
	"errors"
	"strings"

	"github.com/minio/minio-go/v7"
)

// missingObjectCodes are the S3 error codes meaning the key does not exist.
var missingObjectCodes = map[string]struct{}{
	"nosuchkey": {},
	"notfound":  {},
}

// IsNoSuchKey reports whether err means the object does not exist.
func IsNoSuchKey(err error) bool {
	if err == nil {
		return false
	}

	var resp minio.ErrorResponse
	if errors.As(err, &resp) {
		code := strings.ToLower(strings.TrimSpace(resp.Code))
		if _, ok := missingObjectCodes[code]; ok {
			return true
		}
	}

	// Some gateways wrap the error as a plain string.
	lower := strings.ToLower(err.Error())
	return strings.Contains(lower, "nosuchkey") ||
		strings.Contains(lower, "specified key does not exist") ||
		strings.Contains(lower, "not found")
}
