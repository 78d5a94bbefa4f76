// internal/adapters/out/firestore/common.go
package firestore

import (
	"fmt"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"storefront/internal/domain/common"
)

// versionToken encodes a document UpdateTime as the opaque concurrency token
// handed to callers. 読み取りで返し、更新で要求する。
func versionToken(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// parseVersionToken decodes a token back to the UpdateTime precondition.
// An empty or garbled token is a validation error, never a blind write.
func parseVersionToken(tok string) (time.Time, error) {
	if tok == "" {
		return time.Time{}, fmt.Errorf("%w: version token is empty", common.ErrValidation)
	}
	t, err := time.Parse(time.RFC3339Nano, tok)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: bad version token %q", common.ErrValidation, tok)
	}
	return t, nil
}

// mapStorageErr folds Firestore gRPC statuses into the shared taxonomy.
func mapStorageErr(err error) error {
	if err == nil {
		return nil
	}
	switch status.Code(err) {
	case codes.NotFound:
		return fmt.Errorf("%w: %v", common.ErrNotFound, err)
	case codes.AlreadyExists:
		return fmt.Errorf("%w: %v", common.ErrConflict, err)
	case codes.FailedPrecondition, codes.Aborted:
		return fmt.Errorf("%w: %v", common.ErrConflict, err)
	case codes.Unavailable, codes.DeadlineExceeded, codes.Unauthenticated, codes.PermissionDenied, codes.ResourceExhausted:
		return fmt.Errorf("%w: %v", common.ErrStorageUnavailable, err)
	default:
		return err
	}
}
