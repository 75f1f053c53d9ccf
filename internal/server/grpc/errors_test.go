package grpc

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/infixtech/ixtportal/internal/common"
)

func TestToStatus(t *testing.T) {
	s := newTestServer("secret")

	tests := []struct {
		name string
		err  error
		want codes.Code
	}{
		{"exhausted", common.ErrAllocationExhausted, codes.ResourceExhausted},
		{"store unavailable", fmt.Errorf("%w: %w", common.ErrStoreUnavailable, context.DeadlineExceeded), codes.Unavailable},
		{"refresh expired", common.ErrRefreshTokenExpired, codes.Unauthenticated},
		{"unauthorized", common.ErrorUnauthorized, codes.Unauthenticated},
		{"inactive", common.ErrAccountInactive, codes.PermissionDenied},
		{"denied", common.ErrPermissionDenied, codes.PermissionDenied},
		{"bare validation", common.ErrValidation, codes.InvalidArgument},
		{"invalid role", fmt.Errorf("%w: %q", common.ErrInvalidRole, "x"), codes.InvalidArgument},
		{"malformed id", common.ErrMalformedIdentifier, codes.InvalidArgument},
		{"email taken", common.ErrEmailTaken, codes.AlreadyExists},
		{"not found", common.ErrorNotFound, codes.NotFound},
		{"internal", common.ErrorInternal, codes.Internal},
		{"unknown", errors.New("boom"), codes.Internal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.toStatus(context.Background(), tt.err)
			if status.Code(got) != tt.want {
				t.Fatalf("toStatus(%v) = %v, want %v", tt.err, status.Code(got), tt.want)
			}
		})
	}
}

func TestToStatus_HidesInternalDetail(t *testing.T) {
	s := newTestServer("secret")

	got := s.toStatus(context.Background(), errors.New("pq: password authentication failed"))
	if msg := status.Convert(got).Message(); msg != "internal error" {
		t.Fatalf("unexpected message %q", msg)
	}
}
