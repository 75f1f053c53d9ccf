package grpc

import (
	"context"
	"errors"
	"sort"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/infixtech/ixtportal/internal/common"
	"github.com/infixtech/ixtportal/internal/server/validation"
)

// toStatus maps service errors onto gRPC status codes. Anything unexpected
// is logged and reported as Internal without details.
func (s *GRPCServer) toStatus(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, common.ErrAllocationExhausted):
		return status.Error(codes.ResourceExhausted, common.ErrAllocationExhausted.Error())
	case errors.Is(err, common.ErrStoreUnavailable):
		s.logger.Error(ctx, "account store unavailable", "error", err)
		return status.Error(codes.Unavailable, common.ErrStoreUnavailable.Error())
	case errors.Is(err, common.ErrRefreshTokenExpired):
		return status.Error(codes.Unauthenticated, common.ErrRefreshTokenExpired.Error())
	case errors.Is(err, common.ErrorUnauthorized):
		return status.Error(codes.Unauthenticated, "unauthorized")
	case errors.Is(err, common.ErrAccountInactive):
		return status.Error(codes.PermissionDenied, common.ErrAccountInactive.Error())
	case errors.Is(err, common.ErrPermissionDenied):
		return status.Error(codes.PermissionDenied, err.Error())
	case errors.Is(err, common.ErrValidation):
		return validationStatus(err)
	case errors.Is(err, common.ErrInvalidRole), errors.Is(err, common.ErrMalformedIdentifier):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, common.ErrEmailTaken):
		return status.Error(codes.AlreadyExists, common.ErrEmailTaken.Error())
	case errors.Is(err, common.ErrorNotFound):
		return status.Error(codes.NotFound, "not found")
	}

	if !errors.Is(err, common.ErrorInternal) {
		s.logger.Error(ctx, "unmapped service error", "error", err)
	}
	return status.Error(codes.Internal, "internal error")
}

// validationStatus attaches per-field violations as a BadRequest detail.
func validationStatus(err error) error {
	st := status.New(codes.InvalidArgument, err.Error())

	var verr *validation.Error
	if !errors.As(err, &verr) {
		return st.Err()
	}

	fields := make([]string, 0, len(verr.Fields))
	for f := range verr.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	br := &errdetails.BadRequest{}
	for _, f := range fields {
		br.FieldViolations = append(br.FieldViolations, &errdetails.BadRequest_FieldViolation{
			Field:       f,
			Description: verr.Fields[f],
		})
	}

	withDetails, detErr := st.WithDetails(br)
	if detErr != nil {
		return st.Err()
	}
	return withDetails.Err()
}
