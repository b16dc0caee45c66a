// internal/errors/mapper.go
package errors

import (
	"context"
	"errors"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"gorm.io/gorm"

	"github.com/oggyb/campus-match/internal/domain"
	"github.com/oggyb/campus-match/internal/utils/pagination"
)

// Map converts domain/repo/infra errors into gRPC-friendly status errors.
// Keeps service layer clean by centralizing error mapping.
func Map(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}

	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		return Validation(ve)

	case errors.Is(err, domain.ErrNotRegistered):
		return status.Error(codes.FailedPrecondition, "complete registration with interests before matching")

	case errors.Is(err, domain.ErrNoPendingCandidate):
		return status.Error(codes.FailedPrecondition, "candidate is no longer pending, request the next candidate")

	case errors.Is(err, domain.ErrCandidateNotShown):
		return status.Error(codes.FailedPrecondition, "candidate was not presented to you")

	case errors.Is(err, domain.ErrUnknownAction):
		return status.Error(codes.InvalidArgument, err.Error())

	case errors.Is(err, pagination.ErrInvalidToken):
		return status.Error(codes.InvalidArgument, "invalid pagination token")

	case errors.Is(err, domain.ErrMemberNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		return status.Error(codes.NotFound, "member not found")

	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, "request timed out")

	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, "request was canceled")

	default:
		// fallback → bubble up error message for debugging
		return status.Error(codes.Internal, err.Error())
	}
}

// Validation builds an InvalidArgument status carrying a BadRequest field
// violation, so front-ends can re-prompt the offending field.
func Validation(ve *domain.ValidationError) error {
	st := status.New(codes.InvalidArgument, ve.Error())
	detailed, err := st.WithDetails(&errdetails.BadRequest{
		FieldViolations: []*errdetails.BadRequest_FieldViolation{
			{Field: ve.Field, Description: ve.Reason},
		},
	})
	if err != nil {
		return st.Err()
	}
	return detailed.Err()
}

// InvalidArgument creates a gRPC InvalidArgument error.
// Use this in service layer for bad input validation.
func InvalidArgument(msg string) error {
	return status.Error(codes.InvalidArgument, msg)
}
