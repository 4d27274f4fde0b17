package service

import (
	"context"
	"errors"

	"connectrpc.com/connect"

	"github.com/mmynk/gatherings/internal/codec"
	"github.com/mmynk/gatherings/internal/report"
	"github.com/mmynk/gatherings/internal/repository"
)

// toConnectError maps domain errors to Connect status codes.
func toConnectError(err error) *connect.Error {
	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		return connectErr
	}
	return connect.NewError(codeOf(err), err)
}

func codeOf(err error) connect.Code {
	switch {
	case errors.Is(err, repository.ErrNotFound), errors.Is(err, report.ErrNoData):
		return connect.CodeNotFound
	case errors.Is(err, repository.ErrDuplicateID),
		errors.Is(err, repository.ErrDuplicateName),
		errors.Is(err, repository.ErrAlreadyMember):
		return connect.CodeAlreadyExists
	case errors.Is(err, repository.ErrClosed):
		return connect.CodeFailedPrecondition
	case errors.Is(err, repository.ErrInvalidAmount),
		errors.Is(err, repository.ErrInvalidInput),
		errors.Is(err, codec.ErrInvalidFormat),
		errors.Is(err, report.ErrInvalidRange):
		return connect.CodeInvalidArgument
	case errors.Is(err, context.Canceled):
		return connect.CodeCanceled
	case errors.Is(err, context.DeadlineExceeded):
		return connect.CodeDeadlineExceeded
	default:
		return connect.CodeInternal
	}
}
