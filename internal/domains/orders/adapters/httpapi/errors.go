package httpapi

import (
	"errors"

	"github.com/Apurer/go-orders-api/internal/domains/orders/application"
	"github.com/Apurer/go-orders-api/internal/domains/orders/ports"
	apierrors "github.com/Apurer/go-orders-api/internal/shared/errors"
)

// OrderErrorMapper translates the taxonomy surfaced by the orders service
// into RFC 7807 problems. The mapping is total: an id collision is an
// internal id-generation fault, not a client conflict.
func OrderErrorMapper(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, application.ErrInvalidInput):
		return apierrors.ErrValidation.WithDetail(err.Error()), true
	case errors.Is(err, ports.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()), true
	case errors.Is(err, ports.ErrConflict):
		return apierrors.ErrInternal.WithDetail(err.Error()), true
	case errors.Is(err, ports.ErrUnavailable):
		return apierrors.ErrUnavailable.WithDetail(err.Error()), true
	default:
		return apierrors.ProblemDetail{}, false
	}
}
