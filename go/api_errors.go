package storefrontserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Apurer/game-storefront/internal/clients/http/shop"
	cartdomain "github.com/Apurer/game-storefront/internal/domains/cart/domain"
	catalogapp "github.com/Apurer/game-storefront/internal/domains/catalog/application"
	ordersapp "github.com/Apurer/game-storefront/internal/domains/orders/application"
	ordersdomain "github.com/Apurer/game-storefront/internal/domains/orders/domain"
	sessionapp "github.com/Apurer/game-storefront/internal/domains/session/application"
	userapp "github.com/Apurer/game-storefront/internal/domains/users/application"
	apierrors "github.com/Apurer/game-storefront/internal/shared/errors"
)

var responder = apierrors.NewResponder(
	mapValidationError,
	mapNotFoundError,
	mapSessionError,
	mapCheckoutError,
	mapShopError,
)

// respondProblem maps a ProblemDetail through the shared responder.
func respondProblem(c *gin.Context, problem apierrors.ProblemDetail) {
	responder.Respond(c, problem)
}

// respondError answers with the template for status and err as detail.
func respondError(c *gin.Context, status int, err error) {
	if err == nil {
		return
	}
	respondProblem(c, apierrors.ForStatus(status).WithDetail(err.Error()))
}

// respondServiceError answers with the mapped problem. A rejected credential
// also signs the visitor out.
func respondServiceError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	if errors.Is(err, shop.ErrUnauthorized) {
		if v, ok := visitorFrom(c); ok {
			v.Session.Invalidate(c.Request.Context())
		}
	}
	responder.RespondError(c, err)
}

func mapValidationError(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, catalogapp.ErrInvalidInput),
		errors.Is(err, ordersapp.ErrInvalidInput),
		errors.Is(err, userapp.ErrInvalidInput),
		errors.Is(err, sessionapp.ErrInvalidInput):
		return apierrors.ErrValidation.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

func mapNotFoundError(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, catalogapp.ErrGameNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()).WithExtension("resourceType", "game"), true
	case errors.Is(err, ordersapp.ErrOrderNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()).WithExtension("resourceType", "order"), true
	}
	return apierrors.ProblemDetail{}, false
}

func mapSessionError(err error) (apierrors.ProblemDetail, bool) {
	if errors.Is(err, sessionapp.ErrNotSignedIn) || errors.Is(err, ordersapp.ErrNotSignedIn) {
		return apierrors.ErrUnauthorized.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

func mapCheckoutError(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, ordersdomain.ErrEmptyCart):
		return apierrors.ErrUnprocessable.WithDetail(err.Error()), true
	case errors.Is(err, cartdomain.ErrDuplicateItem):
		return apierrors.ErrConflict.WithDetail(err.Error()), true
	case errors.Is(err, cartdomain.ErrItemNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()), true
	case errors.Is(err, cartdomain.ErrInvalidItem):
		return apierrors.ErrValidation.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

// mapShopError forwards what the shop API said. Its 4xx answers keep their
// status; anything else is an upstream failure.
func mapShopError(err error) (apierrors.ProblemDetail, bool) {
	var apiErr *shop.APIError
	if !errors.As(err, &apiErr) {
		return apierrors.ProblemDetail{}, false
	}
	switch {
	case apiErr.Status == http.StatusUnauthorized:
		return apierrors.ErrUnauthorized.WithDetail(apiErr.Message), true
	case apiErr.Status == http.StatusForbidden:
		return apierrors.ErrForbidden.WithDetail(apiErr.Message), true
	case apiErr.Status == http.StatusNotFound:
		return apierrors.ErrNotFound.WithDetail(apiErr.Message), true
	case apiErr.Status == http.StatusConflict:
		return apierrors.ErrConflict.WithDetail(apiErr.Message), true
	case apiErr.Status >= http.StatusBadRequest && apiErr.Status < http.StatusInternalServerError:
		return apierrors.ErrBadRequest.WithDetail(apiErr.Message).WithExtension("upstreamStatus", apiErr.Status), true
	default:
		return apierrors.ErrUpstream.WithDetail(apiErr.Message).WithExtension("upstreamStatus", apiErr.Status), true
	}
}
