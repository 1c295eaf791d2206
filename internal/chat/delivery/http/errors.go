package http

import (
	"errors"
	"net/http"

	"ecomart-chatbot/internal/chat"
	pkgErrors "ecomart-chatbot/pkg/errors"
	"ecomart-chatbot/pkg/response"
)

var (
	errInvalidBody     = pkgErrors.NewHTTPError(http.StatusBadRequest, "invalid request body")
	errEmptyQuestion   = pkgErrors.NewHTTPError(http.StatusBadRequest, "pergunta is required")
	errMissingSession  = pkgErrors.NewHTTPError(http.StatusBadRequest, "session id is required")
	errGatewayFailure  = pkgErrors.NewHTTPError(http.StatusBadGateway, "language model service unavailable")
	errInternalFailure = pkgErrors.NewHTTPError(http.StatusInternalServerError, response.DefaultErrorMessage)
)

// mapError translates use-case errors into HTTP errors from pkg/errors.
func (h *handler) mapError(err error) error {
	var httpErr *pkgErrors.HTTPError
	switch {
	case errors.As(err, &httpErr):
		return httpErr
	case errors.Is(err, chat.ErrEmptyQuestion):
		return errEmptyQuestion
	case errors.Is(err, chat.ErrMissingSession):
		return errMissingSession
	case chat.KindOf(err) == chat.KindGateway:
		return errGatewayFailure
	default:
		return errInternalFailure
	}
}
