package response

import (
	"net/http"

	appctx "github.com/shopit/account-service/internal/pkg/context"
)

// RequestIDFromContext extracts the request id the middleware injected, if any.
func RequestIDFromContext(r *http.Request) string {
	return appctx.GetRequestID(r.Context())
}
