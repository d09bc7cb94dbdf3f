package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/vahanbazar/vahanbazar-backend/api/responses"
	pkgerrors "github.com/vahanbazar/vahanbazar-backend/pkg/errors"
	"github.com/vahanbazar/vahanbazar-backend/pkg/logger"
)

const purchaserIDHeader = "X-Purchaser-Id"

// PurchaserContext requires a purchaser identity header on every request and
// makes it available to downstream handlers. Identity is taken on trust from
// the gateway in front of this service.
func PurchaserContext(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get(purchaserIDHeader))
			if raw == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "X-Purchaser-Id header required"))
				return
			}
			purchaserID, err := uuid.Parse(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid purchaser id"))
				return
			}

			ctx := WithPurchaserID(r.Context(), purchaserID.String())
			if logg != nil {
				ctx = logg.WithPurchaserID(ctx, purchaserID.String())
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
