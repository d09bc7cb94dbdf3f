package middleware

import "context"

type contextKey string

const ctxPurchaserID contextKey = "purchaser_id"

func PurchaserIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxPurchaserID).(string); ok {
		return v
	}
	return ""
}

// WithPurchaserID injects the purchaser identifier into the context.
func WithPurchaserID(ctx context.Context, purchaserID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxPurchaserID, purchaserID)
}
