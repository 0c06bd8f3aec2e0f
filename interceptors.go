package hermod

import (
	"context"

	log "github.com/monzo/slog"
)

// LogRequests vends a pass-through request interceptor that logs each dispatch. Compose it after
// interceptors whose effects should be visible in the log, and before those whose shouldn't.
func LogRequests() RequestInterceptor {
	return RequestInterceptorFunc(func(ctx context.Context, payload interface{}, ep *Endpoint) (interface{}, error) {
		log.Debug(ctx, "Dispatching %v", ep)
		return payload, nil
	})
}

// LogResponses vends a pass-through response interceptor that logs each receipt.
func LogResponses() ResponseInterceptor {
	return ResponseInterceptorFunc(func(ctx context.Context, payload interface{}, ep *Endpoint) (interface{}, error) {
		log.Debug(ctx, "Received response for %v", ep)
		return payload, nil
	})
}
