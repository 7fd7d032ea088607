package httpx

import (
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	requestIDHeader = "X-Request-Id"
	maxRequestIDLen = 128
)

// RequestIDMiddleware assigns each request an id, reusing the client's
// X-Request-Id when it is short printable ASCII. The id is echoed in the
// response and a logger tagged with it is stored in the context.
func RequestIDMiddleware(log *zap.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get(requestIDHeader)
			if !validRequestID(requestID) {
				if requestID != "" {
					log.Debug("replacing client request id", zap.Int("length", len(requestID)))
				}
				requestID = uuid.New().String()
			}

			w.Header().Set(requestIDHeader, requestID)
			ctx := ContextWithRequestID(r.Context(), requestID)
			ctx = ContextWithLogger(ctx, log.With(zap.String("request_id", requestID)))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLen {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] < 0x21 || id[i] > 0x7e {
			return false
		}
	}
	return true
}
