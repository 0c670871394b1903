package server

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/cileamzh/cileamzh-web/request"
	"github.com/cileamzh/cileamzh-web/response"
	"github.com/cileamzh/cileamzh-web/router"
)

// LoggingMiddleware logs every parsed request before any routing.
func LoggingMiddleware(logger Logger) router.Handler {
	return func(req *request.Request, res *response.Response) {
		logger.Info("request",
			Field{"method", req.Method},
			Field{"path", req.Path},
			Field{"query", req.Query},
		)
	}
}

// RequestIDMiddleware stamps each response with a fresh X-Request-ID.
// A later middleware or handler setting the same key wins.
func RequestIDMiddleware() router.Handler {
	return func(req *request.Request, res *response.Response) {
		res.SetHeader("X-Request-ID", newRequestID())
	}
}

// ServerHeaderMiddleware stamps each response with a Server header.
func ServerHeaderMiddleware(name string) router.Handler {
	return func(req *request.Request, res *response.Response) {
		res.SetHeader("Server", name)
	}
}

// newRequestID returns 16 hex characters of randomness, or all zeros
// when the random source fails.
func newRequestID() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return "0000000000000000"
	}
	return hex.EncodeToString(b)
}
