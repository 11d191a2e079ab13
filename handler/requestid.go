package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// RequestIDHeader carries the id assigned to each request.
const RequestIDHeader = "X-Request-Id"

// RequestID tags the response with a new random request id and logs the
// request once it completes.
func (c *Client) RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		id := uuid.NewString()
		rw.Header().Set(RequestIDHeader, id)
		start := time.Now()
		next.ServeHTTP(rw, req)
		c.log.WithFields(log.Fields{
			"request_id": id,
			"method":     req.Method,
			"path":       req.URL.Path,
			"duration":   time.Since(start).String(),
		}).Info("request served")
	})
}
