package middlewares

import (
	"net/http"
	"strconv"
	"time"

	"trendwise/internal/utils"
)

// statusResponseWriter captures the status code written by a handler.
type statusResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusResponseWriter) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}

// PrometheusMiddleware records request counts, durations and in-flight
// gauge for every route.
func PrometheusMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		utils.InFlightRequests.Inc()
		defer utils.InFlightRequests.Dec()

		start := time.Now()
		srw := &statusResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(srw, r)

		status := strconv.Itoa(srw.statusCode)
		path := r.URL.Path
		method := r.Method

		utils.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
		utils.HTTPRequestDurationSeconds.WithLabelValues(method, path, status).Observe(time.Since(start).Seconds())
	})
}
