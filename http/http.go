package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/mono83/slf"
	"github.com/mono83/slf/wd"
)

type Emitter interface {
	Emit(name string, args ...interface{})
}

// StartServer runs the server until ctx is canceled and then gives the
// in-flight requests three seconds to finish.
func StartServer(ctx context.Context, server *http.Server, logger slf.Logger) {
	srvErr := make(chan error, 1)
	go func() {
		logger.Info("Starting the server, HTTP on: :addr", wd.StringParam("addr", server.Addr))
		srvErr <- server.ListenAndServe()
		close(srvErr)
	}()

	select {
	case err := <-srvErr:
		logger.Emergency("Error in the server: :err", wd.ErrParam(err))
	case <-ctx.Done():
		logger.Info("Got stop signal, starting graceful shutdown")

		stopCtx, cancelFunc := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancelFunc()

		_ = server.Shutdown(stopCtx)

		logger.Info("Graceful shutdown succeed, exiting")
	}
}

// CreateRequestEventsMiddleware emits an event before and after each
// request so that the loggers and the stats reporters can observe the
// traffic without being wired into the handlers.
func CreateRequestEventsMiddleware(emitter Emitter, prefix string) mux.MiddlewareFunc {
	beforeTopic := strings.Join([]string{prefix, "before_request"}, ":")
	afterTopic := strings.Join([]string{prefix, "after_request"}, ":")

	return func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(response http.ResponseWriter, request *http.Request) {
			emitter.Emit(beforeTopic, request)

			writer := &statusCapturingResponseWriter{ResponseWriter: response, status: http.StatusOK}
			handler.ServeHTTP(writer, request)

			emitter.Emit(afterTopic, request, writer.status)
		})
	}
}

type statusCapturingResponseWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusCapturingResponseWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func NotFoundHandler(response http.ResponseWriter, _ *http.Request) {
	data, _ := json.Marshal(map[string]string{
		"status":  "404",
		"message": "Not Found",
	})

	response.Header().Set("Content-Type", "application/json")
	response.WriteHeader(http.StatusNotFound)
	_, _ = response.Write(data)
}

func apiBadRequest(response http.ResponseWriter, errorsPerField map[string][]string) {
	result, _ := json.Marshal(map[string]interface{}{
		"errors": errorsPerField,
	})

	response.Header().Set("Content-Type", "application/json")
	response.WriteHeader(http.StatusBadRequest)
	_, _ = response.Write(result)
}

func apiNotFound(response http.ResponseWriter, reason string) {
	result, _ := json.Marshal(map[string]interface{}{
		"error": reason,
	})

	response.Header().Set("Content-Type", "application/json")
	response.WriteHeader(http.StatusNotFound)
	_, _ = response.Write(result)
}

func apiUpstreamError(response http.ResponseWriter) {
	response.Header().Set("Content-Type", "text/plain")
	response.WriteHeader(http.StatusBadGateway)
	_, _ = response.Write([]byte("Unable to obtain the skin from the Mojang api"))
}

func parsePlayerName(name string) string {
	return strings.TrimSuffix(name, ".png")
}
