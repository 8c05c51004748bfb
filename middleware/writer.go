package middleware

import (
	"bufio"
	"errors"
	"net"
	"net/http"
)

// statusRecorder captures status and size of a rendered response.
type statusRecorder struct {
	http.ResponseWriter
	status int
	size   int
	wrote  bool
}

func newStatusRecorder(w http.ResponseWriter) *statusRecorder {
	return &statusRecorder{ResponseWriter: w, status: http.StatusOK}
}

func (rw *statusRecorder) WriteHeader(status int) {
	if !rw.wrote {
		rw.status = status
		rw.wrote = true
	}
	rw.ResponseWriter.WriteHeader(status)
}

func (rw *statusRecorder) Write(b []byte) (int, error) {
	if !rw.wrote {
		rw.WriteHeader(http.StatusOK)
	}
	n, err := rw.ResponseWriter.Write(b)
	rw.size += n
	return n, err
}

// Written lets error handlers see that the response has started.
func (rw *statusRecorder) Written() bool {
	return rw.wrote
}

// Flush forwards to the underlying writer when it can flush.
func (rw *statusRecorder) Flush() {
	if !rw.wrote {
		rw.WriteHeader(http.StatusOK)
	}
	_ = http.NewResponseController(rw.ResponseWriter).Flush()
}

// Hijack records a protocol switch and passes the connection on.
func (rw *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	conn, brw, err := http.NewResponseController(rw.ResponseWriter).Hijack()
	if err == nil && !rw.wrote {
		rw.status = http.StatusSwitchingProtocols
		rw.wrote = true
	}
	return conn, brw, err
}

// Unwrap exposes the underlying writer to http.ResponseController.
func (rw *statusRecorder) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

type statusCoder interface {
	StatusCode() int
}

// finalStatus is the status the client sees: what was written, or, when the
// render failed before writing, what the error handler will answer with.
func (rw *statusRecorder) finalStatus(err error) int {
	if rw.wrote || err == nil {
		return rw.status
	}
	var sc statusCoder
	if errors.As(err, &sc) {
		return sc.StatusCode()
	}
	return http.StatusInternalServerError
}
