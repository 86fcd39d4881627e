package middleware

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"
)

const (
	apiPrefix  = "/api"
	maxLogLine = 80
	// enough bytes for maxLogLine runes of body whatever their encoding
	maxCapture = maxLogLine * utf8.UTFMax
)

// recorder remembers the status and, when keepBody is set and the response
// is JSON, the first maxCapture bytes of the body.
type recorder struct {
	http.ResponseWriter
	status   int
	keepBody bool
	capture  bool
	body     bytes.Buffer
}

func (rec *recorder) WriteHeader(code int) {
	if rec.status == 0 {
		rec.status = code
		rec.capture = rec.keepBody && strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json")
	}
	rec.ResponseWriter.WriteHeader(code)
}

func (rec *recorder) Write(b []byte) (int, error) {
	if rec.status == 0 {
		rec.WriteHeader(http.StatusOK)
	}
	if rec.capture {
		if room := maxCapture - rec.body.Len(); room > 0 {
			rec.body.Write(b[:min(room, len(b))])
		}
	}
	return rec.ResponseWriter.Write(b)
}

func (rec *recorder) Unwrap() http.ResponseWriter {
	return rec.ResponseWriter
}

// Logger logs one line per request under /api once the handler returns. It
// only observes the response.
func Logger(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := r.URL.Path
			if !strings.HasPrefix(path, apiPrefix) {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			rec := &recorder{ResponseWriter: w, keepBody: true}
			defer func() {
				status := rec.status
				if status == 0 {
					status = http.StatusOK
				}
				d := time.Since(start)
				log.Info().
					Str("method", r.Method).
					Str("path", path).
					Int("status", status).
					Dur("duration", d).
					Str("request_id", RequestIDFrom(r.Context())).
					Msg(FormatLine(r.Method, path, status, d, bytes.TrimSpace(rec.body.Bytes())))
			}()
			next.ServeHTTP(rec, r)
		})
	}
}

// FormatLine renders "METHOD path status in Nms :: body", cut to 80
// characters with a trailing ellipsis.
func FormatLine(method, path string, status int, d time.Duration, body []byte) string {
	line := fmt.Sprintf("%s %s %d in %dms", method, path, status, d.Milliseconds())
	if len(body) > 0 {
		line += " :: " + string(body)
	}
	if utf8.RuneCountInString(line) > maxLogLine {
		line = string([]rune(line)[:maxLogLine-1]) + "…"
	}
	return line
}
