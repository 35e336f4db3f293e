package render

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
)

type wrapResponse struct {
	status int
	header http.Header
	buf    *bytes.Buffer
}

func (w *wrapResponse) Header() http.Header {
	return w.header
}

func (w *wrapResponse) WriteHeader(statusCode int) {
	w.status = statusCode
}

func (w *wrapResponse) Write(data []byte) (int, error) {
	return w.buf.Write(data)
}

func (w *wrapResponse) isJSONContent() bool {
	typ := w.header.Get("Content-Type")
	return strings.HasPrefix(typ, "application/json")
}

type dataResponse struct {
	Data json.RawMessage `json:"data,omitempty"`
}

// WrapResponse buffer the handler output and, when wrapData is set, wrap
// successful json bodies into a {"data": ...} envelope. Error bodies pass
// through unchanged.
func WrapResponse(wrapData bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			wrap := &wrapResponse{
				status: http.StatusOK,
				header: w.Header(),
				buf:    &bytes.Buffer{},
			}

			next.ServeHTTP(wrap, r)

			body := wrap.buf.Bytes()
			if wrapData && wrap.status < http.StatusBadRequest && wrap.isJSONContent() {
				out, err := json.Marshal(dataResponse{Data: body})
				if err == nil {
					body = append(out, '\n')
				}
			}

			wrap.header.Set("Content-Length", strconv.Itoa(len(body)))
			w.WriteHeader(wrap.status)
			_, _ = w.Write(body)
		}

		return http.HandlerFunc(fn)
	}
}
