package httpx

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/tschuyebuhl/soundex/phonetic"
)

// Middleware wraps a handler.
type Middleware func(http.Handler) http.Handler

// Chain applies middlewares so that the first one runs outermost.
func Chain(h http.Handler, mws ...Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

type SoundexResponse struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

type SoundexOption func(*SoundexHandler)

func WithSoundexLogger(logger *slog.Logger) SoundexOption {
	return func(h *SoundexHandler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// SoundexHandler answers GET ?name=<name> with the name's code.
// An empty or missing name gets an empty code.
type SoundexHandler struct {
	logger *slog.Logger
}

func NewSoundexHandler(opts ...SoundexOption) *SoundexHandler {
	h := &SoundexHandler{logger: slog.Default()}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *SoundexHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	name := r.URL.Query().Get("name")
	resp := SoundexResponse{Name: name, Code: phonetic.Soundex(name)}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		id, _ := RequestIDString(r.Context())
		h.logger.Error("writing soundex response", "error", err, "id", id)
	}
}
