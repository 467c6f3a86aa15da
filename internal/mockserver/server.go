// Package mockserver implements the static in-memory backend the client is
// developed against: a fixed nine-item catalog, a health check, and static
// item images.
package mockserver

import (
	_ "embed"
	"net/http"
	"strings"

	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"github.com/xenking/appetizers/internal/domain/appetizer"
	"github.com/xenking/appetizers/pkg/health"
)

// catalogData is the fixed catalog in envelope form. Image URLs are stored
// as server-relative paths and prefixed per request.
//
//go:embed appetizers.json
var catalogData []byte

// placeholderPNG is served for every item image path.
//
//go:embed placeholder.png
var placeholderPNG []byte

// catalogPath matches the resource path the client's transport composes.
const catalogPath = "/swiftui-fundamentals/appetizers"

// Config holds mock server options.
type Config struct {
	// ImageBaseURL is prepended to the relative image paths in catalog
	// responses. When empty, the base is derived from the request host.
	ImageBaseURL string
}

// Server serves the catalog contract.
type Server struct {
	cfg     Config
	lg      *zap.Logger
	catalog []appetizer.Appetizer
	health  *health.Health
}

// New decodes the embedded catalog and returns a ready Server.
func New(cfg Config, lg *zap.Logger) (*Server, error) {
	if lg == nil {
		lg = zap.NewNop()
	}
	items, err := appetizer.DecodeCatalog(catalogData)
	if err != nil {
		return nil, errors.Wrap(err, "decode embedded catalog")
	}
	return &Server{
		cfg:     cfg,
		lg:      lg,
		catalog: items,
		health:  health.New(),
	}, nil
}

// Health exposes the health service so callers can register checks and
// start the background loop.
func (s *Server) Health() *health.Health {
	return s.health
}

// Handler returns the route table: the catalog endpoint, /health, and the
// static image prefix.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(catalogPath, s.handleCatalog)
	mux.HandleFunc("/health", s.health.Endpoint)
	mux.HandleFunc("/images/", s.handleImage)
	return mux
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	base := s.cfg.ImageBaseURL
	if base == "" {
		base = "http://" + r.Host
	}
	base = strings.TrimSuffix(base, "/")

	items := make([]appetizer.Appetizer, len(s.catalog))
	copy(items, s.catalog)
	for i := range items {
		items[i].ImageURL = base + items[i].ImageURL
	}

	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write(appetizer.EncodeCatalog(items)); err != nil {
		s.lg.Debug("write catalog response", zap.Error(err))
	}
}

func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	if _, err := w.Write(placeholderPNG); err != nil {
		s.lg.Debug("write image response", zap.Error(err))
	}
}
