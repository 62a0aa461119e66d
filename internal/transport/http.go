package transport

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/chemviz/equipview/internal/csvtable"
	"github.com/chemviz/equipview/internal/domain/dataset"
	"github.com/chemviz/equipview/internal/domain/user"
	"github.com/chemviz/equipview/internal/report"
	"github.com/go-chi/chi/v5"
)

// Config wires the HTTP layer's collaborators.
type Config struct {
	Datasets *dataset.Service
	Users    *user.Service
	Reports  *report.Generator
	// MaxFileBytes bounds the accepted CSV payload size.
	MaxFileBytes int64
	// MetricsHandler serves GET /metrics when set.
	MetricsHandler http.Handler
	Logger         *slog.Logger
}

// Server wires HTTP handlers.
type Server struct {
	datasets     *dataset.Service
	users        *user.Service
	reports      *report.Generator
	maxFileBytes int64
	logger       *slog.Logger
}

// NewServer creates the HTTP router. Auth endpoints, /health and /metrics
// are public; everything under /api/upload and /api/datasets requires a
// bearer token resolving to an owner identity.
func NewServer(cfg Config) *chi.Mux {
	srv := &Server{
		datasets:     cfg.Datasets,
		users:        cfg.Users,
		reports:      cfg.Reports,
		maxFileBytes: cfg.MaxFileBytes,
		logger:       cfg.Logger,
	}
	if srv.logger == nil {
		srv.logger = slog.Default()
	}

	r := chi.NewRouter()

	r.Get("/health", srv.handleHealth)
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	r.Post("/api/auth/register/", srv.handleRegister)
	r.Post("/api/auth/login/", srv.handleLogin)

	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(cfg.Users))

		r.Post("/api/auth/logout/", srv.handleLogout)
		r.Get("/api/auth/user/", srv.handleUserInfo)

		r.Post("/api/upload/", srv.handleUpload)
		r.Get("/api/datasets/", srv.handleList)
		r.Get("/api/datasets/{id}/", srv.handleGet)
		r.Get("/api/datasets/{id}/summary/", srv.handleSummary)
		r.Delete("/api/datasets/{id}/delete/", srv.handleDelete)
		r.Get("/api/datasets/{id}/report/pdf/", srv.handleReport)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

type credentialsRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	u, token, err := s.users.Register(r.Context(), user.RegisterRequest{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, user.ErrInvalidInput), errors.Is(err, user.ErrUsernameTaken):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			s.internalError(w, "register failed", err)
		}
		return
	}

	writeJSON(w, http.StatusCreated, authResponse{
		Token: token,
		User:  userResponse{ID: u.ID, Username: u.Username, Email: u.Email},
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	u, token, err := s.users.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		s.internalError(w, "login failed", err)
		return
	}

	writeJSON(w, http.StatusOK, authResponse{
		Token: token,
		User:  userResponse{ID: u.ID, Username: u.Username, Email: u.Email},
	})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.users.Logout(r.Context(), BearerToken(r)); err != nil {
		s.internalError(w, "logout failed", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

func (s *Server) handleUserInfo(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := OwnerFromContext(r.Context())
	u, err := s.users.Get(r.Context(), ownerID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		s.internalError(w, "user lookup failed", err)
		return
	}
	writeJSON(w, http.StatusOK, userResponse{ID: u.ID, Username: u.Username, Email: u.Email})
}

type uploadResponse struct {
	ID               string         `json:"id"`
	Name             string         `json:"name"`
	UploadedAt       string         `json:"uploaded_at"`
	TotalRecords     int            `json:"total_records"`
	AvgFlowrate      float64        `json:"avg_flowrate"`
	AvgPressure      float64        `json:"avg_pressure"`
	AvgTemperature   float64        `json:"avg_temperature"`
	TypeDistribution map[string]int `json:"type_distribution"`
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := OwnerFromContext(r.Context())

	// Slack for multipart framing on top of the file-size bound.
	r.Body = http.MaxBytesReader(w, r.Body, s.maxFileBytes+1<<20)

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	if !strings.EqualFold(filepath.Ext(header.Filename), ".csv") {
		writeError(w, http.StatusBadRequest, "file must have a .csv extension")
		return
	}
	if header.Size == 0 {
		writeError(w, http.StatusBadRequest, "uploaded file is empty")
		return
	}
	if header.Size > s.maxFileBytes {
		writeError(w, http.StatusBadRequest,
			fmt.Sprintf("file exceeds maximum size of %d bytes", s.maxFileBytes))
		return
	}

	table, err := csvtable.Decode(file)
	if err != nil {
		if errors.Is(err, csvtable.ErrEmptyFile) {
			writeError(w, http.StatusBadRequest, "uploaded file is empty")
			return
		}
		writeError(w, http.StatusBadRequest, "unable to parse CSV file")
		return
	}

	ds, err := s.datasets.Ingest(r.Context(), ownerID, header.Filename, dataset.Table(table))
	if err != nil {
		var verr *dataset.ValidationError
		if errors.As(err, &verr) {
			writeValidationError(w, verr)
			return
		}
		s.internalError(w, "upload failed", err)
		return
	}

	writeJSON(w, http.StatusCreated, uploadResponse{
		ID:               ds.ID,
		Name:             ds.Name,
		UploadedAt:       ds.UploadedAt.Format("2006-01-02T15:04:05Z07:00"),
		TotalRecords:     ds.Aggregate.TotalRecords,
		AvgFlowrate:      ds.Aggregate.AvgFlowrate,
		AvgPressure:      ds.Aggregate.AvgPressure,
		AvgTemperature:   ds.Aggregate.AvgTemperature,
		TypeDistribution: ds.Aggregate.TypeDistribution,
	})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := OwnerFromContext(r.Context())
	summaries, err := s.datasets.ListRecent(r.Context(), ownerID)
	if err != nil {
		s.internalError(w, "list failed", err)
		return
	}
	if summaries == nil {
		summaries = []dataset.Summary{}
	}
	writeJSON(w, http.StatusOK, summaries)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	ds, ok := s.fetchDataset(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, ds)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	ds, ok := s.fetchDataset(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, ds.Aggregate)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := OwnerFromContext(r.Context())
	id := chi.URLParam(r, "id")

	if err := s.datasets.Delete(r.Context(), ownerID, id); err != nil {
		if errors.Is(err, dataset.ErrDatasetNotFound) {
			writeError(w, http.StatusNotFound, "dataset not found")
			return
		}
		s.internalError(w, "delete failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	ds, ok := s.fetchDataset(w, r)
	if !ok {
		return
	}

	pdfBytes, err := s.reports.Render(ds)
	if err != nil {
		s.internalError(w, "report generation failed", err)
		return
	}

	filename := fmt.Sprintf("equipment_report_%s_%s.pdf", ds.ID, sanitizeFilename(ds.Name))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(pdfBytes)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdfBytes)
}

func (s *Server) fetchDataset(w http.ResponseWriter, r *http.Request) (*dataset.Dataset, bool) {
	ownerID, _ := OwnerFromContext(r.Context())
	id := chi.URLParam(r, "id")

	ds, err := s.datasets.Get(r.Context(), ownerID, id)
	if err != nil {
		if errors.Is(err, dataset.ErrDatasetNotFound) {
			writeError(w, http.StatusNotFound, "dataset not found")
			return nil, false
		}
		s.internalError(w, "dataset lookup failed", err)
		return nil, false
	}
	return ds, true
}

func (s *Server) internalError(w http.ResponseWriter, msg string, err error) {
	s.logger.Error(msg, "error", err)
	writeError(w, http.StatusInternalServerError, "internal server error")
}

func sanitizeFilename(name string) string {
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", "\"", "_")
	safe := replacer.Replace(name)
	if len(safe) > 50 {
		safe = safe[:50]
	}
	return safe
}
