package httpapi

import (
	"log/slog"
	"net/http"
	"strings"

	"task-api/internal/model"
)

// TaskService is what the handlers need from the task layer.
type TaskService interface {
	List() ([]model.Task, error)
	Create(in model.TaskCreate) (model.Task, error)
	Update(id int, upd model.TaskUpdate) (model.Task, error)
	Delete(id int) (model.Task, error)
}

type Server struct {
	service TaskService
	logger  *slog.Logger
	mux     *http.ServeMux
	handler http.Handler
}

func NewServer(service TaskService, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	srv := &Server{
		service: service,
		logger:  logger,
		mux:     http.NewServeMux(),
	}

	srv.mux.HandleFunc("GET /{$}", srv.handleRoot)
	srv.mux.HandleFunc("GET /health", srv.handleHealth)

	srv.mux.HandleFunc("GET /api/tasks", srv.handleListTasks)
	srv.mux.HandleFunc("POST /api/tasks", srv.handleCreateTask)
	srv.mux.HandleFunc("PUT /api/tasks/{id}", srv.handleUpdateTask)
	srv.mux.HandleFunc("DELETE /api/tasks/{id}", srv.handleDeleteTask)

	srv.handler = WithRequestID()(
		Logging(logger)(
			Recover(logger)(
				CORS()(
					http.HandlerFunc(srv.route),
				),
			),
		),
	)

	return srv
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// route dispatches to the mux, answering unmatched requests with JSON
// bodies instead of the mux's plain-text 404/405.
func (s *Server) route(w http.ResponseWriter, r *http.Request) {
	if _, pattern := s.mux.Handler(r); pattern != "" {
		s.mux.ServeHTTP(w, r)
		return
	}

	if allow := s.allowedMethods(r); len(allow) > 0 {
		w.Header().Set("Allow", strings.Join(allow, ", "))
		writeDetail(w, http.StatusMethodNotAllowed, "Method Not Allowed")
		return
	}
	writeDetail(w, http.StatusNotFound, "Not Found")
}

var probeMethods = []string{
	http.MethodGet,
	http.MethodPost,
	http.MethodPut,
	http.MethodDelete,
}

func (s *Server) allowedMethods(r *http.Request) []string {
	var allow []string
	for _, m := range probeMethods {
		probe := &http.Request{Method: m, URL: r.URL, Host: r.Host, Header: http.Header{}}
		if _, pattern := s.mux.Handler(probe); pattern != "" {
			allow = append(allow, m)
		}
	}
	return allow
}
