package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"task-api/internal/model"
	"task-api/internal/task"
)

const (
	greeting        = "Hello from Azure Container Apps!"
	notFoundMessage = "Task not found"
)

type messageResponse struct {
	Message string `json:"message"`
}

type statusResponse struct {
	Status string `json:"status"`
}

// errorResponse is returned with status 200 when a task id is unknown.
type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, messageResponse{Message: greeting})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, statusResponse{Status: "healthy"})
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.service.List()
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var req model.TaskCreate
	if err := decodeJSON(w, r, &req); err != nil {
		writeRequestError(w, err)
		return
	}

	created, err := s.service.Create(req)
	if err != nil {
		if errors.Is(err, task.ErrInvalidInput) {
			writeDetail(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		s.internalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, created)
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	var req model.TaskUpdate
	if err := decodeJSON(w, r, &req); err != nil {
		writeRequestError(w, err)
		return
	}

	updated, err := s.service.Update(id, req)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			writeJSON(w, http.StatusOK, errorResponse{Error: notFoundMessage})
			return
		}
		s.internalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	removed, err := s.service.Delete(id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			writeJSON(w, http.StatusOK, errorResponse{Error: notFoundMessage})
			return
		}
		s.internalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, removed)
}

func (s *Server) internalError(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.ErrorContext(r.Context(), "request failed",
		"rid", RequestID(r.Context()),
		"err", err,
	)
	writeDetail(w, http.StatusInternalServerError, "Internal Server Error")
}

var errInvalidID = errors.New("id must be an integer")

func pathID(r *http.Request) (int, error) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		return 0, errInvalidID
	}
	return id, nil
}
