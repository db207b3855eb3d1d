// Copyright The Impact Ops Collective and each contributor to NotetakerService.
// SPDX-License-Identifier: MIT

package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/impactops/notetaker-service/internal/service"
)

func (api *NotetakerAPI) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var req service.CreateTaskRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	task, err := api.taskService.CreateTask(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

func (api *NotetakerAPI) handleListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := api.taskService.ListTasks(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (api *NotetakerAPI) handleGetTask(w http.ResponseWriter, r *http.Request) {
	task, err := api.taskService.GetTask(r.Context(), chi.URLParam(r, "taskUID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

// handleUpdateTask partially updates a task. Moving the status to completed
// stamps completedAt; moving it away clears the stamp.
func (api *NotetakerAPI) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateTaskRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	task, err := api.taskService.UpdateTask(r.Context(), chi.URLParam(r, "taskUID"), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (api *NotetakerAPI) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	if err := api.taskService.DeleteTask(r.Context(), chi.URLParam(r, "taskUID")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
