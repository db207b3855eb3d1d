// Copyright The Impact Ops Collective and each contributor to NotetakerService.
// SPDX-License-Identifier: MIT

package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// handleGenerateInsights runs cross-meeting LLM analysis over all stored
// transcript summaries and persists the resulting insights.
func (api *NotetakerAPI) handleGenerateInsights(w http.ResponseWriter, r *http.Request) {
	insights, err := api.insightService.GenerateInsights(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, insights)
}

func (api *NotetakerAPI) handleListInsights(w http.ResponseWriter, r *http.Request) {
	insights, err := api.insightService.ListInsights(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, insights)
}

func (api *NotetakerAPI) handleGetInsight(w http.ResponseWriter, r *http.Request) {
	insight, err := api.insightService.GetInsight(r.Context(), chi.URLParam(r, "insightUID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, insight)
}

// handleBrainstormSolutions generates candidate solutions for one insight.
func (api *NotetakerAPI) handleBrainstormSolutions(w http.ResponseWriter, r *http.Request) {
	solutions, err := api.insightService.BrainstormSolutions(r.Context(), chi.URLParam(r, "insightUID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, solutions)
}

func (api *NotetakerAPI) handleListSolutions(w http.ResponseWriter, r *http.Request) {
	solutions, err := api.insightService.ListSolutions(r.Context(), chi.URLParam(r, "insightUID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, solutions)
}
