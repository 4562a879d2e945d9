package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/beydemirfurkan/seo-analyze/internal/seo"
)

const enqueueTimeout = 5 * time.Second

type analyzeRequest struct {
	Domain        string `json:"domain"`
	TargetKeyword string `json:"target_keyword,omitempty"`
}

func (r analyzeRequest) toAnalysisRequest() (seo.AnalysisRequest, error) {
	domain := strings.TrimSpace(r.Domain)
	if domain == "" {
		return seo.AnalysisRequest{}, errors.New("domain is required")
	}
	return seo.AnalysisRequest{
		Domain:        domain,
		TargetKeyword: strings.TrimSpace(r.TargetKeyword),
	}, nil
}

// submitAnalysis handles POST /v1/analyses: it registers a pending job,
// enqueues it, and answers 202 with the job id for polling.
func (s *Server) submitAnalysis(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	analysisReq, err := req.toAnalysisRequest()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	jobID, err := s.enqueueJob(r.Context(), analysisReq)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, context.DeadlineExceeded) {
			status = http.StatusRequestTimeout
		}
		writeError(w, status, err.Error())
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{
		"job_id": jobID,
		"status": string(seo.JobStatusPending),
	})
}

func (s *Server) enqueueJob(ctx context.Context, req seo.AnalysisRequest) (string, error) {
	jobID, err := s.idGen.NewID()
	if err != nil {
		return "", fmt.Errorf("generate job id: %w", err)
	}
	now := s.clock.Now()
	job := seo.Job{
		ID:        jobID,
		Status:    seo.JobStatusPending,
		Request:   req,
		Submitted: now,
		Updated:   now,
	}
	if err := s.jobStore.CreateJob(ctx, job); err != nil {
		return "", fmt.Errorf("create job: %w", err)
	}
	queueCtx, cancel := context.WithTimeout(ctx, enqueueTimeout)
	defer cancel()
	item := seo.QueueItem{
		JobID:     jobID,
		Request:   req,
		Attempt:   1,
		Submitted: now.Unix(),
	}
	if err := s.dispatcher.Enqueue(queueCtx, item); err != nil {
		// The job row stays pending forever otherwise.
		if failErr := s.jobStore.Fail(ctx, jobID, "enqueue failed"); failErr != nil {
			s.logger.Error("fail orphaned job", zap.String("job_id", jobID), zap.Error(failErr))
		}
		return "", fmt.Errorf("enqueue job: %w", err)
	}
	return jobID, nil
}

// listAnalyses handles GET /v1/analyses.
func (s *Server) listAnalyses(w http.ResponseWriter, r *http.Request) {
	jobs, err := s.jobStore.ListJobs(r.Context())
	if err != nil {
		s.logger.Error("list jobs failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to list analyses")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"analyses": jobs,
		"count":    len(jobs),
	})
}

// getStatus handles GET /v1/analyses/{job_id}/status.
func (s *Server) getStatus(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "job_id")
	job, err := s.jobStore.GetJob(r.Context(), jobID)
	if err != nil {
		if errors.Is(err, seo.ErrJobNotFound) {
			writeError(w, http.StatusNotFound, "analysis not found")
			return
		}
		s.logger.Error("get job failed", zap.String("job_id", jobID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load analysis")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"job": job})
}

// getResult handles GET /v1/analyses/{job_id}/result. A known but unfinished
// job answers 202 so clients keep polling; a failed job answers 400 with the
// stored error.
func (s *Server) getResult(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "job_id")
	job, err := s.jobStore.GetJob(r.Context(), jobID)
	if err != nil {
		if errors.Is(err, seo.ErrJobNotFound) {
			writeError(w, http.StatusNotFound, "analysis not found")
			return
		}
		s.logger.Error("get job failed", zap.String("job_id", jobID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load analysis")
		return
	}
	if job.Status == seo.JobStatusFailed {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"job":   job,
			"error": job.ErrorText,
		})
		return
	}

	report, err := s.jobStore.GetReport(r.Context(), jobID)
	if err != nil {
		if errors.Is(err, seo.ErrResultNotReady) {
			writeJSON(w, http.StatusAccepted, map[string]any{"job": job})
			return
		}
		s.logger.Error("get report failed", zap.String("job_id", jobID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load result")
		return
	}
	writeJSON(w, http.StatusOK, seo.JobResult{Job: job, Report: &report})
}

// analyzeSync handles POST /v1/analyze: the whole extract-and-score pipeline
// runs inside the request, bounded by the server timeout. No job is recorded.
func (s *Server) analyzeSync(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	analysisReq, err := req.toAnalysisRequest()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	bundle, err := s.extractor.Extract(r.Context(), analysisReq)
	if err != nil {
		s.logger.Warn("sync extract failed",
			zap.String("domain", analysisReq.Domain),
			zap.Error(err),
		)
		writeError(w, http.StatusBadGateway, fmt.Sprintf("fetch failed: %v", err))
		return
	}

	report, err := s.pipeline.Analyze(r.Context(), bundle, nil)
	if err != nil {
		s.logger.Error("sync analyze failed",
			zap.String("domain", analysisReq.Domain),
			zap.Error(err),
		)
		writeError(w, http.StatusInternalServerError, "analysis failed")
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		zap.L().Error("write JSON failed", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
