// Package api exposes the interview pipeline over HTTP for clients that
// drive the conversation themselves.
package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/spurge/netica/internal/interview"
	"github.com/spurge/netica/internal/logger"
	"github.com/spurge/netica/internal/resume"
	"github.com/spurge/netica/internal/skills"
)

// Server holds the dependencies shared by all HTTP handlers.
type Server struct {
	generator  *interview.QuestionGenerator
	evaluator  *interview.AnswerEvaluator
	aggregator interview.Aggregator
	store      interview.TranscriptStore
	decoder    resume.Decoder
	detector   *skills.Detector
	logger     *zap.Logger
}

func New(
	generator *interview.QuestionGenerator,
	evaluator *interview.AnswerEvaluator,
	aggregator interview.Aggregator,
	store interview.TranscriptStore,
	decoder resume.Decoder,
	detector *skills.Detector,
	log *zap.Logger,
) *Server {
	return &Server{
		generator:  generator,
		evaluator:  evaluator,
		aggregator: aggregator,
		store:      store,
		decoder:    decoder,
		detector:   detector,
		logger:     log,
	}
}

// Routes wires all endpoints onto a fresh mux.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /upload_resume", s.uploadResume)
	mux.HandleFunc("POST /generate_questions", s.generateQuestions)
	mux.HandleFunc("POST /generate_hr_questions", s.generateHRQuestions)
	mux.HandleFunc("POST /analyze_answer", s.analyzeAnswer)
	mux.HandleFunc("POST /overall_score", s.overallScore)

	return mux
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

// POST /upload_resume
type uploadResumeResponse struct {
	CandidateID string   `json:"candidate_id"`
	Skills      []string `json:"skills"`
}

func (s *Server) uploadResume(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		respondError(w, http.StatusBadRequest, "expected multipart form data")
		return
	}

	candidateID := r.FormValue("person_id")
	if candidateID == "" {
		respondError(w, http.StatusBadRequest, "person_id is required")
		return
	}

	file, _, err := r.FormFile("resume")
	if err != nil {
		respondError(w, http.StatusBadRequest, "resume file is required")
		return
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		respondError(w, http.StatusBadRequest, "reading resume failed")
		return
	}

	text := s.decoder.Decode(raw)
	if text == "" {
		respondError(w, http.StatusBadRequest, "resume text could not be extracted")
		return
	}

	found := s.detector.Detect(text)
	s.logger.Info("resume processed",
		zap.String(logger.FieldCandidate, candidateID),
		zap.Int("skills", len(found)),
	)

	respondJSON(w, http.StatusOK, uploadResumeResponse{CandidateID: candidateID, Skills: found})
}

// POST /generate_questions
type generateQuestionsRequest struct {
	Skills []string `json:"skills"`
}

type tieredQuestions struct {
	Easy   string `json:"easy"`
	Normal string `json:"normal"`
	Hard   string `json:"hard"`
}

func (s *Server) generateQuestions(w http.ResponseWriter, r *http.Request) {
	var req generateQuestionsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if len(req.Skills) == 0 {
		respondError(w, http.StatusBadRequest, "skills list is required")
		return
	}

	perSkill := make(map[string]tieredQuestions, len(req.Skills))
	for _, skill := range req.Skills {
		set, err := s.generator.Generate(r.Context(), skill)
		if err != nil {
			s.logger.Error("question generation failed",
				zap.String(logger.FieldSkill, skill), zap.Error(err))
			respondError(w, http.StatusBadGateway, "question generation failed")
			return
		}
		if set.Empty() {
			respondError(w, http.StatusBadGateway, "no questions generated for "+skill)
			return
		}

		perSkill[skill] = tieredQuestions{Easy: set.Easy, Normal: set.Normal, Hard: set.Hard}
	}

	respondJSON(w, http.StatusOK, perSkill)
}

// POST /generate_hr_questions
func (s *Server) generateHRQuestions(w http.ResponseWriter, r *http.Request) {
	question, err := s.generator.HRQuestion(r.Context())
	if err != nil {
		s.logger.Error("hr question generation failed", zap.Error(err))
		respondError(w, http.StatusBadGateway, "question generation failed")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"question": question})
}

// POST /analyze_answer
type analyzeAnswerRequest struct {
	CandidateID string `json:"candidate_id"`
	Skill       string `json:"skill"`
	Question    string `json:"question"`
	Answer      string `json:"answer"`
	Tier        string `json:"tier"`
	Depth       int    `json:"depth"`
}

type analyzeAnswerResponse struct {
	Relevant        bool   `json:"relevant"`
	ReferenceAnswer string `json:"reference_answer"`
	StorageDegraded bool   `json:"storage_degraded,omitempty"`
}

func (s *Server) analyzeAnswer(w http.ResponseWriter, r *http.Request) {
	var req analyzeAnswerRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.CandidateID == "" || req.Question == "" {
		respondError(w, http.StatusBadRequest, "candidate_id and question are required")
		return
	}

	eval, err := s.evaluator.Evaluate(r.Context(), req.Question, req.Answer)
	if err != nil {
		s.logger.Error("answer evaluation failed",
			zap.String(logger.FieldCandidate, req.CandidateID), zap.Error(err))
		respondError(w, http.StatusBadGateway, "answer evaluation failed")
		return
	}

	skill := req.Skill
	if skill == "" {
		skill = interview.HRSkill
	}
	tier := interview.Tier(req.Tier)
	if req.Depth > 0 {
		tier = interview.TierFollowUp
	}

	entry := interview.Entry{
		Skill:           skill,
		Question:        req.Question,
		Answer:          req.Answer,
		ReferenceAnswer: eval.ReferenceAnswer,
		Relevant:        eval.Relevant,
		Tier:            tier,
		Depth:           req.Depth,
	}

	resp := analyzeAnswerResponse{Relevant: eval.Relevant, ReferenceAnswer: eval.ReferenceAnswer}
	if err := s.store.Append(r.Context(), req.CandidateID, skill, entry); err != nil {
		s.logger.Warn("transcript write failed",
			zap.String(logger.FieldCandidate, req.CandidateID), zap.Error(err))
		resp.StorageDegraded = true
	}

	respondJSON(w, http.StatusOK, resp)
}

// POST /overall_score
type overallScoreRequest struct {
	CandidateID string `json:"candidate_id"`
}

func (s *Server) overallScore(w http.ResponseWriter, r *http.Request) {
	var req overallScoreRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.CandidateID == "" {
		respondError(w, http.StatusBadRequest, "candidate_id is required")
		return
	}

	entries, err := s.store.ReadAll(r.Context(), req.CandidateID)
	if err != nil {
		s.logger.Error("transcript read failed",
			zap.String(logger.FieldCandidate, req.CandidateID), zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	score, err := s.aggregator.Score(entries)
	if errors.Is(err, interview.ErrNoData) {
		respondError(w, http.StatusNotFound, "no transcript data")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	respondJSON(w, http.StatusOK, map[string]int{
		"score": score,
		"scale": s.aggregator.Scale(),
	})
}
