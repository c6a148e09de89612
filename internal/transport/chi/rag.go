package chi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	domkit "github.com/kitvault/kitvault/internal/domain/kit"
	"github.com/kitvault/kitvault/internal/domain/query"
	quickuc "github.com/kitvault/kitvault/internal/usecase/quickquery"
)

// quickQueryModel marks quick-query answers in the response model field.
const quickQueryModel = "quick-query"

type ragQueryRequest struct {
	Query  string `json:"query"`
	KitID  string `json:"kit_id"`
	UseLLM *bool  `json:"use_llm"` // defaults to true
	Model  string `json:"model"`
}

type ragQueryResponse struct {
	Query   string   `json:"query"`
	Answer  string   `json:"answer"`
	Sources []string `json:"sources"`
	Model   string   `json:"model"`
}

// QueryRAG handles POST /api/v1/rag/query. Recognized quick-query names and
// model "none" bypass the pipeline entirely.
func (s *Server) QueryRAG(w http.ResponseWriter, r *http.Request) {
	var req ragQueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if req.Query == "" {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, "A query is required")
		return
	}
	if req.KitID == "" {
		writeError(w, http.StatusUnprocessableEntity, CodeValidationFailed,
			"A kit_id must be provided to run a RAG query")
		return
	}

	k, err := s.kits.Get(r.Context(), req.KitID)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	model := req.Model
	if model == "" {
		model = s.defaultModel
	}

	if model == "none" || s.quick.Supported(req.Query) {
		respModel := model
		if model == "none" {
			respModel = quickQueryModel
		}
		s.answerQuick(w, r, req, k, respModel)
		return
	}

	s.answerPipeline(w, r, req, k, model)
}

// QuerySharedRAG handles POST /api/v1/rag/query/shared/{token}: the same
// pipeline gated by a sharing link instead of direct kit access.
func (s *Server) QuerySharedRAG(w http.ResponseWriter, r *http.Request) {
	var req ragQueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if req.Query == "" {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, "A query is required")
		return
	}

	k, err := s.sharing.Resolve(r.Context(), chi.URLParam(r, "token"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	model := req.Model
	if model == "" {
		model = s.defaultModel
	}

	s.answerPipeline(w, r, req, k, model)
}

// answerQuick serves a quick query over the kit's assets. Names the dispatch
// table does not recognize fall through to the pipeline.
func (s *Server) answerQuick(
	w http.ResponseWriter, r *http.Request, req ragQueryRequest, k domkit.Kit, respModel string,
) {
	if !s.quick.Supported(req.Query) {
		s.answerPipelineAs(w, r, req, k, req.Model, respModel)
		return
	}

	assets, err := s.kits.Assets(r.Context(), k)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	kitsAvailable := 0
	if kits, listErr := s.kits.List(r.Context(), k.WorkspaceID()); listErr == nil {
		kitsAvailable = len(kits)
	}

	res, err := s.quick.Run(req.Query, quickuc.Input{Assets: assets, KitsAvailable: kitsAvailable})
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, ragQueryResponse{
		Query:   req.Query,
		Answer:  res.Answer,
		Sources: nonNil(res.Sources),
		Model:   respModel,
	})
}

func (s *Server) answerPipeline(
	w http.ResponseWriter, r *http.Request, req ragQueryRequest, k domkit.Kit, model string,
) {
	s.answerPipelineAs(w, r, req, k, model, model)
}

// answerPipelineAs runs the retrieve-and-answer pipeline, reporting respModel
// in the response (which differs from the pipeline model for quick-query
// fallthroughs).
func (s *Server) answerPipelineAs(
	w http.ResponseWriter, r *http.Request, req ragQueryRequest, k domkit.Kit, model, respModel string,
) {
	assets, err := s.kits.Assets(r.Context(), k)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	mode := query.LLM
	if req.UseLLM != nil && !*req.UseLLM {
		mode = query.Raw
	}

	q, err := query.New(req.Query, mode, model)
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, err.Error())
		return
	}

	answer, err := s.rag.RetrieveAndAnswer(r.Context(), q, assets)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, ragQueryResponse{
		Query:   req.Query,
		Answer:  answer.Text,
		Sources: nonNil(answer.Sources),
		Model:   respModel,
	})
}

func nonNil(ss []string) []string {
	if ss == nil {
		return []string{}
	}
	return ss
}
