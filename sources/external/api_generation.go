package external

import (
	"net/http"
	"taskprovision/sources/artificial"
	"taskprovision/sources/persistence/entities"
	"taskprovision/sources/quality"
	"taskprovision/sources/tracing"
)

type generateCodeRequest struct {
	Language     string   `json:"language"`
	Description  string   `json:"description"`
	Context      string   `json:"context"`
	Requirements []string `json:"requirements"`
	ExistingCode string   `json:"existing_code"`
}

func (x *Router) handleGenerateCode(w http.ResponseWriter, r *http.Request, account *entities.Account) {
	var req generateCodeRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(x.log, w, err)
		return
	}
	if req.Language == "" || req.Description == "" {
		writeError(x.log, w, errInvalidBody)
		return
	}

	result, err := x.generator.GenerateCode(x.log, account, artificial.CodeRequest{
		Language:     req.Language,
		Description:  req.Description,
		Context:      req.Context,
		Requirements: req.Requirements,
		ExistingCode: req.ExistingCode,
	})
	if err != nil {
		writeError(x.log, w, err)
		return
	}

	x.log.I("Generated code", tracing.AccountId, account.ID, tracing.Language, req.Language, tracing.QualityScore, result.Report.Score)
	writeJSON(w, http.StatusOK, result)
}

type refactorCodeRequest struct {
	Language     string `json:"language"`
	Code         string `json:"code"`
	Instructions string `json:"instructions"`
}

type refactorCodeResponse struct {
	Code   string          `json:"code"`
	Report *quality.Report `json:"report"`
}

func (x *Router) handleRefactorCode(w http.ResponseWriter, r *http.Request, account *entities.Account) {
	var req refactorCodeRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(x.log, w, err)
		return
	}
	if req.Language == "" || req.Code == "" {
		writeError(x.log, w, errInvalidBody)
		return
	}

	code, report, err := x.generator.RefactorCode(x.log, account, req.Language, req.Code, req.Instructions)
	if err != nil {
		writeError(x.log, w, err)
		return
	}

	writeJSON(w, http.StatusOK, refactorCodeResponse{Code: code, Report: report})
}

type analyzeCodeRequest struct {
	Language string `json:"language"`
	Code     string `json:"code"`
}

func (x *Router) handleAnalyzeCode(w http.ResponseWriter, r *http.Request, account *entities.Account) {
	var req analyzeCodeRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(x.log, w, err)
		return
	}
	if req.Code == "" {
		writeError(x.log, w, errInvalidBody)
		return
	}

	analysis, err := x.analyzer.AnalyzeCode(x.log, account, req.Language, req.Code)
	if err != nil {
		writeError(x.log, w, err)
		return
	}

	writeJSON(w, http.StatusOK, analysis)
}

type analyzeComplexityRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (x *Router) handleAnalyzeComplexity(w http.ResponseWriter, r *http.Request, account *entities.Account) {
	var req analyzeComplexityRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(x.log, w, err)
		return
	}
	if req.Title == "" {
		writeError(x.log, w, errInvalidBody)
		return
	}

	estimate, err := x.analyzer.AnalyzeTaskComplexity(x.log, account, req.Title, req.Description)
	if err != nil {
		writeError(x.log, w, err)
		return
	}

	writeJSON(w, http.StatusOK, estimate)
}

// handleQualityCheck runs the static quality gate without touching AI
// providers or usage limits.
func (x *Router) handleQualityCheck(w http.ResponseWriter, r *http.Request, account *entities.Account) {
	var req analyzeCodeRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(x.log, w, err)
		return
	}
	if req.Code == "" {
		writeError(x.log, w, errInvalidBody)
		return
	}

	writeJSON(w, http.StatusOK, x.guard.Check(x.log, req.Code, req.Language))
}
