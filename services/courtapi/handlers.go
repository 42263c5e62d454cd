package courtapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"causelist-backend/lib/scrapers/ecourts"
	"causelist-backend/lib/timezone"
)

type cnrSearchRequest struct {
	CNR          string `json:"cnr"`
	StateCode    string `json:"state_code,omitempty"`
	DistrictCode string `json:"district_code,omitempty"`
}

func (s Service) SearchByCNR(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "SearchByCNR")
	defer span.End()

	var req cnrSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(ctx, w, http.StatusBadRequest, err)
		return
	}
	if req.CNR == "" {
		writeError(ctx, w, http.StatusBadRequest, fmt.Errorf("cnr is required"))
		return
	}

	result, err := s.scraper.SearchCaseByCNR(ctx, req.CNR, req.StateCode, req.DistrictCode)
	if err != nil {
		writeError(ctx, w, http.StatusBadGateway, err)
		return
	}
	s.recordSearch(ctx, result)
	writeData(w, http.StatusOK, result)
}

type detailsSearchRequest struct {
	StateCode    string `json:"state_code"`
	DistrictCode string `json:"district_code"`
	CourtCode    string `json:"court_code"`
	CaseType     string `json:"case_type"`
	CaseNumber   string `json:"case_number"`
	CaseYear     string `json:"case_year"`
}

func (s Service) SearchByDetails(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "SearchByDetails")
	defer span.End()

	var req detailsSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(ctx, w, http.StatusBadRequest, err)
		return
	}
	if req.CaseType == "" || req.CaseNumber == "" || req.CaseYear == "" {
		writeError(ctx, w, http.StatusBadRequest,
			fmt.Errorf("case_type, case_number and case_year are required"))
		return
	}

	result, err := s.scraper.SearchCaseByDetails(ctx,
		req.StateCode, req.DistrictCode, req.CourtCode,
		req.CaseType, req.CaseNumber, req.CaseYear)
	if err != nil {
		writeError(ctx, w, http.StatusBadGateway, err)
		return
	}
	s.recordSearch(ctx, result)
	writeData(w, http.StatusOK, result)
}

func (s Service) recordSearch(ctx context.Context, result ecourts.CaseSearchResult) {
	if s.store == nil {
		return
	}
	go s.store.SaveSearchResult(context.WithoutCancel(ctx), result, timezone.Now().Unix())
}

func (s Service) GetCaptcha(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "GetCaptcha")
	defer span.End()

	challenge, err := s.scraper.FetchCaptcha(ctx)
	if err != nil {
		writeError(ctx, w, http.StatusBadGateway, err)
		return
	}
	writeData(w, http.StatusOK, challenge)
}

type causeListRequest struct {
	StateCode        string `json:"state_code"`
	DistrictCode     string `json:"district_code"`
	CourtComplexCode string `json:"court_complex_code"`
	CourtCode        string `json:"court_code"`
	Date             string `json:"date"`
	CaptchaCode      string `json:"captcha_code"`
	CauseType        string `json:"cause_type,omitempty"`
	CourtName        string `json:"court_name,omitempty"`
}

// SubmitCauseList always answers 200 with a terminal result; a
// rejected captcha or portal error lives inside the payload, not in
// the http status.
func (s Service) SubmitCauseList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "SubmitCauseList")
	defer span.End()

	var req causeListRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(ctx, w, http.StatusBadRequest, err)
		return
	}

	result := s.scraper.FetchCauseList(ctx, ecourts.CauseListRequest{
		StateCode:        req.StateCode,
		DistrictCode:     req.DistrictCode,
		CourtComplexCode: req.CourtComplexCode,
		CourtCode:        req.CourtCode,
		Date:             req.Date,
		CaptchaCode:      req.CaptchaCode,
		CauseType:        req.CauseType,
		CourtName:        req.CourtName,
	})
	if s.store != nil {
		go s.store.SaveCauseList(context.WithoutCancel(ctx), result)
	}
	writeData(w, http.StatusOK, result)
}

type pdfRequest struct {
	StateCode        string `json:"state_code"`
	DistrictCode     string `json:"district_code"`
	CourtComplexCode string `json:"court_complex_code"`
	CourtCode        string `json:"court_code,omitempty"`
	Date             string `json:"date"`
}

func (s Service) DownloadPDF(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "DownloadPDF")
	defer span.End()

	var req pdfRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(ctx, w, http.StatusBadRequest, err)
		return
	}

	data, filename, err := s.scraper.DownloadCauseListPDF(ctx, ecourts.CauseListPDFRequest{
		StateCode:        req.StateCode,
		DistrictCode:     req.DistrictCode,
		CourtComplexCode: req.CourtComplexCode,
		CourtCode:        req.CourtCode,
		Date:             req.Date,
	})
	if err != nil {
		writeError(ctx, w, http.StatusBadGateway, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Write(data)
}

func historyLimit(r *http.Request) int64 {
	limit, err := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64)
	if err != nil || limit <= 0 || limit > 500 {
		return 50
	}
	return limit
}

func (s Service) RecentSearches(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "RecentSearches")
	defer span.End()

	if s.store == nil {
		writeError(ctx, w, http.StatusNotFound, fmt.Errorf("history is not enabled"))
		return
	}
	records, err := s.store.RecentSearches(ctx, historyLimit(r))
	if err != nil {
		writeError(ctx, w, http.StatusInternalServerError, err)
		return
	}
	writeData(w, http.StatusOK, records)
}

func (s Service) RecentCauseLists(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "RecentCauseLists")
	defer span.End()

	if s.store == nil {
		writeError(ctx, w, http.StatusNotFound, fmt.Errorf("history is not enabled"))
		return
	}
	lists, err := s.store.RecentCauseLists(ctx, historyLimit(r))
	if err != nil {
		writeError(ctx, w, http.StatusInternalServerError, err)
		return
	}
	writeData(w, http.StatusOK, lists)
}
