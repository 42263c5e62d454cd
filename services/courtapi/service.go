package courtapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"causelist-backend/lib/scrapers/ecourts"
	"causelist-backend/services/courtdata"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("services/courtapi")

// Service exposes the portal scraper over plain json REST. A Store may
// be attached to record everything that passes through; persistence is
// best-effort and never affects the response.
type Service struct {
	scraper *ecourts.Client
	store   *courtdata.Store
}

func NewService(scraper *ecourts.Client, store *courtdata.Store) Service {
	return Service{
		scraper: scraper,
		store:   store,
	}
}

// Routes mounts every endpoint on a fresh router.
func (s Service) Routes() *mux.Router {
	r := mux.NewRouter()

	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/states", s.GetStates).Methods("GET")
	api.HandleFunc("/districts/{state}", s.GetDistricts).Methods("GET")
	api.HandleFunc("/court-complexes/{state}/{district}", s.GetCourtComplexes).Methods("GET")
	api.HandleFunc("/courts/{state}/{district}/{complex}", s.GetCourts).Methods("GET")

	api.HandleFunc("/search/cnr", s.SearchByCNR).Methods("POST", "OPTIONS")
	api.HandleFunc("/search/case", s.SearchByDetails).Methods("POST", "OPTIONS")

	api.HandleFunc("/cause-list/captcha", s.GetCaptcha).Methods("GET")
	api.HandleFunc("/cause-list", s.SubmitCauseList).Methods("POST", "OPTIONS")
	api.HandleFunc("/download/pdf", s.DownloadPDF).Methods("POST", "OPTIONS")
	api.HandleFunc("/history/searches", s.RecentSearches).Methods("GET")
	api.HandleFunc("/history/cause-lists", s.RecentCauseLists).Methods("GET")

	api.HandleFunc("/health", s.Health).Methods("GET")

	r.Use(requestIDMiddleware)
	r.Use(corsMiddleware)

	return r
}

type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func writeData(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(envelope{Success: true, Data: data})
}

func writeError(ctx context.Context, w http.ResponseWriter, status int, err error) {
	slog.WarnContext(ctx, "request failed", "err", err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(envelope{Success: false, Error: err.Error()})
}

func (s Service) Health(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s Service) GetStates(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "GetStates")
	defer span.End()

	states := s.scraper.FetchStates(ctx)
	if s.store != nil {
		go s.store.CacheStates(context.WithoutCancel(ctx), states)
	}
	writeData(w, http.StatusOK, states)
}

func (s Service) GetDistricts(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "GetDistricts")
	defer span.End()

	state := mux.Vars(r)["state"]
	districts, err := s.scraper.FetchDistricts(ctx, state)
	if err != nil {
		writeError(ctx, w, http.StatusBadGateway, err)
		return
	}
	if s.store != nil {
		go s.store.CacheDistricts(context.WithoutCancel(ctx), state, districts)
	}
	writeData(w, http.StatusOK, districts)
}

func (s Service) GetCourtComplexes(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "GetCourtComplexes")
	defer span.End()

	vars := mux.Vars(r)
	complexes, err := s.scraper.FetchCourtComplexes(ctx, vars["state"], vars["district"])
	if err != nil {
		writeError(ctx, w, http.StatusBadGateway, err)
		return
	}
	if s.store != nil {
		go s.store.CacheCourtComplexes(context.WithoutCancel(ctx), vars["state"], vars["district"], complexes)
	}
	writeData(w, http.StatusOK, complexes)
}

func (s Service) GetCourts(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "GetCourts")
	defer span.End()

	vars := mux.Vars(r)
	courts, err := s.scraper.FetchCourts(ctx, vars["state"], vars["district"], vars["complex"])
	if err != nil {
		writeError(ctx, w, http.StatusBadGateway, err)
		return
	}
	if s.store != nil {
		cc := ecourts.ParseComplexCode(vars["complex"])
		go s.store.CacheCourts(context.WithoutCancel(ctx), vars["state"], vars["district"], cc.ID, courts)
	}
	writeData(w, http.StatusOK, courts)
}
