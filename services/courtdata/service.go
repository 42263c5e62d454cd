package courtdata

import (
	"context"
	"database/sql"
	"encoding/json"

	"causelist-backend/lib/scrapers/ecourts"
	"causelist-backend/services/courtdata/db"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("services/courtdata")

// Store keeps a local copy of everything scraped from the portal: the
// location hierarchy as a refreshable cache plus an append-only history
// of search results and cause lists.
type Store struct {
	db  *sql.DB
	qry *db.Queries
}

func NewStore(database *sql.DB) Store {
	return Store{
		db:  database,
		qry: db.New(database),
	}
}

func (s Store) cacheLocations(ctx context.Context, locations []ecourts.Location, upsert func(*db.Queries, ecourts.Location) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	txqry := s.qry.WithTx(tx)

	for _, loc := range locations {
		if err := upsert(txqry, loc); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s Store) CacheStates(ctx context.Context, states []ecourts.Location) error {
	ctx, span := tracer.Start(ctx, "CacheStates")
	defer span.End()

	err := s.cacheLocations(ctx, states, func(q *db.Queries, loc ecourts.Location) error {
		return q.UpsertState(ctx, db.Location{Code: loc.Code, Name: loc.Name})
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func (s Store) CacheDistricts(ctx context.Context, stateCode string, districts []ecourts.Location) error {
	ctx, span := tracer.Start(ctx, "CacheDistricts")
	defer span.End()

	span.SetAttributes(attribute.String("state_code", stateCode))

	err := s.cacheLocations(ctx, districts, func(q *db.Queries, loc ecourts.Location) error {
		return q.UpsertDistrict(ctx, db.UpsertDistrictParams{
			StateCode: stateCode,
			Code:      loc.Code,
			Name:      loc.Name,
		})
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func (s Store) CacheCourtComplexes(ctx context.Context, stateCode, distCode string, complexes []ecourts.Location) error {
	ctx, span := tracer.Start(ctx, "CacheCourtComplexes")
	defer span.End()

	err := s.cacheLocations(ctx, complexes, func(q *db.Queries, loc ecourts.Location) error {
		return q.UpsertCourtComplex(ctx, db.UpsertCourtComplexParams{
			StateCode: stateCode,
			DistCode:  distCode,
			Code:      loc.Code,
			Name:      loc.Name,
		})
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func (s Store) CacheCourts(ctx context.Context, stateCode, distCode, complexCode string, courts []ecourts.Location) error {
	ctx, span := tracer.Start(ctx, "CacheCourts")
	defer span.End()

	err := s.cacheLocations(ctx, courts, func(q *db.Queries, loc ecourts.Location) error {
		return q.UpsertCourt(ctx, db.UpsertCourtParams{
			StateCode:   stateCode,
			DistCode:    distCode,
			ComplexCode: complexCode,
			Code:        loc.Code,
			Name:        loc.Name,
		})
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func locationsOut(rows []db.Location) []ecourts.Location {
	out := make([]ecourts.Location, len(rows))
	for i, row := range rows {
		out[i] = ecourts.Location{Code: row.Code, Name: row.Name}
	}
	return out
}

func (s Store) CachedStates(ctx context.Context) ([]ecourts.Location, error) {
	rows, err := s.qry.ListStates(ctx)
	if err != nil {
		return nil, err
	}
	return locationsOut(rows), nil
}

func (s Store) CachedDistricts(ctx context.Context, stateCode string) ([]ecourts.Location, error) {
	rows, err := s.qry.ListDistricts(ctx, stateCode)
	if err != nil {
		return nil, err
	}
	return locationsOut(rows), nil
}

func (s Store) CachedCourtComplexes(ctx context.Context, stateCode, distCode string) ([]ecourts.Location, error) {
	rows, err := s.qry.ListCourtComplexes(ctx, db.ListCourtComplexesParams{
		StateCode: stateCode,
		DistCode:  distCode,
	})
	if err != nil {
		return nil, err
	}
	return locationsOut(rows), nil
}

func (s Store) CachedCourts(ctx context.Context, stateCode, distCode, complexCode string) ([]ecourts.Location, error) {
	rows, err := s.qry.ListCourts(ctx, db.ListCourtsParams{
		StateCode:   stateCode,
		DistCode:    distCode,
		ComplexCode: complexCode,
	})
	if err != nil {
		return nil, err
	}
	return locationsOut(rows), nil
}

// SaveSearchResult appends one search outcome to the history. The full
// result is kept as json next to the queryable columns so nothing the
// parser extracted is lost.
func (s Store) SaveSearchResult(ctx context.Context, result ecourts.CaseSearchResult, at int64) error {
	ctx, span := tracer.Start(ctx, "SaveSearchResult")
	defer span.End()

	span.SetAttributes(attribute.String("case_id", result.CaseID))

	raw, err := json.Marshal(result)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	err = s.qry.CreateSearchResult(ctx, db.CreateSearchResultParams{
		CaseID:          result.CaseID,
		SearchType:      string(result.SearchType),
		Found:           result.Found,
		ListedToday:     result.ListedToday,
		ListedTomorrow:  result.ListedTomorrow,
		NextHearingDate: result.NextHearingDate,
		CourtName:       result.CourtName,
		CaseStatus:      result.CaseStatus,
		Raw:             string(raw),
		CreatedAt:       at,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func (s Store) SaveCauseList(ctx context.Context, result ecourts.CauseListResult) error {
	ctx, span := tracer.Start(ctx, "SaveCauseList")
	defer span.End()

	raw, err := json.Marshal(result)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	meta := result.Metadata
	err = s.qry.CreateCauseList(ctx, db.CreateCauseListParams{
		StateCode:   meta.StateCode,
		DistCode:    meta.DistrictCode,
		ComplexCode: meta.CourtComplexCode,
		CourtCode:   meta.CourtCode,
		Date:        meta.Date,
		CauseType:   meta.CauseType,
		TotalCases:  int64(result.TotalCases),
		Error:       result.Error,
		Raw:         string(raw),
		FetchedAt:   meta.FetchedAt.Unix(),
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

type SearchRecord struct {
	Result    ecourts.CaseSearchResult `json:"result"`
	CreatedAt int64                    `json:"created_at"`
}

func (s Store) RecentSearches(ctx context.Context, limit int64) ([]SearchRecord, error) {
	rows, err := s.qry.ListRecentSearchResults(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]SearchRecord, 0, len(rows))
	for _, row := range rows {
		record := SearchRecord{CreatedAt: row.CreatedAt}
		if err := json.Unmarshal([]byte(row.Raw), &record.Result); err != nil {
			return nil, err
		}
		out = append(out, record)
	}
	return out, nil
}

func (s Store) RecentCauseLists(ctx context.Context, limit int64) ([]ecourts.CauseListResult, error) {
	rows, err := s.qry.ListRecentCauseLists(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]ecourts.CauseListResult, 0, len(rows))
	for _, row := range rows {
		var result ecourts.CauseListResult
		if err := json.Unmarshal([]byte(row.Raw), &result); err != nil {
			return nil, err
		}
		out = append(out, result)
	}
	return out, nil
}
