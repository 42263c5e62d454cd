package db

import (
	"context"
)

type Location struct {
	Code string
	Name string
}

const upsertState = `
insert into states (code, name) values (?, ?)
on conflict (code) do update set name = excluded.name
`

func (q *Queries) UpsertState(ctx context.Context, arg Location) error {
	_, err := q.db.ExecContext(ctx, upsertState, arg.Code, arg.Name)
	return err
}

const listStates = `select code, name from states order by name`

func (q *Queries) ListStates(ctx context.Context) ([]Location, error) {
	rows, err := q.db.QueryContext(ctx, listStates)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Location
	for rows.Next() {
		var loc Location
		if err := rows.Scan(&loc.Code, &loc.Name); err != nil {
			return nil, err
		}
		out = append(out, loc)
	}
	return out, rows.Err()
}

type UpsertDistrictParams struct {
	StateCode string
	Code      string
	Name      string
}

const upsertDistrict = `
insert into districts (state_code, code, name) values (?, ?, ?)
on conflict (state_code, code) do update set name = excluded.name
`

func (q *Queries) UpsertDistrict(ctx context.Context, arg UpsertDistrictParams) error {
	_, err := q.db.ExecContext(ctx, upsertDistrict, arg.StateCode, arg.Code, arg.Name)
	return err
}

const listDistricts = `select code, name from districts where state_code = ? order by name`

func (q *Queries) ListDistricts(ctx context.Context, stateCode string) ([]Location, error) {
	rows, err := q.db.QueryContext(ctx, listDistricts, stateCode)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Location
	for rows.Next() {
		var loc Location
		if err := rows.Scan(&loc.Code, &loc.Name); err != nil {
			return nil, err
		}
		out = append(out, loc)
	}
	return out, rows.Err()
}

type UpsertCourtComplexParams struct {
	StateCode string
	DistCode  string
	Code      string
	Name      string
}

const upsertCourtComplex = `
insert into court_complexes (state_code, dist_code, code, name) values (?, ?, ?, ?)
on conflict (state_code, dist_code, code) do update set name = excluded.name
`

func (q *Queries) UpsertCourtComplex(ctx context.Context, arg UpsertCourtComplexParams) error {
	_, err := q.db.ExecContext(ctx, upsertCourtComplex, arg.StateCode, arg.DistCode, arg.Code, arg.Name)
	return err
}

type ListCourtComplexesParams struct {
	StateCode string
	DistCode  string
}

const listCourtComplexes = `
select code, name from court_complexes
where state_code = ? and dist_code = ? order by name
`

func (q *Queries) ListCourtComplexes(ctx context.Context, arg ListCourtComplexesParams) ([]Location, error) {
	rows, err := q.db.QueryContext(ctx, listCourtComplexes, arg.StateCode, arg.DistCode)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Location
	for rows.Next() {
		var loc Location
		if err := rows.Scan(&loc.Code, &loc.Name); err != nil {
			return nil, err
		}
		out = append(out, loc)
	}
	return out, rows.Err()
}

type UpsertCourtParams struct {
	StateCode   string
	DistCode    string
	ComplexCode string
	Code        string
	Name        string
}

const upsertCourt = `
insert into courts (state_code, dist_code, complex_code, code, name) values (?, ?, ?, ?, ?)
on conflict (state_code, dist_code, complex_code, code) do update set name = excluded.name
`

func (q *Queries) UpsertCourt(ctx context.Context, arg UpsertCourtParams) error {
	_, err := q.db.ExecContext(ctx, upsertCourt,
		arg.StateCode, arg.DistCode, arg.ComplexCode, arg.Code, arg.Name)
	return err
}

type ListCourtsParams struct {
	StateCode   string
	DistCode    string
	ComplexCode string
}

const listCourts = `
select code, name from courts
where state_code = ? and dist_code = ? and complex_code = ? order by name
`

func (q *Queries) ListCourts(ctx context.Context, arg ListCourtsParams) ([]Location, error) {
	rows, err := q.db.QueryContext(ctx, listCourts, arg.StateCode, arg.DistCode, arg.ComplexCode)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Location
	for rows.Next() {
		var loc Location
		if err := rows.Scan(&loc.Code, &loc.Name); err != nil {
			return nil, err
		}
		out = append(out, loc)
	}
	return out, rows.Err()
}

type CreateSearchResultParams struct {
	CaseID          string
	SearchType      string
	Found           bool
	ListedToday     bool
	ListedTomorrow  bool
	NextHearingDate string
	CourtName       string
	CaseStatus      string
	Raw             string
	CreatedAt       int64
}

const createSearchResult = `
insert into search_results (
    case_id, search_type, found, listed_today, listed_tomorrow,
    next_hearing_date, court_name, case_status, raw, created_at
) values (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

func (q *Queries) CreateSearchResult(ctx context.Context, arg CreateSearchResultParams) error {
	_, err := q.db.ExecContext(ctx, createSearchResult,
		arg.CaseID, arg.SearchType, arg.Found, arg.ListedToday, arg.ListedTomorrow,
		arg.NextHearingDate, arg.CourtName, arg.CaseStatus, arg.Raw, arg.CreatedAt)
	return err
}

type SearchResultRow struct {
	CaseID          string
	SearchType      string
	Found           bool
	ListedToday     bool
	ListedTomorrow  bool
	NextHearingDate string
	CourtName       string
	CaseStatus      string
	Raw             string
	CreatedAt       int64
}

const listRecentSearchResults = `
select case_id, search_type, found, listed_today, listed_tomorrow,
    next_hearing_date, court_name, case_status, raw, created_at
from search_results order by created_at desc, id desc limit ?
`

func (q *Queries) ListRecentSearchResults(ctx context.Context, limit int64) ([]SearchResultRow, error) {
	rows, err := q.db.QueryContext(ctx, listRecentSearchResults, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SearchResultRow
	for rows.Next() {
		var r SearchResultRow
		err := rows.Scan(&r.CaseID, &r.SearchType, &r.Found, &r.ListedToday, &r.ListedTomorrow,
			&r.NextHearingDate, &r.CourtName, &r.CaseStatus, &r.Raw, &r.CreatedAt)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

type CreateCauseListParams struct {
	StateCode   string
	DistCode    string
	ComplexCode string
	CourtCode   string
	Date        string
	CauseType   string
	TotalCases  int64
	Error       string
	Raw         string
	FetchedAt   int64
}

const createCauseList = `
insert into cause_lists (
    state_code, dist_code, complex_code, court_code, date,
    cause_type, total_cases, error, raw, fetched_at
) values (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

func (q *Queries) CreateCauseList(ctx context.Context, arg CreateCauseListParams) error {
	_, err := q.db.ExecContext(ctx, createCauseList,
		arg.StateCode, arg.DistCode, arg.ComplexCode, arg.CourtCode, arg.Date,
		arg.CauseType, arg.TotalCases, arg.Error, arg.Raw, arg.FetchedAt)
	return err
}

type CauseListRow struct {
	StateCode   string
	DistCode    string
	ComplexCode string
	CourtCode   string
	Date        string
	CauseType   string
	TotalCases  int64
	Error       string
	Raw         string
	FetchedAt   int64
}

const listRecentCauseLists = `
select state_code, dist_code, complex_code, court_code, date,
    cause_type, total_cases, error, raw, fetched_at
from cause_lists order by fetched_at desc, id desc limit ?
`

func (q *Queries) ListRecentCauseLists(ctx context.Context, limit int64) ([]CauseListRow, error) {
	rows, err := q.db.QueryContext(ctx, listRecentCauseLists, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []CauseListRow
	for rows.Next() {
		var r CauseListRow
		err := rows.Scan(&r.StateCode, &r.DistCode, &r.ComplexCode, &r.CourtCode, &r.Date,
			&r.CauseType, &r.TotalCases, &r.Error, &r.Raw, &r.FetchedAt)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
