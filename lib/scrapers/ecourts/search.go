package ecourts

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"causelist-backend/lib/textutil"
	"causelist-backend/lib/timezone"

	"github.com/PuerkitoBio/goquery"
)

type SearchType string

const (
	SearchTypeCNR     SearchType = "CNR"
	SearchTypeDetails SearchType = "DETAILS"
)

// CaseDetails echoes the type/number/year triple of a details search.
type CaseDetails struct {
	CaseType   string `json:"case_type"`
	CaseNumber string `json:"case_number"`
	CaseYear   string `json:"case_year"`
}

// CaseSearchResult is the parsed outcome of a case search. Found is
// deliberately narrow: it means the case has a hearing scheduled today
// or tomorrow, not that the case exists. Callers that care about bare
// existence have to inspect Details for the portal's own "not found"
// style messaging.
type CaseSearchResult struct {
	CaseID         string       `json:"case_id"`
	SearchType     SearchType   `json:"search_type"`
	CNR            string       `json:"cnr,omitempty"`
	CaseDetails    *CaseDetails `json:"case_details,omitempty"`
	Found          bool         `json:"found"`
	ListedToday    bool         `json:"listed_today"`
	ListedTomorrow bool         `json:"listed_tomorrow"`
	SerialNumber   string       `json:"serial_number,omitempty"`
	CourtName      string       `json:"court_name,omitempty"`
	NextHearingDate string      `json:"next_hearing_date,omitempty"`
	CaseStatus     string       `json:"case_status,omitempty"`
	// every label/value row of the response, keyed by lower-cased label
	Details map[string]string `json:"details"`
}

// SearchCaseByCNR looks a case up directly by its CNR number. State
// and district codes are optional hints, pass "" to omit them.
func (c *Client) SearchCaseByCNR(ctx context.Context, cnr, stateCode, districtCode string) (CaseSearchResult, error) {
	ctx, span := tracer.Start(ctx, "client:SearchCaseByCNR")
	defer span.End()

	c.ensureReady(ctx)

	form := map[string]string{"cnr": cnr}
	if stateCode != "" {
		form["state_code"] = stateCode
	}
	if districtCode != "" {
		form["dist_code"] = districtCode
	}

	res, err := c.Http.R().
		SetContext(ctx).
		SetFormData(form).
		Post("/ajax/search_case_cnr.php")
	if err != nil {
		return CaseSearchResult{}, err
	}

	result := parseCaseResult(res.Body(), cnr, timezone.Now())
	result.SearchType = SearchTypeCNR
	result.CNR = cnr
	return result, nil
}

// SearchCaseByDetails looks a case up through the location hierarchy
// by case type, number and year.
func (c *Client) SearchCaseByDetails(ctx context.Context, stateCode, districtCode, courtCode, caseType, caseNumber, caseYear string) (CaseSearchResult, error) {
	ctx, span := tracer.Start(ctx, "client:SearchCaseByDetails")
	defer span.End()

	c.ensureReady(ctx)

	res, err := c.Http.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"state_code": stateCode,
			"dist_code":  districtCode,
			"court_code": courtCode,
			"case_type":  caseType,
			"case_no":    caseNumber,
			"case_year":  caseYear,
		}).
		Post("/ajax/search_case_details.php")
	if err != nil {
		return CaseSearchResult{}, err
	}

	caseID := fmt.Sprintf("%s/%s/%s", caseType, caseNumber, caseYear)
	result := parseCaseResult(res.Body(), caseID, timezone.Now())
	result.SearchType = SearchTypeDetails
	result.CaseDetails = &CaseDetails{
		CaseType:   caseType,
		CaseNumber: caseNumber,
		CaseYear:   caseYear,
	}
	return result, nil
}

const portalDateLayout = "02-01-2006"

var (
	hearingDateLabels  = []string{"hearingdate", "nextdate"}
	courtNameLabels    = []string{"court"}
	serialNumberLabels = []string{"serial", "sr."}
	caseStatusLabels   = []string{"status"}
)

// parseCaseResult walks the label/value table rows of a search
// response. Zero matching rows is not an error, it just means nothing
// is listed (or the case does not exist; the portal does not
// distinguish the two in any structured way).
func parseCaseResult(markup []byte, caseID string, now time.Time) CaseSearchResult {
	result := CaseSearchResult{
		CaseID:  caseID,
		Details: map[string]string{},
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(markup))
	if err != nil {
		return result
	}

	today := timezone.Day(now)
	tomorrow := today.AddDate(0, 0, 1)

	doc.Find("tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 2 {
			return
		}
		label := strings.ToLower(strings.TrimSpace(cells.Eq(0).Text()))
		value := strings.TrimSpace(cells.Eq(1).Text())

		result.Details[label] = value

		if textutil.MatchName(label, hearingDateLabels) {
			result.NextHearingDate = value

			hearing, err := time.ParseInLocation(portalDateLayout, value, timezone.Location)
			if err == nil {
				day := timezone.Day(hearing)
				if day.Equal(today) {
					result.ListedToday = true
					result.Found = true
				} else if day.Equal(tomorrow) {
					result.ListedTomorrow = true
					result.Found = true
				}
			}
		}
		if textutil.MatchName(label, courtNameLabels) {
			result.CourtName = value
		}
		if textutil.MatchName(label, serialNumberLabels) {
			result.SerialNumber = value
		}
		if textutil.MatchName(label, caseStatusLabels) {
			result.CaseStatus = value
		}
	})

	return result
}
