package ecourts

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"causelist-backend/lib/timezone"

	"github.com/stretchr/testify/require"
)

func caseResultPage(hearingDate string) []byte {
	return []byte(fmt.Sprintf(`
	<table class="case_details">
		<tr><td>Case Number</td><td>CS/123/2024</td></tr>
		<tr><td>Next Hearing Date</td><td>%s</td></tr>
		<tr><td>Court Number and Judge</td><td>Court No 5, Sh. Judge</td></tr>
		<tr><td>Sr. No</td><td>17</td></tr>
		<tr><td>Case Status</td><td>Pending</td></tr>
	</table>`, hearingDate))
}

func TestParseCaseResultDateClassification(t *testing.T) {
	now := time.Date(2024, 6, 10, 14, 30, 0, 0, timezone.Location)

	testCases := []struct {
		hearingDate    string
		listedToday    bool
		listedTomorrow bool
		found          bool
	}{
		{hearingDate: "10-06-2024", listedToday: true, found: true},
		{hearingDate: "11-06-2024", listedTomorrow: true, found: true},
		{hearingDate: "09-06-2024"},
		{hearingDate: "12-06-2024"},
		{hearingDate: "not a date"},
	}

	for _, test := range testCases {
		result := parseCaseResult(caseResultPage(test.hearingDate), "case-1", now)

		require.Equal(t, test.listedToday, result.ListedToday, "date %s", test.hearingDate)
		require.Equal(t, test.listedTomorrow, result.ListedTomorrow, "date %s", test.hearingDate)
		require.Equal(t, test.found, result.Found, "date %s", test.hearingDate)
		// the raw value is retained whether or not it parsed
		require.Equal(t, test.hearingDate, result.NextHearingDate)
	}
}

func TestParseCaseResultFields(t *testing.T) {
	now := time.Date(2024, 6, 10, 0, 0, 0, 0, timezone.Location)
	result := parseCaseResult(caseResultPage("10-06-2024"), "case-1", now)

	require.Equal(t, "Court No 5, Sh. Judge", result.CourtName)
	require.Equal(t, "17", result.SerialNumber)
	require.Equal(t, "Pending", result.CaseStatus)
	require.Equal(t, "CS/123/2024", result.Details["case number"])
	require.Equal(t, "Pending", result.Details["case status"])
	require.Len(t, result.Details, 5)
}

func TestParseCaseResultEmpty(t *testing.T) {
	now := time.Date(2024, 6, 10, 0, 0, 0, 0, timezone.Location)
	result := parseCaseResult([]byte("<html><body>Case not found</body></html>"), "case-1", now)

	require.False(t, result.Found)
	require.False(t, result.ListedToday)
	require.False(t, result.ListedTomorrow)
	require.Empty(t, result.NextHearingDate)
	require.Empty(t, result.Details)
}

func TestSearchCaseByCNR(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Write([]byte(statePage))
			return
		}
		require.Equal(t, "/ecourtindia_v6/ajax/search_case_cnr.php", r.URL.Path)
		require.NoError(t, r.ParseForm())
		require.Equal(t, "DLND010012342024", r.FormValue("cnr"))
		require.Equal(t, "26", r.FormValue("state_code"))

		w.Write(caseResultPage(timezone.Now().Format(portalDateLayout)))
	}))

	result, err := client.SearchCaseByCNR(context.Background(), "DLND010012342024", "26", "")
	require.NoError(t, err)
	require.Equal(t, SearchTypeCNR, result.SearchType)
	require.Equal(t, "DLND010012342024", result.CNR)
	require.True(t, result.ListedToday)
	require.True(t, result.Found)
}

func TestSearchCaseByDetails(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Write([]byte(statePage))
			return
		}
		require.Equal(t, "/ecourtindia_v6/ajax/search_case_details.php", r.URL.Path)
		require.NoError(t, r.ParseForm())
		require.Equal(t, "CS", r.FormValue("case_type"))
		require.Equal(t, "123", r.FormValue("case_no"))
		require.Equal(t, "2024", r.FormValue("case_year"))

		w.Write(caseResultPage("01-01-2020"))
	}))

	result, err := client.SearchCaseByDetails(context.Background(), "26", "9", "5", "CS", "123", "2024")
	require.NoError(t, err)
	require.Equal(t, SearchTypeDetails, result.SearchType)
	require.Equal(t, "CS/123/2024", result.CaseID)
	require.NotNil(t, result.CaseDetails)
	require.Equal(t, "CS", result.CaseDetails.CaseType)
	// an old hearing date means nothing is listed, which is not an error
	require.False(t, result.Found)
	require.Equal(t, "01-01-2020", result.NextHearingDate)
}
