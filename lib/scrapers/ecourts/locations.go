package ecourts

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Location is a single entry in the portal's location hierarchy: a
// state, district, court complex or court, identified by the code the
// portal expects back on subsequent form posts.
type Location struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

func locationsFrom(opts []option) []Location {
	locations := make([]Location, 0, len(opts))
	for _, o := range opts {
		locations = append(locations, Location{Code: o.Value, Name: o.Text})
	}
	return locations
}

// FetchStates scrapes the state dropdown from the entry page. When the
// live extraction yields nothing, whether because the request failed or
// the markup moved, the hardcoded state table is returned instead: the
// state list is static enough that availability wins over freshness.
func (c *Client) FetchStates(ctx context.Context) []Location {
	ctx, span := tracer.Start(ctx, "client:FetchStates")
	defer span.End()

	res, err := c.Http.R().
		SetContext(ctx).
		Get(entryPath)
	if err != nil {
		slog.WarnContext(ctx, "fetch states from portal", "err", err)
		return defaultStates()
	}

	c.observeMarkup(res.String())
	c.mu.Lock()
	c.warmedUp = true
	c.mu.Unlock()

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body()))
	if err != nil {
		slog.WarnContext(ctx, "parse state page", "err", err)
		return defaultStates()
	}

	opts := extractOptions(
		doc,
		"select#sess_state_code",
		"select#state_code",
		"select[name=state_code]",
	)
	if len(opts) == 0 {
		slog.WarnContext(ctx, "state dropdown missing or empty, using fallback table")
		return defaultStates()
	}
	return locationsFrom(opts)
}

// FetchDistricts lists the districts of a state.
func (c *Client) FetchDistricts(ctx context.Context, stateCode string) ([]Location, error) {
	ctx, span := tracer.Start(ctx, "client:FetchDistricts")
	defer span.End()

	body, err := c.postForm(ctx, "/?p=casestatus/fillDistrict", map[string]any{
		"state_code": stateCode,
	})
	if err != nil {
		return nil, err
	}

	payload := extractJSONPayload(body)
	c.observePayload(payload)

	fragment, _ := payload["dist_list"].(string)
	return locationsFrom(parseOptionFragment(fragment)), nil
}

// FetchCourtComplexes lists the court complexes of a district. The
// returned codes may be composite, see ParseComplexCode.
func (c *Client) FetchCourtComplexes(ctx context.Context, stateCode, districtCode string) ([]Location, error) {
	ctx, span := tracer.Start(ctx, "client:FetchCourtComplexes")
	defer span.End()

	body, err := c.postForm(ctx, "/?p=casestatus/fillcomplex", map[string]any{
		"state_code": stateCode,
		"dist_code":  districtCode,
	})
	if err != nil {
		return nil, err
	}

	payload := extractJSONPayload(body)
	c.observePayload(payload)

	fragment, _ := payload["complex_list"].(string)
	return locationsFrom(parseOptionFragment(fragment)), nil
}

// FetchCourts lists the individual courts of a complex. A composite
// complex code can carry several establishment codes; the court number
// endpoint is queried once per establishment and the results merged,
// deduplicated by court code in first-seen order since establishments
// can share a physical court.
func (c *Client) FetchCourts(ctx context.Context, stateCode, districtCode, complexCode string) ([]Location, error) {
	ctx, span := tracer.Start(ctx, "client:FetchCourts")
	defer span.End()

	cc := ParseComplexCode(complexCode)
	estCodes := cc.EstCodes
	if len(estCodes) == 0 {
		estCodes = []string{""}
	}

	var courts []Location
	seen := map[string]bool{}
	var errlist []error

	for _, estCode := range estCodes {
		batch, err := c.fetchCourtNumbers(ctx, stateCode, districtCode, cc.ID, estCode)
		if err != nil {
			slog.WarnContext(ctx, "fetch court numbers for establishment",
				"est_code", estCode, "err", err)
			errlist = append(errlist, err)
			continue
		}
		for _, court := range batch {
			if seen[court.Code] {
				continue
			}
			seen[court.Code] = true
			courts = append(courts, court)
		}
	}

	if len(courts) == 0 && len(errlist) > 0 {
		return nil, errors.Join(errlist...)
	}
	return courts, nil
}

func (c *Client) fetchCourtNumbers(ctx context.Context, stateCode, districtCode, complexID, estCode string) ([]Location, error) {
	body, err := c.postForm(ctx, "/?p=courtorder/fillCourtNumber", map[string]any{
		"state_code":         stateCode,
		"dist_code":          districtCode,
		"court_complex_code": complexID,
		"est_code":           estCode,
	})
	if err != nil {
		return nil, err
	}

	payload := extractJSONPayload(body)
	c.observePayload(payload)

	fragment, _ := payload["courtnumber_list"].(string)

	var courts []Location
	for _, o := range parseOptionFragment(fragment) {
		// "D" is the dropdown's own placeholder on this endpoint
		if strings.EqualFold(o.Value, "D") || strings.Contains(o.Text, "Select Court") {
			continue
		}
		courts = append(courts, Location{Code: o.Value, Name: o.Text})
	}
	return courts, nil
}

// defaultStates is the availability fallback for FetchStates. Codes
// are the portal's own, they are not sequential.
func defaultStates() []Location {
	return []Location{
		{Code: "28", Name: "Andaman and Nicobar"},
		{Code: "2", Name: "Andhra Pradesh"},
		{Code: "36", Name: "Arunachal Pradesh"},
		{Code: "6", Name: "Assam"},
		{Code: "8", Name: "Bihar"},
		{Code: "27", Name: "Chandigarh"},
		{Code: "18", Name: "Chhattisgarh"},
		{Code: "26", Name: "Delhi"},
		{Code: "30", Name: "Goa"},
		{Code: "17", Name: "Gujarat"},
		{Code: "14", Name: "Haryana"},
		{Code: "5", Name: "Himachal Pradesh"},
		{Code: "12", Name: "Jammu and Kashmir"},
		{Code: "7", Name: "Jharkhand"},
		{Code: "3", Name: "Karnataka"},
		{Code: "4", Name: "Kerala"},
		{Code: "33", Name: "Ladakh"},
		{Code: "37", Name: "Lakshadweep"},
		{Code: "23", Name: "Madhya Pradesh"},
		{Code: "1", Name: "Maharashtra"},
		{Code: "25", Name: "Manipur"},
		{Code: "21", Name: "Meghalaya"},
		{Code: "19", Name: "Mizoram"},
		{Code: "34", Name: "Nagaland"},
		{Code: "11", Name: "Odisha"},
		{Code: "35", Name: "Puducherry"},
		{Code: "22", Name: "Punjab"},
		{Code: "9", Name: "Rajasthan"},
		{Code: "24", Name: "Sikkim"},
		{Code: "10", Name: "Tamil Nadu"},
		{Code: "29", Name: "Telangana"},
		{Code: "38", Name: "The Dadra And Nagar Haveli And Daman And Diu"},
		{Code: "20", Name: "Tripura"},
		{Code: "15", Name: "Uttarakhand"},
		{Code: "13", Name: "Uttar Pradesh"},
		{Code: "16", Name: "West Bengal"},
	}
}
