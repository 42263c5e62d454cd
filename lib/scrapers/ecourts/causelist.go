package ecourts

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"causelist-backend/lib/htmlutil"
	"causelist-backend/lib/timezone"
)

// CaptchaChallenge is one round of the human gate in front of the
// cause-list endpoint. It is only valid while the session token it was
// issued against stays current, so it should be solved promptly.
type CaptchaChallenge struct {
	// base64 data URI of the challenge image
	Image string `json:"image"`
	// optional audio rendition of the same challenge
	AudioURL string `json:"audio,omitempty"`
}

type CauseListRequest struct {
	StateCode        string
	DistrictCode     string
	CourtComplexCode string
	// CourtCode is mandatory for this endpoint, unlike search.
	CourtCode string
	// Date accepts DD-MM-YYYY or YYYY-MM-DD.
	Date        string
	CaptchaCode string
	// CauseType is "civ" or "cri", defaulting to "civ".
	CauseType string
	CourtName string
}

type CauseListEntry struct {
	SerialNumber string `json:"serial_number"`
	CaseNumber   string `json:"case_number"`
	Parties      string `json:"parties"`
	Advocate     string `json:"advocate"`
	Purpose      string `json:"purpose"`
}

type CauseListMetadata struct {
	StateCode        string    `json:"state_code"`
	DistrictCode     string    `json:"district_code"`
	CourtComplexCode string    `json:"court_complex_code"`
	CourtCode        string    `json:"court_code,omitempty"`
	Date             string    `json:"date"`
	CauseType        string    `json:"cause_type"`
	CourtName        string    `json:"court_name,omitempty"`
	FetchedAt        time.Time `json:"fetched_at"`
}

// CauseListResult is always terminal: no submission is ever retried
// internally. A rejected or failed round carries its diagnosis in
// Error/Errors, and NextCaptcha holds the replacement challenge to use
// on the next attempt whenever one could be obtained.
type CauseListResult struct {
	TotalCases int               `json:"total_cases"`
	Cases      []CauseListEntry  `json:"cases"`
	Metadata   CauseListMetadata `json:"metadata"`
	Error      string            `json:"error,omitempty"`
	Errors     []string          `json:"errors,omitempty"`
	NextCaptcha *CaptchaChallenge `json:"next_captcha,omitempty"`
}

// FetchCaptcha retrieves a fresh captcha challenge for cause-list
// submission. Any missing piece of the expected markup is an error;
// the caller decides whether to retry.
func (c *Client) FetchCaptcha(ctx context.Context) (*CaptchaChallenge, error) {
	ctx, span := tracer.Start(ctx, "client:FetchCaptcha")
	defer span.End()

	body, err := c.postForm(ctx, "/?p=casestatus/getCaptcha", nil)
	if err != nil {
		return nil, err
	}

	payload := extractJSONPayload(body)
	if len(payload) == 0 {
		return nil, fmt.Errorf("captcha response was not json")
	}
	c.observePayload(payload)

	fragment, _ := payload["div_captcha"].(string)
	if fragment == "" {
		return nil, fmt.Errorf("captcha fragment missing from response")
	}

	doc, err := htmlutil.Fragment(fragment)
	if err != nil {
		return nil, err
	}

	img := doc.Find("img#captcha_image").First()
	if img.Length() == 0 {
		img = doc.Find("img").First()
	}
	src := strings.TrimSpace(img.AttrOr("src", ""))
	if src == "" {
		return nil, fmt.Errorf("captcha image missing from fragment")
	}

	imgRes, err := c.Http.R().
		SetContext(ctx).
		Get(c.resolvePortalURL(src))
	if err != nil {
		return nil, err
	}
	if imgRes.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("captcha image fetch returned status %d", imgRes.StatusCode())
	}

	challenge := &CaptchaChallenge{
		Image: "data:image/png;base64," + base64.StdEncoding.EncodeToString(imgRes.Body()),
	}
	if href := strings.TrimSpace(doc.Find("a.captcha_play_button").First().AttrOr("href", "")); href != "" {
		challenge.AudioURL = c.resolvePortalURL(href)
	}
	return challenge, nil
}

// FetchCauseList submits a solved captcha along with the court and
// date selection, returning the day's docket. Every outcome, including
// transport failure, comes back as a terminal result; rejection and
// acceptance both chain a fresh challenge in NextCaptcha when the
// portal offers one, since a captcha is single-use.
func (c *Client) FetchCauseList(ctx context.Context, req CauseListRequest) CauseListResult {
	ctx, span := tracer.Start(ctx, "client:FetchCauseList")
	defer span.End()

	if req.CauseType == "" {
		req.CauseType = "civ"
	}
	cc := ParseComplexCode(req.CourtComplexCode)
	date := normalizeDate(req.Date)

	meta := CauseListMetadata{
		StateCode:        req.StateCode,
		DistrictCode:     req.DistrictCode,
		CourtComplexCode: cc.ID,
		CourtCode:        req.CourtCode,
		Date:             date,
		CauseType:        req.CauseType,
		CourtName:        req.CourtName,
		FetchedAt:        timezone.Now(),
	}

	if req.CourtCode == "" {
		return CauseListResult{
			Error:    "court selection is required for cause list download",
			Cases:    []CauseListEntry{},
			Metadata: meta,
		}
	}

	selected, err := time.ParseInLocation(portalDateLayout, date, timezone.Location)
	if err != nil {
		selected = timezone.Now()
	}

	// listings for today or earlier stay hidden unless the portal is
	// told to look at previous days; future dates must not set this
	var selprevdays any
	if !timezone.Day(selected).After(timezone.Day(timezone.Now())) {
		selprevdays = "1"
	}

	estCode := ""
	if cc.Flag == "Y" {
		estCode = strings.SplitN(req.CourtCode, "$", 2)[0]
	}

	body, err := c.postForm(ctx, "/?p=cause_list/submitCauseList", map[string]any{
		"state_code":              req.StateCode,
		"dist_code":               req.DistrictCode,
		"court_complex_code":      cc.ID,
		"est_code":                estCode,
		"CL_court_no":             req.CourtCode,
		"causelist_date":          date,
		"cause_list_captcha_code": req.CaptchaCode,
		"fcaptcha_code":           req.CaptchaCode,
		"cicri":                   req.CauseType,
		"selprevdays":             selprevdays,
		"court_name_txt":          req.CourtName,
	})
	if err != nil {
		slog.WarnContext(ctx, "cause list submission failed", "err", err)
		return CauseListResult{
			Error:    err.Error(),
			Cases:    []CauseListEntry{},
			Metadata: meta,
		}
	}

	payload := extractJSONPayload(body)
	c.observePayload(payload)

	if len(payload) == 0 {
		slog.WarnContext(ctx, "cause list response not in json format",
			"snippet", body[:min(len(body), 200)])
		// warm-up style pages carry the token in markup instead
		c.observeMarkup(body)
		return CauseListResult{
			Error:    "unable to process cause list response",
			Cases:    []CauseListEntry{},
			Metadata: meta,
		}
	}

	if status, _ := payload["status"].(float64); status != 1 {
		result := CauseListResult{
			Cases:    []CauseListEntry{},
			Metadata: meta,
			Error:    "cause list request was rejected",
		}
		for _, key := range []string{"errormsg", "message"} {
			raw, _ := payload[key].(string)
			if raw == "" {
				continue
			}
			if text := htmlutil.FragmentText(raw); text != "" {
				result.Error = text
				result.Errors = []string{text}
				break
			}
		}
		// the rejected captcha is spent, chain a replacement
		c.attachNextCaptcha(ctx, &result)
		return result
	}

	caseHTML, _ := payload["case_data"].(string)
	rows := extractTableRows(caseHTML, 4)

	cases := make([]CauseListEntry, 0, len(rows))
	for _, row := range rows {
		entry := CauseListEntry{
			SerialNumber: row[0],
			CaseNumber:   row[1],
			Parties:      row[2],
			Advocate:     row[3],
		}
		if len(row) > 4 {
			entry.Purpose = row[4]
		}
		cases = append(cases, entry)
	}

	result := CauseListResult{
		TotalCases: len(cases),
		Cases:      cases,
		Metadata:   meta,
	}
	if fragment, _ := payload["div_captcha"].(string); fragment != "" {
		// the portal issues one captcha per use; chaining here lets the
		// caller resubmit without an extra round trip
		c.attachNextCaptcha(ctx, &result)
	}
	return result
}

func (c *Client) attachNextCaptcha(ctx context.Context, result *CauseListResult) {
	next, err := c.FetchCaptcha(ctx)
	if err != nil {
		slog.WarnContext(ctx, "fetch follow-up captcha", "err", err)
		return
	}
	result.NextCaptcha = next
}

// normalizeDate rewrites year-first dates to the portal's DD-MM-YYYY
// form, detected by the position of the 4-digit year segment. Anything
// else passes through untouched.
func normalizeDate(date string) string {
	pieces := strings.Split(date, "-")
	if len(pieces) == 3 && len(pieces[0]) == 4 {
		return fmt.Sprintf("%s-%s-%s", pieces[2], pieces[1], pieces[0])
	}
	return date
}
