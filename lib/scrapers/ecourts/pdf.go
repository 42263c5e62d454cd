package ecourts

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

type CauseListPDFRequest struct {
	StateCode        string
	DistrictCode     string
	CourtComplexCode string
	// optional, narrows the pdf to a single court
	CourtCode string
	Date      string
}

// DownloadCauseListPDF fetches the published cause-list PDF as raw
// bytes, along with a filename derived from the selection. The bytes
// are passed through untouched; persistence is the caller's concern.
func (c *Client) DownloadCauseListPDF(ctx context.Context, req CauseListPDFRequest) ([]byte, string, error) {
	ctx, span := tracer.Start(ctx, "client:DownloadCauseListPDF")
	defer span.End()

	cc := ParseComplexCode(req.CourtComplexCode)
	date := normalizeDate(req.Date)

	fields := map[string]any{
		"state_code":         req.StateCode,
		"dist_code":          req.DistrictCode,
		"court_complex_code": cc.ID,
		"date":               date,
	}
	if req.CourtCode != "" {
		fields["court_code"] = req.CourtCode
	}

	c.ensureReady(ctx)
	res, err := c.Http.R().
		SetContext(ctx).
		SetFormData(c.prepareFormData(fields)).
		Post("/ajax/download_cause_list_pdf.php")
	if err != nil {
		return nil, "", err
	}

	if res.StatusCode() != http.StatusOK ||
		!strings.Contains(res.Header().Get("content-type"), "application/pdf") {
		return nil, "", fmt.Errorf("portal did not return a pdf (status %d)", res.StatusCode())
	}

	filename := fmt.Sprintf(
		"cause_list_%s_%s_%s_%s.pdf",
		req.StateCode, req.DistrictCode, cc.ID,
		strings.ReplaceAll(date, "-", ""),
	)
	return res.Body(), filename, nil
}
