package report

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/unidoc/unipdf/v3/creator"
	"github.com/unidoc/unipdf/v3/model"
)

// Review carries everything the report needs. Kept free of the storage model
// so the renderer has no dependency on the feature package.
type Review struct {
	FileName  string
	JobRole   string
	Feedback  string
	ATSScore  *float64
	CreatedAt time.Time
}

// Render produces a single-document PDF report for a stored review.
func Render(review Review) ([]byte, error) {
	c := creator.New()
	c.SetPageMargins(50, 50, 60, 60)
	c.NewPage()

	regular, err := model.NewStandard14Font(model.HelveticaName)
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}
	bold, err := model.NewStandard14Font(model.HelveticaBoldName)
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}

	title := c.NewParagraph("Resume Review Report")
	title.SetFont(bold)
	title.SetFontSize(20)
	title.SetMargins(0, 0, 0, 16)
	if err := c.Draw(title); err != nil {
		return nil, err
	}

	meta := []struct {
		label string
		value string
	}{
		{"File", review.FileName},
		{"Target Role", review.JobRole},
		{"Reviewed", review.CreatedAt.UTC().Format(time.RFC1123)},
		{"ATS Score", FormatScore(review.ATSScore)},
	}
	for _, line := range meta {
		p := c.NewParagraph(fmt.Sprintf("%s: %s", line.label, line.value))
		p.SetFont(regular)
		p.SetFontSize(11)
		p.SetMargins(0, 0, 0, 4)
		if err := c.Draw(p); err != nil {
			return nil, err
		}
	}

	heading := c.NewParagraph("Feedback")
	heading.SetFont(bold)
	heading.SetFontSize(14)
	heading.SetMargins(0, 0, 16, 8)
	if err := c.Draw(heading); err != nil {
		return nil, err
	}

	body := c.NewParagraph(review.Feedback)
	body.SetFont(regular)
	body.SetFontSize(11)
	body.SetLineHeight(1.4)
	body.SetEnableWrap(true)
	if err := c.Draw(body); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := c.Write(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// FormatScore renders the score for display. A missing score is shown, not
// hidden: degraded reviews still produce a report.
func FormatScore(score *float64) string {
	if score == nil {
		return "Not Available"
	}
	return strconv.FormatFloat(*score, 'f', -1, 64) + "/10"
}
