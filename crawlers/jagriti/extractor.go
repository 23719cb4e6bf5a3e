package jagriti

import (
	"fmt"
	"io"
	"strings"

	gq "github.com/PuerkitoBio/goquery"
	"github.com/samber/mo"
)

const (
	resultsTableSelector = "table#reportOrde"
	minResultCells       = 7
)

// ExtractCases parses the results page into cases.
//
// Rows with fewer than seven cells are placeholders and are skipped. The
// respondent advocate column is never read from the table, and document links
// are baseURL and href joined as plain strings, exactly as the portal's own
// links are built. A page without the results table yields no cases.
func ExtractCases(r io.Reader, baseURL string) ([]Case, error) {
	doc, err := gq.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing results page: %w", err)
	}

	tbody := doc.Find(resultsTableSelector).First().Find("tbody").First()

	cases := []Case{}
	tbody.Find("tr").Each(func(_ int, row *gq.Selection) {
		c, ok := extractRow(row, baseURL)
		if ok {
			cases = append(cases, c)
		}
	})

	return cases, nil
}

func extractRow(row *gq.Selection, baseURL string) (Case, bool) {
	cells := row.Find("td").Map(func(_ int, td *gq.Selection) string {
		return strings.TrimSpace(td.Text())
	})
	if len(cells) < minResultCells {
		return Case{}, false
	}

	docLink := mo.None[string]()
	if href, ok := row.Find("a").First().Attr("href"); ok {
		docLink = mo.Some(baseURL + href)
	}

	return Case{
		FilingDate:          cells[0],
		CaseStage:           cells[1],
		CaseNumber:          cells[2],
		Complainant:         cells[3],
		Respondent:          cells[4],
		ComplainantAdvocate: mo.Some(cells[5]),
		RespondentAdvocate:  mo.None[string](),
		DocumentLink:        docLink,
	}, true
}
