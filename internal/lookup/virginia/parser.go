package virginia

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"licensure/internal/lookup"
	"licensure/internal/verify/models"
	strutil "licensure/pkg/platform/strings"
)

// searchLimit caps how many result rows one search yields.
const searchLimit = 20

// parseDetail reads the license detail page. The portal renders fields as
// strong-label / sibling-value column pairs inside div#license-details-tab.
// A page without the detail tab is the portal's no-such-license response
// when it carries an alert box, and unrecognizable markup otherwise.
func parseDetail(body, licenseNumber string) ([]models.LicenseRecord, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, &lookup.ParseError{Reason: "invalid html", Snippet: firstBytes(body)}
	}

	detail := doc.Find("div#license-details-tab")
	if detail.Length() == 0 {
		if doc.Find("div.alert-danger").Length() > 0 {
			return []models.LicenseRecord{{
				LicenseNumber: licenseNumber,
				Status:        models.LicenseNotFound,
			}}, nil
		}
		return nil, &lookup.ParseError{Reason: "license detail tab missing", Snippet: firstBytes(body)}
	}

	fields := make(map[string]string)
	detail.Find("strong").Each(func(_ int, label *goquery.Selection) {
		key := cleanText(label)
		if key == "" {
			return
		}
		parent := label.Closest("div")
		if parent.Length() == 0 {
			return
		}
		value := parent.NextAllFiltered("div").First()
		if value.Length() == 0 {
			return
		}
		fields[key] = cleanText(value)
	})

	// The portal omits the Status row entirely for licenses in good
	// standing.
	status, ok := fields["Status"]
	if !ok {
		status = "ACTIVE"
	}

	rec := models.LicenseRecord{
		HolderName:     fields["Name"],
		LicenseNumber:  licenseNumber,
		Class:          fields["Rank"],
		Status:         normalizeStatus(status),
		ExpirationDate: lookup.ParseDate(fields["Expiration Date"]),
		InitialDate:    lookup.ParseDate(fields["Initial Certification Date"]),
		FirmType:       fields["Firm Type"],
		Specialties:    splitSpecialties(fields["Specialties"]),
		Address:        fields["Address"],
	}
	return []models.LicenseRecord{rec}, nil
}

// parseSearch reads the name-search results table into summary records.
// Summaries carry no standing; verification always refetches the detail
// page for the candidate it settles on.
func parseSearch(body string) ([]models.LicenseRecord, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, &lookup.ParseError{Reason: "invalid html", Snippet: firstBytes(body)}
	}

	table := doc.Find("table#search-results")
	if table.Length() == 0 {
		return nil, nil
	}

	rows := table.Find("tbody tr")
	if rows.Length() == 0 {
		rows = table.Find("tr")
	}

	var records []models.LicenseRecord
	rows.EachWithBreak(func(_ int, tr *goquery.Selection) bool {
		cells := tr.Find("td")
		if cells.Length() < 5 {
			return true
		}

		number := ""
		if input := cells.Eq(0).Find(`input[name="license-number"]`); input.Length() > 0 {
			number, _ = input.Attr("value")
		} else {
			number = cleanText(cells.Eq(0))
		}

		records = append(records, models.LicenseRecord{
			LicenseNumber: number,
			HolderName:    cleanText(cells.Eq(1)),
			Address:       cleanText(cells.Eq(2)),
			Class:         cleanText(cells.Eq(3)),
		})
		return len(records) < searchLimit
	})
	return records, nil
}

// normalizeStatus folds portal status wording into the engine vocabulary.
// Anything that is neither active nor expired (suspended, revoked,
// surrendered, probation) lands in the revoked bucket: the record exists
// but does not corroborate a license claim.
func normalizeStatus(raw string) models.LicenseStatus {
	upper := strings.ToUpper(strings.TrimSpace(raw))
	switch {
	case strings.Contains(upper, "ACTIV"):
		return models.LicenseActive
	case strings.Contains(upper, "EXPIR"):
		return models.LicenseExpired
	default:
		return models.LicenseRevoked
	}
}

func splitSpecialties(raw string) []string {
	if raw == "" {
		return nil
	}
	return strutil.DedupeAndTrim(strings.Split(raw, ","))
}

func cleanText(sel *goquery.Selection) string {
	return strings.Join(strings.Fields(sel.Text()), " ")
}

func firstBytes(body string) string {
	if len(body) > 256 {
		return body[:256]
	}
	return body
}
