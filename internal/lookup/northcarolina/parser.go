package northcarolina

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"licensure/internal/lookup"
	"licensure/internal/verify/models"
	strutil "licensure/pkg/platform/strings"
)

// searchLimit caps how many result rows one search yields.
const searchLimit = 20

// parseDetail reads the account detail fragment. Fields render as
// display-label / display-field sibling pairs; classifications live in a
// fieldset whose legend mentions Classification.
func parseDetail(body, licenseNumber string) ([]models.LicenseRecord, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, &lookup.ParseError{Reason: "invalid html", Snippet: firstBytes(body)}
	}

	labels := doc.Find("div.display-label")
	if labels.Length() == 0 {
		return nil, &lookup.ParseError{Reason: "account detail fields missing", Snippet: firstBytes(body)}
	}

	fields := make(map[string]string)
	labels.Each(func(_ int, label *goquery.Selection) {
		key := cleanText(label)
		if key == "" {
			return
		}
		value := label.NextAllFiltered("div.display-field").First()
		if value.Length() == 0 {
			return
		}
		fields[key] = cleanText(value)
	})

	number := fields["License #"]
	if number == "" {
		number = licenseNumber
	}

	rec := models.LicenseRecord{
		HolderName:     fields["Name"],
		LicenseNumber:  number,
		Class:          fields["License Limitation"],
		Status:         normalizeStatus(fields["Status"]),
		ExpirationDate: lookup.ParseDate(fields["Expiration Date"]),
		InitialDate:    lookup.ParseDate(fields["First Issued Date"]),
		FirmType:       fields["Account Type"],
		Specialties:    parseClassifications(doc),
		Address:        fields["Address"],
	}
	return []models.LicenseRecord{rec}, nil
}

// parseClassifications collects the entries of the classifications
// fieldset. The portal separates them with <br/>, so each text node is one
// classification.
func parseClassifications(doc *goquery.Document) []string {
	var out []string
	doc.Find("fieldset").Each(func(_ int, fs *goquery.Selection) {
		legend := fs.Find("legend").First()
		if legend.Length() == 0 || !strings.Contains(legend.Text(), "Classification") {
			return
		}
		fs.Find("div.display-field").First().Contents().Each(func(_ int, node *goquery.Selection) {
			if text := strings.Join(strings.Fields(node.Text()), " "); text != "" {
				out = append(out, text)
			}
		})
	})
	return strutil.DedupeAndTrim(out)
}

// parseSearch reads name-search result rows into summary records. Rows
// carry the license number as a ShowAccountDetails link in the first cell,
// the account type in the second, and the company name in the third.
func parseSearch(body string) ([]models.LicenseRecord, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, &lookup.ParseError{Reason: "invalid html", Snippet: firstBytes(body)}
	}

	var records []models.LicenseRecord
	doc.Find("tr").EachWithBreak(func(_ int, tr *goquery.Selection) bool {
		cells := tr.Find("td")
		if cells.Length() < 3 {
			return true
		}

		number := ""
		if link := cells.Eq(0).Find("a"); link.Length() > 0 {
			number = cleanText(link)
		} else {
			number = cleanText(cells.Eq(0))
		}

		records = append(records, models.LicenseRecord{
			LicenseNumber: number,
			Class:         cleanText(cells.Eq(1)),
			HolderName:    cleanText(cells.Eq(2)),
		})
		return len(records) < searchLimit
	})
	return records, nil
}

// normalizeStatus folds portal status wording into the engine vocabulary.
// The portal shows "License Not Valid" for invalidated licenses, "Archived"
// for retired ones, and an empty status for licenses in good standing.
func normalizeStatus(raw string) models.LicenseStatus {
	trimmed := strings.TrimSpace(raw)
	switch {
	case strings.Contains(trimmed, "License Not Valid"):
		return models.LicenseRevoked
	case strings.Contains(trimmed, "Archived"):
		return models.LicenseRevoked
	case trimmed == "" || strings.Contains(trimmed, "Active"):
		return models.LicenseActive
	case strings.Contains(strings.ToUpper(trimmed), "EXPIR"):
		return models.LicenseExpired
	default:
		return models.LicenseRevoked
	}
}

// mattersText flattens the public matters fragment to text. An empty
// fragment means no public disciplinary history.
func mattersText(body string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return ""
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}

func notFoundRecords(licenseNumber string) []models.LicenseRecord {
	return []models.LicenseRecord{{
		LicenseNumber: licenseNumber,
		Status:        models.LicenseNotFound,
	}}
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
