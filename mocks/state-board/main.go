// Command state-board serves canned Virginia DPOR and North Carolina NCLBGC
// portal pages so the engine can run without touching the live portals.
//
// Point the server at it:
//
//	LICENSURE_VIRGINIA_BASE_URL=http://localhost:9190/dpor \
//	LICENSURE_NORTH_CAROLINA_BASE_URL=http://localhost:9190/nclbgc \
//	go run ./cmd/server
//
// The pages mirror the live portals' markup closely enough for the real
// parsers: DPOR renders strong-label / sibling-div pairs, NCLBGC renders
// display-label / display-field pairs behind an encrypted account key.
package main

import (
	"flag"
	"html/template"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"
)

type vaLicense struct {
	Number      string
	Name        string
	Rank        string
	Status      string // empty means good standing; DPOR omits the row
	Expires     string
	Initial     string
	FirmType    string
	Specialties string
	Address     string
}

type ncLicense struct {
	Number          string
	Name            string
	Limitation      string
	Status          string // empty means good standing
	Expires         string
	FirstIssued     string
	AccountType     string
	Classifications []string
	Matters         string
}

func main() {
	addr := flag.String("addr", ":9190", "listen address")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))
	s := newServer()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /dpor/LicenseDetail", s.dporDetail)
	mux.HandleFunc("POST /dpor/Search", s.dporSearch)
	mux.HandleFunc("POST /nclbgc/_Search/", s.ncSearch)
	mux.HandleFunc("GET /nclbgc/_ShowAccountDetails/", s.ncDetail)
	mux.HandleFunc("GET /nclbgc/_ShowNCLBGCPublicMatters/", s.ncMatters)

	log.Info("state-board stub listening", "addr", *addr)
	if err := http.ListenAndServe(*addr, logRequests(log, mux)); err != nil {
		log.Error("stub exited", "error", err)
		os.Exit(1)
	}
}

func logRequests(log *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Info("portal request", "method", r.Method, "path", r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

type server struct {
	virginia      map[string]vaLicense
	northCarolina map[string]ncLicense
}

// newServer loads the fixtures. Expiration dates are computed relative to
// now so the "active" licenses never lapse on a stale checkout.
func newServer() *server {
	now := time.Now()
	nextYear := now.AddDate(1, 0, 0).Format("01/02/2006")

	return &server{
		virginia: map[string]vaLicense{
			"2705081693": {
				Number:      "2705081693",
				Name:        "BLUE RIDGE PAINTING LLC",
				Rank:        "Class C",
				Expires:     nextYear,
				Initial:     "03/15/2019",
				FirmType:    "Limited Liability Company",
				Specialties: "PTC, HIC",
				Address:     "214 ORCHARD LN CHARLOTTESVILLE VA 22901",
			},
			"2705014734": {
				Number:      "2705014734",
				Name:        "TIDEWATER ROOFING CO",
				Rank:        "Class C",
				Status:      "EXPIRED",
				Expires:     "06/30/2024",
				Initial:     "08/01/2008",
				FirmType:    "Corporation",
				Specialties: "ROC",
				Address:     "52 HARBOR DR NORFOLK VA 23501",
			},
			"2701013163": {
				Number:      "2701013163",
				Name:        "JAMES RIVER DECORATING INC",
				Rank:        "Class A",
				Expires:     nextYear,
				Initial:     "05/20/1994",
				FirmType:    "Corporation",
				Specialties: "PTC",
				Address:     "1800 RIVERSIDE AVE RICHMOND VA 23220",
			},
			"2705033021": {
				Number:      "2705033021",
				Name:        "OLD DOMINION COATINGS",
				Rank:        "Class C",
				Status:      "SUSPENDED",
				Expires:     nextYear,
				Initial:     "11/12/2015",
				FirmType:    "Sole Proprietorship",
				Specialties: "PTC",
				Address:     "9 MILL ST ROANOKE VA 24011",
			},
		},
		northCarolina: map[string]ncLicense{
			"83060": {
				Number:          "83060",
				Name:            "CAPE FEAR ROOFING & SHEET METAL",
				Limitation:      "Limited",
				Expires:         nextYear,
				FirstIssued:     "04/02/2012",
				AccountType:     "Corporation",
				Classifications: []string{"BUILDING", "RESIDENTIAL"},
			},
			"100177": {
				Number:          "100177",
				Name:            "PIEDMONT EXTERIORS LLC",
				Limitation:      "Limited",
				Status:          "Expired",
				Expires:         "12/31/2023",
				FirstIssued:     "09/14/2018",
				AccountType:     "LLC",
				Classifications: []string{"RESIDENTIAL"},
			},
			"34522": {
				Number:          "34522",
				Name:            "OLD NORTH STATE BUILDERS",
				Limitation:      "Unlimited",
				Status:          "License Not Valid",
				Expires:         "12/31/2020",
				FirstIssued:     "02/28/1990",
				AccountType:     "Corporation",
				Classifications: []string{"BUILDING"},
				Matters:         "Matter 2019-044: license revoked, abandonment of project",
			},
		},
	}
}

var vaDetailTmpl = template.Must(template.New("va-detail").Parse(`<!DOCTYPE html>
<html><head><title>License Detail</title></head><body>
<div id="license-details-tab">
  <div class="row">
    <div class="col-md-4"><strong>Name</strong></div>
    <div class="col-md-8">{{.Name}}</div>
  </div>
  <div class="row">
    <div class="col-md-4"><strong>License Number</strong></div>
    <div class="col-md-8">{{.Number}}</div>
  </div>
  <div class="row">
    <div class="col-md-4"><strong>Rank</strong></div>
    <div class="col-md-8">{{.Rank}}</div>
  </div>
{{- if .Status}}
  <div class="row">
    <div class="col-md-4"><strong>Status</strong></div>
    <div class="col-md-8">{{.Status}}</div>
  </div>
{{- end}}
  <div class="row">
    <div class="col-md-4"><strong>Expiration Date</strong></div>
    <div class="col-md-8">{{.Expires}}</div>
  </div>
  <div class="row">
    <div class="col-md-4"><strong>Initial Certification Date</strong></div>
    <div class="col-md-8">{{.Initial}}</div>
  </div>
  <div class="row">
    <div class="col-md-4"><strong>Firm Type</strong></div>
    <div class="col-md-8">{{.FirmType}}</div>
  </div>
  <div class="row">
    <div class="col-md-4"><strong>Specialties</strong></div>
    <div class="col-md-8">{{.Specialties}}</div>
  </div>
  <div class="row">
    <div class="col-md-4"><strong>Address</strong></div>
    <div class="col-md-8">{{.Address}}</div>
  </div>
</div>
</body></html>
`))

const vaNotFoundPage = `<!DOCTYPE html>
<html><head><title>License Lookup</title></head><body>
<div class="alert alert-danger">No license was found matching your criteria.</div>
</body></html>
`

var vaSearchTmpl = template.Must(template.New("va-search").Parse(`<!DOCTYPE html>
<html><head><title>Search Results</title></head><body>
<table id="search-results">
  <thead>
    <tr><th></th><th>Name</th><th>Address</th><th>Rank</th><th>Expires</th></tr>
  </thead>
  <tbody>
{{- range .}}
    <tr>
      <td><input type="hidden" name="license-number" value="{{.Number}}"/>{{.Number}}</td>
      <td>{{.Name}}</td>
      <td>{{.Address}}</td>
      <td>{{.Rank}}</td>
      <td>{{.Expires}}</td>
    </tr>
{{- end}}
  </tbody>
</table>
</body></html>
`))

const vaSearchEmptyPage = `<!DOCTYPE html>
<html><head><title>Search Results</title></head><body>
<p>Your search returned no results.</p>
</body></html>
`

func (s *server) dporDetail(w http.ResponseWriter, r *http.Request) {
	number := strings.TrimSpace(r.FormValue("license-number"))
	lic, ok := s.virginia[number]
	if !ok {
		writeHTML(w, vaNotFoundPage)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_ = vaDetailTmpl.Execute(w, lic)
}

func (s *server) dporSearch(w http.ResponseWriter, r *http.Request) {
	query := strings.ToUpper(strings.TrimSpace(r.FormValue("search-text")))
	var matches []vaLicense
	if query != "" {
		for _, lic := range s.virginia {
			if strings.Contains(lic.Name, query) {
				matches = append(matches, lic)
			}
		}
	}
	if len(matches) == 0 {
		writeHTML(w, vaSearchEmptyPage)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_ = vaSearchTmpl.Execute(w, matches)
}

var ncFoundTmpl = template.Must(template.New("nc-found").Parse(`<!DOCTYPE html>
<html><head><title>Search</title></head><body>
<table>
  <tr><th>License #</th><th>Account Type</th><th>Name</th></tr>
{{- range .}}
  <tr onclick="ShowAccountDetails('key-{{.Number}}')">
    <td><a href="#" onclick="ShowAccountDetails('key-{{.Number}}')">{{.Number}}</a></td>
    <td>{{.AccountType}}</td>
    <td>{{.Name}}</td>
  </tr>
{{- end}}
</table>
</body></html>
`))

const ncEmptyPage = `<!DOCTYPE html>
<html><head><title>Search</title></head><body>
<p>No records found.</p>
</body></html>
`

var ncDetailTmpl = template.Must(template.New("nc-detail").Parse(`<div class="account-details">
  <div class="display-label">Name</div>
  <div class="display-field">{{.Name}}</div>
  <div class="display-label">License #</div>
  <div class="display-field">{{.Number}}</div>
  <div class="display-label">Status</div>
  <div class="display-field">{{.Status}}</div>
  <div class="display-label">License Limitation</div>
  <div class="display-field">{{.Limitation}}</div>
  <div class="display-label">Expiration Date</div>
  <div class="display-field">{{.Expires}}</div>
  <div class="display-label">First Issued Date</div>
  <div class="display-field">{{.FirstIssued}}</div>
  <div class="display-label">Account Type</div>
  <div class="display-field">{{.AccountType}}</div>
  <fieldset>
    <legend>Classifications</legend>
    <div class="display-field">{{range $i, $c := .Classifications}}{{if $i}}<br/>{{end}}{{$c}}{{end}}</div>
  </fieldset>
</div>
`))

func (s *server) ncSearch(w http.ResponseWriter, r *http.Request) {
	if number := strings.TrimSpace(r.FormValue("AccountNumber")); number != "" {
		lic, ok := s.northCarolina[number]
		if !ok {
			writeHTML(w, ncEmptyPage)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_ = ncFoundTmpl.Execute(w, []ncLicense{lic})
		return
	}

	query := strings.ToUpper(strings.TrimSpace(r.FormValue("CompanyName")))
	var matches []ncLicense
	if query != "" {
		for _, lic := range s.northCarolina {
			if strings.Contains(lic.Name, query) {
				matches = append(matches, lic)
			}
		}
	}
	if len(matches) == 0 {
		writeHTML(w, ncEmptyPage)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_ = ncFoundTmpl.Execute(w, matches)
}

func (s *server) ncDetail(w http.ResponseWriter, r *http.Request) {
	lic, ok := s.northCarolina[accountKey(r)]
	if !ok {
		writeHTML(w, ncEmptyPage)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_ = ncDetailTmpl.Execute(w, lic)
}

func (s *server) ncMatters(w http.ResponseWriter, r *http.Request) {
	lic, ok := s.northCarolina[accountKey(r)]
	if !ok || lic.Matters == "" {
		writeHTML(w, "")
		return
	}
	writeHTML(w, "<div class=\"matters\">"+template.HTMLEscapeString(lic.Matters)+"</div>")
}

func accountKey(r *http.Request) string {
	return strings.TrimPrefix(r.URL.Query().Get("key"), "key-")
}

func writeHTML(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(body))
}
