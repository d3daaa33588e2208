package api_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/LeifStrom/hiring/internal/adapters/http/api"
	"github.com/LeifStrom/hiring/internal/adapters/repository"
	"github.com/LeifStrom/hiring/internal/adapters/sheets"
	"github.com/LeifStrom/hiring/internal/domain/model"
	"github.com/LeifStrom/hiring/internal/domain/scoring"
	"github.com/LeifStrom/hiring/internal/domain/types"
	"github.com/LeifStrom/hiring/pkg/logger"
)

func TestMain(m *testing.M) {
	if err := logger.Init(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

// Mock implementations for testing
type mockDependencies struct {
	worksheets  []string
	applicants  map[string][]model.Applicant
	top         map[string][]types.Entry
	saveErr     error
	moveErr     error
	listErr     error
	moved       []string
	refreshed   int
	topDefault  int
	maxTopLimit int
}

func (m *mockDependencies) Worksheets() []string { return m.worksheets }

func (m *mockDependencies) has(worksheet string) bool {
	for _, ws := range m.worksheets {
		if ws == worksheet {
			return true
		}
	}
	return false
}

func (m *mockDependencies) Applicants(ctx context.Context, worksheet string) ([]model.Applicant, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	if !m.has(worksheet) {
		return nil, fmt.Errorf("%w: %q", sheets.ErrWorksheetNotFound, worksheet)
	}
	return m.applicants[worksheet], nil
}

func (m *mockDependencies) SaveRatings(ctx context.Context, worksheet, name string, r model.Ratings) error {
	return m.saveErr
}

func (m *mockDependencies) Move(ctx context.Context, from, to, name string) error {
	if m.moveErr != nil {
		return m.moveErr
	}
	m.moved = append(m.moved, fmt.Sprintf("%s:%s->%s", name, from, to))
	return nil
}

func (m *mockDependencies) TopN(ctx context.Context, worksheet string, n int) ([]types.Entry, error) {
	entries := m.top[worksheet]
	if n < len(entries) {
		entries = entries[:n]
	}
	return entries, nil
}

func (m *mockDependencies) Refresh(ctx context.Context) { m.refreshed++ }

func (m *mockDependencies) TopNDefault() int { return m.topDefault }

func (m *mockDependencies) MaxTopLimit() int { return m.maxTopLimit }

type mockStatsProvider struct {
	stats map[string]interface{}
}

func (m *mockStatsProvider) GetStats() map[string]interface{} {
	return m.stats
}

func newTestMux(deps *mockDependencies) *http.ServeMux {
	server := api.NewServer(deps, &mockStatsProvider{stats: map[string]interface{}{"started": true}})
	mux := http.NewServeMux()
	server.Register(context.Background(), mux)
	return mux
}

func defaultDeps() *mockDependencies {
	return &mockDependencies{
		worksheets: []string{"active", "denied", "hired"},
		applicants: map[string][]model.Applicant{
			"active": {
				{
					Name:    "Alice",
					Ratings: model.Ratings{Throwing: 8, Strength: 7, Data: 9, Aptitude: 6, Professionalism: 10, CultureFit: 5, Trust: 7},
					Score:   7.43,
				},
				{Name: "Bob", Score: 0},
			},
		},
		top: map[string][]types.Entry{
			"active": {
				{Rank: 1, Name: "Alice", Score: 7.43},
			},
		},
		topDefault:  5,
		maxTopLimit: 100,
	}
}

func TestServer_Register(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		deps := defaultDeps()
		mux := newTestMux(deps)

		Convey("The health endpoint serves metrics", func() {
			req := httptest.NewRequest("GET", "/healthz", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusOK)
		})

		Convey("The stats endpoint serves JSON", func() {
			req := httptest.NewRequest("GET", "/stats", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, "started")
		})

		Convey("The worksheets endpoint lists configured titles", func() {
			req := httptest.NewRequest("GET", "/worksheets", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusOK)

			var body map[string][]string
			So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
			So(body["worksheets"], ShouldResemble, []string{"active", "denied", "hired"})
		})

		Convey("The dashboard endpoint serves the embedded page", func() {
			req := httptest.NewRequest("GET", "/dashboard", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusOK)
			body := w.Body.String()
			So(body, ShouldContainSubstring, "Hiring Dashboard")
			// The table sorts by score descending and heads each tab with
			// its applicant count.
			So(body, ShouldContainSubstring, "sort((a, b) => b.score - a.score)")
			So(body, ShouldContainSubstring, `id="tab-heading"`)
			So(body, ShouldContainSubstring, "${current} (${applicants.length})")
		})

		Convey("Unknown routes return 404", func() {
			req := httptest.NewRequest("GET", "/worksheets/active/nope", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("Responses carry a request id", func() {
			req := httptest.NewRequest("GET", "/worksheets", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Header().Get("X-Request-ID"), ShouldNotBeEmpty)
		})
	})
}

func TestListApplicants(t *testing.T) {
	Convey("Given a worksheet with applicants", t, func() {
		deps := defaultDeps()
		mux := newTestMux(deps)

		Convey("Listing returns decoded rows with scores", func() {
			req := httptest.NewRequest("GET", "/worksheets/active/applicants", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusOK)

			var body []map[string]interface{}
			So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
			So(len(body), ShouldEqual, 2)
			So(body[0]["name"], ShouldEqual, "Alice")
			So(body[0]["score"], ShouldAlmostEqual, 7.43, 0.0001)
		})

		Convey("An unknown worksheet yields 404", func() {
			req := httptest.NewRequest("GET", "/worksheets/archive/applicants", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("A backend outage yields 503", func() {
			deps.listErr = fmt.Errorf("list rows: %w", sheets.ErrConnectivity)
			req := httptest.NewRequest("GET", "/worksheets/active/applicants", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusServiceUnavailable)
		})
	})
}

func TestSaveRatings(t *testing.T) {
	Convey("Given the ratings endpoint", t, func() {
		deps := defaultDeps()
		mux := newTestMux(deps)
		body := `{"throwing":8,"strength":7,"data":9,"aptitude":6,"professionalism":10,"culture_fit":5,"trust":7}`

		Convey("A valid PUT succeeds", func() {
			req := httptest.NewRequest("PUT", "/worksheets/active/applicants/Alice/ratings", strings.NewReader(body))
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, "saved")
		})

		Convey("Malformed JSON yields 400", func() {
			req := httptest.NewRequest("PUT", "/worksheets/active/applicants/Alice/ratings", strings.NewReader("{"))
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("An out-of-range rating yields 422", func() {
			deps.saveErr = fmt.Errorf("throwing: %w", scoring.ErrRatingRange)
			req := httptest.NewRequest("PUT", "/worksheets/active/applicants/Alice/ratings", strings.NewReader(body))
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusUnprocessableEntity)
		})

		Convey("A stale row position yields 409 with a retry hint", func() {
			deps.saveErr = fmt.Errorf("save ratings: %w", sheets.ErrOutOfRange)
			req := httptest.NewRequest("PUT", "/worksheets/active/applicants/Alice/ratings", strings.NewReader(body))
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusConflict)
			So(w.Body.String(), ShouldContainSubstring, "stale_position")
		})

		Convey("An unknown applicant yields 404", func() {
			deps.saveErr = fmt.Errorf("%w: %q", repository.ErrApplicantNotFound, "Zed")
			req := httptest.NewRequest("PUT", "/worksheets/active/applicants/Zed/ratings", strings.NewReader(body))
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("GET on the ratings route is rejected", func() {
			req := httptest.NewRequest("GET", "/worksheets/active/applicants/Alice/ratings", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestMove(t *testing.T) {
	Convey("Given the move endpoint", t, func() {
		deps := defaultDeps()
		mux := newTestMux(deps)

		Convey("A valid move succeeds", func() {
			req := httptest.NewRequest("POST", "/worksheets/active/applicants/Alice/move", strings.NewReader(`{"to":"denied"}`))
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusOK)
			So(deps.moved, ShouldResemble, []string{"Alice:active->denied"})
		})

		Convey("A missing destination yields 400", func() {
			req := httptest.NewRequest("POST", "/worksheets/active/applicants/Alice/move", strings.NewReader(`{}`))
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("A duplicate destination name yields 409", func() {
			deps.moveErr = fmt.Errorf("%w: %q", repository.ErrDuplicateName, "Alice")
			req := httptest.NewRequest("POST", "/worksheets/active/applicants/Alice/move", strings.NewReader(`{"to":"denied"}`))
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusConflict)
		})

		Convey("A post-move verification failure yields 409", func() {
			deps.moveErr = fmt.Errorf("verify move: %w", sheets.ErrConflict)
			req := httptest.NewRequest("POST", "/worksheets/active/applicants/Alice/move", strings.NewReader(`{"to":"denied"}`))
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusConflict)
		})
	})
}

func TestTop(t *testing.T) {
	Convey("Given the top endpoint", t, func() {
		deps := defaultDeps()
		mux := newTestMux(deps)

		Convey("Without a limit the default applies", func() {
			req := httptest.NewRequest("GET", "/worksheets/active/top", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusOK)

			var entries []types.Entry
			So(json.Unmarshal(w.Body.Bytes(), &entries), ShouldBeNil)
			So(len(entries), ShouldEqual, 1)
			So(entries[0].Name, ShouldEqual, "Alice")
		})

		Convey("A non-numeric limit yields 400", func() {
			req := httptest.NewRequest("GET", "/worksheets/active/top?limit=abc", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("A limit over the cap yields 400", func() {
			req := httptest.NewRequest("GET", "/worksheets/active/top?limit=999", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
			So(w.Body.String(), ShouldContainSubstring, "limit_exceeded")
		})
	})
}

func TestRefresh(t *testing.T) {
	Convey("Given the refresh endpoint", t, func() {
		deps := defaultDeps()
		mux := newTestMux(deps)

		Convey("POST drops the caches", func() {
			req := httptest.NewRequest("POST", "/refresh", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusOK)
			So(deps.refreshed, ShouldEqual, 1)
		})

		Convey("GET is rejected", func() {
			req := httptest.NewRequest("GET", "/refresh", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusNotFound)
			So(deps.refreshed, ShouldEqual, 0)
		})
	})
}
