package swagger_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/LeifStrom/hiring/internal/adapters/http/swagger"
)

func TestRegister(t *testing.T) {
	Convey("Given a mux with docs routes registered", t, func() {
		mux := http.NewServeMux()
		swagger.Register(context.Background(), mux)

		Convey("The docs page serves HTML", func() {
			req := httptest.NewRequest("GET", "/api-docs", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Header().Get("Content-Type"), ShouldContainSubstring, "text/html")
			So(w.Body.String(), ShouldContainSubstring, "redoc")
		})

		Convey("The spec route serves the embedded document", func() {
			req := httptest.NewRequest("GET", "/openapi.yaml", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, "Hiring Dashboard API")
			So(w.Body.String(), ShouldContainSubstring, "/worksheets/{worksheet}/top")
		})

		Convey("A nil mux panics", func() {
			So(func() { swagger.Register(context.Background(), nil) }, ShouldPanic)
		})
	})
}
