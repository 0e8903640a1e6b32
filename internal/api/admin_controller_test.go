package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"beerapp/server/internal/services"
)

func newAdminRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	controller := NewAdminController(services.NewUserService(nil))

	r := gin.New()
	r.GET("/api/v1/admin/coefficient", controller.GetCoefficient)
	r.PUT("/api/v1/admin/coefficient", controller.SetCoefficient)
	return r
}

func TestGetCoefficientRequiresUserID(t *testing.T) {
	r := newAdminRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/v1/admin/coefficient", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("без user_id ожидали 400, получили %d", w.Code)
	}
}

func TestSetCoefficientValidation(t *testing.T) {
	r := newAdminRouter()

	cases := []string{
		`{}`,
		`{"user_id": "1"}`,
		`{"user_id": "1", "coefficient": "abc"}`,
		`{"user_id": "1", "coefficient": "0"}`,
		`{"user_id": "1", "coefficient": "-1.5"}`,
	}
	for _, body := range cases {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("PUT", "/api/v1/admin/coefficient", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("тело %s: ожидали 400, получили %d", body, w.Code)
		}
	}
}
