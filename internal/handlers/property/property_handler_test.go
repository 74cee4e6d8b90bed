package property

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"realty-service/internal/domain/property"
	xerrors "realty-service/internal/pkg/errors"
	propertysvc "realty-service/internal/service/property"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubService struct {
	lastQuery propertysvc.ListQuery
	created   *property.UpsertRequest
}

func (s *stubService) List(_ context.Context, q propertysvc.ListQuery) ([]*property.Property, error) {
	s.lastQuery = q
	return []*property.Property{}, nil
}

func (s *stubService) Get(_ context.Context, id int64, includeInactive bool) (*property.Property, error) {
	if id == 2 && !includeInactive {
		return nil, xerrors.ErrNotFound
	}
	return &property.Property{ID: id}, nil
}

func (s *stubService) Create(_ context.Context, req *property.UpsertRequest) (*property.Property, error) {
	s.created = req
	return &property.Property{ID: 1, Title: req.Title}, nil
}

func (s *stubService) Update(context.Context, int64, *property.UpsertRequest) (*property.Property, error) {
	return &property.Property{}, nil
}

func (s *stubService) SetActive(_ context.Context, id int64, active bool) (*property.Property, error) {
	return &property.Property{ID: id, IsActive: active}, nil
}

func (s *stubService) Delete(context.Context, int64) error { return nil }

func newRouter(t *testing.T, svc *stubService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	v, ok := binding.Validator.Engine().(*validator.Validate)
	require.True(t, ok)
	require.NoError(t, RegisterValidators(v))

	h := NewPropertyHandler(svc, zap.NewNop())
	r := gin.New()
	r.GET("/properties", h.List)
	r.GET("/properties/:id", h.Get)
	r.GET("/admin/properties/:id", h.AdminGet)
	r.POST("/properties", h.Create)
	r.PATCH("/properties/:id/active", h.SetActive)
	return r
}

func send(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

const validListing = `{"title":"Ocean Villa","description":"Sea view","price":250000,"location":"Diani",
"property_type":"Villa","beds":4,"baths":3,"area":320,"images":["https://cdn.example.com/a.jpg"]}`

func TestCreate_Validation(t *testing.T) {
	svc := &stubService{}
	r := newRouter(t, svc)

	w := send(r, http.MethodPost, "/properties", validListing)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Ocean Villa", svc.created.Title)

	bad := strings.Replace(validListing, `"Villa"`, `"Castle"`, 1)
	w = send(r, http.MethodPost, "/properties", bad)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	bad = strings.Replace(validListing, `"area":320`, `"area":0`, 1)
	w = send(r, http.MethodPost, "/properties", bad)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestList_PassesFilters(t *testing.T) {
	svc := &stubService{}
	r := newRouter(t, svc)

	w := send(r, http.MethodGet, "/properties?title=villa&location=diani&type=All+Types", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, propertysvc.ListQuery{Title: "villa", Location: "diani", Type: "All Types"}, svc.lastQuery)
}

func TestGet_InactiveOnlyForCMS(t *testing.T) {
	r := newRouter(t, &stubService{})

	assert.Equal(t, http.StatusNotFound, send(r, http.MethodGet, "/properties/2", "").Code)
	assert.Equal(t, http.StatusOK, send(r, http.MethodGet, "/admin/properties/2", "").Code)
	assert.Equal(t, http.StatusBadRequest, send(r, http.MethodGet, "/properties/abc", "").Code)
}

func TestSetActive_RequiresFlag(t *testing.T) {
	r := newRouter(t, &stubService{})

	assert.Equal(t, http.StatusBadRequest, send(r, http.MethodPatch, "/properties/1/active", `{}`).Code)

	w := send(r, http.MethodPatch, "/properties/1/active", `{"is_active":false}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"is_active":false`)
}
