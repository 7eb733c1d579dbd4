package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinic-backend/internal/domains/doctor/model"
	"clinic-backend/internal/domains/doctor/service"
	"clinic-backend/internal/shared"
	"clinic-backend/internal/shared/apperror"
)

type stubService struct {
	doctors   []*model.DoctorResponse
	err       error
	lastPage  shared.PageRequest
	lastQuery string
}

func (s *stubService) Create(_ context.Context, req model.DoctorRequest) (*model.DoctorResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &model.DoctorResponse{ID: uuid.New(), Username: req.Username, FirstName: req.FirstName, LastName: req.LastName}, nil
}

func (s *stubService) GetByID(_ context.Context, id uuid.UUID) (*model.DoctorResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &model.DoctorResponse{ID: id}, nil
}

func (s *stubService) List(_ context.Context) ([]*model.DoctorResponse, error) {
	return s.doctors, s.err
}

func (s *stubService) ListPaged(_ context.Context, page shared.PageRequest) ([]*model.DoctorResponse, int64, error) {
	s.lastPage = page
	return s.doctors, int64(len(s.doctors)), s.err
}

func (s *stubService) Update(_ context.Context, id uuid.UUID, req model.DoctorRequest) (*model.DoctorResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &model.DoctorResponse{ID: id, Username: req.Username}, nil
}

func (s *stubService) Delete(_ context.Context, _ uuid.UUID) error {
	return s.err
}

func (s *stubService) Search(_ context.Context, term string) ([]*model.DoctorResponse, error) {
	s.lastQuery = term
	return s.doctors, s.err
}

func setupRouter(svc service.ServiceInterface) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewDoctorHandler(svc)
	r := gin.New()
	r.POST("/v1/doctor", h.Create)
	r.GET("/v1/doctor", h.List)
	r.GET("/v1/doctor/search", h.Search)
	r.GET("/v1/doctor/:id", h.Get)
	r.PUT("/v1/doctor/:id", h.Update)
	r.DELETE("/v1/doctor/:id", h.Delete)
	return r
}

func do(r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var out map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return w, out
}

func TestCreate(t *testing.T) {
	r := setupRouter(&stubService{})

	w, body := do(r, http.MethodPost, "/v1/doctor", `{"username":"ghouse","firstName":"Gregory","lastName":"House"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "ghouse", data["username"])
}

func TestCreate_MalformedBody(t *testing.T) {
	r := setupRouter(&stubService{})

	w, body := do(r, http.MethodPost, "/v1/doctor", `{"username":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	errBody := body["error"].(map[string]interface{})
	assert.Contains(t, errBody["message"], "Malformed JSON request")
}

func TestCreate_Conflict(t *testing.T) {
	r := setupRouter(&stubService{err: model.NewUsernameTakenError("ghouse")})

	w, body := do(r, http.MethodPost, "/v1/doctor", `{"username":"ghouse","firstName":"Gregory","lastName":"House"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	errBody := body["error"].(map[string]interface{})
	assert.Equal(t, model.ErrCodeUsernameTaken, errBody["code"])
}

func TestCreate_ValidationDetails(t *testing.T) {
	r := setupRouter(&stubService{err: apperror.Validation(map[string]string{"username": "bad"})})

	w, body := do(r, http.MethodPost, "/v1/doctor", `{"username":"x"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	errBody := body["error"].(map[string]interface{})
	assert.Equal(t, "VAL001", errBody["code"])
	assert.Equal(t, map[string]interface{}{"username": "bad"}, errBody["details"])
}

func TestGet_InvalidID(t *testing.T) {
	r := setupRouter(&stubService{})

	w, body := do(r, http.MethodGet, "/v1/doctor/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	errBody := body["error"].(map[string]interface{})
	assert.Contains(t, errBody["message"], "Expected a UUID")
}

func TestGet_NotFound(t *testing.T) {
	id := uuid.New()
	r := setupRouter(&stubService{err: model.NewDoctorNotFoundError(id)})

	w, _ := do(r, http.MethodGet, "/v1/doctor/"+id.String(), "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestList(t *testing.T) {
	t.Run("empty list is still 200", func(t *testing.T) {
		r := setupRouter(&stubService{doctors: []*model.DoctorResponse{}})
		w, body := do(r, http.MethodGet, "/v1/doctor", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Nil(t, body["meta"])
	})

	t.Run("page parameters produce meta", func(t *testing.T) {
		svc := &stubService{doctors: []*model.DoctorResponse{{ID: uuid.New()}}}
		r := setupRouter(svc)
		w, body := do(r, http.MethodGet, "/v1/doctor?page=2&size=5", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, shared.PageRequest{Page: 2, Size: 5}, svc.lastPage)
		meta := body["meta"].(map[string]interface{})
		assert.Equal(t, float64(2), meta["page"])
	})

	t.Run("bad page is rejected", func(t *testing.T) {
		r := setupRouter(&stubService{})
		w, _ := do(r, http.MethodGet, "/v1/doctor?page=abc", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestDelete(t *testing.T) {
	t.Run("success message", func(t *testing.T) {
		r := setupRouter(&stubService{})
		w, body := do(r, http.MethodDelete, "/v1/doctor/"+uuid.NewString(), "")
		assert.Equal(t, http.StatusOK, w.Code)
		data := body["data"].(map[string]interface{})
		assert.Equal(t, "Doctor deleted successfully.", data["message"])
	})

	t.Run("has appointments", func(t *testing.T) {
		r := setupRouter(&stubService{err: model.NewDoctorHasAppointmentsError()})
		w, _ := do(r, http.MethodDelete, "/v1/doctor/"+uuid.NewString(), "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestSearch(t *testing.T) {
	t.Run("missing query", func(t *testing.T) {
		r := setupRouter(&stubService{})
		w, body := do(r, http.MethodGet, "/v1/doctor/search", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		errBody := body["error"].(map[string]interface{})
		assert.Equal(t, "Missing required parameter: query", errBody["message"])
	})

	t.Run("no match is 404", func(t *testing.T) {
		r := setupRouter(&stubService{doctors: []*model.DoctorResponse{}})
		w, _ := do(r, http.MethodGet, "/v1/doctor/search?query=zzz", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("matches are returned", func(t *testing.T) {
		svc := &stubService{doctors: []*model.DoctorResponse{{ID: uuid.New(), Username: "ghouse"}}}
		r := setupRouter(svc)
		w, _ := do(r, http.MethodGet, "/v1/doctor/search?query=house", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "house", svc.lastQuery)
	})
}
