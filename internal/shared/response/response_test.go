package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinic-backend/internal/shared"
	"clinic-backend/internal/shared/apperror"
)

func run(t *testing.T, handler gin.HandlerFunc) (int, Response) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/x", nil)

	handler(c)

	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w.Code, resp
}

func TestHandleError(t *testing.T) {
	t.Run("business error", func(t *testing.T) {
		code, resp := run(t, func(c *gin.Context) {
			HandleError(c, apperror.Forbidden("APT004", "nope"))
		})
		assert.Equal(t, http.StatusForbidden, code)
		assert.False(t, resp.Success)
		assert.Equal(t, "APT004", resp.Error.Code)
		assert.Equal(t, "nope", resp.Error.Message)
	})

	t.Run("validation details", func(t *testing.T) {
		code, resp := run(t, func(c *gin.Context) {
			HandleError(c, apperror.Validation(map[string]string{"status": "bad"}))
		})
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, map[string]interface{}{"status": "bad"}, resp.Error.Details)
	})

	t.Run("unknown error surfaces its message", func(t *testing.T) {
		code, resp := run(t, func(c *gin.Context) {
			HandleError(c, errors.New("connection reset"))
		})
		assert.Equal(t, http.StatusInternalServerError, code)
		assert.Contains(t, resp.Error.Message, "connection reset")
	})

	t.Run("date format hint", func(t *testing.T) {
		code, resp := run(t, func(c *gin.Context) {
			HandleError(c, &shared.DateFormatError{Hint: "use yyyy-MM-dd"})
		})
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, "use yyyy-MM-dd", resp.Error.Message)
	})
}

func TestHandleBindError(t *testing.T) {
	bind := func(body string, dest interface{}) gin.HandlerFunc {
		return func(c *gin.Context) {
			c.Request = httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(body))
			c.Request.Header.Set("Content-Type", "application/json")
			if err := c.ShouldBindJSON(dest); err != nil {
				HandleBindError(c, err)
			}
		}
	}

	t.Run("empty body", func(t *testing.T) {
		var dest struct{ Name string }
		code, resp := run(t, bind("", &dest))
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, "Malformed JSON request: request body is empty", resp.Error.Message)
	})

	t.Run("wrong type", func(t *testing.T) {
		var dest struct {
			Name string `json:"name"`
		}
		code, resp := run(t, bind(`{"name": 12}`, &dest))
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Contains(t, resp.Error.Message, "name")
	})

	t.Run("bad date", func(t *testing.T) {
		var dest struct {
			Born shared.Date `json:"born"`
		}
		code, resp := run(t, bind(`{"born":"yesterday"}`, &dest))
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Contains(t, resp.Error.Message, "yyyy-MM-dd")
	})
}

func TestNewMeta(t *testing.T) {
	m := NewMeta(0, 20, 41)
	assert.Equal(t, 3, m.TotalPages)
	assert.Equal(t, 0, NewMeta(0, 20, 0).TotalPages)
}
