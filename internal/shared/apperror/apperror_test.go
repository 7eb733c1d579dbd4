package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPStatus(t *testing.T) {
	cases := map[Kind]int{
		KindNotFound:        http.StatusNotFound,
		KindValidation:      http.StatusBadRequest,
		KindForbidden:       http.StatusForbidden,
		KindConflict:        http.StatusConflict,
		KindInvalidState:    http.StatusBadRequest,
		KindInvalidArgument: http.StatusBadRequest,
		KindUnauthorized:    http.StatusUnauthorized,
		KindInternal:        http.StatusInternalServerError,
	}
	for kind, status := range cases {
		assert.Equal(t, status, HTTPStatus(kind), kind.String())
	}
}

func TestKindOfThroughWrapping(t *testing.T) {
	base := errors.New("sentinel")
	err := fmt.Errorf("context: %w", Wrap(KindConflict, "X001", "taken", base))

	assert.Equal(t, KindConflict, KindOf(err))
	assert.ErrorIs(t, err, base)
	assert.ErrorIs(t, err, New(KindConflict, "X001", "other message"))
	assert.False(t, errors.Is(err, New(KindConflict, "X002", "taken")))
	assert.Equal(t, KindInternal, KindOf(errors.New("plain")))
}

type sample struct {
	Name  string `json:"name"`
	Inner inner  `json:"inner"`
}

type inner struct {
	Code string `json:"code"`
}

func (i inner) Validate() error {
	return validation.ValidateStruct(&i, validation.Field(&i.Code, validation.Required.Error("code required")))
}

func TestFromValidation_Ozzo(t *testing.T) {
	s := sample{}
	err := validation.ValidateStruct(&s,
		validation.Field(&s.Name, validation.Required.Error("name required")),
		validation.Field(&s.Inner),
	)
	require.Error(t, err)

	appErr := FromValidation(err)
	require.NotNil(t, appErr)
	assert.Equal(t, KindValidation, appErr.Kind)
	assert.Equal(t, "name required", appErr.Fields["name"])
	assert.Equal(t, "code required", appErr.Fields["inner.code"])
}

func TestFromValidation_Binding(t *testing.T) {
	type body struct {
		Query string `json:"query" validate:"required"`
	}
	v := validator.New()
	RegisterJSONTagNames(v)

	appErr := FromValidation(v.Struct(body{}))
	require.NotNil(t, appErr)
	assert.Equal(t, "query is required", appErr.Fields["query"])
}

func TestFromValidation_Other(t *testing.T) {
	assert.Nil(t, FromValidation(nil))
	assert.Nil(t, FromValidation(errors.New("boom")))
}
