package errs_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jcpaschoal/wertvoll-dispo/app/sdk/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPStatus(t *testing.T) {
	tt := []struct {
		code errs.ErrCode
		want int
	}{
		{errs.InvalidArgument, http.StatusBadRequest},
		{errs.NotFound, http.StatusNotFound},
		{errs.Unauthenticated, http.StatusUnauthorized},
		{errs.PermissionDenied, http.StatusForbidden},
		{errs.Unavailable, http.StatusServiceUnavailable},
		{errs.FailedPrecondition, http.StatusBadRequest},
		{errs.Internal, http.StatusInternalServerError},
	}

	for _, tc := range tt {
		t.Run(tc.code.String(), func(t *testing.T) {
			assert.Equal(t, tc.want, errs.New(tc.code, errors.New("x")).HTTPStatus())
		})
	}
}

func TestEncode(t *testing.T) {
	data, contentType, err := errs.Errorf(errs.NotFound, "customer %s", "abc").Encode()
	require.NoError(t, err)

	assert.Equal(t, "application/json", contentType)
	assert.JSONEq(t, `{"code":"not_found","message":"customer abc"}`, string(data))
}

func TestCodeRoundTrip(t *testing.T) {
	var got struct {
		Code errs.ErrCode `json:"code"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"code":"unavailable"}`), &got))
	assert.True(t, got.Code.Equal(errs.Unavailable))

	assert.Error(t, json.Unmarshal([]byte(`{"code":"nope"}`), &got))
}

func TestGetError(t *testing.T) {
	wrapped := fmt.Errorf("handler: %w", errs.New(errs.Aborted, errors.New("conflict")))

	assert.True(t, errs.IsError(wrapped))
	assert.Equal(t, errs.Aborted, errs.GetError(wrapped).Code)
	assert.Nil(t, errs.GetError(errors.New("plain")))
}

func TestCheck(t *testing.T) {
	type model struct {
		Name  string `json:"name" validate:"required"`
		Email string `json:"email" validate:"required,email"`
		Skip  string `json:"-" validate:"omitempty,min=2"`
	}

	err := errs.Check(model{Email: "nope"})
	require.Error(t, err)
	require.True(t, errs.IsFieldErrors(err))

	fields := errs.GetFieldErrors(err).Fields()
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "email")

	assert.NoError(t, errs.Check(model{Name: "Anna", Email: "anna@example.com"}))
}

func TestFieldErrorsToError(t *testing.T) {
	var fe errs.FieldErrors
	fe.Add("limit", errors.New("out of range"))

	e := fe.ToError()
	assert.Equal(t, errs.InvalidArgument, e.Code)
	assert.Contains(t, e.Message, `"field":"limit"`)
}
