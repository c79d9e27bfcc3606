package shared

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/cardholder-api/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func daysFromNow(n int) civil.Date {
	return civil.DateOf(time.Now().AddDate(0, 0, n))
}

func failedFields(t *testing.T, err error) map[string]string {
	t.Helper()
	var vErrs validator.ValidationErrors
	require.True(t, errors.As(err, &vErrs), "expected validator.ValidationErrors, got %v", err)

	fields := make(map[string]string, len(vErrs))
	for _, fe := range vErrs {
		fields[fe.Field()] = fe.Tag()
	}
	return fields
}

func TestValidateRequest_UserCreate(t *testing.T) {
	valid := dto.UserCreate{
		Name:      "Ada",
		Surname:   "Lovelace",
		BirthDate: daysFromNow(-365 * 30),
		Email:     "ada@example.com",
	}
	require.NoError(t, ValidateRequest(valid))

	t.Run("reports json field names", func(t *testing.T) {
		err := ValidateRequest(dto.UserCreate{})
		assert.Equal(t, map[string]string{
			"name":      "required",
			"surname":   "required",
			"birthDate": "required",
			"email":     "required",
		}, failedFields(t, err))
	})

	t.Run("birth date must be in the past", func(t *testing.T) {
		in := valid
		in.BirthDate = daysFromNow(0)
		assert.Equal(t, map[string]string{"birthDate": "past"}, failedFields(t, ValidateRequest(in)))
	})

	t.Run("length and format", func(t *testing.T) {
		in := valid
		in.Name = strings.Repeat("a", 65)
		in.Email = "not-an-email"
		assert.Equal(t, map[string]string{"name": "max", "email": "email"}, failedFields(t, ValidateRequest(in)))
	})
}

func TestValidateRequest_UserUpdate(t *testing.T) {
	id := int64(1)

	assert.NoError(t, ValidateRequest(dto.UserUpdate{ID: &id}), "absent fields are not validated")

	empty := ""
	future := daysFromNow(10)
	err := ValidateRequest(dto.UserUpdate{ID: &id, Name: &empty, BirthDate: &future})
	assert.Equal(t, map[string]string{"name": "min", "birthDate": "past"}, failedFields(t, err))

	assert.Equal(t, map[string]string{"id": "required"}, failedFields(t, ValidateRequest(dto.UserUpdate{})))
}

func TestValidateRequest_Card(t *testing.T) {
	userID := int64(3)
	valid := dto.CardCreate{
		Number:         "4000000000000001",
		ExpirationDate: daysFromNow(400),
		UserID:         &userID,
	}
	require.NoError(t, ValidateRequest(valid))

	expired := valid
	expired.ExpirationDate = daysFromNow(-1)
	expired.Number = "1234"
	assert.Equal(t, map[string]string{"expirationDate": "future", "number": "min"},
		failedFields(t, ValidateRequest(expired)))

	missingOwner := valid
	missingOwner.UserID = nil
	assert.Equal(t, map[string]string{"userId": "required"}, failedFields(t, ValidateRequest(missingOwner)))

	id := int64(1)
	short := "123"
	assert.Equal(t, map[string]string{"number": "min"},
		failedFields(t, ValidateRequest(dto.CardUpdate{ID: &id, Number: &short})))
}

func TestDecodeJSON(t *testing.T) {
	req := httptest.NewRequest("POST", "/users", strings.NewReader(`{"name":"Ada","birthDate":"1990-05-17"}`))

	var in dto.UserCreate
	require.NoError(t, DecodeJSON(req, &in))
	assert.Equal(t, "Ada", in.Name)
	assert.Equal(t, civil.Date{Year: 1990, Month: time.May, Day: 17}, in.BirthDate)

	bad := httptest.NewRequest("POST", "/users", strings.NewReader(`{"birthDate":"17/05/1990"}`))
	assert.Error(t, DecodeJSON(bad, &in))
}
