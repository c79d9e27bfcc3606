package api

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/cardholder-api/internal/api/shared"
	"github.com/phrazzld/cardholder-api/internal/domain"
	"github.com/phrazzld/cardholder-api/internal/store"
)

// Query parameters understood by listing endpoints.
const (
	paramPage = "page"
	paramSize = "size"
	paramSort = "sort"
)

// getPathID extracts a positive int64 id from the URL path parameters.
//
// Returns:
//   - (id, nil): The parsed id if valid
//   - (0, error): A validation error if the parameter is missing or not a positive integer
func getPathID(r *http.Request, paramName string) (int64, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return 0, domain.NewValidationError(paramName, "is required", domain.ErrValidation)
	}

	id, err := strconv.ParseInt(pathParam, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError(paramName, "must be a positive integer", domain.ErrInvalidID)
	}

	return id, nil
}

// decodeAndValidate decodes the JSON body into v and validates it. A body that
// is not valid JSON is reported as a validation error on "body".
func decodeAndValidate(r *http.Request, v interface{}) error {
	if err := shared.DecodeJSON(r, v); err != nil {
		return domain.NewValidationError("body", "is not valid JSON", domain.ErrInvalidFormat)
	}
	return shared.ValidateRequest(v)
}

// parsePageRequest reads page, size and sort from the query string.
// Sort values take the form "field" or "field,asc|desc" and may repeat.
func parsePageRequest(q url.Values) (domain.PageRequest, error) {
	page, err := optionalInt(q, paramPage)
	if err != nil {
		return domain.PageRequest{}, err
	}
	size, err := optionalInt(q, paramSize)
	if err != nil {
		return domain.PageRequest{}, err
	}

	var orders []domain.SortOrder
	for _, raw := range q[paramSort] {
		field, dir, _ := strings.Cut(raw, ",")
		field = strings.TrimSpace(field)
		if field == "" {
			return domain.PageRequest{}, domain.NewValidationError(paramSort, "must name a field", domain.ErrInvalidFormat)
		}

		order := domain.SortOrder{Field: field, Direction: domain.SortAsc}
		switch strings.ToLower(strings.TrimSpace(dir)) {
		case "", "asc":
		case "desc":
			order.Direction = domain.SortDesc
		default:
			return domain.PageRequest{}, domain.NewValidationError(paramSort, "direction must be asc or desc", domain.ErrInvalidFormat)
		}
		orders = append(orders, order)
	}

	var p, s int
	if page != nil {
		p = *page
	}
	if size != nil {
		s = *size
	}
	return domain.NewPageRequest(p, s, orders...), nil
}

// parseUserFilter reads the user listing filters: name, surname, birthDate
// and active.
func parseUserFilter(q url.Values) (store.UserFilter, error) {
	var f store.UserFilter
	var err error

	f.Name = optionalString(q, "name")
	f.Surname = optionalString(q, "surname")
	if f.BirthDate, err = optionalDate(q, "birthDate"); err != nil {
		return f, err
	}
	if f.Active, err = optionalBool(q, "active"); err != nil {
		return f, err
	}
	return f, nil
}

// parseCardFilter reads the card listing filters: active, expires_after and
// expires_before.
func parseCardFilter(q url.Values) (store.CardFilter, error) {
	var f store.CardFilter
	var err error

	if f.Active, err = optionalBool(q, "active"); err != nil {
		return f, err
	}
	if f.ExpiresAfter, err = optionalDate(q, "expires_after"); err != nil {
		return f, err
	}
	if f.ExpiresBefore, err = optionalDate(q, "expires_before"); err != nil {
		return f, err
	}
	return f, nil
}

func optionalString(q url.Values, name string) *string {
	v := strings.TrimSpace(q.Get(name))
	if v == "" {
		return nil
	}
	return &v
}

func optionalInt(q url.Values, name string) (*int, error) {
	v := optionalString(q, name)
	if v == nil {
		return nil, nil
	}
	n, err := strconv.Atoi(*v)
	if err != nil || n < 0 {
		return nil, domain.NewValidationError(name, "must be a non-negative integer", domain.ErrInvalidFormat)
	}
	return &n, nil
}

func optionalBool(q url.Values, name string) (*bool, error) {
	v := optionalString(q, name)
	if v == nil {
		return nil, nil
	}
	b, err := strconv.ParseBool(*v)
	if err != nil {
		return nil, domain.NewValidationError(name, "must be true or false", domain.ErrInvalidFormat)
	}
	return &b, nil
}

func optionalDate(q url.Values, name string) (*civil.Date, error) {
	v := optionalString(q, name)
	if v == nil {
		return nil, nil
	}
	d, err := civil.ParseDate(*v)
	if err != nil {
		return nil, domain.NewValidationError(name, "must be a date in YYYY-MM-DD format", domain.ErrInvalidFormat)
	}
	return &d, nil
}
