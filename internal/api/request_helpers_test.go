package api

import (
	"net/url"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/phrazzld/cardholder-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePageRequest(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		p, err := parsePageRequest(url.Values{})
		require.NoError(t, err)
		assert.Equal(t, domain.NewPageRequest(0, domain.DefaultPageSize), p)
	})

	t.Run("values and repeated sort", func(t *testing.T) {
		q := url.Values{
			"page": {"2"},
			"size": {"500"},
			"sort": {"surname,desc", "id"},
		}
		p, err := parsePageRequest(q)
		require.NoError(t, err)

		assert.Equal(t, 2, p.Page)
		assert.Equal(t, domain.MaxPageSize, p.Size)
		assert.Equal(t, []domain.SortOrder{
			{Field: "surname", Direction: domain.SortDesc},
			{Field: "id", Direction: domain.SortAsc},
		}, p.Sort)
	})

	t.Run("page beyond any listing", func(t *testing.T) {
		p, err := parsePageRequest(url.Values{"page": {"9223372036854775807"}, "size": {"50"}})
		require.NoError(t, err)
		assert.Equal(t, 50, p.Size)
		assert.Positive(t, p.Offset())
	})

	for _, q := range []url.Values{
		{"page": {"-1"}},
		{"page": {"99999999999999999999"}},
		{"size": {"ten"}},
		{"sort": {"name,sideways"}},
		{"sort": {",asc"}},
	} {
		_, err := parsePageRequest(q)
		assert.ErrorIs(t, err, domain.ErrInvalidFormat, "query %v", q)
	}
}

func TestParseUserFilter(t *testing.T) {
	f, err := parseUserFilter(url.Values{
		"name":      {"ad"},
		"birthDate": {"1990-05-17"},
		"active":    {"true"},
	})
	require.NoError(t, err)

	require.NotNil(t, f.Name)
	assert.Equal(t, "ad", *f.Name)
	assert.Nil(t, f.Surname)
	assert.Equal(t, civil.Date{Year: 1990, Month: time.May, Day: 17}, *f.BirthDate)
	assert.True(t, *f.Active)

	_, err = parseUserFilter(url.Values{"active": {"maybe"}})
	assert.Error(t, err)
	_, err = parseUserFilter(url.Values{"birthDate": {"17.05.1990"}})
	assert.Error(t, err)
}

func TestParseCardFilter(t *testing.T) {
	f, err := parseCardFilter(url.Values{
		"active":         {"false"},
		"expires_after":  {"2030-01-01"},
		"expires_before": {"2031-01-01"},
	})
	require.NoError(t, err)

	assert.False(t, *f.Active)
	assert.Equal(t, civil.Date{Year: 2030, Month: time.January, Day: 1}, *f.ExpiresAfter)
	assert.Equal(t, civil.Date{Year: 2031, Month: time.January, Day: 1}, *f.ExpiresBefore)

	empty, err := parseCardFilter(url.Values{"active": {""}})
	require.NoError(t, err)
	assert.True(t, empty.Predicate().IsEmpty())
}
