package sqlutil

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openboard/service-jobboard-go/pkg/apperr"
)

func TestPartialUpdate(t *testing.T) {
	t.Run("mixed mapped and verbatim columns", func(t *testing.T) {
		set, args, err := PartialUpdate(
			[]Field{{"handle", "a"}, {"numEmployees", 5}},
			map[string]string{"numEmployees": "num_employees"},
		)
		require.NoError(t, err)
		assert.Equal(t, `"handle"=$1, "num_employees"=$2`, set)
		assert.Equal(t, []any{"a", 5}, args)
	})

	t.Run("company example", func(t *testing.T) {
		set, args, err := PartialUpdate(
			[]Field{
				{"handle", "gillespie-smith"},
				{"name", "Gillespie-Smith"},
				{"description", "Candidate ability democratic make drug."},
				{"numEmployees", 302},
				{"logoUrl", "/logos/logo1.png"},
			},
			map[string]string{"numEmployees": "num_employees", "logoUrl": "logo_url"},
		)
		require.NoError(t, err)
		assert.Equal(t, `"handle"=$1, "name"=$2, "description"=$3, "num_employees"=$4, "logo_url"=$5`, set)
		assert.Equal(t, []any{"gillespie-smith", "Gillespie-Smith", "Candidate ability democratic make drug.", 302, "/logos/logo1.png"}, args)
	})

	t.Run("user example with boolean value", func(t *testing.T) {
		set, args, err := PartialUpdate(
			[]Field{
				{"username", "testadmin"},
				{"firstName", "Test"},
				{"lastName", "Admin!"},
				{"email", "joel@example.com"},
				{"isAdmin", true},
			},
			map[string]string{"firstName": "first_name", "lastName": "last_name", "isAdmin": "is_admin"},
		)
		require.NoError(t, err)
		assert.Equal(t, `"username"=$1, "first_name"=$2, "last_name"=$3, "email"=$4, "is_admin"=$5`, set)
		assert.Equal(t, []any{"testadmin", "Test", "Admin!", "joel@example.com", true}, args)
	})

	t.Run("empty payload is a bad request", func(t *testing.T) {
		_, _, err := PartialUpdate(nil, map[string]string{"x": "y"})
		assert.True(t, errors.Is(err, apperr.ErrBadRequest))
	})

	t.Run("zero values are still included", func(t *testing.T) {
		set, args, err := PartialUpdate([]Field{{"title", ""}, {"salary", 0}}, nil)
		require.NoError(t, err)
		assert.Equal(t, `"title"=$1, "salary"=$2`, set)
		assert.Equal(t, []any{"", 0}, args)
	})

	t.Run("placeholder count tracks field count", func(t *testing.T) {
		fields := []Field{{"a", 1}, {"b", 2}, {"c", 3}, {"d", 4}}
		set, args, err := PartialUpdate(fields, nil)
		require.NoError(t, err)
		assert.Len(t, args, len(fields))
		for i := range fields {
			assert.Contains(t, set, "$"+string(rune('1'+i)))
		}
	})
}
