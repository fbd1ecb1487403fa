package shared_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"hotelier/shared"
	"hotelier/shared/constant"
	"hotelier/shared/dto"
)

func TestConvertStringToBool(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  *bool
	}{
		{name: "true value", input: "true", want: boolPtr(true)},
		{name: "false value", input: "false", want: boolPtr(false)},
		{name: "empty value", input: "", want: nil},
		{name: "garbage value", input: "not-a-bool", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := shared.ConvertStringToBool(tt.input)

			if tt.want == nil {
				assert.Nil(t, got)
			} else {
				assert.NotNil(t, got)
				assert.Equal(t, *tt.want, *got)
			}
		})
	}
}

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		name  string
		total int
		limit int
		want  int
	}{
		{name: "exact division", total: 20, limit: 10, want: 2},
		{name: "remainder rounds up", total: 21, limit: 10, want: 3},
		{name: "zero total", total: 0, limit: 10, want: 1},
		{name: "zero limit", total: 10, limit: 0, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, shared.CalculateTotalPage(tt.total, tt.limit))
		})
	}
}

func TestTransformFields(t *testing.T) {
	type update struct {
		GuestName string `db:"guest_name"`
		Ignored   string
		Empty     string `db:"empty_field"`
	}

	fields := shared.TransformFields(update{GuestName: "John Doe"}, "test-user")

	assert.Equal(t, "John Doe", fields["guest_name"])
	assert.Equal(t, "test-user", fields[constant.FieldModifiedBy])
	assert.Contains(t, fields, constant.FieldModifiedAt)
	assert.NotContains(t, fields, "empty_field")
	assert.NotContains(t, fields, "Ignored")
}

func TestFilterByID(t *testing.T) {
	filter := shared.FilterByID("abc-123", "id", "bookings")

	where, args := filter.GetWhereClause()

	assert.Equal(t, "(bookings.id = :id)", where)
	assert.Equal(t, "abc-123", args["id"])
}

func TestBuildCacheKey(t *testing.T) {
	assert.Equal(t, "booking:get:abc", shared.BuildCacheKey("booking", "get", "abc"))
}

func TestBuildCacheKeyWithQuery(t *testing.T) {
	params := dto.QueryParams{Page: 2, Limit: 10, SortBy: "created_at", SortDir: "DESC"}

	keyA := shared.BuildCacheKeyWithQuery("booking:gets", params, dto.FilterGroup{})
	keyB := shared.BuildCacheKeyWithQuery("booking:gets", params, shared.FilterByID("x", "id", "bookings"))

	assert.NotEqual(t, keyA, keyB)
	assert.Contains(t, keyA, "booking:gets")
}

func boolPtr(b bool) *bool {
	return &b
}
