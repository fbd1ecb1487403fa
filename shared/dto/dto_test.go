package dto_test

import (
	"net/http"
	"net/url"
	"testing"
	"time"

	"hotelier/shared/constant"
	"hotelier/shared/dto"
	"hotelier/shared/model"
	"hotelier/shared/timezone"
)

func TestMetadata_FromModel(t *testing.T) {
	createdAt := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	modifiedAt := time.Date(2026, 1, 2, 12, 0, 0, 0, time.UTC)

	modelMetadata := model.Metadata{
		CreatedAt:  createdAt,
		ModifiedAt: modifiedAt,
		CreatedBy:  "creator",
		ModifiedBy: "modifier",
	}

	metadata := &dto.Metadata{}
	metadata.FromModel(modelMetadata)

	expectedCreatedAt := timezone.Format(createdAt, constant.DateTimeFormat)
	expectedModifiedAt := timezone.Format(modifiedAt, constant.DateTimeFormat)

	if metadata.CreatedAt != expectedCreatedAt {
		t.Errorf("expected CreatedAt to be %s, got %s", expectedCreatedAt, metadata.CreatedAt)
	}

	if metadata.ModifiedAt != expectedModifiedAt {
		t.Errorf("expected ModifiedAt to be %s, got %s", expectedModifiedAt, metadata.ModifiedAt)
	}

	if metadata.CreatedBy != "creator" {
		t.Errorf("expected CreatedBy to be 'creator', got %s", metadata.CreatedBy)
	}

	if metadata.ModifiedBy != "modifier" {
		t.Errorf("expected ModifiedBy to be 'modifier', got %s", metadata.ModifiedBy)
	}
}

func TestQueryParams_FromRequest(t *testing.T) {
	tests := []struct {
		name           string
		queryParams    map[string]string
		defaultRequest bool
		expected       dto.QueryParams
	}{
		{
			name: "with all valid parameters",
			queryParams: map[string]string{
				"page":     "2",
				"limit":    "20",
				"sort_by":  "name",
				"sort_dir": "ASC",
			},
			defaultRequest: false,
			expected: dto.QueryParams{
				Page:    2,
				Limit:   20,
				SortBy:  "name",
				SortDir: "ASC",
			},
		},
		{
			name:           "with default request enabled and no parameters",
			queryParams:    map[string]string{},
			defaultRequest: true,
			expected: dto.QueryParams{
				Page:  constant.DefaultValuePage,
				Limit: constant.DefaultValueLimit,
			},
		},
		{
			name:           "with default request disabled and no parameters",
			queryParams:    map[string]string{},
			defaultRequest: false,
			expected:       dto.QueryParams{},
		},
		{
			name: "with invalid page parameter",
			queryParams: map[string]string{
				"page": "invalid",
			},
			defaultRequest: true,
			expected: dto.QueryParams{
				Page:  constant.DefaultValuePage,
				Limit: constant.DefaultValueLimit,
			},
		},
		{
			name: "with negative page parameter",
			queryParams: map[string]string{
				"page": "-1",
			},
			defaultRequest: true,
			expected: dto.QueryParams{
				Page:  constant.DefaultValuePage,
				Limit: constant.DefaultValueLimit,
			},
		},
		{
			name: "with lowercase sort direction",
			queryParams: map[string]string{
				"sort_dir": "desc",
			},
			defaultRequest: true,
			expected: dto.QueryParams{
				Page:    constant.DefaultValuePage,
				Limit:   constant.DefaultValueLimit,
				SortDir: "DESC",
			},
		},
		{
			name: "with partial parameters and defaults enabled",
			queryParams: map[string]string{
				"page":    "3",
				"sort_by": "email",
			},
			defaultRequest: true,
			expected: dto.QueryParams{
				Page:   3,
				Limit:  constant.DefaultValueLimit,
				SortBy: "email",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := url.Parse("http://example.com/test")
			if err != nil {
				t.Fatalf("failed to parse URL: %v", err)
			}

			query := u.Query()
			for key, value := range tt.queryParams {
				query.Set(key, value)
			}
			u.RawQuery = query.Encode()

			req, err := http.NewRequest("GET", u.String(), nil)
			if err != nil {
				t.Fatalf("failed to create request: %v", err)
			}

			queryParams := &dto.QueryParams{}
			queryParams.FromRequest(req, tt.defaultRequest)

			if *queryParams != tt.expected {
				t.Errorf("expected %+v, got %+v", tt.expected, *queryParams)
			}
		})
	}
}

func TestFilter_GetWhereClause(t *testing.T) {
	tests := []struct {
		name       string
		filter     dto.Filter
		wantClause string
		wantArgs   map[string]any
	}{
		{
			name:       "equality",
			filter:     dto.Filter{Field: "city", Value: "Jakarta", Operator: dto.FilterOperatorEq},
			wantClause: "city = :city",
			wantArgs:   map[string]any{"city": "Jakarta"},
		},
		{
			name:       "equality with table",
			filter:     dto.Filter{Field: "hotel_id", Value: "h-1", Operator: dto.FilterOperatorEq, Table: "rooms"},
			wantClause: "rooms.hotel_id = :hotel_id",
			wantArgs:   map[string]any{"hotel_id": "h-1"},
		},
		{
			name:       "like wraps value in wildcards",
			filter:     dto.Filter{Field: "name", Value: "grand", Operator: dto.FilterOperatorLike},
			wantClause: "LOWER(name) LIKE LOWER(:name) ",
			wantArgs:   map[string]any{"name": "%grand%"},
		},
		{
			name:       "custom arg name",
			filter:     dto.Filter{ArgName: "min_rating", Field: "rating", Value: 3, Operator: dto.FilterOperatorGreaterEq},
			wantClause: "rating >= :min_rating",
			wantArgs:   map[string]any{"min_rating": 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clause, args := tt.filter.GetWhereClause()
			if clause != tt.wantClause {
				t.Errorf("expected clause %q, got %q", tt.wantClause, clause)
			}

			if len(args) != len(tt.wantArgs) {
				t.Fatalf("expected %d args, got %d", len(tt.wantArgs), len(args))
			}

			for k, v := range tt.wantArgs {
				if args[k] != v {
					t.Errorf("expected arg %s to be %v, got %v", k, v, args[k])
				}
			}
		})
	}
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	group := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Field: "city", Value: "Bandung", Operator: dto.FilterOperatorEq},
			dto.Filter{Field: "rating", Value: 4, Operator: dto.FilterOperatorGreaterEq},
		},
	}

	clause, args := group.GetWhereClause()

	expected := "(city = :city AND rating >= :rating)"
	if clause != expected {
		t.Errorf("expected clause %q, got %q", expected, clause)
	}

	if args["city"] != "Bandung" || args["rating"] != 4 {
		t.Errorf("unexpected args: %+v", args)
	}
}

func TestFilterGroup_Empty(t *testing.T) {
	group := dto.FilterGroup{Operator: dto.FilterGroupOperatorAnd}

	clause, args := group.GetWhereClause()
	if clause != "" {
		t.Errorf("expected empty clause, got %q", clause)
	}

	if len(args) != 0 {
		t.Errorf("expected no args, got %+v", args)
	}
}

func TestSortDirectionConstants(t *testing.T) {
	if dto.SortDirAsc != "ASC" {
		t.Errorf("expected SortDirAsc to be 'ASC', got %s", dto.SortDirAsc)
	}
	if dto.SortDirDesc != "DESC" {
		t.Errorf("expected SortDirDesc to be 'DESC', got %s", dto.SortDirDesc)
	}
}
