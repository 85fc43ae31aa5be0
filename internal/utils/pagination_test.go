package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

func paramsFor(t *testing.T, query string) *PaginationParams {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/buses?"+query, nil)
	return GetPaginationParams(c)
}

func TestGetPaginationParamsClamps(t *testing.T) {
	p := paramsFor(t, "page=-3&page_size=1000&order=sideways&sort=$where")
	if p.Page != 1 || p.PageSize != MaxPageSize || p.Order != "desc" || p.Sort != "created_at" {
		t.Fatalf("unexpected params: %+v", p)
	}
}

func TestGetSearchFilterEscapesRegex(t *testing.T) {
	p := paramsFor(t, "search=B.1*")
	filter := p.GetSearchFilter([]string{"bus_number"})

	or, ok := filter["$or"].([]bson.M)
	if !ok || len(or) != 1 {
		t.Fatalf("unexpected filter: %v", filter)
	}
	cond := or[0]["bus_number"].(bson.M)
	if cond["$regex"] != `B\.1\*` {
		t.Fatalf("regex = %v", cond["$regex"])
	}
}

func TestCreatePaginationMeta(t *testing.T) {
	meta := CreatePaginationMeta(&PaginationParams{Page: 2, PageSize: 10}, 25)
	if meta.TotalPages != 3 || !meta.HasNext || !meta.HasPrevious {
		t.Fatalf("unexpected meta: %+v", meta)
	}
}

func TestGetSortOptionsTieBreaker(t *testing.T) {
	tests := []struct {
		query string
		want  bson.D
	}{
		{"sort=bus_number&order=asc", bson.D{{Key: "bus_number", Value: 1}, {Key: "_id", Value: 1}}},
		{"sort=_id&order=desc", bson.D{{Key: "_id", Value: -1}}},
	}
	for _, tt := range tests {
		opts := paramsFor(t, tt.query).GetSortOptions()
		got, ok := opts.Sort.(bson.D)
		if !ok {
			t.Fatalf("%s: sort is %T", tt.query, opts.Sort)
		}
		if len(got) != len(tt.want) {
			t.Fatalf("%s: sort = %v, want %v", tt.query, got, tt.want)
		}
		for i := range got {
			if got[i].Key != tt.want[i].Key || got[i].Value != tt.want[i].Value {
				t.Fatalf("%s: sort = %v, want %v", tt.query, got, tt.want)
			}
		}
	}
}
