package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func lookup(d bson.D, key string) (interface{}, bool) {
	for _, e := range d {
		if e.Key == key {
			return e.Value, true
		}
	}
	return nil, false
}

func TestBuildPriceRange(t *testing.T) {
	tests := []struct {
		name     string
		min, max string
		want     interface{}
	}{
		{"closed range", "10", "50", bson.D{{Key: "$gte", Value: 10.0}, {Key: "$lte", Value: 50.0}}},
		{"max only", "", "50", bson.D{{Key: "$lte", Value: 50.0}}},
		{"min only", "10", "", bson.D{{Key: "$gte", Value: 10.0}}},
		{"non numeric min is absent", "cheap", "50", bson.D{{Key: "$lte", Value: 50.0}}},
		{"neither", "", "", nil},
		{"both garbage", "x", "y", nil},
		{"NaN min is absent", "NaN", "", nil},
		{"infinite max is absent", "", "Inf", nil},
		{"negative infinity is absent", "-inf", "50", bson.D{{Key: "$lte", Value: 50.0}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			match := Build(ProductParams{MinPrice: tt.min, MaxPrice: tt.max}).Match()
			got, ok := lookup(match, "sellPrice")
			if tt.want == nil {
				assert.False(t, ok)
				return
			}
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildSearchMatchesNameOrDescription(t *testing.T) {
	match := Build(ProductParams{Search: "shirt"}).Match()

	or, ok := lookup(match, "$or")
	require.True(t, ok)
	pattern := bson.D{{Key: "$regex", Value: "shirt"}, {Key: "$options", Value: "i"}}
	assert.Equal(t, bson.A{
		bson.D{{Key: "name", Value: pattern}},
		bson.D{{Key: "description", Value: pattern}},
	}, or)
}

func TestBuildSearchQuotesRegexInput(t *testing.T) {
	match := Build(ProductParams{Search: "a.b*"}).Match()
	or, _ := lookup(match, "$or")
	name := or.(bson.A)[0].(bson.D)[0].Value.(bson.D)
	assert.Equal(t, `a\.b\*`, name[0].Value)
}

func TestBuildCategory(t *testing.T) {
	match := Build(ProductParams{Category: "shoes"}).Match()
	got, ok := lookup(match, "category")
	require.True(t, ok)
	assert.Equal(t, "shoes", got)

	_, ok = lookup(Build(ProductParams{}).Match(), "category")
	assert.False(t, ok)
}

func TestBuildEmptyMatchesEverything(t *testing.T) {
	assert.Empty(t, Build(ProductParams{}).Match())
}

func TestBuildSort(t *testing.T) {
	tests := []struct {
		name   string
		params ProductParams
		want   bson.D
	}{
		{"default", ProductParams{}, bson.D{{Key: "name", Value: 1}}},
		{"desc", ProductParams{SortBy: "sellPrice", Order: "desc"}, bson.D{{Key: "sellPrice", Value: -1}}},
		{"asc", ProductParams{SortBy: "sellPrice", Order: "asc"}, bson.D{{Key: "sellPrice", Value: 1}}},
		{"other order is ascending", ProductParams{SortBy: "avgRating", Order: "up"}, bson.D{{Key: "avgRating", Value: 1}}},
		{"sortBy without order", ProductParams{SortBy: "sellPrice"}, bson.D{{Key: "name", Value: 1}}},
		{"unknown field", ProductParams{SortBy: "reviews", Order: "desc"}, bson.D{{Key: "name", Value: 1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Build(tt.params).SortDoc())
		})
	}
}

func TestBuildPaging(t *testing.T) {
	spec := Build(ProductParams{Page: "3", Limit: "20"})
	assert.Equal(t, int64(40), spec.Skip)
	assert.Equal(t, int64(20), spec.Limit)

	spec = Build(ProductParams{Limit: "1000"})
	assert.Equal(t, int64(MaxLimit), spec.Limit)
	assert.Zero(t, spec.Skip)

	spec = Build(ProductParams{Page: "2"})
	assert.Zero(t, spec.Limit)
	assert.Zero(t, spec.Skip)
}

func TestMatchReturnsIndependentDocuments(t *testing.T) {
	spec := Build(ProductParams{Search: "shirt", Category: "tops", MinPrice: "5"})

	first := spec.Match()
	first[0] = bson.E{Key: "tampered", Value: true}

	second := spec.Match()
	assert.Len(t, second, 3)
	assert.Equal(t, "$or", second[0].Key)
}

func TestPipelineStages(t *testing.T) {
	spec := Build(ProductParams{Category: "shoes", SortBy: "avgRating", Order: "desc", Limit: "5", Page: "2"})
	pipeline := spec.Pipeline(bson.D{{Key: "name", Value: 1}})

	require.Len(t, pipeline, 5)
	keys := make([]string, len(pipeline))
	for i, stage := range pipeline {
		keys[i] = stage[0].Key
	}
	assert.Equal(t, []string{"$match", "$project", "$sort", "$skip", "$limit"}, keys)
	assert.Equal(t, bson.D{{Key: "avgRating", Value: -1}}, pipeline[2][0].Value)
}
