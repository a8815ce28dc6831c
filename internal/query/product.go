// Package query turns product listing parameters into a store-neutral
// FilterSpec and renders it as a MongoDB aggregation pipeline.
package query

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	DefaultSortField = "name"
	MaxLimit         = 100
)

// sortable lists the fields of the public projection a listing may be
// ordered by.
var sortable = map[string]bool{
	"name":        true,
	"category":    true,
	"basePrice":   true,
	"sellPrice":   true,
	"discount":    true,
	"isNew":       true,
	"isTrending":  true,
	"avgRating":   true,
	"description": true,
}

// ProductParams are the raw query-string values of GET /products.
type ProductParams struct {
	Search   string `form:"search"`
	Category string `form:"category"`
	MinPrice string `form:"minPrice"`
	MaxPrice string `form:"maxPrice"`
	SortBy   string `form:"sortBy"`
	Order    string `form:"order"`
	Page     string `form:"page"`
	Limit    string `form:"limit"`
}

// Bound is an optional price limit.
type Bound struct {
	Value float64
	Set   bool
}

type SortSpec struct {
	Field      string
	Descending bool
}

// FilterSpec describes the match conditions and ordering of a product
// listing. It is a plain value: copies share nothing.
type FilterSpec struct {
	Search   string
	Category string
	MinPrice Bound
	MaxPrice Bound
	Sort     SortSpec
	Skip     int64
	Limit    int64
}

// Build parses p. Unparsable numbers are treated as absent.
func Build(p ProductParams) FilterSpec {
	spec := FilterSpec{
		Search:   strings.TrimSpace(p.Search),
		Category: strings.TrimSpace(p.Category),
		MinPrice: parseBound(p.MinPrice),
		MaxPrice: parseBound(p.MaxPrice),
		Sort:     SortSpec{Field: DefaultSortField},
	}

	if p.SortBy != "" && p.Order != "" && sortable[p.SortBy] {
		spec.Sort = SortSpec{Field: p.SortBy, Descending: p.Order == "desc"}
	}

	if limit, err := strconv.ParseInt(p.Limit, 10, 64); err == nil && limit > 0 {
		if limit > MaxLimit {
			limit = MaxLimit
		}
		spec.Limit = limit
		if page, err := strconv.ParseInt(p.Page, 10, 64); err == nil && page > 1 {
			spec.Skip = (page - 1) * limit
		}
	}

	return spec
}

func parseBound(raw string) Bound {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return Bound{}
	}
	return Bound{Value: v, Set: true}
}

// Match renders the conditions. All conditions are ANDed; an empty spec
// matches every product.
func (f FilterSpec) Match() bson.D {
	match := bson.D{}

	if f.Search != "" {
		pattern := bson.D{
			{Key: "$regex", Value: regexp.QuoteMeta(f.Search)},
			{Key: "$options", Value: "i"},
		}
		match = append(match, bson.E{Key: "$or", Value: bson.A{
			bson.D{{Key: "name", Value: pattern}},
			bson.D{{Key: "description", Value: pattern}},
		}})
	}

	if f.Category != "" {
		match = append(match, bson.E{Key: "category", Value: f.Category})
	}

	price := bson.D{}
	if f.MinPrice.Set {
		price = append(price, bson.E{Key: "$gte", Value: f.MinPrice.Value})
	}
	if f.MaxPrice.Set {
		price = append(price, bson.E{Key: "$lte", Value: f.MaxPrice.Value})
	}
	if len(price) > 0 {
		match = append(match, bson.E{Key: "sellPrice", Value: price})
	}

	return match
}

// SortDoc renders the single sort key.
func (f FilterSpec) SortDoc() bson.D {
	field := f.Sort.Field
	if field == "" {
		field = DefaultSortField
	}
	direction := 1
	if f.Sort.Descending {
		direction = -1
	}
	return bson.D{{Key: field, Value: direction}}
}

// Pipeline matches, applies project, then sorts and pages. Sorting runs
// after the projection so derived fields such as avgRating can be used.
func (f FilterSpec) Pipeline(project bson.D) mongo.Pipeline {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: f.Match()}},
		{{Key: "$project", Value: project}},
		{{Key: "$sort", Value: f.SortDoc()}},
	}
	if f.Skip > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$skip", Value: f.Skip}})
	}
	if f.Limit > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$limit", Value: f.Limit}})
	}
	return pipeline
}
