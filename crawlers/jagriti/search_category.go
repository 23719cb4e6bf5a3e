package jagriti

import (
	"fmt"

	"github.com/LexiconIndonesia/jagriti-case-service/common/crawler"
	"github.com/samber/lo"
)

// SearchCategory is one of the fixed ways the portal can search cases
type SearchCategory struct {
	// Key is the route suffix, e.g. "case-number"
	Key string
	// Code is the value of the portal's searchBy control
	Code string
}

// SearchCategories lists every supported category in route order
var SearchCategories = []SearchCategory{
	{Key: "case-number", Code: "1"},
	{Key: "complainant", Code: "2"},
	{Key: "respondent", Code: "3"},
	{Key: "complainant-advocate", Code: "4"},
	{Key: "respondent-advocate", Code: "5"},
	{Key: "industry-type", Code: "6"},
	{Key: "judge", Code: "7"},
}

// ParseSearchCategory looks up a category by key
func ParseSearchCategory(key string) (SearchCategory, error) {
	c, ok := lo.Find(SearchCategories, func(c SearchCategory) bool {
		return c.Key == key
	})
	if !ok {
		return SearchCategory{}, fmt.Errorf("%w: %q", crawler.ErrUnknownSearchCategory, key)
	}
	return c, nil
}

func (c SearchCategory) valid() bool {
	return lo.Contains(SearchCategories, c)
}
