package cli

import (
	"sort"
	"strings"
)

// SortOrder represents the available sorting options
type SortOrder string

const (
	SortByDate  SortOrder = "date"
	SortByLabel SortOrder = "label"
)

// sortViews sorts a listing. Index is left alone so it still refers to the
// stored position.
func sortViews(views []EventView, order SortOrder) {
	switch order {
	case SortByDate:
		sort.SliceStable(views, func(i, j int) bool {
			return views[i].Date.Before(views[j].Date)
		})
	case SortByLabel:
		sort.SliceStable(views, func(i, j int) bool {
			li, lj := strings.ToLower(labelOf(views[i].Label)), strings.ToLower(labelOf(views[j].Label))
			if li != lj {
				return li < lj
			}
			// If labels are equal, sort by date
			return views[i].Date.Before(views[j].Date)
		})
	}
}
