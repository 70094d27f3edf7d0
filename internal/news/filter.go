package news

import (
	"sort"
	"strings"

	"cryptopulse/internal/types"
)

// Sort keys for story lists.
const (
	SortByPoints   = "points"
	SortByDate     = "date"
	SortByComments = "comments"
)

// AllAssets selects every story regardless of asset keywords.
const AllAssets = "all"

// FilterByAsset keeps stories whose content mentions one of the asset's
// keywords, case-insensitively.
func FilterByAsset(stories []types.Story, asset types.Asset) []types.Story {
	out := make([]types.Story, 0, len(stories))
	for _, s := range stories {
		if matchesKeywords(s, asset.Keywords) {
			out = append(out, s)
		}
	}
	return out
}

func matchesKeywords(story types.Story, keywords []string) bool {
	content := strings.ToLower(story.Content())
	for _, kw := range keywords {
		if strings.Contains(content, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// FilterAndSort filters a story collection by free-text search and asset
// tag, sorts by the chosen key and caps the result at limit. The cap is a
// display limit for the news grid, not a fetch truncation. Sorting is
// stable: ties preserve the original relative order.
func FilterAndSort(stories []types.Story, searchTerm, assetID string, assets []types.Asset, sortBy string, limit int) []types.Story {
	filtered := make([]types.Story, 0, len(stories))

	var keywords []string
	if assetID != AllAssets {
		for _, a := range assets {
			if a.ID == assetID {
				keywords = a.Keywords
				break
			}
		}
	}

	search := strings.ToLower(strings.TrimSpace(searchTerm))

	for _, s := range stories {
		if len(keywords) > 0 && !matchesKeywords(s, keywords) {
			continue
		}
		if search != "" {
			title := strings.ToLower(s.Title)
			source := strings.ToLower(s.Source)
			if !strings.Contains(title, search) && !strings.Contains(source, search) {
				continue
			}
		}
		filtered = append(filtered, s)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		switch sortBy {
		case SortByDate:
			return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
		case SortByComments:
			return filtered[i].NumComments > filtered[j].NumComments
		default: // points
			return filtered[i].Points > filtered[j].Points
		}
	})

	if limit > 0 && len(filtered) > limit {
		filtered = filtered[:limit]
	}
	return filtered
}
