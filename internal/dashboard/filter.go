package dashboard

import (
	"strings"

	"coin-concierge/internal/domain"
)

// maxNewsItems caps the news section of the dashboard.
const maxNewsItems = 5

// relevantNews keeps headlines that mention any alias of the user's tracked
// assets, case-insensitively. An empty asset list means "show all". Symbols
// without an alias table entry never match.
func relevantNews(assets []string, items []domain.NewsItem) []domain.NewsItem {
	if len(assets) == 0 {
		return items
	}

	var filtered []domain.NewsItem
	for _, item := range items {
		title := strings.ToLower(item.Title)
		for _, asset := range assets {
			if mentionsAsset(title, asset) {
				filtered = append(filtered, item)
				break
			}
		}
	}
	return filtered
}

func mentionsAsset(lowerTitle, asset string) bool {
	aliases, ok := domain.AssetAliases[strings.ToUpper(strings.TrimSpace(asset))]
	if !ok {
		return false
	}
	for _, alias := range aliases {
		if strings.Contains(lowerTitle, alias) {
			return true
		}
	}
	return false
}

// SelectNews applies the relevance filter and the selection policy: the
// first maxNewsItems of the filtered batch, or of the unfiltered batch when
// filtering leaves nothing. A non-empty batch never yields an empty section.
func SelectNews(assets []string, items []domain.NewsItem) []domain.NewsItem {
	filtered := relevantNews(assets, items)
	if len(filtered) == 0 {
		filtered = items
	}
	if len(filtered) > maxNewsItems {
		filtered = filtered[:maxNewsItems]
	}
	return filtered
}
