package dashboard

import (
	"fmt"
	"testing"

	"coin-concierge/internal/domain"
)

func headlines(titles ...string) []domain.NewsItem {
	items := make([]domain.NewsItem, 0, len(titles))
	for _, title := range titles {
		items = append(items, domain.NewsItem{Title: title, Source: "test"})
	}
	return items
}

func TestSelectNewsEmptyAssetsKeepsEverything(t *testing.T) {
	t.Parallel()

	var titles []string
	for i := 0; i < 8; i++ {
		titles = append(titles, fmt.Sprintf("headline %d", i))
	}

	got := SelectNews(nil, headlines(titles...))
	if len(got) != maxNewsItems {
		t.Fatalf("expected cap of %d, got %d", maxNewsItems, len(got))
	}
	for i, item := range got {
		if item.Title != titles[i] {
			t.Fatalf("expected unfiltered order, got %q at %d", item.Title, i)
		}
	}
}

func TestSelectNewsFiltersByAlias(t *testing.T) {
	t.Parallel()

	items := headlines(
		"Stocks slide on rate fears",
		"Bitcoin breaks above resistance",
		"Gold ticks higher",
	)

	got := SelectNews([]string{"BTC"}, items)
	if len(got) != 1 || got[0].Title != "Bitcoin breaks above resistance" {
		t.Fatalf("expected the single bitcoin headline, got %+v", got)
	}
}

func TestSelectNewsAliasMatchingIsCaseInsensitive(t *testing.T) {
	t.Parallel()

	items := headlines("ETHEREUM upgrade ships", "SOL network congestion eases")

	got := SelectNews([]string{"eth", " sol "}, items)
	if len(got) != 2 {
		t.Fatalf("expected both headlines to match, got %+v", got)
	}
}

func TestSelectNewsNoMatchesFallsBackToUnfiltered(t *testing.T) {
	t.Parallel()

	var titles []string
	for i := 0; i < 7; i++ {
		titles = append(titles, fmt.Sprintf("macro update %d", i))
	}

	got := SelectNews([]string{"BTC"}, headlines(titles...))
	if len(got) != maxNewsItems {
		t.Fatalf("expected first %d unfiltered items, got %d", maxNewsItems, len(got))
	}
	if got[0].Title != titles[0] {
		t.Fatalf("expected unfiltered head, got %q", got[0].Title)
	}
}

func TestSelectNewsUnknownAssetNeverMatches(t *testing.T) {
	t.Parallel()

	items := headlines("SHIB jumps 40% on listing rumor", "Bitcoin drifts lower")

	got := SelectNews([]string{"SHIB"}, items)
	if len(got) != 2 {
		t.Fatalf("unknown asset should leave the batch unfiltered, got %+v", got)
	}
}

func TestMentionsAsset(t *testing.T) {
	t.Parallel()

	cases := []struct {
		title string
		asset string
		want  bool
	}{
		{"dogecoin rallies on musk tweet", "DOGE", true},
		{"doge eyes new highs", "doge", true},
		{"solana validators vote", "SOL", true},
		{"markets wobble", "BTC", false},
		{"bitcoin etf inflows grow", "XRP", false},
	}
	for _, tc := range cases {
		if got := mentionsAsset(tc.title, tc.asset); got != tc.want {
			t.Errorf("mentionsAsset(%q, %q) = %v, want %v", tc.title, tc.asset, got, tc.want)
		}
	}
}
