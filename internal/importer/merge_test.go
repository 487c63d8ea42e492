package importer_test

import (
	"reflect"
	"sort"
	"testing"
	"time"

	"github.com/nlohse/stash/internal/importer"
	"github.com/nlohse/stash/internal/model"
)

func TestMerge_NewBookmarksAppended(t *testing.T) {
	store := model.NewStore()
	batch := []model.Bookmark{
		model.NewBookmark(model.NewBookmarkParams{URL: "https://a.com", Title: "A"}),
		model.NewBookmark(model.NewBookmarkParams{URL: "https://b.com", Title: "B"}),
	}

	result := importer.Merge(store, batch, importer.MergeOptions{})

	if len(result.Added) != 2 {
		t.Errorf("expected 2 added, got %d", len(result.Added))
	}
	if result.Duplicates != 0 {
		t.Errorf("expected 0 duplicates, got %d", result.Duplicates)
	}
	if len(store.Bookmarks) != 2 {
		t.Errorf("expected store size 2, got %d", len(store.Bookmarks))
	}
}

func TestMerge_PreservesIdentityAndCounters(t *testing.T) {
	existing := model.NewBookmark(model.NewBookmarkParams{URL: "https://a.com", Title: "A"})
	existing.Likes = 7
	existing.Dislikes = 2
	store := model.NewStore()
	store.Add(existing)

	incoming := model.NewBookmark(model.NewBookmarkParams{URL: "https://A.com/", Title: "A again"})
	incoming.Likes = 99
	incoming.Dislikes = 99

	result := importer.Merge(store, []model.Bookmark{incoming}, importer.MergeOptions{MergeMetadata: true})

	if result.Duplicates != 1 {
		t.Fatalf("expected 1 duplicate, got %d", result.Duplicates)
	}
	got := store.Bookmarks[0]
	if got.ID != existing.ID {
		t.Errorf("expected existing ID %q preserved, got %q", existing.ID, got.ID)
	}
	if got.Likes != 7 || got.Dislikes != 2 {
		t.Errorf("expected counters 7/2 preserved, got %d/%d", got.Likes, got.Dislikes)
	}
}

func TestMerge_TagUnion(t *testing.T) {
	existing := model.NewBookmark(model.NewBookmarkParams{
		URL:  "https://a.com",
		Tags: []string{"a", "b"},
	})
	store := model.NewStore()
	store.Add(existing)

	incoming := model.NewBookmark(model.NewBookmarkParams{
		URL:  "https://a.com",
		Tags: []string{"b", "c"},
	})

	importer.Merge(store, []model.Bookmark{incoming}, importer.MergeOptions{MergeMetadata: true})

	got := append([]string(nil), store.Bookmarks[0].Tags...)
	sort.Strings(got)
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected tag union %v, got %v", want, got)
	}
}

func TestMerge_LaterDateWins(t *testing.T) {
	early := time.Unix(1000, 0)
	late := time.Unix(2000, 0)

	existing := model.NewBookmark(model.NewBookmarkParams{URL: "https://a.com", DateAdded: early})
	store := model.NewStore()
	store.Add(existing)

	incoming := model.NewBookmark(model.NewBookmarkParams{URL: "https://a.com", DateAdded: late})
	importer.Merge(store, []model.Bookmark{incoming}, importer.MergeOptions{MergeMetadata: true})

	if !store.Bookmarks[0].DateAdded.Equal(late) {
		t.Errorf("expected later date %v, got %v", late, store.Bookmarks[0].DateAdded)
	}

	// An earlier incoming date must not roll the existing date back.
	older := model.NewBookmark(model.NewBookmarkParams{URL: "https://a.com", DateAdded: early})
	importer.Merge(store, []model.Bookmark{older}, importer.MergeOptions{MergeMetadata: true})

	if !store.Bookmarks[0].DateAdded.Equal(late) {
		t.Errorf("expected date to stay %v, got %v", late, store.Bookmarks[0].DateAdded)
	}
}

func TestMerge_DescriptionFillsOnlyWhenEmpty(t *testing.T) {
	existing := model.NewBookmark(model.NewBookmarkParams{URL: "https://a.com"})
	store := model.NewStore()
	store.Add(existing)

	first := model.NewBookmark(model.NewBookmarkParams{URL: "https://a.com", Description: "first"})
	importer.Merge(store, []model.Bookmark{first}, importer.MergeOptions{MergeMetadata: true})
	if store.Bookmarks[0].Description != "first" {
		t.Errorf("expected empty description filled, got %q", store.Bookmarks[0].Description)
	}

	second := model.NewBookmark(model.NewBookmarkParams{URL: "https://a.com", Description: "second"})
	importer.Merge(store, []model.Bookmark{second}, importer.MergeOptions{MergeMetadata: true})
	if store.Bookmarks[0].Description != "first" {
		t.Errorf("expected existing description kept, got %q", store.Bookmarks[0].Description)
	}
}

func TestMerge_Idempotent(t *testing.T) {
	store := model.NewStore()
	batch := []model.Bookmark{
		model.NewBookmark(model.NewBookmarkParams{URL: "https://a.com", Tags: []string{"x"}}),
		model.NewBookmark(model.NewBookmarkParams{URL: "https://b.com", Tags: []string{"y"}}),
	}
	opts := importer.MergeOptions{MergeMetadata: true}

	importer.Merge(store, batch, opts)
	after := make([]model.Bookmark, len(store.Bookmarks))
	copy(after, store.Bookmarks)

	result := importer.Merge(store, batch, opts)

	if len(result.Added) != 0 {
		t.Errorf("second merge added %d bookmarks", len(result.Added))
	}
	if result.Duplicates != 2 {
		t.Errorf("expected 2 duplicates on second pass, got %d", result.Duplicates)
	}
	if !reflect.DeepEqual(after, store.Bookmarks) {
		t.Error("second merge changed the collection")
	}
}

func TestMerge_InBatchDuplicate(t *testing.T) {
	store := model.NewStore()
	batch := []model.Bookmark{
		model.NewBookmark(model.NewBookmarkParams{URL: "https://a.com", Title: "one"}),
		model.NewBookmark(model.NewBookmarkParams{URL: "https://a.com/", Title: "two"}),
	}

	result := importer.Merge(store, batch, importer.MergeOptions{})

	if len(result.Added) != 1 || result.Duplicates != 1 {
		t.Errorf("expected 1 added + 1 duplicate, got %d + %d", len(result.Added), result.Duplicates)
	}
}

func TestCleanTitle(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"My Article - Example Blog", "My Article"},
		{"My Article | Example Blog", "My Article"},
		{"My Article (archived copy)", "My Article"},
		{"My Article (2023) - Example", "My Article"},
		{"Plain Title", "Plain Title"},
		{"- leading dash stays", "- leading dash stays"},
		{"(all parenthetical)", "(all parenthetical)"},
	}

	for _, tt := range tests {
		if got := importer.CleanTitle(tt.in); got != tt.want {
			t.Errorf("CleanTitle(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
