package tagger_test

import (
	"testing"

	"github.com/nlohse/stash/internal/tagger"
)

func TestClassify_DomainOverride(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"github", "https://github.com/foo", tagger.Development},
		{"github with www", "https://www.github.com/foo/bar", tagger.Development},
		{"github subdomain", "https://gist.github.com/foo", tagger.Development},
		{"youtube", "https://youtube.com/watch?v=abc", tagger.Streaming},
		{"wikipedia subdomain", "https://en.wikipedia.org/wiki/Go", tagger.Reference},
		{"reddit", "https://reddit.com/r/golang", tagger.Social},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tagger.Classify(tt.url, "", "")
			if len(got) != 1 || got[0] != tt.want {
				t.Errorf("Classify(%q) = %v, want [%s]", tt.url, got, tt.want)
			}
		})
	}
}

func TestClassify_OverridePrecedence(t *testing.T) {
	// Title and description that would otherwise match other buckets
	// must not outrank the domain override.
	got := tagger.Classify("https://github.com/foo", "Shopping deals news blog", "forum community")
	if len(got) != 1 || got[0] != tagger.Development {
		t.Errorf("expected [development], got %v", got)
	}
}

func TestClassify_SuffixOverrideMostSpecificWins(t *testing.T) {
	// "m.music.youtube.com" suffix-matches both "music.youtube.com" and
	// "youtube.com"; the longer entry must win, on every run.
	for i := 0; i < 20; i++ {
		got := tagger.Classify("https://m.music.youtube.com/playlist", "", "")
		if len(got) != 1 || got[0] != tagger.Music {
			t.Fatalf("Classify = %v, want [%s]", got, tagger.Music)
		}
	}
}

func TestPrimary(t *testing.T) {
	if got := tagger.Primary("https://github.com/foo", "", ""); got != tagger.Development {
		t.Errorf("Primary = %q, want %q", got, tagger.Development)
	}
	if got := tagger.Primary("https://unknowable.example", "", ""); got != tagger.Other {
		t.Errorf("Primary = %q, want %q", got, tagger.Other)
	}
}

func TestClassify_KeywordBuckets(t *testing.T) {
	got := tagger.Classify("https://example.com/x", "A Python tutorial", "")
	if len(got) != 2 {
		t.Fatalf("expected 2 categories, got %v", got)
	}
	// Bucket order: development before tutorial.
	if got[0] != tagger.Development || got[1] != tagger.Tutorial {
		t.Errorf("expected [development tutorial], got %v", got)
	}
}

func TestClassify_KeywordCap(t *testing.T) {
	// Matches development, documentation, and tutorial buckets; cap is 2.
	got := tagger.Classify("https://example.com/x", "python documentation tutorial", "")
	if len(got) != 2 {
		t.Errorf("expected at most 2 keyword categories, got %v", got)
	}
}

func TestClassify_PathSegmentFallback(t *testing.T) {
	// No keyword hit in the blob stage keywords except via the
	// de-hyphenated path segment.
	got := tagger.Classify("https://example.com/cheat-sheet", "", "")
	if len(got) != 1 || got[0] != tagger.Reference {
		t.Errorf("expected [reference], got %v", got)
	}
}

func TestClassify_Heuristics(t *testing.T) {
	tests := []struct {
		name  string
		url   string
		title string
		want  string
	}{
		{"dev tld", "https://tiles.dev/x", "", tagger.Tech},
		{"edu tld", "https://mit.edu/x", "", tagger.Education},
		{"blog substring", "https://example.com/x", "my weblog", tagger.Article},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tagger.Classify(tt.url, tt.title, "")
			if len(got) == 0 || got[0] != tt.want {
				t.Errorf("Classify(%q, %q) = %v, want [%s]", tt.url, tt.title, got, tt.want)
			}
		})
	}
}

func TestClassify_AbsoluteFallback(t *testing.T) {
	got := tagger.Classify("https://zzqqxx.example/y", "zzz", "qqq")
	if len(got) != 1 || got[0] != tagger.Other {
		t.Errorf("expected [other], got %v", got)
	}
}

func TestClassify_NeverEmptyAlwaysInTaxonomy(t *testing.T) {
	inputs := [][3]string{
		{"", "", ""},
		{"not a url", "", ""},
		{"https://github.com/x", "title", "desc"},
		{"::::", "weird", "input"},
		{"https://example.com/some/deep-path/here", "misc", ""},
	}

	for _, in := range inputs {
		got := tagger.Classify(in[0], in[1], in[2])
		if len(got) == 0 {
			t.Errorf("Classify(%v) returned empty list", in)
			continue
		}
		for _, c := range got {
			if !tagger.IsCategory(c) {
				t.Errorf("Classify(%v) returned %q, not in taxonomy", in, c)
			}
		}
	}
}

func TestColor_KnownAndUnknown(t *testing.T) {
	if tagger.Color(tagger.Development) == "" {
		t.Error("expected a color for development")
	}
	if tagger.Color("nonsense") != tagger.Color(tagger.Other) {
		t.Error("unknown category should map to the other color")
	}
}
