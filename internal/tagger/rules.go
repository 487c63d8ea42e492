package tagger

import (
	"sort"
	"strings"
)

// Category labels form a closed taxonomy: every Classify result is
// drawn from this list, in this order.
const (
	Development   = "development"
	Documentation = "documentation"
	Tutorial      = "tutorial"
	Tools         = "tools"
	Streaming     = "streaming"
	News          = "news"
	Shopping      = "shopping"
	Social        = "social"
	Design        = "design"
	Finance       = "finance"
	Science       = "science"
	Gaming        = "gaming"
	Music         = "music"
	Education     = "education"
	Reference     = "reference"
	Article       = "article"
	Community     = "community"
	Entertainment = "entertainment"
	Tech          = "tech"
	Other         = "other"
)

var categories = []string{
	Development, Documentation, Tutorial, Tools, Streaming, News,
	Shopping, Social, Design, Finance, Science, Gaming, Music,
	Education, Reference, Article, Community, Entertainment, Tech, Other,
}

// domainOverrides maps a www-stripped hostname (or a domain suffix)
// directly to a single category, short-circuiting all keyword matching.
var domainOverrides = map[string]string{
	"github.com":           Development,
	"gitlab.com":           Development,
	"bitbucket.org":        Development,
	"stackoverflow.com":    Development,
	"developer.mozilla.org": Documentation,
	"pkg.go.dev":           Documentation,
	"readthedocs.io":       Documentation,
	"wikipedia.org":        Reference,
	"youtube.com":          Streaming,
	"music.youtube.com":   Music,
	"netflix.com":          Streaming,
	"twitch.tv":            Streaming,
	"vimeo.com":            Streaming,
	"twitter.com":          Social,
	"x.com":                Social,
	"facebook.com":         Social,
	"instagram.com":        Social,
	"reddit.com":           Social,
	"linkedin.com":         Social,
	"mastodon.social":      Social,
	"amazon.com":           Shopping,
	"ebay.com":             Shopping,
	"etsy.com":             Shopping,
	"nytimes.com":          News,
	"bbc.com":              News,
	"cnn.com":              News,
	"theguardian.com":      News,
	"news.ycombinator.com": News,
	"medium.com":           Article,
	"dev.to":               Article,
	"substack.com":         Article,
	"figma.com":            Design,
	"dribbble.com":         Design,
	"behance.net":          Design,
	"spotify.com":          Music,
	"soundcloud.com":       Music,
	"bandcamp.com":         Music,
	"coursera.org":         Education,
	"udemy.com":            Education,
	"khanacademy.org":      Education,
	"edx.org":              Education,
	"store.steampowered.com": Gaming,
	"itch.io":              Gaming,
	"arxiv.org":            Science,
}

// overrideSuffixes lists the override domains in match order for the
// suffix stage: longest first so the most specific entry wins, ties
// broken alphabetically.
var overrideSuffixes = func() []string {
	domains := make([]string, 0, len(domainOverrides))
	for d := range domainOverrides {
		domains = append(domains, d)
	}
	sort.Slice(domains, func(i, j int) bool {
		if len(domains[i]) != len(domains[j]) {
			return len(domains[i]) > len(domains[j])
		}
		return domains[i] < domains[j]
	})
	return domains
}()

// bucket is an ordered keyword group. Earlier buckets win when the
// keyword-match stage collects its (capped) results.
type bucket struct {
	category string
	keywords []string
}

var buckets = []bucket{
	{Development, []string{"github", "gitlab", "stackoverflow", "programming", "coding", "developer", "javascript", "typescript", "python", "golang", "compiler", "sdk"}},
	{Documentation, []string{"documentation", "docs", "manual", "changelog", "wiki"}},
	{Tutorial, []string{"tutorial", "how-to", "howto", "walkthrough", "getting started"}},
	{Tools, []string{"generator", "converter", "formatter", "validator", "playground", "toolkit"}},
	{Streaming, []string{"youtube", "netflix", "twitch", "stream", "episode", "watch"}},
	{News, []string{"news", "headline", "breaking", "bulletin"}},
	{Shopping, []string{"shop", "store", "cart", "checkout", "discount", "deal", "pricing"}},
	{Social, []string{"twitter", "facebook", "instagram", "reddit", "linkedin", "social"}},
	{Design, []string{"design", "figma", "typography", "palette", "illustration"}},
	{Finance, []string{"finance", "invest", "stock", "crypto", "budget", "banking"}},
	{Science, []string{"science", "research", "physics", "biology", "astronomy", "paper"}},
	{Gaming, []string{"game", "gaming", "steam", "speedrun"}},
	{Music, []string{"music", "spotify", "album", "playlist", "lyrics"}},
	{Education, []string{"course", "university", "lecture", "curriculum", "lesson"}},
	{Reference, []string{"reference", "encyclopedia", "dictionary", "glossary", "cheatsheet", "cheat sheet"}},
	{Article, []string{"blog", "article", "essay", "newsletter"}},
	{Community, []string{"forum", "community", "discussion", "meetup"}},
	{Entertainment, []string{"movie", "film", "comic", "meme", "trailer"}},
}

// heuristicRule is a last-resort (predicate, category) pair. The rules
// are evaluated in order by a single generic matcher; the first hit wins.
type heuristicRule struct {
	category string
	match    func(host, blob string) bool
}

var heuristics = []heuristicRule{
	{Tech, func(host, _ string) bool {
		return hasTLD(host, ".dev") || hasTLD(host, ".io") || hasTLD(host, ".tech")
	}},
	{Education, func(host, blob string) bool {
		return hasTLD(host, ".edu") || strings.Contains(blob, "learn") || strings.Contains(blob, "course")
	}},
	{Article, func(_, blob string) bool {
		return strings.Contains(blob, "blog")
	}},
	{Community, func(_, blob string) bool {
		return strings.Contains(blob, "forum") || strings.Contains(blob, "community")
	}},
	{Shopping, func(_, blob string) bool {
		return strings.Contains(blob, "shop") || strings.Contains(blob, "store")
	}},
}

func hasTLD(host, tld string) bool {
	return host != "" && strings.HasSuffix(host, tld)
}
