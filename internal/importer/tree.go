package importer

import (
	"time"

	"github.com/nlohse/stash/internal/favicon"
	"github.com/nlohse/stash/internal/model"
	"github.com/nlohse/stash/internal/tagger"
	"github.com/nlohse/stash/internal/urlnorm"
)

// TreeNode is one node of a browser bookmark tree: a folder when it
// has children and no URL, a bookmark when it has a URL.
type TreeNode struct {
	Title    string
	URL      string
	AddedAt  time.Time
	Children []TreeNode
}

// FlattenTree walks a browser bookmark tree and returns one flat,
// classified, deduplicated bookmark list. Traversal uses an explicit
// worklist so deeply nested folder trees cannot exhaust the stack.
// Returns ErrNoBookmarks if the tree holds no bookmark nodes.
func FlattenTree(root TreeNode) ([]model.Bookmark, error) {
	var bookmarks []model.Bookmark
	seen := make(map[string]int)

	stack := []TreeNode{root}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		// Children pushed in reverse so the flat list keeps tree order.
		for i := len(node.Children) - 1; i >= 0; i-- {
			stack = append(stack, node.Children[i])
		}

		if node.URL == "" {
			continue // folder
		}

		b := bookmarkFromNode(node)

		key := urlnorm.Normalize(node.URL)
		if i, dup := seen[key]; dup {
			if b.DateAdded.After(bookmarks[i].DateAdded) {
				bookmarks[i] = b
			}
			continue
		}
		seen[key] = len(bookmarks)
		bookmarks = append(bookmarks, b)
	}

	if len(bookmarks) == 0 {
		return nil, ErrNoBookmarks
	}
	return bookmarks, nil
}

func bookmarkFromNode(node TreeNode) model.Bookmark {
	title := node.Title
	if title == "" {
		title = urlnorm.Host(node.URL)
	}
	if title == "" {
		title = node.URL
	}

	return model.NewBookmark(model.NewBookmarkParams{
		URL:       node.URL,
		Title:     title,
		Tags:      tagger.Classify(node.URL, title, ""),
		Favicon:   favicon.DerivedURL(node.URL),
		DateAdded: node.AddedAt,
	})
}
