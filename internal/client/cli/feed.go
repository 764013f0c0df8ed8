package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/virtual-arena/arena-cli/internal/client/cache"
	"github.com/virtual-arena/arena-cli/internal/client/models"
)

// articleID is the id extractor handed to every article PageCache.
func articleID(a models.Article) string { return a.ID }

// renderArticleTable prints one page of articles with 1-based row indexes
// the browse commands refer to.
func (a *App) renderArticleTable(title string, articles []models.Article, page, totalPages int) {
	fmt.Fprintf(a.out, "\n%s — page %d of %d\n", title, page, totalPages)

	table := tablewriter.NewTable(a.out)
	table.Header([]string{"#", "Title", "Hearts", "Bookmarks", "Comments", "By"})
	rows := make([][]string, 0, len(articles))
	for i, art := range articles {
		heart := strconv.Itoa(art.HeartCount)
		if art.Hearted {
			heart += " ♥"
		}
		bookmark := strconv.Itoa(art.BookmarkCount)
		if art.Bookmarked {
			bookmark += " ◆"
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			art.Title,
			heart,
			bookmark,
			strconv.Itoa(art.CommentCount),
			art.Publisher.Username,
		})
	}
	table.Bulk(rows)
	table.Render()
}

// browseArticles runs the paging loop shared by the feed, search results,
// and the profile tabs. The cache belongs to the caller and lives exactly
// as long as the view that created it.
//
// Commands: n(ext), p(rev), page <n>, open <#>, heart <#>, bookmark <#>,
// edit <#>, back. A successful edit is patched into every cached page that
// holds the article; nothing else ever writes into the cache.
func (a *App) browseArticles(ctx context.Context, title string, c *cache.PageCache[models.Article]) error {
	defer c.Wait()

	page := 1
	for {
		listPage, err := c.Get(ctx, page)
		if err != nil {
			a.log.Error(ctx, "failed to fetch page", "view", title, "page", page, "error", err)
			a.toastError("Error fetching articles")
			return err
		}
		// Local copies: toggles mutate these, never the cached page.
		articles := make([]models.Article, len(listPage.Items))
		copy(articles, listPage.Items)

		a.renderArticleTable(title, articles, page, listPage.TotalPages)

		line, err := getSimpleText(a.reader, "n/p/page <n>/open <#>/heart <#>/bookmark <#>/edit <#>/back", a.out)
		if err != nil {
			return err
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		pick := func() (*models.Article, bool) {
			if len(parts) < 2 {
				fmt.Fprintln(a.out, "Usage:", parts[0], "<#>")
				return nil, false
			}
			i, err := strconv.Atoi(parts[1])
			if err != nil || i < 1 || i > len(articles) {
				fmt.Fprintln(a.out, "No such row")
				return nil, false
			}
			return &articles[i-1], true
		}

		switch parts[0] {
		case "n", "next":
			if page < listPage.TotalPages {
				page++
			}
		case "p", "prev":
			if page > 1 {
				page--
			}
		case "page":
			if len(parts) < 2 {
				fmt.Fprintln(a.out, "Usage: page <n>")
				continue
			}
			// Not validated: an out-of-range page goes to the server as-is.
			if n, err := strconv.Atoi(parts[1]); err == nil {
				page = n
			}
		case "open", "o":
			if art, ok := pick(); ok {
				if err := a.Read(ctx, art.ID); err == nil && a.consumeBack() {
					// Deleting inside the detail view navigates back here.
					continue
				}
			}
		case "heart", "h":
			if art, ok := pick(); ok {
				a.toggleHeart(ctx, art)
			}
		case "bookmark", "b":
			if art, ok := pick(); ok {
				a.toggleBookmark(ctx, art)
			}
		case "edit", "e":
			if art, ok := pick(); ok {
				if updated, err := a.editArticle(ctx, art.ID); err == nil {
					// Article-update propagation: the one mutation that
					// writes into cached pages, by id.
					c.Patch(updated)
				}
			}
		case "back", "q":
			return nil
		default:
			fmt.Fprintln(a.out, "Unknown command:", parts[0])
		}

		if a.signInRequested {
			// Guarded action failed the credential check; unwind to the REPL
			// so it can land on the login prompt.
			return nil
		}
	}
}

func (a *App) toggleHeart(ctx context.Context, art *models.Article) {
	if err := a.articleService.ToggleHeart(ctx, art); err != nil {
		a.log.Error(ctx, "heart toggle failed", "article", art.ID, "error", err)
		a.toastError("Error updating heart status")
		return
	}
	if art.Hearted {
		a.toastSuccess("Hearted")
	} else {
		a.toastSuccess("Heart canceled")
	}
}

func (a *App) toggleBookmark(ctx context.Context, art *models.Article) {
	if err := a.articleService.ToggleBookmark(ctx, art); err != nil {
		a.log.Error(ctx, "bookmark toggle failed", "article", art.ID, "error", err)
		a.toastError("Error updating bookmark status")
		return
	}
	if art.Bookmarked {
		a.toastSuccess("Added to bookmarks")
	} else {
		a.toastSuccess("Removed from bookmarks")
	}
}

// Feed shows the featured articles followed by the latest-articles pager.
// The page cache lives for this invocation of the view and is dropped on
// return.
func (a *App) Feed(ctx context.Context) error {
	featured, err := a.articleService.Featured(ctx)
	if err != nil {
		a.log.Error(ctx, "failed to fetch featured articles", "error", err)
		a.toastError("Error fetching featured articles")
	} else {
		if len(featured) > 5 {
			featured = featured[:5]
		}
		a.renderArticleTable("Featured Articles", featured, 1, 1)
	}

	latest := cache.New(a.articleService.Latest, articleID, a.log)

	return a.browseArticles(ctx, "Latest Articles", latest)
}

// Search prompts for a query and pages through the results. Each new query
// gets a fresh cache; the old one is torn down with the previous view.
func (a *App) Search(ctx context.Context) error {
	query, err := getSimpleText(a.reader, "Search query", a.out)
	if err != nil {
		return err
	}
	if strings.TrimSpace(query) == "" {
		return nil
	}

	results := cache.New(func(ctx context.Context, page int) (models.ListPage[models.Article], error) {
		return a.articleService.Search(ctx, query, page)
	}, articleID, a.log)

	return a.browseArticles(ctx, fmt.Sprintf("Results for %q", query), results)
}
