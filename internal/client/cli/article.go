package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/virtual-arena/arena-cli/internal/client/models"
)

// detailView is the in-memory state of one article detail session: the
// article copy, the comments loaded so far, and the replies loaded per
// comment. It is torn down when the view exits.
type detailView struct {
	article     models.Article
	comments    []models.Comment
	commentPage int
	hasMore     bool
	replies     map[string][]models.Reply
	replyPage   map[string]int
}

func (a *App) renderDetail(v *detailView) {
	art := &v.article
	fmt.Fprintf(a.out, "\n%s\n", art.Title)
	fmt.Fprintf(a.out, "by %s %s\n", art.Publisher.Username, art.TimeAgo)
	heart, bookmark := " ", " "
	if art.Hearted {
		heart = "♥"
	}
	if art.Bookmarked {
		bookmark = "◆"
	}
	fmt.Fprintf(a.out, "[%s %d hearts] [%s %d bookmarks] [%d comments]\n\n", heart, art.HeartCount, bookmark, art.BookmarkCount, art.CommentCount)
	fmt.Fprintln(a.out, art.ShortDescription)
	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, art.LongDescription)
	if art.SourceURL != "" {
		fmt.Fprintf(a.out, "\nOriginal article: %s\n", art.SourceURL)
	}

	fmt.Fprintf(a.out, "\nComments (%d)\n", art.CommentCount)
	for i, c := range v.comments {
		fmt.Fprintf(a.out, "%d. %s (%s): %s", i+1, c.User.Username, c.TimeAgo, c.Content)
		if c.ReplyCount > 0 {
			fmt.Fprintf(a.out, "  [%d replies]", c.ReplyCount)
		}
		fmt.Fprintln(a.out)
		for j, r := range v.replies[c.ID] {
			fmt.Fprintf(a.out, "   %d.%d %s (%s): %s\n", i+1, j+1, r.User.Username, r.TimeAgo, r.Content)
		}
	}
	if v.hasMore {
		fmt.Fprintln(a.out, "(more comments available — 'more')")
	}
}

// Read shows an article with its comments and replies and runs the
// interaction loop. Deleting the article raises the navigate-back signal
// and unwinds to the caller.
func (a *App) Read(ctx context.Context, id string) error {
	art, err := a.articleService.Detail(ctx, id)
	if err != nil {
		a.log.Error(ctx, "failed to fetch article", "article", id, "error", err)
		a.toastError("Article not found")
		return err
	}

	v := &detailView{
		article:     art,
		commentPage: 1,
		replies:     make(map[string][]models.Reply),
		replyPage:   make(map[string]int),
	}

	v.comments, v.hasMore, err = a.commentService.List(ctx, id, 1)
	if err != nil {
		a.log.Error(ctx, "failed to fetch comments", "article", id, "error", err)
		a.toastError("Error fetching comments")
	}

	owner := a.articleService.IsOwner(ctx, v.article)

	for {
		a.renderDetail(v)

		prompt := "heart/bookmark/share/comment/more/replies <#>/reply <#>/delcomment <#>/delreply <#.#>/back"
		if owner {
			prompt += "/edit/delete"
		}
		line, err := getSimpleText(a.reader, prompt, a.out)
		if err != nil {
			return err
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		pickComment := func() (*models.Comment, bool) {
			if len(parts) < 2 {
				fmt.Fprintln(a.out, "Usage:", parts[0], "<#>")
				return nil, false
			}
			i, err := strconv.Atoi(parts[1])
			if err != nil || i < 1 || i > len(v.comments) {
				fmt.Fprintln(a.out, "No such comment")
				return nil, false
			}
			return &v.comments[i-1], true
		}

		switch parts[0] {
		case "heart", "h":
			a.toggleHeart(ctx, &v.article)
		case "bookmark", "b":
			a.toggleBookmark(ctx, &v.article)
		case "share":
			fmt.Fprintf(a.out, "%s/article/%s\n", a.config.BaseURL, v.article.ID)
			a.toastSuccess("Link printed above")
		case "comment", "c":
			a.postComment(ctx, v)
		case "more", "m":
			a.loadMoreComments(ctx, v)
		case "replies":
			if c, ok := pickComment(); ok {
				a.loadReplies(ctx, v, c)
			}
		case "reply":
			if c, ok := pickComment(); ok {
				a.postReply(ctx, v, c)
			}
		case "delcomment":
			if c, ok := pickComment(); ok {
				a.deleteComment(ctx, v, c.ID)
			}
		case "delreply":
			a.deleteReply(ctx, v, parts)
		case "edit":
			if !owner {
				fmt.Fprintln(a.out, "Unknown command:", parts[0])
				continue
			}
			if updated, err := a.editArticle(ctx, v.article.ID); err == nil {
				v.article = updated
			}
		case "delete":
			if !owner {
				fmt.Fprintln(a.out, "Unknown command:", parts[0])
				continue
			}
			if err := a.articleService.Delete(ctx, v.article.ID); err != nil {
				a.log.Error(ctx, "failed to delete article", "article", v.article.ID, "error", err)
				a.toastError("Failed to delete article")
				continue
			}
			a.toastSuccess("Article deleted successfully")
			// The navigate-back signal is already raised; unwind.
			return nil
		case "back", "q":
			return nil
		default:
			fmt.Fprintln(a.out, "Unknown command:", parts[0])
		}

		if a.signInRequested {
			return nil
		}
	}
}

func (a *App) postComment(ctx context.Context, v *detailView) {
	content, err := GetMultiline(a.reader, "Your comment", a.out)
	if err != nil {
		return
	}
	if strings.TrimSpace(content) == "" {
		return
	}
	comment, err := a.commentService.Add(ctx, &v.article, content)
	if err != nil {
		a.log.Error(ctx, "failed to add comment", "article", v.article.ID, "error", err)
		a.toastError("Failed to add comment")
		return
	}
	// New comment goes to the top, as on the web.
	v.comments = append([]models.Comment{comment}, v.comments...)
	v.commentPage = 1
}

func (a *App) loadMoreComments(ctx context.Context, v *detailView) {
	next := v.commentPage + 1
	more, hasMore, err := a.commentService.List(ctx, v.article.ID, next)
	if err != nil {
		a.log.Error(ctx, "failed to fetch comments", "article", v.article.ID, "error", err)
		a.toastError("Error fetching comments")
		return
	}
	v.commentPage = next
	v.comments = append(v.comments, more...)
	v.hasMore = hasMore
}

func (a *App) loadReplies(ctx context.Context, v *detailView, c *models.Comment) {
	next := v.replyPage[c.ID] + 1
	replies, _, err := a.commentService.Replies(ctx, c.ID, next)
	if err != nil {
		a.log.Error(ctx, "failed to fetch replies", "comment", c.ID, "error", err)
		a.toastError("Error fetching replies")
		return
	}
	v.replyPage[c.ID] = next
	v.replies[c.ID] = append(v.replies[c.ID], replies...)
}

func (a *App) postReply(ctx context.Context, v *detailView, c *models.Comment) {
	content, err := GetMultiline(a.reader, "Your reply", a.out)
	if err != nil {
		return
	}
	if strings.TrimSpace(content) == "" {
		return
	}
	reply, err := a.commentService.AddReply(ctx, c, content)
	if err != nil {
		a.log.Error(ctx, "failed to add reply", "comment", c.ID, "error", err)
		a.toastError("Failed to add reply")
		return
	}
	v.replies[c.ID] = append(v.replies[c.ID], reply)
}

func (a *App) deleteComment(ctx context.Context, v *detailView, commentID string) {
	if err := a.commentService.Delete(ctx, &v.article, commentID); err != nil {
		a.log.Error(ctx, "failed to delete comment", "comment", commentID, "error", err)
		a.toastError("Failed to delete comment")
		return
	}
	kept := v.comments[:0]
	for _, c := range v.comments {
		if c.ID != commentID {
			kept = append(kept, c)
		}
	}
	v.comments = kept
	a.toastSuccess("Comment deleted successfully")
}

// deleteReply resolves a "<comment#>.<reply#>" argument and deletes that
// reply.
func (a *App) deleteReply(ctx context.Context, v *detailView, parts []string) {
	if len(parts) < 2 {
		fmt.Fprintln(a.out, "Usage: delreply <comment#>.<reply#>")
		return
	}
	idx := strings.SplitN(parts[1], ".", 2)
	if len(idx) != 2 {
		fmt.Fprintln(a.out, "Usage: delreply <comment#>.<reply#>")
		return
	}
	ci, err1 := strconv.Atoi(idx[0])
	ri, err2 := strconv.Atoi(idx[1])
	if err1 != nil || err2 != nil || ci < 1 || ci > len(v.comments) {
		fmt.Fprintln(a.out, "No such reply")
		return
	}
	comment := &v.comments[ci-1]
	replies := v.replies[comment.ID]
	if ri < 1 || ri > len(replies) {
		fmt.Fprintln(a.out, "No such reply")
		return
	}
	reply := replies[ri-1]

	if err := a.commentService.DeleteReply(ctx, comment, reply.ID); err != nil {
		a.log.Error(ctx, "failed to delete reply", "reply", reply.ID, "error", err)
		a.toastError("Failed to delete reply")
		return
	}
	v.replies[comment.ID] = append(replies[:ri-1], replies[ri:]...)
	a.toastSuccess("Reply deleted successfully")
}
