package cli

import (
	"context"

	"github.com/virtual-arena/arena-cli/internal/client/api"
	"github.com/virtual-arena/arena-cli/internal/client/models"
)

// promptDraft collects article fields. Non-empty current values are shown
// and kept when the user enters nothing.
func (a *App) promptDraft(current models.ArticleDraft) (models.ArticleDraft, error) {
	keepOr := func(entered, current string) string {
		if entered == "" {
			return current
		}
		return entered
	}

	title, err := getSimpleText(a.reader, "Title ["+current.Title+"]", a.out)
	if err != nil {
		return current, err
	}
	short, err := GetMultiline(a.reader, "Short description", a.out)
	if err != nil {
		return current, err
	}
	long, err := GetMultiline(a.reader, "Body", a.out)
	if err != nil {
		return current, err
	}
	image, err := getSimpleText(a.reader, "Image URL ["+current.MainImageURL+"]", a.out)
	if err != nil {
		return current, err
	}
	source, err := getSimpleText(a.reader, "Source URL ["+current.SourceURL+"]", a.out)
	if err != nil {
		return current, err
	}

	return models.ArticleDraft{
		Title:            keepOr(title, current.Title),
		ShortDescription: keepOr(short, current.ShortDescription),
		LongDescription:  keepOr(long, current.LongDescription),
		MainImageURL:     keepOr(image, current.MainImageURL),
		SourceURL:        keepOr(source, current.SourceURL),
	}, nil
}

// NewArticle creates an article. Guarded: without a credential the sign-in
// redirect fires and nothing renders.
func (a *App) NewArticle(ctx context.Context) error {
	if !a.RequireAuth(ctx) {
		return nil
	}

	draft, err := a.promptDraft(models.ArticleDraft{})
	if err != nil {
		return err
	}

	created, err := a.articleService.Create(ctx, draft)
	if err != nil {
		a.log.Error(ctx, "failed to create article", "error", err)
		a.toastError("Failed to create article: %v", err)
		return err
	}
	a.toastSuccess("Published %q (%s)", created.Title, created.ID)
	return nil
}

// EditArticle updates an existing article from the REPL.
func (a *App) EditArticle(ctx context.Context, id string) error {
	_, err := a.editArticle(ctx, id)
	return err
}

// editArticle fetches the article, prompts with its current fields, and
// submits the update. Callers that hold a page cache patch the returned
// article into it.
func (a *App) editArticle(ctx context.Context, id string) (models.Article, error) {
	if !a.RequireAuth(ctx) {
		return models.Article{}, api.ErrUnauthorized
	}

	current, err := a.articleService.Detail(ctx, id)
	if err != nil {
		a.log.Error(ctx, "failed to fetch article", "article", id, "error", err)
		a.toastError("Article not found")
		return models.Article{}, err
	}

	draft, err := a.promptDraft(models.ArticleDraft{
		Title:            current.Title,
		ShortDescription: current.ShortDescription,
		LongDescription:  current.LongDescription,
		MainImageURL:     current.MainImageURL,
		SourceURL:        current.SourceURL,
	})
	if err != nil {
		return models.Article{}, err
	}

	updated, err := a.articleService.Update(ctx, id, draft)
	if err != nil {
		a.log.Error(ctx, "failed to update article", "article", id, "error", err)
		a.toastError("Failed to update article: %v", err)
		return models.Article{}, err
	}
	a.toastSuccess("Article updated")
	return updated, nil
}
