package services

import (
	"context"

	"github.com/go-playground/validator/v10"

	"github.com/virtual-arena/arena-cli/internal/client/api"
	"github.com/virtual-arena/arena-cli/internal/client/models"
	"github.com/virtual-arena/arena-cli/internal/client/session"
	"github.com/virtual-arena/arena-cli/internal/logging"
)

// ArticleService defines article operations for the views.
//
// Contract:
//   - ToggleHeart/ToggleBookmark: require a stored credential; without one
//     the sign-in redirect fires and api.ErrUnauthorized returns before any
//     request is issued. With one, the flag and count are applied to the
//     passed article optimistically and rolled back if the server rejects
//     the call. The rollback policy is uniform across all views.
//   - Delete: invokes the navigate-back callback after (and only after) the
//     server confirms the deletion.
//   - Create/Update: validate the draft client-side first; precondition
//     failures never reach the network.
type ArticleService interface {
	Featured(ctx context.Context) ([]models.Article, error)
	Latest(ctx context.Context, page int) (models.ListPage[models.Article], error)
	Mine(ctx context.Context, page int) (models.ListPage[models.Article], error)
	Bookmarked(ctx context.Context, page int) (models.ListPage[models.Article], error)
	Search(ctx context.Context, query string, page int) (models.ListPage[models.Article], error)
	Detail(ctx context.Context, id string) (models.Article, error)
	Create(ctx context.Context, draft models.ArticleDraft) (models.Article, error)
	Update(ctx context.Context, id string, draft models.ArticleDraft) (models.Article, error)
	Delete(ctx context.Context, id string) error
	ToggleHeart(ctx context.Context, article *models.Article) error
	ToggleBookmark(ctx context.Context, article *models.Article) error
	IsOwner(ctx context.Context, article models.Article) bool
}

type articleService struct {
	client       api.Client
	store        session.Store
	signIn       func()
	navigateBack func()
	validate     *validator.Validate
	limit        int
	log          logging.Logger
}

// NewArticleService constructs an ArticleService. signIn is the sign-in
// redirect used by the toggle guards; navigateBack is the post-delete
// navigation side effect; limit is the list page size.
func NewArticleService(client api.Client, store session.Store, signIn, navigateBack func(), limit int, log logging.Logger) ArticleService {
	return &articleService{
		client:       client,
		store:        store,
		signIn:       signIn,
		navigateBack: navigateBack,
		validate:     validator.New(validator.WithRequiredStructEnabled()),
		limit:        limit,
		log:          log,
	}
}

func (s *articleService) Featured(ctx context.Context) ([]models.Article, error) {
	return s.client.FeaturedArticles(ctx)
}

func (s *articleService) Latest(ctx context.Context, page int) (models.ListPage[models.Article], error) {
	return s.client.LatestArticles(ctx, page, s.limit)
}

func (s *articleService) Mine(ctx context.Context, page int) (models.ListPage[models.Article], error) {
	return s.client.MyArticles(ctx, page, s.limit)
}

func (s *articleService) Bookmarked(ctx context.Context, page int) (models.ListPage[models.Article], error) {
	return s.client.BookmarkedArticles(ctx, page, s.limit)
}

func (s *articleService) Search(ctx context.Context, query string, page int) (models.ListPage[models.Article], error) {
	return s.client.SearchArticles(ctx, query, page, s.limit)
}

func (s *articleService) Detail(ctx context.Context, id string) (models.Article, error) {
	return s.client.ArticleDetail(ctx, id)
}

func (s *articleService) Create(ctx context.Context, draft models.ArticleDraft) (models.Article, error) {
	if err := s.validate.Struct(draft); err != nil {
		return models.Article{}, err
	}
	return s.client.CreateArticle(ctx, draft)
}

func (s *articleService) Update(ctx context.Context, id string, draft models.ArticleDraft) (models.Article, error) {
	if err := s.validate.Struct(draft); err != nil {
		return models.Article{}, err
	}
	return s.client.UpdateArticle(ctx, id, draft)
}

func (s *articleService) Delete(ctx context.Context, id string) error {
	if err := s.client.DeleteArticle(ctx, id); err != nil {
		return err
	}
	s.navigateBack()
	return nil
}

// toggle applies an optimistic flip via apply, issues the call, and re-flips
// on failure so the article ends exactly at its pre-toggle values.
func (s *articleService) toggle(ctx context.Context, article *models.Article, apply func(*models.Article), call func(context.Context, string) error) error {
	if !session.HasCredential(ctx, s.store) {
		// Guarding here avoids a guaranteed 401 round trip.
		s.signIn()
		return api.ErrUnauthorized
	}

	apply(article)
	if err := call(ctx, article.ID); err != nil {
		apply(article)
		return err
	}
	return nil
}

func (s *articleService) ToggleHeart(ctx context.Context, article *models.Article) error {
	return s.toggle(ctx, article, func(a *models.Article) {
		if a.Hearted {
			a.Hearted = false
			a.HeartCount--
		} else {
			a.Hearted = true
			a.HeartCount++
		}
	}, s.client.ToggleHeart)
}

func (s *articleService) ToggleBookmark(ctx context.Context, article *models.Article) error {
	return s.toggle(ctx, article, func(a *models.Article) {
		if a.Bookmarked {
			a.Bookmarked = false
			a.BookmarkCount--
		} else {
			a.Bookmarked = true
			a.BookmarkCount++
		}
	}, s.client.ToggleBookmark)
}

// IsOwner reports whether the signed-in user published the article, by
// comparing the cached session id against the publisher reference.
func (s *articleService) IsOwner(ctx context.Context, article models.Article) bool {
	id, err := s.store.Get(ctx, session.KeyID)
	return err == nil && id != "" && id == article.Publisher.ID
}
