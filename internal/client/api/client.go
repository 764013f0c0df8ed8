package api

import (
	"context"

	"github.com/virtual-arena/arena-cli/internal/client/models"
)

// Client is the transport-level surface of the remote Arena service. Each
// method maps to exactly one HTTP operation; orchestration (credential
// storage, guards, navigation side effects) lives in the services layer.
//
// Contract:
//   - Methods return the decoded response body on success.
//   - On failure the underlying transport or HTTP error is propagated
//     unchanged apart from operation context; there is no status-code
//     branching, no retry, and no automatic token refresh.
//   - The bearer credential, when one is stored, is attached to every call
//     except Register, Authenticate, SendVerificationCode and VerifyCode.
type Client interface {
	Register(ctx context.Context, username, email, password string) error
	Authenticate(ctx context.Context, username, password string) (models.Credential, error)
	CurrentUser(ctx context.Context) (models.UserProfile, error)
	RefreshCredential(ctx context.Context, refreshToken string) (models.Credential, error)
	ChangePassword(ctx context.Context, oldPassword, newPassword string) error
	SendVerificationCode(ctx context.Context, email string) error
	VerifyCode(ctx context.Context, email, code string) error
	UpdateProfile(ctx context.Context, username, avatarURL string) (models.UserProfile, error)

	FeaturedArticles(ctx context.Context) ([]models.Article, error)
	LatestArticles(ctx context.Context, page, limit int) (models.ListPage[models.Article], error)
	MyArticles(ctx context.Context, page, limit int) (models.ListPage[models.Article], error)
	BookmarkedArticles(ctx context.Context, page, limit int) (models.ListPage[models.Article], error)
	SearchArticles(ctx context.Context, query string, page, limit int) (models.ListPage[models.Article], error)
	ArticleDetail(ctx context.Context, id string) (models.Article, error)
	CreateArticle(ctx context.Context, draft models.ArticleDraft) (models.Article, error)
	UpdateArticle(ctx context.Context, id string, draft models.ArticleDraft) (models.Article, error)
	DeleteArticle(ctx context.Context, id string) error
	ToggleHeart(ctx context.Context, id string) error
	ToggleBookmark(ctx context.Context, id string) error

	Comments(ctx context.Context, articleID string, page, limit int) ([]models.Comment, error)
	CreateComment(ctx context.Context, articleID, content string) (models.Comment, error)
	DeleteComment(ctx context.Context, id string) error
	Replies(ctx context.Context, commentID string, page, limit int) ([]models.Reply, error)
	CreateReply(ctx context.Context, commentID, content string) (models.Reply, error)
	DeleteReply(ctx context.Context, id string) error
}
