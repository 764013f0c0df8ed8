package services

import (
	"context"
	"strings"

	"github.com/virtual-arena/arena-cli/internal/client/api"
	"github.com/virtual-arena/arena-cli/internal/client/models"
)

// CommentPageLimit is the page size for comment and reply listings. A page
// shorter than the limit means there is nothing further to load.
const CommentPageLimit = 10

// CommentService defines comment and reply operations. Mutations adjust the
// counts on the passed parent (article comment count, comment reply count)
// only after the server confirms, matching the browser client.
type CommentService interface {
	List(ctx context.Context, articleID string, page int) (comments []models.Comment, hasMore bool, err error)
	Add(ctx context.Context, article *models.Article, content string) (models.Comment, error)
	Delete(ctx context.Context, article *models.Article, commentID string) error
	Replies(ctx context.Context, commentID string, page int) (replies []models.Reply, hasMore bool, err error)
	AddReply(ctx context.Context, comment *models.Comment, content string) (models.Reply, error)
	DeleteReply(ctx context.Context, comment *models.Comment, replyID string) error
}

type commentService struct {
	client api.Client
}

// NewCommentService constructs a CommentService over the given API client.
func NewCommentService(client api.Client) CommentService {
	return &commentService{client: client}
}

func (s *commentService) List(ctx context.Context, articleID string, page int) ([]models.Comment, bool, error) {
	comments, err := s.client.Comments(ctx, articleID, page, CommentPageLimit)
	if err != nil {
		return nil, false, err
	}
	return comments, len(comments) == CommentPageLimit, nil
}

func (s *commentService) Add(ctx context.Context, article *models.Article, content string) (models.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return models.Comment{}, ErrEmptyContent
	}
	comment, err := s.client.CreateComment(ctx, article.ID, content)
	if err != nil {
		return models.Comment{}, err
	}
	article.CommentCount++
	return comment, nil
}

func (s *commentService) Delete(ctx context.Context, article *models.Article, commentID string) error {
	if err := s.client.DeleteComment(ctx, commentID); err != nil {
		return err
	}
	article.CommentCount--
	return nil
}

func (s *commentService) Replies(ctx context.Context, commentID string, page int) ([]models.Reply, bool, error) {
	replies, err := s.client.Replies(ctx, commentID, page, CommentPageLimit)
	if err != nil {
		return nil, false, err
	}
	return replies, len(replies) == CommentPageLimit, nil
}

func (s *commentService) AddReply(ctx context.Context, comment *models.Comment, content string) (models.Reply, error) {
	if strings.TrimSpace(content) == "" {
		return models.Reply{}, ErrEmptyContent
	}
	reply, err := s.client.CreateReply(ctx, comment.ID, content)
	if err != nil {
		return models.Reply{}, err
	}
	comment.ReplyCount++
	return reply, nil
}

func (s *commentService) DeleteReply(ctx context.Context, comment *models.Comment, replyID string) error {
	if err := s.client.DeleteReply(ctx, replyID); err != nil {
		return err
	}
	comment.ReplyCount--
	return nil
}
