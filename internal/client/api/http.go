package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/virtual-arena/arena-cli/internal/client/models"
	"github.com/virtual-arena/arena-cli/internal/client/session"
	"github.com/virtual-arena/arena-cli/internal/logging"
)

// HTTPClient is the concrete Client over the Arena HTTP+JSON API.
//
// The bearer token is read from the session store on every authenticated
// request; the client never caches it, so a login or logout in the same
// process is picked up immediately. Requests carry an X-Request-Id header
// for log correlation.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	store   session.Store
	log     logging.Logger
}

// NewHTTPClient returns an HTTPClient for the service at baseURL (no
// trailing slash). The provided http.Client controls transport concerns
// such as the overall timeout; pass http.DefaultClient for none.
func NewHTTPClient(baseURL string, hc *http.Client, store session.Store, log logging.Logger) *HTTPClient {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &HTTPClient{baseURL: baseURL, http: hc, store: store, log: log}
}

// pageQuery formats page/limit the way the browser client did: values are
// passed through unvalidated, so page 0 or negative reaches the server and
// the server's behavior governs the result.
func pageQuery(page, limit int) url.Values {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))
	return q
}

// do performs one HTTP round trip. authed controls bearer attachment; body
// and out may be nil. Non-2xx responses surface as *StatusError with the
// raw body preserved.
func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, body any, out any, authed bool) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	requestID := uuid.NewString()
	req.Header.Set("X-Request-Id", requestID)

	if authed {
		token, err := c.store.Get(ctx, session.KeyAccessToken)
		if err != nil {
			return err
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	c.log.Debug(ctx, "api request", "method", method, "path", path, "request_id", requestID)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%s %s: %w", method, path, &StatusError{Code: resp.StatusCode, Body: string(data)})
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func (c *HTTPClient) Register(ctx context.Context, username, email, password string) error {
	body := map[string]string{"username": username, "email": email, "password": password}
	return c.do(ctx, http.MethodPost, "/api/v1/auth/register", nil, body, nil, false)
}

func (c *HTTPClient) Authenticate(ctx context.Context, username, password string) (models.Credential, error) {
	body := map[string]string{"username": username, "password": password}
	var cred models.Credential
	err := c.do(ctx, http.MethodPost, "/api/v1/auth/authenticate", nil, body, &cred, false)
	return cred, err
}

func (c *HTTPClient) CurrentUser(ctx context.Context) (models.UserProfile, error) {
	var p models.UserProfile
	err := c.do(ctx, http.MethodGet, "/api/v1/auth/me", nil, nil, &p, true)
	return p, err
}

func (c *HTTPClient) RefreshCredential(ctx context.Context, refreshToken string) (models.Credential, error) {
	body := map[string]string{"refreshToken": refreshToken}
	// The refresh response names the second token differently from the
	// authenticate response.
	var out struct {
		AccessToken     string `json:"accessToken"`
		NewRefreshToken string `json:"newRefreshToken"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/refresh-token", nil, body, &out, true); err != nil {
		return models.Credential{}, err
	}
	return models.Credential{AccessToken: out.AccessToken, RefreshToken: out.NewRefreshToken}, nil
}

func (c *HTTPClient) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	body := map[string]string{"oldPassword": oldPassword, "newPassword": newPassword}
	return c.do(ctx, http.MethodPost, "/api/v1/auth/change-password", nil, body, nil, true)
}

func (c *HTTPClient) SendVerificationCode(ctx context.Context, email string) error {
	return c.do(ctx, http.MethodPost, "/api/v1/auth/verify-email/send", nil, map[string]string{"email": email}, nil, false)
}

func (c *HTTPClient) VerifyCode(ctx context.Context, email, code string) error {
	body := map[string]string{"email": email, "code": code}
	return c.do(ctx, http.MethodPost, "/api/v1/auth/verify-email/verify", nil, body, nil, false)
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, username, avatarURL string) (models.UserProfile, error) {
	body := map[string]string{"username": username, "avatarUrl": avatarURL}
	var p models.UserProfile
	err := c.do(ctx, http.MethodPost, "/api/v1/auth/me/update", nil, body, &p, true)
	return p, err
}

func (c *HTTPClient) FeaturedArticles(ctx context.Context) ([]models.Article, error) {
	var articles []models.Article
	err := c.do(ctx, http.MethodGet, "/article/featured", nil, nil, &articles, true)
	return articles, err
}

// articlePageResponse is the wire shape shared by every paginated article
// listing.
type articlePageResponse struct {
	Articles   []models.Article `json:"articles"`
	TotalPages int              `json:"totalPages"`
}

func (c *HTTPClient) articlePage(ctx context.Context, path string, query url.Values) (models.ListPage[models.Article], error) {
	var out articlePageResponse
	if err := c.do(ctx, http.MethodGet, path, query, nil, &out, true); err != nil {
		return models.ListPage[models.Article]{}, err
	}
	return models.ListPage[models.Article]{Items: out.Articles, TotalPages: out.TotalPages}, nil
}

func (c *HTTPClient) LatestArticles(ctx context.Context, page, limit int) (models.ListPage[models.Article], error) {
	return c.articlePage(ctx, "/article/latest", pageQuery(page, limit))
}

func (c *HTTPClient) MyArticles(ctx context.Context, page, limit int) (models.ListPage[models.Article], error) {
	return c.articlePage(ctx, "/article/me", pageQuery(page, limit))
}

func (c *HTTPClient) BookmarkedArticles(ctx context.Context, page, limit int) (models.ListPage[models.Article], error) {
	return c.articlePage(ctx, "/article/bookmarked", pageQuery(page, limit))
}

func (c *HTTPClient) SearchArticles(ctx context.Context, query string, page, limit int) (models.ListPage[models.Article], error) {
	q := pageQuery(page, limit)
	q.Set("query", query)
	return c.articlePage(ctx, "/article/search", q)
}

func (c *HTTPClient) ArticleDetail(ctx context.Context, id string) (models.Article, error) {
	var a models.Article
	err := c.do(ctx, http.MethodGet, "/article/"+id, nil, nil, &a, true)
	return a, err
}

func (c *HTTPClient) CreateArticle(ctx context.Context, draft models.ArticleDraft) (models.Article, error) {
	var a models.Article
	err := c.do(ctx, http.MethodPost, "/article", nil, draft, &a, true)
	return a, err
}

func (c *HTTPClient) UpdateArticle(ctx context.Context, id string, draft models.ArticleDraft) (models.Article, error) {
	var a models.Article
	err := c.do(ctx, http.MethodPut, "/article/"+id, nil, draft, &a, true)
	return a, err
}

func (c *HTTPClient) DeleteArticle(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/article/"+id, nil, nil, nil, true)
}

func (c *HTTPClient) ToggleHeart(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPost, "/article/"+id+"/heart", nil, nil, nil, true)
}

func (c *HTTPClient) ToggleBookmark(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPost, "/article/"+id+"/bookmark", nil, nil, nil, true)
}

func (c *HTTPClient) Comments(ctx context.Context, articleID string, page, limit int) ([]models.Comment, error) {
	var comments []models.Comment
	err := c.do(ctx, http.MethodGet, "/article/"+articleID+"/comments", pageQuery(page, limit), nil, &comments, true)
	return comments, err
}

func (c *HTTPClient) CreateComment(ctx context.Context, articleID, content string) (models.Comment, error) {
	var comment models.Comment
	err := c.do(ctx, http.MethodPost, "/article/"+articleID+"/comments", nil, map[string]string{"content": content}, &comment, true)
	return comment, err
}

func (c *HTTPClient) DeleteComment(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/comment/"+id, nil, nil, nil, true)
}

func (c *HTTPClient) Replies(ctx context.Context, commentID string, page, limit int) ([]models.Reply, error) {
	var replies []models.Reply
	err := c.do(ctx, http.MethodGet, "/comment/"+commentID+"/replies", pageQuery(page, limit), nil, &replies, true)
	return replies, err
}

func (c *HTTPClient) CreateReply(ctx context.Context, commentID, content string) (models.Reply, error) {
	var reply models.Reply
	err := c.do(ctx, http.MethodPost, "/comment/"+commentID+"/replies", nil, map[string]string{"content": content}, &reply, true)
	return reply, err
}

func (c *HTTPClient) DeleteReply(ctx context.Context, id string) error {
	// The reply delete route is shaped unlike every other route; it is what
	// the server serves.
	return c.do(ctx, http.MethodDelete, "/"+id+"/reply", nil, nil, nil, true)
}
