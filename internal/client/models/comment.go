package models

// Comment is one top-level comment on an article. ReplyCount is maintained
// by the server; the client adjusts its local copy when it posts or deletes
// a reply, in the same transient-copy ownership model as Article.
type Comment struct {
	ID         string    `json:"id"`
	User       Publisher `json:"user"`
	Content    string    `json:"content"`
	CreatedAt  string    `json:"createdAt"`
	TimeAgo    string    `json:"timeAgo"`
	ReplyCount int       `json:"replyCount"`
}

// Reply is one reply nested under a comment.
type Reply struct {
	ID        string    `json:"id"`
	User      Publisher `json:"user"`
	Content   string    `json:"content"`
	CreatedAt string    `json:"createdAt"`
	TimeAgo   string    `json:"timeAgo"`
}
