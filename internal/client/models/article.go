package models

// Article is the client-side copy of a server-owned article. Copies held in
// view state are mutated locally on interaction (heart/bookmark toggles,
// comment-count adjustments) and are expected to match server state after
// each round trip.
type Article struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	ShortDescription string    `json:"shortDescription"`
	LongDescription  string    `json:"longDescription"`
	MainImageURL     string    `json:"mainImageUrl"`
	SourceURL        string    `json:"sourceUrl"`
	Publisher        Publisher `json:"publisher"`
	HeartCount       int       `json:"heartCount"`
	BookmarkCount    int       `json:"bookmarkCount"`
	CommentCount     int       `json:"commentCount"`
	Hearted          bool      `json:"hearted"`
	Bookmarked       bool      `json:"bookmarked"`
	TimeAgo          string    `json:"timeAgo"`
}

// ArticleDraft carries the user-editable fields for create and update.
type ArticleDraft struct {
	Title            string `json:"title" validate:"required"`
	ShortDescription string `json:"shortDescription" validate:"required"`
	LongDescription  string `json:"longDescription" validate:"required"`
	MainImageURL     string `json:"mainImageUrl" validate:"omitempty,url"`
	SourceURL        string `json:"sourceUrl" validate:"omitempty,url"`
}
