package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// Post is a user's post with its likes and comments. The author's name and
// avatar are denormalized at creation time and never re-synced when the user
// record changes later.
type Post struct {
	ID        int64       `db:"id" json:"id"`
	UserID    int64       `db:"user_id" json:"user"`
	Text      string      `db:"text" json:"text"`
	Name      string      `db:"name" json:"name"`
	Avatar    string      `db:"avatar" json:"avatar"`
	Likes     LikeList    `db:"likes" json:"likes"`
	Comments  CommentList `db:"comments" json:"comments"`
	CreatedAt time.Time   `db:"created_at" json:"created_at"`
}

// Like marks that a user liked the post. A user appears at most once in a
// post's like list; the toggle operation enforces that by membership check.
type Like struct {
	UserID int64 `json:"user"`
}

// Comment is one entry in a post's comment list, newest first. Carries an
// author snapshot like the post itself.
type Comment struct {
	ID        string    `json:"id"`
	UserID    int64     `json:"user"`
	Text      string    `json:"text"`
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"created_at"`
}

// LikeList and CommentList are JSONB-backed ordered sequences.
type LikeList []Like

type CommentList []Comment

// CreatePostRequest is the request body for creating a post.
type CreatePostRequest struct {
	Text string `json:"text"`
}

// CreateCommentRequest is the request body for commenting on a post.
type CreateCommentRequest struct {
	Text string `json:"text"`
}

// Post errors
var (
	ErrPostNotFound    = errors.New("post not found")
	ErrNotPostOwner    = errors.New("not the owner of this post")
	ErrTextRequired    = errors.New("text is required")
	ErrCommentNotFound = errors.New("comment not found")
	ErrNotCommentOwner = errors.New("not the comment author or post owner")
)

func (l LikeList) Value() (driver.Value, error) {
	if l == nil {
		return json.Marshal(LikeList{})
	}
	return json.Marshal(l)
}

func (l *LikeList) Scan(src interface{}) error { return scanJSONB(l, src) }

func (l CommentList) Value() (driver.Value, error) {
	if l == nil {
		return json.Marshal(CommentList{})
	}
	return json.Marshal(l)
}

func (l *CommentList) Scan(src interface{}) error { return scanJSONB(l, src) }
