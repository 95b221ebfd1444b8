package client

import (
	"devconnect/internal/github"
	"devconnect/internal/model"
)

// Outcome kinds, one per asynchronous operation result.
const (
	OutcomeUserLoaded  = "user_loaded"
	OutcomeAuthFailed  = "auth_failed"
	OutcomeLoggedOut   = "logged_out"

	OutcomeProfileLoaded  = "profile_loaded"
	OutcomeProfilesLoaded = "profiles_loaded"
	OutcomeReposLoaded    = "repos_loaded"
	OutcomeProfileCleared = "profile_cleared"
	OutcomeProfileFailed  = "profile_failed"

	OutcomePostsLoaded     = "posts_loaded"
	OutcomePostLoaded      = "post_loaded"
	OutcomePostCreated     = "post_created"
	OutcomePostDeleted     = "post_deleted"
	OutcomeLikesUpdated    = "likes_updated"
	OutcomeCommentsUpdated = "comments_updated"
	OutcomePostsFailed     = "posts_failed"

	OutcomeAlertRaised  = "alert_raised"
	OutcomeAlertExpired = "alert_expired"
)

// Outcome is the tagged result of an asynchronous operation: a success
// payload or a typed error payload, never both.
type Outcome struct {
	Kind string

	User     *model.User
	Profile  *model.Profile
	Profiles []model.Profile
	Repos    []github.Repo
	Posts    []model.Post
	Post     *model.Post
	PostID   int64
	Likes    model.LikeList
	Comments model.CommentList
	Alert    *Alert
	AlertID  string
	Fault    *Fault
}

// Reduce merges an outcome into the state and returns the next state. It is
// pure: the input state is never mutated, slices that change are reallocated,
// and an unknown outcome kind returns the state unchanged. When two in-flight
// requests race, whichever outcome is reduced last wins its slice.
func Reduce(s State, o Outcome) State {
	switch o.Kind {

	case OutcomeUserLoaded:
		s.Auth = AuthState{Subject: o.User, IsAuthenticated: true, Loading: false}

	case OutcomeAuthFailed, OutcomeLoggedOut:
		s.Auth = AuthState{}
		// Losing the subject invalidates the cached profile too.
		s.Profile = ProfileState{}

	case OutcomeProfileLoaded:
		s.Profile.Profile = o.Profile
		s.Profile.Loading = false
		s.Profile.Err = nil

	case OutcomeProfilesLoaded:
		s.Profile.Profiles = o.Profiles
		s.Profile.Loading = false
		s.Profile.Err = nil

	case OutcomeReposLoaded:
		s.Profile.Repos = o.Repos
		s.Profile.Loading = false
		s.Profile.Err = nil

	case OutcomeProfileCleared:
		s.Profile = ProfileState{}

	case OutcomeProfileFailed:
		s.Profile.Loading = false
		s.Profile.Err = o.Fault

	case OutcomePostsLoaded:
		s.Posts.Posts = o.Posts
		s.Posts.Loading = false
		s.Posts.Err = nil

	case OutcomePostLoaded:
		s.Posts.Post = o.Post
		s.Posts.Loading = false
		s.Posts.Err = nil

	case OutcomePostCreated:
		posts := make([]model.Post, 0, len(s.Posts.Posts)+1)
		posts = append(posts, *o.Post)
		posts = append(posts, s.Posts.Posts...)
		s.Posts.Posts = posts
		s.Posts.Loading = false
		s.Posts.Err = nil

	case OutcomePostDeleted:
		posts := make([]model.Post, 0, len(s.Posts.Posts))
		for _, p := range s.Posts.Posts {
			if p.ID != o.PostID {
				posts = append(posts, p)
			}
		}
		s.Posts.Posts = posts
		s.Posts.Loading = false

	case OutcomeLikesUpdated:
		s.Posts.Posts = mapPost(s.Posts.Posts, o.PostID, func(p model.Post) model.Post {
			p.Likes = o.Likes
			return p
		})
		if s.Posts.Post != nil && s.Posts.Post.ID == o.PostID {
			updated := *s.Posts.Post
			updated.Likes = o.Likes
			s.Posts.Post = &updated
		}
		s.Posts.Loading = false

	case OutcomeCommentsUpdated:
		s.Posts.Posts = mapPost(s.Posts.Posts, o.PostID, func(p model.Post) model.Post {
			p.Comments = o.Comments
			return p
		})
		if s.Posts.Post != nil && s.Posts.Post.ID == o.PostID {
			updated := *s.Posts.Post
			updated.Comments = o.Comments
			s.Posts.Post = &updated
		}
		s.Posts.Loading = false

	case OutcomePostsFailed:
		s.Posts.Loading = false
		s.Posts.Err = o.Fault

	case OutcomeAlertRaised:
		alerts := make([]Alert, 0, len(s.Alerts)+1)
		alerts = append(alerts, s.Alerts...)
		alerts = append(alerts, *o.Alert)
		s.Alerts = alerts

	case OutcomeAlertExpired:
		alerts := make([]Alert, 0, len(s.Alerts))
		for _, a := range s.Alerts {
			if a.ID != o.AlertID {
				alerts = append(alerts, a)
			}
		}
		s.Alerts = alerts
	}

	return s
}

// mapPost returns a new slice with the matching post transformed.
func mapPost(posts []model.Post, postID int64, fn func(model.Post) model.Post) []model.Post {
	out := make([]model.Post, len(posts))
	for i, p := range posts {
		if p.ID == postID {
			out[i] = fn(p)
		} else {
			out[i] = p
		}
	}
	return out
}
