package client

import (
	"context"
	"errors"

	"devconnect/internal/model"
)

// Actions bridges the API and the store: each method runs one asynchronous
// operation and dispatches its outcome. Failures never escape as panics or
// returned errors to views; they become failure outcomes plus an alert, and
// the error is also returned for callers that want it.
type Actions struct {
	api   *API
	store *Store
}

func NewActions(api *API, store *Store) *Actions {
	return &Actions{api: api, store: store}
}

// fault normalizes any error into a typed Fault payload.
func fault(err error) *Fault {
	var f *Fault
	if errors.As(err, &f) {
		return f
	}
	return &Fault{Status: 0, Code: "NETWORK", Message: err.Error()}
}

// LoadUser resolves the token to the current subject.
func (a *Actions) LoadUser(ctx context.Context, token string) error {
	user, err := a.api.CurrentUser(ctx, token)
	if err != nil {
		a.store.Dispatch(Outcome{Kind: OutcomeAuthFailed})
		a.store.RaiseAlert(fault(err).Message, "danger")
		return err
	}
	a.store.Dispatch(Outcome{Kind: OutcomeUserLoaded, User: user})
	return nil
}

// Logout clears the auth and profile slices.
func (a *Actions) Logout() {
	a.store.Dispatch(Outcome{Kind: OutcomeLoggedOut})
}

// FetchOwnProfile loads the subject's profile into the profile slice.
func (a *Actions) FetchOwnProfile(ctx context.Context, token string) error {
	profile, err := a.api.OwnProfile(ctx, token)
	if err != nil {
		f := fault(err)
		a.store.Dispatch(Outcome{Kind: OutcomeProfileFailed, Fault: f})
		a.store.RaiseAlert(f.Message, "danger")
		return err
	}
	a.store.Dispatch(Outcome{Kind: OutcomeProfileLoaded, Profile: profile})
	return nil
}

// SubmitProfile creates or updates the profile, raising an alert either way.
func (a *Actions) SubmitProfile(ctx context.Context, token string, req model.UpsertProfileRequest) error {
	profile, err := a.api.UpsertProfile(ctx, token, req)
	if err != nil {
		f := fault(err)
		a.store.Dispatch(Outcome{Kind: OutcomeProfileFailed, Fault: f})
		a.store.RaiseAlert(f.Message, "danger")
		return err
	}
	a.store.Dispatch(Outcome{Kind: OutcomeProfileLoaded, Profile: profile})
	a.store.RaiseAlert("Profile saved", "success")
	return nil
}

// DeleteAccount permanently removes the subject's account, posts and
// profile, then drops the profile and auth slices.
func (a *Actions) DeleteAccount(ctx context.Context, token string) error {
	if err := a.api.DeleteAccount(ctx, token); err != nil {
		f := fault(err)
		a.store.Dispatch(Outcome{Kind: OutcomeProfileFailed, Fault: f})
		a.store.RaiseAlert(f.Message, "danger")
		return err
	}
	a.store.Dispatch(Outcome{Kind: OutcomeProfileCleared})
	a.store.Dispatch(Outcome{Kind: OutcomeLoggedOut})
	a.store.RaiseAlert("Your account has been permanently deleted", "success")
	return nil
}

// FetchProfiles loads the developer directory.
func (a *Actions) FetchProfiles(ctx context.Context) error {
	profiles, err := a.api.Profiles(ctx)
	if err != nil {
		f := fault(err)
		a.store.Dispatch(Outcome{Kind: OutcomeProfileFailed, Fault: f})
		a.store.RaiseAlert(f.Message, "danger")
		return err
	}
	a.store.Dispatch(Outcome{Kind: OutcomeProfilesLoaded, Profiles: profiles})
	return nil
}

// FetchRepos loads a user's repository listing into the profile slice.
func (a *Actions) FetchRepos(ctx context.Context, username string) error {
	repos, err := a.api.GithubRepos(ctx, username)
	if err != nil {
		f := fault(err)
		a.store.Dispatch(Outcome{Kind: OutcomeProfileFailed, Fault: f})
		a.store.RaiseAlert(f.Message, "danger")
		return err
	}
	a.store.Dispatch(Outcome{Kind: OutcomeReposLoaded, Repos: repos})
	return nil
}

// FetchPosts loads all posts into the posts slice.
func (a *Actions) FetchPosts(ctx context.Context, token string) error {
	posts, err := a.api.Posts(ctx, token)
	if err != nil {
		f := fault(err)
		a.store.Dispatch(Outcome{Kind: OutcomePostsFailed, Fault: f})
		a.store.RaiseAlert(f.Message, "danger")
		return err
	}
	a.store.Dispatch(Outcome{Kind: OutcomePostsLoaded, Posts: posts})
	return nil
}

// CreatePost submits a post and prepends it to the posts slice.
func (a *Actions) CreatePost(ctx context.Context, token, text string) error {
	post, err := a.api.CreatePost(ctx, token, text)
	if err != nil {
		f := fault(err)
		a.store.Dispatch(Outcome{Kind: OutcomePostsFailed, Fault: f})
		a.store.RaiseAlert(f.Message, "danger")
		return err
	}
	a.store.Dispatch(Outcome{Kind: OutcomePostCreated, Post: post})
	a.store.RaiseAlert("Post created", "success")
	return nil
}

// DeletePost removes the subject's post from the server and the slice.
func (a *Actions) DeletePost(ctx context.Context, token string, postID int64) error {
	if err := a.api.DeletePost(ctx, token, postID); err != nil {
		f := fault(err)
		a.store.Dispatch(Outcome{Kind: OutcomePostsFailed, Fault: f})
		a.store.RaiseAlert(f.Message, "danger")
		return err
	}
	a.store.Dispatch(Outcome{Kind: OutcomePostDeleted, PostID: postID})
	return nil
}

// ToggleLike flips the subject's like on a post; the server's like list is
// merged back into the matching post.
func (a *Actions) ToggleLike(ctx context.Context, token string, postID int64) error {
	likes, err := a.api.ToggleLike(ctx, token, postID)
	if err != nil {
		f := fault(err)
		a.store.Dispatch(Outcome{Kind: OutcomePostsFailed, Fault: f})
		a.store.RaiseAlert(f.Message, "danger")
		return err
	}
	a.store.Dispatch(Outcome{Kind: OutcomeLikesUpdated, PostID: postID, Likes: likes})
	return nil
}

// AddComment comments on a post and merges the updated comment list.
func (a *Actions) AddComment(ctx context.Context, token string, postID int64, text string) error {
	comments, err := a.api.AddComment(ctx, token, postID, text)
	if err != nil {
		f := fault(err)
		a.store.Dispatch(Outcome{Kind: OutcomePostsFailed, Fault: f})
		a.store.RaiseAlert(f.Message, "danger")
		return err
	}
	a.store.Dispatch(Outcome{Kind: OutcomeCommentsUpdated, PostID: postID, Comments: comments})
	return nil
}

// RemoveComment deletes a comment and merges the updated comment list.
func (a *Actions) RemoveComment(ctx context.Context, token string, postID int64, commentID string) error {
	comments, err := a.api.RemoveComment(ctx, token, postID, commentID)
	if err != nil {
		f := fault(err)
		a.store.Dispatch(Outcome{Kind: OutcomePostsFailed, Fault: f})
		a.store.RaiseAlert(f.Message, "danger")
		return err
	}
	a.store.Dispatch(Outcome{Kind: OutcomeCommentsUpdated, PostID: postID, Comments: comments})
	return nil
}
