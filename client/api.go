package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"devconnect/internal/github"
	"devconnect/internal/httputil"
	"devconnect/internal/model"
)

// API is a typed client for the REST endpoints. The bearer credential is an
// explicit parameter on every protected call; there is no process-wide
// default header, so two callers with different tokens can share one API.
type API struct {
	baseURL    string
	httpClient *http.Client
}

// NewAPI creates an API client for the given base URL, e.g.
// http://localhost:8080.
func NewAPI(baseURL string) *API {
	return &API{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// do performs one request. A non-2xx response is decoded into a *Fault and
// returned as the error, so callers can turn it into a failure outcome.
func (a *API) do(ctx context.Context, method, path, token string, body, out interface{}) error {
	var reqBody *bytes.Buffer
	if body != nil {
		reqBody = &bytes.Buffer{}
		if err := json.NewEncoder(reqBody).Encode(body); err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		fault := &Fault{Status: resp.StatusCode, Code: "UNKNOWN", Message: resp.Status}
		var errResp httputil.ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Error.Code != "" {
			fault.Code = errResp.Error.Code
			fault.Message = errResp.Error.Message
		}
		return fault
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// Register creates an account and returns the issued bearer token.
func (a *API) Register(ctx context.Context, name, email, password string) (string, error) {
	var resp model.TokenResponse
	req := model.RegisterRequest{Name: name, Email: email, Password: password}
	if err := a.do(ctx, http.MethodPost, "/api/users", "", req, &resp); err != nil {
		return "", err
	}
	return resp.Token, nil
}

// Login exchanges credentials for a bearer token.
func (a *API) Login(ctx context.Context, email, password string) (string, error) {
	var resp model.TokenResponse
	req := model.LoginRequest{Email: email, Password: password}
	if err := a.do(ctx, http.MethodPost, "/api/auth", "", req, &resp); err != nil {
		return "", err
	}
	return resp.Token, nil
}

// CurrentUser returns the subject behind the token.
func (a *API) CurrentUser(ctx context.Context, token string) (*model.User, error) {
	var user model.User
	if err := a.do(ctx, http.MethodGet, "/api/auth", token, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// OwnProfile returns the subject's profile.
func (a *API) OwnProfile(ctx context.Context, token string) (*model.Profile, error) {
	var profile model.Profile
	if err := a.do(ctx, http.MethodGet, "/api/profile/me", token, nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpsertProfile creates or updates the subject's profile.
func (a *API) UpsertProfile(ctx context.Context, token string, req model.UpsertProfileRequest) (*model.Profile, error) {
	var profile model.Profile
	if err := a.do(ctx, http.MethodPost, "/api/profile", token, req, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// Profiles returns all profiles. Public.
func (a *API) Profiles(ctx context.Context) ([]model.Profile, error) {
	var profiles []model.Profile
	if err := a.do(ctx, http.MethodGet, "/api/profile", "", nil, &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

// ProfileByUser returns the profile for a user id. Public.
func (a *API) ProfileByUser(ctx context.Context, userID int64) (*model.Profile, error) {
	var profile model.Profile
	path := fmt.Sprintf("/api/profile/user/%d", userID)
	if err := a.do(ctx, http.MethodGet, path, "", nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// GithubRepos returns the repository listing for a username. Public.
func (a *API) GithubRepos(ctx context.Context, username string) ([]github.Repo, error) {
	var repos []github.Repo
	if err := a.do(ctx, http.MethodGet, "/api/profile/github/"+username, "", nil, &repos); err != nil {
		return nil, err
	}
	return repos, nil
}

// DeleteAccount removes the subject's account, profile and posts.
func (a *API) DeleteAccount(ctx context.Context, token string) error {
	return a.do(ctx, http.MethodDelete, "/api/profile", token, nil, nil)
}

// AddExperience adds a work-history entry at the head of the sequence.
func (a *API) AddExperience(ctx context.Context, token string, req model.AddExperienceRequest) (*model.Profile, error) {
	var profile model.Profile
	if err := a.do(ctx, http.MethodPut, "/api/profile/experience", token, req, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// RemoveExperience removes a work-history entry by id.
func (a *API) RemoveExperience(ctx context.Context, token, entryID string) (*model.Profile, error) {
	var profile model.Profile
	if err := a.do(ctx, http.MethodDelete, "/api/profile/experience/"+entryID, token, nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// AddEducation adds an education entry at the head of the sequence.
func (a *API) AddEducation(ctx context.Context, token string, req model.AddEducationRequest) (*model.Profile, error) {
	var profile model.Profile
	if err := a.do(ctx, http.MethodPut, "/api/profile/education", token, req, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// RemoveEducation removes an education entry by id.
func (a *API) RemoveEducation(ctx context.Context, token, entryID string) (*model.Profile, error) {
	var profile model.Profile
	if err := a.do(ctx, http.MethodDelete, "/api/profile/education/"+entryID, token, nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// Posts returns all posts, newest first.
func (a *API) Posts(ctx context.Context, token string) ([]model.Post, error) {
	var posts []model.Post
	if err := a.do(ctx, http.MethodGet, "/api/posts", token, nil, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// Post returns a single post.
func (a *API) Post(ctx context.Context, token string, postID int64) (*model.Post, error) {
	var post model.Post
	path := fmt.Sprintf("/api/posts/%d", postID)
	if err := a.do(ctx, http.MethodGet, path, token, nil, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// CreatePost creates a post.
func (a *API) CreatePost(ctx context.Context, token, text string) (*model.Post, error) {
	var post model.Post
	req := model.CreatePostRequest{Text: text}
	if err := a.do(ctx, http.MethodPost, "/api/posts", token, req, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// DeletePost deletes the subject's own post.
func (a *API) DeletePost(ctx context.Context, token string, postID int64) error {
	path := fmt.Sprintf("/api/posts/%d", postID)
	return a.do(ctx, http.MethodDelete, path, token, nil, nil)
}

// ToggleLike likes or unlikes a post and returns the updated like list.
func (a *API) ToggleLike(ctx context.Context, token string, postID int64) (model.LikeList, error) {
	var likes model.LikeList
	path := fmt.Sprintf("/api/posts/%d/like", postID)
	if err := a.do(ctx, http.MethodPut, path, token, nil, &likes); err != nil {
		return nil, err
	}
	return likes, nil
}

// AddComment comments on a post and returns the updated comment list.
func (a *API) AddComment(ctx context.Context, token string, postID int64, text string) (model.CommentList, error) {
	var comments model.CommentList
	req := model.CreateCommentRequest{Text: text}
	path := fmt.Sprintf("/api/posts/%d/comments", postID)
	if err := a.do(ctx, http.MethodPost, path, token, req, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// RemoveComment removes a comment and returns the updated comment list.
func (a *API) RemoveComment(ctx context.Context, token string, postID int64, commentID string) (model.CommentList, error) {
	var comments model.CommentList
	path := fmt.Sprintf("/api/posts/%d/comments/%s", postID, commentID)
	if err := a.do(ctx, http.MethodDelete, path, token, nil, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}
