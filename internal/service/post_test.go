package service

import (
	"context"
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"

	"devconnect/internal/model"
)

// mockPostRepository holds posts by id and hands out copies, so the service's
// read-then-write cycle is exercised the same way it runs against the store.
type mockPostRepository struct {
	posts  map[int64]*model.Post
	nextID int64
}

func newMockPostRepository() *mockPostRepository {
	return &mockPostRepository{posts: make(map[int64]*model.Post)}
}

func (m *mockPostRepository) Create(ctx context.Context, post *model.Post) error {
	m.nextID++
	post.ID = m.nextID
	stored := *post
	m.posts[post.ID] = &stored
	return nil
}

func (m *mockPostRepository) GetByID(ctx context.Context, id int64) (*model.Post, error) {
	post, ok := m.posts[id]
	if !ok {
		return nil, model.ErrPostNotFound
	}
	copied := *post
	return &copied, nil
}

func (m *mockPostRepository) List(ctx context.Context) ([]model.Post, error) {
	out := make([]model.Post, 0, len(m.posts))
	for _, post := range m.posts {
		out = append(out, *post)
	}
	return out, nil
}

func (m *mockPostRepository) Update(ctx context.Context, post *model.Post) error {
	if _, ok := m.posts[post.ID]; !ok {
		return model.ErrPostNotFound
	}
	stored := *post
	m.posts[post.ID] = &stored
	return nil
}

func (m *mockPostRepository) Delete(ctx context.Context, id int64) error {
	if _, ok := m.posts[id]; !ok {
		return model.ErrPostNotFound
	}
	delete(m.posts, id)
	return nil
}

func (m *mockPostRepository) DeleteByUserID(ctx context.Context, tx *sqlx.Tx, userID int64) error {
	for id, post := range m.posts {
		if post.UserID == userID {
			delete(m.posts, id)
		}
	}
	return nil
}

func postTestUsers() *mockUserRepository {
	return &mockUserRepository{
		getByIDFn: func(ctx context.Context, id int64) (*model.User, error) {
			return &model.User{
				ID:     id,
				Name:   "Test User",
				Email:  "test@example.com",
				Avatar: "https://www.gravatar.com/avatar/x",
			}, nil
		},
	}
}

func TestPostService_Create(t *testing.T) {
	repo := newMockPostRepository()
	svc := NewPostService(repo, postTestUsers())

	post, err := svc.Create(context.Background(), 1, model.CreatePostRequest{Text: "hello world"})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if post.Name != "Test User" {
		t.Errorf("author name = %q, want snapshot from user record", post.Name)
	}
	if post.Likes == nil || post.Comments == nil {
		t.Error("likes and comments must start as empty lists, not nil")
	}

	_, err = svc.Create(context.Background(), 1, model.CreatePostRequest{Text: "  "})
	if !errors.Is(err, model.ErrTextRequired) {
		t.Errorf("error = %v, want %v", err, model.ErrTextRequired)
	}
}

func TestPostService_Delete_OwnershipEnforced(t *testing.T) {
	repo := newMockPostRepository()
	svc := NewPostService(repo, postTestUsers())

	post, err := svc.Create(context.Background(), 1, model.CreatePostRequest{Text: "mine"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.Delete(context.Background(), 2, post.ID); !errors.Is(err, model.ErrNotPostOwner) {
		t.Errorf("delete by non-owner: error = %v, want %v", err, model.ErrNotPostOwner)
	}
	if err := svc.Delete(context.Background(), 1, post.ID); err != nil {
		t.Errorf("delete by owner: %v", err)
	}
	if err := svc.Delete(context.Background(), 1, post.ID); !errors.Is(err, model.ErrPostNotFound) {
		t.Errorf("second delete: error = %v, want %v", err, model.ErrPostNotFound)
	}
}

func TestPostService_ToggleLike_SelfInverse(t *testing.T) {
	repo := newMockPostRepository()
	svc := NewPostService(repo, postTestUsers())

	post, err := svc.Create(context.Background(), 1, model.CreatePostRequest{Text: "like me"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	likes, err := svc.ToggleLike(context.Background(), 2, post.ID)
	if err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	if len(likes) != 1 || likes[0].UserID != 2 {
		t.Fatalf("likes = %v, want single like by user 2", likes)
	}

	likes, err = svc.ToggleLike(context.Background(), 2, post.ID)
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if len(likes) != 0 {
		t.Errorf("likes after second toggle = %v, want empty", likes)
	}
}

func TestPostService_ToggleLike_NewestFirst(t *testing.T) {
	repo := newMockPostRepository()
	svc := NewPostService(repo, postTestUsers())

	post, err := svc.Create(context.Background(), 1, model.CreatePostRequest{Text: "popular"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.ToggleLike(context.Background(), 2, post.ID); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	likes, err := svc.ToggleLike(context.Background(), 3, post.ID)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}

	if len(likes) != 2 || likes[0].UserID != 3 || likes[1].UserID != 2 {
		t.Errorf("likes = %v, want newest first [3 2]", likes)
	}
}

func TestPostService_AddComment(t *testing.T) {
	repo := newMockPostRepository()
	svc := NewPostService(repo, postTestUsers())

	post, err := svc.Create(context.Background(), 1, model.CreatePostRequest{Text: "discuss"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.AddComment(context.Background(), 2, post.ID, model.CreateCommentRequest{Text: "first"}); err != nil {
		t.Fatalf("add comment: %v", err)
	}
	comments, err := svc.AddComment(context.Background(), 3, post.ID, model.CreateCommentRequest{Text: "second"})
	if err != nil {
		t.Fatalf("add comment: %v", err)
	}

	if len(comments) != 2 {
		t.Fatalf("comment count = %d, want 2", len(comments))
	}
	if comments[0].Text != "second" || comments[1].Text != "first" {
		t.Errorf("order = [%s, %s], want newest first", comments[0].Text, comments[1].Text)
	}
	if comments[0].ID == "" || comments[0].ID == comments[1].ID {
		t.Error("comments must carry distinct generated ids")
	}

	_, err = svc.AddComment(context.Background(), 2, post.ID, model.CreateCommentRequest{Text: ""})
	if !errors.Is(err, model.ErrTextRequired) {
		t.Errorf("error = %v, want %v", err, model.ErrTextRequired)
	}
}

func TestPostService_RemoveComment_Permissions(t *testing.T) {
	repo := newMockPostRepository()
	svc := NewPostService(repo, postTestUsers())

	post, err := svc.Create(context.Background(), 1, model.CreatePostRequest{Text: "moderated"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	comments, err := svc.AddComment(context.Background(), 2, post.ID, model.CreateCommentRequest{Text: "by user 2"})
	if err != nil {
		t.Fatalf("add comment: %v", err)
	}
	commentID := comments[0].ID

	// A third party may not remove it.
	_, err = svc.RemoveComment(context.Background(), 3, post.ID, commentID)
	if !errors.Is(err, model.ErrNotCommentOwner) {
		t.Errorf("third party: error = %v, want %v", err, model.ErrNotCommentOwner)
	}

	// The comment author may.
	remaining, err := svc.RemoveComment(context.Background(), 2, post.ID, commentID)
	if err != nil {
		t.Fatalf("author remove: %v", err)
	}
	if len(remaining) != 0 {
		t.Errorf("remaining = %v, want empty", remaining)
	}

	// The post owner may remove someone else's comment.
	comments, err = svc.AddComment(context.Background(), 2, post.ID, model.CreateCommentRequest{Text: "again"})
	if err != nil {
		t.Fatalf("add comment: %v", err)
	}
	if _, err := svc.RemoveComment(context.Background(), 1, post.ID, comments[0].ID); err != nil {
		t.Errorf("post owner remove: %v", err)
	}

	// A missing comment id is an error, not a no-op.
	_, err = svc.RemoveComment(context.Background(), 1, post.ID, "no-such-comment")
	if !errors.Is(err, model.ErrCommentNotFound) {
		t.Errorf("missing id: error = %v, want %v", err, model.ErrCommentNotFound)
	}
}
