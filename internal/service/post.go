package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"devconnect/internal/model"
	"devconnect/internal/repository"
)

// PostService owns post interactions: like toggling and the ordered comment
// list, both mutated by read-then-write on the post's nested collections.
type PostService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
}

func NewPostService(postRepo repository.PostRepository, userRepo repository.UserRepository) *PostService {
	return &PostService{
		postRepo: postRepo,
		userRepo: userRepo,
	}
}

// Create creates a new post, denormalizing the author's name and avatar from
// the current user record. The snapshot is not re-synced later.
func (s *PostService) Create(ctx context.Context, subjectID int64, req model.CreatePostRequest) (*model.Post, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, model.ErrTextRequired
	}

	author, err := s.userRepo.GetByID(ctx, subjectID)
	if err != nil {
		return nil, fmt.Errorf("load author: %w", err)
	}

	post := &model.Post{
		UserID:   subjectID,
		Text:     req.Text,
		Name:     author.Name,
		Avatar:   author.Avatar,
		Likes:    model.LikeList{},
		Comments: model.CommentList{},
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	return post, nil
}

// List returns all posts, newest first.
func (s *PostService) List(ctx context.Context) ([]model.Post, error) {
	return s.postRepo.List(ctx)
}

// GetByID retrieves a single post.
func (s *PostService) GetByID(ctx context.Context, postID int64) (*model.Post, error) {
	return s.postRepo.GetByID(ctx, postID)
}

// Delete removes a post. Only the owner may delete it.
func (s *PostService) Delete(ctx context.Context, subjectID, postID int64) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.UserID != subjectID {
		return model.ErrNotPostOwner
	}

	return s.postRepo.Delete(ctx, postID)
}

// ToggleLike adds the subject's like, or removes it if already present, and
// returns the updated like list. The operation is its own inverse.
//
// Membership is checked in application code against the stored list, so two
// concurrent toggles by the same subject can race; accepted limitation.
func (s *PostService) ToggleLike(ctx context.Context, subjectID, postID int64) (model.LikeList, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	liked := false
	kept := make(model.LikeList, 0, len(post.Likes))
	for _, like := range post.Likes {
		if like.UserID == subjectID {
			liked = true
			continue
		}
		kept = append(kept, like)
	}

	if liked {
		post.Likes = kept
	} else {
		post.Likes = append(model.LikeList{{UserID: subjectID}}, post.Likes...)
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, fmt.Errorf("persist like toggle: %w", err)
	}

	log.Printf("[PostService] User %d toggled like on post %d (liked=%v)", subjectID, postID, !liked)
	return post.Likes, nil
}

// AddComment appends a comment at the head of the post's comment list with a
// fresh id, timestamp and author snapshot.
func (s *PostService) AddComment(ctx context.Context, subjectID, postID int64, req model.CreateCommentRequest) (model.CommentList, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, model.ErrTextRequired
	}

	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	author, err := s.userRepo.GetByID(ctx, subjectID)
	if err != nil {
		return nil, fmt.Errorf("load author: %w", err)
	}

	comment := model.Comment{
		ID:        uuid.NewString(),
		UserID:    subjectID,
		Text:      req.Text,
		Name:      author.Name,
		Avatar:    author.Avatar,
		CreatedAt: time.Now().UTC(),
	}
	post.Comments = append(model.CommentList{comment}, post.Comments...)

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, fmt.Errorf("persist comment: %w", err)
	}

	return post.Comments, nil
}

// RemoveComment deletes a comment. Permitted for the comment author or the
// post owner; anyone else is rejected.
func (s *PostService) RemoveComment(ctx context.Context, subjectID, postID int64, commentID string) (model.CommentList, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i, comment := range post.Comments {
		if comment.ID == commentID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, model.ErrCommentNotFound
	}

	if post.Comments[idx].UserID != subjectID && post.UserID != subjectID {
		return nil, model.ErrNotCommentOwner
	}

	post.Comments = append(post.Comments[:idx:idx], post.Comments[idx+1:]...)

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, fmt.Errorf("persist comment removal: %w", err)
	}

	return post.Comments, nil
}
