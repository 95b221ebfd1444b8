package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"devconnect/internal/httputil"
	"devconnect/internal/model"
	"devconnect/internal/service"
	"devconnect/internal/transport/http/middleware"
)

type PostHandler struct {
	postService *service.PostService
}

func NewPostHandler(postService *service.PostService) *PostHandler {
	return &PostHandler{
		postService: postService,
	}
}

func parsePostID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// Create handles POST /api/posts
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	subjectID, ok := middleware.GetSubjectIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	var req model.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteValidationFailed(w, "Invalid request body")
		return
	}

	post, err := h.postService.Create(r.Context(), subjectID, req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrTextRequired):
			httputil.WriteValidationFailed(w, "Text is required")
		default:
			log.Printf("[ERROR] Create post handler: user=%d err=%v", subjectID, err)
			httputil.WriteInternalError(w, "Failed to create post")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, post)
}

// List handles GET /api/posts
// Returns all posts, newest first.
func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	posts, err := h.postService.List(r.Context())
	if err != nil {
		log.Printf("[ERROR] List posts handler: err=%v", err)
		httputil.WriteInternalError(w, "Failed to list posts")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, posts)
}

// GetByID handles GET /api/posts/{id}
func (h *PostHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	postID, err := parsePostID(r)
	if err != nil {
		httputil.WriteNotFound(w, "Post not found")
		return
	}

	post, err := h.postService.GetByID(r.Context(), postID)
	if err != nil {
		if errors.Is(err, model.ErrPostNotFound) {
			httputil.WriteNotFound(w, "Post not found")
			return
		}
		log.Printf("[ERROR] Get post handler: post=%d err=%v", postID, err)
		httputil.WriteInternalError(w, "Failed to get post")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, post)
}

// Delete handles DELETE /api/posts/{id}
// Only the post's owner may delete it.
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	subjectID, ok := middleware.GetSubjectIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	postID, err := parsePostID(r)
	if err != nil {
		httputil.WriteNotFound(w, "Post not found")
		return
	}

	if err := h.postService.Delete(r.Context(), subjectID, postID); err != nil {
		switch {
		case errors.Is(err, model.ErrPostNotFound):
			httputil.WriteNotFound(w, "Post not found")
		case errors.Is(err, model.ErrNotPostOwner):
			httputil.WriteForbidden(w, "You can only delete your own posts")
		default:
			log.Printf("[ERROR] Delete post handler: user=%d post=%d err=%v", subjectID, postID, err)
			httputil.WriteInternalError(w, "Failed to delete post")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Post removed",
	})
}

// ToggleLike handles PUT /api/posts/{id}/like
// A single endpoint serves both like and unlike; it returns the updated
// like list.
func (h *PostHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	subjectID, ok := middleware.GetSubjectIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	postID, err := parsePostID(r)
	if err != nil {
		httputil.WriteNotFound(w, "Post not found")
		return
	}

	likes, err := h.postService.ToggleLike(r.Context(), subjectID, postID)
	if err != nil {
		if errors.Is(err, model.ErrPostNotFound) {
			httputil.WriteNotFound(w, "Post not found")
			return
		}
		log.Printf("[ERROR] Toggle like handler: user=%d post=%d err=%v", subjectID, postID, err)
		httputil.WriteInternalError(w, "Failed to toggle like")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, likes)
}

// AddComment handles POST /api/posts/{id}/comments
// Returns the updated comment list, newest first.
func (h *PostHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	subjectID, ok := middleware.GetSubjectIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	postID, err := parsePostID(r)
	if err != nil {
		httputil.WriteNotFound(w, "Post not found")
		return
	}

	var req model.CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteValidationFailed(w, "Invalid request body")
		return
	}

	comments, err := h.postService.AddComment(r.Context(), subjectID, postID, req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrTextRequired):
			httputil.WriteValidationFailed(w, "Text is required")
		case errors.Is(err, model.ErrPostNotFound):
			httputil.WriteNotFound(w, "Post not found")
		default:
			log.Printf("[ERROR] Add comment handler: user=%d post=%d err=%v", subjectID, postID, err)
			httputil.WriteInternalError(w, "Failed to add comment")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, comments)
}

// RemoveComment handles DELETE /api/posts/{id}/comments/{comment_id}
// Permitted for the comment author or the post owner.
func (h *PostHandler) RemoveComment(w http.ResponseWriter, r *http.Request) {
	subjectID, ok := middleware.GetSubjectIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	postID, err := parsePostID(r)
	if err != nil {
		httputil.WriteNotFound(w, "Post not found")
		return
	}
	commentID := chi.URLParam(r, "comment_id")

	comments, err := h.postService.RemoveComment(r.Context(), subjectID, postID, commentID)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrPostNotFound):
			httputil.WriteNotFound(w, "Post not found")
		case errors.Is(err, model.ErrCommentNotFound):
			httputil.WriteNotFound(w, "Comment not found")
		case errors.Is(err, model.ErrNotCommentOwner):
			httputil.WriteForbidden(w, "Only the comment author or post owner may delete a comment")
		default:
			log.Printf("[ERROR] Remove comment handler: user=%d post=%d comment=%s err=%v", subjectID, postID, commentID, err)
			httputil.WriteInternalError(w, "Failed to remove comment")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, comments)
}
