package comment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"newspress/internal/domain/entity"
	"newspress/internal/repository"
)

// Service provides comment thread use cases for the article page.
// Every successful write is followed by a fresh fetch of the thread;
// nothing is patched locally.
type Service struct {
	Repo repository.CommentRepository
}

// Thread fetches and assembles the comments of postID.
func (s *Service) Thread(ctx context.Context, postID string) (Thread, error) {
	comments, err := s.Repo.ListByPost(ctx, postID)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return Thread{Comments: []entity.Comment{}}, nil
		}
		return Thread{}, fmt.Errorf("list comments: %w", err)
	}
	return Assemble(comments), nil
}

// Create posts a new comment or reply as viewer and returns the refetched thread.
// A reply's parent is looked up in the current thread first: an unknown
// parent is ErrCommentNotFound, and a reply named as parent is replaced by
// its top-level comment so threads stay one level deep.
func (s *Service) Create(ctx context.Context, viewer *entity.User, in entity.CommentInput) (Thread, error) {
	if viewer == nil {
		return Thread{}, ErrAuthRequired
	}
	in.Text = strings.TrimSpace(in.Text)
	in.ParentID = strings.TrimSpace(in.ParentID)
	if err := in.Validate(); err != nil {
		return Thread{}, err
	}
	if in.ParentID != "" {
		thread, err := s.Thread(ctx, in.PostID)
		if err != nil {
			return Thread{}, err
		}
		parent, ok := thread.Find(in.ParentID)
		if !ok {
			return Thread{}, ErrCommentNotFound
		}
		if parent.IsReply() {
			in.ParentID = *parent.ParentID
		}
	}
	if err := s.Repo.Create(ctx, in); err != nil {
		return Thread{}, fmt.Errorf("create comment: %w", err)
	}
	return s.Thread(ctx, in.PostID)
}

// Update replaces the text of commentID on postID's thread.
func (s *Service) Update(ctx context.Context, viewer *entity.User, postID, commentID, text string) (Thread, error) {
	if _, err := s.authorize(ctx, viewer, postID, commentID); err != nil {
		return Thread{}, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return Thread{}, entity.ValidationErrors{{Field: "text", Message: "Comment cannot be empty"}}
	}
	if err := s.Repo.Update(ctx, commentID, text); err != nil {
		return Thread{}, fmt.Errorf("update comment: %w", err)
	}
	return s.Thread(ctx, postID)
}

// Delete removes commentID from postID's thread.
func (s *Service) Delete(ctx context.Context, viewer *entity.User, postID, commentID string) (Thread, error) {
	if _, err := s.authorize(ctx, viewer, postID, commentID); err != nil {
		return Thread{}, err
	}
	if err := s.Repo.Delete(ctx, commentID); err != nil {
		return Thread{}, fmt.Errorf("delete comment: %w", err)
	}
	return s.Thread(ctx, postID)
}

// authorize checks the viewer against the current server copy of the comment.
func (s *Service) authorize(ctx context.Context, viewer *entity.User, postID, commentID string) (entity.Comment, error) {
	if viewer == nil {
		return entity.Comment{}, ErrAuthRequired
	}
	thread, err := s.Thread(ctx, postID)
	if err != nil {
		return entity.Comment{}, err
	}
	target, ok := thread.Find(commentID)
	if !ok {
		return entity.Comment{}, ErrCommentNotFound
	}
	if !target.EditableBy(viewer) {
		return entity.Comment{}, ErrForbidden
	}
	return target, nil
}
