// Package comment assembles article comment threads and drives comment
// authoring: replying, editing and deleting, each followed by a refetch of
// the whole thread.
package comment

import "errors"

// Sentinel errors for comment use case operations.
var (
	// ErrCommentNotFound indicates the comment is not part of the article's thread.
	ErrCommentNotFound = errors.New("comment not found")

	// ErrAuthRequired indicates an anonymous visitor tried to write a comment.
	// Callers redirect to the login page instead of calling the API.
	ErrAuthRequired = errors.New("sign in to comment")

	// ErrReplyToReply indicates an attempt to answer a reply. Threads are one
	// level deep.
	ErrReplyToReply = errors.New("replies cannot be replied to")

	// ErrForbidden indicates the viewer neither owns the comment nor is an administrator.
	ErrForbidden = errors.New("only the author or an administrator may change this comment")
)
