package entity

import "time"

// Comment is a remark left on an article. A comment with a ParentID is a reply.
type Comment struct {
	ID        string
	Text      string
	PostID    string
	UserID    string
	ParentID  *string
	CreatedAt time.Time
	UpdatedAt time.Time
	User      CommentUser
	Post      *PostRef
	Replies   []Comment
}

// CommentUser is the denormalized author summary carried on a comment.
type CommentUser struct {
	ID    string
	Name  string
	Image string
	Role  Role
}

// PostRef is the article summary the admin comment list joins in.
type PostRef struct {
	ID    string
	Title string
	Slug  string
}

// IsReply reports whether the comment answers another comment.
func (c *Comment) IsReply() bool {
	return c.ParentID != nil && *c.ParentID != ""
}

// PostTitle returns the title of the owning article when the API joined it in.
func (c *Comment) PostTitle() string {
	if c.Post == nil {
		return ""
	}
	return c.Post.Title
}

// EditableBy reports whether the viewer may edit or delete the comment:
// its author or any administrator.
func (c *Comment) EditableBy(viewer *User) bool {
	if viewer == nil {
		return false
	}
	if viewer.Role == RoleAdmin {
		return true
	}
	owner := c.UserID
	if owner == "" {
		owner = c.User.ID
	}
	return owner != "" && owner == viewer.ID
}
