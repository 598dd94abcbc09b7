package view

import (
	"html/template"
	"net/url"
	"strconv"
	"time"

	"newspress/internal/domain/entity"
	"newspress/internal/infra/flash"
	"newspress/internal/usecase/comment"
	"newspress/internal/utils/text"
)

var funcs = template.FuncMap{
	"date":        formatDate,
	"datetime":    formatDateTime,
	"isoDate":     func(t time.Time) string { return t.Format(time.DateOnly) },
	"excerpt":     func(a entity.Article) string { return text.Excerpt(a.Summary, a.Content) },
	"paragraphs":  text.Paragraphs,
	"truncate":    text.Truncate,
	"pageURL":     PageURL,
	"withParam":   WithParam,
	"editable":    func(c entity.Comment, u *entity.User) bool { return c.EditableBy(u) },
	"isAdmin":     func(u *entity.User) bool { return u != nil && u.Role == entity.RoleAdmin },
	"roles":       func() []entity.Role { return []entity.Role{entity.RoleUser, entity.RoleAdmin} },
	"pager":       NewPager,
	"add":         func(a, b int) int { return a + b },
	"sub":         func(a, b int) int { return a - b },
	"commentView": NewCommentView,
	"draftOf":     DraftOf,
}

// CommentView is one rendered comment with the viewer's permissions and
// the composer state resolved.
type CommentView struct {
	Comment  *entity.Comment
	Slug     string
	CanEdit  bool
	Replying bool
	Editing  bool

	// Initial contents of the open forms.
	ReplyText string
	EditText  string
}

// NewCommentView resolves what viewer may do with c on the article slug.
// Replies can never be replied to; the composer only opens forms the
// viewer is allowed to use. draft is text from a rejected submit: it fills
// the edit form when one is open, otherwise the reply form.
func NewCommentView(c entity.Comment, viewer *entity.User, composer comment.Composer, slug, draft string) CommentView {
	canEdit := c.EditableBy(viewer)
	cv := CommentView{
		Comment:  &c,
		Slug:     slug,
		CanEdit:  canEdit,
		Replying: viewer != nil && !c.IsReply() && composer.IsReplying(c.ID),
		Editing:  canEdit && composer.IsEditing(c.ID),
	}
	if cv.Editing {
		cv.EditText = c.Text
		if draft != "" && composer.Editing != "" {
			cv.EditText = draft
		}
	}
	if cv.Replying && composer.Editing == "" {
		cv.ReplyText = draft
	}
	return cv
}

// DraftOf returns the draft carried by a flash notice, if any.
func DraftOf(n *flash.Notice) string {
	if n == nil {
		return ""
	}
	return n.Draft
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("Jan 2, 2006")
}

func formatDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("Jan 2, 2006 15:04")
}

// PageURL returns path with q, its key parameter set to n. Page 1 drops the
// parameter so the canonical URL has no query noise.
func PageURL(path string, q url.Values, key string, n int) string {
	if n <= 1 {
		return WithParam(path, q, key, "")
	}
	return WithParam(path, q, key, strconv.Itoa(n))
}

// WithParam returns path with q, key set to value or removed when value is empty.
// q is not modified.
func WithParam(path string, q url.Values, key, value string) string {
	out := url.Values{}
	for k, vs := range q {
		out[k] = append([]string(nil), vs...)
	}
	if value == "" {
		out.Del(key)
	} else {
		out.Set(key, value)
	}
	if enc := out.Encode(); enc != "" {
		return path + "?" + enc
	}
	return path
}
