package article

import (
	"net/http"

	"newspress/internal/handler/http/respond"
	artUC "newspress/internal/usecase/article"
	commentUC "newspress/internal/usecase/comment"
)

type CommentsHandler struct {
	Svc      *artUC.Service
	Comments *commentUC.Service
}

// ServeHTTP returns the comment thread of one article, replies nested under
// their parents. The total counts replies too.
func (h CommentsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a, ok := loadArticle(w, r, h.Svc)
	if !ok {
		return
	}
	thread, err := h.Comments.Thread(r.Context(), a.ID)
	if err != nil {
		fail(w, err)
		return
	}
	out := ThreadDTO{Total: thread.Total, Comments: make([]CommentDTO, 0, len(thread.Comments))}
	for i := range thread.Comments {
		out.Comments = append(out.Comments, toCommentDTO(&thread.Comments[i]))
	}
	respond.JSON(w, http.StatusOK, out)
}
