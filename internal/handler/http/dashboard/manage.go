package dashboard

import (
	"errors"
	"net/http"

	"newspress/internal/domain/entity"
	"newspress/internal/handler/http/auth"
	"newspress/internal/handler/http/view"
	"newspress/internal/observability/metrics"
	"newspress/internal/usecase/listing"
)

const (
	categoriesPath = "/admin-dashboard/categories"
	usersPath      = "/admin-dashboard/users"
	commentsPath   = "/admin-dashboard/comments"
)

/* ───────── categories ───────── */

func (h handlers) categoryList(w http.ResponseWriter, r *http.Request) {
	h.renderCategories(w, r, http.StatusOK, "", nil)
}

func (h handlers) renderCategories(w http.ResponseWriter, r *http.Request, code int, name string, errs entity.ValidationErrors) {
	q := r.URL.Query()
	res, err := h.Svc.CategoryList(r.Context(), listing.ParseCriteria(q), pageParam(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.View.Render(w, r, code, "admin/categories", view.Page{
		Title: "Categories",
		Data:  &listView[entity.Category]{Result: res, Query: q, Name: name, Errors: errs},
	})
}

// categoryCreate re-renders the list with the typed name when it is
// rejected by validation; other outcomes redirect.
func (h handlers) categoryCreate(w http.ResponseWriter, r *http.Request) {
	in := entity.CategoryInput{Name: r.PostFormValue("name")}
	err := h.Svc.CreateCategory(r.Context(), in)

	var verrs entity.ValidationErrors
	if errors.As(err, &verrs) {
		metrics.RecordFormSubmission("category_create", metrics.FormInvalid)
		h.renderCategories(w, r, http.StatusUnprocessableEntity, in.Name, verrs)
		return
	}
	h.done(w, r, "category_create", categoriesPath, err, "Category created")
}

func (h handlers) categoryRename(w http.ResponseWriter, r *http.Request) {
	err := h.Svc.RenameCategory(r.Context(), pathID(r), entity.CategoryInput{Name: r.PostFormValue("name")})
	h.done(w, r, "category_rename", backTo(r, categoriesPath), err, "Category renamed")
}

func (h handlers) categoryDelete(w http.ResponseWriter, r *http.Request) {
	err := h.Svc.DeleteCategory(r.Context(), pathID(r))
	h.done(w, r, "category_delete", backTo(r, categoriesPath), err, "Category deleted")
}

/* ───────── users ───────── */

func (h handlers) userList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	res, err := h.Svc.UserList(r.Context(), listing.ParseCriteria(q), pageParam(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.View.Render(w, r, http.StatusOK, "admin/users", view.Page{
		Title: "User Management",
		Data:  &listView[entity.User]{Result: res, Query: q},
	})
}

func (h handlers) userRole(w http.ResponseWriter, r *http.Request) {
	role := entity.ParseRole(r.PostFormValue("role"))
	err := h.Svc.ChangeRole(r.Context(), auth.ViewerFrom(r.Context()), pathID(r), role)
	h.done(w, r, "user_role", backTo(r, usersPath), err, "Role updated")
}

/* ───────── comments ───────── */

func (h handlers) commentList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	res, err := h.Svc.CommentList(r.Context(), listing.ParseCriteria(q), pageParam(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.View.Render(w, r, http.StatusOK, "admin/comments", view.Page{
		Title: "Comments",
		Data:  &listView[entity.Comment]{Result: res, Query: q},
	})
}

func (h handlers) commentDelete(w http.ResponseWriter, r *http.Request) {
	err := h.Svc.DeleteComment(r.Context(), pathID(r))
	h.done(w, r, "comment_delete", backTo(r, commentsPath), err, "Comment deleted")
}
