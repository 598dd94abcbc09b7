package account

import (
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"

	"newspress/internal/domain/entity"
	"newspress/internal/handler/http/auth"
	"newspress/internal/handler/http/view"
	"newspress/internal/infra/api"
	"newspress/internal/infra/flash"
	"newspress/internal/observability/logging"
)

// MaxImageBytes bounds the profile image accepted with the registration form.
const MaxImageBytes = 5 << 20

type registerForm struct {
	Name           string
	Email          string
	Message        string
	UploadsEnabled bool
	Errors         entity.ValidationErrors
}

// RegisterPage renders the registration form.
type RegisterPage struct {
	View   *view.Renderer
	Images ImageUploader
}

func (h RegisterPage) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if viewer := auth.ViewerFrom(r.Context()); viewer != nil {
		http.Redirect(w, r, auth.DashboardFor(viewer.Role), http.StatusSeeOther)
		return
	}
	w.Header().Set("Cache-Control", "no-store")
	h.View.Render(w, r, http.StatusOK, "register", view.Page{
		Title: "Register",
		Data:  &registerForm{UploadsEnabled: uploadsEnabled(h.Images)},
	})
}

// RegisterHandler creates an account, uploading the optional profile image
// first. The form is validated before anything leaves the portal.
type RegisterHandler struct {
	Svc    Authenticator
	Images ImageUploader
	View   *view.Renderer
	Flash  *flash.Store
}

func (h RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxImageBytes+1<<20)
	if err := r.ParseMultipartForm(MaxImageBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		auth.RecordAuthAttempt("sign_up", "invalid")
		h.render(w, r, http.StatusRequestEntityTooLarge, &registerForm{
			UploadsEnabled: uploadsEnabled(h.Images),
			Errors:         entity.ValidationErrors{{Field: "image", Message: "Image is too large"}},
		})
		return
	}

	in := entity.SignUpInput{
		Name:     strings.TrimSpace(r.FormValue("name")),
		Email:    strings.TrimSpace(r.FormValue("email")),
		Password: r.FormValue("password"),
	}
	form := &registerForm{Name: in.Name, Email: in.Email, UploadsEnabled: uploadsEnabled(h.Images)}
	logger := logging.WithRequestID(r.Context(), slog.Default())

	if err := in.Validate(); err != nil {
		auth.RecordAuthAttempt("sign_up", "invalid")
		form.Errors = validationErrors(err)
		h.render(w, r, http.StatusUnprocessableEntity, form)
		return
	}

	if file, header, err := r.FormFile("image"); err == nil {
		defer func() { _ = file.Close() }()
		url, err := h.upload(r, file, header)
		if err != nil {
			auth.RecordAuthAttempt("sign_up", "failure")
			logger.Warn("profile image upload failed", slog.Any("error", err))
			form.Errors = entity.ValidationErrors{{Field: "image", Message: "Image upload failed, please try again"}}
			h.render(w, r, http.StatusUnprocessableEntity, form)
			return
		}
		in.Image = url
	}

	res, err := h.Svc.SignUp(r.Context(), in)
	if err != nil {
		auth.RecordAuthAttempt("sign_up", "failure")
		logger.Info("sign up failed", slog.Any("error", err))
		form.Message = api.UserMessage(err)
		code := http.StatusBadGateway
		if errors.Is(err, entity.ErrRejected) {
			code = http.StatusUnprocessableEntity
		}
		h.render(w, r, code, form)
		return
	}

	auth.RecordAuthAttempt("sign_up", "success")
	relayCookies(w, res)
	h.Flash.Success(w, "Welcome to Newspress, "+in.Name)
	http.Redirect(w, r, auth.AfterLogin(r.URL.Query(), roleOf(res)), http.StatusSeeOther)
}

func (h RegisterHandler) upload(r *http.Request, file multipart.File, header *multipart.FileHeader) (string, error) {
	if !uploadsEnabled(h.Images) {
		return "", errors.New("image uploads are disabled")
	}
	return h.Images.Upload(r.Context(), header.Filename, file)
}

func (h RegisterHandler) render(w http.ResponseWriter, r *http.Request, code int, form *registerForm) {
	w.Header().Set("Cache-Control", "no-store")
	h.View.Render(w, r, code, "register", view.Page{Title: "Register", Data: form})
}

func uploadsEnabled(images ImageUploader) bool {
	return images != nil && images.Enabled()
}
