package entity

import (
	"fmt"
	"net"
	"net/mail"
	"net/url"
	"strings"
	"unicode/utf8"
)

// maxURLLength defines the maximum allowed length for URLs to prevent DoS attacks.
const maxURLLength = 2048

// Form length limits enforced before anything is sent to the API.
const (
	MinArticleTitle   = 5
	MinArticleContent = 20
	MinCategoryName   = 3
	MinUserName       = 3
	MinPassword       = 6
)

// ValidateURL validates the format and safety of a URL.
// It checks that the URL is well-formed, uses HTTP/HTTPS scheme, and has a valid host.
// Literal private addresses are rejected; host names are not resolved.
// Returns a ValidationError if the URL is invalid or empty.
func ValidateURL(field, rawURL string) error {
	if rawURL == "" {
		return &ValidationError{Field: field, Message: "URL is required"}
	}

	if len(rawURL) > maxURLLength {
		return &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("url must not exceed %d characters", maxURLLength),
		}
	}

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return &ValidationError{Field: field, Message: "URL is malformed"}
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return &ValidationError{Field: field, Message: "URL must use http or https scheme"}
	}

	if parsedURL.Host == "" {
		return &ValidationError{Field: field, Message: "URL must have a valid host"}
	}

	if ip := net.ParseIP(parsedURL.Hostname()); ip != nil && isPrivateIP(ip) {
		return &ValidationError{Field: field, Message: "url cannot point to private network"}
	}

	return nil
}

// isPrivateIP checks if an IP address is loopback, link-local or in a private range.
func isPrivateIP(ip net.IP) bool {
	return ip.IsLoopback() || ip.IsLinkLocalUnicast() || ip.IsPrivate() || ip.IsUnspecified()
}

// ArticleInput is the editable part of an article as submitted by an administrator.
type ArticleInput struct {
	Title         string
	Content       string
	Summary       string
	FeaturedImage string
	ImageCaption  string
	VideoURL      string
	CategoryID    string
	Status        string
	IsBreaking    bool
	IsFeatured    bool
}

// Validate reports every field failure of the article form at once.
func (in *ArticleInput) Validate() error {
	var errs ValidationErrors
	if runeLen(in.Title) < MinArticleTitle {
		errs = append(errs, &ValidationError{Field: "title", Message: "Title too short"})
	}
	if runeLen(in.Content) < MinArticleContent {
		errs = append(errs, &ValidationError{Field: "content", Message: "Content too short"})
	}
	if strings.TrimSpace(in.CategoryID) == "" {
		errs = append(errs, &ValidationError{Field: "categoryId", Message: "Category is required"})
	}
	if strings.TrimSpace(in.FeaturedImage) == "" {
		errs = append(errs, &ValidationError{Field: "featuredImage", Message: "Image is required"})
	} else if err := ValidateURL("featuredImage", in.FeaturedImage); err != nil {
		errs = append(errs, err.(*ValidationError))
	}
	if in.VideoURL != "" {
		if err := ValidateURL("videoUrl", in.VideoURL); err != nil {
			errs = append(errs, err.(*ValidationError))
		}
	}
	switch in.Status {
	case "", "PUBLISHED", "DRAFT":
	default:
		errs = append(errs, &ValidationError{Field: "status", Message: "Status must be PUBLISHED or DRAFT"})
	}
	return errs.ErrOrNil()
}

// CategoryInput is the category create/rename form.
type CategoryInput struct {
	Name string
}

// Validate checks the category name.
func (in *CategoryInput) Validate() error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return ValidationErrors{{Field: "name", Message: "Name is required"}}
	}
	if runeLen(name) < MinCategoryName {
		return ValidationErrors{{Field: "name", Message: fmt.Sprintf("Name must be at least %d characters", MinCategoryName)}}
	}
	return nil
}

// Slug returns the slug a renamed category is listed under.
func (in *CategoryInput) Slug() string {
	return Slugify(in.Name)
}

// SignUpInput is the registration form.
type SignUpInput struct {
	Name     string
	Email    string
	Password string
	Image    string
}

// Validate reports every failing registration field.
func (in *SignUpInput) Validate() error {
	var errs ValidationErrors
	if runeLen(strings.TrimSpace(in.Name)) < MinUserName {
		errs = append(errs, &ValidationError{Field: "name", Message: fmt.Sprintf("Name must be at least %d characters", MinUserName)})
	}
	if !validEmail(in.Email) {
		errs = append(errs, &ValidationError{Field: "email", Message: "Invalid email address"})
	}
	if runeLen(in.Password) < MinPassword {
		errs = append(errs, &ValidationError{Field: "password", Message: fmt.Sprintf("Password must be at least %d characters", MinPassword)})
	}
	return errs.ErrOrNil()
}

// LoginInput is the sign-in form.
type LoginInput struct {
	Email    string
	Password string
}

// Validate checks that both credentials are present.
func (in *LoginInput) Validate() error {
	var errs ValidationErrors
	if !validEmail(in.Email) {
		errs = append(errs, &ValidationError{Field: "email", Message: "Invalid email address"})
	}
	if in.Password == "" {
		errs = append(errs, &ValidationError{Field: "password", Message: "Password is required"})
	}
	return errs.ErrOrNil()
}

// CommentInput is a new comment or reply.
type CommentInput struct {
	Text     string
	PostID   string
	ParentID string
}

// Validate checks that the comment has text and a target article.
func (in *CommentInput) Validate() error {
	var errs ValidationErrors
	if strings.TrimSpace(in.Text) == "" {
		errs = append(errs, &ValidationError{Field: "text", Message: "Comment cannot be empty"})
	}
	if in.PostID == "" {
		errs = append(errs, &ValidationError{Field: "postId", Message: "Article is required"})
	}
	return errs.ErrOrNil()
}

func validEmail(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
