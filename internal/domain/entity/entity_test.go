package entity

import (
	"errors"
	"testing"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hello World", "hello-world"},
		{"  Leading and trailing  ", "leading-and-trailing"},
		{"Breaking: Cup Final!!", "breaking-cup-final"},
		{"multiple   spaces -- and---hyphens", "multiple-spaces-and-hyphens"},
		{"-edge-", "edge"},
		{"under_score", "under-score"},
		{"", ""},
		{"!!!", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Slugify(tt.in); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestArticle_CanonicalSlug(t *testing.T) {
	a := Article{Title: "Local Elections Tonight"}
	if got := a.CanonicalSlug(); got != "local-elections-tonight" {
		t.Errorf("CanonicalSlug() = %q", got)
	}
	a.Slug = "given-slug"
	if got := a.CanonicalSlug(); got != "given-slug" {
		t.Errorf("CanonicalSlug() = %q, want explicit slug", got)
	}
}

func TestArticle_CategorySlug(t *testing.T) {
	tests := []struct {
		name string
		cat  *CategoryRef
		want string
	}{
		{"uncategorized", nil, ""},
		{"explicit slug", &CategoryRef{Name: "Sports", Slug: "sport"}, "sport"},
		{"derived from name", &CategoryRef{Name: "World News"}, "world-news"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Article{Category: tt.cat}
			if got := a.CategorySlug(); got != tt.want {
				t.Errorf("CategorySlug() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseRole(t *testing.T) {
	tests := []struct {
		in   string
		want Role
	}{
		{"ADMIN", RoleAdmin},
		{"admin", RoleAdmin},
		{"USER", RoleUser},
		{" user ", RoleUser},
		{"", RoleNone},
		{"SUPERADMIN", RoleNone},
	}
	for _, tt := range tests {
		if got := ParseRole(tt.in); got != tt.want {
			t.Errorf("ParseRole(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if RoleNone.IsValid() || !RoleUser.IsValid() || !RoleAdmin.IsValid() {
		t.Error("IsValid() mismatch")
	}
	if RoleOf(nil) != RoleNone {
		t.Error("RoleOf(nil) should be RoleNone")
	}
}

func TestComment_EditableBy(t *testing.T) {
	c := Comment{ID: "c1", UserID: "u1"}
	tests := []struct {
		name   string
		viewer *User
		want   bool
	}{
		{"anonymous", nil, false},
		{"owner", &User{ID: "u1", Role: RoleUser}, true},
		{"other member", &User{ID: "u2", Role: RoleUser}, false},
		{"admin", &User{ID: "u9", Role: RoleAdmin}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.EditableBy(tt.viewer); got != tt.want {
				t.Errorf("EditableBy() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestComment_IsReply(t *testing.T) {
	parent := "c1"
	empty := ""
	if (&Comment{}).IsReply() {
		t.Error("nil parent should not be a reply")
	}
	if (&Comment{ParentID: &empty}).IsReply() {
		t.Error("empty parent should not be a reply")
	}
	if !(&Comment{ParentID: &parent}).IsReply() {
		t.Error("comment with parent should be a reply")
	}
}

func TestYouTube(t *testing.T) {
	tests := []struct {
		url       string
		wantEmbed string
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "https://www.youtube.com/embed/dQw4w9WgXcQ"},
		{"https://youtu.be/dQw4w9WgXcQ", "https://www.youtube.com/embed/dQw4w9WgXcQ"},
		{"https://www.youtube.com/watch?feature=share&v=dQw4w9WgXcQ", "https://www.youtube.com/embed/dQw4w9WgXcQ"},
		{"https://www.youtube.com/shorts/dQw4w9WgXcQ", "https://www.youtube.com/embed/dQw4w9WgXcQ"},
		{"https://vimeo.com/12345", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			if got := YouTubeEmbedURL(tt.url); got != tt.wantEmbed {
				t.Errorf("YouTubeEmbedURL() = %q, want %q", got, tt.wantEmbed)
			}
		})
	}
	if got := YouTubeThumbnailURL("https://youtu.be/dQw4w9WgXcQ"); got != "https://img.youtube.com/vi/dQw4w9WgXcQ/hqdefault.jpg" {
		t.Errorf("YouTubeThumbnailURL() = %q", got)
	}
}

func TestValidationErrors(t *testing.T) {
	var empty ValidationErrors
	if empty.ErrOrNil() != nil {
		t.Error("empty ErrOrNil() should be nil")
	}
	errs := ValidationErrors{{Field: "a", Message: "bad"}, {Field: "b", Message: "worse"}}
	if !errors.Is(errs, ErrValidationFailed) {
		t.Error("errors.Is(ErrValidationFailed) = false")
	}
	if errs.Field("b") != "worse" || errs.Field("c") != "" {
		t.Error("Field() lookup mismatch")
	}
	want := "validation error on field 'a': bad; validation error on field 'b': worse"
	if errs.Error() != want {
		t.Errorf("Error() = %q, want %q", errs.Error(), want)
	}
}
