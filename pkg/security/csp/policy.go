// Package csp builds Content-Security-Policy header values for the portal's
// pages and its JSON endpoints.
package csp

import "strings"

// directiveOrder fixes the order directives appear in the header so the
// value is stable across builds.
var directiveOrder = []string{
	"default-src",
	"script-src",
	"style-src",
	"img-src",
	"font-src",
	"connect-src",
	"frame-src",
	"frame-ancestors",
	"form-action",
	"base-uri",
	"object-src",
}

// CSPBuilder assembles a policy one directive at a time. Setting a directive
// twice keeps the last value. A builder is not safe for concurrent mutation;
// Build may be called concurrently once configuration is done.
type CSPBuilder struct {
	directives map[string][]string
}

// NewCSPBuilder returns an empty builder.
func NewCSPBuilder() *CSPBuilder {
	return &CSPBuilder{directives: make(map[string][]string)}
}

func (b *CSPBuilder) set(name string, sources []string) *CSPBuilder {
	b.directives[name] = sources
	return b
}

// DefaultSrc is the fallback for every fetch directive left unset.
func (b *CSPBuilder) DefaultSrc(sources ...string) *CSPBuilder { return b.set("default-src", sources) }

func (b *CSPBuilder) ScriptSrc(sources ...string) *CSPBuilder  { return b.set("script-src", sources) }
func (b *CSPBuilder) StyleSrc(sources ...string) *CSPBuilder   { return b.set("style-src", sources) }
func (b *CSPBuilder) ImgSrc(sources ...string) *CSPBuilder     { return b.set("img-src", sources) }
func (b *CSPBuilder) FontSrc(sources ...string) *CSPBuilder    { return b.set("font-src", sources) }
func (b *CSPBuilder) ConnectSrc(sources ...string) *CSPBuilder { return b.set("connect-src", sources) }
func (b *CSPBuilder) FrameSrc(sources ...string) *CSPBuilder   { return b.set("frame-src", sources) }
func (b *CSPBuilder) ObjectSrc(sources ...string) *CSPBuilder  { return b.set("object-src", sources) }

// FrameAncestors controls who may frame the response. 'none' replaces
// X-Frame-Options: DENY.
func (b *CSPBuilder) FrameAncestors(sources ...string) *CSPBuilder {
	return b.set("frame-ancestors", sources)
}

// FormAction limits where forms on the page may submit.
func (b *CSPBuilder) FormAction(sources ...string) *CSPBuilder {
	return b.set("form-action", sources)
}

func (b *CSPBuilder) BaseUri(sources ...string) *CSPBuilder { return b.set("base-uri", sources) }

// Build renders the header value. Directives without sources are omitted.
func (b *CSPBuilder) Build() string {
	var sb strings.Builder
	for _, name := range directiveOrder {
		sources := b.directives[name]
		if len(sources) == 0 {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString("; ")
		}
		sb.WriteString(name)
		sb.WriteByte(' ')
		sb.WriteString(strings.Join(sources, " "))
	}
	return sb.String()
}

// PortalPolicy is the policy for the server-rendered pages.
//
// News images live on arbitrary HTTPS hosts (the image host among them) and
// article pages embed YouTube players, so img-src allows https: and frame-src
// allows the YouTube embed origins. Scripts stay same-origin.
func PortalPolicy() *CSPBuilder {
	return NewCSPBuilder().
		DefaultSrc("'self'").
		ScriptSrc("'self'").
		StyleSrc("'self'", "'unsafe-inline'").
		ImgSrc("'self'", "data:", "https:").
		FontSrc("'self'", "data:").
		ConnectSrc("'self'").
		FrameSrc("https://www.youtube.com", "https://www.youtube-nocookie.com").
		FrameAncestors("'none'").
		BaseUri("'self'").
		FormAction("'self'").
		ObjectSrc("'none'")
}

// StrictPolicy is the policy for /api/ responses, which never carry markup.
func StrictPolicy() *CSPBuilder {
	return NewCSPBuilder().
		DefaultSrc("'none'").
		ConnectSrc("'self'").
		FrameAncestors("'none'").
		BaseUri("'self'").
		FormAction("'self'")
}
