package config

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"newspress/internal/domain/entity"
)

//go:embed navigation.yaml
var navigationYAML []byte

// NavItem is one sidebar link.
type NavItem struct {
	Title string `yaml:"title"`
	URL   string `yaml:"url"`
}

// NavGroup is a labelled block of sidebar links.
type NavGroup struct {
	Group string    `yaml:"group"`
	Items []NavItem `yaml:"items"`
}

// Navigation maps each authenticated role to its sidebar.
type Navigation map[entity.Role][]NavGroup

// LoadNavigation parses the embedded navigation document.
func LoadNavigation() (Navigation, error) {
	return ParseNavigation(navigationYAML)
}

// ParseNavigation parses a navigation document keyed by role name
// ("ADMIN", "USER"). Unknown roles and links outside the site are rejected.
func ParseNavigation(data []byte) (Navigation, error) {
	var raw map[string][]NavGroup
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse navigation: %w", err)
	}

	nav := make(Navigation, len(raw))
	for name, groups := range raw {
		role := entity.ParseRole(name)
		if !role.IsValid() {
			return nil, fmt.Errorf("navigation: unknown role %q", name)
		}
		for _, g := range groups {
			for _, item := range g.Items {
				if item.Title == "" || !strings.HasPrefix(item.URL, "/") || strings.HasPrefix(item.URL, "//") {
					return nil, fmt.Errorf("navigation: invalid item %q -> %q in %s", item.Title, item.URL, name)
				}
			}
		}
		nav[role] = groups
	}
	return nav, nil
}

// For returns the sidebar of role, or nil for anonymous visitors.
func (n Navigation) For(role entity.Role) []NavGroup {
	return n[role]
}
