package menu

import (
	"context"

	"github.com/google/uuid"

	"github.com/harborline/storefront-backend/pkg/config"
	"github.com/harborline/storefront-backend/pkg/db/models"
	pkgerrors "github.com/harborline/storefront-backend/pkg/errors"
	"github.com/harborline/storefront-backend/pkg/logger"
)

// FooterView is the complete footer payload: brand block, address, social
// links, newsletter form copy, link menu sections, and the legal line.
type FooterView struct {
	Brand      BrandView      `json:"brand"`
	Address    []string       `json:"address,omitempty"`
	Social     []SocialView   `json:"social"`
	Newsletter NewsletterView `json:"newsletter"`
	Sections   []SectionView  `json:"sections"`
	LegalLine  string         `json:"legal_line,omitempty"`
}

// BrandView is the footer's brand block.
type BrandView struct {
	Name    string    `json:"name"`
	Tagline string    `json:"tagline,omitempty"`
	Logo    *LogoView `json:"logo,omitempty"`
}

// LogoView carries logo metadata when the theme configures one.
type LogoView struct {
	URL    string `json:"url"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

// SocialView is one social profile link.
type SocialView struct {
	Network string `json:"network"`
	URL     string `json:"url"`
}

// NewsletterView is the signup form copy.
type NewsletterView struct {
	Title       string `json:"title"`
	Placeholder string `json:"placeholder"`
}

// SectionView is one collapsible top-level menu entry. Sections start
// expanded; clients toggle them locally.
type SectionView struct {
	ID       string      `json:"id"`
	Title    string      `json:"title"`
	Expanded bool        `json:"expanded"`
	Entries  []EntryView `json:"entries"`
}

// EntryView is one item inside a section. Kind is "link" for navigable
// entries and "label" for the placeholder paths "#" and "/".
type EntryView struct {
	Title string  `json:"title"`
	Kind  string  `json:"kind"`
	URL   *string `json:"url,omitempty"`
}

const (
	entryKindLink  = "link"
	entryKindLabel = "label"
)

// ServiceParams groups dependencies for the footer service.
type ServiceParams struct {
	Repo   *Repository
	Theme  config.ThemeConfig
	Logger *logger.Logger
}

// Service composes the footer from theme settings and the menu tree.
type Service interface {
	Footer(ctx context.Context) (FooterView, error)
}

type service struct {
	repo  *Repository
	theme config.ThemeConfig
	logg  *logger.Logger
}

// NewService builds a footer service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "menu repo is required")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "logger is required")
	}
	return &service{repo: params.Repo, theme: params.Theme, logg: params.Logger}, nil
}

// Footer builds the full footer view.
func (s *service) Footer(ctx context.Context) (FooterView, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return FooterView{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load menu items")
	}

	view := FooterView{
		Brand: BrandView{
			Name:    s.theme.BrandName,
			Tagline: s.theme.Tagline,
		},
		Social: socialLinks(s.theme),
		Newsletter: NewsletterView{
			Title:       s.theme.NewsletterTitle,
			Placeholder: s.theme.NewsletterPlaceholder,
		},
		Sections:  buildSections(items),
		LegalLine: s.theme.LegalLine,
	}
	if s.theme.LogoURL != "" {
		view.Brand.Logo = &LogoView{
			URL:    s.theme.LogoURL,
			Width:  s.theme.LogoWidth,
			Height: s.theme.LogoHeight,
		}
	}
	for _, line := range []string{s.theme.AddressLine1, s.theme.AddressLine2} {
		if line != "" {
			view.Address = append(view.Address, line)
		}
	}
	return view, nil
}

func socialLinks(theme config.ThemeConfig) []SocialView {
	links := make([]SocialView, 0, 3)
	for _, candidate := range []SocialView{
		{Network: "instagram", URL: theme.InstagramURL},
		{Network: "facebook", URL: theme.FacebookURL},
		{Network: "twitter", URL: theme.TwitterURL},
	} {
		if candidate.URL != "" {
			links = append(links, candidate)
		}
	}
	return links
}

// buildSections groups the flat item list into top-level sections with their
// child entries, both already ordered by the repository.
func buildSections(items []models.MenuItem) []SectionView {
	sections := make([]SectionView, 0)
	byParent := make(map[uuid.UUID][]models.MenuItem)
	for _, item := range items {
		if item.ParentID != nil {
			byParent[*item.ParentID] = append(byParent[*item.ParentID], item)
		}
	}
	for _, item := range items {
		if item.ParentID != nil {
			continue
		}
		section := SectionView{
			ID:       item.ID.String(),
			Title:    item.Title,
			Expanded: true,
			Entries:  make([]EntryView, 0, len(byParent[item.ID])),
		}
		for _, child := range byParent[item.ID] {
			section.Entries = append(section.Entries, buildEntry(child))
		}
		sections = append(sections, section)
	}
	return sections
}

func buildEntry(item models.MenuItem) EntryView {
	if item.Path == "#" || item.Path == "/" {
		return EntryView{Title: item.Title, Kind: entryKindLabel}
	}
	path := item.Path
	return EntryView{Title: item.Title, Kind: entryKindLink, URL: &path}
}
