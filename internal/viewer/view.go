package viewer

import (
	"github.com/harborline/storefront-backend/pkg/db/models"
	"github.com/harborline/storefront-backend/pkg/enums"
)

// View is the viewer state shaped for clients: the modal flag, the selected
// item's render descriptor, and the thumbnail rail.
type View struct {
	Open       bool            `json:"open"`
	ProductID  string          `json:"product_id,omitempty"`
	SelectedID string          `json:"selected_id,omitempty"`
	Selected   *MediaView      `json:"selected,omitempty"`
	Rail       []ThumbnailView `json:"rail"`
	Scroll     *ScrollPlan     `json:"scroll,omitempty"`
}

// MediaView describes how to render the selected item full-size.
type MediaView struct {
	ID          string  `json:"id"`
	ContentType string  `json:"content_type"`
	SourceURL   string  `json:"source_url"`
	AltText     *string `json:"alt_text,omitempty"`
	// AspectRatio is width/height derived from natural dimensions; zero
	// when either dimension is unknown.
	AspectRatio float64 `json:"aspect_ratio,omitempty"`
	// CaptionsURL is the captions track slot for video renders. Empty until
	// a captions pipeline exists; clients render the track element anyway.
	CaptionsURL string `json:"captions_url,omitempty"`
}

// ThumbnailView is one rail entry.
type ThumbnailView struct {
	ID              string `json:"id"`
	PreviewImageURL string `json:"preview_image_url"`
	VideoBadge      bool   `json:"video_badge"`
	Selected        bool   `json:"selected"`
}

func buildMediaView(media models.ProductMedia) *MediaView {
	if !media.ContentType.IsValid() {
		return nil
	}
	mv := &MediaView{
		ID:          media.ID.String(),
		ContentType: media.ContentType.String(),
		SourceURL:   media.SourceURL,
		AltText:     media.AltText,
	}
	if media.ContentType == enums.MediaContentTypeImage && media.Width != nil && media.Height != nil && *media.Height > 0 {
		mv.AspectRatio = float64(*media.Width) / float64(*media.Height)
	}
	return mv
}

// MediaViews maps renderable media rows to their full-size views, dropping
// rows whose content type the gallery cannot render.
func MediaViews(media []models.ProductMedia) []MediaView {
	views := make([]MediaView, 0, len(media))
	for _, item := range media {
		if mv := buildMediaView(item); mv != nil {
			views = append(views, *mv)
		}
	}
	return views
}

func buildRail(media []models.ProductMedia, selectedID string) []ThumbnailView {
	rail := make([]ThumbnailView, 0, len(media))
	for _, item := range media {
		rail = append(rail, ThumbnailView{
			ID:              item.ID.String(),
			PreviewImageURL: item.PreviewImageURL,
			VideoBadge:      item.ContentType == enums.MediaContentTypeVideo,
			Selected:        item.ID.String() == selectedID,
		})
	}
	return rail
}
