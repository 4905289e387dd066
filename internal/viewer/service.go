package viewer

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/harborline/storefront-backend/pkg/db/models"
	"github.com/harborline/storefront-backend/pkg/enums"
	pkgerrors "github.com/harborline/storefront-backend/pkg/errors"
	"github.com/harborline/storefront-backend/pkg/logger"
)

// ServiceParams groups dependencies for the viewer service.
type ServiceParams struct {
	Repo     *Repository
	Sessions *SessionStore
	Logger   *logger.Logger
}

// ScrollContext carries the client-reported geometry for the navigation
// target so the service can decide whether a scroll is needed. Nil when the
// client did not report geometry.
type ScrollContext struct {
	Container Rect `json:"container"`
	Thumbnail Rect `json:"thumbnail"`
}

// Service owns viewer sessions: opening and closing the modal, navigating
// the rail with wraparound, and routing keys while open.
type Service interface {
	ListMedia(ctx context.Context, productID uuid.UUID) ([]models.ProductMedia, error)
	Open(ctx context.Context, viewerID string, productID, selectedID uuid.UUID) (View, error)
	Close(ctx context.Context, viewerID string) (View, error)
	Next(ctx context.Context, viewerID string, scroll *ScrollContext) (View, error)
	Prev(ctx context.Context, viewerID string, scroll *ScrollContext) (View, error)
	Select(ctx context.Context, viewerID string, mediaID uuid.UUID, scroll *ScrollContext) (View, error)
	HandleKey(ctx context.Context, viewerID string, key enums.ViewerKey, scroll *ScrollContext) (View, bool, error)
}

type service struct {
	repo     *Repository
	sessions *SessionStore
	logg     *logger.Logger
}

// NewService builds a viewer service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "media repo is required")
	}
	if params.Sessions == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session store is required")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "logger is required")
	}
	return &service{repo: params.Repo, sessions: params.Sessions, logg: params.Logger}, nil
}

// ListMedia returns the product's renderable media in rail order.
func (s *service) ListMedia(ctx context.Context, productID uuid.UUID) ([]models.ProductMedia, error) {
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	media, err := s.repo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list product media")
	}
	return media, nil
}

// Open starts a session on the given product. A selected id that does not
// match any media falls back to the first item.
func (s *service) Open(ctx context.Context, viewerID string, productID, selectedID uuid.UUID) (View, error) {
	media, err := s.ListMedia(ctx, productID)
	if err != nil {
		return View{}, err
	}
	if len(media) == 0 {
		return View{}, pkgerrors.New(pkgerrors.CodeNotFound, "product has no renderable media")
	}

	selected := media[IndexOf(mediaIDs(media), selectedID)]
	session := Session{
		ViewerID:   viewerID,
		ProductID:  productID,
		SelectedID: selected.ID,
		Open:       true,
		OpenedAt:   time.Now().UTC(),
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return View{}, err
	}
	return s.buildView(session, media, nil), nil
}

// Close ends the session. Closing an already-closed viewer is a no-op.
func (s *service) Close(ctx context.Context, viewerID string) (View, error) {
	if err := s.sessions.Delete(ctx, viewerID); err != nil {
		return View{}, err
	}
	return View{Open: false, Rail: []ThumbnailView{}}, nil
}

// Next advances the selection with wraparound.
func (s *service) Next(ctx context.Context, viewerID string, scroll *ScrollContext) (View, error) {
	return s.step(ctx, viewerID, 1, scroll)
}

// Prev retreats the selection with wraparound.
func (s *service) Prev(ctx context.Context, viewerID string, scroll *ScrollContext) (View, error) {
	return s.step(ctx, viewerID, -1, scroll)
}

// Select jumps directly to a rail item.
func (s *service) Select(ctx context.Context, viewerID string, mediaID uuid.UUID, scroll *ScrollContext) (View, error) {
	session, media, err := s.openSession(ctx, viewerID)
	if err != nil {
		return View{}, err
	}
	ids := mediaIDs(media)
	session.SelectedID = media[IndexOf(ids, mediaID)].ID
	if err := s.sessions.Save(ctx, session); err != nil {
		return View{}, err
	}
	return s.buildView(session, media, scroll), nil
}

// HandleKey routes a key event. Keys arriving while the viewer is closed,
// and keys with no navigation meaning, report handled=false and change
// nothing.
func (s *service) HandleKey(ctx context.Context, viewerID string, key enums.ViewerKey, scroll *ScrollContext) (View, bool, error) {
	direction := key.Direction()
	if direction == 0 {
		return View{Open: false, Rail: []ThumbnailView{}}, false, nil
	}
	session, err := s.sessions.Load(ctx, viewerID)
	if err != nil {
		return View{}, false, err
	}
	if !session.Open {
		return View{Open: false, Rail: []ThumbnailView{}}, false, nil
	}
	view, err := s.step(ctx, viewerID, direction, scroll)
	if err != nil {
		return View{}, false, err
	}
	return view, true, nil
}

func (s *service) step(ctx context.Context, viewerID string, direction int, scroll *ScrollContext) (View, error) {
	session, media, err := s.openSession(ctx, viewerID)
	if err != nil {
		return View{}, err
	}
	ids := mediaIDs(media)
	index := IndexOf(ids, session.SelectedID)
	if direction > 0 {
		index = NextIndex(index, len(ids))
	} else {
		index = PrevIndex(index, len(ids))
	}
	session.SelectedID = ids[index]
	if err := s.sessions.Save(ctx, session); err != nil {
		return View{}, err
	}
	return s.buildView(session, media, scroll), nil
}

func (s *service) openSession(ctx context.Context, viewerID string) (Session, []models.ProductMedia, error) {
	session, err := s.sessions.Load(ctx, viewerID)
	if err != nil {
		return Session{}, nil, err
	}
	if !session.Open {
		return Session{}, nil, pkgerrors.New(pkgerrors.CodeStateConflict, "viewer is not open")
	}
	media, err := s.ListMedia(ctx, session.ProductID)
	if err != nil {
		return Session{}, nil, err
	}
	if len(media) == 0 {
		return Session{}, nil, pkgerrors.New(pkgerrors.CodeNotFound, "product has no renderable media")
	}
	return session, media, nil
}

func (s *service) buildView(session Session, media []models.ProductMedia, scroll *ScrollContext) View {
	selectedID := session.SelectedID.String()
	view := View{
		Open:       session.Open,
		ProductID:  session.ProductID.String(),
		SelectedID: selectedID,
		Rail:       buildRail(media, selectedID),
	}
	for _, item := range media {
		if item.ID == session.SelectedID {
			view.Selected = buildMediaView(item)
			break
		}
	}
	if scroll != nil {
		view.Scroll = PlanScroll(scroll.Container, scroll.Thumbnail)
	}
	return view
}

func mediaIDs(media []models.ProductMedia) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(media))
	for _, item := range media {
		ids = append(ids, item.ID)
	}
	return ids
}
