package cart

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/harborline/storefront-backend/internal/optimistic"
	"github.com/harborline/storefront-backend/pkg/db/models"
	"github.com/harborline/storefront-backend/pkg/enums"
	pkgerrors "github.com/harborline/storefront-backend/pkg/errors"
	"github.com/harborline/storefront-backend/pkg/logger"
	"github.com/harborline/storefront-backend/pkg/metrics"
)

// Submission is one routable cart mutation. Exactly the fields for its
// Action are read; the rest are ignored.
type Submission struct {
	Action        enums.MutationAction
	Adds          []LineAddInput
	Updates       []LineUpdateInput
	RemoveLineIDs []uuid.UUID
	DiscountCodes []string
}

// SubmitterParams groups dependencies for the submitter.
type SubmitterParams struct {
	Service      Service
	Overlay      *optimistic.Store
	Notifier     *optimistic.Notifier
	DiscountRepo *DiscountCodeRepository
	Metrics      *metrics.MutationMetrics
	Logger       *logger.Logger
}

// Submitter is the single reconciliation point for cart mutations: it
// records the optimistic patches for a submission, runs the authoritative
// mutation, and clears the patches once the mutation settles either way.
// Readers that load the merged view while a submission is running observe
// the optimistic state.
type Submitter struct {
	svc          Service
	overlay      *optimistic.Store
	notifier     *optimistic.Notifier
	discountRepo *DiscountCodeRepository
	metrics      *metrics.MutationMetrics
	logg         *logger.Logger
}

// NewSubmitter builds a submitter with the required dependencies.
func NewSubmitter(params SubmitterParams) (*Submitter, error) {
	if params.Service == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart service is required")
	}
	if params.Overlay == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "overlay store is required")
	}
	if params.Notifier == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "notifier is required")
	}
	if params.DiscountRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "discount repo is required")
	}
	if params.Metrics == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "mutation metrics are required")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "logger is required")
	}
	return &Submitter{
		svc:          params.Service,
		overlay:      params.Overlay,
		notifier:     params.Notifier,
		discountRepo: params.DiscountRepo,
		metrics:      params.Metrics,
		logg:         params.Logger,
	}, nil
}

// Submit routes one mutation through the overlay and the cart service, then
// returns the merged view built from the settled cart. The overlay entries
// written here are cleared before returning whether the mutation succeeded
// or failed; failure leaves the authoritative cart untouched and the caller
// resubmits if they still want the change.
func (s *Submitter) Submit(ctx context.Context, cartID uuid.UUID, sub Submission, priceType enums.PriceType) (View, error) {
	if !sub.Action.IsValid() {
		return View{}, pkgerrors.New(pkgerrors.CodeValidation, "unknown mutation action")
	}
	logCtx := s.logg.WithMutationAction(s.logg.WithCartID(ctx, cartID.String()), sub.Action.String())

	patched, err := s.applyPatches(ctx, cartID, sub)
	if err != nil {
		return View{}, err
	}

	start := time.Now()
	cart, mutErr := s.run(ctx, cartID, sub)
	s.metrics.ObserveDuration(sub.Action.String(), time.Since(start))

	if len(patched) > 0 {
		if err := s.overlay.Clear(ctx, cartID, patched...); err != nil {
			s.logg.Error(logCtx, "clear overlay after settle", err)
		}
	} else {
		// No line patches were written for this action; still signal that
		// the merged view changed.
		s.notifier.Notify(cartID)
	}

	if mutErr != nil {
		s.metrics.IncFailed(sub.Action.String())
		s.logg.Warn(logCtx, "cart mutation failed")
		return View{}, mutErr
	}
	s.metrics.IncSettled(sub.Action.String())
	s.logg.Info(logCtx, "cart mutation settled")

	return s.buildView(ctx, cart, priceType)
}

// View loads the cart, snapshots the overlay, and returns the merged view.
func (s *Submitter) View(ctx context.Context, cartID uuid.UUID, priceType enums.PriceType) (View, error) {
	cart, err := s.svc.GetCart(ctx, cartID)
	if err != nil {
		return View{}, err
	}
	return s.buildView(ctx, cart, priceType)
}

func (s *Submitter) buildView(ctx context.Context, cart *models.Cart, priceType enums.PriceType) (View, error) {
	overlay, err := s.overlay.Snapshot(ctx, cart.ID)
	if err != nil {
		return View{}, err
	}
	merged := Merge(cart, overlay)

	var discounts []models.DiscountCode
	if len(cart.DiscountCodes) > 0 {
		discounts, err = s.discountRepo.FindByCodes(ctx, cart.DiscountCodes)
		if err != nil {
			return View{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "resolve discount codes")
		}
	}

	return BuildView(merged, discounts, priceType, time.Now().UTC()), nil
}

// applyPatches writes the optimistic intent for a submission and returns the
// line ids it touched so they can be cleared on settle.
func (s *Submitter) applyPatches(ctx context.Context, cartID uuid.UUID, sub Submission) ([]uuid.UUID, error) {
	var patched []uuid.UUID
	apply := func(lineID uuid.UUID, patch optimistic.LinePatch) error {
		if err := s.overlay.Apply(ctx, cartID, lineID, patch); err != nil {
			return err
		}
		patched = append(patched, lineID)
		return nil
	}

	switch sub.Action {
	case enums.MutationActionLinesAdd:
		for i := range sub.Adds {
			if sub.Adds[i].LineID == uuid.Nil {
				sub.Adds[i].LineID = uuid.New()
			}
			err := apply(sub.Adds[i].LineID, optimistic.LinePatch{
				Action:   enums.LinePatchActionUpdate,
				Quantity: sub.Adds[i].Quantity,
			})
			if err != nil {
				return patched, err
			}
		}
	case enums.MutationActionLinesUpdate:
		for _, input := range sub.Updates {
			err := apply(input.LineID, optimistic.LinePatch{
				Action:   enums.LinePatchActionUpdate,
				Quantity: input.Quantity,
			})
			if err != nil {
				return patched, err
			}
		}
	case enums.MutationActionLinesRemove:
		for _, lineID := range sub.RemoveLineIDs {
			if err := apply(lineID, optimistic.LinePatch{Action: enums.LinePatchActionRemove}); err != nil {
				return patched, err
			}
		}
	case enums.MutationActionDiscountCodesUpdate:
		// Discount submissions are cart-scoped, not line-scoped; there is
		// no per-line patch to record.
	}

	return patched, nil
}

func (s *Submitter) run(ctx context.Context, cartID uuid.UUID, sub Submission) (*models.Cart, error) {
	switch sub.Action {
	case enums.MutationActionLinesAdd:
		return s.svc.LinesAdd(ctx, cartID, sub.Adds)
	case enums.MutationActionLinesUpdate:
		return s.svc.LinesUpdate(ctx, cartID, sub.Updates)
	case enums.MutationActionLinesRemove:
		return s.svc.LinesRemove(ctx, cartID, sub.RemoveLineIDs)
	case enums.MutationActionDiscountCodesUpdate:
		return s.svc.DiscountCodesUpdate(ctx, cartID, sub.DiscountCodes)
	default:
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown mutation action")
	}
}
