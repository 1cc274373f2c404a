package cart

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	storecart "github.com/louisbranch/storefront/internal/services/storefront/cart"
	"github.com/louisbranch/storefront/internal/services/storefront/catalog"
	module "github.com/louisbranch/storefront/internal/services/storefront/module"
	apperrors "github.com/louisbranch/storefront/internal/services/storefront/platform/errors"
	"github.com/louisbranch/storefront/internal/services/storefront/routepath"
)

type service struct {
	catalog catalog.Source
	carts   module.CartSessions
}

func newService(source catalog.Source, carts module.CartSessions) service {
	return service{catalog: source, carts: carts}
}

// session acquires the visitor's session; callers release it when the
// request is done.
func (s service) session(ctx context.Context, visitorID string) (*storecart.Session, func(), error) {
	if s.carts == nil {
		return nil, nil, apperrors.E(apperrors.KindUnavailable, "cart sessions are not configured")
	}
	if strings.TrimSpace(visitorID) == "" {
		return nil, nil, apperrors.EK(apperrors.KindUnavailable, "errors.unavailable", "visitor id is missing")
	}
	session, release, err := s.carts.Acquire(ctx, visitorID)
	if err != nil {
		return nil, nil, apperrors.Wrap(apperrors.KindUnavailable, "errors.unavailable", err)
	}
	return session, release, nil
}

// resolveItem finds id in the catalog the visitor last saw, refetching once
// when it is not there.
func (s service) resolveItem(ctx context.Context, session *storecart.Session, id int) (catalog.DisplayItem, error) {
	if item, ok := session.Lookup(id); ok {
		return item, nil
	}
	if s.catalog == nil {
		return catalog.DisplayItem{}, unknownItem(id)
	}
	items, err := s.catalog.FetchAndTransform(ctx)
	if err != nil {
		return catalog.DisplayItem{}, apperrors.Wrap(apperrors.KindUnavailable, "errors.unavailable", err)
	}
	session.Remember(items)
	if item, ok := session.Lookup(id); ok {
		return item, nil
	}
	return catalog.DisplayItem{}, unknownItem(id)
}

func (s service) add(ctx context.Context, session *storecart.Session, id int) (storecart.Line, storecart.Summary, error) {
	item, err := s.resolveItem(ctx, session, id)
	if err != nil {
		return storecart.Line{}, session.Cart.Snapshot(), err
	}
	return session.Cart.Add(ctx, item)
}

func (s service) applyLineAction(ctx context.Context, session *storecart.Session, id int, action string) (storecart.Summary, error) {
	switch action {
	case routepath.ActionIncrement:
		_, summary, err := session.Cart.ChangeQuantity(ctx, id, 1)
		return summary, err
	case routepath.ActionDecrement:
		_, summary, err := session.Cart.ChangeQuantity(ctx, id, -1)
		return summary, err
	case routepath.ActionRemove:
		return session.Cart.Remove(ctx, id)
	default:
		return session.Cart.Snapshot(), apperrors.EK(apperrors.KindNotFound, "errors.not_found", fmt.Sprintf("unknown cart action %q", action))
	}
}

func parseItemID(raw string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, apperrors.Wrap(apperrors.KindInvalidInput, "errors.cart.invalid_item", err)
	}
	return id, nil
}

func unknownItem(id int) error {
	return apperrors.EK(apperrors.KindNotFound, "errors.cart.unknown_item", fmt.Sprintf("item %d is not in the catalog", id))
}
