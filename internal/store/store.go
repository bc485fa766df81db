// Package store is the single state container behind every storefront view.
// All mutations go through Dispatch as named intents; each intent is applied
// atomically, the filtered product view is recomputed, and the affected state
// slices are written to durable storage before Dispatch returns.
package store

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/shopease/storefront-client/internal/filter"
	"github.com/shopease/storefront-client/internal/metrics"
	"github.com/shopease/storefront-client/internal/models"
	"github.com/shopease/storefront-client/internal/storage"
)

type State struct {
	Products      []models.Product
	Filtered      []models.Product
	Cart          []models.CartLine
	Wishlist      []models.Product
	Session       models.Session
	Filters       models.FilterCriteria
	Loading       bool
	Notifications []models.Notification
}

type Store struct {
	mu      sync.Mutex
	state   State
	storage storage.Store
	logger  *slog.Logger

	notificationTTL time.Duration
	notifSeq        int64
	dismissTimers   map[int64]*time.Timer
}

func New(catalog []models.Product, st storage.Store, logger *slog.Logger, notificationTTL time.Duration) *Store {

	s := &Store{
		storage:         st,
		logger:          logger,
		notificationTTL: notificationTTL,
		dismissTimers:   make(map[int64]*time.Timer),
	}

	s.state = State{
		Products: catalog,
		Filtered: filter.Apply(catalog, models.DefaultFilters()),
		Filters:  models.DefaultFilters(),
	}

	return s
}

// Hydrate loads persisted cart, wishlist and session slices. Unreadable
// slices are skipped, matching a browser dropping a corrupt localStorage
// entry on reload.
func (s *Store) Hydrate(ctx context.Context) {

	s.mu.Lock()
	defer s.mu.Unlock()

	var cart []models.CartLine

	if _, err := s.storage.Get(ctx, storage.KeyCart, &cart); err != nil {
		s.logger.Warn("Skipping stored cart", slog.String("error", err.Error()))
	} else if cart != nil {
		s.state.Cart = cart
	}

	var wishlist []models.Product

	if _, err := s.storage.Get(ctx, storage.KeyWishlist, &wishlist); err != nil {
		s.logger.Warn("Skipping stored wishlist", slog.String("error", err.Error()))
	} else if wishlist != nil {
		s.state.Wishlist = wishlist
	}

	var (
		user    models.User
		session models.Session
	)

	foundUser, err := s.storage.Get(ctx, storage.KeyUser, &user)
	if err != nil {
		s.logger.Warn("Skipping stored user", slog.String("error", err.Error()))
		foundUser = false
	}

	if _, err := s.storage.Get(ctx, storage.KeyAccessToken, &session.Tokens.Access); err != nil {
		s.logger.Warn("Skipping stored access token", slog.String("error", err.Error()))
	}

	if _, err := s.storage.Get(ctx, storage.KeyRefreshToken, &session.Tokens.Refresh); err != nil {
		s.logger.Warn("Skipping stored refresh token", slog.String("error", err.Error()))
	}

	// a user without an access credential is anonymous
	if foundUser && session.Tokens.Access != "" {
		session.User = &user
		s.state.Session = session
	}
}

// Snapshot returns a copy safe for views to read while dispatches continue.
func (s *Store) Snapshot() State {

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.copyStateLocked()
}

func (s *Store) copyStateLocked() State {

	out := s.state

	out.Products = append([]models.Product(nil), s.state.Products...)
	out.Filtered = append([]models.Product(nil), s.state.Filtered...)
	out.Cart = append([]models.CartLine(nil), s.state.Cart...)
	out.Wishlist = append([]models.Product(nil), s.state.Wishlist...)
	out.Notifications = append([]models.Notification(nil), s.state.Notifications...)

	if s.state.Session.User != nil {
		user := *s.state.Session.User
		out.Session.User = &user
	}

	return out
}

// Dispatch applies one intent atomically and synchronously. An intent the
// reducer does not recognize leaves the state untouched.
func (s *Store) Dispatch(ctx context.Context, intent Intent) State {

	s.mu.Lock()
	defer s.mu.Unlock()

	if intent != nil {
		metrics.ObserveIntent(intent.intentName())
	}

	switch in := intent.(type) {

	case AddToCart:
		s.state.Cart = addToCart(s.state.Cart, in.Product)
		s.persist(ctx, storage.KeyCart, s.state.Cart)

	case RemoveFromCart:
		s.state.Cart = removeFromCart(s.state.Cart, in.ProductID)
		s.persist(ctx, storage.KeyCart, s.state.Cart)

	case SetQuantity:
		s.state.Cart = setQuantity(s.state.Cart, in.ProductID, in.Quantity)
		s.persist(ctx, storage.KeyCart, s.state.Cart)

	case ClearCart:
		s.state.Cart = nil
		s.persist(ctx, storage.KeyCart, []models.CartLine{})

	case ToggleWishlist:
		s.state.Wishlist = toggleWishlist(s.state.Wishlist, in.Product)
		s.persist(ctx, storage.KeyWishlist, s.state.Wishlist)

	case SetFilters:
		s.state.Filters = in.Filters
		s.state.Filtered = filter.Apply(s.state.Products, s.state.Filters)

	case ClearFilters:
		s.state.Filters = models.DefaultFilters()
		s.state.Filtered = filter.Apply(s.state.Products, s.state.Filters)

	case SetSession:
		s.state.Session = in.Session
		s.persistSession(ctx, in.Session)

	case Logout:
		s.state.Session = models.Session{}
		s.state.Cart = nil
		s.state.Wishlist = nil

		if err := s.storage.Clear(ctx, storage.SessionKeys()...); err != nil {
			s.logger.Error("Failed to clear stored session", slog.String("error", err.Error()))
		}

	case SetLoading:
		s.state.Loading = in.Loading

	case PushNotification:
		s.pushNotificationLocked(in.Message, in.Severity)

	case DismissNotification:
		s.dismissNotificationLocked(in.ID)

	default:
		// unknown intent: prior state unchanged
	}

	return s.copyStateLocked()
}

func (s *Store) persist(ctx context.Context, key string, value any) {
	if err := s.storage.Set(ctx, key, value); err != nil {
		s.logger.Error("Failed to persist state slice",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
	}
}

func (s *Store) persistSession(ctx context.Context, session models.Session) {

	if !session.Authenticated() {
		if err := s.storage.Clear(ctx, storage.KeyAccessToken, storage.KeyRefreshToken, storage.KeyUser); err != nil {
			s.logger.Error("Failed to clear stored session", slog.String("error", err.Error()))
		}

		return
	}

	s.persist(ctx, storage.KeyAccessToken, session.Tokens.Access)
	s.persist(ctx, storage.KeyRefreshToken, session.Tokens.Refresh)
	s.persist(ctx, storage.KeyUser, session.User)
}

func addToCart(cart []models.CartLine, product models.Product) []models.CartLine {

	for i, line := range cart {
		if line.Product.ID == product.ID {
			cart[i].Quantity++

			return cart
		}
	}

	return append(cart, models.CartLine{Product: product, Quantity: 1})
}

func removeFromCart(cart []models.CartLine, productID int64) []models.CartLine {

	out := cart[:0]

	for _, line := range cart {
		if line.Product.ID != productID {
			out = append(out, line)
		}
	}

	return out
}

// setQuantity stores quantities >= 1; anything lower removes the line.
func setQuantity(cart []models.CartLine, productID int64, quantity int) []models.CartLine {

	if quantity < 1 {
		return removeFromCart(cart, productID)
	}

	for i, line := range cart {
		if line.Product.ID == productID {
			cart[i].Quantity = quantity

			break
		}
	}

	return cart
}

func toggleWishlist(wishlist []models.Product, product models.Product) []models.Product {

	for i, p := range wishlist {
		if p.ID == product.ID {
			return append(wishlist[:i], wishlist[i+1:]...)
		}
	}

	return append(wishlist, product)
}
