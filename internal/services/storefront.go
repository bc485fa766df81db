package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"

	"github.com/shopease/storefront-client/internal/errors"
	"github.com/shopease/storefront-client/internal/models"
	"github.com/shopease/storefront-client/internal/pricing"
	"github.com/shopease/storefront-client/internal/store"
)

// Gateway is the slice of the API client the storefront flows need.
type Gateway interface {
	Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error)
	Register(ctx context.Context, req *models.RegisterRequest) error
	PlaceOrder(ctx context.Context, req *models.PlaceOrderRequest) (*models.Order, error)
	OrderHistory(ctx context.Context) ([]models.Order, error)
}

// StorefrontService drives the user-facing flows: every failure is caught
// here and converted into a notification, never an escaping panic.
type StorefrontService struct {
	gateway  Gateway
	store    *store.Store
	validate *validator.Validate
	logger   *slog.Logger
}

func NewStorefrontService(gateway Gateway, st *store.Store, logger *slog.Logger) *StorefrontService {
	return &StorefrontService{
		gateway:  gateway,
		store:    st,
		validate: validator.New(),
		logger:   logger,
	}
}

func (s *StorefrontService) Login(ctx context.Context, req *models.LoginRequest) (*models.User, error) {

	if err := s.validate.Struct(req); err != nil {
		return nil, s.fail(ctx, errors.ValidationError("Username and password are required").WithError(err))
	}

	s.store.Dispatch(ctx, store.SetLoading{Loading: true})
	defer s.store.Dispatch(ctx, store.SetLoading{Loading: false})

	auth, err := s.gateway.Login(ctx, req)
	if err != nil {
		return nil, s.fail(ctx, err)
	}

	s.store.Dispatch(ctx, store.SetSession{Session: models.Session{
		User:   auth.User,
		Tokens: auth.Tokens,
	}})

	s.store.Notify(ctx, "Login successful!", models.SeveritySuccess)
	s.logger.Info("User logged in", slog.String("username", req.Username))

	return auth.User, nil
}

func (s *StorefrontService) Register(ctx context.Context, req *models.RegisterRequest) error {

	if err := s.validate.Struct(req); err != nil {

		message := "Please check the registration form"

		if validationErrs, ok := err.(validator.ValidationErrors); ok {
			for _, fieldErr := range validationErrs {
				if fieldErr.Tag() == "eqfield" {
					message = "Password fields didn't match."
				}
			}
		}

		return s.fail(ctx, errors.ValidationError(message).WithError(err))
	}

	s.store.Dispatch(ctx, store.SetLoading{Loading: true})
	defer s.store.Dispatch(ctx, store.SetLoading{Loading: false})

	if err := s.gateway.Register(ctx, req); err != nil {
		return s.fail(ctx, err)
	}

	s.store.Notify(ctx, "Registration successful! Please login.", models.SeveritySuccess)

	return nil
}

func (s *StorefrontService) Logout(ctx context.Context) {
	s.store.Dispatch(ctx, store.Logout{})
	s.store.Notify(ctx, "Logged out successfully!", models.SeverityInfo)
}

// Checkout places an order from the current cart. The caller supplies the
// shipping fields and payment method; items and amounts come from the cart
// and the pricing rules.
func (s *StorefrontService) Checkout(ctx context.Context, req *models.PlaceOrderRequest) (*models.Order, error) {

	snapshot := s.store.Snapshot()

	if len(snapshot.Cart) == 0 {
		return nil, s.fail(ctx, errors.ValidationError("Your cart is empty!"))
	}

	if !snapshot.Session.Authenticated() {
		return nil, s.fail(ctx, errors.AuthenticationError("Please login to checkout!"))
	}

	req.Items = make([]models.OrderItemPayload, 0, len(snapshot.Cart))

	for _, line := range snapshot.Cart {
		req.Items = append(req.Items, models.OrderItemPayload{
			ProductID: line.Product.ID,
			Name:      line.Product.Name,
			Brand:     line.Product.Brand,
			Quantity:  line.Quantity,
			Price:     line.Product.Price,
		})
	}

	summary := pricing.Summarize(snapshot.Cart)
	req.Subtotal = summary.Subtotal
	req.ShippingCost = summary.Shipping
	req.TaxAmount = summary.Tax
	req.TotalAmount = summary.Total

	if err := s.validate.Struct(req); err != nil {
		return nil, s.fail(ctx, errors.ValidationError("Please fill in the required shipping fields").WithError(err))
	}

	s.store.Dispatch(ctx, store.SetLoading{Loading: true})
	defer s.store.Dispatch(ctx, store.SetLoading{Loading: false})

	order, err := s.gateway.PlaceOrder(ctx, req)
	if err != nil {
		return nil, s.fail(ctx, err)
	}

	s.store.Dispatch(ctx, store.ClearCart{})
	s.store.Notify(ctx, fmt.Sprintf("Order placed successfully! Total: ₹%.2f", summary.Total), models.SeveritySuccess)
	s.logger.Info("Order placed", slog.String("order_number", order.OrderNumber))

	return order, nil
}

func (s *StorefrontService) OrderHistory(ctx context.Context) ([]models.Order, error) {

	if !s.store.Snapshot().Session.Authenticated() {
		return nil, s.fail(ctx, errors.AuthenticationError("Please login to view your orders"))
	}

	s.store.Dispatch(ctx, store.SetLoading{Loading: true})
	defer s.store.Dispatch(ctx, store.SetLoading{Loading: false})

	orders, err := s.gateway.OrderHistory(ctx)
	if err != nil {
		return nil, s.fail(ctx, err)
	}

	return orders, nil
}

// fail converts any error into a user-facing notification and, for
// authentication failures, drops the in-memory session so the views fall
// back to the login prompt.
func (s *StorefrontService) fail(ctx context.Context, err error) error {

	message := "Something went wrong, please try again"
	severity := models.SeverityError

	if appErr, ok := errors.IsAppError(err); ok {

		message = appErr.Message

		switch appErr.Code {
		case errors.ErrCodeAuthentication:
			s.store.Dispatch(ctx, store.SetSession{Session: models.Session{}})
		case errors.ErrCodeNetwork:
			message = "Network error, please try again"
		}
	}

	s.logger.Warn("Storefront operation failed", slog.String("error", err.Error()))
	s.store.Notify(ctx, message, severity)

	return err
}
