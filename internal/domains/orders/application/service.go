package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Apurer/game-storefront/internal/domains/orders/domain"
	"github.com/Apurer/game-storefront/internal/domains/orders/ports"
)

// Service orchestrates order use cases.
type Service struct {
	gateway      ports.Gateway
	orchestrator ports.CheckoutOrchestrator
	games        ports.GameCounter
	users        ports.UserCounter
}

type Option func(*Service)

// WithOrchestrator replaces the inline submission used by default.
func WithOrchestrator(o ports.CheckoutOrchestrator) Option {
	return func(s *Service) {
		if o != nil {
			s.orchestrator = o
		}
	}
}

// WithCounters wires the sources of the dashboard's game and user totals.
func WithCounters(games ports.GameCounter, users ports.UserCounter) Option {
	return func(s *Service) {
		s.games = games
		s.users = users
	}
}

func NewService(gateway ports.Gateway, opts ...Option) *Service {
	s := &Service{gateway: gateway}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.orchestrator == nil {
		s.orchestrator = inlineSubmitter{gateway: gateway}
	}
	return s
}

// Checkout submits the cart once. After the order was created only the
// submitted lines leave the cart; items added meanwhile stay. On failure the
// cart is left untouched.
func (s *Service) Checkout(ctx context.Context, input ports.CheckoutInput) (*domain.Order, error) {
	if input.Cart == nil {
		return nil, errors.New("checkout cart is nil")
	}
	if strings.TrimSpace(input.Token) == "" {
		return nil, ErrNotSignedIn
	}
	method, err := domain.ParsePaymentMethod(input.PaymentMethod)
	if err != nil {
		return nil, mapError(err)
	}
	req, err := domain.NewCheckoutRequest(input.Cart.Items(), method)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyCart) {
			return nil, err
		}
		return nil, mapError(err)
	}
	key := strings.TrimSpace(input.IdempotencyKey)
	if key == "" {
		key = req.Fingerprint(input.VisitorID)
	}
	order, err := s.orchestrator.Submit(ctx, ports.CheckoutCommand{
		VisitorID:      input.VisitorID,
		Token:          input.Token,
		IdempotencyKey: key,
		Request:        *req,
	})
	if err != nil {
		return nil, mapError(err)
	}
	input.Cart.RemoveAll(ctx, req.GameIDs())
	return order, nil
}

func (s *Service) MyOrders(ctx context.Context, token string) ([]domain.Order, error) {
	if strings.TrimSpace(token) == "" {
		return nil, ErrNotSignedIn
	}
	orders, err := s.gateway.Mine(ctx, token)
	return orders, mapError(err)
}

func (s *Service) OrderByID(ctx context.Context, token, id string) (*domain.Order, error) {
	if strings.TrimSpace(token) == "" {
		return nil, ErrNotSignedIn
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%w: order id is required", ErrInvalidInput)
	}
	order, err := s.gateway.ByID(ctx, token, id)
	if err != nil {
		return nil, mapError(err)
	}
	return order, nil
}

// AllOrders lists every order for the back-office, filtered by buyer name or id.
func (s *Service) AllOrders(ctx context.Context, token, search string) ([]domain.Order, error) {
	orders, err := s.gateway.All(ctx, token)
	if err != nil {
		return nil, mapError(err)
	}
	return domain.FilterOrders(orders, search), nil
}

func (s *Service) UpdateStatus(ctx context.Context, token, id, status string) (domain.Status, error) {
	parsed, err := domain.ParseStatus(status)
	if err != nil {
		return "", mapError(err)
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return "", fmt.Errorf("%w: order id is required", ErrInvalidInput)
	}
	if err := s.gateway.UpdateStatus(ctx, token, id, parsed); err != nil {
		return "", mapError(err)
	}
	return parsed, nil
}

func (s *Service) Dashboard(ctx context.Context, token string) (*domain.Dashboard, error) {
	orders, err := s.gateway.All(ctx, token)
	if err != nil {
		return nil, mapError(err)
	}
	dashboard := &domain.Dashboard{
		TotalOrders:  len(orders),
		TotalRevenue: domain.Revenue(orders),
	}
	if s.games != nil {
		if dashboard.TotalGames, err = s.games.Count(ctx); err != nil {
			return nil, mapError(err)
		}
	}
	if s.users != nil {
		if dashboard.TotalUsers, err = s.users.Count(ctx, token); err != nil {
			return nil, mapError(err)
		}
	}
	return dashboard, nil
}

type inlineSubmitter struct {
	gateway ports.Gateway
}

func (i inlineSubmitter) Submit(ctx context.Context, cmd ports.CheckoutCommand) (*domain.Order, error) {
	return i.gateway.Submit(ctx, cmd.Token, cmd.IdempotencyKey, cmd.Request)
}

var _ ports.Service = (*Service)(nil)
