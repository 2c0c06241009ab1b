package remote

import (
	"context"
	"errors"

	"github.com/Apurer/game-storefront/internal/clients/http/shop"
	"github.com/Apurer/game-storefront/internal/domains/orders/domain"
	"github.com/Apurer/game-storefront/internal/domains/orders/ports"
)

var _ ports.Gateway = (*Gateway)(nil)

// Gateway maps order use cases onto the shop API.
type Gateway struct {
	client *shop.Client
}

func NewGateway(client *shop.Client) *Gateway {
	return &Gateway{client: client}
}

func (g *Gateway) Submit(ctx context.Context, token, idempotencyKey string, req domain.CheckoutRequest) (*domain.Order, error) {
	if err := g.ensureClient(); err != nil {
		return nil, err
	}
	body := shop.CreateOrderRequest{
		Games:         make([]shop.OrderLine, 0, len(req.Lines)),
		Total:         req.Total,
		PaymentMethod: string(req.PaymentMethod),
	}
	for _, line := range req.Lines {
		body.Games = append(body.Games, shop.OrderLine{Game: line.GameID, Title: line.Title, Price: line.Price, Image: line.Image})
	}
	created, err := g.client.CreateOrder(ctx, body, shop.WithBearer(token), shop.WithIdempotencyKey(idempotencyKey))
	if err != nil {
		return nil, err
	}
	order := FromPayload(*created)
	return &order, nil
}

func (g *Gateway) Mine(ctx context.Context, token string) ([]domain.Order, error) {
	if err := g.ensureClient(); err != nil {
		return nil, err
	}
	orders, err := g.client.MyOrders(ctx, shop.WithBearer(token))
	if err != nil {
		return nil, err
	}
	return fromPayloads(orders), nil
}

func (g *Gateway) ByID(ctx context.Context, token, id string) (*domain.Order, error) {
	if err := g.ensureClient(); err != nil {
		return nil, err
	}
	found, err := g.client.GetOrder(ctx, id, shop.WithBearer(token))
	if err != nil {
		return nil, err
	}
	order := FromPayload(*found)
	return &order, nil
}

func (g *Gateway) All(ctx context.Context, token string) ([]domain.Order, error) {
	if err := g.ensureClient(); err != nil {
		return nil, err
	}
	orders, err := g.client.AllOrders(ctx, shop.WithBearer(token))
	if err != nil {
		return nil, err
	}
	return fromPayloads(orders), nil
}

func (g *Gateway) UpdateStatus(ctx context.Context, token, id string, status domain.Status) error {
	if err := g.ensureClient(); err != nil {
		return err
	}
	return g.client.UpdateOrderStatus(ctx, id, string(status), shop.WithBearer(token))
}

func (g *Gateway) ensureClient() error {
	if g == nil || g.client == nil {
		return errors.New("remote order gateway not configured")
	}
	return nil
}

// FromPayload maps the wire order onto the domain type.
func FromPayload(o shop.Order) domain.Order {
	order := domain.Order{
		ID:            o.ID,
		Lines:         make([]domain.Line, 0, len(o.Games)),
		Total:         o.Total,
		PaymentMethod: domain.PaymentMethod(o.PaymentMethod),
		Status:        domain.Status(o.Status),
		CreatedAt:     o.CreatedAt,
	}
	if o.User != nil {
		order.User = &domain.UserSummary{ID: o.User.ID, Name: o.User.Name, Email: o.User.Email}
	}
	for _, line := range o.Games {
		order.Lines = append(order.Lines, domain.Line{GameID: line.Game, Title: line.Title, Price: line.Price, Image: line.Image})
	}
	return order
}

func fromPayloads(orders []shop.Order) []domain.Order {
	out := make([]domain.Order, 0, len(orders))
	for _, o := range orders {
		out = append(out, FromPayload(o))
	}
	return out
}
