package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stockroomhq/stockroom-backend/pkg/enums"
	pkgerrors "github.com/stockroomhq/stockroom-backend/pkg/errors"
)

// Service exposes the staff-only order views.
type Service interface {
	ListOrders(ctx context.Context, actor enums.UserRole) ([]OrderDTO, error)
	GetOrder(ctx context.Context, actor enums.UserRole, orderID uuid.UUID) (*OrderDTO, error)
}

type service struct {
	repo *Repository
}

// NewService constructs the orders service.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	return &service{repo: repo}, nil
}

var errNoPermission = pkgerrors.New(pkgerrors.CodeForbidden, "you do not have permission to perform this action")

// ListOrders returns every order, newest first. Managers and admins only.
func (s *service) ListOrders(ctx context.Context, actor enums.UserRole) ([]OrderDTO, error) {
	if !actor.IsStaff() {
		return nil, errNoPermission
	}
	rows, err := s.repo.ListOrders(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return FromModels(rows), nil
}

// GetOrder returns one order with its snapshot lines. Managers and admins only.
func (s *service) GetOrder(ctx context.Context, actor enums.UserRole, orderID uuid.UUID) (*OrderDTO, error) {
	if !actor.IsStaff() {
		return nil, errNoPermission
	}
	order, err := s.repo.FindByID(ctx, orderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return FromModel(order), nil
}
