package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"hoteldesk/internal/domain"
	"hoteldesk/internal/pkg/validator"
)

// CreateCategory adds a service category. Categories default to active.
func (s *Service) CreateCategory(ctx context.Context, req CategoryRequest) (*domain.ServiceCategory, error) {
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	c := &domain.ServiceCategory{
		Name:        req.Name,
		Description: req.Description,
		IsActive:    active,
		SortOrder:   req.SortOrder,
	}
	if err := s.store.CreateCategory(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) GetCategory(ctx context.Context, id int64) (*domain.ServiceCategory, error) {
	c, err := s.store.GetCategory(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCategoryNotFound
	}
	return c, err
}

func (s *Service) UpdateCategory(ctx context.Context, id int64, req CategoryRequest) (*domain.ServiceCategory, error) {
	c, err := s.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}

	c.Name = req.Name
	c.Description = req.Description
	if req.IsActive != nil {
		c.IsActive = *req.IsActive
	}
	c.SortOrder = req.SortOrder

	if err := s.store.UpdateCategory(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// DeleteCategory refuses to delete a category that still has services.
func (s *Service) DeleteCategory(ctx context.Context, id int64) error {
	return s.store.InTx(ctx, func(tx Store) error {
		if _, err := tx.GetCategory(ctx, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCategoryNotFound
			}
			return err
		}
		n, err := tx.CountServicesInCategory(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return fmt.Errorf("%w: category has %d service(s)", ErrIntegrity, n)
		}
		return tx.DeleteCategory(ctx, id)
	})
}

func (s *Service) ListCategories(ctx context.Context, activeOnly bool) ([]domain.ServiceCategory, error) {
	return s.store.ListCategories(ctx, activeOnly)
}

func (s *Service) validateServiceRequest(ctx context.Context, req ServiceRequest) error {
	if !domain.ValidDuration(req.DurationMinutes) {
		return fmt.Errorf("%w: duration must be one of %v minutes", ErrValidation, domain.AllowedDurations)
	}
	if !domain.ValidLeadTime(req.MinBookingHours) {
		return fmt.Errorf("%w: min booking hours must be one of %v", ErrValidation, domain.AllowedLeadTimes)
	}
	if req.Status != "" && !req.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrValidation, req.Status)
	}
	if _, err := s.store.GetCategory(ctx, req.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}
	return nil
}

func (s *Service) CreateService(ctx context.Context, req ServiceRequest) (*domain.Service, error) {
	if err := s.validateServiceRequest(ctx, req); err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = domain.ServiceAvailable
	}
	svc := &domain.Service{
		Name:             req.Name,
		CategoryID:       req.CategoryID,
		Description:      req.Description,
		ShortDescription: req.ShortDescription,
		Price:            req.Price,
		DurationMinutes:  req.DurationMinutes,
		MaxCapacity:      req.MaxCapacity,
		MinBookingHours:  req.MinBookingHours,
		Status:           status,
		IsFeatured:       req.IsFeatured,
		SortOrder:        req.SortOrder,
	}
	if fields := validator.Validate(svc); fields != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, fields)
	}
	if err := s.store.CreateService(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *Service) GetService(ctx context.Context, id int64) (*domain.Service, error) {
	return s.fetchService(ctx, s.store, id)
}

func (s *Service) UpdateService(ctx context.Context, id int64, req ServiceRequest) (*domain.Service, error) {
	svc, err := s.GetService(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.validateServiceRequest(ctx, req); err != nil {
		return nil, err
	}

	svc.Name = req.Name
	svc.CategoryID = req.CategoryID
	svc.Description = req.Description
	svc.ShortDescription = req.ShortDescription
	svc.Price = req.Price
	svc.DurationMinutes = req.DurationMinutes
	svc.MaxCapacity = req.MaxCapacity
	svc.MinBookingHours = req.MinBookingHours
	if req.Status != "" {
		svc.Status = req.Status
	}
	svc.IsFeatured = req.IsFeatured
	svc.SortOrder = req.SortOrder

	if err := s.store.UpdateService(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

// DeleteService refuses to delete a service that has any bookings, past or
// future: the history stays queryable.
func (s *Service) DeleteService(ctx context.Context, id int64) error {
	return s.store.InTx(ctx, func(tx Store) error {
		if _, err := s.fetchService(ctx, tx, id); err != nil {
			return err
		}
		n, err := tx.CountBookingsForService(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return fmt.Errorf("%w: service has %d booking(s)", ErrIntegrity, n)
		}
		return tx.DeleteService(ctx, id)
	})
}

func (s *Service) ListServices(ctx context.Context, q ServiceListQuery) ([]domain.Service, error) {
	if q.Status != "" && !q.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, q.Status)
	}
	return s.store.ListServices(ctx, q)
}
