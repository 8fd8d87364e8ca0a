package services

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	apperrors "teamspace/internal/errors"
	"teamspace/internal/events"
	"teamspace/internal/ids"
	"teamspace/internal/imagesearch"
	"teamspace/internal/locator"
	"teamspace/internal/models"
	"teamspace/internal/store"
)

// categoryService handles spending category business logic.
type categoryService struct {
	base
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(d Deps) CategoryServicer {
	return &categoryService{base: newBase(d)}
}

// CreateSpendingCategory appends an empty category with a searched image. A
// failed image search aborts before anything is written.
func (s *categoryService) CreateSpendingCategory(ctx context.Context, teamSpaceID, name string, budgetLimit decimal.Decimal) (*models.SpendingCategory, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "spending category name is required")
	}

	if _, err := s.fetch(ctx, teamSpaceID); err != nil {
		return nil, err
	}

	image, err := s.Images.Pick(ctx, name, imagesearch.Landscape)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrImageSearch, err)
	}

	category := models.NewSpendingCategory(ids.NewCategoryID(), name, budgetLimit, image)
	version, err := s.mutate(ctx, "createSpendingCategory", teamSpaceID, func(*models.TeamSpace) ([]store.Op, error) {
		return []store.Op{store.Append(models.FieldSpendingCategories, category)}, nil
	})
	if err != nil {
		return nil, err
	}

	s.Audit.Log(ctx, AuditEntry{
		Event:        events.CategoryCreated,
		TeamSpaceID:  teamSpaceID,
		ResourceType: ResourceCategory,
		ResourceID:   category.SpendingCategoryID,
		Version:      version,
		Changes:      map[string]any{"spendingCategoryName": name, "budgetLimit": budgetLimit},
	})
	return &category, nil
}

// EditSpendingCategory updates name, budget limit and image. The image is
// searched again only when the name changed; otherwise oldImage is kept.
func (s *categoryService) EditSpendingCategory(ctx context.Context, teamSpaceID, categoryID, oldName, newName string, newBudgetLimit decimal.Decimal, oldImage string) error {
	if strings.TrimSpace(newName) == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "spending category name is required")
	}

	ts, err := s.fetch(ctx, teamSpaceID)
	if err != nil {
		return err
	}
	if locator.CategoryIndex(ts, categoryID) == locator.NotFound {
		return apperrors.ErrCategoryNotFound
	}

	image := oldImage
	if newName != oldName {
		if image, err = s.Images.Pick(ctx, newName, imagesearch.Landscape); err != nil {
			return apperrors.Wrap(apperrors.ErrImageSearch, err)
		}
	}

	version, err := s.mutate(ctx, "editSpendingCategory", teamSpaceID, func(ts *models.TeamSpace) ([]store.Op, error) {
		idx := locator.CategoryIndex(ts, categoryID)
		if idx == locator.NotFound {
			return nil, apperrors.ErrCategoryNotFound
		}
		return []store.Op{
			store.Set(store.Path(models.FieldSpendingCategories, idx, models.FieldCategoryName), newName),
			store.Set(store.Path(models.FieldSpendingCategories, idx, models.FieldBudgetLimit), newBudgetLimit),
			store.Set(store.Path(models.FieldSpendingCategories, idx, models.FieldStyles), withImage(ts.SpendingCategories[idx].Styles, image)),
		}, nil
	})
	if err != nil {
		return err
	}

	s.Audit.Log(ctx, AuditEntry{
		Event:        events.CategoryEdited,
		TeamSpaceID:  teamSpaceID,
		ResourceType: ResourceCategory,
		ResourceID:   categoryID,
		Version:      version,
		Changes:      map[string]any{"spendingCategoryName": newName, "budgetLimit": newBudgetLimit},
	})
	return nil
}

// DeleteSpendingCategory removes the category and every transaction in it.
func (s *categoryService) DeleteSpendingCategory(ctx context.Context, teamSpaceID, categoryID string) error {
	version, err := s.mutate(ctx, "deleteSpendingCategory", teamSpaceID, func(ts *models.TeamSpace) ([]store.Op, error) {
		idx := locator.CategoryIndex(ts, categoryID)
		if idx == locator.NotFound {
			return nil, apperrors.ErrCategoryNotFound
		}
		return []store.Op{store.Remove(store.Path(models.FieldSpendingCategories, idx))}, nil
	})
	if err != nil {
		return err
	}

	s.Audit.Log(ctx, AuditEntry{
		Event:        events.CategoryDeleted,
		TeamSpaceID:  teamSpaceID,
		ResourceType: ResourceCategory,
		ResourceID:   categoryID,
		Version:      version,
	})
	return nil
}

// ChangeBudgetLimit replaces only the budget limit.
func (s *categoryService) ChangeBudgetLimit(ctx context.Context, teamSpaceID, categoryID string, newBudgetLimit decimal.Decimal) error {
	version, err := s.mutate(ctx, "changeBudgetLimit", teamSpaceID, func(ts *models.TeamSpace) ([]store.Op, error) {
		idx := locator.CategoryIndex(ts, categoryID)
		if idx == locator.NotFound {
			return nil, apperrors.ErrCategoryNotFound
		}
		return []store.Op{
			store.Set(store.Path(models.FieldSpendingCategories, idx, models.FieldBudgetLimit), newBudgetLimit),
		}, nil
	})
	if err != nil {
		return err
	}

	s.Audit.Log(ctx, AuditEntry{
		Event:        events.BudgetLimitChanged,
		TeamSpaceID:  teamSpaceID,
		ResourceType: ResourceCategory,
		ResourceID:   categoryID,
		Version:      version,
		Changes:      map[string]any{"budgetLimit": newBudgetLimit},
	})
	return nil
}

// GetAllSpendingCategories returns categories in creation order.
func (s *categoryService) GetAllSpendingCategories(ctx context.Context, teamSpaceID string) ([]models.SpendingCategory, error) {
	ts, err := s.fetch(ctx, teamSpaceID)
	if err != nil {
		return nil, err
	}
	return ts.SpendingCategories, nil
}

// GetSpendingCategoryByID returns one category.
func (s *categoryService) GetSpendingCategoryByID(ctx context.Context, teamSpaceID, categoryID string) (*models.SpendingCategory, error) {
	ts, err := s.fetch(ctx, teamSpaceID)
	if err != nil {
		return nil, err
	}
	idx := locator.CategoryIndex(ts, categoryID)
	if idx == locator.NotFound {
		return nil, apperrors.ErrCategoryNotFound
	}
	return &ts.SpendingCategories[idx], nil
}

// GetSpendingCategoryStyles returns the category's presentation metadata.
func (s *categoryService) GetSpendingCategoryStyles(ctx context.Context, teamSpaceID, categoryID string) (models.Styles, error) {
	c, err := s.GetSpendingCategoryByID(ctx, teamSpaceID, categoryID)
	if err != nil {
		return nil, err
	}
	return c.Styles, nil
}

// withImage copies styles and sets its image.
func withImage(styles models.Styles, image string) models.Styles {
	out := make(models.Styles, len(styles)+1)
	for k, v := range styles {
		out[k] = v
	}
	out[models.StyleImage] = image
	return out
}
