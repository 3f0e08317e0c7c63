package usecase

import (
	"context"
	"strings"

	"github.com/iho/hosteltracker/internal/domain"
)

// CategoryUseCase manages spending categories.
type CategoryUseCase struct {
	ledger Ledger
	idGen  IDGenerator
}

// NewCategoryUseCase creates a new CategoryUseCase.
func NewCategoryUseCase(ledger Ledger, idGen IDGenerator) *CategoryUseCase {
	return &CategoryUseCase{
		ledger: ledger,
		idGen:  idGen,
	}
}

// AddCategoryInput represents input for creating a category.
type AddCategoryInput struct {
	Name     string
	IconName string
}

// ListCategories returns all categories in display order.
func (uc *CategoryUseCase) ListCategories(ctx context.Context) []domain.CategoryInfo {
	return uc.ledger.Snapshot().Categories
}

// AddCategory creates a category. Unknown icon keys are stored as the
// fallback icon.
func (uc *CategoryUseCase) AddCategory(ctx context.Context, input AddCategoryInput) (*domain.CategoryInfo, error) {
	icon := strings.TrimSpace(input.IconName)
	if !domain.IsKnownIcon(icon) {
		icon = domain.FallbackIconKey
	}

	category := domain.CategoryInfo{
		ID:       uc.idGen.Generate(),
		Name:     strings.TrimSpace(input.Name),
		IconName: icon,
	}

	if err := category.Validate(); err != nil {
		return nil, err
	}

	if _, err := uc.ledger.Apply(ctx, domain.AddCategory{Category: category}); err != nil {
		return nil, err
	}

	return &category, nil
}

// DeleteCategory removes a category. The last category cannot be removed.
func (uc *CategoryUseCase) DeleteCategory(ctx context.Context, id string) error {
	_, err := uc.ledger.Apply(ctx, domain.DeleteCategory{ID: id})
	return err
}
