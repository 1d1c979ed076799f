package repository

import (
	"context"

	"github.com/Henry-56/ferreteria/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RubroRepository interface {
	Create(ctx context.Context, r *model.Rubro) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Rubro, error)
	List(ctx context.Context) ([]model.Rubro, error)
	Update(ctx context.Context, r *model.Rubro) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type rubroRepo struct{ db *gorm.DB }

func NewRubroRepository(db *gorm.DB) RubroRepository { return &rubroRepo{db: db} }

func (r *rubroRepo) Create(ctx context.Context, ru *model.Rubro) error {
	return r.db.WithContext(ctx).Create(ru).Error
}

func (r *rubroRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Rubro, error) {
	var ru model.Rubro
	err := r.db.WithContext(ctx).First(&ru, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &ru, nil
}

func (r *rubroRepo) List(ctx context.Context) ([]model.Rubro, error) {
	var rubros []model.Rubro
	err := r.db.WithContext(ctx).Where("activo = true").Order("nombre ASC").Find(&rubros).Error
	return rubros, err
}

func (r *rubroRepo) Update(ctx context.Context, ru *model.Rubro) error {
	return r.db.WithContext(ctx).Save(ru).Error
}

func (r *rubroRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Rubro{}).Where("id = ?", id).Update("activo", false).Error
}
