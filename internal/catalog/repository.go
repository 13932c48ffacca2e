package catalog

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	ListCategories(ctx context.Context) ([]Category, error)
	ListUniversities(ctx context.Context) ([]University, error)
	ListFaculties(ctx context.Context, universityID uint) ([]Faculty, error)
	GetCategory(ctx context.Context, id uint) (*Category, error)
	GetUniversity(ctx context.Context, id uint) (*University, error)
	GetFaculty(ctx context.Context, id uint) (*Faculty, error)
	CreateCategory(ctx context.Context, c *Category) error
	CreateUniversity(ctx context.Context, u *University) error
	CreateFaculty(ctx context.Context, f *Faculty) error
	SeedDefaults(ctx context.Context) error
}

type repository struct{ db *gorm.DB }

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

func (r *repository) ListCategories(ctx context.Context) ([]Category, error) {
	var out []Category
	err := r.db.WithContext(ctx).Order("name").Find(&out).Error
	return out, err
}

func (r *repository) ListUniversities(ctx context.Context) ([]University, error) {
	var out []University
	err := r.db.WithContext(ctx).Order("name").Find(&out).Error
	return out, err
}

func (r *repository) ListFaculties(ctx context.Context, universityID uint) ([]Faculty, error) {
	var out []Faculty
	q := r.db.WithContext(ctx).Order("name")
	if universityID != 0 {
		q = q.Where("university_id = ?", universityID)
	}
	err := q.Find(&out).Error
	return out, err
}

func (r *repository) GetCategory(ctx context.Context, id uint) (*Category, error) {
	var c Category
	err := r.db.WithContext(ctx).First(&c, id).Error
	return &c, err
}

func (r *repository) GetUniversity(ctx context.Context, id uint) (*University, error) {
	var u University
	err := r.db.WithContext(ctx).First(&u, id).Error
	return &u, err
}

func (r *repository) GetFaculty(ctx context.Context, id uint) (*Faculty, error) {
	var f Faculty
	err := r.db.WithContext(ctx).First(&f, id).Error
	return &f, err
}

func (r *repository) CreateCategory(ctx context.Context, c *Category) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *repository) CreateUniversity(ctx context.Context, u *University) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *repository) CreateFaculty(ctx context.Context, f *Faculty) error {
	if err := r.db.WithContext(ctx).First(&University{}, f.UniversityID).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(f).Error
}

// SeedDefaults inserts the baseline lookup rows; reruns are no-ops.
func (r *repository) SeedDefaults(ctx context.Context) error {
	categories := []Category{
		{Name: "Workshop"},
		{Name: "Seminar"},
		{Name: "Competition"},
		{Name: "Conference"},
		{Name: "Sports"},
		{Name: "Cultural"},
	}
	for _, c := range categories {
		if err := r.db.WithContext(ctx).
			Where("name = ?", c.Name).
			FirstOrCreate(&c).Error; err != nil {
			return err
		}
	}
	return nil
}
