package catalog

import "time"

// Category classifies events (workshop, seminar, competition, ...)
type Category struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func (Category) TableName() string {
	return "categories"
}

type University struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:200;uniqueIndex;not null" json:"name"`
	City      string    `gorm:"size:100" json:"city"`
	CreatedAt time.Time `json:"created_at"`
}

func (University) TableName() string {
	return "universities"
}

type Faculty struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UniversityID uint      `gorm:"column:university_id;index;not null" json:"university_id"`
	Name         string    `gorm:"size:200;not null" json:"name"`
	CreatedAt    time.Time `json:"created_at"`
}

func (Faculty) TableName() string {
	return "faculties"
}

type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

type CreateUniversityRequest struct {
	Name string `json:"name" binding:"required"`
	City string `json:"city"`
}

type CreateFacultyRequest struct {
	UniversityID uint   `json:"university_id" binding:"required"`
	Name         string `json:"name" binding:"required"`
}
