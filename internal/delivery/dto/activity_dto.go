package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateActivityRequest struct {
	Name        string   `json:"name" validate:"required,max=255"`
	Description string   `json:"description"`
	Category    string   `json:"category" validate:"max=100"`
	AgeRange    string   `json:"age_range" validate:"max=50"`
	Address     string   `json:"address" validate:"max=255"`
	City        string   `json:"city" validate:"max=100"`
	Postcode    string   `json:"postcode" validate:"max=20"`
	Price       string   `json:"price" validate:"max=20"`
	Image       string   `json:"image"`
	Featured    bool     `json:"featured"`
	Capacity    int      `json:"capacity" validate:"required,min=1"`
	Days        []string `json:"days" validate:"required,min=1,dive,required"`
	Times       []string `json:"times" validate:"required,min=1,dive,required"`
}

type UpdateActivityRequest struct {
	Name        string   `json:"name" validate:"omitempty,max=255"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	AgeRange    *string  `json:"age_range"`
	Address     *string  `json:"address"`
	City        *string  `json:"city"`
	Postcode    *string  `json:"postcode"`
	Price       *string  `json:"price"`
	Image       *string  `json:"image"`
	Featured    *bool    `json:"featured"`
	Capacity    *int     `json:"capacity" validate:"omitempty,min=1"`
	Days        []string `json:"days" validate:"omitempty,min=1,dive,required"`
	Times       []string `json:"times" validate:"omitempty,min=1,dive,required"`
	Status      string   `json:"status" validate:"omitempty,oneof=upcoming ongoing completed cancelled"`
}

// Response DTOs

type ActivityResponse struct {
	ID          uuid.UUID `json:"id"`
	ProviderID  uuid.UUID `json:"provider_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category,omitempty"`
	AgeRange    string    `json:"age_range,omitempty"`
	Address     string    `json:"address,omitempty"`
	City        string    `json:"city,omitempty"`
	Postcode    string    `json:"postcode,omitempty"`
	Price       string    `json:"price,omitempty"`
	Image       string    `json:"image,omitempty"`
	Featured    bool      `json:"featured"`
	Capacity    int       `json:"capacity"`
	Days        []string  `json:"days"`
	Times       []string  `json:"times"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ActivityListResponse struct {
	Activities []ActivityResponse `json:"activities"`
	Total      int                `json:"total"`
}
