package entity

import (
	"time"
)

type Game struct {
	ID          string    `json:"id" firestore:"id"`
	Name        string    `json:"name" firestore:"name"`
	Description string    `json:"description" firestore:"description"`
	Image       string    `json:"image,omitempty" firestore:"image,omitempty"`
	CreatedAt   time.Time `json:"created_at" firestore:"createdAt"`
}
