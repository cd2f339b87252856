package entity

import (
	"time"
)

// Favorite is the join entity between a user and a guide. At most one
// row should exist per (userId, guideId) pair, but the store does not
// enforce it; callers must tolerate duplicates left behind by races.
type Favorite struct {
	ID        string    `json:"id" firestore:"id"`
	UserID    string    `json:"user_id" firestore:"userId"`
	GuideID   string    `json:"guide_id" firestore:"guideId"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
}
