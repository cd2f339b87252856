package entity

import (
	"time"
)

type User struct {
	ID        string    `json:"id" firestore:"uid"`
	Email     string    `json:"email" firestore:"email"`
	Username  string    `json:"username" firestore:"username"`
	Role      string    `json:"role" firestore:"role"`
	Verified  bool      `json:"verified" firestore:"verified"`
	PhotoURL  string    `json:"photo_url,omitempty" firestore:"photoURL,omitempty"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
}
