package entity

import (
	"time"
)

type Guide struct {
	ID             string    `json:"id" firestore:"id"`
	Title          string    `json:"title" firestore:"title"`
	Content        string    `json:"content" firestore:"content"`
	AuthorID       string    `json:"author_id" firestore:"authorId"`
	AuthorName     string    `json:"author_name" firestore:"authorName"`
	AuthorVerified bool      `json:"author_verified" firestore:"authorVerified"`
	GameID         string    `json:"game_id" firestore:"gameId"`
	LikesCount     int       `json:"likes_count" firestore:"likesCount"`
	CreatedAt      time.Time `json:"created_at" firestore:"createdAt"`
}
