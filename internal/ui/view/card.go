package view

import (
	"html/template"
	"io"
	"time"

	"gamebrain/internal/domain/entity"
)

const previewRunes = 150

// GuideCard is the view model for one guide in a rendered list.
type GuideCard struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Preview    string `json:"preview"`
	AuthorName string `json:"author_name"`
	Verified   bool   `json:"verified"`
	GameName   string `json:"game_name,omitempty"`
	Likes      int    `json:"likes"`
	IsFavorite bool   `json:"is_favorite"`
	Liked      bool   `json:"liked"`
	Date       string `json:"date"`
}

type BuildCard struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Preview  string `json:"preview"`
	GameName string `json:"game_name,omitempty"`
	Date     string `json:"date"`
}

func NewGuideCard(g *entity.Guide, isFavorite, liked bool, now time.Time) GuideCard {
	author := g.AuthorName
	if author == "" {
		author = "Anonymous"
	}

	return GuideCard{
		ID:         g.ID,
		Title:      g.Title,
		Preview:    preview(g.Content, previewRunes),
		AuthorName: author,
		Verified:   g.AuthorVerified,
		Likes:      g.LikesCount,
		IsFavorite: isFavorite,
		Liked:      liked,
		Date:       TimeAgo(g.CreatedAt, now),
	}
}

func NewBuildCard(b *entity.Build, gameName string, now time.Time) BuildCard {
	return BuildCard{
		ID:       b.ID,
		Title:    b.Title,
		Preview:  preview(b.Description, 100),
		GameName: gameName,
		Date:     TimeAgo(b.CreatedAt, now),
	}
}

func preview(content string, max int) string {
	runes := []rune(content)
	if len(runes) <= max {
		return content
	}
	return string(runes[:max]) + "..."
}

var guideCardTmpl = template.Must(template.New("guideCard").Parse(`
{{- range . -}}
<article class="guide-card" data-id="{{.ID}}">
  <div class="guide-card-header">
    {{if .Verified}}<span class="badge-verified">&#10003; Verified</span>{{end}}
    <button class="btn-favorite{{if .IsFavorite}} active{{end}}" data-guide-id="{{.ID}}" data-action="favorite">{{if .IsFavorite}}&#9733;{{else}}&#9734;{{end}}</button>
  </div>
  <h3 class="guide-card-title">{{.Title}}</h3>
  <p class="guide-card-preview">{{.Preview}}</p>
  <footer class="guide-card-footer">
    <span class="guide-author">{{.AuthorName}}</span>
    <span class="guide-date">{{.Date}}</span>
    <button class="btn-like{{if .Liked}} liked{{end}}" data-guide-id="{{.ID}}" data-action="like">&#10084; <span class="like-count">{{.Likes}}</span></button>
  </footer>
</article>
{{- end -}}`))

// RenderGuideCards writes the HTML fragment for a card list. Wiring of
// the favorite/like buttons is via data-action attributes, not global
// callbacks.
func RenderGuideCards(w io.Writer, cards []GuideCard) error {
	return guideCardTmpl.Execute(w, cards)
}
