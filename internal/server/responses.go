package server

import (
	"time"

	"plume/internal/models"
)

// API responses render authors as usernames rather than nested user objects.
// The username is the public identifier; numeric IDs stay internal except as
// resource keys.

type postResponse struct {
	ID      uint      `json:"id"`
	Author  string    `json:"author"`
	Text    string    `json:"text"`
	GroupID *uint     `json:"group"`
	// Image is a pointer so a post without one serializes as null, the same
	// shape clients get for a missing group.
	Image   *string   `json:"image"`
	PubDate time.Time `json:"pub_date"`
}

type postListResponse struct {
	Count   int64          `json:"count"`
	Limit   int            `json:"limit"`
	Offset  int            `json:"offset"`
	Results []postResponse `json:"results"`
}

type commentResponse struct {
	ID      uint      `json:"id"`
	Author  string    `json:"author"`
	PostID  uint      `json:"post"`
	Text    string    `json:"text"`
	Created time.Time `json:"created"`
}

type followResponse struct {
	ID        uint      `json:"id"`
	User      string    `json:"user"`
	Following string    `json:"following"`
	CreatedAt time.Time `json:"created_at"`
}

func toPostResponse(p *models.Post) postResponse {
	var image *string
	if p.ImageURL != "" {
		image = &p.ImageURL
	}
	return postResponse{
		ID:      p.ID,
		Author:  p.User.Username,
		Text:    p.Text,
		GroupID: p.GroupID,
		Image:   image,
		PubDate: p.PubDate,
	}
}

func toPostResponses(posts []*models.Post) []postResponse {
	out := make([]postResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, toPostResponse(p))
	}
	return out
}

func toCommentResponse(c *models.Comment) commentResponse {
	return commentResponse{
		ID:      c.ID,
		Author:  c.User.Username,
		PostID:  c.PostID,
		Text:    c.Text,
		Created: c.Created,
	}
}

func toCommentResponses(comments []*models.Comment) []commentResponse {
	out := make([]commentResponse, 0, len(comments))
	for _, c := range comments {
		out = append(out, toCommentResponse(c))
	}
	return out
}

func toFollowResponse(f *models.Follow) followResponse {
	return followResponse{
		ID:        f.ID,
		User:      f.User.Username,
		Following: f.Following.Username,
		CreatedAt: f.CreatedAt,
	}
}

func toFollowResponses(follows []*models.Follow) []followResponse {
	out := make([]followResponse, 0, len(follows))
	for _, f := range follows {
		out = append(out, toFollowResponse(f))
	}
	return out
}
