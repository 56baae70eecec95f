package dto

import "github.com/Hossain-Md-Shahriar/volunteer-management-server/model"

type CreatePostDTO struct {
	Title          string          `json:"postTitle"`
	Description    string          `json:"description"`
	Category       string          `json:"category"`
	Location       string          `json:"location"`
	Thumbnail      string          `json:"thumbnail"`
	Deadline       string          `json:"deadline"`
	SlotsRemaining int             `json:"slotsRemaining"`
	Organizer      model.Organizer `json:"organizer"`
}
