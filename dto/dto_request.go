package dto

import "github.com/Hossain-Md-Shahriar/volunteer-management-server/model"

type ApplyRequestDTO struct {
	PostID     string          `json:"postId"`
	PostTitle  string          `json:"postTitle"`
	Volunteer  model.Volunteer `json:"volunteer"`
	Suggestion string          `json:"suggestion"`
}
