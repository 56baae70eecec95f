package model

import (
	"go.mongodb.org/mongo-driver/v2/bson"
)

type Organizer struct {
	Name  string `json:"name" bson:"name"`
	Email string `json:"email" bson:"email"`
	Photo string `json:"photo,omitempty" bson:"photo,omitempty"`
}

// Post is a volunteer-need listing. SlotsRemaining is the live counter of
// unfilled capacity; it is mutated only through PostRepository.AdjustSlots
// and direct organizer edits.
type Post struct {
	ID             bson.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Title          string        `json:"postTitle" bson:"postTitle"`
	Description    string        `json:"description,omitempty" bson:"description,omitempty"`
	Category       string        `json:"category,omitempty" bson:"category,omitempty"`
	Location       string        `json:"location,omitempty" bson:"location,omitempty"`
	Thumbnail      string        `json:"thumbnail,omitempty" bson:"thumbnail,omitempty"`
	Deadline       string        `json:"deadline,omitempty" bson:"deadline,omitempty"`
	SlotsRemaining int           `json:"slotsRemaining" bson:"slotsRemaining"`
	Organizer      Organizer     `json:"organizer" bson:"organizer"`
}
