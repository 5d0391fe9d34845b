package models

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlaceholderImage is used when a recipe is created without an image URL.
const PlaceholderImage = "https://via.placeholder.com/300"

// StringList is an ordered list of strings that also accepts a single
// newline-separated string on the JSON boundary. An older client variant
// sent instructions as one string; the canonical representation is the
// ordered list.
type StringList []string

func (s *StringList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*s = list
		return nil
	}
	var single string
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}
	*s = SplitLines(single)
	return nil
}

type Recipe struct {
	ID           primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Title        string             `json:"title" bson:"title"`
	Description  string             `json:"description" bson:"description"`
	Cuisine      string             `json:"cuisine" bson:"cuisine"`
	PrepTime     int                `json:"prepTime" bson:"prepTime"`
	CookTime     int                `json:"cookTime,omitempty" bson:"cookTime,omitempty"`
	Servings     int                `json:"servings,omitempty" bson:"servings,omitempty"`
	Ingredients  []string           `json:"ingredients" bson:"ingredients"`
	Instructions StringList         `json:"instructions" bson:"instructions"`
	Categories   []string           `json:"categories" bson:"categories"`
	Image        string             `json:"image" bson:"image"`
	UserID       string             `json:"userId" bson:"userId"`
	UserName     string             `json:"userName" bson:"userName"`
	Likes        int                `json:"likes" bson:"likes"`
	LikedBy      []string           `json:"likedBy" bson:"likedBy"`
	CreatedAt    time.Time          `json:"createdAt" bson:"createdAt"`
}

// Normalize trims text fields, drops empty ingredient/instruction entries,
// dedupes categories while keeping their insertion order, and applies the
// image placeholder.
func (r *Recipe) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
	r.Cuisine = strings.TrimSpace(r.Cuisine)
	r.Ingredients = cleanList(r.Ingredients)
	r.Instructions = cleanList(r.Instructions)
	r.Categories = dedupe(cleanList(r.Categories))
	if strings.TrimSpace(r.Image) == "" {
		r.Image = PlaceholderImage
	}
}

// Validate checks the fields a client must supply on creation.
func (r *Recipe) Validate() error {
	switch {
	case r.Title == "":
		return errors.New("title is required")
	case r.Description == "":
		return errors.New("description is required")
	case r.Cuisine == "":
		return errors.New("cuisine is required")
	case r.PrepTime <= 0:
		return errors.New("prepTime must be a positive number of minutes")
	case r.CookTime < 0:
		return errors.New("cookTime cannot be negative")
	case r.Servings < 0:
		return errors.New("servings cannot be negative")
	case len(r.Ingredients) == 0:
		return errors.New("at least one ingredient is required")
	case len(r.Instructions) == 0:
		return errors.New("at least one instruction is required")
	}
	return nil
}

// SplitLines turns a newline-separated block into trimmed, non-empty lines.
func SplitLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func cleanList(in []string) []string {
	var out []string
	for _, v := range in {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func dedupe(in []string) []string {
	seen := make(map[string]bool, len(in))
	var out []string
	for _, v := range in {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
