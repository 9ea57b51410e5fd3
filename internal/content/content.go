// Package content defines the portfolio catalogue: skills and work experience,
// and the provider interface the web host reads them through.
package content

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"os"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"gopkg.in/yaml.v3"
)

const AllCategories = "all"

// Categories lists the skill filters in display order.
var Categories = []string{AllCategories, "programming", "web", "database", "tools", "frameworks"}

type Skill struct {
	ID          int64  `yaml:"id" json:"id"`
	Name        string `yaml:"name" json:"name"`
	Category    string `yaml:"category" json:"category"`
	Proficiency int    `yaml:"proficiency" json:"proficiency"` // 0..10
}

type Experience struct {
	ID          int64    `yaml:"id" json:"id"`
	Title       string   `yaml:"title" json:"title"`
	Company     string   `yaml:"company" json:"company"`
	Location    string   `yaml:"location" json:"location,omitempty"`
	StartDate   string   `yaml:"start_date" json:"start_date"` // YYYY-MM-DD
	EndDate     string   `yaml:"end_date" json:"end_date,omitempty"`
	Description string   `yaml:"description" json:"description"`
	Skills      []string `yaml:"skills" json:"skills,omitempty"`
	Current     bool     `yaml:"current" json:"current"`
}

// descriptionPolicy allows the inline markup an experience entry may use
// (links, emphasis, lists) and drops everything else.
var descriptionPolicy = bluemonday.UGCPolicy()

// DescriptionHTML renders the description with its inline markup sanitized.
func (e Experience) DescriptionHTML() template.HTML {
	return template.HTML(descriptionPolicy.Sanitize(e.Description))
}

func (e Experience) Validate() error {
	var missing []string
	if e.Title == "" {
		missing = append(missing, "title")
	}
	if e.Company == "" {
		missing = append(missing, "company")
	}
	if e.StartDate == "" {
		missing = append(missing, "start_date")
	}
	if e.Description == "" {
		missing = append(missing, "description")
	}
	if len(missing) > 0 {
		return fmt.Errorf("experience %q: missing %s", e.Title, strings.Join(missing, ", "))
	}
	return nil
}

// Provider lists catalogue entries. No pagination or filtering is implied.
type Provider interface {
	ListSkills(ctx context.Context) ([]Skill, error)
	ListExperience(ctx context.Context) ([]Experience, error)
}

// FilterSkills returns the skills in category, preserving order. The "all"
// category returns the input unchanged.
func FilterSkills(skills []Skill, category string) []Skill {
	if category == AllCategories || category == "" {
		return skills
	}
	out := make([]Skill, 0, len(skills))
	for _, s := range skills {
		if s.Category == category {
			out = append(out, s)
		}
	}
	return out
}

// KnownCategory reports whether category is one of Categories.
func KnownCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

// CategoryLabel is the button text for a category filter.
func CategoryLabel(category string) string {
	if category == AllCategories {
		return "All Skills"
	}
	if category == "" {
		return ""
	}
	return strings.ToUpper(category[:1]) + category[1:]
}

// Catalogue is the on-disk seed format.
type Catalogue struct {
	Skills     []Skill      `yaml:"skills"`
	Experience []Experience `yaml:"experience"`
}

var ErrEmptyCatalogue = errors.New("content: catalogue has no skills")

// Load reads a YAML catalogue and validates skill categories and experience
// entries.
func Load(path string) (*Catalogue, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Catalogue
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("content: parse %s: %w", path, err)
	}
	if len(c.Skills) == 0 {
		return nil, ErrEmptyCatalogue
	}
	for _, s := range c.Skills {
		if s.Category == AllCategories || !KnownCategory(s.Category) {
			return nil, fmt.Errorf("content: skill %q has unknown category %q", s.Name, s.Category)
		}
	}
	for _, e := range c.Experience {
		if err := e.Validate(); err != nil {
			return nil, err
		}
	}
	return &c, nil
}
