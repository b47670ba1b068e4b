// Package content holds the read-only portfolio record every view renders
// from. It is loaded once at startup and never mutated afterwards.
package content

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed content.yaml
var defaultYAML []byte

// ErrNoEntries is returned when the timeline section has no items.
var ErrNoEntries = errors.New("content: timeline has no entries")

type Link struct {
	Label string `yaml:"label" json:"label"`
	Href  string `yaml:"href" json:"href"`
}

type Meta struct {
	Name       string `yaml:"name" json:"name"`
	Location   string `yaml:"location" json:"location"`
	Email      string `yaml:"email" json:"email"`
	GitHubUser string `yaml:"github_user" json:"githubUser"`
	ResumeURL  string `yaml:"resume_url" json:"resumeUrl"`
}

type Theme struct {
	Label string `yaml:"label" json:"label"`
	Emoji string `yaml:"emoji" json:"emoji"`
	Hint  string `yaml:"hint" json:"hint"`
}

type Audio struct {
	Enabled bool   `yaml:"enabled" json:"enabled"`
	File    string `yaml:"file" json:"file"`
	Title   string `yaml:"title" json:"title"`
	Artist  string `yaml:"artist" json:"artist"`
	Note    string `yaml:"note" json:"note"`
}

type Stat struct {
	Label string `yaml:"label" json:"label"`
	Value string `yaml:"value" json:"value"`
}

type Hero struct {
	Title    string `yaml:"title" json:"title"`
	Subtitle string `yaml:"subtitle" json:"subtitle"`
	Stats    []Stat `yaml:"stats" json:"stats"`
}

type Fact struct {
	Key   string `yaml:"k" json:"k"`
	Value string `yaml:"v" json:"v"`
}

type About struct {
	Title     string   `yaml:"title" json:"title"`
	Body      []string `yaml:"body" json:"body"`
	Interests []string `yaml:"interests" json:"interests"`
	Facts     []Fact   `yaml:"facts" json:"facts"`
}

type Job struct {
	Role    string   `yaml:"role" json:"role"`
	Org     string   `yaml:"org" json:"org"`
	When    string   `yaml:"when" json:"when"`
	Bullets []string `yaml:"bullets" json:"bullets"`
	Links   []Link   `yaml:"links" json:"links"`
}

type Work struct {
	Title string `yaml:"title" json:"title"`
	Items []Job  `yaml:"items" json:"items"`
}

// TimelineEntry is one milestone of the flight timeline. Its identity is its
// position in Machines.Items.
type TimelineEntry struct {
	Year        int    `yaml:"year" json:"year"`
	Title       string `yaml:"title" json:"title"`
	Subtitle    string `yaml:"subtitle" json:"subtitle"`
	Description string `yaml:"desc" json:"desc"`
	Category    string `yaml:"category" json:"category"`
}

type Machines struct {
	Title    string          `yaml:"title" json:"title"`
	Subtitle string          `yaml:"subtitle" json:"subtitle"`
	Tip      string          `yaml:"tip" json:"tip"`
	Items    []TimelineEntry `yaml:"items" json:"items"`
}

type Project struct {
	Name  string   `yaml:"name" json:"name"`
	Badge string   `yaml:"badge" json:"badge"`
	Desc  string   `yaml:"desc" json:"desc"`
	Tags  []string `yaml:"tags" json:"tags"`
	Links []Link   `yaml:"links" json:"links"`
}

type Projects struct {
	Title string    `yaml:"title" json:"title"`
	Note  string    `yaml:"note" json:"note"`
	Items []Project `yaml:"items" json:"items"`
}

type SkillGroup struct {
	Name  string   `yaml:"name" json:"name"`
	Tone  string   `yaml:"tone" json:"tone"`
	Items []string `yaml:"items" json:"items"`
}

type Skills struct {
	Title  string       `yaml:"title" json:"title"`
	Note   string       `yaml:"note" json:"note"`
	Groups []SkillGroup `yaml:"groups" json:"groups"`
}

type CV struct {
	Title    string `yaml:"title" json:"title"`
	Subtitle string `yaml:"subtitle" json:"subtitle"`
}

type Role struct {
	Title string `yaml:"title" json:"title"`
	When  string `yaml:"when" json:"when"`
	Note  string `yaml:"note" json:"note"`
}

type Honors struct {
	Title      string   `yaml:"title" json:"title"`
	Honors     []string `yaml:"honors" json:"honors"`
	Leadership []Role   `yaml:"leadership" json:"leadership"`
}

type Contact struct {
	Title   string `yaml:"title" json:"title"`
	Note    string `yaml:"note" json:"note"`
	Socials []Link `yaml:"socials" json:"socials"`
}

// Portfolio is the whole content record.
type Portfolio struct {
	Meta     Meta             `yaml:"meta" json:"meta"`
	Themes   map[string]Theme `yaml:"themes" json:"themes"`
	Audio    Audio            `yaml:"audio" json:"audio"`
	Hero     Hero             `yaml:"hero" json:"hero"`
	About    About            `yaml:"about" json:"about"`
	Work     Work             `yaml:"work" json:"work"`
	Machines Machines         `yaml:"machines" json:"machines"`
	Projects Projects         `yaml:"projects" json:"projects"`
	Skills   Skills           `yaml:"skills" json:"skills"`
	CV       CV               `yaml:"cv" json:"cv"`
	Honors   Honors           `yaml:"honors" json:"honors"`
	Contact  Contact          `yaml:"contact" json:"contact"`
}

// Default returns the portfolio bundled with the binary.
func Default() (*Portfolio, error) {
	return Parse(defaultYAML)
}

// Load reads a YAML portfolio from path. An empty path means the bundled one.
func Load(path string) (*Portfolio, error) {
	if path == "" {
		return Default()
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("content: read %s: %w", path, err)
	}
	p, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("content: %s: %w", path, err)
	}
	return p, nil
}

// Parse decodes and validates a YAML portfolio.
func Parse(b []byte) (*Portfolio, error) {
	var p Portfolio
	if err := yaml.Unmarshal(b, &p); err != nil {
		return nil, fmt.Errorf("content: parse: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Validate checks the invariants the views rely on.
func (p *Portfolio) Validate() error {
	if len(p.Machines.Items) == 0 {
		return ErrNoEntries
	}
	for i, it := range p.Machines.Items {
		if strings.TrimSpace(it.Title) == "" {
			return fmt.Errorf("content: timeline entry %d has no title", i)
		}
	}
	return nil
}

// Timeline returns the milestone list in authored order.
func (p *Portfolio) Timeline() []TimelineEntry {
	return p.Machines.Items
}

// IndexOfYear returns the first entry with the given year, or -1.
func (p *Portfolio) IndexOfYear(year int) int {
	for i, it := range p.Machines.Items {
		if it.Year == year {
			return i
		}
	}
	return -1
}

// ThemeMeta returns the metadata for theme id, falling back to the id itself
// as label when the content doesn't describe it.
func (p *Portfolio) ThemeMeta(id string) Theme {
	if t, ok := p.Themes[id]; ok {
		return t
	}
	return Theme{Label: id}
}
