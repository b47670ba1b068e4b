package ui

import (
	"fmt"
	"image"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/NimaJafariComp/NimaJafariComp.github.io/core/content"
	"github.com/NimaJafariComp/NimaJafariComp.github.io/internal/profile"
)

// PanelText returns the heading and body lines of a text section. stats may
// be nil while the profile fetch is outstanding.
func PanelText(id string, p *content.Portfolio, stats *profile.Stats) (string, []string) {
	var lines []string
	add := func(format string, a ...interface{}) { lines = append(lines, fmt.Sprintf(format, a...)) }

	switch id {
	case "home":
		add("%s", p.Hero.Subtitle)
		add("")
		for _, s := range p.Hero.Stats {
			add("%-10s %s", s.Value, s.Label)
		}
		if stats != nil {
			add("")
			add("GitHub: %s", stats.Summary())
			if stats.Bio != "" {
				add("%s", stats.Bio)
			}
		}
		return p.Hero.Title, lines
	case "about":
		lines = append(lines, p.About.Body...)
		if len(p.About.Interests) > 0 {
			add("")
			add("Interests: %s", strings.Join(p.About.Interests, ", "))
		}
		for _, f := range p.About.Facts {
			add("%s: %s", f.Key, f.Value)
		}
		return p.About.Title, lines
	case "work":
		for _, j := range p.Work.Items {
			add("%s @ %s  (%s)", j.Role, j.Org, j.When)
			for _, b := range j.Bullets {
				add("  - %s", b)
			}
			add("")
		}
		return p.Work.Title, lines
	case content.SectionMachines:
		add("%s", p.Machines.Subtitle)
		add("%s", p.Machines.Tip)
		return p.Machines.Title, lines
	case "projects":
		for _, pr := range p.Projects.Items {
			add("%s [%s]", pr.Name, pr.Badge)
			add("  %s", pr.Desc)
			if len(pr.Tags) > 0 {
				add("  %s", strings.Join(pr.Tags, " · "))
			}
			add("")
		}
		if p.Projects.Note != "" {
			add("%s", p.Projects.Note)
		}
		return p.Projects.Title, lines
	case "skills":
		for _, g := range p.Skills.Groups {
			add("%s: %s", g.Name, strings.Join(g.Items, ", "))
		}
		if p.Skills.Note != "" {
			add("")
			add("%s", p.Skills.Note)
		}
		return p.Skills.Title, lines
	case "cv":
		add("%s", p.CV.Subtitle)
		if p.Meta.ResumeURL != "" {
			add("")
			add("%s", p.Meta.ResumeURL)
		}
		return p.CV.Title, lines
	case "honors":
		for _, h := range p.Honors.Honors {
			add("* %s", h)
		}
		if len(p.Honors.Leadership) > 0 {
			add("")
		}
		for _, r := range p.Honors.Leadership {
			add("%s (%s)", r.Title, r.When)
			if r.Note != "" {
				add("  %s", r.Note)
			}
		}
		return p.Honors.Title, lines
	case "contact":
		add("%s", p.Contact.Note)
		add("")
		if p.Meta.Email != "" {
			add("Email: %s", p.Meta.Email)
		}
		for _, s := range p.Contact.Socials {
			add("%s: %s", s.Label, s.Href)
		}
		return p.Contact.Title, lines
	}
	return "", nil
}

// TextPanel draws one text section as a card with wrapped lines. Extra
// buttons (copy e-mail) are owned by the game and drawn on top.
type TextPanel struct {
	ID      string
	Reserve int // pixels kept free at the bottom of the card
	theme   *Theme
	r       image.Rectangle
}

func NewTextPanel(id string, th *Theme) *TextPanel { return &TextPanel{ID: id, theme: th} }

func (p *TextPanel) SetRect(r image.Rectangle) { p.r = r }

func (p *TextPanel) Rect() image.Rectangle { return p.r }

func (p *TextPanel) Draw(dst *ebiten.Image, c *content.Portfolio, stats *profile.Stats) {
	title, body := PanelText(p.ID, c, stats)
	card := insetRect(p.r, 24)
	CardStyle{Fill: p.theme.Card(0.8), Border: p.theme.Border()}.Draw(dst, card)
	drawText(dst, strings.ToUpper(title), card.Min.X+16, card.Min.Y+14)
	drawRect(dst, image.Rect(card.Min.X+16, card.Min.Y+32, card.Min.X+16+textWidth(title), card.Min.Y+33), p.theme.Accent(0.8), true)

	var lines []string
	for _, l := range body {
		lines = append(lines, wrapText(l, card.Dx()-32)...)
	}
	maxLines := (card.Dy() - 60 - p.Reserve) / (debugCharH + 3)
	if maxLines < 0 {
		maxLines = 0
	}
	if len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	drawLines(dst, lines, card.Min.X+16, card.Min.Y+44)
}
