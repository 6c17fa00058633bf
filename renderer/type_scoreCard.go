package renderer

import (
	"fmt"

	"github.com/etnz/lendbook"
)

// ScoreCard is the view model for a borrower's trust score report.
type ScoreCard struct {
	Borrower string
	AsOf     string
	Score    int
	Factors  []FactorLine
	History  []EventLine
}

// FactorLine holds one ranked score explanation, display-ready.
type FactorLine struct {
	Label  string
	Impact string
	Value  string
}

// EventLine holds one history entry, display-ready.
type EventLine struct {
	Date        string
	Description string
	Status      string
}

// NewScoreCard builds the score report view model from a score result.
func NewScoreCard(ownerID string, r lendbook.ScoreResult, asOf lendbook.Date) *ScoreCard {
	card := &ScoreCard{
		Borrower: ownerID,
		AsOf:     asOf.String(),
		Score:    r.Score,
	}
	for _, f := range r.Factors {
		card.Factors = append(card.Factors, FactorLine{
			Label:  f.Label,
			Impact: impactGlyph(f.Impact),
			Value:  f.DisplayValue,
		})
	}
	for _, e := range r.History {
		card.History = append(card.History, EventLine{
			Date:        e.Date.String(),
			Description: e.Description,
			Status:      e.Status,
		})
	}
	return card
}

// impactGlyph maps an impact to its display marker.
func impactGlyph(i lendbook.Impact) string {
	switch i {
	case lendbook.Positive:
		return "🟢"
	case lendbook.Negative:
		return "🔴"
	default:
		return "⚪"
	}
}

// Grade maps the numeric score to a short human label.
func (c *ScoreCard) Grade() string {
	switch {
	case c.Score >= 80:
		return "excellent"
	case c.Score >= 60:
		return "good"
	case c.Score >= 40:
		return "uncertain"
	default:
		return "poor"
	}
}

// Title returns the report heading.
func (c *ScoreCard) Title() string {
	return fmt.Sprintf("Trust Score for %s on %s", c.Borrower, c.AsOf)
}
