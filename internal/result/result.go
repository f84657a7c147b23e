// Package result derives performance tiers and certificate data from a finished quiz.
package result

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/verte-zerg/cyberguard/internal/model"
)

// Tier is a performance classification.
type Tier int

const (
	NeedsTraining Tier = iota
	Good
	Expert
	Champion
)

// String returns the tier identifier.
func (t Tier) String() string {
	switch t {
	case Champion:
		return "Champion"
	case Expert:
		return "Expert"
	case Good:
		return "Good"
	default:
		return "NeedsTraining"
	}
}

// Label returns the headline shown for the tier.
func (t Tier) Label() string {
	switch t {
	case Champion:
		return "CYBER CHAMPION"
	case Expert:
		return "SECURITY EXPERT"
	case Good:
		return "GOOD EFFORT"
	default:
		return "NEEDS TRAINING"
	}
}

// Percentage returns score/total*100. total must be >= 1.
func Percentage(score, total int) float64 {
	return float64(score) / float64(total) * 100
}

// Classify maps a score to a tier. total must be >= 1.
func Classify(score, total int) Tier {
	p := Percentage(score, total)
	switch {
	case p == 100:
		return Champion
	case p >= 80:
		return Expert
	case p >= 60:
		return Good
	default:
		return NeedsTraining
	}
}

// Certificate is the data handed to certificate exporters.
type Certificate struct {
	ID         string
	Player     string
	Difficulty string
	Score      int
	Total      int
	Percentage float64
	Tier       Tier
	IssuedAt   time.Time
}

// NewCertificate builds certificate data for a finished quiz.
func NewCertificate(player string, res model.Result, now time.Time) Certificate {
	return Certificate{
		ID:         CertificateID(now),
		Player:     strings.ToUpper(player),
		Difficulty: strings.ToUpper(res.Difficulty),
		Score:      res.Score,
		Total:      res.Total,
		Percentage: Percentage(res.Score, res.Total),
		Tier:       Classify(res.Score, res.Total),
		IssuedAt:   now,
	}
}

// CertificateID encodes now as CG-<base36 millis>.
func CertificateID(now time.Time) string {
	return "CG-" + strings.ToUpper(strconv.FormatInt(now.UnixMilli(), 36))
}

// Date formats the issue date, e.g. "March 4, 2025".
func (c Certificate) Date() string {
	return c.IssuedAt.Format("January 2, 2006")
}

// PercentText renders the percentage without trailing zeros.
func (c Certificate) PercentText() string {
	return FormatPercent(c.Percentage)
}

// FormatPercent renders p with at most one decimal and a percent sign.
func FormatPercent(p float64) string {
	return strconv.FormatFloat(math.Round(p*10)/10, 'f', -1, 64) + "%"
}
