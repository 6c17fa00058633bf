package lendbook

import (
	"fmt"
	"slices"
	"strings"
)

// Trust scoring policy. These weights encode tunable product policy, not
// mechanical necessity; they are named here so each rule can be reasoned
// about and tested on its own.
const (
	baselineScore = 60
	minScore      = 1
	maxScore      = 100

	// maxFactors caps the explanatory factor list, in rule order.
	maxFactors = 5

	// Completed-loan bonuses.
	completedOnTimeBonus = 8 // last repayment on or before the due date
	completedLateBonus   = 3 // last repayment after the due date
	manualCloseBonus     = 5 // marked completed with zero repayments

	// Active-overdue loans.
	overduePenalty     = 15 // flat, per overdue loan
	overdueDecayStep   = 3  // one more point every three days late
	overdueDecayCap    = 20
	chronicOverdueDays = 30 // cumulative overdue days across all loans
	chronicPenalty     = 10

	// Punctuality ratio: on-time repayments over all repayments.
	punctualSample  = 3 // minimum repayments before the ratio is meaningful
	punctualHigh    = 0.9
	punctualLow     = 0.5
	punctualBonus   = 10
	punctualPenalty = 10

	// Late repayments.
	latePenaltyStep = 3
	latePenaltyCap  = 25

	// Fragmentation: an active loan repaid in many small pieces.
	fragmentThreshold = 5 // repayments on a single not-yet-completed loan
	fragmentPenalty   = 5

	// Volume and settlement across the whole history.
	volumeThreshold  = 3 // completed loans
	volumeBonus      = 5
	settlementSample = 2 // minimum loans before the ratio is meaningful
	settlementHigh   = 0.9
	settlementBonus  = 5
	settlementLow    = 0.2
	settlementFloor  = 1000 // total borrowed below which the low ratio is ignored
	settlementMalus  = 10
)

// Impact classifies how a factor moved the score.
type Impact string

const (
	Positive Impact = "positive"
	Negative Impact = "negative"
	Neutral  Impact = "neutral"
)

// Factor is one ranked explanation of the score.
type Factor struct {
	Label        string
	Impact       Impact
	DisplayValue string
}

// Event is one entry of the borrower's chronological history.
type Event struct {
	Date        Date
	Description string
	Status      string
}

// Event statuses.
const (
	StatusOpened  = "opened"
	StatusOnTime  = "on-time"
	StatusLate    = "late"
	StatusNeutral = "neutral"
)

// ScoreResult summarizes a borrower's repayment reliability.
type ScoreResult struct {
	Score   int      // 1..100
	Factors []Factor // capped to maxFactors, in rule order
	History []Event  // sorted by date, most recent first
}

// ScoreBorrower derives a trust score for the borrower identified by
// ownerID from the given loans, evaluated at asOf.
//
// It is a pure function of its input: identical input always yields an
// identical result (the evaluation instant is an explicit parameter, there
// is no hidden state and no randomness), so callers may memoize freely.
// Loans belonging to other owners are ignored.
func ScoreBorrower(ownerID string, loans []*Loan, asOf Date) ScoreResult {
	if asOf.IsZero() {
		asOf = Today()
	}

	var owned []*Loan
	for _, l := range loans {
		if l.OwnerID == ownerID {
			owned = append(owned, l)
		}
	}

	if len(owned) == 0 {
		return ScoreResult{
			Score:   baselineScore,
			Factors: []Factor{{Label: "New borrower, no lending history", Impact: Neutral, DisplayValue: fmt.Sprint(baselineScore)}},
		}
	}

	score := baselineScore
	var factors []Factor
	var history []Event

	addFactor := func(label string, delta int) {
		score += delta
		impact := Neutral
		display := fmt.Sprintf("%+d", delta)
		switch {
		case delta > 0:
			impact = Positive
		case delta < 0:
			impact = Negative
		}
		factors = append(factors, Factor{Label: label, Impact: impact, DisplayValue: display})
	}

	var onTimeCount, lateCount, totalRepayments int
	var completedCount int
	var totalBorrowed, totalRepaid Money
	var cumulativeOverdueDays int
	anyOverdue := false

	for _, l := range owned {
		history = append(history, Event{
			Date:        l.Start,
			Description: fmt.Sprintf("Borrowed %s", l.Principal),
			Status:      StatusOpened,
		})
		totalBorrowed = totalBorrowed.Add(l.Principal)
		totalRepaid = totalRepaid.Add(l.PaidAmount())

		for _, r := range l.Repayments {
			totalRepayments++
			status := StatusLate
			if l.onTime(r.Date) {
				status = StatusOnTime
				onTimeCount++
			} else {
				lateCount++
			}
			history = append(history, Event{
				Date:        r.Date,
				Description: fmt.Sprintf("Repaid %s", r.Amount),
				Status:      status,
			})
		}

		if l.Completed {
			completedCount++
			switch {
			case len(l.Repayments) == 0:
				addFactor(fmt.Sprintf("Loan %s settled manually", loanRef(l)), manualCloseBonus)
			case l.onTime(l.lastRepaymentDate()):
				addFactor(fmt.Sprintf("Loan %s completed on time", loanRef(l)), completedOnTimeBonus)
			default:
				addFactor(fmt.Sprintf("Loan %s completed late", loanRef(l)), completedLateBonus)
			}
			continue
		}

		if l.overdue(asOf) {
			anyOverdue = true
			daysLate := asOf.Sub(l.Due)
			cumulativeOverdueDays += daysLate
			decay := daysLate / overdueDecayStep
			if decay > overdueDecayCap {
				decay = overdueDecayCap
			}
			addFactor(fmt.Sprintf("Loan %s overdue by %d days", loanRef(l), daysLate), -(overduePenalty + decay))
		}
	}

	if totalRepayments >= punctualSample {
		ratio := float64(onTimeCount) / float64(totalRepayments)
		switch {
		case ratio >= punctualHigh:
			addFactor("Excellent repayment punctuality", punctualBonus)
		case ratio <= punctualLow:
			addFactor("Poor repayment punctuality", -punctualPenalty)
		}
	}

	if lateCount > 0 {
		penalty := lateCount * latePenaltyStep
		if penalty > latePenaltyCap {
			penalty = latePenaltyCap
		}
		addFactor(fmt.Sprintf("%d late repayments", lateCount), -penalty)
	}

	if anyOverdue && cumulativeOverdueDays > chronicOverdueDays {
		addFactor("Chronically overdue", -chronicPenalty)
	}

	for _, l := range owned {
		if !l.Completed && len(l.Repayments) > fragmentThreshold {
			addFactor(fmt.Sprintf("Loan %s fragmented into %d repayments", loanRef(l), len(l.Repayments)), -fragmentPenalty)
		}
	}

	if completedCount > volumeThreshold {
		addFactor(fmt.Sprintf("%d loans completed", completedCount), volumeBonus)
	}

	if len(owned) >= settlementSample && totalBorrowed.IsPositive() {
		ratio := totalRepaid.AsFloat() / totalBorrowed.AsFloat()
		switch {
		case ratio > settlementHigh:
			addFactor("Nearly everything borrowed is repaid", settlementBonus)
		case ratio < settlementLow && totalBorrowed.AsFloat() > settlementFloor && anyOverdue:
			addFactor("Large outstanding debt barely repaid", -settlementMalus)
		}
	}

	if score < minScore {
		score = minScore
	}
	if score > maxScore {
		score = maxScore
	}
	if len(factors) > maxFactors {
		factors = factors[:maxFactors]
	}

	// Most recent first. Ties break on description so the order is stable
	// for identical input.
	slices.SortStableFunc(history, func(a, b Event) int {
		if d := b.Date.Sub(a.Date); d != 0 {
			return d
		}
		return strings.Compare(a.Description, b.Description)
	})

	return ScoreResult{Score: score, Factors: factors, History: history}
}

// loanRef names a loan in a factor label: its memo when set, else its ID.
func loanRef(l *Loan) string {
	if l.Memo != "" {
		return l.Memo
	}
	return l.ID
}
