package report

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Aggregator collects findings for one audit run. Every detail is recorded
// together with its category, so the overall list never holds a category
// without at least one detail behind it.
//
// Aggregator is not safe for concurrent use; the crawler only touches it
// from its control goroutine.
type Aggregator struct {
	log     *logrus.Entry
	seen    map[Category]bool
	overall []Category
	details []string
	pending []finding
}

type finding struct {
	cat    Category
	detail string
}

// NewAggregator creates an empty aggregator
func NewAggregator(log *logrus.Entry) *Aggregator {
	return &Aggregator{
		log:  log.WithField("component", "report"),
		seen: make(map[Category]bool),
	}
}

// Add records a finding.
func (a *Aggregator) Add(cat Category, format string, args ...interface{}) {
	detail := fmt.Sprintf(format, args...)
	a.record(cat, detail)
	a.log.WithField("category", cat.Title()).Debug(detail)
}

func (a *Aggregator) record(cat Category, detail string) {
	if !a.seen[cat] {
		a.seen[cat] = true
		a.overall = append(a.overall, cat)
	}
	a.details = append(a.details, detail)
}

// Defer holds a finding that only counts if Promote is called later.
func (a *Aggregator) Defer(cat Category, format string, args ...interface{}) {
	a.pending = append(a.pending, finding{cat: cat, detail: fmt.Sprintf(format, args...)})
}

// PendingCount returns the number of deferred findings not yet promoted.
func (a *Aggregator) PendingCount() int {
	return len(a.pending)
}

// Promote records all deferred findings and clears them.
func (a *Aggregator) Promote() {
	for _, f := range a.pending {
		a.record(f.cat, f.detail)
	}
	if len(a.pending) > 0 {
		a.log.Debugf("Promoted %d deferred findings", len(a.pending))
	}
	a.pending = nil
}

// Has reports whether cat was recorded.
func (a *Aggregator) Has(cat Category) bool {
	return a.seen[cat]
}

// Categories returns recorded categories in first-seen order.
func (a *Aggregator) Categories() []Category {
	return append([]Category(nil), a.overall...)
}

// Details returns all detail messages in the order they were recorded.
func (a *Aggregator) Details() []string {
	return append([]string(nil), a.details...)
}

// Analysis snapshots the findings for serialization.
func (a *Aggregator) Analysis() Analysis {
	overall := make([]string, 0, len(a.overall))
	for _, c := range a.overall {
		overall = append(overall, c.Title())
	}
	details := a.Details()
	if details == nil {
		details = []string{}
	}
	return Analysis{Overall: overall, Details: details}
}
