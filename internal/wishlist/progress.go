package wishlist

import (
	"github.com/shopspring/decimal"

	"github.com/wishboard/wishboard-backend/pkg/enums"
	pkgerrors "github.com/wishboard/wishboard-backend/pkg/errors"
)

// ProgressMode selects what a progress bucket accumulates.
type ProgressMode string

const (
	ProgressModeMoney ProgressMode = "money"
	ProgressModeUnits ProgressMode = "units"
)

// ParseProgressMode converts raw input into a ProgressMode; empty input
// defaults to money.
func ParseProgressMode(value string) (ProgressMode, error) {
	switch ProgressMode(value) {
	case "":
		return ProgressModeMoney, nil
	case ProgressModeMoney:
		return ProgressModeMoney, nil
	case ProgressModeUnits:
		return ProgressModeUnits, nil
	}
	return "", pkgerrors.New(pkgerrors.CodeValidation, "invalid progress mode")
}

// ProgressBucket is one status slice of the board's progress view.
type ProgressBucket struct {
	Status  enums.ItemStatus `json:"status"`
	Value   decimal.Decimal  `json:"value"`
	Percent float64          `json:"percent"`
}

// ProgressSummary is the derived read-side view: one bucket per status plus
// the grand total. It carries no persisted state and is recomputed per call.
type ProgressSummary struct {
	Mode    ProgressMode     `json:"mode"`
	Buckets []ProgressBucket `json:"buckets"`
	Total   decimal.Decimal  `json:"total"`
}

// Summarize accumulates the collection into per-status buckets. In money mode
// a non-numeric price contributes zero; in units mode every item counts as
// one. Percentages are zero across the board when the grand total is zero.
func Summarize(items []Item, mode ProgressMode) ProgressSummary {
	totals := map[enums.ItemStatus]decimal.Decimal{}
	for _, status := range enums.ItemStatuses() {
		totals[status] = decimal.Zero
	}

	for _, item := range items {
		if !item.Status.IsValid() {
			continue
		}
		switch mode {
		case ProgressModeUnits:
			totals[item.Status] = totals[item.Status].Add(decimal.NewFromInt(1))
		default:
			totals[item.Status] = totals[item.Status].Add(parseMoney(item.Price))
		}
	}

	grand := decimal.Zero
	for _, status := range enums.ItemStatuses() {
		grand = grand.Add(totals[status])
	}

	hundred := decimal.NewFromInt(100)
	buckets := make([]ProgressBucket, 0, len(totals))
	for _, status := range enums.ItemStatuses() {
		percent := 0.0
		if !grand.IsZero() {
			percent = totals[status].Div(grand).Mul(hundred).Round(1).InexactFloat64()
		}
		buckets = append(buckets, ProgressBucket{
			Status:  status,
			Value:   totals[status],
			Percent: percent,
		})
	}

	return ProgressSummary{Mode: mode, Buckets: buckets, Total: grand}
}

func parseMoney(price FlexibleString) decimal.Decimal {
	value, err := decimal.NewFromString(price.String())
	if err != nil {
		return decimal.Zero
	}
	return value
}
