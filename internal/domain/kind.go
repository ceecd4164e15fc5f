package domain

import "fmt"

// AdjustmentKind is a closed set. Parsing rejects anything outside it so a
// misspelled kind coming out of the store is an error, not a dropped bucket.
type AdjustmentKind string

const (
	KindBonus   AdjustmentKind = "bonus"
	KindFine    AdjustmentKind = "fine"
	KindAdvance AdjustmentKind = "advance"
	KindDebt    AdjustmentKind = "debt"
)

func ParseAdjustmentKind(s string) (AdjustmentKind, error) {
	switch AdjustmentKind(s) {
	case KindBonus, KindFine, KindAdvance, KindDebt:
		return AdjustmentKind(s), nil
	default:
		return "", fmt.Errorf("unknown adjustment kind %q", s)
	}
}
