package valueobject

import "fmt"

// RiskLevel is an immutable value object representing the fraud risk classification
// of a claim. Levels are totally ordered by severity: LOW < MEDIUM < HIGH < CRITICAL.
type RiskLevel struct {
	value    string
	severity int
}

var (
	RiskLevelLow      = RiskLevel{value: "LOW", severity: 1}
	RiskLevelMedium   = RiskLevel{value: "MEDIUM", severity: 2}
	RiskLevelHigh     = RiskLevel{value: "HIGH", severity: 3}
	RiskLevelCritical = RiskLevel{value: "CRITICAL", severity: 4}
)

// RiskLevelFromString reconstructs a RiskLevel from its string representation.
func RiskLevelFromString(s string) (RiskLevel, error) {
	switch s {
	case "LOW":
		return RiskLevelLow, nil
	case "MEDIUM":
		return RiskLevelMedium, nil
	case "HIGH":
		return RiskLevelHigh, nil
	case "CRITICAL":
		return RiskLevelCritical, nil
	default:
		return RiskLevel{}, fmt.Errorf("invalid risk level: %s", s)
	}
}

// RiskLevelFromNumber maps a wire enum number (LOW=0 .. CRITICAL=3) to a RiskLevel.
func RiskLevelFromNumber(n int32) (RiskLevel, error) {
	switch n {
	case 0:
		return RiskLevelLow, nil
	case 1:
		return RiskLevelMedium, nil
	case 2:
		return RiskLevelHigh, nil
	case 3:
		return RiskLevelCritical, nil
	default:
		return RiskLevel{}, fmt.Errorf("invalid risk level number: %d", n)
	}
}

// String returns the string representation.
func (r RiskLevel) String() string {
	return r.value
}

// Number returns the wire enum number for this risk level.
func (r RiskLevel) Number() int32 {
	if r.IsZero() {
		return 0
	}
	return int32(r.severity - 1)
}

// Compare returns -1, 0 or +1 depending on whether r is less, equally or more severe than other.
func (r RiskLevel) Compare(other RiskLevel) int {
	switch {
	case r.severity < other.severity:
		return -1
	case r.severity > other.severity:
		return 1
	default:
		return 0
	}
}

// AtLeast reports whether r is at least as severe as other.
func (r RiskLevel) AtLeast(other RiskLevel) bool {
	return r.Compare(other) >= 0
}

// IsZero returns true if the RiskLevel has not been set.
func (r RiskLevel) IsZero() bool {
	return r.value == ""
}

// Equal checks equality with another RiskLevel.
func (r RiskLevel) Equal(other RiskLevel) bool {
	return r.value == other.value
}
