package value_objects

import (
	"errors"
	"fmt"
	"strings"
)

// ContactRole labels a contact's relationship to the agent.
type ContactRole int

const (
	RoleOther ContactRole = iota
	RoleMarket
	RoleTradesperson
	RoleAgent
	RoleInvestor
	RoleBuyer
	RoleVendor
)

var (
	ErrUnknownContactRole = errors.New("unknown contact role")
)

var roleNames = map[ContactRole]string{
	RoleOther:        "other",
	RoleMarket:       "market",
	RoleTradesperson: "tradesperson",
	RoleAgent:        "agent",
	RoleInvestor:     "investor",
	RoleBuyer:        "buyer",
	RoleVendor:       "vendor",
}

var roleValues = map[string]ContactRole{
	"other":        RoleOther,
	"market":       RoleMarket,
	"tradesperson": RoleTradesperson,
	"agent":        RoleAgent,
	"investor":     RoleInvestor,
	"buyer":        RoleBuyer,
	"vendor":       RoleVendor,
}

var roleScores = map[ContactRole]float64{
	RoleOther:        20,
	RoleMarket:       30,
	RoleTradesperson: 40,
	RoleAgent:        50,
	RoleInvestor:     65,
	RoleBuyer:        70,
	RoleVendor:       80,
}

// ParseContactRole creates a ContactRole from a string.
func ParseContactRole(s string) (ContactRole, error) {
	r, ok := roleValues[strings.ToLower(s)]
	if !ok {
		return RoleOther, fmt.Errorf("%w: %q", ErrUnknownContactRole, s)
	}
	return r, nil
}

// String returns the string representation of the role.
func (r ContactRole) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return "unknown"
}

// IsValid returns true if the role is a known value.
func (r ContactRole) IsValid() bool {
	_, ok := roleNames[r]
	return ok
}

// Score returns the 0-100 factor score for the role.
func (r ContactRole) Score() (float64, error) {
	score, ok := roleScores[r]
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrUnknownContactRole, int(r))
	}
	return score, nil
}
