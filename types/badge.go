package types

import (
	"fmt"
	"strconv"
)

// BadgeID identifies an ERC1155 badge held by delegates. A non-zero balance of a badge is
// the only thing that grants a signer a role.
type BadgeID uint64

func (b BadgeID) String() string {
	return strconv.FormatUint(uint64(b), 10)
}

// BadgeRole names the purpose a badge is used for.
type BadgeRole string

const (
	RoleTreasuryDelegate        BadgeRole = "treasury-delegate"
	RoleReserveDelegate         BadgeRole = "reserve-delegate"
	RoleTreasuryVetoDelegate    BadgeRole = "treasury-veto-delegate"
	RoleReserveVetoDelegate     BadgeRole = "reserve-veto-delegate"
	RoleKolektivoMultisigMember BadgeRole = "kolektivo-multisig-member"
	RoleLocalMultisigMember     BadgeRole = "local-multisig-member"
)

// BadgeSet maps roles to the badge ids a badger contract issues for them.
type BadgeSet map[BadgeRole]BadgeID

// Get returns the badge id for a role.
func (s BadgeSet) Get(role BadgeRole) (BadgeID, error) {
	id, ok := s[role]
	if !ok {
		return 0, fmt.Errorf("no badge configured for role %q", role)
	}

	return id, nil
}

// IDs resolves several roles at once, preserving order.
func (s BadgeSet) IDs(roles ...BadgeRole) ([]BadgeID, error) {
	ids := make([]BadgeID, 0, len(roles))
	for _, r := range roles {
		id, err := s.Get(r)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, nil
}
