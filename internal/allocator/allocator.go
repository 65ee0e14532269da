// Package allocator derives store subnet addresses from store and VLAN
// numbers. The addressing scheme packs the decimal digits of the store
// number into the second and third octets of a 10.0.0.0/8 plan, with the
// VLAN decade digit appended in the third octet. The derivation is pure:
// the same inputs always produce the same address.
package allocator

import (
	"errors"
	"fmt"
)

// ErrInvalidAllocationInput is returned when a store or VLAN number falls
// outside the range the addressing scheme can encode without collision.
var ErrInvalidAllocationInput = errors.New("invalid allocation input")

const (
	// Netmask is the fixed mask for every derived subnet.
	Netmask = "255.255.255.0"

	// MaxStoreNumber is the largest store number the digit-packing scheme
	// encodes without octet overflow.
	MaxStoreNumber = 999

	// switch management host octets, applied to the VLAN 60 base subnet
	firstSwitchHost  = 30
	secondSwitchHost = 41
)

// DefaultVLANs returns the standard nine-slot VLAN allocation set.
func DefaultVLANs() []int {
	return []int{10, 20, 30, 40, 50, 60, 70, 80, 90}
}

// SVIName returns the conventional SVI interface name for a VLAN.
func SVIName(vlanNumber int) string {
	return fmt.Sprintf("vlan%d_svi", vlanNumber)
}

// DeriveIP derives the SVI gateway address for a store and VLAN.
//
// VLAN 10 maps to decade digit 1, VLAN 90 to 9. The store number's decimal
// digits fill the second octet and the leading positions of the third
// octet, with the decade digit in the last position of the third octet:
//
//	store 7, VLAN 30   -> 10.0.73.1
//	store 42, VLAN 10  -> 10.4.21.1
//	store 407, VLAN 90 -> 10.40.79.1
func DeriveIP(storeNumber, vlanNumber int) (string, error) {
	if storeNumber < 1 || storeNumber > MaxStoreNumber {
		return "", fmt.Errorf("%w: store number %d out of range [1, %d]", ErrInvalidAllocationInput, storeNumber, MaxStoreNumber)
	}
	if vlanNumber < 10 || vlanNumber > 90 || vlanNumber%10 != 0 {
		return "", fmt.Errorf("%w: VLAN %d not in allocation set {10, 20, ..., 90}", ErrInvalidAllocationInput, vlanNumber)
	}

	vlanDigit := vlanNumber / 10

	switch {
	case storeNumber < 10:
		return fmt.Sprintf("10.0.%d%d.1", storeNumber, vlanDigit), nil
	case storeNumber < 100:
		return fmt.Sprintf("10.%d.%d%d.1", storeNumber/10, storeNumber%10, vlanDigit), nil
	default:
		return fmt.Sprintf("10.%d%d.%d%d.1", storeNumber/100, (storeNumber/10)%10, storeNumber%10, vlanDigit), nil
	}
}

// SwitchManagementIPs derives the two switch management addresses for a
// store. Both live in the store's VLAN 60 subnet with fixed host octets.
func SwitchManagementIPs(storeNumber int) (string, string, error) {
	base, err := DeriveIP(storeNumber, 60)
	if err != nil {
		return "", "", err
	}

	// replace the trailing ".1" host octet
	prefix := base[:len(base)-2]
	return fmt.Sprintf("%s.%d", prefix, firstSwitchHost), fmt.Sprintf("%s.%d", prefix, secondSwitchHost), nil
}
