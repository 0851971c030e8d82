// Package core holds the primitives shared by every pallet: the numeric
// constraint used for balances, nonces and heights, checked arithmetic over it,
// and the generic block and extrinsic containers.
package core

import "cmp"

// Unsigned is satisfied by every unsigned integer type. Balances, nonces and block
// heights are instantiated with one of them by the runtime configuration.
type Unsigned interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uint
}

// Max returns the largest value representable by T.
func Max[T Unsigned]() T {
	return ^T(0)
}

// CheckedAdd returns a+b, or false if the sum is not representable by T.
func CheckedAdd[T Unsigned](a, b T) (T, bool) {
	if a > Max[T]()-b {
		return 0, false
	}
	return a + b, true
}

// CheckedSub returns a-b, or false if b is larger than a.
func CheckedSub[T Unsigned](a, b T) (T, bool) {
	if b > a {
		return 0, false
	}
	return a - b, true
}

// CheckedIncrement returns a+1, or false if a is already at the maximum.
func CheckedIncrement[T Unsigned](a T) (T, bool) {
	return CheckedAdd(a, 1)
}

// Ordered is an alias kept next to Unsigned so that pallets import a single
// package for their type constraints.
type Ordered = cmp.Ordered
