package rps

import "math/big"

// Payout is the result of splitting a pot at settlement. The three shares
// always sum exactly to the pot that was split: owner and referral shares are
// floored, and any rounding remainder accrues to the winner.
type Payout struct {
	Winner   *big.Int
	Owner    *big.Int
	Referral *big.Int
}

// Total returns the sum of the three shares. By construction it equals the
// pot passed to SplitPot.
func (p Payout) Total() *big.Int {
	sum := new(big.Int).Add(p.Winner, p.Owner)
	return sum.Add(sum, p.Referral)
}

// SplitPot divides pot into winner, owner and referral shares using the given
// basis-point rates:
//
//	owner    = pot * ownerRate / 10000     (floor)
//	referral = pot * referralRate / 10000  (floor)
//	winner   = pot - owner - referral
//
// The pot is never cloned into the result, so callers may pass a pot they
// keep mutating; all share values are freshly allocated.
func SplitPot(pot *big.Int, ownerRate uint32, referralRate uint32) Payout {
	basis := big.NewInt(BasisPoints)

	owner := new(big.Int).Mul(pot, big.NewInt(int64(ownerRate)))
	owner.Div(owner, basis)

	referral := new(big.Int).Mul(pot, big.NewInt(int64(referralRate)))
	referral.Div(referral, basis)

	winner := new(big.Int).Sub(pot, owner)
	winner.Sub(winner, referral)

	return Payout{Winner: winner, Owner: owner, Referral: referral}
}
