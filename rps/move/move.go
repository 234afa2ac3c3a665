// Package move implements the commit-reveal move codec.
//
// A move is hidden inside a 32-byte reveal blob: the low 2 bits of the last
// byte carry the move identifier and the remaining 254 bits are random. The
// commitment published during the commit phase is the keccak256 hash of that
// blob, so the opponent learns nothing about the move until the blob itself
// is revealed, yet cannot be cheated once it is: any reveal that does not
// hash back to the commitment is rejected.
//
// Everything in this package is pure and stateless so the codec can be tested
// in isolation from the game engine.
package move

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Move is a move identifier as encoded in the low 2 bits of a reveal blob.
//
// Illegal is a legal *encoding* but a losing play: a malicious-but-valid
// reveal may carry it, and it loses against every proper move.
type Move uint8

const (
	Illegal Move = iota
	Rock
	Paper
	Scissors
)

// moveMask selects the bits of the last blob byte that carry the move.
const moveMask = 0x03

func (m Move) String() string {
	switch m {
	case Illegal:
		return "illegal"
	case Rock:
		return "rock"
	case Paper:
		return "paper"
	case Scissors:
		return "scissors"
	default:
		return fmt.Sprintf("move(%d)", uint8(m))
	}
}

// Legal reports whether m is one of the three proper moves.
func (m Move) Legal() bool {
	return m == Rock || m == Paper || m == Scissors
}

// Result is the outcome of comparing two moves.
type Result uint8

const (
	Draw Result = iota
	FirstWins
	SecondWins
)

// ErrRevealMismatch is returned when a reveal blob does not hash to the
// commitment it is checked against.
var ErrRevealMismatch = errors.New("reveal does not match commitment")

// Seal binds m into a fresh reveal blob and returns the blob together with
// its keccak256 commitment. Randomness is drawn from rnd, or crypto/rand when
// rnd is nil.
func Seal(m Move, rnd io.Reader) (reveal common.Hash, commitment common.Hash, err error) {
	if rnd == nil {
		rnd = rand.Reader
	}
	if _, err = io.ReadFull(rnd, reveal[:]); err != nil {
		return common.Hash{}, common.Hash{}, fmt.Errorf("sealing move: %w", err)
	}
	reveal[common.HashLength-1] = reveal[common.HashLength-1]&^moveMask | byte(m&moveMask)
	return reveal, crypto.Keccak256Hash(reveal[:]), nil
}

// Commit returns the keccak256 commitment of an existing reveal blob.
func Commit(reveal common.Hash) common.Hash {
	return crypto.Keccak256Hash(reveal[:])
}

// Decode extracts the move identifier from a reveal blob without verifying
// it. Use Open when a commitment is available.
func Decode(reveal common.Hash) Move {
	return Move(reveal[common.HashLength-1] & moveMask)
}

// Open verifies reveal against commitment and decodes the move it carries.
// It fails with ErrRevealMismatch when the hash does not match; callers must
// still be prepared for a verified reveal to decode to Illegal.
func Open(reveal common.Hash, commitment common.Hash) (Move, error) {
	if crypto.Keccak256Hash(reveal[:]) != commitment {
		return Illegal, ErrRevealMismatch
	}
	return Decode(reveal), nil
}

// Beats reports whether m defeats other under standard precedence. Illegal
// never beats anything; every proper move beats Illegal.
func (m Move) Beats(other Move) bool {
	if !m.Legal() {
		return false
	}
	if !other.Legal() {
		return true
	}
	switch m {
	case Rock:
		return other == Scissors
	case Paper:
		return other == Rock
	case Scissors:
		return other == Paper
	}
	return false
}

// Outcome evaluates two move identifiers. Identical identifiers draw, which
// covers Illegal vs Illegal as well.
func Outcome(first Move, second Move) Result {
	switch {
	case first.Beats(second):
		return FirstWins
	case second.Beats(first):
		return SecondWins
	default:
		return Draw
	}
}
