package engine

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/sirupsen/logrus"

	"github.com/gabrielius837/rps-contract/inter"
	"github.com/gabrielius837/rps-contract/rps/move"
)

// EventSink receives state-change notifications. Events are observational
// only: no operation depends on a prior event having been observed, and a
// sink must not call back into the engine.
type EventSink interface {
	// GameUpdated fires on every state transition of a game.
	GameUpdated(id inter.GameID, state GameState)

	// ValidatedMoves fires when a round resolves, carrying the decoded
	// moves of both players for the round that just ended.
	ValidatedMoves(id inter.GameID, round uint32, challenger move.Move, opponent move.Move)

	// NewReferral fires when an address opts in as a referral beneficiary.
	NewReferral(addr common.Address)
}

// LogSink emits events as structured log records. It is the production sink.
type LogSink struct {
	Log logrus.FieldLogger
}

// NewLogSink wraps a logrus logger into an EventSink. A nil logger falls back
// to the logrus standard logger.
func NewLogSink(log logrus.FieldLogger) *LogSink {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &LogSink{Log: log}
}

func (s *LogSink) GameUpdated(id inter.GameID, state GameState) {
	s.Log.WithFields(logrus.Fields{
		"game":  id,
		"state": state.String(),
	}).Info("game updated")
}

func (s *LogSink) ValidatedMoves(id inter.GameID, round uint32, challenger move.Move, opponent move.Move) {
	s.Log.WithFields(logrus.Fields{
		"game":       id,
		"round":      round,
		"challenger": challenger.String(),
		"opponent":   opponent.String(),
	}).Info("validated moves")
}

func (s *LogSink) NewReferral(addr common.Address) {
	s.Log.WithField("address", addr.Hex()).Info("new referral")
}

// nopSink drops every event. Used when the engine is constructed without a
// sink.
type nopSink struct{}

func (nopSink) GameUpdated(inter.GameID, GameState)                       {}
func (nopSink) ValidatedMoves(inter.GameID, uint32, move.Move, move.Move) {}
func (nopSink) NewReferral(common.Address)                                {}
