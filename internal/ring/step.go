package ring

import (
	"errors"
	"fmt"
)

var (
	ErrNoNextStep = errors.New("already at the last step")
	ErrNoPrevStep = errors.New("nothing left to undo")
)

// Step is a position in the fixed draw sequence. StepNone means nothing has
// been drawn yet.
type Step int

const (
	StepNone Step = iota - 1
	StepDrawRing
	StepDrawSelfNode
	StepDrawAllNodes
	StepSendPacket

	// StepCount is the number of real steps.
	StepCount = int(StepSendPacket) + 1
)

// Steps lists the sequence in order.
var Steps = [StepCount]Step{StepDrawRing, StepDrawSelfNode, StepDrawAllNodes, StepSendPacket}

func (s Step) String() string {
	switch s {
	case StepNone:
		return "none"
	case StepDrawRing:
		return "drawRing"
	case StepDrawSelfNode:
		return "drawSelfNode"
	case StepDrawAllNodes:
		return "drawAllNodes"
	case StepSendPacket:
		return "sendPacket"
	}
	return fmt.Sprintf("step(%d)", int(s))
}

func (s Step) Valid() bool { return s >= StepNone && s <= StepSendPacket }

// Next returns the step after s, or false at the end of the sequence.
func (s Step) Next() (Step, bool) {
	if s < StepNone || s >= StepSendPacket {
		return s, false
	}
	return s + 1, true
}

// Prev returns the step before s, or false if s is StepNone.
func (s Step) Prev() (Step, bool) {
	if s <= StepNone || s > StepSendPacket {
		return s, false
	}
	return s - 1, true
}
