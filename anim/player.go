package anim

import (
	"math"

	"github.com/solarlune/quaternions"
)

// FinishMode controls what a Player does when its playhead runs off either end of an Animation.
type FinishMode int

const (
	FinishModeLoop     FinishMode = iota // Loop on animation completion
	FinishModePingPong                   // Reverse on animation completion; if this is the case, the OnFinish() callback is called after two loops (one reversal)
	FinishModeStop                       // Stop on animation completion
)

// Player steps through an Animation over time, sampling the rotation of each of its Channels.
type Player struct {
	Animation  *Animation
	Playhead   float64
	PlaySpeed  float64
	Playing    bool
	FinishMode FinishMode
	OnFinish   func()

	rotations map[string]quaternions.Quaternion
}

// NewPlayer returns a new Player that stops once it reaches the end of an Animation.
func NewPlayer() *Player {
	return &Player{
		PlaySpeed:  1,
		FinishMode: FinishModeStop,
		rotations:  map[string]quaternions.Quaternion{},
	}
}

// Play starts the given Animation from the beginning, unless it's already the one playing.
func (ap *Player) Play(animation *Animation) {

	if ap.Animation != animation || !ap.Playing {
		ap.Animation = animation
		ap.Playhead = 0.0
		ap.Playing = true
		ap.sample()
	}

}

// Rotation returns the current rotation of the named Channel, and false if the playing Animation has no such Channel.
func (ap *Player) Rotation(channel string) (quaternions.Quaternion, bool) {
	rotation, ok := ap.rotations[channel]
	return rotation, ok
}

// Update advances the playhead by dt (in seconds) scaled by PlaySpeed and resamples every Channel.
func (ap *Player) Update(dt float64) {

	if !ap.Playing || ap.Animation == nil {
		return
	}

	ap.Playhead += dt * ap.PlaySpeed

	length := ap.Animation.Length

	if ap.Playhead <= length && ap.Playhead >= 0 {
		ap.sample()
		return
	}

	switch ap.FinishMode {

	case FinishModeLoop:

		if length <= 0 || math.IsInf(ap.Playhead, 0) || math.IsNaN(ap.Playhead) {
			ap.Playhead = 0
		} else {
			ap.Playhead = math.Mod(ap.Playhead, length)
			if ap.Playhead < 0 {
				ap.Playhead += length
			}
		}

		if ap.OnFinish != nil {
			ap.OnFinish()
		}

	case FinishModePingPong:

		if ap.Playhead > length {
			ap.Playhead = length
		} else {
			ap.Playhead = 0
			if ap.OnFinish != nil {
				ap.OnFinish()
			}
		}

		ap.PlaySpeed *= -1

	case FinishModeStop:

		if ap.Playhead > length {
			ap.Playhead = length
		} else {
			ap.Playhead = 0
		}

		ap.Playing = false

		if ap.OnFinish != nil {
			ap.OnFinish()
		}

	}

	ap.sample()

}

func (ap *Player) sample() {
	if ap.rotations == nil {
		ap.rotations = map[string]quaternions.Quaternion{}
	}
	clear(ap.rotations)
	for name, channel := range ap.Animation.Channels {
		ap.rotations[name] = channel.Rotation(ap.Playhead)
	}
}
