package anim

import (
	"github.com/solarlune/quaternions"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// RotationTween eases from one orientation to another over a fixed duration. The easing function shapes the
// interpolation parameter; the orientations themselves are always slerped, so every intermediate rotation stays a unit rotation.
type RotationTween struct {
	From, To quaternions.Quaternion
	tween    *gween.Tween
}

// NewRotationTween creates a RotationTween lasting duration seconds. A nil easing function means ease.Linear.
func NewRotationTween(from, to quaternions.Quaternion, duration float64, easing ease.TweenFunc) *RotationTween {
	if easing == nil {
		easing = ease.Linear
	}
	return &RotationTween{
		From:  from,
		To:    to,
		tween: gween.New(0, 1, float32(duration), easing),
	}
}

// Update advances the tween by dt seconds, returning the current rotation and whether the tween has finished.
func (rt *RotationTween) Update(dt float64) (quaternions.Quaternion, bool) {
	percent, finished := rt.tween.Update(float32(dt))
	return rt.From.Slerp(rt.To, float64(percent)), finished
}

// Set moves the tween to the given time in seconds, returning the rotation there and whether the tween has finished.
func (rt *RotationTween) Set(time float64) (quaternions.Quaternion, bool) {
	percent, finished := rt.tween.Set(float32(time))
	return rt.From.Slerp(rt.To, float64(percent)), finished
}

// Reset rewinds the tween to its start.
func (rt *RotationTween) Reset() {
	rt.tween.Reset()
}
