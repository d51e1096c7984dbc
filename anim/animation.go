// Package anim plays back rotation keyframes and eases between orientations.
package anim

import (
	"sort"

	"github.com/solarlune/quaternions"
)

// Interpolation selects how a Channel fills in the time between two keyframes.
type Interpolation int

const (
	InterpolationLinear Interpolation = iota // Spherical linear interpolation between keyframes
	InterpolationStep                        // Hold the previous keyframe until the next one is reached
)

// Keyframe is a rotation at a point in time (in seconds).
type Keyframe struct {
	Time     float64
	Rotation quaternions.Quaternion
}

// Channel is a track of rotation keyframes, usually driving a single named node.
type Channel struct {
	Name          string
	Keyframes     []Keyframe
	Interpolation Interpolation
}

// NewChannel creates a new, empty Channel with linear interpolation.
func NewChannel(name string) *Channel {
	return &Channel{
		Name:      name,
		Keyframes: []Keyframe{},
	}
}

// AddKeyframe adds a rotation keyframe at the given time, keeping the keyframes sorted by time.
func (channel *Channel) AddKeyframe(time float64, rotation quaternions.Quaternion) {
	index := sort.Search(len(channel.Keyframes), func(i int) bool { return channel.Keyframes[i].Time > time })
	channel.Keyframes = append(channel.Keyframes, Keyframe{})
	copy(channel.Keyframes[index+1:], channel.Keyframes[index:])
	channel.Keyframes[index] = Keyframe{Time: time, Rotation: rotation}
}

// Length returns the time of the Channel's last keyframe, or 0 if it has none.
func (channel *Channel) Length() float64 {
	if len(channel.Keyframes) == 0 {
		return 0
	}
	return channel.Keyframes[len(channel.Keyframes)-1].Time
}

// Rotation returns the Channel's rotation at the given time. Times before the first keyframe return the first keyframe's
// rotation, and times after the last return the last's. A Channel without keyframes returns the identity rotation.
func (channel *Channel) Rotation(time float64) quaternions.Quaternion {

	if len(channel.Keyframes) == 0 {
		return quaternions.IdentityQuaternion()
	}

	if first := channel.Keyframes[0]; time <= first.Time {
		return first.Rotation
	} else if last := channel.Keyframes[len(channel.Keyframes)-1]; time >= last.Time {
		return last.Rotation
	}

	next := sort.Search(len(channel.Keyframes), func(i int) bool { return channel.Keyframes[i].Time > time })

	first := channel.Keyframes[next-1]
	last := channel.Keyframes[next]

	if time == first.Time || channel.Interpolation == InterpolationStep {
		return first.Rotation
	}

	t := (time - first.Time) / (last.Time - first.Time)

	return first.Rotation.Slerp(last.Rotation, t)

}

// Animation is a named collection of Channels, keyed by the name of the node each one drives.
type Animation struct {
	Name     string
	Channels map[string]*Channel
	Length   float64 // Length of the animation in seconds
}

// NewAnimation creates a new, empty Animation.
func NewAnimation(name string) *Animation {
	return &Animation{
		Name:     name,
		Channels: map[string]*Channel{},
	}
}

// AddChannel creates a new Channel with the given name and adds it to the Animation, replacing any Channel of the same name.
func (animation *Animation) AddChannel(name string) *Channel {
	newChannel := NewChannel(name)
	animation.Channels[name] = newChannel
	return newChannel
}

// UpdateLength sets the Animation's Length to the end of its longest Channel.
func (animation *Animation) UpdateLength() {
	animation.Length = 0
	for _, channel := range animation.Channels {
		if l := channel.Length(); l > animation.Length {
			animation.Length = l
		}
	}
}
