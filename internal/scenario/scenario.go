// Package scenario loads and evaluates YAML descriptions of named rotations applied to named vectors.
package scenario

import (
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/solarlune/quaternions"
)

var (
	ErrUnknownRotation  = errors.New("unknown rotation")
	ErrUnknownVector    = errors.New("unknown vector")
	ErrDuplicateName    = errors.New("duplicate name")
	ErrZeroAxis         = errors.New("rotation axis has zero length")
	ErrAngle            = errors.New("rotation needs exactly one of degrees or radians")
	ErrNotUnitRotation  = errors.New("composed rotation is not a unit quaternion")
	ErrEmptyComposition = errors.New("step has no rotations")
)

// Scenario is a set of named rotations and vectors, and the steps that rotate one by the other.
type Scenario struct {
	Rotations []Rotation `json:"rotations" yaml:"rotations"`
	Vectors   []Vector   `json:"vectors" yaml:"vectors"`
	Steps     []Step     `json:"steps" yaml:"steps"`
}

// Rotation is an axis and an angle given in exactly one of degrees or radians.
type Rotation struct {
	Name    string     `json:"name" yaml:"name"`
	Axis    [3]float64 `json:"axis" yaml:"axis"`
	Degrees *float64   `json:"degrees,omitempty" yaml:"degrees,omitempty"`
	Radians *float64   `json:"radians,omitempty" yaml:"radians,omitempty"`
}

type Vector struct {
	Name  string     `json:"name" yaml:"name"`
	Value [3]float64 `json:"value" yaml:"value"`
}

// Step rotates the Rotate vector by the composition of the By rotations. Like a product of quaternions, the list
// reads right to left: the last rotation is applied first.
type Step struct {
	Name   string   `json:"name" yaml:"name"`
	Rotate string   `json:"rotate" yaml:"rotate"`
	By     []string `json:"by" yaml:"by"`
}

// Result is the outcome of one Step.
type Result struct {
	Step      string
	Rotation  quaternions.Quaternion
	AxisAngle quaternions.AxisAngle
	Matrix    quaternions.Matrix3
	Input     quaternions.Vector3
	Output    quaternions.Vector3
}

// Load decodes a Scenario from YAML.
func Load(r io.Reader) (*Scenario, error) {
	var s Scenario
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

// AxisAngle returns the Rotation with its axis normalized and its angle in radians.
func (r Rotation) AxisAngle() quaternions.AxisAngle {
	angle := 0.0
	if r.Radians != nil {
		angle = *r.Radians
	} else if r.Degrees != nil {
		angle = quaternions.ToRadians(*r.Degrees)
	}
	return quaternions.NewAxisAngle(quaternions.NewVector3(r.Axis[0], r.Axis[1], r.Axis[2]), angle)
}

// Validate checks that names are unique, axes are usable, angles are given once, and every step refers to
// rotations and vectors that exist.
func (s *Scenario) Validate() error {

	rotations := make(map[string]struct{}, len(s.Rotations))
	for _, r := range s.Rotations {
		if _, ok := rotations[r.Name]; ok {
			return fmt.Errorf("%w: rotation %q", ErrDuplicateName, r.Name)
		}
		rotations[r.Name] = struct{}{}
		if quaternions.NewVector3(r.Axis[0], r.Axis[1], r.Axis[2]).IsZero() {
			return fmt.Errorf("%w: rotation %q", ErrZeroAxis, r.Name)
		}
		if (r.Degrees == nil) == (r.Radians == nil) {
			return fmt.Errorf("%w: rotation %q", ErrAngle, r.Name)
		}
	}

	vectors := make(map[string]struct{}, len(s.Vectors))
	for _, v := range s.Vectors {
		if _, ok := vectors[v.Name]; ok {
			return fmt.Errorf("%w: vector %q", ErrDuplicateName, v.Name)
		}
		vectors[v.Name] = struct{}{}
	}

	steps := make(map[string]struct{}, len(s.Steps))
	for i, step := range s.Steps {
		name := step.name(i)
		if _, ok := steps[name]; ok {
			return fmt.Errorf("%w: step %q", ErrDuplicateName, name)
		}
		steps[name] = struct{}{}
		if _, ok := vectors[step.Rotate]; !ok {
			return fmt.Errorf("step %q: %w: %q", name, ErrUnknownVector, step.Rotate)
		}
		if len(step.By) == 0 {
			return fmt.Errorf("step %q: %w", name, ErrEmptyComposition)
		}
		for _, by := range step.By {
			if _, ok := rotations[by]; !ok {
				return fmt.Errorf("step %q: %w: %q", name, ErrUnknownRotation, by)
			}
		}
	}

	return nil

}

// Evaluate validates the Scenario and runs each of its Steps in order. A nil logger discards log output.
func (s *Scenario) Evaluate(logger *zap.Logger) ([]Result, error) {

	if logger == nil {
		logger = zap.NewNop()
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}

	rotations := make(map[string]quaternions.Quaternion, len(s.Rotations))
	for _, r := range s.Rotations {
		rotations[r.Name] = r.AxisAngle().Quaternion()
	}

	vectors := make(map[string]quaternions.Vector3, len(s.Vectors))
	for _, v := range s.Vectors {
		vectors[v.Name] = quaternions.NewVector3(v.Value[0], v.Value[1], v.Value[2])
	}

	results := make([]Result, 0, len(s.Steps))

	for i, step := range s.Steps {

		name := step.name(i)

		composed := quaternions.IdentityQuaternion()
		for _, by := range step.By {
			composed = composed.Mul(rotations[by])
		}

		input := vectors[step.Rotate]
		output, ok := composed.RotateVector(input)
		if !ok {
			logger.Warn("composed rotation drifted off unit length",
				zap.String("step", name), zap.Float64("length", composed.Length()))
			return results, fmt.Errorf("step %q: %w: %s", name, ErrNotUnitRotation, composed)
		}

		result := Result{
			Step:      name,
			Rotation:  composed,
			AxisAngle: composed.Rotation(),
			Matrix:    composed.ToMatrix(),
			Input:     input,
			Output:    output,
		}

		logger.Debug("evaluated step",
			zap.String("step", name),
			zap.Strings("by", step.By),
			zap.Stringer("rotation", result.Rotation),
			zap.Stringer("output", result.Output))

		results = append(results, result)

	}

	return results, nil

}

func (step Step) name(index int) string {
	if step.Name != "" {
		return step.Name
	}
	return fmt.Sprintf("step%d", index)
}
