// Package library loads node orientations and rotation animations out of glTF files.
package library

import (
	"errors"
	"fmt"

	"github.com/solarlune/quaternions"
	"github.com/solarlune/quaternions/anim"
)

var (
	ErrNodeNotFound        = errors.New("node not found")
	ErrUnsupportedAccessor = errors.New("unsupported accessor data")
	ErrCyclicHierarchy     = errors.New("node hierarchy contains a cycle")
	ErrInvalidIndex        = errors.New("index refers to nothing in the document")
)

// Node is a named object in a loaded scene, with its rotation relative to its parent.
type Node struct {
	Name     string
	Rotation quaternions.Quaternion // Local rotation; a unit rotation Quaternion
	Parent   string                 // Name of the parent Node; empty for top-level Nodes
	Children []string
}

// Library represents the Nodes and Animations loaded from a .gltf / .glb file.
type Library struct {
	Nodes      map[string]*Node           // A Map of Nodes to their names
	Animations map[string]*anim.Animation // A Map of Animations to their names
}

// NewLibrary creates a new Library.
func NewLibrary() *Library {
	return &Library{
		Nodes:      map[string]*Node{},
		Animations: map[string]*anim.Animation{},
	}
}

// FindNode returns the Node with the provided name. If a Node with the given name isn't found, FindNode will return nil.
func (lib *Library) FindNode(name string) *Node {
	return lib.Nodes[name]
}

// WorldRotation returns the rotation of the named Node relative to the scene root: the product of every ancestor's
// local rotation, outermost first, ending with the Node's own.
func (lib *Library) WorldRotation(name string) (quaternions.Quaternion, error) {

	node := lib.FindNode(name)
	if node == nil {
		return quaternions.Quaternion{}, fmt.Errorf("%w: %q", ErrNodeNotFound, name)
	}

	rotation := node.Rotation
	seen := map[string]bool{name: true}

	for node.Parent != "" {

		parent := lib.FindNode(node.Parent)
		if parent == nil {
			return quaternions.Quaternion{}, fmt.Errorf("%w: %q (parent of %q)", ErrNodeNotFound, node.Parent, node.Name)
		}

		if seen[parent.Name] {
			return quaternions.Quaternion{}, fmt.Errorf("%w: at %q", ErrCyclicHierarchy, parent.Name)
		}
		seen[parent.Name] = true

		rotation = parent.Rotation.Mul(rotation)
		node = parent

	}

	return rotation, nil

}
