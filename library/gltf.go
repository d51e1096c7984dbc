package library

import (
	"bytes"
	"fmt"
	"os"
	"strconv"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"go.uber.org/zap"

	"github.com/solarlune/quaternions"
	"github.com/solarlune/quaternions/anim"
)

// Node rotations within this distance of unit length are normalized without a warning.
const float32Tolerance = 1e-6

type GLTFLoadOptions struct {
	// Logger receives warnings about data that had to be corrected (non-unit rotations, duplicate node names) and
	// debug messages about skipped animation channels. Defaults to a no-op logger.
	Logger *zap.Logger
}

// DefaultGLTFLoadOptions creates an instance of GLTFLoadOptions with some sensible defaults.
func DefaultGLTFLoadOptions() *GLTFLoadOptions {
	return &GLTFLoadOptions{
		Logger: zap.NewNop(),
	}
}

// LoadGLTFFile loads a .gltf or .glb file from the filepath given, using a provided GLTFLoadOptions struct to alter how the file is loaded.
// Passing nil for loadOptions will load the file using default load options.
func LoadGLTFFile(path string, loadOptions *GLTFLoadOptions) (*Library, error) {

	fileData, err := os.ReadFile(path)

	if err != nil {
		return nil, err
	}

	return LoadGLTFData(fileData, loadOptions)

}

// LoadGLTFData loads a .gltf or .glb file from the byte data given, using a provided GLTFLoadOptions struct to alter how the file is loaded.
// Every node's local rotation is read, either from its rotation property or from the rotational part of its matrix, and every
// animation channel targeting rotation becomes an anim.Channel named after its node. Translation, scale, and morph weight channels are skipped.
func LoadGLTFData(data []byte, gltfLoadOptions *GLTFLoadOptions) (*Library, error) {

	decoder := gltf.NewDecoder(bytes.NewReader(data))

	doc := gltf.NewDocument()

	if err := decoder.Decode(doc); err != nil {
		return nil, fmt.Errorf("decode gltf: %w", err)
	}

	if gltfLoadOptions == nil {
		gltfLoadOptions = DefaultGLTFLoadOptions()
	}

	logger := gltfLoadOptions.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	library := NewLibrary()

	names := make([]string, len(doc.Nodes))

	for i, node := range doc.Nodes {

		name := node.Name
		if name == "" {
			name = "node" + strconv.Itoa(i)
		}
		if _, exists := library.Nodes[name]; exists {
			unique := name
			for suffix := i; ; suffix++ {
				unique = name + "." + strconv.Itoa(suffix)
				if _, taken := library.Nodes[unique]; !taken {
					break
				}
			}
			logger.Warn("duplicate node name", zap.String("name", name), zap.String("renamed", unique))
			name = unique
		}
		names[i] = name

		rotation := nodeRotation(node)

		if !rotation.IsUnit() {
			// float32 rotations are only unit length to float32 precision.
			if !quaternions.AlmostEqual(rotation.Length(), 1, float32Tolerance) {
				logger.Warn("node rotation is not a unit quaternion; normalizing",
					zap.String("node", name), zap.Stringer("rotation", rotation))
			}
			rotation = normalizeRotation(rotation)
		}

		library.Nodes[name] = &Node{
			Name:     name,
			Rotation: rotation,
			Children: []string{},
		}

	}

	for i, node := range doc.Nodes {
		parent := library.Nodes[names[i]]
		for _, childIndex := range node.Children {
			if childIndex < 0 || childIndex >= len(names) {
				return nil, fmt.Errorf("%w: node %q has child %d of %d nodes", ErrInvalidIndex, parent.Name, childIndex, len(names))
			}
			child := library.Nodes[names[childIndex]]
			child.Parent = parent.Name
			parent.Children = append(parent.Children, child.Name)
		}
	}

	for animIndex, gltfAnim := range doc.Animations {

		name := gltfAnim.Name
		if name == "" {
			name = "animation" + strconv.Itoa(animIndex)
		}

		animation := anim.NewAnimation(name)
		library.Animations[name] = animation

		for _, channel := range gltfAnim.Channels {

			if channel.Target.Node == nil {
				logger.Debug("skipping animation channel without a target node", zap.String("animation", name))
				continue
			}

			if channel.Target.Path != gltf.TRSRotation {
				logger.Debug("skipping non-rotation animation channel",
					zap.String("animation", name), zap.Any("path", channel.Target.Path))
				continue
			}

			if channel.Sampler < 0 || channel.Sampler >= len(gltfAnim.Samplers) {
				return nil, fmt.Errorf("%w: animation %q has sampler %d of %d", ErrInvalidIndex, name, channel.Sampler, len(gltfAnim.Samplers))
			}
			if nodeIndex := *channel.Target.Node; nodeIndex < 0 || nodeIndex >= len(names) {
				return nil, fmt.Errorf("%w: animation %q targets node %d of %d", ErrInvalidIndex, name, nodeIndex, len(names))
			}

			sampler := gltfAnim.Samplers[channel.Sampler]
			channelName := names[*channel.Target.Node]

			inputAccessor, err := accessorAt(doc, sampler.Input)
			if err != nil {
				return nil, fmt.Errorf("animation %q, channel %q: %w", name, channelName, err)
			}

			outputAccessor, err := accessorAt(doc, sampler.Output)
			if err != nil {
				return nil, fmt.Errorf("animation %q, channel %q: %w", name, channelName, err)
			}

			inputData, err := readTimes(doc, inputAccessor)
			if err != nil {
				return nil, fmt.Errorf("animation %q, channel %q: %w", name, channelName, err)
			}

			outputData, err := readRotations(doc, outputAccessor)
			if err != nil {
				return nil, fmt.Errorf("animation %q, channel %q: %w", name, channelName, err)
			}

			animChannel := animation.AddChannel(channelName)

			stride := 1
			valueOffset := 0

			switch sampler.Interpolation {
			case gltf.InterpolationStep:
				animChannel.Interpolation = anim.InterpolationStep
			case gltf.InterpolationCubicSpline:
				// Each keyframe is stored as in-tangent, value, out-tangent; the tangents are dropped and the values slerped.
				logger.Debug("cubic spline rotation channel played back with linear interpolation",
					zap.String("animation", name), zap.String("channel", channelName))
				stride = 3
				valueOffset = 1
			}

			if len(outputData) < len(inputData)*stride {
				return nil, fmt.Errorf("animation %q, channel %q: %w: %d keyframe times but %d rotations",
					name, channelName, ErrUnsupportedAccessor, len(inputData), len(outputData))
			}

			for i, t := range inputData {
				p := outputData[i*stride+valueOffset]
				rotation := quaternions.NewQuaternion(float64(p[3]), float64(p[0]), float64(p[1]), float64(p[2]))
				if !rotation.IsUnit() {
					rotation = normalizeRotation(rotation)
				}
				animChannel.AddKeyframe(float64(t), rotation)
			}

		}

		animation.UpdateLength()

	}

	return library, nil

}

// nodeRotation reads the local rotation of a glTF node. glTF stores quaternions as x, y, z, w.
func nodeRotation(node *gltf.Node) quaternions.Quaternion {

	mtData := node.Matrix

	identity := true
	zero := true
	for i, value := range mtData {
		if value != 0 {
			zero = false
		}
		if (i%5 == 0 && value != 1) || (i%5 != 0 && value != 0) {
			identity = false
		}
	}

	if !identity && !zero {
		// glTF matrices are column-major; strip the scale from the upper 3x3 before reading the rotation out of it.
		rotation := quaternions.Matrix3{
			C1: quaternions.NewVector3(float64(mtData[0]), float64(mtData[1]), float64(mtData[2])).Normalized(),
			C2: quaternions.NewVector3(float64(mtData[4]), float64(mtData[5]), float64(mtData[6])).Normalized(),
			C3: quaternions.NewVector3(float64(mtData[8]), float64(mtData[9]), float64(mtData[10])).Normalized(),
		}
		return rotation.ToQuaternion()
	}

	r := node.Rotation
	if r[0] == 0 && r[1] == 0 && r[2] == 0 && r[3] == 0 {
		return quaternions.IdentityQuaternion()
	}

	return quaternions.NewQuaternion(float64(r[3]), float64(r[0]), float64(r[1]), float64(r[2]))

}

func normalizeRotation(rotation quaternions.Quaternion) quaternions.Quaternion {
	if rotation.Norm() == 0 {
		return quaternions.IdentityQuaternion()
	}
	return rotation.Normalized()
}

func accessorAt(doc *gltf.Document, index int) (*gltf.Accessor, error) {
	if index < 0 || index >= len(doc.Accessors) {
		return nil, fmt.Errorf("%w: accessor %d of %d", ErrInvalidIndex, index, len(doc.Accessors))
	}
	return doc.Accessors[index], nil
}

func readTimes(doc *gltf.Document, accessor *gltf.Accessor) ([]float32, error) {

	data, err := modeler.ReadAccessor(doc, accessor, nil)
	if err != nil {
		return nil, err
	}

	times, ok := data.([]float32)
	if !ok {
		return nil, fmt.Errorf("%w: keyframe times are %T, not []float32", ErrUnsupportedAccessor, data)
	}

	return times, nil

}

func readRotations(doc *gltf.Document, accessor *gltf.Accessor) ([][4]float32, error) {

	data, err := modeler.ReadAccessor(doc, accessor, nil)
	if err != nil {
		return nil, err
	}

	rotations, ok := data.([][4]float32)
	if !ok {
		return nil, fmt.Errorf("%w: rotations are %T, not [][4]float32", ErrUnsupportedAccessor, data)
	}

	return rotations, nil

}
