package library

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/solarlune/quaternions"
	"github.com/solarlune/quaternions/anim"
)

// Root is turned half way around +Z, and its child Arm half way around +X. Scaled carries a matrix that scales by
// 2 and turns a quarter around +Y. The Swing animation turns Arm from identity to half way around +Y, and steps Root.
const testGLTF = `{
	"asset": {"version": "2.0"},
	"scene": 0,
	"scenes": [{"nodes": [0, 2, 3, 4]}],
	"nodes": [
		{"name": "Root", "rotation": [0, 0, 1, 0], "children": [1]},
		{"name": "Arm", "rotation": [1, 0, 0, 0]},
		{"name": "Scaled", "matrix": [0, 0, -2, 0, 0, 2, 0, 0, 2, 0, 0, 0, 5, 6, 7, 1]},
		{},
		{"name": "Skewed", "rotation": [0, 0, 0, 2]}
	],
	"animations": [{
		"name": "Swing",
		"channels": [
			{"sampler": 0, "target": {"node": 1, "path": "rotation"}},
			{"sampler": 0, "target": {"node": 0, "path": "translation"}},
			{"sampler": 1, "target": {"node": 0, "path": "rotation"}}
		],
		"samplers": [
			{"input": 0, "output": 1, "interpolation": "LINEAR"},
			{"input": 0, "output": 1, "interpolation": "STEP"}
		]
	}],
	"accessors": [
		{"bufferView": 0, "componentType": 5126, "count": 2, "type": "SCALAR", "min": [0], "max": [1]},
		{"bufferView": 1, "componentType": 5126, "count": 2, "type": "VEC4"}
	],
	"bufferViews": [
		{"buffer": 0, "byteOffset": 0, "byteLength": 8},
		{"buffer": 0, "byteOffset": 8, "byteLength": 32}
	],
	"buffers": [
		{"byteLength": 40, "uri": "data:application/octet-stream;base64,AAAAAAAAgD8AAAAAAAAAAAAAAAAAAIA/AAAAAAAAgD8AAAAAAAAAAA=="}
	]
}`

func rotationAbout(axis quaternions.Vector3, angle float64) quaternions.Quaternion {
	return quaternions.QuaternionFromRotation(quaternions.AxisAngle{Axis: axis, Angle: angle})
}

func assertSameRotation(t *testing.T, expected, actual quaternions.Quaternion) {
	t.Helper()
	// q and -q are the same rotation.
	if expected.Dot(actual) < 0 {
		actual = actual.Neg()
	}
	assert.Truef(t, expected.AlmostEqual(actual, 1e-6), "expected %s, got %s", expected, actual)
}

func loadTestLibrary(t *testing.T, options *GLTFLoadOptions) *Library {
	t.Helper()
	library, err := LoadGLTFData([]byte(testGLTF), options)
	require.NoError(t, err)
	return library
}

func TestLoadNodes(t *testing.T) {

	library := loadTestLibrary(t, nil)

	require.Len(t, library.Nodes, 5)

	root := library.FindNode("Root")
	require.NotNil(t, root)
	assertSameRotation(t, rotationAbout(quaternions.VecZ, math.Pi), root.Rotation)
	assert.Equal(t, []string{"Arm"}, root.Children)
	assert.Empty(t, root.Parent)

	arm := library.FindNode("Arm")
	require.NotNil(t, arm)
	assertSameRotation(t, rotationAbout(quaternions.VecX, math.Pi), arm.Rotation)
	assert.Equal(t, "Root", arm.Parent)

	assertSameRotation(t, rotationAbout(quaternions.VecY, math.Pi/2), library.FindNode("Scaled").Rotation)

	unnamed := library.FindNode("node3")
	require.NotNil(t, unnamed)
	assert.Equal(t, quaternions.IdentityQuaternion(), unnamed.Rotation)

	assert.Nil(t, library.FindNode("Missing"))

}

func TestLoadNormalizesRotations(t *testing.T) {

	core, logs := observer.New(zapcore.WarnLevel)

	library := loadTestLibrary(t, &GLTFLoadOptions{Logger: zap.New(core)})

	assert.Equal(t, quaternions.IdentityQuaternion(), library.FindNode("Skewed").Rotation)

	warnings := logs.FilterMessageSnippet("not a unit quaternion").All()
	require.Len(t, warnings, 1)
	assert.Equal(t, "Skewed", warnings[0].ContextMap()["node"])

}

func TestWorldRotation(t *testing.T) {

	library := loadTestLibrary(t, nil)

	world, err := library.WorldRotation("Arm")
	require.NoError(t, err)

	// Half way around X, then half way around Z, is half way around Y.
	assertSameRotation(t, rotationAbout(quaternions.VecY, math.Pi), world)

	v, ok := world.RotateVector(quaternions.VecX)
	require.True(t, ok)
	assert.True(t, v.AlmostEqual(quaternions.VecX.Neg(), 1e-12), v.String())

	world, err = library.WorldRotation("Root")
	require.NoError(t, err)
	assertSameRotation(t, library.FindNode("Root").Rotation, world)

	_, err = library.WorldRotation("Missing")
	assert.True(t, errors.Is(err, ErrNodeNotFound))

}

func TestWorldRotationCycle(t *testing.T) {

	library := NewLibrary()
	library.Nodes["A"] = &Node{Name: "A", Rotation: quaternions.IdentityQuaternion(), Parent: "B"}
	library.Nodes["B"] = &Node{Name: "B", Rotation: quaternions.IdentityQuaternion(), Parent: "A"}

	_, err := library.WorldRotation("A")
	assert.True(t, errors.Is(err, ErrCyclicHierarchy))

}

func TestLoadAnimations(t *testing.T) {

	library := loadTestLibrary(t, nil)

	swing := library.Animations["Swing"]
	require.NotNil(t, swing)
	assert.Equal(t, 1.0, swing.Length)

	// The translation channel is skipped; Root and Arm both have rotation channels.
	require.Len(t, swing.Channels, 2)

	arm := swing.Channels["Arm"]
	require.NotNil(t, arm)
	require.Len(t, arm.Keyframes, 2)
	assert.Equal(t, anim.InterpolationLinear, arm.Interpolation)
	assertSameRotation(t, quaternions.IdentityQuaternion(), arm.Rotation(0))
	assertSameRotation(t, rotationAbout(quaternions.VecY, math.Pi/2), arm.Rotation(0.5))
	assertSameRotation(t, rotationAbout(quaternions.VecY, math.Pi), arm.Rotation(1))

	root := swing.Channels["Root"]
	require.NotNil(t, root)
	assert.Equal(t, anim.InterpolationStep, root.Interpolation)
	assertSameRotation(t, quaternions.IdentityQuaternion(), root.Rotation(0.5))

	player := anim.NewPlayer()
	player.Play(swing)
	player.Update(0.5)
	rotation, ok := player.Rotation("Arm")
	require.True(t, ok)
	assertSameRotation(t, rotationAbout(quaternions.VecY, math.Pi/2), rotation)

}

func TestLoadGLTFFile(t *testing.T) {

	path := filepath.Join(t.TempDir(), "scene.gltf")
	require.NoError(t, os.WriteFile(path, []byte(testGLTF), 0o644))

	library, err := LoadGLTFFile(path, DefaultGLTFLoadOptions())
	require.NoError(t, err)
	assert.Len(t, library.Nodes, 5)

	_, err = LoadGLTFFile(filepath.Join(t.TempDir(), "missing.gltf"), nil)
	assert.True(t, errors.Is(err, os.ErrNotExist))

}

func TestLoadInvalidData(t *testing.T) {
	_, err := LoadGLTFData([]byte("not a gltf file"), nil)
	assert.Error(t, err)
}

func TestLoadFloat32RotationsWithoutWarning(t *testing.T) {

	const doc = `{
		"asset": {"version": "2.0"},
		"nodes": [{"name": "Yaw", "rotation": [0, 0, 0.70710677, 0.70710677]}]
	}`

	core, logs := observer.New(zapcore.WarnLevel)

	library, err := LoadGLTFData([]byte(doc), &GLTFLoadOptions{Logger: zap.New(core)})
	require.NoError(t, err)

	yaw := library.FindNode("Yaw")
	require.NotNil(t, yaw)
	assert.True(t, yaw.Rotation.IsUnit(), yaw.Rotation.String())
	assertSameRotation(t, rotationAbout(quaternions.VecZ, math.Pi/2), yaw.Rotation)

	assert.Equal(t, 0, logs.Len())

}

func TestLoadDuplicateNames(t *testing.T) {

	// The second "Arm" would be renamed "Arm.1", which a later node already uses.
	const doc = `{
		"asset": {"version": "2.0"},
		"nodes": [
			{"name": "Arm"},
			{"name": "Arm", "rotation": [1, 0, 0, 0]},
			{"name": "Arm.1", "rotation": [0, 1, 0, 0]}
		]
	}`

	core, logs := observer.New(zapcore.WarnLevel)

	library, err := LoadGLTFData([]byte(doc), &GLTFLoadOptions{Logger: zap.New(core)})
	require.NoError(t, err)

	require.Len(t, library.Nodes, 3)
	for name, node := range library.Nodes {
		assert.Equal(t, name, node.Name)
	}

	assertSameRotation(t, rotationAbout(quaternions.VecX, math.Pi), library.FindNode("Arm.1").Rotation)
	assertSameRotation(t, rotationAbout(quaternions.VecY, math.Pi), library.FindNode("Arm.1.2").Rotation)

	assert.Equal(t, 2, logs.FilterMessage("duplicate node name").Len())

}

func TestLoadInvalidIndices(t *testing.T) {

	tests := []struct {
		name string
		doc  string
	}{
		{
			name: "child",
			doc:  `{"asset": {"version": "2.0"}, "nodes": [{"name": "A", "children": [5]}]}`,
		},
		{
			name: "sampler",
			doc: `{
				"asset": {"version": "2.0"},
				"nodes": [{"name": "A"}],
				"animations": [{"channels": [{"sampler": 3, "target": {"node": 0, "path": "rotation"}}], "samplers": []}]
			}`,
		},
		{
			name: "target node",
			doc: `{
				"asset": {"version": "2.0"},
				"nodes": [{"name": "A"}],
				"animations": [{
					"channels": [{"sampler": 0, "target": {"node": 9, "path": "rotation"}}],
					"samplers": [{"input": 0, "output": 0}]
				}]
			}`,
		},
		{
			name: "accessor",
			doc: `{
				"asset": {"version": "2.0"},
				"nodes": [{"name": "A"}],
				"animations": [{
					"channels": [{"sampler": 0, "target": {"node": 0, "path": "rotation"}}],
					"samplers": [{"input": 7, "output": 8}]
				}]
			}`,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var err error
			require.NotPanics(t, func() {
				_, err = LoadGLTFData([]byte(test.doc), nil)
			})
			assert.True(t, errors.Is(err, ErrInvalidIndex), "got %v", err)
		})
	}

}
