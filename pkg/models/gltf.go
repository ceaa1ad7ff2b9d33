package models

import (
	"encoding/json"
	"fmt"
	"math"
	"path/filepath"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/qmuntal/gltf"

	"github.com/taigrr/prism/pkg/math3d"
	"github.com/taigrr/prism/pkg/tracer"
)

// Node kinds recognized in a node's "prism" extra.
const (
	KindSphere = "sphere"
	KindPlane  = "plane"
	KindLight  = "light"
	KindCamera = "camera"
)

// mirrorMetallic is the metallic factor at which a material becomes a mirror.
const mirrorMetallic = 0.5

// nodeExtras is the prism-specific part of a node's extras.
type nodeExtras struct {
	Prism   string      `json:"prism"`
	Radius  *float64    `json:"radius"`
	Mirror  *bool       `json:"mirror"`
	Checker bool        `json:"checker"`
	Color   *[3]float64 `json:"color"`
}

// sceneExtras is the prism-specific part of a glTF scene's extras.
type sceneExtras struct {
	Background string   `json:"background"`
	Ambient    *float64 `json:"ambient"`
}

// LoadScene loads a GLTF or GLB file and builds a scene from its nodes.
func LoadScene(path string) (*Scene, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}

	s, err := SceneFromDocument(doc)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", filepath.Base(path), err)
	}
	s.Name = filepath.Base(path)
	return s, nil
}

// SceneFromDocument walks the document's default scene and converts tagged
// nodes into primitives, lights and the camera pose. Coordinates are
// converted from glTF's Y-up to Z-up.
func SceneFromDocument(doc *gltf.Document) (*Scene, error) {
	b := &sceneBuilder{
		doc:  doc,
		pose: DefaultPose(),
	}

	roots, extras := rootNodes(doc)
	zUp := math3d.RotateX(math.Pi / 2)
	for _, idx := range roots {
		if err := b.walk(idx, zUp, 0); err != nil {
			return nil, err
		}
	}

	if len(b.prims) == 0 {
		return nil, fmt.Errorf("no primitives found")
	}

	var se sceneExtras
	if err := decodeExtras(extras, &se); err != nil {
		return nil, fmt.Errorf("scene extras: %w", err)
	}
	background := tracer.Black
	if se.Background != "" {
		c, err := colorful.Hex(se.Background)
		if err != nil {
			return nil, fmt.Errorf("scene background: %w", err)
		}
		background = math3d.V3(c.R, c.G, c.B)
	}

	scene := tracer.NewScene(b.prims, b.lights, background)
	if se.Ambient != nil {
		scene.Ambient = *se.Ambient
	}
	return &Scene{Scene: scene, Camera: b.pose}, nil
}

// rootNodes returns the nodes of the default scene, or every node that is no
// other node's child when the document has no scenes.
func rootNodes(doc *gltf.Document) ([]int, any) {
	if len(doc.Scenes) > 0 {
		idx := 0
		if doc.Scene != nil && *doc.Scene < len(doc.Scenes) {
			idx = *doc.Scene
		}
		return doc.Scenes[idx].Nodes, doc.Scenes[idx].Extras
	}

	child := make(map[int]bool)
	for _, n := range doc.Nodes {
		for _, c := range n.Children {
			child[c] = true
		}
	}
	var roots []int
	for i := range doc.Nodes {
		if !child[i] {
			roots = append(roots, i)
		}
	}
	return roots, nil
}

type sceneBuilder struct {
	doc    *gltf.Document
	prims  []tracer.Primitive
	lights []*tracer.Light
	pose   CameraPose
}

func (b *sceneBuilder) walk(idx int, parent math3d.Mat4, depth int) error {
	if idx < 0 || idx >= len(b.doc.Nodes) {
		return fmt.Errorf("node index %d out of range", idx)
	}
	if depth > len(b.doc.Nodes) {
		return fmt.Errorf("node hierarchy contains a cycle")
	}

	node := b.doc.Nodes[idx]
	world := parent.Mul(localTransform(node))

	if err := b.addNode(node, world); err != nil {
		return fmt.Errorf("node %q: %w", nodeName(node, idx), err)
	}

	for _, c := range node.Children {
		if err := b.walk(c, world, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func (b *sceneBuilder) addNode(node *gltf.Node, world math3d.Mat4) error {
	var ex nodeExtras
	if err := decodeExtras(node.Extras, &ex); err != nil {
		return fmt.Errorf("extras: %w", err)
	}

	pos := world.Translation()

	switch ex.Prism {
	case "":
		if node.Mesh == nil {
			return nil
		}
		return b.addMeshBounds(node, world)

	case KindSphere:
		color, mirror, err := b.surface(node, ex)
		if err != nil {
			return err
		}
		radius := 1.0
		if ex.Radius != nil {
			radius = *ex.Radius
		}
		b.prims = append(b.prims, tracer.NewSphere(pos, radius*maxScale(world), color, mirror))

	case KindPlane:
		color, mirror, err := b.surface(node, ex)
		if err != nil {
			return err
		}
		normal := world.MulVec3Dir(math3d.V3(0, 1, 0))
		b.prims = append(b.prims, tracer.NewPlane(pos, normal, color, mirror, ex.Checker))

	case KindLight:
		color := tracer.White
		if ex.Color != nil {
			color = math3d.V3(ex.Color[0], ex.Color[1], ex.Color[2])
		}
		b.lights = append(b.lights, tracer.NewLight(pos, color))

	case KindCamera:
		// glTF cameras look down their local -Z with +Y up.
		b.pose.Position = pos
		b.pose.Forward = world.MulVec3Dir(math3d.V3(0, 0, -1)).Normalize()
		b.pose.Up = world.MulVec3Dir(math3d.V3(0, 1, 0)).Normalize()

	default:
		return fmt.Errorf("unknown prism kind %q", ex.Prism)
	}
	return nil
}

// addMeshBounds adds a sphere enclosing an untagged mesh's positions.
func (b *sceneBuilder) addMeshBounds(node *gltf.Node, world math3d.Mat4) error {
	if *node.Mesh < 0 || *node.Mesh >= len(b.doc.Meshes) {
		return fmt.Errorf("mesh index %d out of range", *node.Mesh)
	}
	m := b.doc.Meshes[*node.Mesh]
	if len(m.Primitives) == 0 {
		return nil
	}
	prim := m.Primitives[0]

	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return nil
	}
	lo, hi, err := accessorBounds(b.doc, posIdx)
	if err != nil {
		return fmt.Errorf("mesh %q bounds: %w", m.Name, err)
	}

	color, mirror, err := b.material(prim.Material)
	if err != nil {
		return err
	}

	a, c := world.MulVec3(lo), world.MulVec3(hi)
	center := a.Add(c).Scale(0.5)
	radius := a.Distance(c) / 2
	b.prims = append(b.prims, tracer.NewSphere(center, radius, color, mirror))
	return nil
}

// surface resolves a tagged node's color and mirror flag. Extras win over the
// material of the node's mesh.
func (b *sceneBuilder) surface(node *gltf.Node, ex nodeExtras) (math3d.Vec3, bool, error) {
	color, mirror := tracer.White, false
	if node.Mesh != nil {
		if *node.Mesh < 0 || *node.Mesh >= len(b.doc.Meshes) {
			return color, mirror, fmt.Errorf("mesh index %d out of range", *node.Mesh)
		}
		if m := b.doc.Meshes[*node.Mesh]; len(m.Primitives) > 0 {
			var err error
			color, mirror, err = b.material(m.Primitives[0].Material)
			if err != nil {
				return color, mirror, err
			}
		}
	}
	if ex.Color != nil {
		color = math3d.V3(ex.Color[0], ex.Color[1], ex.Color[2])
	}
	if ex.Mirror != nil {
		mirror = *ex.Mirror
	}
	return color, mirror, nil
}

// material converts a glTF material's linear base color to display sRGB. A
// metallic factor of at least one half makes it a mirror; an absent factor
// does not.
func (b *sceneBuilder) material(idx *int) (math3d.Vec3, bool, error) {
	if idx == nil {
		return tracer.White, false, nil
	}
	if *idx < 0 || *idx >= len(b.doc.Materials) {
		return tracer.White, false, fmt.Errorf("material index %d out of range", *idx)
	}
	mat := b.doc.Materials[*idx]
	pbr := mat.PBRMetallicRoughness
	if pbr == nil {
		return tracer.White, false, nil
	}

	color := tracer.White
	if f := pbr.BaseColorFactor; f != nil {
		c := colorful.LinearRgb(f[0], f[1], f[2]).Clamped()
		color = math3d.V3(c.R, c.G, c.B)
	}
	mirror := pbr.MetallicFactor != nil && *pbr.MetallicFactor >= mirrorMetallic
	return color, mirror, nil
}

// localTransform returns the node's matrix, or T*R*S when none is set.
// Unset fields are zero in documents built in memory, so defaults are
// applied here.
func localTransform(n *gltf.Node) math3d.Mat4 {
	if n.Matrix != ([16]float64{}) && n.Matrix != identityMatrix {
		return math3d.Mat4(n.Matrix)
	}

	rot := n.Rotation
	if rot == ([4]float64{}) {
		rot = [4]float64{0, 0, 0, 1}
	}
	scale := n.Scale
	if scale == ([3]float64{}) {
		scale = [3]float64{1, 1, 1}
	}
	t := n.Translation

	return math3d.Translate(math3d.V3(t[0], t[1], t[2])).
		Mul(math3d.FromQuaternion(rot)).
		Mul(math3d.Scale(math3d.V3(scale[0], scale[1], scale[2])))
}

var identityMatrix = [16]float64{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}

// maxScale returns the largest axis scale of m.
func maxScale(m math3d.Mat4) float64 {
	return max(
		m.MulVec3Dir(math3d.Right()).Len(),
		m.MulVec3Dir(math3d.Forward()).Len(),
		m.MulVec3Dir(math3d.Up()).Len(),
	)
}

func nodeName(n *gltf.Node, idx int) string {
	if n.Name != "" {
		return n.Name
	}
	return fmt.Sprintf("#%d", idx)
}

// decodeExtras re-encodes extras into dst. Extras arrive as whatever the JSON
// decoder or the caller put there.
func decodeExtras(extras any, dst any) error {
	if extras == nil {
		return nil
	}
	raw, ok := extras.(json.RawMessage)
	if !ok {
		var err error
		if raw, err = json.Marshal(extras); err != nil {
			return err
		}
	}
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	// Extras that are not an object carry nothing for us.
	if raw[0] != '{' {
		return nil
	}
	return json.Unmarshal(raw, dst)
}
