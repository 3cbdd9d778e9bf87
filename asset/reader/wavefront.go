package reader

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/BardoBard/Bardrix-sub000/asset"
	"github.com/BardoBard/Bardrix-sub000/geometry"
	"github.com/BardoBard/Bardrix-sub000/log"
	"github.com/BardoBard/Bardrix-sub000/scene"
	"github.com/BardoBard/Bardrix-sub000/types"
)

// Camera settings collected while parsing.
type cameraDef struct {
	FOV  float32
	Eye  types.Vec3
	Look types.Vec3
	Up   types.Vec3
}

// A named group of shapes introduced by an "o" or "g" directive.
type objectDef struct {
	Name   string
	Shapes int
}

type wavefrontSceneReader struct {
	ctx    context.Context
	logger log.Logger

	shapes  []geometry.Shape
	objects []*objectDef
	camera  cameraDef

	// List of parsed vertices. Vertices from included files are
	// appended to the same list.
	vertexList []types.Vec3

	// An error stack that provides additional error information when
	// scene files include other files.
	errStack []string
}

// Create a new wavefront scene reader.
func newWavefrontReader(ctx context.Context) *wavefrontSceneReader {
	return &wavefrontSceneReader{
		ctx:    ctx,
		logger: log.New("wavefront scene reader"),
		shapes: make([]geometry.Shape, 0),
		camera: cameraDef{
			FOV:  45,
			Look: types.Vec3{0, 0, -1},
			Up:   types.Vec3{0, 1, 0},
		},
		vertexList: make([]types.Vec3, 0),
		errStack:   make([]string, 0),
	}
}

// Read scene definition.
func (r *wavefrontSceneReader) Read(sceneRes *asset.Resource) (*scene.Scene, error) {
	r.logger.Noticef(`parsing scene from "%s"`, sceneRes.Path())
	start := time.Now()

	err := r.parse(sceneRes)
	if err != nil {
		return nil, err
	}
	r.logger.Noticef("parsed %d shapes in %d ms", len(r.shapes), time.Since(start).Nanoseconds()/1e6)

	viewDir := r.camera.Look.Sub(r.camera.Eye)
	if viewDir.Len() == 0 {
		return nil, r.emitError("", 0, "camera look-at point must differ from the eye position")
	}
	if viewDir.Cross(r.camera.Up).Len() == 0 {
		return nil, r.emitError("", 0, "camera up vector must not be parallel to the view direction")
	}

	cam := scene.NewCamera(r.camera.FOV)
	cam.Position = r.camera.Eye
	cam.LookAt = r.camera.Look
	cam.Up = r.camera.Up
	cam.Update()

	return scene.New(r.shapes, cam)
}

// Generate an error message that also includes any data in the error stack.
func (r *wavefrontSceneReader) emitError(file string, line int, msgFormat string, args ...interface{}) error {
	msg := fmt.Sprintf(msgFormat, args...)

	var errMsg string
	if file != "" {
		errMsg = fmt.Sprintf("[%s: %d] error: %s\n%s", file, line, msg, strings.Join(r.errStack, "\n"))
	} else {
		errMsg = fmt.Sprintf("error: %s\n%s", msg, strings.Join(r.errStack, "\n"))
	}

	return errors.New(strings.Trim(errMsg, "\n"))
}

// Push a frame to the error stack.
func (r *wavefrontSceneReader) pushFrame(msg string) {
	r.errStack = append([]string{msg}, r.errStack...)
}

// Pop a frame from the error stack.
func (r *wavefrontSceneReader) popFrame() {
	r.errStack = r.errStack[1:]
}

// Parse wavefront object scene format.
func (r *wavefrontSceneReader) parse(res *asset.Resource) error {
	var lineNum int = 0
	var err error

	// Positive face indices are 1-based and relative to the file that
	// declares them, so track where this file's vertices start.
	relVertexOffset := len(r.vertexList)

	scanner := bufio.NewScanner(res)
	for scanner.Scan() {
		lineNum++
		lineTokens := strings.Fields(scanner.Text())
		if len(lineTokens) == 0 || strings.HasPrefix(lineTokens[0], "#") {
			continue
		}

		switch lineTokens[0] {
		case "call":
			if len(lineTokens) != 2 {
				return r.emitError(res.Path(), lineNum, `unsupported syntax for "call"; expected 1 argument; got %d`, len(lineTokens)-1)
			}
			if err = r.include(res, lineNum, lineTokens[1]); err != nil {
				return err
			}
		case "v":
			v, err := parseVec3(lineTokens)
			if err != nil {
				return r.emitError(res.Path(), lineNum, err.Error())
			}
			r.vertexList = append(r.vertexList, v)
		case "g", "o":
			if len(lineTokens) < 2 {
				return r.emitError(res.Path(), lineNum, `unsupported syntax for "%s"; expected 1 argument for object name; got %d`, lineTokens[0], len(lineTokens)-1)
			}

			r.verifyLastObject()
			r.objects = append(r.objects, &objectDef{Name: lineTokens[1]})
		case "f":
			triangles, err := r.parseFace(lineTokens, relVertexOffset)
			if err != nil {
				return r.emitError(res.Path(), lineNum, err.Error())
			}
			for _, tri := range triangles {
				r.addShape(tri)
			}
		case "sphere":
			if len(lineTokens) != 5 {
				return r.emitError(res.Path(), lineNum, `unsupported syntax for "sphere"; expected 4 arguments: cX cY cZ radius; got %d`, len(lineTokens)-1)
			}
			center, err := parseVec3(lineTokens[:4])
			if err != nil {
				return r.emitError(res.Path(), lineNum, err.Error())
			}
			radius, err := parseFloat32([]string{"sphere", lineTokens[4]})
			if err != nil {
				return r.emitError(res.Path(), lineNum, err.Error())
			}
			if radius <= 0 {
				return r.emitError(res.Path(), lineNum, "sphere radius must be positive; got %v", radius)
			}
			r.addShape(geometry.NewSphere(center, radius))
		case "box":
			if len(lineTokens) != 7 {
				return r.emitError(res.Path(), lineNum, `unsupported syntax for "box"; expected 6 arguments: minX minY minZ maxX maxY maxZ; got %d`, len(lineTokens)-1)
			}
			p0, err := parseVec3(lineTokens[:4])
			if err != nil {
				return r.emitError(res.Path(), lineNum, err.Error())
			}
			p1, err := parseVec3(append([]string{"box"}, lineTokens[4:]...))
			if err != nil {
				return r.emitError(res.Path(), lineNum, err.Error())
			}
			r.addShape(geometry.NewBox(p0, p1))
		case "camera_fov":
			r.camera.FOV, err = parseFloat32(lineTokens)
			if err != nil {
				return r.emitError(res.Path(), lineNum, err.Error())
			}
		case "camera_eye":
			r.camera.Eye, err = parseVec3(lineTokens)
			if err != nil {
				return r.emitError(res.Path(), lineNum, err.Error())
			}
		case "camera_look":
			r.camera.Look, err = parseVec3(lineTokens)
			if err != nil {
				return r.emitError(res.Path(), lineNum, err.Error())
			}
		case "camera_up":
			r.camera.Up, err = parseVec3(lineTokens)
			if err != nil {
				return r.emitError(res.Path(), lineNum, err.Error())
			}
		}
	}

	if err = scanner.Err(); err != nil {
		return r.emitError(res.Path(), lineNum, err.Error())
	}

	r.verifyLastObject()
	return nil
}

// Parse the scene file referenced by a "call" directive.
func (r *wavefrontSceneReader) include(parent *asset.Resource, lineNum int, location string) error {
	r.pushFrame(fmt.Sprintf("referenced from %s:%d [call]", parent.Path(), lineNum))

	incRes, err := asset.OpenContext(r.ctx, location, parent)
	if err != nil {
		return r.emitError(parent.Path(), lineNum, err.Error())
	}
	defer incRes.Close()

	if err = r.parse(incRes); err != nil {
		return err
	}
	r.popFrame()
	return nil
}

func (r *wavefrontSceneReader) addShape(shape geometry.Shape) {
	// If no object has been defined create a default one
	if len(r.objects) == 0 {
		r.objects = append(r.objects, &objectDef{Name: "default"})
	}
	r.objects[len(r.objects)-1].Shapes++
	r.shapes = append(r.shapes, shape)
}

// Drop the last parsed object if it contains no shapes.
func (r *wavefrontSceneReader) verifyLastObject() {
	lastIndex := len(r.objects) - 1
	if lastIndex >= 0 && r.objects[lastIndex].Shapes == 0 {
		r.logger.Warningf(`dropping object "%s" as it contains no shapes`, r.objects[lastIndex].Name)
		r.objects = r.objects[:lastIndex]
	}
}

// Parse face definition. Each face definition consists of 3 or 4 arguments,
// one for each vertex. Each vertex argument is comprised of 1, 2 or 3
// indices separated by a slash character:
// - vertexIndex
// - vertexIndex/uvIndex
// - vertexIndex//normalIndex
// - vertexIndex/uvIndex/normalIndex
//
// Only the vertex index is used; shading normals are derived from the
// triangle geometry. Quads are split into two triangles.
func (r *wavefrontSceneReader) parseFace(lineTokens []string, relVertexOffset int) ([]*geometry.Triangle, error) {
	if len(lineTokens) < 4 || len(lineTokens) > 5 {
		return nil, fmt.Errorf(`unsupported syntax for "f"; expected 3 arguments for triangular face or 4 arguments for a quad face; got %d. Select the triangulation option in your exporter`, len(lineTokens)-1)
	}

	var vertices [4]types.Vec3
	expIndices := 0
	for arg := 0; arg < len(lineTokens)-1; arg++ {
		vTokens := strings.Split(lineTokens[arg+1], "/")

		// The first arg defines the format for the following args
		if arg == 0 {
			expIndices = len(vTokens)
		} else if len(vTokens) != expIndices {
			return nil, fmt.Errorf("expected each face argument to contain %d indices; arg %d contains %d indices", expIndices, arg, len(vTokens))
		}

		if vTokens[0] == "" {
			return nil, fmt.Errorf("face argument %d does not include a vertex index", arg)
		}

		vOffset, err := selectFaceCoordIndex(vTokens[0], len(r.vertexList), relVertexOffset)
		if err != nil {
			return nil, fmt.Errorf("could not parse vertex coord for face argument %d: %s", arg, err.Error())
		}
		vertices[arg] = r.vertexList[vOffset]
	}

	indiceList := [][3]int{{0, 1, 2}}
	if len(lineTokens) == 5 {
		indiceList = append(indiceList, [3]int{0, 2, 3})
	}

	triangles := make([]*geometry.Triangle, 0, len(indiceList))
	for _, indices := range indiceList {
		triangles = append(triangles, geometry.NewTriangle([3]types.Vec3{
			vertices[indices[0]],
			vertices[indices[1]],
			vertices[indices[2]],
		}))
	}

	return triangles, nil
}

// Given an index for a face coord calculate the proper offset into the
// coord list. Negative indices reference elements from the end of the list.
func selectFaceCoordIndex(indexToken string, coordListLen int, relOffset int) (int, error) {
	index, err := strconv.ParseInt(indexToken, 10, 32)
	if err != nil {
		return -1, err
	}

	var vOffset int = 0
	if index < 0 {
		vOffset = coordListLen + int(index)
	} else {
		vOffset = relOffset + int(index-1)
	}
	if index == 0 || vOffset < 0 || vOffset >= coordListLen {
		return -1, fmt.Errorf("index out of bounds")
	}
	return vOffset, nil
}

// Parse a float scalar value.
func parseFloat32(lineTokens []string) (float32, error) {
	if len(lineTokens) < 2 {
		return 0, fmt.Errorf(`unsupported syntax for "%s"; expected 1 argument; got %d`, lineTokens[0], len(lineTokens)-1)
	}

	val, err := strconv.ParseFloat(lineTokens[1], 32)
	if err != nil {
		return 0, err
	}

	return float32(val), nil
}

// Parse a Vec3 row.
func parseVec3(lineTokens []string) (types.Vec3, error) {
	if len(lineTokens) < 4 {
		return types.Vec3{}, fmt.Errorf(`unsupported syntax for "%s"; expected 3 arguments; got %d`, lineTokens[0], len(lineTokens)-1)
	}

	v := types.Vec3{}
	for tokIdx := 1; tokIdx <= 3; tokIdx++ {
		coord, err := strconv.ParseFloat(lineTokens[tokIdx], 32)
		if err != nil {
			return v, err
		}
		v[tokIdx-1] = float32(coord)
	}
	return v, nil
}
