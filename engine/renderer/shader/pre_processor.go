package shader

import (
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/oxy-gallery/engine/camera"
	"github.com/Carmen-Shannon/oxy-gallery/engine/renderer/material"
)

// registryEntry pairs an embedded WGSL struct source with the type name it declares.
type registryEntry struct {
	Source string
	Type   string
}

// preProcessor is the implementation of the PreProcessor interface.
type preProcessor struct {
	structRegistry       map[AnnotationArg]registryEntry
	addressSpaceRegistry map[AnnotationArg]string

	// declarations is reset at the start of each Process call.
	declarations []Annotation
}

// PreProcessor expands @oxy: annotations in WGSL source and records the binding declarations
// for the Scene.
type PreProcessor interface {
	// Process replaces include annotations with struct sources and group annotations with
	// generated declarations. Provider annotations produce no output but are recorded.
	//
	// Parameters:
	//   - source: the raw WGSL shader source
	//
	// Returns:
	//   - string: the processed WGSL source
	//   - error: an error if an annotation is malformed
	Process(source string) (string, error)

	// Declarations returns the group and provider annotations from the last Process call, in
	// source order.
	//
	// Returns:
	//   - []Annotation: the recorded declarations
	Declarations() []Annotation
}

var _ PreProcessor = &preProcessor{}

// NewPreProcessor creates a PreProcessor with the camera, plane and quad vertex structs registered.
//
// Returns:
//   - PreProcessor: a ready-to-use pre-processor instance
func NewPreProcessor() PreProcessor {
	return &preProcessor{
		structRegistry: map[AnnotationArg]registryEntry{
			AnnotationArgCamera:      {Source: camera.GPUCameraUniformSource, Type: "CameraUniform"},
			AnnotationArgPlaneParams: {Source: material.GPUPlaneParamsSource, Type: "PlaneParams"},
			annotationArgQuadVertex:  {Source: material.GPUQuadVertexSource, Type: "VertexInput"},
		},
		addressSpaceRegistry: map[AnnotationArg]string{
			annotationArgStorageTypeUniform: "var<uniform>",
			annotationArgStorageTypeRead:    "var<storage, read>",
		},
	}
}

func (p *preProcessor) Process(source string) (string, error) {
	p.declarations = p.declarations[:0]

	lines := strings.Split(source, "\n")
	out := make([]string, 0, len(lines))
	for i, line := range lines {
		a, err := parseAnnotation(line, i+1)
		if err != nil {
			return "", err
		}
		if a == nil {
			out = append(out, line)
			continue
		}

		switch a.Type {
		case annotationTypeInclude:
			out = append(out, p.structRegistry[a.Args[0]].Source)
		case AnnotationTypeBindingGroup:
			addrSpace := p.addressSpaceRegistry[a.Args[0]]
			wgslType := p.structRegistry[a.Args[2]].Type
			out = append(out, fmt.Sprintf("@group(%d) @binding(%d) %s %s: %s;", *a.Group, *a.Binding, addrSpace, a.Args[1], wgslType))
			p.declarations = append(p.declarations, *a)
		case AnnotationTypeProvider:
			p.declarations = append(p.declarations, *a)
		}
	}
	return strings.Join(out, "\n"), nil
}

func (p *preProcessor) Declarations() []Annotation {
	return p.declarations
}
