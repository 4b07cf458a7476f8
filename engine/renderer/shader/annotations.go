// annotations.go defines the @oxy: annotations understood by the WGSL pre-processor.
// Annotations are single-line WGSL comments that inject registered struct sources, generate
// @group/@binding declarations, and tag hand-written bindings with the provider that fills
// them, so the Scene can wire bind groups without matching variable names.
//
// Syntax:
//
//	//@oxy:include <struct_type>
//	//@oxy:group <group> <binding> <address_space> <var_name> <struct_type>
//	//@oxy:provider <group> <binding> <provider_identity> [binding_role]
package shader

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// annotationPrefix marks an Oxy annotation inside a WGSL line comment.
const annotationPrefix = "@oxy:"

// AnnotationType identifies the kind of annotation parsed from a WGSL comment line.
type AnnotationType string

const (
	// annotationTypeInclude injects a registered struct definition at the annotation site.
	// It is consumed entirely by the pre-processor and never appears in Declarations.
	annotationTypeInclude AnnotationType = "include"

	// AnnotationTypeBindingGroup generates a @group/@binding variable declaration for a registered
	// struct type and records the binding.
	AnnotationTypeBindingGroup AnnotationType = "group"

	// AnnotationTypeProvider records which provider fills a hand-written binding (textures and
	// samplers have no registered struct). No WGSL is emitted.
	AnnotationTypeProvider AnnotationType = "provider"
)

// Annotation is one parsed @oxy: annotation.
type Annotation struct {
	// Type identifies which annotation was parsed.
	Type AnnotationType

	// Args holds the annotation's arguments. The contents depend on Type:
	//   - include:  [0] = struct type
	//   - group:    [0] = address space, [1] = var name, [2] = struct type
	//   - provider: [0] = provider identity, [1] = binding role (optional)
	Args []AnnotationArg

	// Line is the 1-based source line, used for error reporting.
	Line int

	// Group and Binding are nil for include annotations.
	Group   *int
	Binding *int
}

// Role returns the binding role of a provider annotation, or "" when none was given.
func (a Annotation) Role() AnnotationArg {
	if a.Type != AnnotationTypeProvider || len(a.Args) < 2 {
		return ""
	}
	return a.Args[1]
}

// AnnotationArg is a typed annotation argument.
type AnnotationArg string

// Struct types. Each has an embedded .wgsl source registered with the pre-processor.
const (
	// AnnotationArgCamera is the CameraUniform struct from engine/camera.
	AnnotationArgCamera AnnotationArg = "camera"

	// AnnotationArgPlaneParams is the per-plane PlaneParams uniform from engine/renderer/material.
	AnnotationArgPlaneParams AnnotationArg = "plane_params"

	// annotationArgQuadVertex is the VertexInput struct of the shared plane quad.
	annotationArgQuadVertex AnnotationArg = "quad_vertex"
)

// Address spaces for @oxy:group.
const (
	annotationArgStorageTypeUniform AnnotationArg = "storage_uniform"
	annotationArgStorageTypeRead    AnnotationArg = "storage_read"
)

// Provider identities.
const (
	// AnnotationArgPlane identifies the per-plane provider (plane uniform, texture, sampler).
	AnnotationArgPlane AnnotationArg = "plane"

	// AnnotationArgMaterial identifies bindings filled from a plane's material.
	AnnotationArgMaterial AnnotationArg = "material"
)

// Binding roles within a provider.
const (
	// AnnotationArgDiffuseTexture is the image texture of a plane.
	AnnotationArgDiffuseTexture AnnotationArg = "diffuse_texture"

	// AnnotationArgDiffuseSampler is the sampler paired with the image texture.
	AnnotationArgDiffuseSampler AnnotationArg = "diffuse_sampler"
)

var (
	validStructTypes        = []AnnotationArg{AnnotationArgCamera, AnnotationArgPlaneParams, annotationArgQuadVertex}
	validAddressSpaces      = []AnnotationArg{annotationArgStorageTypeUniform, annotationArgStorageTypeRead}
	validProviderIdentities = []AnnotationArg{AnnotationArgCamera, AnnotationArgPlane, AnnotationArgMaterial}
	validBindingRoles       = []AnnotationArg{AnnotationArgDiffuseTexture, AnnotationArgDiffuseSampler}
)

// parseAnnotation parses one WGSL source line. Lines without the annotation prefix return nil, nil.
//
// Parameters:
//   - line: the raw WGSL source line
//   - lineNum: the 1-based line number for error reporting
//
// Returns:
//   - *Annotation: the parsed annotation, or nil if the line is not an annotation
//   - error: a descriptive error if the annotation is malformed
func parseAnnotation(line string, lineNum int) (*Annotation, error) {
	_, after, ok := strings.Cut(strings.TrimSpace(line), annotationPrefix)
	if !ok {
		return nil, nil
	}
	args := strings.Fields(after)
	if len(args) == 0 {
		return nil, fmt.Errorf("line %d: empty @oxy annotation", lineNum)
	}

	switch AnnotationType(args[0]) {
	case annotationTypeInclude:
		if len(args) != 2 {
			return nil, fmt.Errorf("line %d: @oxy include takes exactly one struct type", lineNum)
		}
		if !slices.Contains(validStructTypes, AnnotationArg(args[1])) {
			return nil, fmt.Errorf("line %d: unknown struct type %q", lineNum, args[1])
		}
		return &Annotation{Type: annotationTypeInclude, Args: []AnnotationArg{AnnotationArg(args[1])}, Line: lineNum}, nil

	case AnnotationTypeBindingGroup:
		if len(args) != 6 {
			return nil, fmt.Errorf("line %d: @oxy group takes group, binding, address space, var name and struct type", lineNum)
		}
		group, binding, err := parseGroupBinding(args[1], args[2], lineNum)
		if err != nil {
			return nil, err
		}
		if !slices.Contains(validAddressSpaces, AnnotationArg(args[3])) {
			return nil, fmt.Errorf("line %d: unknown address space %q", lineNum, args[3])
		}
		if !slices.Contains(validStructTypes, AnnotationArg(args[5])) {
			return nil, fmt.Errorf("line %d: unknown struct type %q", lineNum, args[5])
		}
		return &Annotation{
			Type:    AnnotationTypeBindingGroup,
			Args:    []AnnotationArg{AnnotationArg(args[3]), AnnotationArg(args[4]), AnnotationArg(args[5])},
			Line:    lineNum,
			Group:   &group,
			Binding: &binding,
		}, nil

	case AnnotationTypeProvider:
		if len(args) < 4 || len(args) > 5 {
			return nil, fmt.Errorf("line %d: @oxy provider takes group, binding, provider identity and an optional role", lineNum)
		}
		group, binding, err := parseGroupBinding(args[1], args[2], lineNum)
		if err != nil {
			return nil, err
		}
		if !slices.Contains(validProviderIdentities, AnnotationArg(args[3])) {
			return nil, fmt.Errorf("line %d: unknown provider identity %q", lineNum, args[3])
		}
		providerArgs := []AnnotationArg{AnnotationArg(args[3])}
		if len(args) == 5 {
			if !slices.Contains(validBindingRoles, AnnotationArg(args[4])) {
				return nil, fmt.Errorf("line %d: unknown binding role %q", lineNum, args[4])
			}
			providerArgs = append(providerArgs, AnnotationArg(args[4]))
		}
		return &Annotation{
			Type:    AnnotationTypeProvider,
			Args:    providerArgs,
			Line:    lineNum,
			Group:   &group,
			Binding: &binding,
		}, nil

	default:
		return nil, fmt.Errorf("line %d: unknown @oxy annotation type %q", lineNum, args[0])
	}
}

func parseGroupBinding(groupArg, bindingArg string, lineNum int) (int, int, error) {
	group, err := strconv.Atoi(groupArg)
	if err != nil {
		return 0, 0, fmt.Errorf("line %d: invalid group number %q: %w", lineNum, groupArg, err)
	}
	binding, err := strconv.Atoi(bindingArg)
	if err != nil {
		return 0, 0, fmt.Errorf("line %d: invalid binding number %q: %w", lineNum, bindingArg, err)
	}
	return group, binding, nil
}
