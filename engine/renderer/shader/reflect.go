package shader

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
)

// vertexFormat pairs a wgpu vertex format with its byte size.
type vertexFormat struct {
	format wgpu.VertexFormat
	size   uint64
}

// typeLayout is the byte size and alignment of a WGSL type in a uniform or storage buffer.
type typeLayout struct {
	size  uint64
	align uint64
}

// structField is one member of a parsed WGSL struct.
type structField struct {
	name      string
	typeName  string
	location  int // -1 when the field has no @location
	isBuiltin bool
}

// wgslStruct is a struct block found in WGSL source.
type wgslStruct struct {
	name   string
	fields []structField
}

// vertexFormats covers the attribute types plane and mesh vertex structs use.
var vertexFormats = map[string]vertexFormat{
	"f32":       {wgpu.VertexFormatFloat32, 4},
	"vec2f":     {wgpu.VertexFormatFloat32x2, 8},
	"vec2<f32>": {wgpu.VertexFormatFloat32x2, 8},
	"vec3f":     {wgpu.VertexFormatFloat32x3, 12},
	"vec3<f32>": {wgpu.VertexFormatFloat32x3, 12},
	"vec4f":     {wgpu.VertexFormatFloat32x4, 16},
	"vec4<f32>": {wgpu.VertexFormatFloat32x4, 16},
	"u32":       {wgpu.VertexFormatUint32, 4},
	"vec4<u32>": {wgpu.VertexFormatUint32x4, 16},
	"i32":       {wgpu.VertexFormatSint32, 4},
}

// primitiveLayouts holds size and alignment per https://www.w3.org/TR/WGSL/#alignment-and-size
var primitiveLayouts = map[string]typeLayout{
	"f32":         {4, 4},
	"i32":         {4, 4},
	"u32":         {4, 4},
	"vec2<f32>":   {8, 8},
	"vec2f":       {8, 8},
	"vec3<f32>":   {12, 16},
	"vec3f":       {12, 16},
	"vec4<f32>":   {16, 16},
	"vec4f":       {16, 16},
	"vec2<u32>":   {8, 8},
	"vec4<u32>":   {16, 16},
	"vec4<i32>":   {16, 16},
	"mat3x3<f32>": {48, 16},
	"mat4x4<f32>": {64, 16},
	"mat4x4f":     {64, 16},
}

// textureDimensions maps sampled texture types to their view dimension.
var textureDimensions = map[string]wgpu.TextureViewDimension{
	"texture_1d":       wgpu.TextureViewDimension1D,
	"texture_2d":       wgpu.TextureViewDimension2D,
	"texture_2d_array": wgpu.TextureViewDimension2DArray,
	"texture_3d":       wgpu.TextureViewDimension3D,
	"texture_cube":     wgpu.TextureViewDimensionCube,
	"texture_depth_2d": wgpu.TextureViewDimension2D,
}

// sampleTypes maps the texel type parameter of a sampled texture to its sample type.
var sampleTypes = map[string]wgpu.TextureSampleType{
	"f32": wgpu.TextureSampleTypeFloat,
	"i32": wgpu.TextureSampleTypeSint,
	"u32": wgpu.TextureSampleTypeUint,
}

var (
	structRegex   = regexp.MustCompile(`struct\s+(\w+)\s*\{([^}]*)\}`)
	locationRegex = regexp.MustCompile(`@location\((\d+)\)`)
	builtinRegex  = regexp.MustCompile(`@builtin\(\w+\)`)
	fieldRegex    = regexp.MustCompile(`(?:@\w+\([^)]*\)\s*)*(\w+)\s*:\s*(.+)`)

	entryRegexes = map[ShaderType]*regexp.Regexp{
		ShaderTypeVertex:   regexp.MustCompile(`(?s)@vertex\b.*?\bfn\s+(\w+)`),
		ShaderTypeFragment: regexp.MustCompile(`(?s)@fragment\b.*?\bfn\s+(\w+)`),
	}

	// matches: @group(0) @binding(0) var<uniform> camera: CameraUniform;
	// and handle types: @group(1) @binding(1) var diffuse_texture: texture_2d<f32>;
	bindingRegex = regexp.MustCompile(`@group\((\d+)\)\s*@binding\((\d+)\)\s*var(?:<([^>]*)>)?\s+(\w+)\s*:\s*([^;]+?)\s*;`)
)

// parseEntryPoint returns the name of the first entry point of the given stage, or "".
func parseEntryPoint(source string, shaderType ShaderType) string {
	re, ok := entryRegexes[shaderType]
	if !ok {
		return ""
	}
	if m := re.FindStringSubmatch(stripComments(source)); m != nil {
		return m[1]
	}
	return ""
}

// parseVertexLayouts builds one vertex buffer layout per vertex input struct, that is every struct
// with @location fields and no @builtin field. Structs with attribute types outside vertexFormats
// are skipped.
//
// Parameters:
//   - source: the pre-processed WGSL source
//
// Returns:
//   - []wgpu.VertexBufferLayout: layouts in source order, slot 0 first
func parseVertexLayouts(source string) []wgpu.VertexBufferLayout {
	var layouts []wgpu.VertexBufferLayout
	for _, st := range parseStructs(stripComments(source)) {
		if !isVertexInput(st) {
			continue
		}
		if layout, ok := vertexBufferLayout(st); ok {
			layouts = append(layouts, layout)
		}
	}
	return layouts
}

// parseBindGroupLayouts extracts every @group/@binding declaration and groups the resulting layout
// entries by group index, sorted by binding. Uniform and storage bindings get MinBindingSize from
// the bound struct's computed size so the renderer can size their buffers.
//
// Parameters:
//   - source: the pre-processed WGSL source
//   - visibility: the stage flag applied to every entry
//
// Returns:
//   - map[int]wgpu.BindGroupLayoutDescriptor: layout descriptors keyed by group index
//   - map[int]map[int]string: variable names keyed by group and binding
func parseBindGroupLayouts(source string, visibility wgpu.ShaderStage) (map[int]wgpu.BindGroupLayoutDescriptor, map[int]map[int]string) {
	cleaned := stripComments(source)
	sizes := structLayouts(parseStructs(cleaned))

	groups := make(map[int][]wgpu.BindGroupLayoutEntry)
	names := make(map[int]map[int]string)
	for _, m := range bindingRegex.FindAllStringSubmatch(cleaned, -1) {
		group, _ := strconv.Atoi(m[1])
		binding, _ := strconv.Atoi(m[2])
		addressSpace := strings.TrimSpace(m[3])
		typeName := strings.TrimSpace(m[5])

		entry := layoutEntry(uint32(binding), visibility, addressSpace, typeName)
		if entry.Buffer.Type != wgpu.BufferBindingTypeUndefined {
			if l, ok := resolveLayout(typeName, sizes); ok {
				entry.Buffer.MinBindingSize = l.size
			}
		}
		groups[group] = append(groups[group], entry)

		if names[group] == nil {
			names[group] = make(map[int]string)
		}
		names[group][binding] = strings.TrimSpace(m[4])
	}

	result := make(map[int]wgpu.BindGroupLayoutDescriptor, len(groups))
	for g, entries := range groups {
		sort.Slice(entries, func(i, j int) bool { return entries[i].Binding < entries[j].Binding })
		result[g] = wgpu.BindGroupLayoutDescriptor{Entries: entries}
	}
	return result, names
}

// layoutEntry classifies one declared resource as a buffer, sampler or sampled texture.
func layoutEntry(binding uint32, visibility wgpu.ShaderStage, addressSpace, typeName string) wgpu.BindGroupLayoutEntry {
	entry := wgpu.BindGroupLayoutEntry{Binding: binding, Visibility: visibility}

	switch {
	case addressSpace == "uniform":
		entry.Buffer.Type = wgpu.BufferBindingTypeUniform
	case strings.HasPrefix(addressSpace, "storage"):
		if strings.Contains(addressSpace, "read_write") {
			entry.Buffer.Type = wgpu.BufferBindingTypeStorage
		} else {
			entry.Buffer.Type = wgpu.BufferBindingTypeReadOnlyStorage
		}
	case typeName == "sampler":
		entry.Sampler.Type = wgpu.SamplerBindingTypeFiltering
	case typeName == "sampler_comparison":
		entry.Sampler.Type = wgpu.SamplerBindingTypeComparison
	case strings.HasPrefix(typeName, "texture_depth_"):
		entry.Texture.SampleType = wgpu.TextureSampleTypeDepth
		entry.Texture.ViewDimension = textureDimensions[typeName]
	case strings.HasPrefix(typeName, "texture_"):
		base, param, _ := strings.Cut(typeName, "<")
		entry.Texture.ViewDimension = textureDimensions[base]
		entry.Texture.SampleType = sampleTypes[strings.TrimSuffix(strings.TrimSpace(param), ">")]
	}
	return entry
}

// parseStructs returns every struct block in comment-free source.
func parseStructs(source string) []wgslStruct {
	matches := structRegex.FindAllStringSubmatch(source, -1)
	structs := make([]wgslStruct, 0, len(matches))
	for _, m := range matches {
		structs = append(structs, wgslStruct{name: m[1], fields: parseFields(m[2])})
	}
	return structs
}

func parseFields(body string) []structField {
	var fields []structField
	for _, part := range splitTopLevel(body) {
		part = strings.TrimSpace(part)
		fm := fieldRegex.FindStringSubmatch(part)
		if part == "" || fm == nil {
			continue
		}
		f := structField{
			name:      fm[1],
			typeName:  strings.TrimSpace(fm[2]),
			location:  -1,
			isBuiltin: builtinRegex.MatchString(part),
		}
		if lm := locationRegex.FindStringSubmatch(part); lm != nil {
			f.location, _ = strconv.Atoi(lm[1])
		}
		fields = append(fields, f)
	}
	return fields
}

// splitTopLevel splits a struct body at commas outside angle brackets, so array<T, N> stays whole.
func splitTopLevel(s string) []string {
	var parts []string
	depth, start := 0, 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '<':
			depth++
		case '>':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, s[start:])
}

func isVertexInput(st wgslStruct) bool {
	hasLocation := false
	for _, f := range st.fields {
		if f.isBuiltin {
			return false
		}
		if f.location >= 0 {
			hasLocation = true
		}
	}
	return hasLocation
}

// vertexBufferLayout packs the struct fields tightly in declaration order.
func vertexBufferLayout(st wgslStruct) (wgpu.VertexBufferLayout, bool) {
	attrs := make([]wgpu.VertexAttribute, 0, len(st.fields))
	var offset uint64
	for _, f := range st.fields {
		vf, ok := vertexFormats[f.typeName]
		if !ok {
			return wgpu.VertexBufferLayout{}, false
		}
		attrs = append(attrs, wgpu.VertexAttribute{
			Format:         vf.format,
			Offset:         offset,
			ShaderLocation: uint32(f.location),
		})
		offset += vf.size
	}
	return wgpu.VertexBufferLayout{
		ArrayStride: offset,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes:  attrs,
	}, true
}

// structLayouts computes sizes for every struct, resolving structs nested in other structs by
// repeating until no more can be resolved.
func structLayouts(structs []wgslStruct) map[string]typeLayout {
	resolved := make(map[string]typeLayout, len(structs))
	pending := structs
	for len(pending) > 0 {
		var next []wgslStruct
		for _, st := range pending {
			if l, ok := structLayout(st, resolved); ok {
				resolved[st.name] = l
			} else {
				next = append(next, st)
			}
		}
		if len(next) == len(pending) {
			break
		}
		pending = next
	}
	return resolved
}

func structLayout(st wgslStruct, known map[string]typeLayout) (typeLayout, bool) {
	var offset uint64
	maxAlign := uint64(1)
	for _, f := range st.fields {
		if f.isBuiltin {
			continue
		}
		l, ok := resolveLayout(f.typeName, known)
		if !ok {
			return typeLayout{}, false
		}
		offset = alignUp(l.align, offset) + l.size
		maxAlign = max(maxAlign, l.align)
	}
	return typeLayout{alignUp(maxAlign, offset), maxAlign}, true
}

// resolveLayout handles primitives, known structs and fixed or runtime-sized arrays. A runtime-sized
// array resolves to one element stride.
func resolveLayout(typeName string, known map[string]typeLayout) (typeLayout, bool) {
	if l, ok := primitiveLayouts[typeName]; ok {
		return l, true
	}
	if l, ok := known[typeName]; ok {
		return l, true
	}
	inner, ok := strings.CutPrefix(typeName, "array<")
	if !ok || !strings.HasSuffix(inner, ">") {
		return typeLayout{}, false
	}
	elem, count, fixed := strings.Cut(strings.TrimSuffix(inner, ">"), ",")
	el, ok := resolveLayout(strings.TrimSpace(elem), known)
	if !ok {
		return typeLayout{}, false
	}
	stride := alignUp(el.align, el.size)
	if !fixed {
		return typeLayout{stride, el.align}, true
	}
	n, err := strconv.ParseUint(strings.TrimSpace(count), 10, 64)
	if err != nil {
		return typeLayout{}, false
	}
	return typeLayout{n * stride, el.align}, true
}

// alignUp rounds value up to a multiple of alignment, which must be a power of two.
func alignUp(alignment, value uint64) uint64 {
	if alignment == 0 {
		return value
	}
	return (value + alignment - 1) &^ (alignment - 1)
}

// stripComments removes line comments and (possibly nested) block comments.
func stripComments(source string) string {
	var sb strings.Builder
	sb.Grow(len(source))
	depth := 0
	for i := 0; i < len(source); i++ {
		if i+1 < len(source) {
			switch {
			case source[i] == '/' && source[i+1] == '*':
				depth++
				i++
				continue
			case source[i] == '*' && source[i+1] == '/' && depth > 0:
				depth--
				i++
				continue
			case depth == 0 && source[i] == '/' && source[i+1] == '/':
				for i < len(source) && source[i] != '\n' {
					i++
				}
				if i < len(source) {
					sb.WriteByte('\n')
				}
				continue
			}
		}
		if depth == 0 {
			sb.WriteByte(source[i])
		}
	}
	return sb.String()
}
