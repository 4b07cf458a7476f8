package material

// MaterialBuilderOption configures a material during NewMaterial.
type MaterialBuilderOption func(*material)

// WithName sets the debug label used in draw errors.
func WithName(name string) MaterialBuilderOption {
	return func(m *material) {
		m.name = name
	}
}

// WithPipelineKey selects the render pipeline that draws the material.
//
// Parameters:
//   - key: a key registered with the renderer
//
// Returns:
//   - MaterialBuilderOption: option function to apply
func WithPipelineKey(key string) MaterialBuilderOption {
	return func(m *material) {
		m.pipelineKey = key
	}
}

// WithParamsBinding sets the binding of the PlaneParams uniform inside the material's bind group.
// Defaults to 0.
func WithParamsBinding(binding int) MaterialBuilderOption {
	return func(m *material) {
		m.paramsBinding = binding
	}
}
