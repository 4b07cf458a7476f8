package shader

import "testing"

func TestParseAnnotation(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		wantNil  bool
		wantErr  bool
		wantType AnnotationType
		wantRole AnnotationArg
	}{
		{name: "plain wgsl", line: "let x = 1.0;", wantNil: true},
		{name: "include", line: "//@oxy:include camera", wantType: annotationTypeInclude},
		{name: "group", line: "  //@oxy:group 0 0 storage_uniform camera camera", wantType: AnnotationTypeBindingGroup},
		{name: "provider with role", line: "//@oxy:provider 1 1 material diffuse_texture", wantType: AnnotationTypeProvider, wantRole: AnnotationArgDiffuseTexture},
		{name: "provider without role", line: "//@oxy:provider 0 0 camera", wantType: AnnotationTypeProvider},
		{name: "empty", line: "//@oxy:", wantErr: true},
		{name: "unknown type", line: "//@oxy:define FOO", wantErr: true},
		{name: "unknown address space", line: "//@oxy:group 0 0 storage_push camera camera", wantErr: true},
		{name: "unknown role", line: "//@oxy:provider 1 1 material normal_texture", wantErr: true},
		{name: "too few group args", line: "//@oxy:group 0 0 storage_uniform camera", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := parseAnnotation(tt.line, 7)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantNil {
				if a != nil {
					t.Fatalf("expected nil, got %+v", a)
				}
				return
			}
			if a.Type != tt.wantType || a.Line != 7 {
				t.Errorf("got type %q line %d", a.Type, a.Line)
			}
			if a.Role() != tt.wantRole {
				t.Errorf("Role() = %q, want %q", a.Role(), tt.wantRole)
			}
		})
	}
}
