package shader

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/Carmen-Shannon/oxy-raymarch/common"
	"github.com/cogentcore/webgpu/wgpu"
)

// RaymarchSource is the annotated WGSL program that renders the two-shape raymarched scene.
//
//go:embed assets/raymarch.wgsl
var RaymarchSource string

// RaymarchKey is the shader key used for the embedded raymarch program.
const RaymarchKey = "raymarch"

// shader is the implementation of the Shader interface.
// It holds all of the persistent shader data required for pipeline creation and uniform binding.
type shader struct {
	key                        string
	source                     string
	vertexEntryPoint           string
	fragmentEntryPoint         string
	bindGroupLayoutDescriptors map[int]wgpu.BindGroupLayoutDescriptor
	bindingVarNames            map[int]map[int]string
	structs                    map[string]StructLayout
	module                     *wgpu.ShaderModuleDescriptor

	pp PreProcessor
}

// Shader defines the interface for a loaded and parsed WGSL render program holding both a
// vertex and a fragment entry point in one module. It exposes everything the pipeline and the
// uniform channel need: entry points, bind group layouts and the host-shareable struct layouts.
type Shader interface {
	// Key retrieves the unique identifier for this shader, used as the label of GPU objects.
	//
	// Returns:
	//   - string: the shader's unique key
	Key() string

	// Source retrieves the pre-processed WGSL shader source code.
	//
	// Returns:
	//   - string: the WGSL source code of the shader
	Source() string

	// VertexEntryPoint returns the name of the @vertex function.
	//
	// Returns:
	//   - string: the vertex entry point name (e.g. "vertex_shader")
	VertexEntryPoint() string

	// FragmentEntryPoint returns the name of the @fragment function.
	//
	// Returns:
	//   - string: the fragment entry point name (e.g. "fragment_shader")
	FragmentEntryPoint() string

	// BindGroupLayoutDescriptor retrieves the bind group layout descriptor for a group index.
	//
	// Parameters:
	//   - group: the bind group index
	//
	// Returns:
	//   - wgpu.BindGroupLayoutDescriptor: the descriptor for the group, or an empty descriptor if not declared
	BindGroupLayoutDescriptor(group int) wgpu.BindGroupLayoutDescriptor

	// BindGroupLayoutDescriptors retrieves all parsed bind group layout descriptors keyed by group index.
	//
	// Returns:
	//   - map[int]wgpu.BindGroupLayoutDescriptor: descriptors keyed by group index
	BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor

	// FindBinding locates the group and binding of a resource variable by name.
	//
	// Parameters:
	//   - varName: the WGSL variable name
	//
	// Returns:
	//   - int: the group index
	//   - int: the binding index
	//   - bool: true if the variable was found
	FindBinding(varName string) (int, int, bool)

	// StructLayout returns the resolved memory layout of a WGSL struct declared in the source.
	//
	// Parameters:
	//   - name: the struct name
	//
	// Returns:
	//   - StructLayout: the layout
	//   - bool: true if the struct was found and resolved
	StructLayout(name string) (StructLayout, bool)

	// UniformBinding locates the uniform buffer variable varName and checks that the WGSL struct
	// it is declared with has exactly the byte size of the payload the host uploads.
	//
	// Parameters:
	//   - varName: the WGSL variable name
	//   - structName: the WGSL struct type of the variable
	//   - size: the host payload size in bytes
	//
	// Returns:
	//   - int: the group index
	//   - int: the binding index
	//   - error: an error if the variable or struct is missing, or *common.SizeMismatchError
	UniformBinding(varName, structName string, size int) (int, int, error)

	// Module returns the wgpu.ShaderModuleDescriptor for this shader.
	//
	// Returns:
	//   - *wgpu.ShaderModuleDescriptor: the descriptor containing the WGSL code and label
	Module() *wgpu.ShaderModuleDescriptor

	// Declarations returns the @oxy:group annotations parsed from the shader source.
	//
	// Returns:
	//   - []Annotation: the binding declarations in source order
	Declarations() []Annotation

	// Validate compiles the WGSL source offline to catch malformed programs before
	// the device ever sees them.
	//
	// Returns:
	//   - error: the compiler diagnostic if the program is invalid
	Validate() error
}

var _ Shader = &shader{}

// NewShader pre-processes and parses a WGSL render program. The program must declare
// one @vertex and one @fragment entry point; all bindings are visible to both stages.
//
// Parameters:
//   - key: a unique identifier for the shader, used for labels and lookups
//   - source: the annotated WGSL source
//
// Returns:
//   - Shader: the parsed shader
//   - error: an error if pre-processing or parsing fails
func NewShader(key, source string) (Shader, error) {
	s := &shader{
		key: key,
		pp:  NewPreProcessor(),
	}
	if err := s.parseSource(source); err != nil {
		return nil, fmt.Errorf("shader %s: %w", key, err)
	}
	return s, nil
}

// NewShaderFromPath reads an annotated WGSL program from disk and parses it like NewShader.
//
// Parameters:
//   - key: a unique identifier for the shader
//   - path: the file path to read WGSL source from
//
// Returns:
//   - Shader: the parsed shader
//   - error: an error if the file cannot be read or parsed
func NewShaderFromPath(key, path string) (Shader, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("shader %s: failed to read source file %q: %w", key, path, err)
	}
	return NewShader(key, string(data))
}

// NewRaymarchShader parses the embedded raymarch program.
func NewRaymarchShader() (Shader, error) {
	return NewShader(RaymarchKey, RaymarchSource)
}

func (s *shader) Key() string {
	return s.key
}

func (s *shader) Source() string {
	return s.source
}

func (s *shader) VertexEntryPoint() string {
	return s.vertexEntryPoint
}

func (s *shader) FragmentEntryPoint() string {
	return s.fragmentEntryPoint
}

func (s *shader) BindGroupLayoutDescriptor(group int) wgpu.BindGroupLayoutDescriptor {
	return s.bindGroupLayoutDescriptors[group]
}

func (s *shader) BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor {
	return s.bindGroupLayoutDescriptors
}

func (s *shader) FindBinding(varName string) (int, int, bool) {
	for group, bindings := range s.bindingVarNames {
		for binding, name := range bindings {
			if name == varName {
				return group, binding, true
			}
		}
	}
	return -1, -1, false
}

func (s *shader) StructLayout(name string) (StructLayout, bool) {
	sl, ok := s.structs[name]
	return sl, ok
}

func (s *shader) UniformBinding(varName, structName string, size int) (int, int, error) {
	group, binding, ok := s.FindBinding(varName)
	if !ok {
		return -1, -1, fmt.Errorf("shader %s declares no %q binding", s.key, varName)
	}
	layout, ok := s.StructLayout(structName)
	if !ok {
		return -1, -1, fmt.Errorf("shader %s declares no struct %q", s.key, structName)
	}
	if layout.Size != uint64(size) {
		return -1, -1, fmt.Errorf("shader %s struct %s: %w", s.key, structName, &common.SizeMismatchError{Expected: int(layout.Size), Actual: size})
	}
	return group, binding, nil
}

func (s *shader) Module() *wgpu.ShaderModuleDescriptor {
	return s.module
}

func (s *shader) Declarations() []Annotation {
	return s.pp.Declarations()
}

func (s *shader) Validate() error {
	return validateWGSL(s.key, s.source)
}

// parseSource runs the pre-processor, builds the shader module descriptor, and extracts
// entry points, struct layouts and bind group layout descriptors.
func (s *shader) parseSource(raw string) error {
	source, err := s.pp.Process(raw)
	if err != nil {
		return fmt.Errorf("failed to pre-process source: %w", err)
	}
	s.source = source

	s.vertexEntryPoint = parseEntryPoint(source, wgpu.ShaderStageVertex)
	if s.vertexEntryPoint == "" {
		return fmt.Errorf("no @vertex entry point")
	}
	s.fragmentEntryPoint = parseEntryPoint(source, wgpu.ShaderStageFragment)
	if s.fragmentEntryPoint == "" {
		return fmt.Errorf("no @fragment entry point")
	}

	s.structs = computeStructLayouts(parseStructBlocks(stripComments(source)))
	s.bindGroupLayoutDescriptors, s.bindingVarNames, err = parseBindGroupLayouts(source, wgpu.ShaderStageVertex|wgpu.ShaderStageFragment, s.structs)
	if err != nil {
		return err
	}

	s.module = &wgpu.ShaderModuleDescriptor{
		Label: s.key,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: s.source,
		},
	}
	return nil
}
