package shader

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"winterroom/internal/utils"
)

//go:embed glsl
var sources embed.FS

const glslVersion = "#version 330"

// Program names a vertex/fragment pair under glsl/.
type Program struct {
	Vertex   string
	Fragment string
}

var (
	LitProgram   = Program{Vertex: "lighting.vs", Fragment: "lighting.fs"}
	DepthProgram = Program{Vertex: "depth.vs", Fragment: "depth.fs"}
)

// DefaultDefines are injected into every program unless overridden.
var DefaultDefines = map[string]int{
	"PCF_RADIUS": 1,
}

// Load returns the preprocessed vertex and fragment sources of p.
func Load(p Program, defines map[string]int) (vertex, fragment string, err error) {
	if vertex, err = Source(p.Vertex, defines); err != nil {
		return "", "", err
	}
	if fragment, err = Source(p.Fragment, defines); err != nil {
		return "", "", err
	}
	return vertex, fragment, nil
}

// Source reads an embedded shader file and preprocesses it.
func Source(name string, defines map[string]int) (string, error) {
	data, err := sources.ReadFile(path.Join("glsl", name))
	if err != nil {
		return "", fmt.Errorf("shader %s: %w", name, err)
	}
	return Preprocess(string(data), defines, sources)
}

// Preprocess prepends the GLSL version and #define lines, then inlines
// `#include "file"` directives from the glsl directory of includes. Each file
// is included at most once. Defines are emitted in name order.
func Preprocess(source string, defines map[string]int, includes fs.FS) (string, error) {
	var sb strings.Builder
	sb.WriteString(glslVersion)
	sb.WriteString("\n")

	merged := make(map[string]int, len(DefaultDefines)+len(defines))
	for k, v := range DefaultDefines {
		merged[k] = v
	}
	for k, v := range defines {
		merged[k] = v
	}
	names := make([]string, 0, len(merged))
	for k := range merged {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, k := range names {
		fmt.Fprintf(&sb, "#define %s %d\n", k, merged[k])
	}

	included := make(map[string]bool)
	if err := expand(&sb, source, includes, included); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func expand(sb *strings.Builder, source string, includes fs.FS, included map[string]bool) error {
	for _, line := range strings.Split(strings.TrimPrefix(source, "\ufeff"), "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#version") {
			continue
		}
		if !strings.HasPrefix(trimmed, "#include \"") || !strings.HasSuffix(trimmed, "\"") {
			sb.WriteString(line)
			sb.WriteString("\n")
			continue
		}

		name := strings.TrimSpace(trimmed[len("#include \"") : len(trimmed)-1])
		if included[name] {
			continue
		}
		if includes == nil {
			return fmt.Errorf("shader include %q: no include source", name)
		}
		content, err := fs.ReadFile(includes, path.Join("glsl", name))
		if err != nil {
			return fmt.Errorf("shader include %q: %w", name, err)
		}
		included[name] = true
		utils.Debug("Shader: inlined %s", name)
		if err := expand(sb, string(content), includes, included); err != nil {
			return err
		}
	}
	return nil
}
