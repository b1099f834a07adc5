package shader

import (
	"strings"
	"testing"
)

func TestSources(t *testing.T) {
	for name, src := range map[string]string{"vertex": VertexGLSL, "fragment": FragmentGLSL} {
		if !strings.HasPrefix(src, "#version 410 core") {
			t.Errorf("%s shader has no version line", name)
		}
	}
	for _, entry := range []string{"fn vs_main", "fn fs_main"} {
		if !strings.Contains(WGSL, entry) {
			t.Errorf("WGSL missing %q", entry)
		}
	}
}

func TestSPIRV(t *testing.T) {
	words, err := SPIRV()
	if err != nil {
		t.Fatalf("SPIRV() error: %v", err)
	}
	const magic = 0x07230203
	if len(words) < 5 || words[0] != magic {
		t.Fatalf("SPIRV() header = %x, want magic %x", words[:min(len(words), 5)], magic)
	}
}
