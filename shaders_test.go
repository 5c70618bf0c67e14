package canopy

import "testing"

func TestShadersCompile(t *testing.T) {
	if MeshShader() == nil {
		t.Fatal("MeshShader returned nil")
	}
	if DistortionShader() == nil {
		t.Fatal("DistortionShader returned nil")
	}
}

func TestShadersCached(t *testing.T) {
	if MeshShader() != MeshShader() {
		t.Error("MeshShader should compile once")
	}
	if DistortionShader() != DistortionShader() {
		t.Error("DistortionShader should compile once")
	}
}
