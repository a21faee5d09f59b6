package scene_test

import (
	"testing"

	"hw3d-demo/internal/engine/headless"
	"hw3d-demo/internal/scene"
)

func BenchmarkSceneUpdate(b *testing.B) {
	rec := headless.NewRecorder(1280, 720)
	s := scene.New()
	s.Setup(rec)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rec.BeginFrame()
		s.Update(rec, 0.016)
	}
}
