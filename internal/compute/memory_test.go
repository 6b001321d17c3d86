package compute

import "testing"

func TestMemoryStrategyString(t *testing.T) {
	if got := Global.String(); got != "global" {
		t.Errorf("Global.String() = %q, want %q", got, "global")
	}
	if got := Shared.String(); got != "shared" {
		t.Errorf("Shared.String() = %q, want %q", got, "shared")
	}
}

func TestPipelineKeyDistinguishesStrategyAndWorkgroupSize(t *testing.T) {
	a := pipelineKey{kernelSource: "src", strategy: Global, workgroup: 64}
	b := pipelineKey{kernelSource: "src", strategy: Global, workgroup: 256}
	c := pipelineKey{kernelSource: "src", strategy: Shared, workgroup: 64}

	cache := map[pipelineKey]int{a: 1}
	if _, ok := cache[b]; ok {
		t.Errorf("different workgroup sizes must not collide in the pipeline cache")
	}
	if _, ok := cache[c]; ok {
		t.Errorf("different memory strategies must not collide in the pipeline cache")
	}
	if _, ok := cache[a]; !ok {
		t.Errorf("identical keys must hit the same cache entry")
	}
}

func TestErrorKindString(t *testing.T) {
	cases := map[ErrorKind]string{
		NoAdapter:        "no suitable adapter",
		RequestDevice:    "device request failed",
		PipelineCreation: "pipeline creation failed",
		BufferMap:        "buffer map failed",
		DeviceLost:       "device lost",
	}
	for kind, want := range cases {
		if got := kind.String(); got != want {
			t.Errorf("%v.String() = %q, want %q", kind, got, want)
		}
	}
}

func TestErrorFormatsReason(t *testing.T) {
	err := newError(PipelineCreation, "shader compile failed: %s", "syntax error")
	want := "pipeline creation failed: shader compile failed: syntax error"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
