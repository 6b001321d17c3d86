package compute

import (
	"sync"

	"github.com/go-gl/gl/v4.3-core/gl"

	"github.com/san-kum/particular/internal/kernel"
	"github.com/san-kum/particular/internal/vecmath"
)

// Backend owns a cache of compiled compute pipelines, keyed by (kernel, memory strategy,
// workgroup size). Init and pipeline lookup/construction hold a mutex, so pipelines can be built
// and reused from multiple goroutines; the buffer, dispatch and readback calls in Dispatch are
// not serialized by it.
type Backend struct {
	mu          sync.Mutex
	initialized bool
	pipelines   map[pipelineKey]uint32
}

// NewBackend returns an uninitialized Backend; call Init once an OpenGL context is current on
// the calling thread (OpenGL, unlike wgpu, has no separate adapter-enumeration step, so Init
// doubles as the NoAdapter check: Dispatch before Init reports NoAdapter).
func NewBackend() *Backend {
	return &Backend{pipelines: make(map[pipelineKey]uint32)}
}

// Init marks the backend ready to compile pipelines against the current OpenGL context.
func (b *Backend) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := gl.Init(); err != nil {
		return newError(RequestDevice, "%v", err)
	}
	b.initialized = true
	return nil
}

func (b *Backend) pipelineFor(k kernel.GPUSource, strategy MemoryStrategy, workgroupSize int) (uint32, error) {
	src := k.GPUSource("acc", "affectedPos", "affectingPos", "affectingMass")
	key := pipelineKey{kernelSource: src, strategy: strategy, workgroup: workgroupSize}

	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.initialized {
		return 0, newError(NoAdapter, "backend not initialized")
	}
	if program, ok := b.pipelines[key]; ok {
		return program, nil
	}

	var shaderSrc string
	if strategy == Shared {
		shaderSrc = kernel.BuildTiledComputeShader(k, workgroupSize)
	} else {
		shaderSrc = kernel.BuildComputeShader(k, workgroupSize)
	}

	program, err := compileComputeProgram(shaderSrc)
	if err != nil {
		return 0, err
	}
	b.pipelines[key] = program
	return program, nil
}

// DispatchOptions controls one brute-force GPU dispatch.
type DispatchOptions struct {
	Strategy      MemoryStrategy
	WorkgroupSize int // typically 64 or 256
}

// Dispatch runs the GPU brute-force over affected/affecting 3D f32 particles and returns one
// acceleration per affected particle, in input order. Particles are serialised as vec4<f32>
// (xyz, mass) per the 3D/f32-only GPU layout; a 2D or f64 GPU path is out of scope.
func (b *Backend) Dispatch(
	k kernel.GPUSource,
	opts DispatchOptions,
	affectedPos []vecmath.Vec3[float32],
	affectedMass []float32,
	affectingPos []vecmath.Vec3[float32],
	affectingMass []float32,
) ([]vecmath.Vec3[float32], error) {
	if opts.WorkgroupSize <= 0 {
		opts.WorkgroupSize = 256
	}

	program, err := b.pipelineFor(k, opts.Strategy, opts.WorkgroupSize)
	if err != nil {
		return nil, err
	}

	affectedBuf := packVec4(affectedPos, affectedMass)
	affectingBuf := packVec4(affectingPos, affectingMass)
	n := len(affectedPos)

	ssboAffected, ssboAffecting, ssboOut, err := allocateBuffers(affectedBuf, affectingBuf, n)
	if err != nil {
		return nil, err
	}
	defer gl.DeleteBuffers(3, &[]uint32{ssboAffected, ssboAffecting, ssboOut}[0])

	gl.BindBufferBase(gl.SHADER_STORAGE_BUFFER, 0, ssboAffected)
	gl.BindBufferBase(gl.SHADER_STORAGE_BUFFER, 1, ssboAffecting)
	gl.BindBufferBase(gl.SHADER_STORAGE_BUFFER, 2, ssboOut)

	gl.UseProgram(program)
	numAffectingLoc := gl.GetUniformLocation(program, gl.Str("numAffecting\x00"))
	gl.Uniform1ui(numAffectingLoc, uint32(len(affectingPos)))

	numGroups := (uint32(n) + uint32(opts.WorkgroupSize) - 1) / uint32(opts.WorkgroupSize)
	if numGroups == 0 {
		numGroups = 1
	}
	gl.DispatchCompute(numGroups, 1, 1)
	gl.MemoryBarrier(gl.SHADER_STORAGE_BARRIER_BIT)

	out := make([]float32, n*4)
	gl.BindBuffer(gl.SHADER_STORAGE_BUFFER, ssboOut)
	gl.GetBufferSubData(gl.SHADER_STORAGE_BUFFER, 0, len(out)*4, gl.Ptr(out))

	if errCode := gl.GetError(); errCode == gl.CONTEXT_LOST {
		return nil, newError(DeviceLost, "context lost during readback")
	}

	result := make([]vecmath.Vec3[float32], n)
	for i := 0; i < n; i++ {
		result[i] = vecmath.Vec3[float32]{X: out[i*4], Y: out[i*4+1], Z: out[i*4+2]}
	}
	return result, nil
}

func packVec4(pos []vecmath.Vec3[float32], mass []float32) []float32 {
	buf := make([]float32, len(pos)*4)
	for i, p := range pos {
		buf[i*4] = p.X
		buf[i*4+1] = p.Y
		buf[i*4+2] = p.Z
		buf[i*4+3] = mass[i]
	}
	return buf
}

func allocateBuffers(affected, affecting []float32, outCount int) (ssboAffected, ssboAffecting, ssboOut uint32, err error) {
	var bufs [3]uint32
	gl.GenBuffers(3, &bufs[0])
	ssboAffected, ssboAffecting, ssboOut = bufs[0], bufs[1], bufs[2]

	gl.BindBuffer(gl.SHADER_STORAGE_BUFFER, ssboAffected)
	gl.BufferData(gl.SHADER_STORAGE_BUFFER, len(affected)*4, gl.Ptr(affected), gl.STATIC_DRAW)

	gl.BindBuffer(gl.SHADER_STORAGE_BUFFER, ssboAffecting)
	gl.BufferData(gl.SHADER_STORAGE_BUFFER, len(affecting)*4, gl.Ptr(affecting), gl.STATIC_DRAW)

	gl.BindBuffer(gl.SHADER_STORAGE_BUFFER, ssboOut)
	gl.BufferData(gl.SHADER_STORAGE_BUFFER, outCount*4*4, nil, gl.STREAM_READ)

	if errCode := gl.GetError(); errCode != gl.NO_ERROR {
		return 0, 0, 0, newError(BufferMap, "buffer allocation failed: gl error %d", errCode)
	}
	return ssboAffected, ssboAffecting, ssboOut, nil
}
