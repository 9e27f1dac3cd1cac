package skinning

import (
	"golang.org/x/sys/cpu"
)

// DetectKernelType picks the kernel for the running CPU.
// The gc compiler emits scalar instructions for every kernel, including the lane loops of the
// wide kernel, so the scalar kernel is the fastest on every platform and is always returned.
// CPUFeatures reports what the hardware offers.
//
// Returns:
//   - KernelType: the selected kernel type
func DetectKernelType() KernelType {
	return KernelTypeScalar
}

// CPUFeatures lists the SIMD extensions the running CPU reports.
//
// Returns:
//   - []string: feature names, empty when none are detected
func CPUFeatures() []string {
	features := []struct {
		name string
		has  bool
	}{
		{"sse2", cpu.X86.HasSSE2},
		{"sse41", cpu.X86.HasSSE41},
		{"avx", cpu.X86.HasAVX},
		{"avx2", cpu.X86.HasAVX2},
		{"fma", cpu.X86.HasFMA},
		{"avx512f", cpu.X86.HasAVX512F},
		{"asimd", cpu.ARM64.HasASIMD},
	}

	out := make([]string, 0, len(features))
	for _, f := range features {
		if f.has {
			out = append(out, f.name)
		}
	}
	return out
}
