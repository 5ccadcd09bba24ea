package device

import "strconv"

import "github.com/klauspost/cpuid/v2"

// CPUSummary describes the host CPU the fallback path runs on: brand,
// logical core count and the widest vector extension present.
func CPUSummary() string {
	var s = cpuid.CPU.BrandName
	if s == "" {
		s = "unknown cpu"
	}
	s += ", " + strconv.Itoa(cpuid.CPU.LogicalCores) + " threads"
	if cpuid.CPU.Supports(cpuid.AVX512F, cpuid.AVX512DQ) {
		s += ", AVX512"
	} else if cpuid.CPU.Supports(cpuid.AVX2) {
		s += ", AVX2"
	} else if cpuid.CPU.Supports(cpuid.AVX) {
		s += ", AVX"
	}
	return s
}
