//go:build cgo

package main

import "fmt"

import "github.com/neurlang/traintools/device"
import "github.com/neurlang/traintools/device/cu"

func main() {
	fmt.Println("cpu:", device.CPUSummary())
	var prober cu.Prober
	n := prober.Count()
	if n == 0 {
		fmt.Println("no CUDA devices")
		return
	}
	for i := 0; i < n; i++ {
		fmt.Println(cu.Describe(i))
	}
}
