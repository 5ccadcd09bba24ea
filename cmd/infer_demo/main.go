package main

import "flag"
import "fmt"
import "runtime"

import "github.com/neurlang/traintools/activation"
import "github.com/neurlang/traintools/datasets"
import "github.com/neurlang/traintools/datasets/blobs"
import "github.com/neurlang/traintools/device"
import "github.com/neurlang/traintools/metric"
import "github.com/neurlang/traintools/npy"
import "github.com/neurlang/traintools/report"

import "gorgonia.org/tensor"

const examples = 2048
const classes = 3
const dim = 8
const holdoutPercent = 25

func main() {
	dstmodel := flag.String("dstmodel", "model", "trained model .npy.gz file (without suffix)")
	seed := flag.Int64("seed", 42, "dataset seed the model was trained with")
	act := flag.String("act", "tanh", "input activation the model was trained with")
	gpus := flag.Int("gpus", 0, "number of GPUs to use")
	gpuid := flag.Int("gpu-id", 0, "which GPU to run on")
	threads := flag.Int("threads", runtime.NumCPU(), "threads for accuracy counting")
	flag.Parse()

	device.Prepare(device.NullProber{}, *gpus, *gpuid)

	w, err := npy.Load(*dstmodel)
	if err != nil {
		println(err.Error())
		return
	}
	var shape = w.Shape()
	if len(shape) != 2 || shape[0] != classes || shape[1] != dim+1 {
		println("model shape", fmt.Sprint(shape), "does not fit the demo dataset")
		return
	}
	weights, ok := w.Data().([]float64)
	if !ok {
		println("model is not a float64 tensor")
		return
	}

	squash, err := activation.ByName(*act)
	if err != nil {
		println(err.Error())
		return
	}
	x, y := blobs.New(examples, classes, dim, *seed)
	x, err = squash(x)
	if err != nil {
		panic(err.Error())
	}
	feats := x.Data().([]float64)

	var backing = make([]float64, examples*classes)
	for i := 0; i < examples; i++ {
		logits(weights, feats, i, backing[i*classes:(i+1)*classes])
	}
	output := tensor.New(tensor.WithShape(examples, classes), tensor.WithBacking(backing))
	target := tensor.New(tensor.WithShape(examples), tensor.WithBacking(y))

	overall := metric.NewAccuracy(metric.Multiclass)
	overall.Threads = *threads
	if err := overall.Update(output, target); err != nil {
		panic(err.Error())
	}
	overallAcc, err := overall.Compute()
	if err != nil {
		panic(err.Error())
	}

	train, holdout := datasets.Split(examples, holdoutPercent, uint32(*seed))
	trainAcc, err := labeledAccuracy(output, target, train, *threads)
	if err != nil {
		panic(err.Error())
	}
	holdoutAcc, err := labeledAccuracy(output, target, holdout, *threads)
	if err != nil {
		panic(err.Error())
	}

	summary := map[string]interface{}{
		"model":            *dstmodel + npy.Suffix,
		"activation":       *act,
		"examples":         examples,
		"classes":          classes,
		"accuracy":         fmt.Sprintf("%.4f", overallAcc),
		"train accuracy":   fmt.Sprintf("%.4f", trainAcc),
		"holdout accuracy": fmt.Sprintf("%.4f", holdoutAcc),
		"holdout size":     len(holdout),
	}
	for _, table := range report.Tables(summary, 4) {
		fmt.Println(table)
	}
}

// labeledAccuracy scores only the given rows of the full-set output.
func labeledAccuracy(output, target *tensor.Dense, rows []int, threads int) (float64, error) {
	a := metric.NewAccuracy(metric.Semisupervised)
	a.Threads = threads
	if err := a.UpdateLabeled(output, target, rows); err != nil {
		return 0, err
	}
	return a.Compute()
}

func logits(weights, feats []float64, row int, out []float64) {
	var x = feats[row*dim : (row+1)*dim]
	for c := 0; c < classes; c++ {
		var base = c * (dim + 1)
		var sum = weights[base+dim]
		for j, v := range x {
			sum += weights[base+j] * v
		}
		out[c] = sum
	}
}
