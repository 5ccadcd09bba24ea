package main

import "flag"
import "fmt"
import "math"
import "math/rand"
import "os"
import "runtime"
import "strings"

import "github.com/neurlang/traintools/activation"
import "github.com/neurlang/traintools/datasets"
import "github.com/neurlang/traintools/datasets/blobs"
import "github.com/neurlang/traintools/device"
import "github.com/neurlang/traintools/experiment"
import "github.com/neurlang/traintools/metric"
import "github.com/neurlang/traintools/npy"

import "gorgonia.org/tensor"

const examples = 2048
const classes = 3
const dim = 8

func main() {
	epochs := flag.Int("epochs", 20, "number of training epochs")
	batch := flag.Int("batch", 32, "batch size")
	gpus := flag.Int("gpus", 0, "number of GPUs to use")
	gpuid := flag.Int("gpu-id", 0, "which GPU to run on")
	seed := flag.Int64("seed", 42, "dataset and init seed")
	dstmodel := flag.String("dstmodel", "model", "model destination .npy.gz file (suffix added)")
	journalPath := flag.String("journal", "journal.db", "experiment journal sqlite file")
	act := flag.String("act", "tanh", "input activation: "+strings.Join(activation.Names(), " "))
	threads := flag.Int("threads", runtime.NumCPU(), "threads for accuracy counting")
	lr := flag.Float64("lr", 0.5, "learning rate")
	flag.Parse()

	dev := device.Prepare(device.NullProber{}, *gpus, *gpuid)

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

	journal, err := experiment.Open(*journalPath)
	if err != nil {
		panic(err.Error())
	}
	defer journal.Close()
	id, err := journal.Begin(fmt.Sprintf(
		"blobs demo [%d examples, %d classes, %d features]\ndevice %s\nactivation %s\nlr %v batch %d",
		examples, classes, dim, dev, *act, *lr, *batch))
	if err != nil {
		panic(err.Error())
	}
	fmt.Println("experiment:", id)

	model := newLinear(classes, dim, *lr, *seed)
	acc := metric.NewAccuracy(metric.Multiclass)
	acc.Threads = *threads

	for epoch := 0; epoch < *epochs; epoch++ {
		acc.Reset()
		var perm = datasets.NewPerm(examples, *seed+int64(epoch))
		var loss float64
		var ranges = datasets.Batches(examples, *batch)
		for _, r := range ranges {
			var rows = make([]int, 0, r[1]-r[0])
			for i := r[0]; i < r[1]; i++ {
				rows = append(rows, perm.At(i))
			}
			loss += model.trainStep(feats, y, rows)
			if _, err := acc.UpdateBatch(model.output(feats, rows), targets(y, rows)); err != nil {
				panic(err.Error())
			}
		}
		loss /= float64(len(ranges))
		epochAcc, err := acc.Compute()
		if err != nil {
			panic(err.Error())
		}
		if err := journal.Log(id, epoch, "loss", loss); err != nil {
			panic(err.Error())
		}
		if err := journal.Log(id, epoch, "accuracy", epochAcc); err != nil {
			panic(err.Error())
		}
		fmt.Printf("epoch %d loss %.4f accuracy %.4f\n", epoch, loss, epochAcc)
	}
	fmt.Println("best accuracy:", acc.Best())

	if err := npy.Save(*dstmodel, model.tensor()); err != nil {
		panic(err.Error())
	}
	md, err := journal.Markdown(id)
	if err != nil {
		panic(err.Error())
	}
	if err := os.WriteFile(*dstmodel+".md", []byte(md), 0644); err != nil {
		panic(err.Error())
	}
	fmt.Println("saved:", *dstmodel+npy.Suffix, "and", *dstmodel+".md")
}

// linear is a softmax classifier with the bias folded into the last
// weight column, so the whole model round-trips as one tensor.
type linear struct {
	classes int
	dim     int
	lr      float64
	w       []float64 // classes rows of dim+1 columns
}

func newLinear(classes, dim int, lr float64, seed int64) *linear {
	var rng = rand.New(rand.NewSource(seed))
	var w = make([]float64, classes*(dim+1))
	for i := range w {
		w[i] = (rng.Float64()*2 - 1) * 0.01
	}
	return &linear{classes: classes, dim: dim, lr: lr, w: w}
}

func (m *linear) logits(feats []float64, row int, out []float64) {
	var x = feats[row*m.dim : (row+1)*m.dim]
	for c := 0; c < m.classes; c++ {
		var base = c * (m.dim + 1)
		var sum = m.w[base+m.dim]
		for j, v := range x {
			sum += m.w[base+j] * v
		}
		out[c] = sum
	}
}

// trainStep runs one SGD step over the batch rows and returns the mean
// cross-entropy loss.
func (m *linear) trainStep(feats []float64, labels []int, rows []int) float64 {
	var total float64
	var probs = make([]float64, m.classes)
	for _, r := range rows {
		m.logits(feats, r, probs)
		softmax(probs)
		var label = labels[r]
		total += -math.Log(math.Max(probs[label], 1e-9))
		probs[label] -= 1
		var x = feats[r*m.dim : (r+1)*m.dim]
		for c := 0; c < m.classes; c++ {
			var grad = m.lr * probs[c]
			var base = c * (m.dim + 1)
			for j, v := range x {
				m.w[base+j] -= grad * v
			}
			m.w[base+m.dim] -= grad
		}
	}
	return total / float64(len(rows))
}

// output fills a (rows, classes) logits tensor for the accuracy metric.
func (m *linear) output(feats []float64, rows []int) *tensor.Dense {
	var backing = make([]float64, len(rows)*m.classes)
	for i, r := range rows {
		m.logits(feats, r, backing[i*m.classes:(i+1)*m.classes])
	}
	return tensor.New(tensor.WithShape(len(rows), m.classes), tensor.WithBacking(backing))
}

func (m *linear) tensor() *tensor.Dense {
	return tensor.New(tensor.WithShape(m.classes, m.dim+1),
		tensor.WithBacking(append([]float64(nil), m.w...)))
}

func targets(labels []int, rows []int) *tensor.Dense {
	var backing = make([]int, len(rows))
	for i, r := range rows {
		backing[i] = labels[r]
	}
	return tensor.New(tensor.WithShape(len(rows)), tensor.WithBacking(backing))
}

func softmax(logits []float64) {
	var max = logits[0]
	for _, v := range logits {
		if v > max {
			max = v
		}
	}
	var sum float64
	for i, v := range logits {
		logits[i] = math.Exp(v - max)
		sum += logits[i]
	}
	for i := range logits {
		logits[i] /= sum
	}
}
