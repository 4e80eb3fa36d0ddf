// Package sweep evaluates a project across a range of values for one input,
// in parallel.
package sweep

import (
	"fmt"
	"math"
	"runtime"
	"strconv"
	"strings"
	"sync"

	"SolarSentinel/internal/appraisal"
	"SolarSentinel/internal/model"

	"gopkg.in/cheggaaa/pb.v1"
)

// Axis names the parameter being varied.
type Axis string

const (
	Tariff           Axis = "tariff"
	CapitalCostPerMW Axis = "capital_cost_per_mw"
	DiscountRate     Axis = "discount_rate"
	LoanFraction     Axis = "loan_fraction"
	CUF              Axis = "cuf"
)

// Axes lists every supported axis.
var Axes = []Axis{Tariff, CapitalCostPerMW, DiscountRate, LoanFraction, CUF}

// maxPoints caps a single sweep.
const maxPoints = 10_000

// ParseAxis resolves an axis name.
func ParseAxis(name string) (Axis, error) {
	for _, a := range Axes {
		if string(a) == strings.ToLower(strings.TrimSpace(name)) {
			return a, nil
		}
	}
	return "", fmt.Errorf("unknown sweep axis %q", name)
}

// Apply returns a copy of p with the axis set to v.
func (a Axis) Apply(p model.ProjectParameters, v float64) model.ProjectParameters {
	switch a {
	case Tariff:
		p.Tariff = v
	case CapitalCostPerMW:
		p.CapitalCostPerMW = v
	case DiscountRate:
		p.DiscountRate = v
	case LoanFraction:
		p.LoanFraction = v
	case CUF:
		p.CUF = v
	}
	return p
}

// Point is the outcome at one axis value. Err is set when the value made the
// parameters invalid.
type Point struct {
	Value  float64
	Result *model.ProjectResult
	Err    error
}

// Range returns start, start+step, ... up to and including stop.
func Range(start, stop, step float64) ([]float64, error) {
	if step <= 0 || math.IsNaN(step) || math.IsInf(step, 0) {
		return nil, fmt.Errorf("step must be positive, got %v", step)
	}
	if stop < start {
		return nil, fmt.Errorf("stop %v is below start %v", stop, start)
	}
	n := int(math.Floor((stop-start)/step+1e-9)) + 1
	if n > maxPoints {
		return nil, fmt.Errorf("sweep of %d points exceeds the limit of %d", n, maxPoints)
	}
	values := make([]float64, n)
	for i := range values {
		values[i] = start + float64(i)*step
	}
	return values, nil
}

// ParseSpec reads "axis=start:stop:step".
func ParseSpec(spec string) (Axis, []float64, error) {
	name, bounds, ok := strings.Cut(spec, "=")
	if !ok {
		return "", nil, fmt.Errorf("sweep %q: expected axis=start:stop:step", spec)
	}
	axis, err := ParseAxis(name)
	if err != nil {
		return "", nil, err
	}
	parts := strings.Split(bounds, ":")
	if len(parts) != 3 {
		return "", nil, fmt.Errorf("sweep %q: expected start:stop:step", spec)
	}
	var nums [3]float64
	for i, s := range parts {
		if nums[i], err = strconv.ParseFloat(strings.TrimSpace(s), 64); err != nil {
			return "", nil, fmt.Errorf("sweep %q: %w", spec, err)
		}
	}
	values, err := Range(nums[0], nums[1], nums[2])
	if err != nil {
		return "", nil, fmt.Errorf("sweep %q: %w", spec, err)
	}
	return axis, values, nil
}

// Run evaluates base with axis set to each value on a pool of workers and
// returns the points in input order. workers <= 0 uses one per CPU. bar may
// be nil; otherwise it is incremented once per finished point.
func Run(base model.ProjectParameters, axis Axis, values []float64, workers int, bar *pb.ProgressBar) []Point {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(values) {
		workers = len(values)
	}

	points := make([]Point, len(values))
	jobs := make(chan int, len(values))
	for i := range values {
		jobs <- i
	}
	close(jobs)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go worker(&wg, base, axis, values, jobs, points, bar)
	}
	wg.Wait()
	return points
}

// worker drains jobs; each index is written by exactly one worker.
func worker(wg *sync.WaitGroup, base model.ProjectParameters, axis Axis, values []float64, jobs <-chan int, points []Point, bar *pb.ProgressBar) {
	defer wg.Done()
	for i := range jobs {
		v := values[i]
		res, err := appraisal.EvaluateProject(axis.Apply(base, v))
		points[i] = Point{Value: v, Result: res, Err: err}
		if bar != nil {
			bar.Increment()
		}
	}
}
