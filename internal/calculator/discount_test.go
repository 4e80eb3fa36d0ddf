package calculator

import (
	"math"
	"testing"
)

func TestNPV_IndexZeroUndiscounted(t *testing.T) {
	got := NPV(0.10, []float64{-100, 110})
	if math.Abs(got) > 1e-9 {
		t.Errorf("NPV = %v, expected 0", got)
	}
	if got := NPV(0.5, []float64{42}); got != 42 {
		t.Errorf("NPV of single flow = %v, expected 42", got)
	}
	if got := NPV(0.1, nil); got != 0 {
		t.Errorf("NPV of empty stream = %v, expected 0", got)
	}
}

func TestPresentValueFromYearOne(t *testing.T) {
	got := PresentValueFromYearOne(0.10, []float64{110, 121})
	if math.Abs(got-200) > 1e-9 {
		t.Errorf("PV = %v, expected 200", got)
	}
}

func TestDiscount(t *testing.T) {
	if got := Discount(121, 0.10, 2); math.Abs(got-100) > 1e-9 {
		t.Errorf("Discount = %v, expected 100", got)
	}
	if got := Discount(-5, 0.3, 0); got != -5 {
		t.Errorf("Discount at year 0 = %v, expected -5", got)
	}
}
