package options

import "testing"

func floatsEqual(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func intsEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestExpandFloat64SequenceCommaList(t *testing.T) {
	got, err := ExpandFloat64Sequence("0.8,1.0,1.2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []float64{0.8, 1.0, 1.2}
	if !floatsEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestExpandFloat64SequenceSteppedRange(t *testing.T) {
	got, err := ExpandFloat64Sequence("0.8..1.2:0.1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []float64{0.8, 0.9, 1.0, 1.1, 1.2}
	if !floatsEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestExpandFloat64SequenceSubtraction(t *testing.T) {
	got, err := ExpandIntSequence("1..5-3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []int{1, 2, 4, 5}
	if !intsEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestExpandIntSequenceCommaList(t *testing.T) {
	got, err := ExpandIntSequence("1,2,4,8")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []int{1, 2, 4, 8}
	if !intsEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestExpandFloat64SequenceRejectsDuplicateAdd(t *testing.T) {
	if _, err := ExpandFloat64Sequence("1.0,1.0"); err == nil {
		t.Error("expected an error adding the same value twice")
	}
}

func TestExpandFloat64SequenceRejectsRemovingUnadded(t *testing.T) {
	if _, err := ExpandFloat64Sequence("1.0-2.0"); err == nil {
		t.Error("expected an error removing a value that was never added")
	}
}

func TestExpandFloat64SequenceRejectsEmptyInput(t *testing.T) {
	if _, err := ExpandFloat64Sequence(""); err == nil {
		t.Error("expected an error for an empty sequence string")
	}
}
