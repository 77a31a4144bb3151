package expr

import "testing"

func TestScalarEquality(t *testing.T) {
	if !Int(5).Equal(Int(5)) {
		t.Fatal("Int(5) should equal Int(5)")
	}
	if Int(5).Equal(Int(6)) {
		t.Fatal("Int(5) should not equal Int(6)")
	}
	if !Float(1.5).Equal(Float(1.5)) {
		t.Fatal("Float(1.5) should equal Float(1.5)")
	}
	if Float(1.5).Equal(Float(1.5000001)) {
		t.Fatal("float equality must be bit-exact, no tolerance")
	}
	if Int(5).Equal(Bool(true)) {
		t.Fatal("values of different kind are never equal")
	}
}

func TestArrayEqualityIsOrdered(t *testing.T) {
	a := Array(Int(1), Int(2), Int(3))
	b := Array(Int(1), Int(2), Int(3))
	c := Array(Int(3), Int(2), Int(1))
	if !a.Equal(b) {
		t.Fatal("identical arrays must be equal")
	}
	if a.Equal(c) {
		t.Fatal("array equality must respect order")
	}
}

func TestSetEqualityIsUnordered(t *testing.T) {
	a := Set(Int(1), Int(2), Int(3))
	b := Set(Int(3), Int(1), Int(2))
	if !a.Equal(b) {
		t.Fatal("set equality must be order-independent")
	}
}

func TestSetEqualityRequiresSameCardinality(t *testing.T) {
	a := Set(Int(1), Int(2))
	b := Set(Int(1), Int(2), Int(3))
	if a.Equal(b) {
		t.Fatal("sets of different cardinality must not be equal")
	}
}

func TestSetEqualityHandlesDuplicatesSymmetrically(t *testing.T) {
	// {1,1,2} folds to {1,2}; compare against {2,1}.
	a := Set(Int(1), Int(1), Int(2))
	b := Set(Int(2), Int(1))
	if !a.Equal(b) {
		t.Fatal("duplicate-folded sets must compare equal to their de-duplicated form")
	}
}

func TestHead(t *testing.T) {
	ann := Array(String("priority"), Int(1))
	name, ok := ann.Head()
	if !ok || name != "priority" {
		t.Fatalf("Head() = (%q, %v), want (\"priority\", true)", name, ok)
	}
	if _, ok := Array().Head(); ok {
		t.Fatal("empty array has no head")
	}
	if _, ok := Array(Int(1)).Head(); ok {
		t.Fatal("array whose first element is not a string has no head")
	}
}
