package alu

import "testing"

func TestAddCarry(t *testing.T) {
	r, c := Add(0xFFFF, 1)
	if r != 0 || !c {
		t.Fatalf("Add(0xFFFF,1) = (%#x, %v), want (0, true)", r, c)
	}
	r, c = Add(1, 1)
	if r != 2 || c {
		t.Fatalf("Add(1,1) = (%#x, %v), want (2, false)", r, c)
	}
}

func TestSubBorrow(t *testing.T) {
	r, c := Sub(5, 3)
	if r != 2 || c {
		t.Fatalf("Sub(5,3) = (%d, %v), want (2, false)", r, c)
	}
	r, c = Sub(3, 5)
	if r != 0xFFFE || !c {
		t.Fatalf("Sub(3,5) = (%#x, %v), want (0xfffe, true)", r, c)
	}
}

func TestLogical(t *testing.T) {
	if And(0xF0F0, 0x0FF0) != 0x00F0 {
		t.Fatal("And mismatch")
	}
	if Or(0xF000, 0x0F00) != 0xFF00 {
		t.Fatal("Or mismatch")
	}
	if Xor(0xFFFF, 0x0F0F) != 0xF0F0 {
		t.Fatal("Xor mismatch")
	}
	if Not(0x0000) != 0xFFFF {
		t.Fatal("Not mismatch")
	}
}

func TestShiftBounds(t *testing.T) {
	if ShiftLeft(0xFFFF, 16) != 0 {
		t.Fatal("ShiftLeft by 16 should yield 0")
	}
	if ShiftRight(0xFFFF, 100) != 0 {
		t.Fatal("ShiftRight by >=16 should yield 0")
	}
	if ShiftLeft(1, 15) != 0x8000 {
		t.Fatal("ShiftLeft(1,15) should be 0x8000")
	}
}

func TestDivModByZero(t *testing.T) {
	if Udiv16(10, 0) != 0 {
		t.Fatal("divide by zero should yield 0")
	}
	if Umod16(10, 0) != 0 {
		t.Fatal("mod by zero should yield 0")
	}
}
