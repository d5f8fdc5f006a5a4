package calc

import "testing"

func TestApply(t *testing.T) {
	tests := []struct {
		name   string
		op     Op
		a, b   int
		want   int
		wantOK bool
	}{
		{"add", OpAdd, 5, 3, 8, true},
		{"sub", OpSub, 5, 7, -2, true},
		{"mul", OpMul, 6, 7, 42, true},
		{"div exact", OpDiv, 18, 3, 6, true},
		{"div floors", OpDiv, 7, 2, 3, true},
		{"div floors negative", OpDiv, -7, 2, -4, true},
		{"div by zero", OpDiv, 7, 0, 0, false},
		{"none", OpNone, 1, 1, 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Apply(tc.op, tc.a, tc.b)
			if ok != tc.wantOK {
				t.Fatalf("Apply ok = %v, expected %v", ok, tc.wantOK)
			}
			if ok && got != tc.want {
				t.Errorf("Apply(%v, %d, %d) = %d, expected %d", tc.op, tc.a, tc.b, got, tc.want)
			}
		})
	}
}

func TestFivePlusThree(t *testing.T) {
	c := New()
	c.Feed(KindNumber, 5, OpNone)
	c.Feed(KindOperator, 0, OpAdd)
	out := c.Feed(KindNumber, 3, OpNone)

	if !out.Accepted {
		t.Fatal("expected final number to be accepted")
	}
	if out.Expr != "5 + 3 = 8" {
		t.Errorf("Expr = %q", out.Expr)
	}
	st := c.State()
	if st.Value != 8 || st.Phase != PhaseAwaitingOperator || st.Pending != OpNone {
		t.Errorf("state = %+v, expected value 8 awaiting operator", st)
	}
	if !c.Reached(8) {
		t.Error("expected target 8 to be reached")
	}
}

func TestTransitionTable(t *testing.T) {
	type feed struct {
		kind  Kind
		value int
		op    Op
	}
	num := func(v int) feed { return feed{KindNumber, v, OpNone} }
	oper := func(o Op) feed { return feed{KindOperator, 0, o} }

	tests := []struct {
		name     string
		prefix   []feed
		input    feed
		accepted bool
		phase    Phase
	}{
		{"initial number", nil, num(4), true, PhaseAwaitingOperator},
		{"initial operator ignored", nil, oper(OpAdd), false, PhaseInitial},
		{"operator after number", []feed{num(4)}, oper(OpMul), true, PhaseAwaitingNumber},
		{"number after number ignored", []feed{num(4)}, num(2), false, PhaseAwaitingOperator},
		{"number completes step", []feed{num(4), oper(OpMul)}, num(2), true, PhaseAwaitingOperator},
		{"second operator ignored", []feed{num(4), oper(OpMul)}, oper(OpSub), false, PhaseAwaitingNumber},
		{"division by zero ignored", []feed{num(4), oper(OpDiv)}, num(0), false, PhaseAwaitingNumber},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := New()
			for _, f := range tc.prefix {
				c.Feed(f.kind, f.value, f.op)
			}
			before := c.State()
			out := c.Feed(tc.input.kind, tc.input.value, tc.input.op)

			if out.Accepted != tc.accepted {
				t.Errorf("Accepted = %v, expected %v", out.Accepted, tc.accepted)
			}
			if c.State().Phase != tc.phase {
				t.Errorf("Phase = %v, expected %v", c.State().Phase, tc.phase)
			}
			if !tc.accepted && c.State() != before {
				t.Errorf("rejected tile changed state: %+v -> %+v", before, c.State())
			}
		})
	}
}

func TestDivisionByZeroKeepsPending(t *testing.T) {
	c := New()
	c.Feed(KindNumber, 9, OpNone)
	c.Feed(KindOperator, 0, OpDiv)

	out := c.Feed(KindNumber, 0, OpNone)
	if out.Accepted {
		t.Fatal("division by zero must not be accepted")
	}
	st := c.State()
	if st.Pending != OpDiv || st.Value != 9 {
		t.Errorf("state = %+v, expected pending ÷ with value 9", st)
	}

	// A later valid divisor still applies.
	c.Feed(KindNumber, 3, OpNone)
	if c.State().Value != 3 {
		t.Errorf("Value = %d, expected 3", c.State().Value)
	}
}

func TestAlternationNeverDoubles(t *testing.T) {
	// Feed an arbitrary interleaving; accepted kinds must strictly alternate
	// starting with a number.
	seq := []struct {
		kind Kind
		v    int
		op   Op
	}{
		{KindOperator, 0, OpAdd},
		{KindNumber, 2, OpNone},
		{KindNumber, 3, OpNone},
		{KindOperator, 0, OpMul},
		{KindOperator, 0, OpSub},
		{KindNumber, 4, OpNone},
		{KindNumber, 5, OpNone},
		{KindOperator, 0, OpSub},
		{KindNumber, 1, OpNone},
	}

	c := New()
	var accepted []Kind
	for _, s := range seq {
		if out := c.Feed(s.kind, s.v, s.op); out.Accepted {
			accepted = append(accepted, out.Kind)
		}
	}
	for i, k := range accepted {
		want := KindNumber
		if i%2 == 1 {
			want = KindOperator
		}
		if k != want {
			t.Fatalf("accepted[%d] = %v, expected %v (sequence %v)", i, k, want, accepted)
		}
	}
	if c.State().Value != 7 {
		t.Errorf("Value = %d, expected 2*4-1 = 7", c.State().Value)
	}
}

func TestReachedRequiresValue(t *testing.T) {
	c := New()
	if c.Reached(0) {
		t.Error("initial calculator must not reach 0")
	}
	if c.State().Display() != 0 {
		t.Error("initial display should be 0")
	}
	c.Feed(KindNumber, 6, OpNone)
	c.Reset()
	if c.State().Phase != PhaseInitial {
		t.Error("Reset should return to initial phase")
	}
}

func TestOpText(t *testing.T) {
	for _, op := range AllOps {
		b, _ := op.MarshalText()
		var back Op
		if err := back.UnmarshalText(b); err != nil || back != op {
			t.Errorf("round trip %v -> %q -> %v (%v)", op, b, back, err)
		}
	}
	var o Op
	if err := o.UnmarshalText([]byte("%")); err == nil {
		t.Error("expected error for unknown operator")
	}
}
