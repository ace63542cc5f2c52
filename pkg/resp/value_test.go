package resp

import "testing"

func TestValue_Accessors(t *testing.T) {
	v := BulkString("abc")
	if v.Kind() != BulkStringKind || v.Text() != "abc" || string(v.Bytes()) != "abc" || v.Len() != 3 {
		t.Errorf("bulk accessors wrong: %v", v)
	}

	n := Integer(7)
	if n.Int() != 7 || n.Text() != "" || n.Bytes() != nil {
		t.Errorf("integer accessors wrong: %v", n)
	}
	if v.Int() != 0 {
		t.Error("Int() of non-integer should be 0")
	}

	arr := Command("GET", "k")
	if arr.Len() != 2 || len(arr.Elems()) != 2 || arr.Elems()[1].Text() != "k" {
		t.Errorf("array accessors wrong: %v", arr)
	}
	if v.Elems() != nil {
		t.Error("Elems() of non-array should be nil")
	}
}

func TestValue_ZeroIsNullBulk(t *testing.T) {
	var v Value
	if v.Kind() != NullBulkKind || !v.IsNull() {
		t.Errorf("zero Value kind = %v, want null-bulk", v.Kind())
	}
	if !NullArray().IsNull() {
		t.Error("NullArray().IsNull() = false")
	}
	if BulkString("").IsNull() {
		t.Error("empty bulk string must not be null")
	}
}

func TestValue_Equal(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{"same simple", SimpleString("a"), SimpleString("a"), true},
		{"simple vs bulk", SimpleString("a"), BulkString("a"), false},
		{"simple vs error", SimpleString("a"), SimpleError("a"), false},
		{"null bulk vs null array", NullBulk(), NullArray(), false},
		{"null bulk vs empty bulk", NullBulk(), BulkString(""), false},
		{"ints", Integer(1), Integer(2), false},
		{"arrays", Command("a", "b"), Command("a", "b"), true},
		{"array lengths", Command("a"), Command("a", "b"), false},
		{"nested", Array(Array(Integer(1))), Array(Array(Integer(1))), true},
		{"nested diff", Array(Array(Integer(1))), Array(Array(Integer(2))), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("Equal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValue_String(t *testing.T) {
	v := Array(SimpleString("OK"), Integer(1), NullBulk(), BulkString("x"), SimpleError("ERR"))
	want := `["OK", (integer) 1, (nil), $"x", (error) ERR]`
	if got := v.String(); got != want {
		t.Errorf("String() = %s, want %s", got, want)
	}
}

func TestKind_String(t *testing.T) {
	if ArrayKind.String() != "array" || SimpleErrorKind.String() != "simple-error" {
		t.Error("unexpected kind names")
	}
	if Kind(99).String() != "kind(99)" {
		t.Errorf("Kind(99).String() = %q", Kind(99).String())
	}
}
