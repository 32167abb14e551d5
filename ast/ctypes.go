package ast

// Type is a C type: a Primitive, *Pointer, *Array or *FunType. Types are
// never mutated after the parser builds them.
type Type interface {
	isType()
}

type Primitive int

const (
	Int Primitive = iota
	Long
	UInt
	ULong
	Char
	SChar
	UChar
	Double
	Void
)

var primitiveToStr = [...]string{
	Int:    "Int",
	Long:   "Long",
	UInt:   "Unsigned Int",
	ULong:  "Unsigned Long",
	Char:   "Char",
	SChar:  "Signed Char",
	UChar:  "Unsigned Char",
	Double: "Double",
	Void:   "Void",
}

func (p Primitive) String() string {
	if p < 0 || int(p) >= len(primitiveToStr) {
		return "Unknown"
	}
	return primitiveToStr[p]
}

type Pointer struct {
	Referenced Type
}

type Array struct {
	Size uint64
	Elem Type
}

type FunType struct {
	Params []Type
	Ret    Type
}

func (Primitive) isType() {}
func (*Pointer) isType()  {}
func (*Array) isType()    {}
func (*FunType) isType()  {}

// TypeEqual reports whether two types are structurally identical.
func TypeEqual(a, b Type) bool {
	switch a := a.(type) {
	case Primitive:
		b, ok := b.(Primitive)
		return ok && a == b
	case *Pointer:
		b, ok := b.(*Pointer)
		return ok && TypeEqual(a.Referenced, b.Referenced)
	case *Array:
		b, ok := b.(*Array)
		return ok && a.Size == b.Size && TypeEqual(a.Elem, b.Elem)
	case *FunType:
		b, ok := b.(*FunType)
		if !ok || len(a.Params) != len(b.Params) || !TypeEqual(a.Ret, b.Ret) {
			return false
		}
		for i := range a.Params {
			if !TypeEqual(a.Params[i], b.Params[i]) {
				return false
			}
		}
		return true
	}
	return false
}
