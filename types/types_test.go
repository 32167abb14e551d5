package types

import "testing"

func TestKindPredicates(t *testing.T) {
	tests := []struct {
		kind                      TokenKind
		constant, integer, specifier bool
	}{
		{INT_CONST, true, true, false},
		{ULONG_CONST, true, true, false},
		{DOUBLE_CONST, true, false, false},
		{CHAR_CONST, true, false, false},
		{STRING, false, false, false},
		{IDENT, false, false, false},
		{UNSIGNED, false, false, true},
		{STATIC, false, false, true},
	}
	for _, tt := range tests {
		if got := tt.kind.IsConstant(); got != tt.constant {
			t.Errorf("%s.IsConstant() = %v", tt.kind, got)
		}
		if got := tt.kind.IsIntegerConstant(); got != tt.integer {
			t.Errorf("%s.IsIntegerConstant() = %v", tt.kind, got)
		}
		if got := tt.kind.IsSpecifier(); got != tt.specifier {
			t.Errorf("%s.IsSpecifier() = %v", tt.kind, got)
		}
	}
	if STATIC.IsTypeSpecifier() || !STATIC.IsStorageClass() {
		t.Error("static is a storage class, not a type specifier")
	}
}
