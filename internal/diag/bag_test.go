package diag_test

import (
	"testing"

	"mojomls/internal/diag"
	"mojomls/internal/source"
)

func span(start, end uint32) source.Span {
	return source.Span{File: 0, Start: start, End: end}
}

func TestBagLimit(t *testing.T) {
	bag := diag.NewBag(2)
	for i := 0; i < 5; i++ {
		bag.Add(diag.Diagnostic{Code: diag.SynUnexpectedToken, Severity: diag.SevError, Primary: span(uint32(i), uint32(i+1))})
	}
	if bag.Len() != 2 {
		t.Errorf("Len() = %d, want 2", bag.Len())
	}
	if !bag.HasErrors() {
		t.Errorf("expected HasErrors")
	}
}

func TestBagSortDeterministic(t *testing.T) {
	bag := diag.NewBag(10)
	bag.Add(diag.Diagnostic{Code: diag.SynExpectSemicolon, Severity: diag.SevError, Primary: span(10, 11)})
	bag.Add(diag.Diagnostic{Code: diag.LexUnknownChar, Severity: diag.SevError, Primary: span(2, 3)})
	bag.Add(diag.Diagnostic{Code: diag.SemDuplicateDeclaration, Severity: diag.SevWarning, Primary: span(2, 3)})
	bag.Sort()
	items := bag.Items()
	if items[0].Primary.Start != 2 || items[0].Severity != diag.SevError {
		t.Errorf("sort order wrong: %+v", items[0])
	}
	if items[2].Primary.Start != 10 {
		t.Errorf("sort order wrong: %+v", items[2])
	}
}

func TestBagDedup(t *testing.T) {
	bag := diag.NewBag(10)
	d := diag.Diagnostic{Code: diag.SynUnexpectedToken, Severity: diag.SevError, Primary: span(0, 1)}
	bag.Add(d)
	bag.Add(d)
	bag.Dedup()
	if bag.Len() != 1 {
		t.Errorf("Len() after Dedup = %d, want 1", bag.Len())
	}
}

func TestDedupReporter(t *testing.T) {
	bag := diag.NewBag(10)
	rep := diag.NewDedupReporter(diag.BagReporter{Bag: bag})
	rep.Report(diag.SynUnexpectedToken, diag.SevError, span(0, 1), "boom", nil)
	rep.Report(diag.SynUnexpectedToken, diag.SevError, span(0, 1), "boom", nil)
	rep.Report(diag.SynUnexpectedToken, diag.SevError, span(0, 1), "other", nil)
	if bag.Len() != 2 {
		t.Errorf("Len() = %d, want 2", bag.Len())
	}
}

func TestCodeID(t *testing.T) {
	cases := []struct {
		code diag.Code
		want string
	}{
		{diag.LexUnterminatedString, "LEX1002"},
		{diag.SynUnexpectedToken, "SYN2001"},
		{diag.SemUnresolvedImport, "SEM3003"},
		{diag.ProjNoRoot, "PRJ5001"},
	}
	for _, tc := range cases {
		if got := tc.code.ID(); got != tc.want {
			t.Errorf("ID() = %q, want %q", got, tc.want)
		}
	}
}
