package fingerprint

import "testing"

func TestFingerprintNormalizesCaseAndWhitespace(t *testing.T) {
	c := New(nil)
	base := c.Fingerprint("Jane Doe\nStaff Engineer")
	for _, variant := range []string{
		"  Jane Doe\nStaff Engineer  ",
		"jane doe\nstaff engineer",
		"\n\tJANE DOE\nSTAFF ENGINEER\n",
	} {
		if got := c.Fingerprint(variant); got != base {
			t.Fatalf("variant %q produced different fingerprint", variant)
		}
	}
}

func TestFingerprintDistinguishesInteriorWhitespace(t *testing.T) {
	c := New(nil)
	if c.Fingerprint("Jane Doe") == c.Fingerprint("Jane  Doe") {
		t.Fatal("interior whitespace must change the fingerprint")
	}
}

func TestLookupMissesUnknownFingerprint(t *testing.T) {
	c := New(nil)
	if _, ok := c.Lookup("absent"); ok {
		t.Fatal("unexpected hit on empty cache")
	}
}

func TestInsertFirstEntryWins(t *testing.T) {
	c := New(nil)
	fp := c.Fingerprint("some resume text")

	c.Insert(fp, "resume-1")
	c.Insert(fp, "resume-2")

	id, ok := c.Lookup(fp)
	if !ok {
		t.Fatal("expected hit after insert")
	}
	if id != "resume-1" {
		t.Fatalf("expected first insert to win, got %q", id)
	}
}
