package track

import "testing"

func TestIsUUID(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want bool
	}{
		{"canonical lowercase", "a3bb189e-8bf9-3888-9912-ace4e6543002", true},
		{"canonical uppercase", "A3BB189E-8BF9-3888-9912-ACE4E6543002", true},
		{"mixed case", "a3Bb189E-8bf9-3888-9912-acE4e6543002", true},
		{"missing hyphen group", "a3bb189e8bf9-3888-9912-ace4e6543002", false},
		{"no hyphens", "a3bb189e8bf938889912ace4e6543002", false},
		{"braced", "{a3bb189e-8bf9-3888-9912-ace4e6543002}", false},
		{"urn form", "urn:uuid:a3bb189e-8bf9-3888-9912-ace4e6543002", false},
		{"too short group", "a3bb189e-8bf9-3888-9912-ace4e654300", false},
		{"non-hex char", "a3bb189g-8bf9-3888-9912-ace4e6543002", false},
		{"trailing garbage", "a3bb189e-8bf9-3888-9912-ace4e6543002x", false},
		{"shortid", "8fa2b9c1d0e3", false},
		{"empty", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsUUID(tc.in); got != tc.want {
				t.Errorf("IsUUID(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestParseSlug(t *testing.T) {
	sel := ParseSlug("a3bb189e-8bf9-3888-9912-ace4e6543002")
	if !sel.ByID {
		t.Error("UUID slug should select by canonical id")
	}
	if sel.Value != "a3bb189e-8bf9-3888-9912-ace4e6543002" {
		t.Errorf("unexpected selector value %q", sel.Value)
	}

	sel = ParseSlug("8fa2b9c1d0e3")
	if sel.ByID {
		t.Error("non-UUID slug should select by shortid")
	}
	if sel.Value != "8fa2b9c1d0e3" {
		t.Errorf("unexpected selector value %q", sel.Value)
	}
}
