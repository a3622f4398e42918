package identity

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Jalen Brunson", "jalenbrunson"},
		{"  LeBron James ", "lebronjames"},
		{"balldontlie-123", "balldontlie123"},
		{"O'Neal, Shaquille", "onealshaquille"},
		{"---", ""},
		{"", ""},
	}
	for _, tc := range tests {
		if got := Normalize(tc.in); got != tc.want {
			t.Fatalf("Normalize(%q) = %q, expected %q", tc.in, got, tc.want)
		}
	}
}

func TestIdentitySetOmitsEmpties(t *testing.T) {
	set := IdentitySet(PlayerReference{RawID: "abc-1", ProviderID: "", DisplayName: "  "})
	if len(set) != 1 {
		t.Fatalf("expected 1 identity, got %d", len(set))
	}
	if _, ok := set["abc1"]; !ok {
		t.Fatalf("expected normalized raw id in set, got %v", set)
	}
}

func TestMatchesAcrossProviders(t *testing.T) {
	local := PlayerReference{RawID: "local-rosters:brunson", DisplayName: "Jalen Brunson"}
	remote := PlayerReference{RawID: "balldontlie-123", DisplayName: "Jalen Brunson"}
	if !Matches(local, remote) {
		t.Fatal("expected display-name identity to match across providers")
	}

	other := PlayerReference{RawID: "balldontlie-456", DisplayName: "Josh Hart"}
	if Matches(local, other) {
		t.Fatal("expected disjoint identities not to match")
	}
}

func TestMatchesOnProviderID(t *testing.T) {
	a := PlayerReference{RawID: "uuid-1", ProviderID: "bdl-77"}
	b := PlayerReference{RawID: "bdl-77", DisplayName: "Someone Else"}
	if !Matches(a, b) {
		t.Fatal("expected provider id to match the other side's raw id")
	}
}

func TestEmptyReferencesNeverMatch(t *testing.T) {
	if Matches(PlayerReference{}, PlayerReference{}) {
		t.Fatal("empty references must not match")
	}
}
