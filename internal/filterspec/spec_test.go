package filterspec

import (
	"reflect"
	"testing"

	"github.com/unkn0wn-root/richlist/internal/errdef"
)

func TestParse(t *testing.T) {
	cases := []struct {
		term string
		want Spec
	}{
		{"season=2023", Spec{Components: []string{"season"}, Lookup: "exact", Value: "2023"}},
		{"week__gt=5", Spec{Components: []string{"week"}, Lookup: "gt", Value: "5"}},
		{
			"game__name__icontains=ticket+to",
			Spec{Components: []string{"game", "name"}, Lookup: "icontains", Value: "ticket to"},
		},
		{
			"sessions__league__id=3",
			Spec{Components: []string{"sessions", "league", "id"}, Lookup: "exact", Value: "3"},
		},
		{"gt=1", Spec{Components: []string{"gt"}, Lookup: "exact", Value: "1"}},
	}
	for _, tc := range cases {
		got, err := Parse(tc.term)
		if err != nil {
			t.Fatalf("Parse(%q): %v", tc.term, err)
		}
		if !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("Parse(%q) = %#v, want %#v", tc.term, got, tc.want)
		}
	}
}

func TestParseRejectsMalformedTerms(t *testing.T) {
	for _, term := range []string{"season", "=5", "a____b=1", "x=%zz"} {
		_, err := Parse(term)
		if err == nil {
			t.Fatalf("expected error for %q", term)
		}
		if !errdef.Is(err, errdef.CodeFilter) {
			t.Fatalf("expected filter error code for %q, got %v", term, err)
		}
	}
}

func TestTermRoundTrip(t *testing.T) {
	for _, term := range []string{"season=2023", "week__lte=9", "game__name=Ticket+to+Ride"} {
		spec, err := Parse(term)
		if err != nil {
			t.Fatalf("Parse(%q): %v", term, err)
		}
		if got := spec.Term(); got != term {
			t.Fatalf("expected %q, got %q", term, got)
		}
	}
}

func TestDescribe(t *testing.T) {
	got := Describe([]string{"season=2023", "week__gt=5", "broken"})
	want := "season = 2023 and week > 5 and broken"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
	if Describe(nil) != "" {
		t.Fatalf("expected empty description")
	}
}

func TestFromURLSkipsReservedAndFlags(t *testing.T) {
	got, err := FromURL("/list/Game?brief&noindex&week=5&league=3&ordering=-name&game__name=Catan", "season")
	if err != nil {
		t.Fatalf("FromURL: %v", err)
	}
	want := []string{"week=5", "game__name=Catan"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	if got := fromQuery(""); got != nil {
		t.Fatalf("expected nil for empty query, got %v", got)
	}
	if got := fromQuery("?season=2023", "season"); got != nil {
		t.Fatalf("expected extra key to be skipped, got %v", got)
	}
}

func TestFromURLNormalisesEncoding(t *testing.T) {
	got, err := FromURL("/list/Game?game__name=Ticket%20to%20Ride&week__gt=5&bad=%zz")
	if err != nil {
		t.Fatalf("FromURL: %v", err)
	}
	want := []string{"game__name=Ticket+to+Ride", "week__gt=5", "bad=%zz"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}
