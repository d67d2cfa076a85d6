package query

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/unkn0wn-root/richlist/internal/viewmodel"
)

func TestCollectFiltersSkipsEmptyAndNone(t *testing.T) {
	view := viewmodel.NewSnapshot(viewmodel.DefaultDefaults())
	view.Filters = []viewmodel.FilterField{
		{ID: "filter_field_1", Name: "season", Value: "2023"},
		{ID: "filter_field_2", Name: "league", Value: "None"},
		{ID: "filter_field_3", Name: "player", Value: ""},
		{ID: "search_box", Name: "q", Value: "ignored"},
		{ID: "filter_field_4", Name: "game__name", Value: "Ticket to Ride"},
	}

	got := CollectFilters(view)
	want := []string{"season=2023", "game__name=Ticket+to+Ride"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("filters mismatch (-want +got):\n%s", diff)
	}
	for _, term := range got {
		if term == "league=None" || term == "player=" {
			t.Fatalf("unexpected term %q", term)
		}
	}
}

func TestMergeFiltersAppendsMissingCurrentTerms(t *testing.T) {
	view := viewmodel.NewSnapshot(viewmodel.DefaultDefaults())
	view.Filters = []viewmodel.FilterField{{ID: "filter_field_1", Name: "season", Value: "2023"}}

	got := MergeFilters(CollectFilters(view), []string{"week=5"})
	want := []string{"season=2023", "week=5"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("filters mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeFiltersSkipsTermsAlreadyInPanel(t *testing.T) {
	got := MergeFilters(
		[]string{"season=2023", "week=5"},
		[]string{"week=5", "player=7", "player=7"},
	)
	want := []string{"season=2023", "week=5", "player=7", "player=7"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("filters mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeFiltersWithoutCurrent(t *testing.T) {
	panel := []string{"season=2023"}
	if diff := cmp.Diff(panel, MergeFilters(panel, nil)); diff != "" {
		t.Fatalf("expected panel unchanged (-want +got):\n%s", diff)
	}
	if got := MergeFilters(nil, nil); len(got) != 0 {
		t.Fatalf("expected empty merge, got %v", got)
	}
}
