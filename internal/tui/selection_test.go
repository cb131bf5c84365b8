package tui

import (
	"fmt"
	"testing"

	"github.com/user/gifdeck/internal/db"
	"github.com/user/gifdeck/internal/klipy"
	"github.com/user/gifdeck/internal/search"
)

func remoteItems(start, n int) []search.Item {
	items := make([]search.Item, 0, n)
	for i := start; i < start+n; i++ {
		items = append(items, search.RemoteItem(klipy.Gif{
			ID:    fmt.Sprintf("%d", i),
			Title: fmt.Sprintf("gif %d", i),
		}))
	}
	return items
}

func TestColumnsForWidth(t *testing.T) {
	cases := []struct {
		width, want int
	}{
		{20, 1},
		{40, 1},
		{41, 2},
		{80, 2},
		{81, 3},
		{120, 3},
		{121, 4},
		{200, 4},
	}
	for _, tc := range cases {
		if got := ColumnsForWidth(tc.width); got != tc.want {
			t.Errorf("ColumnsForWidth(%d) = %d, want %d", tc.width, got, tc.want)
		}
	}
}

func TestMoveClampsAtEnds(t *testing.T) {
	sel := NewSelection()
	sel.Select(0)

	sel.Move(-1, 10)
	if sel.Index() != 0 {
		t.Errorf("moving left from the first item should clamp, got %d", sel.Index())
	}

	sel.Select(9)
	sel.Move(1, 10)
	if sel.Index() != 9 {
		t.Errorf("moving right from the last item should clamp, got %d", sel.Index())
	}
}

func TestMoveFromNoSelectionLandsOnFirst(t *testing.T) {
	sel := NewSelection()
	sel.Move(1, 10)
	if sel.Index() != 0 {
		t.Errorf("got %d, want 0", sel.Index())
	}

	sel = NewSelection()
	sel.Move(-1, 10)
	if sel.Index() != 0 {
		t.Errorf("backward movement from no selection should also land on 0, got %d", sel.Index())
	}
}

func TestMoveEmptySequence(t *testing.T) {
	sel := NewSelection()
	sel.Select(3)
	sel.Move(1, 0)
	if sel.Index() != NoSelection {
		t.Errorf("got %d, want NoSelection", sel.Index())
	}
}

func TestMoveRowUsesColumnCount(t *testing.T) {
	sel := NewSelection()
	sel.Select(1)

	sel.MoveRow(1, 3, 12)
	if sel.Index() != 4 {
		t.Errorf("down one row in a 3-column grid: got %d, want 4", sel.Index())
	}

	sel.MoveRow(-1, 3, 12)
	if sel.Index() != 1 {
		t.Errorf("back up: got %d, want 1", sel.Index())
	}

	// A partial last row clamps instead of overshooting.
	sel.Select(10)
	sel.MoveRow(1, 3, 12)
	if sel.Index() != 11 {
		t.Errorf("got %d, want 11", sel.Index())
	}
}

func TestApplyPreservesSelectionOnAppend(t *testing.T) {
	old := remoteItems(0, 20)
	updated := append(append([]search.Item{}, old...), remoteItems(20, 10)...)

	sel := NewSelection()
	sel.Select(15)
	sel.Apply(old, updated)
	if sel.Index() != 15 {
		t.Errorf("append-only growth must keep the selection, got %d", sel.Index())
	}
}

func TestApplyResetsSelectionOnReplacement(t *testing.T) {
	old := remoteItems(0, 20)
	updated := remoteItems(100, 5)

	sel := NewSelection()
	sel.Select(15)
	sel.Apply(old, updated)
	if sel.Index() != NoSelection {
		t.Errorf("replacement must reset the selection, got %d", sel.Index())
	}
}

func TestApplyResetsWhenSelectionFallsOffShrunkList(t *testing.T) {
	old := remoteItems(0, 10)

	sel := NewSelection()
	sel.Select(8)
	sel.Apply(old, old[:5])
	if sel.Index() != NoSelection {
		t.Errorf("got %d, want NoSelection", sel.Index())
	}
}

func TestApplyMixedKindsComparesNamespacedIDs(t *testing.T) {
	// A favorite and a remote result with the same raw id are different items.
	old := []search.Item{search.FavoriteItem(db.Favorite{ID: 7, Filename: "a.gif"})}
	updated := []search.Item{search.RemoteItem(klipy.Gif{ID: "7", Title: "a"})}

	sel := NewSelection()
	sel.Select(0)
	sel.Apply(old, updated)
	if sel.Index() != NoSelection {
		t.Errorf("got %d, want NoSelection", sel.Index())
	}
}
