package edit_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tendril-lang/tendril/pkg/edit"
	"github.com/tendril-lang/tendril/pkg/occurrence"
	"github.com/tendril-lang/tendril/pkg/value"
)

func TestApplyReplacesValueAtKeyPath(t *testing.T) {
	subject := value.MustFromGo(map[string]any{"status": "pending", "id": float64(7)})
	ref := occurrence.ValueRef(occurrence.Path{occurrence.KeyStep("status")})

	res := edit.Apply(subject, []edit.Edit{{Ref: ref, Replacement: value.String("done")}})

	out, ok := res.Tree.Get("status")
	require.True(t, ok)
	s, _ := out.AsString()
	assert.Equal(t, "done", s)
	assert.Len(t, res.Applied, 1)
	assert.Empty(t, res.Skipped)

	// original left untouched
	orig, _ := subject.Get("status")
	origStr, _ := orig.AsString()
	assert.Equal(t, "pending", origStr)
}

func TestApplyReplacesValueAtIndexPath(t *testing.T) {
	subject := value.MustFromGo([]any{float64(1), float64(2), float64(3)})
	ref := occurrence.ValueRef(occurrence.Path{occurrence.IndexStep(1)})

	res := edit.Apply(subject, []edit.Edit{{Ref: ref, Replacement: value.Number(99)}})

	seq, ok := res.Tree.AsSequence()
	require.True(t, ok)
	n, _ := seq[1].AsNumber()
	assert.Equal(t, float64(99), n)
}

func TestApplySkipsStaleEditAtMissingKey(t *testing.T) {
	subject := value.MustFromGo(map[string]any{"a": float64(1)})
	ref := occurrence.ValueRef(occurrence.Path{occurrence.KeyStep("nope")})

	res := edit.Apply(subject, []edit.Edit{{Ref: ref, Replacement: value.Number(0)}})
	if diff := cmp.Diff(subject, res.Tree); diff != "" {
		t.Errorf("tree should be unchanged (-want +got):\n%s", diff)
	}
	assert.Len(t, res.Skipped, 1)
	assert.Empty(t, res.Applied)
}

func TestApplyDeduplicatesIdenticalEdits(t *testing.T) {
	subject := value.MustFromGo(map[string]any{"a": float64(1)})
	ref := occurrence.ValueRef(occurrence.Path{occurrence.KeyStep("a")})
	edits := []edit.Edit{
		{Ref: ref, Replacement: value.Number(2)},
		{Ref: ref, Replacement: value.Number(2)},
	}

	res := edit.Apply(subject, edits)
	assert.Len(t, res.Applied, 1)
}

func TestApplyOrdersDeepestEditsFirst(t *testing.T) {
	// Replace the whole "a" mapping and, separately, "a.b" inside it.
	// Depth ordering means the child edit (a.b) applies to the original
	// tree before the parent edit (a) replaces the whole subtree. Neither
	// edit carries a recorded value, so no staleness check applies and
	// both land.
	subject := value.MustFromGo(map[string]any{
		"a": map[string]any{"b": float64(1)},
	})
	childRef := occurrence.ValueRef(occurrence.Path{occurrence.KeyStep("a"), occurrence.KeyStep("b")})
	parentRef := occurrence.ValueRef(occurrence.Path{occurrence.KeyStep("a")})

	res := edit.Apply(subject, []edit.Edit{
		{Ref: parentRef, Replacement: value.String("replaced")},
		{Ref: childRef, Replacement: value.Number(2)},
	})

	// Child edit (depth 2) applies first against the original tree, then
	// the parent edit (depth 1) overwrites the whole "a" subtree anyway.
	out, ok := res.Tree.Get("a")
	require.True(t, ok)
	s, _ := out.AsString()
	assert.Equal(t, "replaced", s)
	assert.Len(t, res.Applied, 2)
}

func TestApplyArraySliceReplacesSpan(t *testing.T) {
	subject := value.MustFromGo([]any{float64(1), float64(2), float64(3), float64(4)})
	ref := occurrence.ArraySliceRef(occurrence.Path{}, 1, 3)
	repl := value.Sequence(value.Number(20), value.Number(30), value.Number(40))

	res := edit.Apply(subject, []edit.Edit{{Ref: ref, Replacement: repl}})
	seq, ok := res.Tree.AsSequence()
	require.True(t, ok)
	nums := make([]float64, len(seq))
	for i, e := range seq {
		nums[i], _ = e.AsNumber()
	}
	assert.Equal(t, []float64{1, 20, 30, 40, 4}, nums)
}

func TestApplySkipsStaleEditOnRecordedValueMismatch(t *testing.T) {
	subject := value.MustFromGo(map[string]any{"status": "pending"})
	ref := occurrence.ValueRef(occurrence.Path{occurrence.KeyStep("status")})

	// A solution recorded "queued" at this ref, but the live tree holds
	// "pending" — an earlier edit in the same batch (or just a stale
	// caller) already changed it, so this edit must be skipped even
	// though the key still structurally exists.
	stale := edit.WithRecorded(ref, value.String("done"), value.String("queued"))
	res := edit.Apply(subject, []edit.Edit{stale})
	assert.Empty(t, res.Applied)
	assert.Len(t, res.Skipped, 1)

	fresh := edit.WithRecorded(ref, value.String("done"), value.String("pending"))
	res = edit.Apply(subject, []edit.Edit{fresh})
	assert.Len(t, res.Applied, 1)
	out, _ := res.Tree.Get("status")
	s, _ := out.AsString()
	assert.Equal(t, "done", s)
}

func TestApplyStaleValueCheckCatchesOverlappingEditsInOneBatch(t *testing.T) {
	// Two edits target overlapping regions from solutions captured before
	// either edit ran. The deeper edit (b) applies first and changes "a",
	// so the shallower edit's recorded snapshot of the whole "a" mapping
	// no longer matches the live tree and must be skipped as stale.
	subject := value.MustFromGo(map[string]any{
		"a": map[string]any{"b": float64(1)},
	})
	aVal, _ := subject.Get("a")
	childRef := occurrence.ValueRef(occurrence.Path{occurrence.KeyStep("a"), occurrence.KeyStep("b")})
	parentRef := occurrence.ValueRef(occurrence.Path{occurrence.KeyStep("a")})

	res := edit.Apply(subject, []edit.Edit{
		edit.WithRecorded(parentRef, value.String("replaced"), aVal),
		edit.WithRecorded(childRef, value.Number(2), value.Number(1)),
	})

	out, ok := res.Tree.Get("a")
	require.True(t, ok)
	m, ok := out.AsMapping()
	require.True(t, ok)
	b, _ := m.Get("b")
	n, _ := b.AsNumber()
	assert.Equal(t, float64(2), n)
	assert.Len(t, res.Applied, 1)
	assert.Len(t, res.Skipped, 1)
}

func TestApplyObjectKeysReplacesResidualKeys(t *testing.T) {
	subject := value.MustFromGo(map[string]any{"a": float64(1), "b": float64(2), "c": float64(3)})
	ref := occurrence.ObjectKeysRef(occurrence.Path{}, []string{"b", "c"})
	repl := value.Mapping(value.Pair{Key: "z", Value: value.Number(9)})

	res := edit.Apply(subject, []edit.Edit{{Ref: ref, Replacement: repl}})
	assert.Equal(t, []string{"a", "z"}, res.Tree.Keys())
}
