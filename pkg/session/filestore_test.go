package session

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/stackshift-net/stackshift/pkg/model"
	"github.com/stackshift-net/stackshift/pkg/util"
)

func testStack(name string) *model.Stack {
	return &model.Stack{
		Name: name,
		Units: []model.StackUnit{
			{Unit: 1, Host: "10.0.0.1", Capacity: 24, Method: "SSH", InterfaceCount: 1},
		},
		Interfaces: []*model.InterfaceRecord{
			{Name: "GE 1/0/1", OriginalName: "GigabitEthernet0/0/1",
				LinkMode: model.LinkModeAccess, AccessVLAN: 10},
		},
		VLANs: model.NewVLANSet(10),
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	store := NewFileStore(t.TempDir())
	ctx := context.Background()

	st := testStack("BLD-A")
	if err := store.Save(ctx, st); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	got, err := store.Load(ctx, "BLD-A")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if !reflect.DeepEqual(got, st) {
		t.Errorf("Load() = %+v, want %+v", got, st)
	}
}

func TestFileStoreLoadMissing(t *testing.T) {
	store := NewFileStore(t.TempDir())

	_, err := store.Load(context.Background(), "nope")
	if !errors.Is(err, util.ErrStackNotFound) {
		t.Errorf("Load() error = %v, want ErrStackNotFound", err)
	}
}

func TestFileStoreList(t *testing.T) {
	store := NewFileStore(t.TempDir())
	ctx := context.Background()

	names, err := store.List(ctx)
	if err != nil || names != nil {
		t.Fatalf("List() on empty dir = %v, %v", names, err)
	}

	for _, name := range []string{"BLD-A", "BLD-B"} {
		if err := store.Save(ctx, testStack(name)); err != nil {
			t.Fatalf("Save(%s) error: %v", name, err)
		}
	}

	names, err = store.List(ctx)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if want := []string{"BLD-A", "BLD-B"}; !reflect.DeepEqual(names, want) {
		t.Errorf("List() = %v, want %v", names, want)
	}
}

func TestFileStoreDelete(t *testing.T) {
	store := NewFileStore(t.TempDir())
	ctx := context.Background()

	if err := store.Save(ctx, testStack("BLD-A")); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if err := store.Delete(ctx, "BLD-A"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if _, err := store.Load(ctx, "BLD-A"); !errors.Is(err, util.ErrStackNotFound) {
		t.Errorf("Load() after delete = %v, want ErrStackNotFound", err)
	}

	// Deleting a missing stack is not an error.
	if err := store.Delete(ctx, "BLD-A"); err != nil {
		t.Errorf("Delete() of missing stack = %v", err)
	}
}

func TestFileStoreSaveUnnamed(t *testing.T) {
	store := NewFileStore(t.TempDir())
	err := store.Save(context.Background(), &model.Stack{})
	if !errors.Is(err, util.ErrMissingField) {
		t.Errorf("Save() error = %v, want ErrMissingField", err)
	}
}
