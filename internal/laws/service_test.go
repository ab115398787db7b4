package laws

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
)

func TestListUnitsNoFilterReturnsAllOrdered(t *testing.T) {
	svc := NewService(newSeededRepo(t))
	units, err := svc.ListUnits(context.Background(), Filter{})
	if err != nil {
		t.Fatalf("ListUnits: %v", err)
	}
	if len(units) != 3 {
		t.Fatalf("expected 3 units, got %d", len(units))
	}
	for i, u := range units {
		if u.ID != int64(i+1) {
			t.Fatalf("expected ascending ids, got %d at %d", u.ID, i)
		}
	}
}

func TestListUnitsTagFilter(t *testing.T) {
	svc := NewService(newSeededRepo(t))
	units, err := svc.ListUnits(context.Background(), Filter{Tag: "penalty"})
	if err != nil {
		t.Fatalf("ListUnits: %v", err)
	}
	if len(units) != 1 || units[0].ID != 1 {
		t.Fatalf("expected only unit 1, got %+v", units)
	}

	units, err = svc.ListUnits(context.Background(), Filter{Tag: "nomatch"})
	if err != nil {
		t.Fatalf("ListUnits: %v", err)
	}
	if len(units) != 0 {
		t.Fatalf("expected empty result, got %d", len(units))
	}
}

func TestListUnitsMalformedMetadataIsLocal(t *testing.T) {
	svc := NewService(newSeededRepo(t))
	units, err := svc.ListUnits(context.Background(), Filter{State: "KA"})
	if err != nil {
		t.Fatalf("ListUnits: %v", err)
	}
	if len(units) != 2 {
		t.Fatalf("expected 2 units, got %d", len(units))
	}
	good, bad := units[0], units[1]
	m, ok := good.Metadata.(map[string]any)
	if !ok || m["year"] != json.Number("1999") {
		t.Fatalf("expected decoded metadata, got %#v", good.Metadata)
	}
	if bad.Metadata != nil {
		t.Fatalf("expected nil metadata for malformed record, got %#v", bad.Metadata)
	}
	if !errors.Is(bad.MetadataErr, ErrMalformedMetadata) {
		t.Fatalf("expected ErrMalformedMetadata, got %v", bad.MetadataErr)
	}
}

func TestGetUnit(t *testing.T) {
	svc := NewService(newSeededRepo(t))
	u, err := svc.GetUnit(context.Background(), 2)
	if err != nil {
		t.Fatalf("GetUnit: %v", err)
	}
	if u.Title != "Notice period" {
		t.Fatalf("unexpected unit: %+v", u)
	}
	if u.Metadata != nil || u.MetadataErr != nil {
		t.Fatalf("expected no metadata, got %#v / %v", u.Metadata, u.MetadataErr)
	}

	if _, err := svc.GetUnit(context.Background(), 9999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryRepoInsertManySkipsExisting(t *testing.T) {
	repo := newSeededRepo(t)
	n, err := repo.InsertMany(context.Background(), []LegalUnit{
		{ID: 1, Title: "Replaced"},
		{ID: 4, Title: "New"},
	})
	if err != nil {
		t.Fatalf("InsertMany: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 inserted, got %d", n)
	}
	u, _ := repo.GetByID(context.Background(), 1)
	if u.Title != "Security deposit" {
		t.Fatalf("existing unit was overwritten: %+v", u)
	}
}

func TestDecodeMetadataRejectsTrailingData(t *testing.T) {
	u := LegalUnit{ID: 5, RawMetadata: `{"a":1} {"b":2}`}
	u.decodeMetadata()
	if !errors.Is(u.MetadataErr, ErrMalformedMetadata) || u.Metadata != nil {
		t.Fatalf("expected malformed metadata, got %#v / %v", u.Metadata, u.MetadataErr)
	}
}
