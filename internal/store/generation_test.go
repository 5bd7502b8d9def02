// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"sitesmith/internal/models"
)

func newRecord() *models.Generation {
	return &models.Generation{
		ID:          uuid.NewString(),
		Prompt:      "A coffee shop in Lisbon",
		WebsiteType: "restaurant",
		Theme:       "warm",
		Status:      models.GenerationPending,
	}
}

func TestGenerationStoreSaveAndGet(t *testing.T) {
	db := testDB(t)
	s := NewGenerationStore(db)
	ctx := context.Background()

	g := newRecord()
	t.Cleanup(func() { cleanGenerations(t, db, g.ID) })

	if err := s.Save(ctx, g); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if g.CreatedAt.IsZero() || g.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be populated")
	}

	got, err := s.Get(ctx, g.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Prompt != g.Prompt || got.Status != models.GenerationPending || got.Theme != "warm" {
		t.Errorf("unexpected record: %+v", got)
	}
}

func TestGenerationStoreUpsert(t *testing.T) {
	db := testDB(t)
	s := NewGenerationStore(db)
	ctx := context.Background()

	g := newRecord()
	t.Cleanup(func() { cleanGenerations(t, db, g.ID) })

	if err := s.Save(ctx, g); err != nil {
		t.Fatalf("first Save: %v", err)
	}
	created := g.CreatedAt

	time.Sleep(10 * time.Millisecond)
	g.Status = models.GenerationCompleted
	g.Title = "Bean There"
	g.ParseStage = "direct"
	if err := s.Save(ctx, g); err != nil {
		t.Fatalf("second Save: %v", err)
	}

	got, err := s.Get(ctx, g.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Status != models.GenerationCompleted || got.Title != "Bean There" || got.ParseStage != "direct" {
		t.Errorf("update not applied: %+v", got)
	}
	if !got.CreatedAt.Equal(created) {
		t.Errorf("created_at changed: %v -> %v", created, got.CreatedAt)
	}
	if !got.UpdatedAt.After(created) {
		t.Errorf("updated_at not advanced: %v", got.UpdatedAt)
	}
}

func TestGenerationStoreGetMissing(t *testing.T) {
	db := testDB(t)
	s := NewGenerationStore(db)

	_, err := s.Get(context.Background(), uuid.NewString())
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}

	_, err = s.Get(context.Background(), "not-a-uuid")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("malformed id: got %v, want ErrNotFound", err)
	}
}

func TestGenerationStoreList(t *testing.T) {
	db := testDB(t)
	s := NewGenerationStore(db)
	ctx := context.Background()

	first, second := newRecord(), newRecord()
	first.CreatedAt = time.Now().Add(-time.Minute).UTC()
	t.Cleanup(func() { cleanGenerations(t, db, first.ID, second.ID) })

	for _, g := range []*models.Generation{first, second} {
		if err := s.Save(ctx, g); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	list, err := s.List(ctx, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	pos := map[string]int{}
	for i, g := range list {
		pos[g.ID] = i
	}
	i1, ok1 := pos[first.ID]
	i2, ok2 := pos[second.ID]
	if !ok1 || !ok2 {
		t.Fatalf("saved records missing from list of %d", len(list))
	}
	if i2 > i1 {
		t.Errorf("expected newest first, got second at %d and first at %d", i2, i1)
	}
}

func TestGenerationStoreSetPublishedURL(t *testing.T) {
	db := testDB(t)
	s := NewGenerationStore(db)
	ctx := context.Background()

	g := newRecord()
	t.Cleanup(func() { cleanGenerations(t, db, g.ID) })
	if err := s.Save(ctx, g); err != nil {
		t.Fatalf("Save: %v", err)
	}

	url := "https://cdn.example.com/sites/bean-there/index.html"
	if err := s.SetPublishedURL(ctx, g.ID, url); err != nil {
		t.Fatalf("SetPublishedURL: %v", err)
	}

	// A later status save must not clear the published URL.
	g.Status = models.GenerationCompleted
	if err := s.Save(ctx, g); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := s.Get(ctx, g.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.PublishedURL != url {
		t.Errorf("published url: got %q, want %q", got.PublishedURL, url)
	}

	if err := s.SetPublishedURL(ctx, uuid.NewString(), url); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing id: got %v, want ErrNotFound", err)
	}
}
