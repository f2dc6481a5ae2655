package db_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/inteligenciarte/luxurystudio/internal/booking"
	"github.com/inteligenciarte/luxurystudio/internal/db"
	"github.com/inteligenciarte/luxurystudio/internal/testutil"
)

func testSubmission(name string) booking.Submission {
	r := booking.Request{
		Name:               name,
		IsClient:           true,
		SelectedProcedures: []string{"Henna", "Tintura"},
		PreferredPeriods:   []string{"Manhã"},
		PreferredWeekDays:  []string{"Segunda", "Sexta"},
	}
	return booking.Submission{
		Request: r,
		Message: booking.BuildMessage(r),
		URL:     "https://wa.me/42999722042?text=x",
	}
}

func TestNewLead(t *testing.T) {
	at := time.Date(2024, 3, 7, 10, 0, 0, 0, time.FixedZone("BRT", -3*3600))
	lead := db.NewLead(testSubmission("  Maria "), at)

	if lead.Name != "Maria" {
		t.Fatalf("expected trimmed name, got %q", lead.Name)
	}
	if lead.CreatedAt.Location() != time.UTC {
		t.Fatalf("expected UTC timestamp")
	}
	if lead.TimePreference != "Período(s): Manhã; Dia(s) da semana: Segunda, Sexta" {
		t.Fatalf("unexpected time preference %q", lead.TimePreference)
	}
}

func TestInsertAndListLeads(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	base := time.Date(2024, 3, 7, 12, 0, 0, 0, time.UTC)

	for i, name := range []string{"Ana", "Bia", "Carla"} {
		lead := db.NewLead(testSubmission(name), base.Add(time.Duration(i)*time.Hour))
		if _, err := database.InsertLead(ctx, lead); err != nil {
			t.Fatalf("insert lead: %v", err)
		}
	}

	leads, err := database.ListRecentLeads(ctx, 2)
	if err != nil {
		t.Fatalf("list leads: %v", err)
	}
	if len(leads) != 2 {
		t.Fatalf("expected 2 leads, got %d", len(leads))
	}
	if leads[0].Name != "Carla" || leads[1].Name != "Bia" {
		t.Fatalf("unexpected order: %s, %s", leads[0].Name, leads[1].Name)
	}
	if got := strings.Join(leads[0].Procedures, ","); got != "Henna,Tintura" {
		t.Fatalf("unexpected procedures %q", got)
	}
	if !leads[0].IsClient {
		t.Fatalf("expected is_client to round trip")
	}
}

func TestDeleteLeadsBefore(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 4; i++ {
		lead := db.NewLead(testSubmission("Lead"), base.AddDate(0, 0, i*10))
		if _, err := database.InsertLead(ctx, lead); err != nil {
			t.Fatalf("insert lead: %v", err)
		}
	}

	deleted, err := database.DeleteLeadsBefore(ctx, base.AddDate(0, 0, 15))
	if err != nil {
		t.Fatalf("delete leads: %v", err)
	}
	if deleted != 2 {
		t.Fatalf("expected 2 deleted, got %d", deleted)
	}

	leads, err := database.ListRecentLeads(ctx, 10)
	if err != nil {
		t.Fatalf("list leads: %v", err)
	}
	if len(leads) != 2 {
		t.Fatalf("expected 2 leads left, got %d", len(leads))
	}
}
