package service

import (
	"context"
	"errors"
	"testing"

	"github.com/guttosm/floorsheet/internal/domain/models"
	"github.com/guttosm/floorsheet/internal/report"
)

type stubRepo struct {
	rows    []models.ReportRow
	run     *models.Run
	err     error
	filters []models.BrokerFilter
	keys    []string
}

func (s *stubRepo) ReplaceReport(_ context.Context, _ string, _ []models.ReportRow) error { return nil }
func (s *stubRepo) RecordRun(_ context.Context, _ *models.Run) error                      { return nil }
func (s *stubRepo) LatestRun(_ context.Context) (*models.Run, error)                      { return s.run, s.err }
func (s *stubRepo) ListBrokerActivity(_ context.Context, f models.BrokerFilter) ([]models.ReportRow, error) {
	s.filters = append(s.filters, f)
	return s.rows, s.err
}
func (s *stubRepo) FindByKey(_ context.Context, key string) (*models.ReportRow, error) {
	s.keys = append(s.keys, key)
	if s.err != nil {
		return nil, s.err
	}
	for i := range s.rows {
		if s.rows[i].RowKey == key {
			return &s.rows[i], nil
		}
	}
	return nil, nil
}

func TestListActivity_Limits(t *testing.T) {
	cases := []struct {
		name  string
		limit int
		want  int
	}{
		{name: "default", limit: 0, want: 100},
		{name: "negative", limit: -3, want: 100},
		{name: "kept", limit: 25, want: 25},
		{name: "capped", limit: 50000, want: MaxListLimit},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &stubRepo{}
			svc := NewBrokerService(repo)
			if _, err := svc.ListActivity(context.Background(), models.BrokerFilter{Broker: "B1", Limit: tc.limit}); err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if got := repo.filters[0]; got.Limit != tc.want || got.Broker != "B1" {
				t.Fatalf("want limit %d got filter %+v", tc.want, got)
			}
		})
	}
}

func TestLookup_TableDriven(t *testing.T) {
	row := models.ReportRow{RowKey: "2024-01-01;XYZ;B1", Date: "2024-01-01", Script: "XYZ", Broker: "B1"}
	split := models.ReportRow{RowKey: "2024-01-01;XYZ;B;1", Date: "2024-01-01", Script: "XYZ", Broker: "B;1"}

	cases := []struct {
		name      string
		key       string
		repo      *stubRepo
		wantRow   bool
		wantShape bool
		wantErr   bool
	}{
		{name: "found", key: "2024-01-01;XYZ;B1", repo: &stubRepo{rows: []models.ReportRow{row}}, wantRow: true},
		{name: "unknown", key: "2024-01-01;XYZ;ZZ", repo: &stubRepo{}},
		{name: "extra parts do not match shorter key", key: "2024-01-01;XYZ;B1;X", repo: &stubRepo{rows: []models.ReportRow{row}}},
		{name: "delimiter inside broker", key: "2024-01-01;XYZ;B;1", repo: &stubRepo{rows: []models.ReportRow{row, split}}, wantRow: true},
		{name: "malformed", key: "2024-01-01;XYZ", repo: &stubRepo{}, wantShape: true, wantErr: true},
		{name: "repo error", key: "2024-01-01;XYZ;B1", repo: &stubRepo{err: errors.New("boom")}, wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewBrokerService(tc.repo)
			out, err := svc.Lookup(context.Background(), tc.key)
			if tc.wantErr != (err != nil) {
				t.Fatalf("err = %v, wantErr %v", err, tc.wantErr)
			}
			if tc.wantShape && !errors.Is(err, report.ErrKeyShape) {
				t.Fatalf("expected ErrKeyShape, got %v", err)
			}
			if tc.wantRow != (out != nil) {
				t.Fatalf("row = %+v, wantRow %v", out, tc.wantRow)
			}
			if tc.wantShape {
				if len(tc.repo.keys) != 0 {
					t.Fatalf("malformed key must not reach the repository")
				}
				return
			}
			if len(tc.repo.keys) != 1 || tc.repo.keys[0] != tc.key {
				t.Fatalf("repository queried with %v, want [%s]", tc.repo.keys, tc.key)
			}
			if out != nil && out.RowKey != tc.key {
				t.Fatalf("got row %q for key %q", out.RowKey, tc.key)
			}
		})
	}
}

func TestLatestRun_PassesThrough(t *testing.T) {
	want := &models.Run{ID: "run-1"}
	svc := NewBrokerService(&stubRepo{run: want})
	got, err := svc.LatestRun(context.Background())
	if err != nil || got != want {
		t.Fatalf("got %+v err=%v", got, err)
	}
}
