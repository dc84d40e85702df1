package repo

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"adcraft/internal/domain"
)

type stubRow struct {
	scan func(dest ...any) error
}

func (r stubRow) Scan(dest ...any) error {
	if r.scan == nil {
		return pgx.ErrNoRows
	}
	return r.scan(dest...)
}

type stubDB struct {
	execs    []string
	execArgs [][]any
	tag      pgconn.CommandTag
	execErr  error
	row      stubRow
}

func (s *stubDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	s.execs = append(s.execs, sql)
	s.execArgs = append(s.execArgs, args)
	return s.tag, s.execErr
}

func (s *stubDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return s.row
}

func TestJobRepositoryPGCreate(t *testing.T) {
	db := &stubDB{tag: pgconn.NewCommandTag("INSERT 0 1")}
	r := NewJobRepository(db)
	job := domain.NewJob("job-1", domain.AdRequest{BrandName: "Acme", Tone: domain.ToneCasual}, time.Now())
	if err := r.Create(context.Background(), job); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if !strings.Contains(db.execs[0], "INSERT INTO ad_jobs") {
		t.Fatalf("unexpected query: %s", db.execs[0])
	}
	args := db.execArgs[0]
	if args[0] != "job-1" || args[1] != "processing" {
		t.Fatalf("unexpected args: %v", args)
	}
	var req domain.AdRequest
	if err := json.Unmarshal(args[2].([]byte), &req); err != nil || req.BrandName != "Acme" {
		t.Fatalf("request arg = %s (%v)", args[2], err)
	}
	if args[3].([]byte) != nil {
		t.Fatalf("result arg should be NULL for processing job, got %s", args[3])
	}

	db.tag = pgconn.NewCommandTag("INSERT 0 0")
	if err := r.Create(context.Background(), job); !errors.Is(err, domain.ErrDuplicateJob) {
		t.Fatalf("duplicate Create error = %v", err)
	}
}

func TestJobRepositoryPGUpdate(t *testing.T) {
	job := domain.NewJob("job-1", domain.AdRequest{}, time.Now())
	job.MarkReady(domain.AdResult{AdHeadline: "h"}, time.Now())

	db := &stubDB{tag: pgconn.NewCommandTag("UPDATE 1")}
	r := NewJobRepository(db)
	if err := r.Update(context.Background(), job); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if !strings.Contains(db.execs[0], "status = 'processing'") {
		t.Fatalf("update must guard terminal jobs: %s", db.execs[0])
	}

	existsRow := func(exists bool) stubRow {
		return stubRow{scan: func(dest ...any) error {
			*dest[0].(*bool) = exists
			return nil
		}}
	}
	db = &stubDB{tag: pgconn.NewCommandTag("UPDATE 0"), row: existsRow(true)}
	if err := NewJobRepository(db).Update(context.Background(), job); !errors.Is(err, domain.ErrJobFinalized) {
		t.Fatalf("Update error = %v, want ErrJobFinalized", err)
	}
	db = &stubDB{tag: pgconn.NewCommandTag("UPDATE 0"), row: existsRow(false)}
	if err := NewJobRepository(db).Update(context.Background(), job); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Update error = %v, want ErrNotFound", err)
	}
}

func TestJobRepositoryPGGet(t *testing.T) {
	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	db := &stubDB{row: stubRow{scan: func(dest ...any) error {
		*dest[0].(*string) = "job-1"
		*dest[1].(*string) = "ready"
		*dest[2].(*[]byte) = []byte(`{"brand_name":"Acme","company_type":"Product","description":"eco bottles","target_audience":"hikers","tone":"Friendly"}`)
		*dest[3].(*[]byte) = []byte(`{"ad_headline":"h","ad_description":"d","relevant_hashtags":"#a","image_url":"u"}`)
		*dest[4].(*string) = ""
		*dest[5].(*time.Time) = created
		*dest[6].(*time.Time) = created
		return nil
	}}}
	job, err := NewJobRepository(db).Get(context.Background(), "job-1")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if job.Status != domain.JobStatusReady || job.Request.TargetAudience != "hikers" || job.Result == nil || job.Result.ImageURL != "u" {
		t.Fatalf("unexpected job: %+v", job)
	}

	missing := &stubDB{}
	if _, err := NewJobRepository(missing).Get(context.Background(), "nope"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Get error = %v, want ErrNotFound", err)
	}
}

func TestJobRepositoryPGEnsureSchema(t *testing.T) {
	db := &stubDB{}
	if err := NewJobRepository(db).EnsureSchema(context.Background()); err != nil {
		t.Fatalf("EnsureSchema returned error: %v", err)
	}
	if !strings.Contains(db.execs[0], "CREATE TABLE IF NOT EXISTS ad_jobs") {
		t.Fatalf("unexpected schema query: %s", db.execs[0])
	}
	db.execErr = errors.New("permission denied")
	if err := NewJobRepository(db).EnsureSchema(context.Background()); err == nil {
		t.Fatal("expected schema error")
	}
}
