package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/riskibarqy/club-fixtures/internal/domain/fixture"
	qb "github.com/riskibarqy/club-fixtures/internal/platform/querybuilder"
)

// maxRowsPerStatement keeps multi-row upserts well below the 65535 bind
// parameter limit.
const maxRowsPerStatement = 500

var fixtureSelectColumns = mustModelColumns(fixtureTableModel{})

type FixtureRepository struct {
	db *sqlx.DB
}

func NewFixtureRepository(db *sqlx.DB) *FixtureRepository {
	return &FixtureRepository{db: db}
}

func (r *FixtureRepository) List(ctx context.Context, filter fixture.Filter) ([]fixture.StoredFixture, error) {
	conditions := []qb.Condition{qb.IsNull("deleted_at")}
	if season := strings.TrimSpace(filter.Season); season != "" {
		conditions = append(conditions, qb.Eq("season", season))
	}
	if competition := strings.TrimSpace(filter.Competition); competition != "" {
		conditions = append(conditions, qb.Eq("competition", competition))
	}
	switch filter.Status {
	case fixture.StatusUpcoming:
		conditions = append(conditions, qb.Eq("is_completed", false))
	case fixture.StatusResults:
		conditions = append(conditions, qb.Eq("is_completed", true))
	}

	query, args, err := qb.Select(fixtureSelectColumns...).From(fixturesTable).
		Where(conditions...).
		OrderBy("match_date", "kickoff_time", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select fixtures query: %w", err)
	}

	var rows []fixtureTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select fixtures: %w", err)
	}

	out := make([]fixture.StoredFixture, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *FixtureRepository) GetByID(ctx context.Context, id string) (fixture.StoredFixture, bool, error) {
	query, args, err := qb.Select(fixtureSelectColumns...).From(fixturesTable).
		Where(
			qb.Eq("id", id),
			qb.IsNull("deleted_at"),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return fixture.StoredFixture{}, false, fmt.Errorf("build select fixture by id query: %w", err)
	}

	var row fixtureTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return fixture.StoredFixture{}, false, nil
		}
		return fixture.StoredFixture{}, false, fmt.Errorf("select fixture by id: %w", err)
	}
	return row.toDomain(), true, nil
}

// UpsertFixtures writes the batch in one transaction. Rows that already
// exist keep their created_at; soft-deleted rows are revived and counted
// as added.
func (r *FixtureRepository) UpsertFixtures(ctx context.Context, fixtures []fixture.StoredFixture) (fixture.UpsertResult, error) {
	models, err := toInsertModels(fixtures, time.Now().UTC())
	if err != nil {
		return fixture.UpsertResult{}, err
	}
	if len(models) == 0 {
		return fixture.UpsertResult{}, nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fixture.UpsertResult{}, fmt.Errorf("begin tx upsert fixtures: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	ids := make([]string, 0, len(models))
	for _, m := range models {
		ids = append(ids, m.ID)
	}
	existingQuery, existingArgs, err := qb.Select("id").From(fixturesTable).
		Where(qb.Expr("id = ANY(?)", pq.Array(ids)), qb.IsNull("deleted_at")).
		Suffix("FOR UPDATE").
		ToSQL()
	if err != nil {
		return fixture.UpsertResult{}, fmt.Errorf("build select existing fixtures query: %w", err)
	}
	var existing []string
	if err := tx.SelectContext(ctx, &existing, existingQuery, existingArgs...); err != nil {
		return fixture.UpsertResult{}, fmt.Errorf("select existing fixtures: %w", err)
	}

	suffix := "ON CONFLICT (id) DO UPDATE SET " + qb.ExcludedAssignments(fixtureUpsertColumns...) +
		", updated_at = NOW(), deleted_at = NULL"
	for start := 0; start < len(models); start += maxRowsPerStatement {
		end := min(start+maxRowsPerStatement, len(models))
		query, args, err := qb.InsertModels(fixturesTable, models[start:end], suffix)
		if err != nil {
			return fixture.UpsertResult{}, fmt.Errorf("build upsert fixtures query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fixture.UpsertResult{}, fmt.Errorf("upsert fixtures rows=%d..%d: %w", start, end, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fixture.UpsertResult{}, fmt.Errorf("commit upsert fixtures tx: %w", err)
	}

	return fixture.UpsertResult{
		Added:   len(models) - len(existing),
		Updated: len(existing),
	}, nil
}

func (r *FixtureRepository) Delete(ctx context.Context, id string) (bool, error) {
	query, args, err := qb.Update(fixturesTable).
		SetExpr("deleted_at", "NOW()").
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("id", id),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build soft delete fixture query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("soft delete fixture: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("soft delete fixture rows affected: %w", err)
	}
	return affected > 0, nil
}

// toInsertModels drops duplicate ids, keeping the last occurrence in the
// position of the first.
func toInsertModels(fixtures []fixture.StoredFixture, now time.Time) ([]fixtureInsertModel, error) {
	out := make([]fixtureInsertModel, 0, len(fixtures))
	index := make(map[string]int, len(fixtures))
	for i, item := range fixtures {
		id := strings.TrimSpace(item.ID)
		if id == "" {
			return nil, fmt.Errorf("fixture %d: id is required", i)
		}

		createdAt := item.CreatedAt
		if createdAt.IsZero() {
			createdAt = now
		}
		importDate := item.ImportDate
		if importDate.IsZero() {
			importDate = now
		}
		importSource := strings.TrimSpace(item.ImportSource)
		if importSource == "" {
			importSource = fixture.ImportSourceManual
		}

		model := fixtureInsertModel{
			ID:           id,
			Date:         item.Date,
			Time:         item.Time,
			HomeTeam:     item.HomeTeam,
			AwayTeam:     item.AwayTeam,
			Competition:  item.Competition,
			Venue:        item.Venue,
			IsCompleted:  item.IsCompleted,
			HomeScore:    nullIntPtr(item.HomeScore),
			AwayScore:    nullIntPtr(item.AwayScore),
			Season:       nullString(item.Season),
			TicketLink:   nullString(item.TicketLink),
			Source:       nullString(item.Source),
			DatePassed:   item.DatePassed,
			ImportDate:   importDate.UTC(),
			ImportSource: importSource,
			Location:     item.Location,
			SourceID:     item.SourceID,
			CreatedAt:    createdAt.UTC(),
		}
		if pos, ok := index[id]; ok {
			out[pos] = model
			continue
		}
		index[id] = len(out)
		out = append(out, model)
	}
	return out, nil
}

func (m fixtureTableModel) toDomain() fixture.StoredFixture {
	return fixture.StoredFixture{
		ID:           m.ID,
		Date:         m.Date,
		Time:         m.Time,
		HomeTeam:     m.HomeTeam,
		AwayTeam:     m.AwayTeam,
		Competition:  m.Competition,
		Venue:        m.Venue,
		IsCompleted:  m.IsCompleted,
		HomeScore:    intPtrFromNull(m.HomeScore),
		AwayScore:    intPtrFromNull(m.AwayScore),
		Season:       m.Season.String,
		TicketLink:   m.TicketLink.String,
		Source:       m.Source.String,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
		DatePassed:   m.DatePassed,
		ImportDate:   m.ImportDate,
		ImportSource: m.ImportSource,
		Location:     m.Location,
		SourceID:     m.SourceID,
	}
}

func mustModelColumns(model any) []string {
	cols, err := qb.ModelColumns(model)
	if err != nil {
		panic(err)
	}
	return cols
}
