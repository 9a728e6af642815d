// Package store 实现 SQLite 参考库的查询与写入。
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"gisource-automation/lexicon"
	"gisource-automation/record"
)

// UniversityTriple 参考库中的一条大学对照记录。
type UniversityTriple struct {
	UniversityEN string
	UniversityCN string
	CountryCN    string
}

// Store 参考库连接。eventTable 通常为 GISource，测试环境可换表。
type Store struct {
	db         *sql.DB
	eventTable string
}

// Open 打开参考库并确认连通。
func Open(path, eventTable string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return &Store{db: db, eventTable: eventTable}, nil
}

// Close 关闭连接。
func (s *Store) Close() error { return s.db.Close() }

// EnsureSchema 建表（不存在时）。
func (s *Store) EnsureSchema(ctx context.Context) error {
	stmts := []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
            Event_ID INTEGER,
            University_CN TEXT,
            University_EN TEXT,
            Country_CN TEXT,
            Country_EN TEXT,
            Job_CN TEXT,
            Job_EN TEXT,
            Description TEXT,
            Title_CN TEXT,
            Title_EN TEXT,
            Label_Physical_Geo INTEGER DEFAULT 0,
            Label_Human_Geo INTEGER DEFAULT 0,
            Label_Urban INTEGER DEFAULT 0,
            Label_GIS INTEGER DEFAULT 0,
            Label_RS INTEGER DEFAULT 0,
            Label_GNSS INTEGER DEFAULT 0,
            Date TEXT,
            University_ID INTEGER,
            IS_Public INTEGER DEFAULT 1,
            IS_Deleted INTEGER DEFAULT 0,
            Event_CN TEXT,
            EVENT_EN TEXT
        )`, s.eventTable),
		`CREATE TABLE IF NOT EXISTS Universities (
            University_Name_EN TEXT,
            University_CN TEXT,
            Country_CN TEXT
        )`,
	}
	for _, q := range stmts {
		if _, err := s.db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("ensure schema failed: %w", err)
		}
	}
	return nil
}

// TrimUniversityNames 清除英文校名末尾的多余空格。
func (s *Store) TrimUniversityNames(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `UPDATE Universities SET University_Name_EN = RTRIM(University_Name_EN)`)
	return err
}

// UniversityTriples 返回事件表中已有的大学中英文对照。
func (s *Store) UniversityTriples(ctx context.Context) ([]UniversityTriple, error) {
	q := fmt.Sprintf(`SELECT University_EN, University_CN, Country_CN FROM %s`, s.eventTable)
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query university triples failed: %w", err)
	}
	defer rows.Close()

	var out []UniversityTriple
	for rows.Next() {
		var en, cn, country sql.NullString
		if err := rows.Scan(&en, &cn, &country); err != nil {
			return nil, err
		}
		out = append(out, UniversityTriple{
			UniversityEN: en.String,
			UniversityCN: cn.String,
			CountryCN:    country.String,
		})
	}
	return out, rows.Err()
}

// ExistingUniversities 返回名单中已入库的英文校名集合。
func (s *Store) ExistingUniversities(ctx context.Context, names []string) (map[string]struct{}, error) {
	existing := make(map[string]struct{})
	if len(names) == 0 {
		return existing, nil
	}
	placeholders := strings.Repeat("?,", len(names))
	placeholders = placeholders[:len(placeholders)-1]
	q := fmt.Sprintf(`SELECT University_Name_EN FROM Universities WHERE University_Name_EN IN (%s)`, placeholders)

	args := make([]any, len(names))
	for i, n := range names {
		args[i] = n
	}
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query existing universities failed: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		existing[name] = struct{}{}
	}
	return existing, rows.Err()
}

// AddUniversities 追加大学对照记录。
func (s *Store) AddUniversities(ctx context.Context, triples []UniversityTriple) error {
	if len(triples) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO Universities (University_Name_EN, University_CN, Country_CN) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, t := range triples {
		if _, err := stmt.ExecContext(ctx, t.UniversityEN, t.UniversityCN, t.CountryCN); err != nil {
			return fmt.Errorf("failed to insert university %s: %w", t.UniversityEN, err)
		}
	}
	return tx.Commit()
}

// MaxEventIDForLatestDate 最近日期下最大的 Event_ID，表空时为 0。
func (s *Store) MaxEventIDForLatestDate(ctx context.Context) (int64, error) {
	q := fmt.Sprintf(`SELECT MAX(Event_ID) FROM %s WHERE Date = (SELECT MAX(Date) FROM %s)`, s.eventTable, s.eventTable)
	var id sql.NullInt64
	if err := s.db.QueryRowContext(ctx, q).Scan(&id); err != nil {
		return 0, fmt.Errorf("query max event id failed: %w", err)
	}
	if !id.Valid {
		return 0, nil
	}
	return id.Int64, nil
}

// InsertEvent 在单个事务内写入一条事件记录，失败时整体回滚。
func (s *Store) InsertEvent(ctx context.Context, rec *record.PersistedRecord) error {
	cols := []string{
		"Event_ID", "University_CN", "University_EN", "Country_CN", "Country_EN",
		"Job_CN", "Job_EN", "Description", "Title_CN", "Title_EN",
	}
	args := []any{
		rec.EventID, rec.UniversityCN, rec.UniversityEN, rec.CountryCN, rec.CountryEN,
		rec.JobCN, rec.JobEN, rec.Description, rec.TitleCN, rec.TitleEN,
	}
	for _, sub := range lexicon.LabelColumns {
		cols = append(cols, "Label_"+string(sub))
		args = append(args, rec.Labels[sub])
	}
	cols = append(cols, "Date", "University_ID", "IS_Public", "IS_Deleted", "Event_CN", "EVENT_EN")
	args = append(args, rec.Date, rec.UniversityID, rec.IsPublic, rec.IsDeleted, rec.EventCN, rec.EventEN)

	q := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`,
		s.eventTable,
		strings.Join(cols, ", "),
		strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", "))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("insert event failed: %w", err)
	}
	return tx.Commit()
}
