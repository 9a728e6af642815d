// Package pipeline 串联一次完整运行的九个步骤：
// 清理过期行 → 回填大学信息 → 登记新大学 → 加权选取 → 校验 →
// 入库 → 移动工作表行 → 群消息生成与通知 → 归档公众号内容。
// 任一前置失败即中止后续步骤，不做跨步骤回滚补偿。
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"gisource-automation/docstore"
	"gisource-automation/mailer"
	"gisource-automation/posting"
	"gisource-automation/progress"
	"gisource-automation/record"
	"gisource-automation/selector"
	"gisource-automation/store"
	"gisource-automation/textgen"
)

// 工作表名固定为原始流程中的三张表。
const (
	SheetUnfilled     = "Unfilled"
	SheetFilled       = "Filled"
	SheetUniversities = "Universities"
)

// CandidateSource 候选信息来源表的操作契约。
type CandidateSource interface {
	ReadAll(sheet string) (headers []string, rows [][]string, err error)
	DeleteRows(sheet string, dataRows []int) error
	AppendRows(sheet string, rows [][]string) error
	UpdateRow(sheet string, dataRow int, values []string) error
}

// ReferenceStore 参考库的操作契约。
type ReferenceStore interface {
	TrimUniversityNames(ctx context.Context) error
	UniversityTriples(ctx context.Context) ([]store.UniversityTriple, error)
	ExistingUniversities(ctx context.Context, names []string) (map[string]struct{}, error)
	AddUniversities(ctx context.Context, triples []store.UniversityTriple) error
	MaxEventIDForLatestDate(ctx context.Context) (int64, error)
	InsertEvent(ctx context.Context, rec *record.PersistedRecord) error
}

// Notifier 通知渠道的操作契约。
type Notifier interface {
	SendReminder(dir *mailer.Directory, sheetLocation string) error
	SendErrorNotification(toEmail, toName, source, university, direction, date string) error
	SendChatPrompt(toEmail, toName, text, direction, date string) error
}

// DocumentStore 公众号内容归档的操作契约。
type DocumentStore interface {
	AddSection(text, header string) (string, error)
}

// Outcome 运行结果分类。除协作方故障外的所有结果都按正常结束处理。
type Outcome string

const (
	OutcomeCompleted        Outcome = "completed"
	OutcomeNoCandidates     Outcome = "no_candidates"
	OutcomeValidationFailed Outcome = "validation_failed"
	OutcomeUnknownVerifier  Outcome = "unknown_verifier"
	OutcomeNoAbbreviation   Outcome = "no_abbreviation"
)

// Result 一次运行的产出。
type Result struct {
	Outcome     Outcome
	EventID     int64
	ChatMessage string
	Article     string
}

// Runner 持有一次运行所需的全部协作方。
type Runner struct {
	Sheets   CandidateSource
	Store    ReferenceStore
	Mail     Notifier
	Doc      DocumentStore
	Members  *mailer.Directory
	Progress *progress.Publisher

	Rand *rand.Rand
	Now  func() time.Time
	Loc  *time.Location

	Operator      string
	AutoReviewer  string
	PermalinkBase string
	SheetLocation string
}

// Run 处理一条候选信息。协作方故障返回错误；业务性结束通过 Outcome 区分。
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	now := r.Now()
	if r.Loc != nil {
		now = now.In(r.Loc)
	}
	dateStr := now.Format("2006-01-02")

	// 步骤 1：加载 Unfilled 并删除已过期的日期行。
	r.report(ctx, "load", "", 0)
	headers, postings, err := r.loadPostings(SheetUnfilled, now)
	if err != nil {
		return nil, err
	}
	var expired []int
	for i, p := range postings {
		if p.Deadline.Kind == posting.DeadlineDate && p.Deadline.Before(now) {
			expired = append(expired, i+1)
		}
	}
	if len(expired) > 0 {
		if err := r.Sheets.DeleteRows(SheetUnfilled, expired); err != nil {
			return nil, fmt.Errorf("delete expired rows failed: %w", err)
		}
		log.Printf("[CLEAN] 删除过期行 %d 条", len(expired))
		headers, postings, err = r.loadPostings(SheetUnfilled, now)
		if err != nil {
			return nil, err
		}
	} else {
		log.Printf("[CLEAN] 无过期行")
	}

	// 步骤 2：用参考库回填缺失的大学中文名与国名。
	r.report(ctx, "enrich", "", 0)
	if err := r.enrichUniversities(ctx, headers, postings); err != nil {
		return nil, err
	}

	// 步骤 3：Filled 中出现的新大学登记到 Universities 表。
	r.report(ctx, "universities", "", 0)
	if err := r.registerNewUniversities(ctx, now); err != nil {
		return nil, err
	}

	// 步骤 4：过滤入池并加权选取。
	r.report(ctx, "select", "", 0)
	var pool []*posting.Posting
	for _, p := range postings {
		if p.Eligible(r.AutoReviewer) {
			pool = append(pool, p)
		}
	}
	selected, err := selector.Select(pool, now, r.Rand)
	if errors.Is(err, selector.ErrNoCandidates) {
		log.Printf("[SELECT] 候选池为空，广播添加内容提醒")
		if err := r.Mail.SendReminder(r.Members, r.SheetLocation); err != nil {
			return nil, fmt.Errorf("send reminder failed: %w", err)
		}
		r.report(ctx, "done", string(OutcomeNoCandidates), 0)
		return &Result{Outcome: OutcomeNoCandidates}, nil
	}
	if err != nil {
		return nil, err
	}
	log.Printf("[SELECT] 已选取：%s - %s", selected.UniversityCN, selected.Direction)

	// 步骤 5：必填列校验；失败时通知审核人。
	r.report(ctx, "validate", "", 0)
	if record.HasError(selected) {
		missing := record.MissingFields(selected)
		verifier := selected.Verifier
		email, ok := r.Members.Lookup(verifier)
		if !ok {
			log.Printf("[VALIDATE] 信息不完整（缺 %v），但审核人 %s 不在组员名单中", missing, verifier)
			r.report(ctx, "done", string(OutcomeUnknownVerifier), 0)
			return &Result{Outcome: OutcomeUnknownVerifier}, nil
		}
		if err := r.Mail.SendErrorNotification(email, verifier, selected.Source,
			selected.UniversityCN, selected.Direction, dateStr); err != nil {
			return nil, fmt.Errorf("send error notification failed: %w", err)
		}
		log.Printf("[VALIDATE] 信息不完整（缺 %v），已邮件通知 %s", missing, verifier)
		r.report(ctx, "done", string(OutcomeValidationFailed), 0)
		return &Result{Outcome: OutcomeValidationFailed}, nil
	}

	// 步骤 6：分配 Event_ID 并入库。失败则中止，不再触碰任何下游。
	r.report(ctx, "insert", "", 0)
	maxID, err := r.Store.MaxEventIDForLatestDate(ctx)
	if err != nil {
		return nil, err
	}
	eventID := maxID + 1
	rec := record.Transform(selected, eventID, now)
	if err := r.Store.InsertEvent(ctx, rec); err != nil {
		return nil, fmt.Errorf("insert event failed: %w", err)
	}
	log.Printf("[INSERT] 入库成功，Event_ID=%d", eventID)

	// 步骤 7：选中行从 Unfilled 移动到 Filled。
	r.report(ctx, "move", "", eventID)
	if err := r.moveToFilled(selected, now); err != nil {
		return nil, err
	}

	// 步骤 8：生成群消息并发通知邮件。缩写为空时中止剩余步骤。
	r.report(ctx, "chat", "", eventID)
	abbrev := textgen.Abbreviation(selected)
	if abbrev == "" {
		log.Printf("[CHAT] 无法生成职位缩写，跳过剩余步骤")
		r.report(ctx, "done", string(OutcomeNoAbbreviation), eventID)
		return &Result{Outcome: OutcomeNoAbbreviation, EventID: eventID}, nil
	}
	chatText := textgen.ChatMessage(selected, abbrev, eventID, r.PermalinkBase)

	recipient := r.Operator
	if _, ok := r.Members.Lookup(recipient); !ok {
		recipient = "GISphere"
	}
	email, ok := r.Members.Lookup(recipient)
	if !ok {
		first, exists := r.Members.First()
		if !exists {
			return nil, errors.New("group member directory is empty")
		}
		email = first.Email
	}
	if err := r.Mail.SendChatPrompt(email, recipient, chatText, selected.Direction, dateStr); err != nil {
		return nil, fmt.Errorf("send chat prompt failed: %w", err)
	}
	log.Printf("[CHAT] 群消息已发送给 %s", recipient)

	// 步骤 9：公众号内容写入归档文档。
	r.report(ctx, "archive", "", eventID)
	article := textgen.Article(selected, abbrev)
	msg, err := r.Doc.AddSection(article, docstore.WeekHeader(now))
	if err != nil {
		return nil, fmt.Errorf("archive article failed: %w", err)
	}
	log.Printf("[ARCHIVE] %s", msg)

	r.report(ctx, "done", string(OutcomeCompleted), eventID)
	return &Result{
		Outcome:     OutcomeCompleted,
		EventID:     eventID,
		ChatMessage: chatText,
		Article:     article,
	}, nil
}

func (r *Runner) loadPostings(sheet string, now time.Time) ([]string, []*posting.Posting, error) {
	headers, rows, err := r.Sheets.ReadAll(sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("read sheet %s failed: %w", sheet, err)
	}
	loc := now.Location()
	postings := make([]*posting.Posting, 0, len(rows))
	for _, row := range rows {
		postings = append(postings, posting.FromRow(headers, row, loc))
	}
	return headers, postings, nil
}

// enrichUniversities 回填缺失的 University_CN / Country_CN，同名大学取最近一条对照。
func (r *Runner) enrichUniversities(ctx context.Context, headers []string, postings []*posting.Posting) error {
	if err := r.Store.TrimUniversityNames(ctx); err != nil {
		return fmt.Errorf("trim university names failed: %w", err)
	}
	triples, err := r.Store.UniversityTriples(ctx)
	if err != nil {
		return err
	}
	latest := make(map[string]store.UniversityTriple, len(triples))
	for _, t := range triples {
		if t.UniversityEN != "" {
			latest[t.UniversityEN] = t
		}
	}

	cnCol := colIndex(headers, "University_CN")
	countryCol := colIndex(headers, "Country_CN")
	if cnCol < 0 || countryCol < 0 {
		return nil
	}

	modified := 0
	for i, p := range postings {
		if p.UniversityEN == "" || (p.UniversityCN != "" && p.CountryCN != "") {
			continue
		}
		match, ok := latest[p.UniversityEN]
		if !ok {
			continue
		}
		changed := false
		if p.UniversityCN == "" && match.UniversityCN != "" {
			p.UniversityCN = match.UniversityCN
			p.Row[cnCol] = match.UniversityCN
			changed = true
		}
		if p.CountryCN == "" && match.CountryCN != "" {
			p.CountryCN = match.CountryCN
			p.Row[countryCol] = match.CountryCN
			changed = true
		}
		if changed {
			if err := r.Sheets.UpdateRow(SheetUnfilled, i+1, p.Row); err != nil {
				return fmt.Errorf("update enriched row failed: %w", err)
			}
			modified++
		}
	}
	log.Printf("[ENRICH] 回填大学信息 %d 行", modified)
	return nil
}

// registerNewUniversities 把 Filled 中参考库与 Universities 表都没有的大学登记进去。
func (r *Runner) registerNewUniversities(ctx context.Context, now time.Time) error {
	headers, rows, err := r.Sheets.ReadAll(SheetFilled)
	if err != nil {
		return fmt.Errorf("read sheet %s failed: %w", SheetFilled, err)
	}
	enCol := colIndex(headers, "University_EN")
	cnCol := colIndex(headers, "University_CN")
	countryCol := colIndex(headers, "Country_CN")
	if enCol < 0 {
		return nil
	}

	seen := make(map[string]struct{})
	var unique []store.UniversityTriple
	var names []string
	for _, row := range rows {
		en := cell(row, enCol)
		if en == "" {
			continue
		}
		if _, dup := seen[en]; dup {
			continue
		}
		seen[en] = struct{}{}
		unique = append(unique, store.UniversityTriple{
			UniversityEN: en,
			UniversityCN: cell(row, cnCol),
			CountryCN:    cell(row, countryCol),
		})
		names = append(names, en)
	}
	if len(unique) == 0 {
		log.Printf("[UNIV] 无新大学")
		return nil
	}

	existing, err := r.Store.ExistingUniversities(ctx, names)
	if err != nil {
		return err
	}

	_, sheetRows, err := r.Sheets.ReadAll(SheetUniversities)
	if err != nil {
		return fmt.Errorf("read sheet %s failed: %w", SheetUniversities, err)
	}
	inSheet := make(map[string]struct{}, len(sheetRows))
	for _, row := range sheetRows {
		inSheet[cell(row, 0)] = struct{}{}
	}

	var fresh []store.UniversityTriple
	for _, t := range unique {
		if _, ok := existing[t.UniversityEN]; ok {
			continue
		}
		if _, ok := inSheet[t.UniversityEN]; ok {
			continue
		}
		fresh = append(fresh, t)
	}
	if len(fresh) == 0 {
		log.Printf("[UNIV] 无新大学")
		return nil
	}

	appendRows := make([][]string, 0, len(fresh))
	for _, t := range fresh {
		appendRows = append(appendRows, []string{t.UniversityEN, t.UniversityCN, t.CountryCN})
	}
	if err := r.Sheets.AppendRows(SheetUniversities, appendRows); err != nil {
		return fmt.Errorf("append universities failed: %w", err)
	}
	if err := r.Store.AddUniversities(ctx, fresh); err != nil {
		return fmt.Errorf("add universities to store failed: %w", err)
	}
	log.Printf("[UNIV] 新增大学 %d 所", len(fresh))
	return nil
}

// moveToFilled 重新读取 Unfilled 定位选中行（期间表可能已变动），删除后追加到 Filled。
func (r *Runner) moveToFilled(selected *posting.Posting, now time.Time) error {
	headers, rows, err := r.Sheets.ReadAll(SheetUnfilled)
	if err != nil {
		return fmt.Errorf("read sheet %s failed: %w", SheetUnfilled, err)
	}
	srcCol := colIndex(headers, "Source")
	dirCol := colIndex(headers, "Direction")

	var toDelete []int
	for i, row := range rows {
		if cell(row, srcCol) == selected.Source && cell(row, dirCol) == selected.Direction {
			toDelete = append(toDelete, i+1)
		}
	}
	if len(toDelete) > 0 {
		if err := r.Sheets.DeleteRows(SheetUnfilled, toDelete); err != nil {
			return fmt.Errorf("delete selected row failed: %w", err)
		}
	}
	if err := r.Sheets.AppendRows(SheetFilled, [][]string{selected.Row}); err != nil {
		return fmt.Errorf("append to filled failed: %w", err)
	}
	log.Printf("[MOVE] 选中行已移入 %s", SheetFilled)
	return nil
}

// report 上报运行状态；失败只告警，不影响主流程。
func (r *Runner) report(ctx context.Context, step, outcome string, eventID int64) {
	if err := r.Progress.Publish(ctx, step, outcome, eventID); err != nil {
		log.Printf("[WARN] 上报运行状态失败: %v", err)
	}
}

func colIndex(headers []string, name string) int {
	for i, h := range headers {
		if h == name {
			return i
		}
	}
	return -1
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
