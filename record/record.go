// Package record 负责入库前的校验与记录装配。
package record

import (
	"database/sql"
	"strings"
	"time"

	"gisource-automation/lexicon"
	"gisource-automation/posting"
	"gisource-automation/words"
)

// MissingFields 返回必填列中为空的列名，全部填写时为 nil。
// 必填集之外的列（如 Contact_Email）缺失不构成错误。
func MissingFields(p *posting.Posting) []string {
	var missing []string
	for _, col := range lexicon.RequiredColumns {
		if p.Field(col) == "" {
			missing = append(missing, col)
		}
	}
	return missing
}

// HasError 校验必填列是否完整。
func HasError(p *posting.Posting) bool {
	return len(MissingFields(p)) > 0
}

// PersistedRecord 入库行。语义缺失的字段一律为 NULL，不写空串。
type PersistedRecord struct {
	EventID      int64
	UniversityCN string
	UniversityEN string
	CountryCN    string
	CountryEN    sql.NullString
	JobCN        sql.NullString
	JobEN        sql.NullString
	Description  string
	TitleCN      sql.NullString
	TitleEN      sql.NullString
	Labels       map[lexicon.Subject]int
	Date         string
	UniversityID sql.NullInt64
	IsPublic     int
	IsDeleted    int
	EventCN      sql.NullString
	EventEN      sql.NullString
}

// JobTitleEN 按固定角色顺序拼接英文职位，以 " or " 连接。
func JobTitleEN(p *posting.Posting) string {
	var titles []string
	for _, r := range p.ActiveRoles() {
		titles = append(titles, string(r))
	}
	return strings.Join(titles, " or ")
}

// MapJobCN 将英文职位映射为中文：逐段先查原词，再查"词 + Student"；
// 多段时仅去掉首段的"研究生"后缀一次，以"或"连接。
func MapJobCN(jobEN string) string {
	if jobEN == "" {
		return ""
	}
	parts := strings.Split(jobEN, " or ")
	cn := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if v, ok := lexicon.Jobs[part]; ok {
			cn = append(cn, v)
		} else {
			cn = append(cn, lexicon.Jobs[part+" Student"])
		}
	}
	if len(cn) > 1 {
		cn[0] = strings.Replace(cn[0], "研究生", "", 1)
	}
	return strings.Join(cn, "或")
}

// EnglishTitle 组装英文标题。count 为 nil 表示名额未知。
func EnglishTitle(universityEN, countryEN, jobEN string, category posting.Category, count *int) string {
	verb := " is recruiting "
	if category == posting.CategoryHosting {
		verb = " is hosting a "
	}
	title := universityEN + " in " + countryEN + verb
	if count != nil {
		title += "for " + words.EnglishNumber(*count) + " " + jobEN
		if *count != 1 {
			title += "s"
		}
	} else {
		title += jobEN
	}
	return title
}

// ChineseTitle 组装中文标题。国名是校名前缀时不再重复国名。
func ChineseTitle(countryCN, universityCN, jobCN string, category posting.Category, count *int) string {
	title := CombinedTitle(countryCN, universityCN)
	verb := category.VerbCN()
	if count != nil {
		return title + verb + words.ChineseNumber(*count) + "名" + jobCN
	}
	return title + verb + jobCN
}

// CombinedTitle 国名 + 校名的展示前缀。
func CombinedTitle(countryCN, universityCN string) string {
	if strings.HasPrefix(universityCN, countryCN) {
		return universityCN
	}
	return countryCN + universityCN
}

// Description 入库描述的固定模板。
func Description(p *posting.Posting) string {
	return "<p>" + p.Direction +
		"; <br>Deadline: " + p.Deadline.Display() +
		"; <br>Contact: " + p.ContactName + " (" + p.ContactEmail +
		"); <br>URL: " + p.Source + "</p>"
}

// Transform 由校验通过的候选信息与新分配的 Event_ID 装配入库行。
func Transform(p *posting.Posting, eventID int64, today time.Time) *PersistedRecord {
	jobEN := JobTitleEN(p)
	jobCN := MapJobCN(jobEN)
	category := p.Category()

	var count *int
	if n, ok := p.Places(); ok {
		count = &n
	}

	rec := &PersistedRecord{
		EventID:      eventID,
		UniversityCN: p.UniversityCN,
		UniversityEN: p.UniversityEN,
		CountryCN:    p.CountryCN,
		CountryEN:    nullIfEmpty(lexicon.CountryEN(p.CountryCN)),
		JobCN:        nullIfEmpty(jobCN),
		JobEN:        nullIfEmpty(jobEN),
		Description:  Description(p),
		TitleEN:      nullIfEmpty(EnglishTitle(p.UniversityEN, lexicon.CountryEN(p.CountryCN), jobEN, category, count)),
		TitleCN:      nullIfEmpty(ChineseTitle(p.CountryCN, p.UniversityCN, jobCN, category, count)),
		Labels:       make(map[lexicon.Subject]int, len(lexicon.LabelColumns)),
		Date:         today.Format("2006-01-02"),
		IsPublic:     1,
		IsDeleted:    0,
	}
	for _, s := range lexicon.LabelColumns {
		if p.Subjects[s].Truthy() {
			rec.Labels[s] = 1
		} else {
			rec.Labels[s] = 0
		}
	}
	return rec
}

func nullIfEmpty(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
