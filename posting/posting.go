// Package posting 定义候选信息的内部模型。
// 来源表中的 "1"/1/1.0 等写法在入口处统一归一为三态标记，
// 内部逻辑不再检查原始字符串形式；原始行保留用于原样回写。
package posting

import (
	"strconv"
	"strings"
	"time"

	"gisource-automation/lexicon"
	"gisource-automation/words"
)

// Tri 三态标记：缺失 / 否 / 是。
type Tri int

const (
	TriAbsent Tri = iota
	TriFalse
	TriTrue
)

// TriFromCell 归一化单元格内容。"1"、1、1.0 均视为真。
func TriFromCell(cell string) Tri {
	s := strings.TrimSpace(cell)
	if s == "" {
		return TriAbsent
	}
	if s == "1" {
		return TriTrue
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f == 1 {
		return TriTrue
	}
	return TriFalse
}

// Truthy 三态是否为真。
func (t Tri) Truthy() bool { return t == TriTrue }

// DeadlineKind 截止日期的归类。
type DeadlineKind int

const (
	DeadlineMissing DeadlineKind = iota
	DeadlineSoon
	DeadlineDate
	DeadlineRaw // 非空但无法解析为日期
)

// Deadline 截止日期。Soon 是字面值，不参与日期解析。
type Deadline struct {
	Kind DeadlineKind
	Date time.Time
	Raw  string
}

// 日期解析按宽松的常见格式逐一尝试。
var deadlineLayouts = []string{
	"2006-01-02",
	"2006-1-2",
	"2006/01/02",
	"2006/1/2",
	"2006.01.02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"January 2, 2006",
	"Jan 2, 2006",
}

// ParseDeadline 解析单元格中的截止日期。
func ParseDeadline(cell string, loc *time.Location) Deadline {
	s := strings.TrimSpace(cell)
	if s == "" {
		return Deadline{Kind: DeadlineMissing}
	}
	if s == "Soon" {
		return Deadline{Kind: DeadlineSoon, Raw: s}
	}
	for _, layout := range deadlineLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return Deadline{Kind: DeadlineDate, Date: t, Raw: s}
		}
	}
	return Deadline{Kind: DeadlineRaw, Raw: s}
}

// Before 日期类截止是否早于给定日（按天比较）。
func (d Deadline) Before(day time.Time) bool {
	if d.Kind != DeadlineDate {
		return false
	}
	y1, m1, d1 := d.Date.Date()
	y2, m2, d2 := day.Date()
	if y1 != y2 {
		return y1 < y2
	}
	if m1 != m2 {
		return m1 < m2
	}
	return d1 < d2
}

// Display 入库描述中的展示形式：日期归一为 YYYY-MM-DD，Soon 与无法解析的原样输出。
func (d Deadline) Display() string {
	switch d.Kind {
	case DeadlineDate:
		return d.Date.Format("2006-01-02")
	default:
		return d.Raw
	}
}

// ChinesePhrase 中文展示话术。
func (d Deadline) ChinesePhrase() string {
	switch d.Kind {
	case DeadlineSoon:
		return words.DeadlineSoonPhrase
	case DeadlineDate:
		return words.ChineseDateDeadline(d.Date)
	case DeadlineMissing:
		return words.DeadlineMissingPhrase
	default:
		return words.DeadlineInvalidPhrase
	}
}

// Category 职位动词分类，在入库/渲染时决定"举办/招聘/招生"。
type Category int

const (
	CategoryEnrolling Category = iota
	CategoryRecruiting
	CategoryHosting
)

// VerbCN 分类对应的中文动词。
func (c Category) VerbCN() string {
	switch c {
	case CategoryHosting:
		return "举办"
	case CategoryRecruiting:
		return "招聘"
	default:
		return "招生"
	}
}

var hostingRoles = map[lexicon.Role]bool{
	lexicon.RoleCompetition:  true,
	lexicon.RoleSummerSchool: true,
	lexicon.RoleConference:   true,
	lexicon.RoleWorkshop:     true,
}

var hostingJobsCN = map[string]bool{
	"竞赛": true, "暑期学校": true, "学术会议": true, "研讨会": true,
}

var recruitingJobsCN = map[string]bool{
	"博士后": true, "研究助理": true,
}

// CategoryOfJobCN 按中文职位名归类，用于从缩写反查职位的渲染场景。
func CategoryOfJobCN(jobCN string) Category {
	switch {
	case hostingJobsCN[jobCN]:
		return CategoryHosting
	case recruitingJobsCN[jobCN]:
		return CategoryRecruiting
	default:
		return CategoryEnrolling
	}
}

// Posting 一条候选信息。Row 保存来源表的原始行用于原样回写。
type Posting struct {
	Row []string

	Source       string
	Deadline     Deadline
	CountryCN    string
	UniversityCN string
	UniversityEN string
	Direction    string
	ContactName  string
	ContactEmail string
	NumberPlaces string
	Verifier     string
	ErrorFlag    string

	Roles    map[lexicon.Role]Tri
	Subjects map[lexicon.Subject]Tri
	WXLabels []string

	fields map[string]string
}

// FromRow 按表头将一行数据装配为 Posting。行长度不足时按空值处理。
func FromRow(headers, row []string, loc *time.Location) *Posting {
	fields := make(map[string]string, len(headers))
	for i, h := range headers {
		v := ""
		if i < len(row) {
			v = row[i]
		}
		fields[strings.TrimSpace(h)] = strings.TrimSpace(v)
	}

	p := &Posting{
		Row:          row,
		Source:       fields["Source"],
		Deadline:     ParseDeadline(fields["Deadline"], loc),
		CountryCN:    fields["Country_CN"],
		UniversityCN: fields["University_CN"],
		UniversityEN: fields["University_EN"],
		Direction:    fields["Direction"],
		ContactName:  fields["Contact_Name"],
		ContactEmail: fields["Contact_Email"],
		NumberPlaces: fields["Number_Places"],
		Verifier:     fields["Verifier"],
		ErrorFlag:    fields["Error"],
		Roles:        make(map[lexicon.Role]Tri, len(lexicon.RoleOrder)),
		Subjects:     make(map[lexicon.Subject]Tri, len(lexicon.SubjectOrder)),
		fields:       fields,
	}
	for _, r := range lexicon.RoleOrder {
		p.Roles[r] = TriFromCell(fields[string(r)])
	}
	for _, s := range lexicon.SubjectOrder {
		p.Subjects[s] = TriFromCell(fields[string(s)])
	}
	for i := 1; i <= 5; i++ {
		p.WXLabels = append(p.WXLabels, fields["WX_Label"+strconv.Itoa(i)])
	}
	return p
}

// Field 返回原始列值（已去除首尾空白）。
func (p *Posting) Field(name string) string {
	return p.fields[name]
}

// Places 解析招收名额；无法解析为整数时返回 false。
func (p *Posting) Places() (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(p.NumberPlaces))
	if err != nil {
		return 0, false
	}
	return n, true
}

// ActiveRoles 按标题拼接顺序返回为真的角色。
func (p *Posting) ActiveRoles() []lexicon.Role {
	var roles []lexicon.Role
	for _, r := range lexicon.RoleOrder {
		if p.Roles[r].Truthy() {
			roles = append(roles, r)
		}
	}
	return roles
}

// Category 入库时确定一次的职位动词分类：
// 仅当恰好一个角色为真时才可能是举办/招聘类，多个角色一律按招生处理。
func (p *Posting) Category() Category {
	roles := p.ActiveRoles()
	if len(roles) != 1 {
		return CategoryEnrolling
	}
	switch {
	case hostingRoles[roles[0]]:
		return CategoryHosting
	case roles[0] == lexicon.RolePostDoc || roles[0] == lexicon.RoleRA:
		return CategoryRecruiting
	default:
		return CategoryEnrolling
	}
}

// Eligible 入池条件：无已知错误、有审核人、且审核人不是自动审核。
func (p *Posting) Eligible(autoReviewer string) bool {
	if p.ErrorFlag == "1" {
		return false
	}
	if p.Verifier == "" || p.Verifier == autoReviewer {
		return false
	}
	return true
}
