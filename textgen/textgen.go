// Package textgen 生成两类人读输出：微信群消息与公众号文章模板。
package textgen

import (
	"fmt"
	"strconv"
	"strings"

	"gisource-automation/lexicon"
	"gisource-automation/posting"
	"gisource-automation/record"
)

// Abbreviation 按固定检查顺序生成职位缩写，逗号分隔。
// 硕士的学位缩写由学科组合决定：自然地理/GIS/遥感/测绘 → MSc；
// 仅人文地理/城市规划 → MA；其余情况默认 MSc。
// 没有任何角色命中时返回空串，调用方视为无法继续。
func Abbreviation(p *posting.Posting) string {
	var abbrevs []string

	if p.Roles[lexicon.RoleMaster].Truthy() {
		switch {
		case p.Subjects[lexicon.SubjectPhysicalGeo].Truthy() ||
			p.Subjects[lexicon.SubjectGIS].Truthy() ||
			p.Subjects[lexicon.SubjectRS].Truthy() ||
			p.Subjects[lexicon.SubjectGNSS].Truthy():
			abbrevs = append(abbrevs, "MSc")
		case p.Subjects[lexicon.SubjectHumanGeo].Truthy() ||
			p.Subjects[lexicon.SubjectUrban].Truthy():
			abbrevs = append(abbrevs, "MA")
		default:
			abbrevs = append(abbrevs, "MSc")
		}
	}
	for _, r := range lexicon.AbbrevOrder[1:] {
		if p.Roles[r].Truthy() {
			abbrevs = append(abbrevs, lexicon.Abbrev[r])
		}
	}
	return strings.Join(abbrevs, ", ")
}

// ChatMessage 生成微信群消息文本。
func ChatMessage(p *posting.Posting, abbreviation string, eventID int64, permalinkBase string) string {
	combined := record.CombinedTitle(p.CountryCN, p.UniversityCN)
	tokens := strings.Split(abbreviation, ", ")
	opportunity := strings.Join(tokens, "或")

	// 名额已知且不为 1 时在机会前加数量。
	if p.NumberPlaces != "" && p.NumberPlaces != "1" {
		opportunity = p.NumberPlaces + "名" + opportunity
	}

	var b strings.Builder
	b.WriteString(combined + p.Direction + "方向" + opportunity + "机会\n\n")
	b.WriteString(p.Deadline.ChinesePhrase() + "，有意者请联系" + p.ContactName + " (" + p.ContactEmail + ")\n\n")
	b.WriteString(fmt.Sprintf("%s%d\n\n", permalinkBase, eventID))

	labels := []string{p.CountryCN}
	for _, abbr := range tokens {
		if cn, ok := lexicon.Jobs[abbr]; ok {
			labels = append(labels, cn+"机会")
		}
	}
	for _, s := range lexicon.SubjectOrder {
		if p.Subjects[s].Truthy() {
			labels = append(labels, lexicon.Subjects[s])
		}
	}
	labels = append(labels, p.WXLabels...)

	kept := labels[:0]
	for _, l := range labels {
		if l != "" {
			kept = append(kept, l)
		}
	}
	b.WriteString("标签：" + strings.Join(kept, "；"))
	return b.String()
}

// Article 生成公众号文章段落。职位中文名只由首个缩写反查，查不到用缩写原文。
// 首行的国名判断按包含关系，而非标题路径的前缀关系。
func Article(p *posting.Posting, abbreviation string) string {
	first := strings.Split(abbreviation, ", ")[0]
	jobCN, ok := lexicon.Jobs[first]
	if !ok {
		jobCN = first
	}
	verb := posting.CategoryOfJobCN(jobCN).VerbCN()

	university := p.CountryCN + p.UniversityCN
	if strings.Contains(p.UniversityCN, p.CountryCN) {
		university = p.UniversityCN
	}

	var b strings.Builder
	b.WriteString(university + "\n")
	b.WriteString("方向：" + p.Direction + "\n")
	if n, okN := p.Places(); okN && n > 1 {
		b.WriteString(verb + "类型：" + jobCN + "(" + strconv.Itoa(n) + "名)\n")
	} else {
		b.WriteString(verb + "类型：" + jobCN + "\n")
	}
	deadline := strings.TrimSpace(strings.ReplaceAll(p.Deadline.ChinesePhrase(), "申请截止", ""))
	b.WriteString("申请截止：" + deadline + "\n")
	b.WriteString("详细信息：\n" + p.Source + "\n")
	b.WriteString("联系人：\n" + p.ContactName + " (" + p.ContactEmail + ")\n")
	return b.String()
}
