package textgen

import (
	"strings"
	"testing"
	"time"

	"gisource-automation/posting"
)

var testHeaders = []string{
	"Source", "Deadline", "Country_CN", "University_CN", "University_EN",
	"Direction", "Contact_Name", "Contact_Email", "Number_Places", "Verifier", "Error",
	"Master Student", "Doctoral Student", "PostDoc", "Research Assistant",
	"Competition", "Summer School", "Conference", "Workshop",
	"Physical_Geo", "Human_Geo", "Urban", "GIS", "RS", "GNSS",
	"WX_Label1", "WX_Label2", "WX_Label3", "WX_Label4", "WX_Label5",
}

func buildPosting(t *testing.T, over map[string]string) *posting.Posting {
	t.Helper()
	row := make([]string, len(testHeaders))
	for i, h := range testHeaders {
		row[i] = over[h]
	}
	return posting.FromRow(testHeaders, row, time.UTC)
}

func mitRow() map[string]string {
	return map[string]string{
		"Source":         "https://example.edu/gis",
		"Deadline":       "Soon",
		"Country_CN":     "美国",
		"University_CN":  "麻省理工学院",
		"University_EN":  "MIT",
		"Direction":      "GIS",
		"Contact_Name":   "Li Lei",
		"Contact_Email":  "lilei@example.com",
		"Number_Places":  "2",
		"Verifier":       "张三",
		"Master Student": "1",
		"GIS":            "1",
	}
}

func TestAbbreviation(t *testing.T) {
	tests := []struct {
		name string
		over map[string]string
		want string
	}{
		{"理科学科取MSc", map[string]string{"Master Student": "1", "GIS": "1"}, "MSc"},
		{"文科学科取MA", map[string]string{"Master Student": "1", "Human_Geo": "1"}, "MA"},
		{"城市规划取MA", map[string]string{"Master Student": "1", "Urban": "1"}, "MA"},
		{"文理混合取MSc", map[string]string{"Master Student": "1", "Human_Geo": "1", "RS": "1"}, "MSc"},
		{"无学科默认MSc", map[string]string{"Master Student": "1"}, "MSc"},
		{"博士", map[string]string{"Doctoral Student": "1"}, "PhD"},
		{"会议排在暑校之前", map[string]string{"Summer School": "1", "Conference": "1"}, "Conference, Summer School"},
		{"多角色顺序", map[string]string{"Master Student": "1", "GIS": "1", "Doctoral Student": "1", "PostDoc": "1"}, "MSc, PhD, PostDoc"},
		{"无角色返回空串", nil, ""},
	}
	for _, tt := range tests {
		p := buildPosting(t, tt.over)
		if got := Abbreviation(p); got != tt.want {
			t.Errorf("%s: Abbreviation = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestChatMessage(t *testing.T) {
	p := buildPosting(t, mitRow())
	msg := ChatMessage(p, Abbreviation(p), 42, "https://gisphere.info/post/")

	if !strings.HasPrefix(msg, "美国麻省理工学院GIS方向2名MSc机会") {
		t.Errorf("群消息首行错误:\n%s", msg)
	}
	if !strings.Contains(msg, "尽快申请，有意者请联系Li Lei (lilei@example.com)") {
		t.Errorf("群消息联系行错误:\n%s", msg)
	}
	if !strings.Contains(msg, "https://gisphere.info/post/42") {
		t.Errorf("群消息链接错误:\n%s", msg)
	}
	if !strings.HasSuffix(msg, "标签：美国；硕士机会；地理信息科学") {
		t.Errorf("群消息标签行错误:\n%s", msg)
	}
}

func TestChatMessageSinglePlace(t *testing.T) {
	// 名额为 1 时机会前不加数量。
	over := mitRow()
	over["Number_Places"] = "1"
	p := buildPosting(t, over)
	msg := ChatMessage(p, Abbreviation(p), 7, "https://gisphere.info/post/")
	if !strings.HasPrefix(msg, "美国麻省理工学院GIS方向MSc机会") {
		t.Errorf("单名额首行错误:\n%s", msg)
	}
}

func TestChatMessageMultiRole(t *testing.T) {
	over := mitRow()
	over["Doctoral Student"] = "1"
	delete(over, "Number_Places")
	p := buildPosting(t, over)
	msg := ChatMessage(p, Abbreviation(p), 7, "https://gisphere.info/post/")
	if !strings.HasPrefix(msg, "美国麻省理工学院GIS方向MSc或PhD机会") {
		t.Errorf("多角色首行错误:\n%s", msg)
	}
	// MSc 与 PhD 各出一个职位标签。
	if !strings.Contains(msg, "硕士机会；博士机会") {
		t.Errorf("职位标签错误:\n%s", msg)
	}
}

func TestChatMessageSkipsEmptyLabels(t *testing.T) {
	over := mitRow()
	over["WX_Label2"] = "奖学金"
	p := buildPosting(t, over)
	msg := ChatMessage(p, Abbreviation(p), 42, "https://gisphere.info/post/")

	if strings.Contains(msg, "；；") || strings.HasSuffix(msg, "；") {
		t.Errorf("空标签不应产生连续分隔符:\n%s", msg)
	}
	if !strings.HasSuffix(msg, "标签：美国；硕士机会；地理信息科学；奖学金") {
		t.Errorf("自定义标签缺失:\n%s", msg)
	}
}

func TestArticle(t *testing.T) {
	p := buildPosting(t, mitRow())
	got := Article(p, Abbreviation(p))

	want := "美国麻省理工学院\n" +
		"方向：GIS\n" +
		"招生类型：硕士(2名)\n" +
		"申请截止：尽快申请\n" +
		"详细信息：\nhttps://example.edu/gis\n" +
		"联系人：\nLi Lei (lilei@example.com)\n"
	if got != want {
		t.Errorf("Article =\n%q\nwant\n%q", got, want)
	}
}

func TestArticleDatedDeadline(t *testing.T) {
	// 日期话术中的"申请截止"被剥掉，只留日期。
	over := mitRow()
	over["Deadline"] = "2025-07-01"
	over["Number_Places"] = "1"
	p := buildPosting(t, over)
	got := Article(p, Abbreviation(p))

	if !strings.Contains(got, "申请截止：2025年7月1日\n") {
		t.Errorf("日期截止行错误:\n%s", got)
	}
	if !strings.Contains(got, "招生类型：硕士\n") {
		t.Errorf("单名额不应带数量:\n%s", got)
	}
}

func TestArticleCountryContainment(t *testing.T) {
	// 文章首行按包含关系判断国名，群消息维持前缀规则。
	over := mitRow()
	over["Country_CN"] = "新加坡"
	over["University_CN"] = "南洋新加坡理工学院"
	p := buildPosting(t, over)

	article := Article(p, Abbreviation(p))
	if !strings.HasPrefix(article, "南洋新加坡理工学院\n") {
		t.Errorf("国名在校名中间时首行不应重复国名:\n%s", article)
	}

	msg := ChatMessage(p, Abbreviation(p), 7, "https://gisphere.info/post/")
	if !strings.HasPrefix(msg, "新加坡南洋新加坡理工学院") {
		t.Errorf("群消息按前缀规则拼接国名:\n%s", msg)
	}
}

func TestArticleUsesFirstAbbreviation(t *testing.T) {
	// 职位中文名只看首个缩写；博士后缩写触发"招聘"动词。
	over := mitRow()
	delete(over, "Master Student")
	over["PostDoc"] = "1"
	over["Doctoral Student"] = "1"
	delete(over, "Number_Places")
	p := buildPosting(t, over)
	got := Article(p, "PostDoc, PhD")

	if !strings.Contains(got, "招聘类型：博士后\n") {
		t.Errorf("应按首个缩写反查职位:\n%s", got)
	}
}
