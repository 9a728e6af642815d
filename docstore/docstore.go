// Package docstore 以本地 Markdown 归档文件承载公众号内容存档：
// 支持查重与带周标题的追加写入。
package docstore

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// Document 归档文件。
type Document struct {
	path string
}

// New 创建文档存取器。
func New(path string) *Document {
	return &Document{path: path}
}

// ContainsText 判断文档是否已包含给定片段；文件不存在视为不包含。
func (d *Document) ContainsText(needle string) (bool, error) {
	data, err := os.ReadFile(d.path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read document failed: %w", err)
	}
	return strings.Contains(string(data), needle), nil
}

// Append 在文档末尾追加正文；header 非空时先写居首的加粗周标题。
func (d *Document) Append(text, header string) error {
	f, err := os.OpenFile(d.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open document failed: %w", err)
	}
	defer f.Close()

	var b strings.Builder
	if header != "" {
		b.WriteString("\n\n## " + header + "\n\n")
	}
	b.WriteString(text + "\n\n")
	if _, err := f.WriteString(b.String()); err != nil {
		return fmt.Errorf("append document failed: %w", err)
	}
	return nil
}

// AddSection 按既有内容决定如何追加：
// 周标题与正文都不存在时一并写入；仅正文缺失时追加到已有标题下；
// 两者都已存在时不做任何修改。返回描述结果的消息。
func (d *Document) AddSection(text, header string) (string, error) {
	headerExists, err := d.ContainsText(header)
	if err != nil {
		return "", err
	}
	textExists, err := d.ContainsText(text)
	if err != nil {
		return "", err
	}

	switch {
	case !headerExists && !textExists:
		if err := d.Append(text, header); err != nil {
			return "", err
		}
		return "本周标题与内容均已写入文档", nil
	case headerExists && !textExists:
		if err := d.Append(text, ""); err != nil {
			return "", err
		}
		return "内容已写入既有周标题之下", nil
	default:
		return "标题与内容均已存在，未做修改", nil
	}
}

// WeekRange 本周的周日到周六（原始流程以周日为一周起点）。
func WeekRange(today time.Time) (start, end time.Time) {
	sinceMonday := (int(today.Weekday()) + 6) % 7
	start = today.AddDate(0, 0, -(sinceMonday + 1))
	end = start.AddDate(0, 0, 6)
	return start, end
}

// WeekHeader 周标题文本。
func WeekHeader(today time.Time) string {
	start, end := WeekRange(today)
	return fmt.Sprintf("Week: %s to %s", start.Format("2006-01-02"), end.Format("2006-01-02"))
}
