// Package words 提供数字与日期的中英文口语化输出。
package words

import (
	"fmt"
	"strconv"
	"time"
)

var englishOnes = []string{
	"zero", "one", "two", "three", "four", "five", "six", "seven", "eight", "nine",
	"ten", "eleven", "twelve", "thirteen", "fourteen", "fifteen", "sixteen",
	"seventeen", "eighteen", "nineteen",
}

var englishTens = []string{
	"", "", "twenty", "thirty", "forty", "fifty", "sixty", "seventy", "eighty", "ninety",
}

// EnglishNumber 将 0-99 转为英文单词，复合十位用连字符（twenty-three）。
// 超出范围时退化为十进制数字串。
func EnglishNumber(n int) string {
	if n < 0 || n > 99 {
		return strconv.Itoa(n)
	}
	if n < 20 {
		return englishOnes[n]
	}
	if n%10 == 0 {
		return englishTens[n/10]
	}
	return fmt.Sprintf("%s-%s", englishTens[n/10], englishOnes[n%10])
}

// 截止日期的中文固定话术。
const (
	DeadlineSoonPhrase    = "尽快申请"
	DeadlineMissingPhrase = "日期信息缺失"
	DeadlineInvalidPhrase = "日期格式错误"
)

// ChineseDateDeadline 输出"2025年6月1日申请截止"格式，月日不补零。
func ChineseDateDeadline(t time.Time) string {
	return fmt.Sprintf("%d年%d月%d日申请截止", t.Year(), int(t.Month()), t.Day())
}

var chineseDigits = []string{"零", "一", "二", "三", "四", "五", "六", "七", "八", "九"}

// ChineseNumber 将 0-99 转为中文数字，超出范围时退化为十进制数字串。
func ChineseNumber(n int) string {
	switch {
	case n < 0 || n > 99:
		return strconv.Itoa(n)
	case n < 10:
		return chineseDigits[n]
	case n < 20:
		if n%10 == 0 {
			return "十"
		}
		return "十" + chineseDigits[n%10]
	default:
		s := chineseDigits[n/10] + "十"
		if n%10 != 0 {
			s += chineseDigits[n%10]
		}
		return s
	}
}
