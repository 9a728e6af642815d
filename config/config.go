// Package config 加载运行配置：.env 文件叠加环境变量，缺失关键项时快速失败。
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config 应用配置。
type Config struct {
	WorkbookPath   string // 候选信息工作簿（xlsx）
	DatabasePath   string // 参考库（sqlite）
	EventTable     string // 事件表名，测试环境可换表
	DocumentPath   string // 公众号内容归档文件
	MembersFile    string // 组员名单，每行 "姓名,邮箱"
	Operator       string // 操作员姓名，群消息通知的首选收件人
	AutoReviewer   string // 自动审核者标识，其审核的行不入池
	PermalinkBase  string // 事件详情页链接前缀
	SheetLocation  string // 提醒邮件中指引组员填写的位置
	SMTPHost       string
	SMTPPort       int
	EmailCredsFile string // 第一行账号、第二行应用密码
	RedisAddr      string // 可选；为空时不上报运行状态
	RedisPassword  string
	RedisKey       string
	Timezone       *time.Location
}

// Load 加载配置。envPath 为空时尝试当前目录的 .env。
func Load(envPath string) (*Config, error) {
	if envPath == "" {
		envPath = ".env"
	}
	// .env 缺失不是错误：允许纯环境变量部署。
	_ = godotenv.Load(envPath)

	cfg := &Config{
		WorkbookPath:   getenv("WORKBOOK_PATH", "data/gisource.xlsx"),
		DatabasePath:   getenv("DATABASE_PATH", "data/gisource.db"),
		EventTable:     getenv("EVENT_TABLE", "GISource"),
		DocumentPath:   getenv("DOCUMENT_PATH", "data/wechat_articles.md"),
		MembersFile:    getenv("GROUP_MEMBERS_FILE", "group_members.txt"),
		Operator:       getenv("OPERATOR_NAME", "GISphere"),
		AutoReviewer:   getenv("AUTO_REVIEWER", "LLM"),
		PermalinkBase:  getenv("PERMALINK_BASE", "https://gisphere.info/post/"),
		SheetLocation:  getenv("SHEET_LOCATION", ""),
		SMTPHost:       getenv("SMTP_HOST", "smtp.gmail.com"),
		EmailCredsFile: getenv("EMAIL_CREDENTIALS_FILE", "email_credentials.txt"),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		RedisKey:       getenv("REDIS_KEY", "gisource:run"),
	}
	if cfg.SheetLocation == "" {
		cfg.SheetLocation = cfg.WorkbookPath
	}

	port := 587
	if s := os.Getenv("SMTP_PORT"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			return nil, fmt.Errorf("SMTP_PORT must be a positive integer, got %q", s)
		}
		port = v
	}
	cfg.SMTPPort = port

	tzName := getenv("TIMEZONE", "Asia/Shanghai")
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", tzName, err)
	}
	cfg.Timezone = loc

	if cfg.WorkbookPath == "" {
		return nil, fmt.Errorf("WORKBOOK_PATH is required")
	}
	if cfg.DatabasePath == "" {
		return nil, fmt.Errorf("DATABASE_PATH is required")
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
