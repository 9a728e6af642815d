// gisource 单次运行入口：处理一条候选信息后退出。
// 协作方故障以非零码退出；业务性结束（无候选、校验失败等）视为正常。
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"gisource-automation/config"
	"gisource-automation/docstore"
	"gisource-automation/mailer"
	"gisource-automation/pipeline"
	"gisource-automation/progress"
	"gisource-automation/sheets"
	"gisource-automation/store"
)

type options struct {
	envPath string // .env 路径
	seed    int64  // 随机种子，0 表示按时间取
	noMail  bool   // 不发送邮件（调试用）
}

func parseFlags() options {
	var opts options
	flag.StringVar(&opts.envPath, "env", ".env", "环境配置文件路径")
	flag.Int64Var(&opts.seed, "seed", 0, "随机种子（0 表示使用当前时间）")
	flag.BoolVar(&opts.noMail, "no-mail", false, "不发送邮件，仅在日志中打印收件人（调试用）")
	flag.Parse()
	return opts
}

func main() {
	opts := parseFlags()

	cfg, err := config.Load(opts.envPath)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	result, err := run(cfg, opts)
	if err != nil {
		log.Printf("[FATAL] 本次运行中止: %v", err)
		os.Exit(1)
	}

	log.Printf("[DONE] outcome=%s event_id=%d", result.Outcome, result.EventID)
	if result.ChatMessage != "" {
		fmt.Println("---------- 微信群消息 ----------")
		fmt.Println(result.ChatMessage)
	}
	if result.Article != "" {
		fmt.Println("---------- 公众号内容 ----------")
		fmt.Println(result.Article)
	}
}

func run(cfg *config.Config, opts options) (*pipeline.Result, error) {
	members, err := mailer.ReadDirectory(cfg.MembersFile)
	if err != nil {
		return nil, err
	}

	username, password, err := mailer.ReadCredentials(cfg.EmailCredsFile)
	if err != nil {
		return nil, err
	}
	sender := &mailer.Sender{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: username,
		Password: password,
	}

	db, err := store.Open(cfg.DatabasePath, cfg.EventTable)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	ctx := context.Background()
	if err := db.EnsureSchema(ctx); err != nil {
		return nil, err
	}

	var pub *progress.Publisher
	if cfg.RedisAddr != "" {
		pub, err = progress.NewPublisher(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisKey)
		if err != nil {
			// 状态上报是旁路能力，连不上只告警。
			log.Printf("[WARN] Redis 不可用，跳过运行状态上报: %v", err)
			pub = nil
		} else {
			defer pub.Close()
			log.Printf("[INIT] 运行标识 %s", pub.RunID())
		}
	}

	seed := opts.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	var notifier pipeline.Notifier = sender
	if opts.noMail {
		notifier = logOnlyNotifier{}
	}

	runner := &pipeline.Runner{
		Sheets:        sheets.NewStore(cfg.WorkbookPath),
		Store:         db,
		Mail:          notifier,
		Doc:           docstore.New(cfg.DocumentPath),
		Members:       members,
		Progress:      pub,
		Rand:          rand.New(rand.NewSource(seed)),
		Now:           time.Now,
		Loc:           cfg.Timezone,
		Operator:      cfg.Operator,
		AutoReviewer:  cfg.AutoReviewer,
		PermalinkBase: cfg.PermalinkBase,
		SheetLocation: cfg.SheetLocation,
	}
	return runner.Run(ctx)
}

// logOnlyNotifier 调试模式下只打印收件人，不真正发信。
type logOnlyNotifier struct{}

func (logOnlyNotifier) SendReminder(dir *mailer.Directory, sheetLocation string) error {
	log.Printf("[NO-MAIL] 提醒邮件 -> %d 位组员", len(dir.Members()))
	return nil
}

func (logOnlyNotifier) SendErrorNotification(toEmail, toName, source, university, direction, date string) error {
	log.Printf("[NO-MAIL] 纠错邮件 -> %s (%s)", toName, toEmail)
	return nil
}

func (logOnlyNotifier) SendChatPrompt(toEmail, toName, text, direction, date string) error {
	log.Printf("[NO-MAIL] 群消息通知 -> %s (%s)", toName, toEmail)
	return nil
}
