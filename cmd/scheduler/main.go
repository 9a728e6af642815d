// scheduler 常驻模式：按 cron 表达式周期性触发单次处理。
// 每个周期等价于一次 gisource 运行；单次失败只记录，等待下个周期重试。
package main

import (
	"context"
	"flag"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"gisource-automation/config"
	"gisource-automation/docstore"
	"gisource-automation/mailer"
	"gisource-automation/pipeline"
	"gisource-automation/progress"
	"gisource-automation/sheets"
	"gisource-automation/store"
)

func main() {
	var envPath, spec string
	var runOnStart bool
	flag.StringVar(&envPath, "env", ".env", "环境配置文件路径")
	flag.StringVar(&spec, "spec", "@daily", "cron 表达式（如 @daily、@every 12h）")
	flag.BoolVar(&runOnStart, "run-on-start", false, "启动时先立即执行一次")
	flag.Parse()

	cfg, err := config.Load(envPath)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	c := cron.New(cron.WithLogger(cron.DefaultLogger))
	if _, err := c.AddFunc(spec, func() { runOnce(cfg) }); err != nil {
		log.Fatalf("注册定时任务失败: %v", err)
	}
	c.Start()
	log.Printf("[SCHED] 定时任务已启动，spec=%s", spec)

	if runOnStart {
		go runOnce(cfg)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	ctx := c.Stop()
	<-ctx.Done()
	log.Println("[SCHED] 定时任务已停止")
}

func runOnce(cfg *config.Config) {
	members, err := mailer.ReadDirectory(cfg.MembersFile)
	if err != nil {
		log.Printf("[SCHED] 读取组员名单失败: %v", err)
		return
	}
	username, password, err := mailer.ReadCredentials(cfg.EmailCredsFile)
	if err != nil {
		log.Printf("[SCHED] 读取邮箱凭据失败: %v", err)
		return
	}

	db, err := store.Open(cfg.DatabasePath, cfg.EventTable)
	if err != nil {
		log.Printf("[SCHED] 打开参考库失败: %v", err)
		return
	}
	defer db.Close()

	ctx := context.Background()
	if err := db.EnsureSchema(ctx); err != nil {
		log.Printf("[SCHED] 建表失败: %v", err)
		return
	}

	var pub *progress.Publisher
	if cfg.RedisAddr != "" {
		if pub, err = progress.NewPublisher(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisKey); err != nil {
			log.Printf("[WARN] Redis 不可用，跳过运行状态上报: %v", err)
			pub = nil
		} else {
			defer pub.Close()
		}
	}

	runner := &pipeline.Runner{
		Sheets: sheets.NewStore(cfg.WorkbookPath),
		Store:  db,
		Mail: &mailer.Sender{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: username,
			Password: password,
		},
		Doc:           docstore.New(cfg.DocumentPath),
		Members:       members,
		Progress:      pub,
		Rand:          rand.New(rand.NewSource(time.Now().UnixNano())),
		Now:           time.Now,
		Loc:           cfg.Timezone,
		Operator:      cfg.Operator,
		AutoReviewer:  cfg.AutoReviewer,
		PermalinkBase: cfg.PermalinkBase,
		SheetLocation: cfg.SheetLocation,
	}

	result, err := runner.Run(ctx)
	if err != nil {
		log.Printf("[SCHED] 本周期运行失败: %v", err)
		return
	}
	log.Printf("[SCHED] 本周期完成，outcome=%s event_id=%d", result.Outcome, result.EventID)
}
