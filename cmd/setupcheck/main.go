// setupcheck 启动前自检：逐项确认配置、文件与协作方可用，
// 输出检查清单并在必选项缺失时以非零码退出。
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/xuri/excelize/v2"

	"gisource-automation/config"
	"gisource-automation/mailer"
	"gisource-automation/pipeline"
	"gisource-automation/progress"
	"gisource-automation/store"
)

func main() {
	var envPath string
	flag.StringVar(&envPath, "env", ".env", "环境配置文件路径")
	flag.Parse()

	fmt.Println("============================================")
	fmt.Println("GISource 自动化系统 - 环境自检")
	fmt.Println("============================================")

	failed := 0
	check := func(name string, err error) {
		if err != nil {
			failed++
			fmt.Printf("  ✗ %-14s %v\n", name, err)
			return
		}
		fmt.Printf("  ✓ %s\n", name)
	}

	cfg, err := config.Load(envPath)
	check("配置", err)
	if err != nil {
		os.Exit(1)
	}

	check("工作簿", checkWorkbook(cfg.WorkbookPath))
	check("参考库", checkStore(cfg))
	check("组员名单", checkMembers(cfg.MembersFile))
	check("邮箱凭据", checkMailCreds(cfg.EmailCredsFile))

	if cfg.RedisAddr != "" {
		// Redis 是旁路能力，失败只提示。
		if err := checkRedis(cfg); err != nil {
			fmt.Printf("  ! Redis（可选）  %v\n", err)
		} else {
			fmt.Println("  ✓ Redis（可选）")
		}
	}

	if failed > 0 {
		log.Fatalf("自检未通过：%d 项失败", failed)
	}
	fmt.Println("全部通过，可以运行 gisource")
}

func checkWorkbook(path string) error {
	wb, err := excelize.OpenFile(path)
	if err != nil {
		return fmt.Errorf("无法打开 %s: %w", path, err)
	}
	defer wb.Close()

	have := make(map[string]bool)
	for _, name := range wb.GetSheetList() {
		have[name] = true
	}
	for _, need := range []string{pipeline.SheetUnfilled, pipeline.SheetFilled, pipeline.SheetUniversities} {
		if !have[need] {
			return fmt.Errorf("缺少工作表 %s", need)
		}
	}
	return nil
}

func checkStore(cfg *config.Config) error {
	db, err := store.Open(cfg.DatabasePath, cfg.EventTable)
	if err != nil {
		return err
	}
	defer db.Close()
	return db.EnsureSchema(context.Background())
}

func checkMembers(path string) error {
	dir, err := mailer.ReadDirectory(path)
	if err != nil {
		return err
	}
	if len(dir.Members()) == 0 {
		return fmt.Errorf("%s 中没有有效的组员记录", path)
	}
	return nil
}

func checkMailCreds(path string) error {
	_, _, err := mailer.ReadCredentials(path)
	return err
}

func checkRedis(cfg *config.Config) error {
	pub, err := progress.NewPublisher(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisKey)
	if err != nil {
		return err
	}
	return pub.Close()
}
