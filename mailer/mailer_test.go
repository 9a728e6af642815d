package mailer

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadDirectory(t *testing.T) {
	path := writeFile(t, "members.txt",
		"张三,zhangsan@example.com\n"+
			"\n"+
			"李四 , lisi@example.com \n"+
			"没有逗号的行\n"+
			"张三,newer@example.com\n")

	dir, err := ReadDirectory(path)
	if err != nil {
		t.Fatalf("ReadDirectory: %v", err)
	}

	members := dir.Members()
	if len(members) != 2 {
		t.Fatalf("members = %v", members)
	}
	if members[0].Name != "张三" || members[1].Name != "李四" {
		t.Errorf("应保留文件顺序: %v", members)
	}
	if members[1].Email != "lisi@example.com" {
		t.Errorf("应去除空白: %q", members[1].Email)
	}

	// 重名以首次出现为准，Lookup 与 Members 一致。
	if email, ok := dir.Lookup("张三"); !ok || email != "zhangsan@example.com" {
		t.Errorf("Lookup(张三) = %q, %v", email, ok)
	}
	if members[0].Email != "zhangsan@example.com" {
		t.Errorf("Members 与 Lookup 口径不一致: %v", members)
	}
	if _, ok := dir.Lookup("王五"); ok {
		t.Error("未知姓名不应命中")
	}

	first, ok := dir.First()
	if !ok || first.Name != "张三" {
		t.Errorf("First = %v, %v", first, ok)
	}
}

func TestReadDirectoryEmpty(t *testing.T) {
	dir, err := ReadDirectory(writeFile(t, "members.txt", ""))
	if err != nil {
		t.Fatalf("ReadDirectory: %v", err)
	}
	if len(dir.Members()) != 0 {
		t.Errorf("members = %v", dir.Members())
	}
	if _, ok := dir.First(); ok {
		t.Error("空名单 First 应返回 false")
	}
}

func TestReadCredentials(t *testing.T) {
	path := writeFile(t, "creds.txt", "bot@example.com\napp-password\n")
	user, pass, err := ReadCredentials(path)
	if err != nil {
		t.Fatalf("ReadCredentials: %v", err)
	}
	if user != "bot@example.com" || pass != "app-password" {
		t.Errorf("got %q / %q", user, pass)
	}

	// Windows 换行同样可读。
	path = writeFile(t, "creds-crlf.txt", "bot@example.com\r\napp-password\r\n")
	user, pass, err = ReadCredentials(path)
	if err != nil {
		t.Fatalf("ReadCredentials: %v", err)
	}
	if user != "bot@example.com" || pass != "app-password" {
		t.Errorf("got %q / %q", user, pass)
	}

	if _, _, err := ReadCredentials(writeFile(t, "bad.txt", "only-one-line")); err == nil {
		t.Error("缺密码行应报错")
	}
}
