// Package mailer 通过 SMTP 发送提醒、纠错与群消息通知邮件。
package mailer

import (
	"bufio"
	"fmt"
	"mime"
	"net/smtp"
	"os"
	"strings"
)

// Member 组员身份，用于通知路由。
type Member struct {
	Name  string
	Email string
}

// Directory 组员名单，保留文件中的出现顺序。
type Directory struct {
	members []Member
	byName  map[string]string
}

// ReadDirectory 读取组员文件，每行 "姓名,邮箱"。
func ReadDirectory(path string) (*Directory, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open group members file failed: %w", err)
	}
	defer f.Close()

	d := &Directory{byName: make(map[string]string)}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || !strings.Contains(line, ",") {
			continue
		}
		parts := strings.SplitN(line, ",", 2)
		name := strings.TrimSpace(parts[0])
		email := strings.TrimSpace(parts[1])
		if name == "" || email == "" {
			continue
		}
		// 重名以首次出现为准，Lookup 与 Members 口径一致。
		if _, dup := d.byName[name]; dup {
			continue
		}
		d.members = append(d.members, Member{Name: name, Email: email})
		d.byName[name] = email
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read group members file failed: %w", err)
	}
	return d, nil
}

// Lookup 按姓名查邮箱。
func (d *Directory) Lookup(name string) (string, bool) {
	email, ok := d.byName[name]
	return email, ok
}

// Members 全体组员。
func (d *Directory) Members() []Member { return d.members }

// First 名单中的第一位组员，作为通知兜底收件人。
func (d *Directory) First() (Member, bool) {
	if len(d.members) == 0 {
		return Member{}, false
	}
	return d.members[0], true
}

// Sender SMTP 发件客户端。
type Sender struct {
	Host     string
	Port     int
	Username string
	Password string
}

// ReadCredentials 读取凭据文件：第一行邮箱账号，第二行应用密码。
func ReadCredentials(path string) (username, password string, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("open email credentials file failed: %w", err)
	}
	lines := strings.SplitN(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n", 3)
	if len(lines) < 2 {
		return "", "", fmt.Errorf("email credentials file %s must contain username and password lines", path)
	}
	return strings.TrimSpace(lines[0]), strings.TrimSpace(lines[1]), nil
}

// Send 发送一封 UTF-8 纯文本邮件。
func (s *Sender) Send(toEmail, toName, subject, body string) error {
	headers := map[string]string{
		"From":                      s.Username,
		"To":                        toEmail,
		"Subject":                   mime.QEncoding.Encode("UTF-8", subject),
		"MIME-Version":              "1.0",
		"Content-Type":              `text/plain; charset="utf-8"`,
		"Content-Transfer-Encoding": "8bit",
	}
	var msg strings.Builder
	for _, k := range []string{"From", "To", "Subject", "MIME-Version", "Content-Type", "Content-Transfer-Encoding"} {
		msg.WriteString(k + ": " + headers[k] + "\r\n")
	}
	msg.WriteString("\r\n" + body)

	addr := fmt.Sprintf("%s:%d", s.Host, s.Port)
	auth := smtp.PlainAuth("", s.Username, s.Password, s.Host)
	if err := smtp.SendMail(addr, auth, s.Username, []string{toEmail}, []byte(msg.String())); err != nil {
		return fmt.Errorf("send mail to %s (%s) failed: %w", toName, toEmail, err)
	}
	return nil
}

// SendReminder 向全体组员广播"请添加内容"提醒。
func (s *Sender) SendReminder(dir *Directory, sheetLocation string) error {
	subject := "GISource提醒：添加内容"
	body := "亲爱的 GISource 团队成员，\n\n" +
		"现有资讯消息已全部发送，请您尽快添加/完善内容（" + sheetLocation + "）。\n\n" +
		"如果您已退出相关工作，请回复本邮件告知我们。"

	var firstErr error
	for _, m := range dir.Members() {
		if err := s.Send(m.Email, m.Name, subject, body); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// SendErrorNotification 向审核人发送信息有误提醒。
func (s *Sender) SendErrorNotification(toEmail, toName, source, university, direction, date string) error {
	subject := fmt.Sprintf("GISource信息错误提醒 - %s - %s", date, direction)
	body := fmt.Sprintf("%s同学您好，\n\n您填写的 \"%s-%s\" 消息有误，请及时更正。\n\n消息链接：%s",
		toName, university, direction, source)
	return s.Send(toEmail, toName, subject, body)
}

// SendChatPrompt 将生成好的群消息发给操作员，请其确认后转发至微信群。
func (s *Sender) SendChatPrompt(toEmail, toName, text, direction, date string) error {
	subject := fmt.Sprintf("微信群信息发送通知 - %s - %s", date, direction)
	body := fmt.Sprintf("%s同学您好，\n\n请在确认信息无误后，发送以下信息至微信群。\n\n\n\n%s", toName, text)
	return s.Send(toEmail, toName, subject, body)
}
