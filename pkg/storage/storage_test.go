package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewKeyKeepsExtension(t *testing.T) {
	key := NewKey("photo.JPG")
	if !strings.HasSuffix(key, ".JPG") {
		t.Errorf("key 应保留原始后缀: %s", key)
	}
	if strings.Count(key, "/") != 3 {
		t.Errorf("key 应为 yyyy/mm/dd/uuid 结构: %s", key)
	}

	// 无后缀文件名也能生成
	if NewKey("raw") == "" {
		t.Error("无后缀文件名生成了空 key")
	}
}

func TestNewProviderFactory(t *testing.T) {
	p, err := NewProvider(&Config{})
	if err != nil {
		t.Fatalf("默认配置应走 local: %v", err)
	}
	if _, ok := p.(*LocalProvider); !ok {
		t.Errorf("默认提供者类型错误: %T", p)
	}

	if _, err := NewProvider(&Config{Provider: "ftp"}); err == nil {
		t.Error("未知提供者应报错")
	}
}

func TestLocalProviderURLs(t *testing.T) {
	p := NewLocalProvider(&Config{LocalBase: "/uploads/"})

	if got := p.PublicURL("2026/01/02/a.png"); got != "/uploads/2026/01/02/a.png" {
		t.Errorf("PublicURL = %s", got)
	}

	signed, err := p.SignedURL(context.Background(), "2026/01/02/a.png", 0)
	if err != nil {
		t.Fatalf("SignedURL: %v", err)
	}
	if signed != p.PublicURL("2026/01/02/a.png") {
		t.Errorf("本地签名 URL 应等于公开 URL: %s", signed)
	}
}

func TestLocalProviderDelete(t *testing.T) {
	dir := t.TempDir()
	p := NewLocalProvider(&Config{LocalDir: dir})

	// 删除不存在的对象不报错
	if err := p.Delete(context.Background(), "2026/01/02/missing.png"); err != nil {
		t.Errorf("删除缺失对象: %v", err)
	}

	// 真实文件被删掉
	sub := filepath.Join(dir, "2026", "01", "02")
	os.MkdirAll(sub, 0o755)
	target := filepath.Join(sub, "a.png")
	os.WriteFile(target, []byte("x"), 0o644)

	if err := p.Delete(context.Background(), "2026/01/02/a.png"); err != nil {
		t.Fatalf("删除对象: %v", err)
	}
	if _, err := os.Stat(target); !os.IsNotExist(err) {
		t.Error("对象文件仍然存在")
	}

	// 越界 key 不会逃出存储目录
	outside := filepath.Join(filepath.Dir(dir), "escape.txt")
	os.WriteFile(outside, []byte("x"), 0o644)
	defer os.Remove(outside)

	p.Delete(context.Background(), "../escape.txt")
	if _, err := os.Stat(outside); err != nil {
		t.Error("越界路径的文件被删除了")
	}

	if err := p.Delete(context.Background(), ""); err == nil {
		t.Error("空 key 应报错")
	}
}
