package utils_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/KaramelBytes/incidentloom-cli/internal/utils"
)

func TestSafeWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "incidents.csv")
	if err := utils.SafeWriteFile(path, []byte("v1")); err != nil {
		t.Fatalf("first write: %v", err)
	}
	if err := utils.SafeWriteFile(path, []byte("v2")); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil || string(b) != "v2" {
		t.Fatalf("content = %q, %v", b, err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("temp file left behind: %v", err)
	}
}

func TestPrettyJSON(t *testing.T) {
	b, err := utils.PrettyJSON(map[string]string{"category": "跌倒事件"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s := string(b)
	if !strings.Contains(s, "\"category\": \"跌倒事件\"") || !strings.HasSuffix(s, "\n") {
		t.Fatalf("json = %q", s)
	}
	if _, err := utils.PrettyJSON(make(chan int)); err == nil {
		t.Fatalf("expected error for unsupported type")
	}
}
