package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	c, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.HeaderStrategy != "scan" || c.HeaderScanRows != 20 || c.UnknownDepartment != "未知單位" {
		t.Fatalf("defaults = %+v", c)
	}
	if !reflect.DeepEqual(c.SignatureTokens, []string{"單號", "通報日期", "通報員編"}) {
		t.Fatalf("tokens = %v", c.SignatureTokens)
	}
	if !c.ROCYears || !c.ExcelSerialDates || c.ExportEncoding != "utf-8-bom" || c.OutputFormat != "text" {
		t.Fatalf("defaults = %+v", c)
	}
}

func TestLoadFileThenEnv(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "header_strategy: fixed\nheader_fixed_row: 4\nroc_years: false\nworkers: 2\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("INCIDENTLOOM_WORKERS", "6")
	c, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.HeaderStrategy != "fixed" || c.HeaderFixedRow != 4 || c.ROCYears {
		t.Fatalf("file values not applied: %+v", c)
	}
	if c.Workers != 6 {
		t.Fatalf("env should win over file, workers = %d", c.Workers)
	}
	if c.HeaderScanRows != 20 {
		t.Fatalf("unset keys keep defaults, scan rows = %d", c.HeaderScanRows)
	}
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("header_strategy: [unclosed\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for malformed config")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	c, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	c.UnknownDepartment = "不明"
	c.ExportEncoding = "big5"
	if err := Save(c, ""); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := os.Stat(filepath.Join(home, ".incidentloom", "config.yaml")); err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	back, err := Load("")
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if back.UnknownDepartment != "不明" || back.ExportEncoding != "big5" {
		t.Fatalf("reloaded = %+v", back)
	}
}
