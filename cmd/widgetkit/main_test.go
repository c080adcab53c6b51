package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeConfig(t *testing.T, name, data string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestRenderDefaultCatalog(t *testing.T) {
	dir := writeConfig(t, "widgetkit.json", `{"name": "Demo shop"}`)

	out, err := run(t, "render", "--config", dir)
	if err != nil {
		t.Fatalf("render error = %v", err)
	}
	for _, want := range []string{
		"<title>Demo shop</title>",
		`class="widget-product"`,
		"Widget Tee",
		"Frame Mug",
		"Your cart is empty.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestRenderWithCartItems(t *testing.T) {
	dir := writeConfig(t, "widgetkit.yaml", "name: shop\n")

	out, err := run(t, "render", "-c", dir, "--add", "tee", "--add", "mug")
	if err != nil {
		t.Fatalf("render error = %v", err)
	}
	if n := strings.Count(out, `class="widget-cart-item"`); n != 2 {
		t.Errorf("rendered %d line items, want 2", n)
	}
	if !strings.Contains(out, "$39.00") {
		t.Error("subtotal $39.00 missing")
	}
}

func TestRenderToFile(t *testing.T) {
	dir := writeConfig(t, "widgetkit.json", `{}`)
	path := filepath.Join(t.TempDir(), "page.html")

	if _, err := run(t, "render", "-c", dir, "-o", path); err != nil {
		t.Fatalf("render error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "<!DOCTYPE html>") {
		t.Errorf("file does not hold a page:\n%s", data)
	}
}

func TestRenderUnknownProduct(t *testing.T) {
	dir := writeConfig(t, "widgetkit.json", `{}`)
	if _, err := run(t, "render", "-c", dir, "--add", "hat"); err == nil {
		t.Error("render with unknown product should fail")
	}
}

func TestRenderCustomCatalog(t *testing.T) {
	dir := writeConfig(t, "widgetkit.json", `{"catalog": "catalog.yaml"}`)
	catalog := `moneyFormat: "{{amount}} EUR"
products:
  - id: pen
    title: Pen
    variants:
      - id: pen-1
        price: 350
        available: true
`
	if err := os.WriteFile(filepath.Join(dir, "catalog.yaml"), []byte(catalog), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "render", "-c", dir)
	if err != nil {
		t.Fatalf("render error = %v", err)
	}
	if !strings.Contains(out, "3.50 EUR") {
		t.Errorf("custom catalog price missing:\n%s", out)
	}
}

func TestInvalidLogLevel(t *testing.T) {
	dir := writeConfig(t, "widgetkit.json", `{}`)
	_, err := run(t, "render", "-c", dir, "--log-level", "loud")
	if err == nil || !strings.Contains(err.Error(), "W202") {
		t.Errorf("error = %v, want W202", err)
	}
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version", "--short")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != version {
		t.Errorf("version = %q, want %q", out, version)
	}
}
