package assets

import (
	"bytes"
	"errors"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dchest/assetmin/filters"
	"github.com/dchest/assetmin/hashcache"
)

func writeFile(t *testing.T, filename, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		t.Fatalf("%s", err)
	}
	if err := ioutil.WriteFile(filename, []byte(content), 0644); err != nil {
		t.Fatalf("%s", err)
	}
}

func newCollection(t *testing.T, assets ...*Asset) *Collection {
	t.Helper()
	c, err := NewCollection(&Config{Assets: assets})
	if err != nil {
		t.Fatalf("%s", err)
	}
	return c
}

func TestProcess(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "assets", "js", "gtag.js")
	out := filepath.Join(dir, "assets", "js", "custom.js")
	writeFile(t, in, "var hello = 'world';\n// Say hello.\nconsole.log(hello);\n")

	c := newCollection(t, NewAsset(in, out, nil))
	var status bytes.Buffer
	if err := c.Process(&status); err != nil {
		t.Fatalf("%s", err)
	}
	if s := status.String(); s != "Minified and obfuscated gtag.js (with embedded CSS) to custom.js\n" {
		t.Errorf("unexpected status %q", s)
	}
	b, err := ioutil.ReadFile(out)
	if err != nil {
		t.Fatalf("%s", err)
	}
	expected := "var _a='world';console.log(_a);"
	if strings.TrimSpace(string(b)) != expected {
		t.Errorf("expected %q, got %q", expected, b)
	}
}

func TestProcessEmbeddedCSS(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "gtag.js")
	out := filepath.Join(dir, "custom.js")
	writeFile(t, in, "function injectStyles() {\n"+
		"  const styles = `\n    .cookie-container {\n      position: fixed;\n    }\n  `;\n"+
		"  document.head.textContent = styles;\n}\n")

	c := newCollection(t, NewAsset(in, out, nil))
	if err := c.Process(ioutil.Discard); err != nil {
		t.Fatalf("%s", err)
	}
	b, err := ioutil.ReadFile(out)
	if err != nil {
		t.Fatalf("%s", err)
	}
	s := string(b)
	if !strings.Contains(s, "position:fixed") || strings.Contains(s, "position: fixed") {
		t.Errorf("CSS not minified: %q", s)
	}
	if strings.Contains(s, "injectStyles") {
		t.Errorf("function not renamed: %q", s)
	}
	if !strings.Contains(s, "document.head.textContent=") {
		t.Errorf("globals changed: %q", s)
	}
}

func TestProcessMissingInput(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "assets", "js", "gtag.js")
	out := filepath.Join(dir, "assets", "js", "custom.js")

	c := newCollection(t, NewAsset(in, out, nil))
	var status bytes.Buffer
	err := c.Process(&status)
	if err == nil {
		t.Fatalf("expected error")
	}
	if !IsInputError(err) {
		t.Errorf("expected input error, got %T: %s", err, err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not exist error, got %s", err)
	}
	if status.Len() != 0 {
		t.Errorf("unexpected status %q", status.String())
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Errorf("output file was created")
	}

	var report bytes.Buffer
	Report(&report, err)
	if !strings.HasPrefix(report.String(), "Error: ") || !strings.Contains(report.String(), in) {
		t.Errorf("unexpected report %q", report.String())
	}
	if strings.Count(report.String(), "\n") != 1 {
		t.Errorf("report is not a single line: %q", report.String())
	}
}

func TestProcessFilterError(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "gtag.js")
	out := filepath.Join(dir, "custom.js")
	writeFile(t, in, "var s = 'unterminated;\n")
	writeFile(t, out, "previous")

	c := newCollection(t, NewAsset(in, out, nil))
	err := c.Process(ioutil.Discard)
	if err == nil {
		t.Fatalf("expected error")
	}
	if IsInputError(err) {
		t.Errorf("unexpected input error")
	}
	var report bytes.Buffer
	Report(&report, err)
	if !strings.HasPrefix(report.String(), "An error occurred: ") {
		t.Errorf("unexpected report %q", report.String())
	}
	b, _ := ioutil.ReadFile(out)
	if string(b) != "previous" {
		t.Errorf("output was overwritten: %q", b)
	}
}

func TestStatus(t *testing.T) {
	var tests = []struct {
		filter []string
		status string
	}{
		{[]string{"jsmin"}, "Minified gtag.js to custom.js"},
		{[]string{"styles", "jsmin"}, "Minified gtag.js (with embedded CSS) to custom.js"},
		{[]string{"obfuscate", "jsmin"}, "Minified and obfuscated gtag.js to custom.js"},
		{[]string{"styles", "obfuscate", "jsmin"}, "Minified and obfuscated gtag.js (with embedded CSS) to custom.js"},
	}
	for i, v := range tests {
		chain, err := filters.MakeChain(v.filter...)
		if err != nil {
			t.Fatalf("%d: %s", i, err)
		}
		a := NewAsset("assets/js/gtag.js", "assets/js/custom.js", v.filter)
		a.Filename = a.OutName
		if s := a.Status(chain); s != v.status {
			t.Errorf("%d: expected %q, got %q", i, v.status, s)
		}
	}
}

func TestLoadConfigMissing(t *testing.T) {
	conf, err := LoadConfig(filepath.Join(t.TempDir(), ConfigFileName))
	if err != nil {
		t.Fatalf("%s", err)
	}
	if len(conf.Assets) != 1 {
		t.Fatalf("expected 1 asset, got %d", len(conf.Assets))
	}
	a := conf.Assets[0]
	if len(a.Files) != 1 || a.Files[0] != DefaultInput || a.OutName != DefaultOutput {
		t.Errorf("unexpected default asset %+v", a)
	}
	if conf.Compress != nil {
		t.Errorf("unexpected compress config")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	config := filepath.Join(dir, ConfigFileName)
	writeFile(t, config, `assets:
  - name: app
    files:
      - `+filepath.Join(dir, "a.js")+`
      - `+filepath.Join(dir, "b.js")+`
    separator: ";"
    filter: [obfuscate, jsmin]
    outname: `+filepath.Join(dir, "app.:hash.js")+`
compress:
  methods: [gzip]
  extensions: [js]
`)
	writeFile(t, filepath.Join(dir, "a.js"), "var first = 1")
	writeFile(t, filepath.Join(dir, "b.js"), "var second = 2")

	c, err := Load(config)
	if err != nil {
		t.Fatalf("%s", err)
	}
	if inputs := c.Inputs(); len(inputs) != 2 {
		t.Errorf("expected 2 inputs, got %v", inputs)
	}
	var status bytes.Buffer
	if err := c.Process(&status); err != nil {
		t.Fatalf("%s", err)
	}
	a := c.Get("app")
	if a == nil {
		t.Fatalf("asset not found")
	}
	if strings.Contains(a.Filename, ":hash") || !strings.HasSuffix(a.Filename, ".js") {
		t.Errorf("bad filename %q", a.Filename)
	}
	if !strings.HasPrefix(status.String(), "Minified and obfuscated a.js, b.js to app.") {
		t.Errorf("unexpected status %q", status.String())
	}
	b, err := ioutil.ReadFile(a.Filename)
	if err != nil {
		t.Fatalf("%s", err)
	}
	expected := "var _a=1;var _b=2"
	if strings.TrimSpace(string(b)) != expected {
		t.Errorf("expected %q, got %q", expected, b)
	}
	if _, err := os.Stat(a.Filename + ".gz"); err != nil {
		t.Errorf("compressed file: %s", err)
	}
}

func TestNewCollectionErrors(t *testing.T) {
	var tests = []*Config{
		{Assets: []*Asset{{Name: "a", OutName: "out.js"}}},
		{Assets: []*Asset{{Name: "a", Files: []string{"in.js"}}}},
		{Assets: []*Asset{
			{Name: "a", Files: []string{"in.js"}, OutName: "out.js"},
			{Name: "a", Files: []string{"in.js"}, OutName: "out2.js"},
		}},
		{Assets: []*Asset{{Name: "a", Files: []string{"in.js"}, OutName: "out.js", Filter: "nosuchfilter"}}},
	}
	for i, conf := range tests {
		if _, err := NewCollection(conf); err == nil {
			t.Errorf("%d: expected error", i)
		}
	}
}

func TestCache(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "gtag.js")
	out := filepath.Join(dir, "custom.js")
	writeFile(t, in, "var a = 1;")

	c := newCollection(t, NewAsset(in, out, []string{"jsmin"}))
	c.SetCache(hashcache.New())
	var status bytes.Buffer
	if err := c.Process(&status); err != nil {
		t.Fatalf("%s", err)
	}
	if err := c.Process(&status); err != nil {
		t.Fatalf("%s", err)
	}
	if n := strings.Count(status.String(), "\n"); n != 1 {
		t.Errorf("expected 1 build, got %d", n)
	}
	writeFile(t, in, "var a = 2;")
	if err := c.Process(&status); err != nil {
		t.Fatalf("%s", err)
	}
	if n := strings.Count(status.String(), "\n"); n != 2 {
		t.Errorf("expected 2 builds, got %d", n)
	}
}

func TestReportSingleLine(t *testing.T) {
	var tests = []struct {
		err error
		out string
	}{
		{errors.New("exec: failed\nsecond line\n"), "An error occurred: exec: failed second line\n"},
		{&InputError{Path: "a.js", Err: errors.New("bad\nread")}, "Error: bad read\n"},
	}
	for i, v := range tests {
		var buf bytes.Buffer
		Report(&buf, v.err)
		if buf.String() != v.out {
			t.Errorf("%d: expected %q, got %q", i, v.out, buf.String())
		}
	}
}
