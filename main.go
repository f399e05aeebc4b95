package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"image/png"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ByLCY/tapelabel/dsl"
	"github.com/ByLCY/tapelabel/job"
	"github.com/ByLCY/tapelabel/layout"
	"github.com/ByLCY/tapelabel/render"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	var err error
	switch os.Args[1] {
	case "print":
		err = runPrint(os.Args[2:])
	case "preview":
		err = runPreview(os.Args[2:])
	case "show":
		err = runShow(os.Args[2:])
	case "debug":
		err = runDebug(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatalf("%s 失败: %v", os.Args[1], err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: tapelabel <command> [args]")
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  print   -in label.tl -out payload.png [-data JSON] [-strict] [-v]")
	fmt.Fprintln(os.Stderr, "  preview -in label.tl -out preview.png [-format png|pdf] [-margins] [-data JSON]")
	fmt.Fprintln(os.Stderr, "  show    -in label.tl [-invert] [-data JSON]")
	fmt.Fprintln(os.Stderr, "  debug   -in label.tl -out label.json [-data JSON]")
}

// common 是各子命令共享的参数。
type common struct {
	fs      *flag.FlagSet
	in      *string
	data    *string
	strict  *bool
	verbose *bool
}

func newCommon(name string) *common {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	return &common{
		fs:      fs,
		in:      fs.String("in", "", "标签 DSL 文件路径"),
		data:    fs.String("data", "", "绑定到 DSL 的 JSON 数据"),
		strict:  fs.Bool("strict", false, "无法绑定的 ${} 占位符视为错误"),
		verbose: fs.Bool("v", false, "输出调试日志"),
	}
}

func (c *common) parse(args []string) error {
	if err := c.fs.Parse(args); err != nil {
		return err
	}
	if *c.in == "" {
		return errors.New("缺少 -in 参数")
	}
	level := slog.LevelWarn
	if *c.verbose {
		level = slog.LevelDebug
	}
	render.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return nil
}

// load 串联解析与构建。
func (c *common) load() (*layout.Label, error) {
	var data any
	if *c.data != "" {
		if err := json.Unmarshal([]byte(*c.data), &data); err != nil {
			return nil, fmt.Errorf("解析 data JSON 失败: %w", err)
		}
	}
	file, err := os.Open(*c.in)
	if err != nil {
		return nil, fmt.Errorf("无法打开 DSL 文件 %s: %w", *c.in, err)
	}
	defer file.Close()

	doc, err := dsl.Parse(file)
	if err != nil {
		return nil, fmt.Errorf("解析 DSL 失败: %w", err)
	}
	label, err := layout.Build(doc, data, layout.BuildOptions{
		BaseDir: filepath.Dir(*c.in),
		Strict:  *c.strict,
	})
	if err != nil {
		return nil, fmt.Errorf("构建标签失败: %w", err)
	}
	return label, nil
}

func runPrint(args []string) error {
	c := newCommon("print")
	out := c.fs.String("out", "", "打印位图 PNG 输出路径")
	if err := c.parse(args); err != nil {
		return err
	}
	if *out == "" {
		return errors.New("缺少 -out 参数")
	}
	label, err := c.load()
	if err != nil {
		return err
	}
	j, err := job.New(label)
	if err != nil {
		return err
	}
	b, err := j.Print()
	if err != nil {
		return err
	}
	return writeFile(*out, func(f *os.File) error { return png.Encode(f, b) })
}

func runPreview(args []string) error {
	c := newCommon("preview")
	out := c.fs.String("out", "", "预览输出路径")
	format := c.fs.String("format", "", "输出格式 png|pdf，默认按扩展名判断")
	margins := c.fs.Bool("margins", false, "标注载荷与标签尺寸")
	if err := c.parse(args); err != nil {
		return err
	}
	if *out == "" {
		return errors.New("缺少 -out 参数")
	}
	if *format == "" {
		*format = strings.TrimPrefix(strings.ToLower(filepath.Ext(*out)), ".")
	}
	label, err := c.load()
	if err != nil {
		return err
	}
	if *margins {
		label.Device.ShowMargins = true
	}
	j, err := job.New(label)
	if err != nil {
		return err
	}

	switch *format {
	case "pdf":
		return writeFile(*out, func(f *os.File) error { return j.PreviewPDF(f) })
	case "png", "":
		img, err := j.Preview()
		if err != nil {
			return err
		}
		return writeFile(*out, func(f *os.File) error { return png.Encode(f, img) })
	default:
		return fmt.Errorf("不支持的输出格式 %q", *format)
	}
}

func runShow(args []string) error {
	c := newCommon("show")
	invert := c.fs.Bool("invert", false, "反相显示（适合浅色终端）")
	if err := c.parse(args); err != nil {
		return err
	}
	label, err := c.load()
	if err != nil {
		return err
	}
	j, err := job.New(label)
	if err != nil {
		return err
	}
	s, err := j.Show(*invert)
	if err != nil {
		return err
	}
	fmt.Println(s)
	return nil
}

func runDebug(args []string) error {
	c := newCommon("debug")
	out := c.fs.String("out", "", "调试 JSON 输出路径")
	if err := c.parse(args); err != nil {
		return err
	}
	if *out == "" {
		return errors.New("缺少 -out 参数")
	}
	label, err := c.load()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(*out), 0o755); err != nil {
		return fmt.Errorf("创建调试目录失败: %w", err)
	}
	if err := layout.WriteDebugJSON(label, *out); err != nil {
		return fmt.Errorf("输出调试 JSON 失败: %w", err)
	}
	return nil
}

func writeFile(path string, write func(f *os.File) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("写入 %s 失败: %w", path, err)
	}
	return f.Close()
}
