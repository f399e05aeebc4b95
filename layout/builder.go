package layout

import (
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ByLCY/tapelabel/binding"
	"github.com/ByLCY/tapelabel/dsl"
)

const (
	defaultSizeRatio = 0.9
	defaultThreshold = 0.5
	defaultGapMM     = 2.0
	defaultStripePx  = 4
)

// Build 根据 DSL AST 生成标签描述：设备参数、元数据与按顺序排列的条目。
func Build(doc *dsl.Document, data any, opts BuildOptions) (*Label, error) {
	if doc == nil {
		return nil, fmt.Errorf("文档为空")
	}

	device, err := buildDevice(doc)
	if err != nil {
		return nil, err
	}

	b := &itemBuilder{device: device, data: data, opts: opts}
	items := make([]Item, 0, len(doc.Sections))
	for _, cmd := range doc.Items() {
		item, err := b.build(cmd)
		if err != nil {
			return nil, fmt.Errorf("line %d: %s: %w", cmd.Pos.Line, cmd.Name, err)
		}
		items = append(items, item)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("标签 %s 没有任何条目", doc.Name)
	}

	return &Label{
		Name:    doc.Name,
		Version: doc.Version,
		Meta:    collectMeta(doc),
		Device:  device,
		Items:   items,
	}, nil
}

func collectMeta(doc *dsl.Document) Meta {
	meta := Meta{Creator: "tapelabel"}
	for _, section := range doc.Sections {
		if section.Meta == nil {
			continue
		}
		for _, stmt := range section.Meta.Statements {
			if stmt.Assignment == nil {
				continue
			}
			switch strings.ToLower(stmt.Assignment.Key) {
			case "title":
				meta.Title = valueToString(stmt.Assignment.Value)
			case "author":
				meta.Author = valueToString(stmt.Assignment.Value)
			case "subject":
				meta.Subject = valueToString(stmt.Assignment.Value)
			case "creator":
				meta.Creator = valueToString(stmt.Assignment.Value)
			case "keywords", "tags":
				meta.Keywords = append(meta.Keywords, valueToStringSlice(stmt.Assignment.Value)...)
			}
		}
	}
	return meta
}

// buildDevice 读取 device 段落；未出现的键使用 12mm 色带的默认值。
func buildDevice(doc *dsl.Document) (Device, error) {
	props := map[string]string{}
	for _, section := range doc.Sections {
		if section.Device == nil {
			continue
		}
		for _, stmt := range section.Device.Statements {
			if stmt.Assignment == nil {
				continue
			}
			props[strings.ToLower(stmt.Assignment.Key)] = valueToString(stmt.Assignment.Value)
		}
	}

	tapeMM := DefaultTapeMM
	if v, ok := props["tape"]; ok {
		l, ok := ParseLength(v)
		if !ok {
			return Device{}, fmt.Errorf("device: 无法解析 tape %q", v)
		}
		tapeMM = l.ToMM()
	}
	profile, err := LookupTape(tapeMM)
	if err != nil {
		return Device{}, fmt.Errorf("device: %w", err)
	}
	tapePx := MMToPx(profile.TapeMM)

	dev := Device{
		TapeMM:                    profile.TapeMM,
		PrintHeadPx:               profile.PrintHeadPx,
		MarginPx:                  MMToPx(DefaultMarginMM),
		LabelerHorizontalMarginPx: profile.LabelerHorizontalMarginPx(),
		LabelerVerticalMarginPx:   profile.LabelerVerticalMarginPx(),
		Justify:                   "center",
		Foreground:                "black",
		Background:                "white",
		GapPx:                     int(math.Round(MMToPx(defaultGapMM))),
	}

	for key, v := range props {
		switch key {
		case "tape":
		case "margin":
			px, err := parsePx(v, tapePx)
			if err != nil {
				return Device{}, fmt.Errorf("device: margin: %w", err)
			}
			dev.MarginPx = px
		case "min-width", "min-length":
			px, err := parsePx(v, 0)
			if err != nil {
				return Device{}, fmt.Errorf("device: %s: %w", key, err)
			}
			dev.MinWidthPx = px
		case "max-width", "max-length":
			px, err := parsePx(v, 0)
			if err != nil {
				return Device{}, fmt.Errorf("device: %s: %w", key, err)
			}
			dev.MaxWidthPx = &px
		case "gap":
			px, err := parsePx(v, 0)
			if err != nil {
				return Device{}, fmt.Errorf("device: gap: %w", err)
			}
			dev.GapPx = int(math.Round(px))
		case "justify", "align":
			dev.Justify = strings.ToLower(v)
		case "foreground", "color":
			dev.Foreground = v
		case "background":
			dev.Background = v
		case "show-margins":
			b, err := strconv.ParseBool(v)
			if err != nil {
				return Device{}, fmt.Errorf("device: show-margins: %w", err)
			}
			dev.ShowMargins = b
		default:
			return Device{}, fmt.Errorf("device: 未知配置项 %q", key)
		}
	}
	return dev, nil
}

type itemBuilder struct {
	device Device
	data   any
	opts   BuildOptions
}

func (b *itemBuilder) build(cmd *dsl.Item) (Item, error) {
	item := Item{Kind: ItemKind(cmd.Name), Line: cmd.Pos.Line}
	switch item.Kind {
	case ItemText:
		_, attrs := parseArgs(cmd.Args, false)
		lines := extractLines(cmd.Block)
		if len(lines) == 0 {
			return Item{}, fmt.Errorf("缺少文本内容")
		}
		for i, line := range lines {
			v, err := b.interpolate(line)
			if err != nil {
				return Item{}, err
			}
			lines[i] = v
		}
		item.Lines = lines
		item.Font = attrs["font"]
		item.Align = strings.ToLower(attrs["align"])
		item.SizeRatio = defaultSizeRatio
		if v, ok := attrs["size"]; ok {
			l, ok := ParseLength(v)
			if !ok || l.Ratio() <= 0 || l.Ratio() > 1 {
				return Item{}, fmt.Errorf("size %q 必须在 (0, 1] 之间", v)
			}
			item.SizeRatio = l.Ratio()
		}
		if v, ok := attrs["frame"]; ok {
			px, err := parsePx(v, float64(b.device.PrintHeadPx))
			if err != nil {
				return Item{}, fmt.Errorf("frame: %w", err)
			}
			item.FrameWidthPx = int(math.Round(px))
		}

	case ItemQR, ItemBarcode:
		positional, attrs := parseArgs(cmd.Args, true)
		content := strings.Join(extractLines(cmd.Block), "")
		if item.Kind == ItemQR && content == "" {
			content, positional = positional, ""
		}
		if content == "" {
			content = attrs["content"]
		}
		v, err := b.interpolate(content)
		if err != nil {
			return Item{}, err
		}
		if v == "" {
			return Item{}, fmt.Errorf("缺少内容")
		}
		item.Content = v
		if item.Kind == ItemBarcode {
			item.Symbology = strings.ToLower(positional)
			if s, ok := attrs["type"]; ok {
				item.Symbology = strings.ToLower(s)
			}
			if item.Symbology == "" {
				item.Symbology = "code128"
			}
		}

	case ItemImage:
		positional, attrs := parseArgs(cmd.Args, true)
		path := positional
		if path == "" {
			path = attrs["src"]
		}
		path, err := b.interpolate(path)
		if err != nil {
			return Item{}, err
		}
		if path == "" {
			return Item{}, fmt.Errorf("缺少图片路径")
		}
		if !filepath.IsAbs(path) && b.opts.BaseDir != "" {
			path = filepath.Join(b.opts.BaseDir, path)
		}
		item.Path = path
		item.Threshold = defaultThreshold
		if v, ok := attrs["threshold"]; ok {
			l, ok := ParseLength(v)
			if !ok || l.Ratio() < 0 || l.Ratio() > 1 {
				return Item{}, fmt.Errorf("threshold %q 必须在 [0, 1] 之间", v)
			}
			item.Threshold = l.Ratio()
		}

	case ItemPattern, ItemSpacer:
		_, attrs := parseArgs(cmd.Args, false)
		w, ok := attrs["width"]
		if !ok {
			return Item{}, fmt.Errorf("缺少 width")
		}
		px, err := parsePx(w, 0)
		if err != nil {
			return Item{}, fmt.Errorf("width: %w", err)
		}
		item.WidthPx = int(math.Round(px))
		if item.Kind == ItemPattern {
			item.StripePx = defaultStripePx
			if v, ok := attrs["stripe"]; ok {
				px, err := parsePx(v, 0)
				if err != nil {
					return Item{}, fmt.Errorf("stripe: %w", err)
				}
				item.StripePx = max(int(math.Round(px)), 1)
			}
		}

	default:
		return Item{}, fmt.Errorf("未知条目类型")
	}
	return item, nil
}

func (b *itemBuilder) interpolate(text string) (string, error) {
	if b.opts.Strict {
		if missing := binding.Missing(text, b.data); len(missing) > 0 {
			return "", fmt.Errorf("无法绑定数据: %s", strings.Join(missing, ", "))
		}
	}
	return binding.Interpolate(text, b.data), nil
}

// parseArgs 将条目参数拆成可选的位置参数与 key value 对。
// 首个参数为字符串，或参数个数为奇数时，视为位置参数。
func parseArgs(args []*dsl.Arg, allowPositional bool) (string, map[string]string) {
	result := map[string]string{}
	if len(args) == 0 {
		return "", result
	}

	cursor := 0
	var positional string
	if allowPositional && (args[0].IsQuoted() || len(args)%2 == 1) {
		positional = args[0].Value()
		cursor = 1
	}

	for cursor < len(args)-1 {
		result[strings.ToLower(args[cursor].Value())] = args[cursor+1].Value()
		cursor += 2
	}
	return positional, result
}

// parsePx 把长度转换为打印头像素，百分比相对 reference 计算。
func parsePx(value string, reference float64) (float64, error) {
	l, ok := ParseLength(value)
	if !ok {
		return 0, fmt.Errorf("无法解析长度 %q", value)
	}
	px := l.ToPx(reference)
	if px < 0 {
		return 0, fmt.Errorf("长度 %q 不能为负", value)
	}
	return px, nil
}

func extractLines(block *dsl.Block) []string {
	if block == nil {
		return nil
	}
	var lines []string
	for _, stmt := range block.Statements {
		if stmt.Text != nil {
			lines = append(lines, string(*stmt.Text))
		}
	}
	return lines
}

func valueToString(val *dsl.Value) string {
	if val == nil {
		return ""
	}
	switch {
	case val.String != nil:
		return string(*val.String)
	case val.Number != nil:
		return *val.Number
	case val.Color != nil:
		return *val.Color
	case val.Word != nil:
		return *val.Word
	default:
		return ""
	}
}

func valueToStringSlice(val *dsl.Value) []string {
	if val == nil {
		return nil
	}
	if val.Array != nil {
		out := make([]string, 0, len(val.Array.Values))
		for _, item := range val.Array.Values {
			if s := valueToString(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	if s := valueToString(val); s != "" {
		return []string{s}
	}
	return nil
}
