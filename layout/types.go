package layout

// 该文件定义标签描述模型，供构建、渲染任务与调试 JSON 共用。

// Label 是 DSL 构建后的完整标签描述。
type Label struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Meta    Meta   `json:"meta"`
	Device  Device `json:"device"`
	Items   []Item `json:"items"`
}

// Meta 记录标签元数据，预览导出 PDF 时写入文档信息。
type Meta struct {
	Title    string   `json:"title,omitempty"`
	Author   string   `json:"author,omitempty"`
	Subject  string   `json:"subject,omitempty"`
	Creator  string   `json:"creator,omitempty"`
	Keywords []string `json:"keywords,omitempty"`
}

// Device 描述打印机与色带配置。长度统一以打印头像素保存。
type Device struct {
	TapeMM      float64 `json:"tapeMM"`
	PrintHeadPx int     `json:"printHeadPx"`
	// MarginPx 是载荷左右两侧可见的空白。
	MarginPx                  float64  `json:"marginPx"`
	LabelerHorizontalMarginPx float64  `json:"labelerHorizontalMarginPx"`
	LabelerVerticalMarginPx   float64  `json:"labelerVerticalMarginPx"`
	MinWidthPx                float64  `json:"minWidthPx"`
	MaxWidthPx                *float64 `json:"maxWidthPx,omitempty"`
	Justify                   string   `json:"justify"`
	Foreground                string   `json:"foreground"`
	Background                string   `json:"background"`
	ShowMargins               bool     `json:"showMargins"`
	// GapPx 是相邻条目之间的水平间距。
	GapPx int `json:"gapPx"`
}

// ItemKind 标识条目类型。
type ItemKind string

const (
	ItemText    ItemKind = "text"
	ItemQR      ItemKind = "qr"
	ItemBarcode ItemKind = "barcode"
	ItemImage   ItemKind = "image"
	ItemPattern ItemKind = "pattern"
	ItemSpacer  ItemKind = "spacer"
)

// Item 是标签上的一个载荷。不同类型只使用其中的部分字段。
type Item struct {
	Kind ItemKind `json:"kind"`
	// Line 记录条目在 DSL 文件中的行号，便于报错。
	Line int `json:"line"`

	// text
	Lines        []string `json:"lines,omitempty"`
	Font         string   `json:"font,omitempty"`
	SizeRatio    float64  `json:"sizeRatio,omitempty"`
	FrameWidthPx int      `json:"frameWidthPx,omitempty"`
	Align        string   `json:"align,omitempty"`

	// qr / barcode
	Symbology string `json:"symbology,omitempty"`
	Content   string `json:"content,omitempty"`

	// image
	Path      string  `json:"path,omitempty"`
	Threshold float64 `json:"threshold,omitempty"`

	// pattern / spacer
	WidthPx  int `json:"widthPx,omitempty"`
	StripePx int `json:"stripePx,omitempty"`
}
