package layout

// BuildOptions 配置构建阶段的外部依赖。
type BuildOptions struct {
	// BaseDir 用于解析 image 条目中的相对路径，通常是 DSL 文件所在目录。
	BaseDir string
	// Strict 为 true 时，无法解析且没有默认值的 ${} 占位符视为错误。
	Strict bool
}
