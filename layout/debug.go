package layout

import (
	"encoding/json"
	"os"
)

// WriteDebugJSON 将构建结果输出为 JSON，便于调试。
func WriteDebugJSON(label *Label, path string) error {
	if label == nil {
		return nil
	}
	data, err := json.MarshalIndent(label, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
