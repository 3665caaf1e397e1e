package assistant

import (
	"encoding/json"
	"regexp"
	"strings"
)

// extractJSONObject 从模型输出中截取第一个完整 JSON 对象/数组。
// 容错逻辑：模型可能在 JSON 前后夹杂多余文本。
func extractJSONObject(s string) string {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return raw
	}

	objStart := strings.Index(raw, "{")
	arrStart := strings.Index(raw, "[")
	start := -1
	end := -1
	switch {
	case objStart >= 0 && (arrStart < 0 || objStart < arrStart):
		start = objStart
		end = strings.LastIndex(raw, "}")
	case arrStart >= 0:
		start = arrStart
		end = strings.LastIndex(raw, "]")
	}
	if start >= 0 && end > start {
		raw = raw[start : end+1]
	}

	// 确保至少能被 Decoder 消费到一个 JSON 起始
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	tok, err := dec.Token()
	if err == nil {
		if d, ok := tok.(json.Delim); ok && (d == '{' || d == '[') {
			return raw
		}
	}
	return strings.TrimSpace(s)
}

var fencedJSONRe = regexp.MustCompile("(?s)```json(.*?)```")

// splitFencedSuggestions 从第 0 页内容中剥离 ```json 代码块。
// 返回去掉代码块后的正文和代码块内的建议列表；没有代码块时建议为空。
func splitFencedSuggestions(content string) (string, []string) {
	m := fencedJSONRe.FindStringSubmatch(content)
	if m == nil {
		return strings.TrimSpace(content), nil
	}

	var suggestions []string
	if err := json.Unmarshal([]byte(strings.TrimSpace(m[1])), &suggestions); err != nil {
		suggestions = nil
	}

	body := fencedJSONRe.ReplaceAllString(content, "")
	return strings.TrimSpace(body), suggestions
}
