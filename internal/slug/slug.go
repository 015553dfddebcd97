// Package slug 生成 URL 友好的唯一标识。
package slug

import (
	"regexp"
	"strconv"
	"strings"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Make 小写化并将连续的非字母数字字符折叠为单个 "-"，去除首尾 "-"
func Make(value string) string {
	lowered := strings.ToLower(strings.TrimSpace(value))
	return strings.Trim(nonAlnum.ReplaceAllString(lowered, "-"), "-")
}

// ForProduct 商品 slug：名称 + 外部编号
func ForProduct(name string, productID int64) string {
	base := Make(name)
	id := strconv.FormatInt(productID, 10)
	if base == "" {
		return id
	}
	return base + "-" + id
}
