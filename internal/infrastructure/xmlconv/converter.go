// Package xmlconv 基于mxj实现XML到JSON的透传转换
package xmlconv

import (
	"fmt"

	"github.com/clbanning/mxj/v2"
)

// Converter XML转JSON转换器,无状态
type Converter struct{}

// NewConverter 创建转换器
// 属性不加前缀,直接并入所在元素的对象;子元素保留为嵌套键
func NewConverter() *Converter {
	mxj.PrependAttrWithHyphen(false)
	return &Converter{}
}

// ToJSON 解析XML字节并输出JSON字符串
func (c *Converter) ToJSON(data []byte) (string, error) {
	m, err := mxj.NewMapXml(data)
	if err != nil {
		return "", fmt.Errorf("parse xml: %w", err)
	}

	out, err := m.Json()
	if err != nil {
		return "", fmt.Errorf("encode json: %w", err)
	}

	return string(out), nil
}
