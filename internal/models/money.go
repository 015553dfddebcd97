package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/x/bsonx/bsoncore"
)

// Money 统一金额类型（保留 2 位小数）
type Money struct {
	decimal.Decimal
}

// NewMoneyFromDecimal 从 decimal 创建金额
func NewMoneyFromDecimal(amount decimal.Decimal) Money {
	return Money{Decimal: amount.Round(2)}
}

// NewMoneyFromFloat 从浮点数创建金额
func NewMoneyFromFloat(amount float64) Money {
	return Money{Decimal: decimal.NewFromFloat(amount).Round(2)}
}

// MarshalJSON 输出 2 位小数的数字
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.Decimal.Round(2).StringFixed(2)), nil
}

// UnmarshalJSON 解析金额（字符串或数字）
func (m *Money) UnmarshalJSON(b []byte) error {
	if len(b) == 0 || string(b) == "null" {
		return nil
	}
	raw := b
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		raw = []byte(s)
	}
	d, err := decimal.NewFromString(string(raw))
	if err != nil {
		return err
	}
	m.Decimal = d.Round(2)
	return nil
}

// Value 用于数据库写入
func (m Money) Value() (driver.Value, error) {
	return m.Decimal.Round(2).Value()
}

// Scan 用于数据库读取
func (m *Money) Scan(value interface{}) error {
	if err := m.Decimal.Scan(value); err != nil {
		return err
	}
	m.Decimal = m.Decimal.Round(2)
	return nil
}

// MarshalBSONValue 以 double 存入 MongoDB，便于范围查询
func (m Money) MarshalBSONValue() (bsontype.Type, []byte, error) {
	f, _ := m.Decimal.Round(2).Float64()
	return bsontype.Double, bsoncore.AppendDouble(nil, f), nil
}

// UnmarshalBSONValue 从 MongoDB 数值读取
func (m *Money) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	value := bsoncore.Value{Type: t, Data: data}
	switch t {
	case bsontype.Double:
		m.Decimal = decimal.NewFromFloat(value.Double()).Round(2)
	case bsontype.Int32:
		m.Decimal = decimal.NewFromInt32(value.Int32())
	case bsontype.Int64:
		m.Decimal = decimal.NewFromInt(value.Int64())
	case bsontype.Decimal128:
		d, err := decimal.NewFromString(value.Decimal128().String())
		if err != nil {
			return err
		}
		m.Decimal = d.Round(2)
	case bsontype.Null:
		m.Decimal = decimal.Zero
	default:
		return fmt.Errorf("unsupported bson type %s for money", t)
	}
	return nil
}

// String 返回 2 位小数格式
func (m Money) String() string {
	return m.Decimal.Round(2).StringFixed(2)
}
