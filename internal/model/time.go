package model

import (
	"fmt"
	"time"
)

// LocalDate 将时间序列化为 "YYYY-MM-DD"，忽略时分秒。
type LocalDate time.Time

const dateFormat = "2006-01-02"

// MarshalJSON implements the json.Marshaler interface.
func (d LocalDate) MarshalJSON() ([]byte, error) {
	formatted := fmt.Sprintf("\"%s\"", time.Time(d).Format(dateFormat))
	return []byte(formatted), nil
}

func (d LocalDate) String() string {
	return time.Time(d).Format(dateFormat)
}
