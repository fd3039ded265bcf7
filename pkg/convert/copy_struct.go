// Package convert copies between gorm models and domain structs
// Package convert 在 gorm 模型与领域结构之间复制
package convert

import (
	"time"

	"github.com/haierkeys/markdown-note-service/pkg/timex"
	"github.com/jinzhu/copier"
	"github.com/pkg/errors"
)

// copyOption converts between time.Time and timex.Time so models and domain structs copy cleanly
// copyOption 在 time.Time 与 timex.Time 之间转换，使模型与领域结构可直接复制
var copyOption = copier.Option{
	IgnoreEmpty: false,
	DeepCopy:    true,
	Converters: []copier.TypeConverter{
		{
			SrcType: time.Time{},
			DstType: timex.Time{},
			Fn: func(src interface{}) (interface{}, error) {
				t, ok := src.(time.Time)
				if !ok {
					return nil, errors.New("src type not time.Time")
				}
				return timex.Time(t), nil
			},
		},
		{
			SrcType: timex.Time{},
			DstType: time.Time{},
			Fn: func(src interface{}) (interface{}, error) {
				t, ok := src.(timex.Time)
				if !ok {
					return nil, errors.New("src type not timex.Time")
				}
				return time.Time(t), nil
			},
		},
	},
}

// StructAssign copies same-named fields from src into dst
// StructAssign 将 src 中同名字段复制到 dst
func StructAssign(dst, src interface{}) error {
	if err := copier.CopyWithOption(dst, src, copyOption); err != nil {
		return errors.Wrap(err, "convert.StructAssign")
	}
	return nil
}
