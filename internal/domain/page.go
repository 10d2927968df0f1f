package domain

// 分页默认值
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Page 表示一次列表查询的分页参数。
type Page struct {
	Number int // 从 1 开始
	Size   int
}

// NewPage 规范化分页参数，非法值回退到默认值。
func NewPage(number, size int) Page {
	if number <= 0 {
		number = 1
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return Page{Number: number, Size: size}
}

// Offset 返回 SQL OFFSET。
func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}
