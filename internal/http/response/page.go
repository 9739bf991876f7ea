package response

// Page 列表接口统一分页结构，number 从 0 开始
type Page[T any] struct {
	Content       []T    `json:"content"`
	First         bool   `json:"first"`
	Last          bool   `json:"last"`
	TotalPages    int    `json:"totalPages"`
	TotalElements int64  `json:"totalElements"`
	Size          int    `json:"size"`
	Sort          string `json:"sort"`
	Number        int    `json:"number"`
}

// NewPage 根据总数与分页参数构建分页结构
func NewPage[T any](content []T, total int64, number, size int, sort string) Page[T] {
	if content == nil {
		content = []T{}
	}
	totalPages := 0
	if size > 0 {
		totalPages = int((total + int64(size) - 1) / int64(size))
	}
	return Page[T]{
		Content:       content,
		First:         number == 0,
		Last:          number >= totalPages-1,
		TotalPages:    totalPages,
		TotalElements: total,
		Size:          size,
		Sort:          sort,
		Number:        number,
	}
}

// MapPage 转换分页内容类型
func MapPage[T, R any](page Page[T], fn func(T) R) Page[R] {
	content := make([]R, 0, len(page.Content))
	for _, item := range page.Content {
		content = append(content, fn(item))
	}
	return Page[R]{
		Content:       content,
		First:         page.First,
		Last:          page.Last,
		TotalPages:    page.TotalPages,
		TotalElements: page.TotalElements,
		Size:          page.Size,
		Sort:          page.Sort,
		Number:        page.Number,
	}
}
