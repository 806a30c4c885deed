package errors

import "errors"

// ErrUnknownRelation 关联类型不受支持
var ErrUnknownRelation = errors.New("不支持的关联类型")

// ErrInvalidFilter 列表过滤参数无法解析
var ErrInvalidFilter = errors.New("列表过滤参数无效")
