package handler

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"learner-results/backend/internal/service"
	pkgerrors "learner-results/backend/pkg/errors"
	"learner-results/backend/pkg/response"
)

// 各模块"不存在"错误码
var notFoundCodes = []struct {
	err  error
	code int
}{
	{service.ErrResultNotFound, 20001},
	{service.ErrActivityNotFound, 21001},
	{service.ErrProductNotFound, 22001},
	{service.ErrReflectionNotFound, 23001},
	{service.ErrEvaluationNotFound, 24001},
	{service.ErrFormalRecognitionNotFound, 25001},
	{service.ErrPortfolioNotFound, 26001},
}

func init() {
	// 请求绑定的校验错误使用 json / form 字段名
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(wireName)
	}
}

func wireName(f reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
		if name != "" && name != "-" {
			return name
		}
	}
	return ""
}

// handleError 统一把业务错误映射为 HTTP 响应
func handleError(c *gin.Context, err error) {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		response.ValidationFailed(c, verr.Fields)
		return
	}

	for _, nf := range notFoundCodes {
		if errors.Is(err, nf.err) {
			response.NotFound(c, nf.code, nf.err.Error())
			return
		}
	}

	switch {
	case errors.Is(err, pkgerrors.ErrInvalidFilter):
		response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeInvalidParams, "查询参数不合法", err.Error())
	case errors.Is(err, pkgerrors.ErrUnknownRelation):
		response.BadRequest(c, response.CodeInvalidParams, "不支持的关联类型")
	default:
		response.InternalError(c)
	}
}

// bindError 请求绑定失败：校验错误逐项列出字段，其余视为格式错误
func bindError(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		response.Error(c, http.StatusRequestEntityTooLarge, response.CodeBodyTooLarge, "请求体过大")
		return
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fe.Field()+": "+fe.Tag())
		}
		response.ValidationFailed(c, fields)
		return
	}
	response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeInvalidParams, "请求格式错误", err.Error())
}

// pathID 读取并校验路径中的 UUID 参数；非法时写入 400 并返回 false
func pathID(c *gin.Context, name string) (string, bool) {
	id := c.Param(name)
	if _, err := uuid.Parse(id); err != nil {
		response.BadRequest(c, response.CodeInvalidParams, name+" 不是合法的 UUID")
		return "", false
	}
	return id, true
}
