// Package handler HTTP处理器
//
// Handler只做三件事:绑定参数、调用用例、输出统一响应。
// 参数校验失败返回400,业务错误由response.Error按错误码映射状态码。
package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/xiebiao/onlinebookstore/pkg/errors"
	"github.com/xiebiao/onlinebookstore/pkg/response"
)

func bindError(c *gin.Context, err error) {
	response.ErrorWithCode(c, apperrors.ErrCodeValidation, "参数错误: "+err.Error())
}

// pathID 解析路径中的正整数ID
func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		response.ErrorWithCode(c, apperrors.ErrCodeInvalidParams, "无效的"+name)
		return 0, false
	}
	return uint(id), true
}
